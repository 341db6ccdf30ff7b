package cron

import (
	"context"
	"fmt"
	"net/url"

	"medibook/models"
	"medibook/services/mailer"

	"go.uber.org/zap"

	ai "medibook/services/intelligence"
)

// MailboxProcessor handles one poll pass: list unread mail, classify each
// message, reply with a booking link when it is an appointment request,
// and mark everything processed as read.
type MailboxProcessor struct {
	Mailer        mailer.Service
	Classifier    ai.Classifier
	BookingAppURL string
	Logger        *zap.Logger
}

// ProcessMailbox runs one pass. Individual message failures are logged
// and skipped; the message stays unread for the next pass. A failed list
// call is returned so the job queue can retry with backoff.
func (p *MailboxProcessor) ProcessMailbox(ctx context.Context) error {
	emails, err := p.Mailer.ListUnread(ctx)
	if err != nil {
		return fmt.Errorf("mailbox poll failed: %w", err)
	}

	for _, email := range emails {
		if err := p.processOne(ctx, email); err != nil {
			p.Logger.Warn("failed to process message, leaving unread",
				zap.String("messageId", email.ID), zap.Error(err))
		}
	}
	return nil
}

func (p *MailboxProcessor) processOne(ctx context.Context, email models.InboundEmail) error {
	analysis, err := p.Classifier.Classify(ctx, email.Subject+"\n\n"+email.Body)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	if analysis.IsAppointment && email.FromEmail != "" {
		subject := "Re: Schedule Your Appointment"
		if email.Subject != "" {
			subject = "Re: " + email.Subject
		}
		body := bookingLinkMessage(analysis.Category, p.bookingLink(analysis.Category, email.FromEmail))
		if err := p.Mailer.Send(ctx, email.FromEmail, subject, body, email.ThreadID); err != nil {
			return fmt.Errorf("booking link reply failed: %w", err)
		}
		p.Logger.Info("booking link sent",
			zap.String("to", email.FromEmail),
			zap.String("category", analysis.Category))
	}

	return p.Mailer.MarkRead(ctx, email.ID)
}

func (p *MailboxProcessor) bookingLink(category, email string) string {
	return fmt.Sprintf("%s?type=%s&email=%s",
		p.BookingAppURL, url.QueryEscape(category), url.QueryEscape(email))
}

// bookingLinkMessage picks the reply template for the classified
// appointment category.
func bookingLinkMessage(category, link string) string {
	switch category {
	case models.CategoryFollowUp:
		return fmt.Sprintf(`Thank you for requesting a follow-up appointment. I understand you'd like to schedule a follow-up visit.

Please use this personalized booking link to schedule your follow-up appointment:
%s

If you have any questions or need assistance, please don't hesitate to reply to this email.

Best regards,
Your Doctor's Office`, link)
	case models.CategoryConsultation:
		return fmt.Sprintf(`Thank you for your interest in scheduling a consultation. We look forward to discussing your health concerns.

Please use this personalized booking link to schedule your consultation:
%s

If you have any specific concerns you'd like to discuss during the consultation, feel free to reply to this email.

Best regards,
Your Doctor's Office`, link)
	default:
		return fmt.Sprintf(`Thank you for your interest in scheduling an appointment.

Please use this personalized booking link to schedule a time that works best for you:
%s

If you have any questions or need assistance, please don't hesitate to reply to this email.

Best regards,
Your Doctor's Office`, link)
	}
}
