package mailer

import (
	"context"
	"encoding/base64"
	"fmt"

	"medibook/models"

	"go.uber.org/zap"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailService implements Service on top of the Gmail API for the
// practice's own mailbox ("me").
type GmailService struct {
	svc    *gmail.Service
	logger *zap.Logger
}

func NewGmailService(ctx context.Context, credentialsFile string, logger *zap.Logger) (*GmailService, error) {
	svc, err := gmail.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gmail.GmailModifyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	return &GmailService{svc: svc, logger: logger}, nil
}

// ListUnread fetches unread messages with headers parsed and the body
// decoded, preferring text/plain parts over HTML.
func (g *GmailService) ListUnread(ctx context.Context) ([]models.InboundEmail, error) {
	list, err := g.svc.Users.Messages.List("me").Q("is:unread").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list unread messages: %w", err)
	}

	var emails []models.InboundEmail
	for _, m := range list.Messages {
		msg, err := g.svc.Users.Messages.Get("me", m.Id).Context(ctx).Do()
		if err != nil {
			g.logger.Warn("failed to fetch message, skipping", zap.String("messageId", m.Id), zap.Error(err))
			continue
		}

		email := models.InboundEmail{
			ID:       msg.Id,
			ThreadID: msg.ThreadId,
			Snippet:  msg.Snippet,
		}
		if msg.Payload != nil {
			applyHeaders(&email, msg.Payload.Headers)
			email.Body = extractBody(msg.Payload)
		}
		if email.Body == "" {
			email.Body = msg.Snippet
		}
		emails = append(emails, email)
	}
	return emails, nil
}

// Send delivers a plain-text message from the authenticated mailbox. A
// non-empty threadID makes the message a reply on that conversation.
func (g *GmailService) Send(ctx context.Context, to, subject, body, threadID string) error {
	var inReplyTo string
	if threadID != "" {
		inReplyTo = g.lookupMessageID(ctx, threadID)
	}

	raw := buildMessage(to, subject, body, inReplyTo)
	msg := &gmail.Message{
		Raw:      base64.URLEncoding.EncodeToString([]byte(raw)),
		ThreadId: threadID,
	}

	sent, err := g.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	g.logger.Info("email sent", zap.String("to", to), zap.String("messageId", sent.Id))
	return nil
}

// MarkRead clears the UNREAD label from a message.
func (g *GmailService) MarkRead(ctx context.Context, messageID string) error {
	_, err := g.svc.Users.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to mark message %s as read: %w", messageID, err)
	}
	return nil
}

// lookupMessageID fetches the RFC 2822 Message-ID of the first message in
// a thread so replies thread correctly in the recipient's client. Best
// effort; replies still send without it.
func (g *GmailService) lookupMessageID(ctx context.Context, threadID string) string {
	thread, err := g.svc.Users.Threads.Get("me", threadID).Format("metadata").
		MetadataHeaders("Message-ID").Context(ctx).Do()
	if err != nil || len(thread.Messages) == 0 || thread.Messages[0].Payload == nil {
		g.logger.Debug("could not resolve thread Message-ID", zap.String("threadId", threadID))
		return ""
	}
	for _, h := range thread.Messages[0].Payload.Headers {
		if h.Name == "Message-ID" || h.Name == "Message-Id" {
			return h.Value
		}
	}
	return ""
}
