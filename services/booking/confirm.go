package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	recordsRepo "medibook/database/repository/records"
	"medibook/models"

	"go.uber.org/zap"
)

// AppointmentConfirmer converts a selected slot plus customer details into
// a durable calendar event and a confirmation email.
type AppointmentConfirmer struct {
	Calendar CalendarService
	Mailer   MessagingService
	Records  recordsRepo.AppointmentRecordRepository // optional audit trail
	Hours    models.BusinessHours
	Logger   *zap.Logger
}

// Confirm re-validates the slot against the live calendar, writes the
// event, and dispatches the confirmation email.
//
// The re-check only narrows the race between "slot was free when read"
// and "slot is booked when written": two confirmations can both pass it
// before either writes. There is no per-slot lock against the calendar;
// this is an accepted limitation.
//
// A messaging failure after a successful write is non-fatal: the event is
// the source of truth and the record is returned alongside a
// confirmationMessageFailed warning. The booking is never rolled back.
func (c *AppointmentConfirmer) Confirm(
	ctx context.Context,
	slot models.Slot,
	customer models.CustomerDetails,
	category string,
	price float64,
) (*models.AppointmentRecord, error) {
	// Step 1: re-validate availability.
	busy, err := c.Calendar.QueryBusy(ctx, slot.Start, slot.End)
	if err != nil {
		return nil, newBookingError(CodeCalendarUnavailable, "could not re-check slot availability", err)
	}
	if !slotAvailable(slot, busy, c.Hours) {
		c.Logger.Warn("confirm: slot taken between read and write",
			zap.Time("start", slot.Start), zap.Time("end", slot.End))
		return nil, newBookingError(CodeSlotNoLongerAvailable, "the selected slot has been booked by someone else", nil)
	}

	// Step 2: calendar write.
	eventID, err := c.Calendar.CreateEvent(ctx, models.EventRequest{
		Interval:      slot.Interval(),
		Summary:       fmt.Sprintf("%s - %s", FormatCategory(category), customer.Name),
		Description:   fmt.Sprintf("Type: %s\nPhone: %s\nNotes: %s", category, customer.Phone, customer.Notes),
		AttendeeEmail: customer.Email,
		EmailReminder: 24 * time.Hour,
		PopupReminder: 30 * time.Minute,
	})
	if err != nil {
		c.Logger.Error("confirm: calendar write failed", zap.Error(err))
		return nil, newBookingError(CodeCalendarWriteFailed, "could not create the calendar appointment", err)
	}

	record := &models.AppointmentRecord{
		ID:            eventID,
		Interval:      slot.Interval(),
		Category:      category,
		CustomerEmail: customer.Email,
		CustomerName:  customer.Name,
		Description:   fmt.Sprintf("Type: %s\nPhone: %s\nNotes: %s", category, customer.Phone, customer.Notes),
		TotalPrice:    price,
		CreatedAt:     time.Now(),
	}

	if c.Records != nil {
		if err := c.Records.Create(ctx, *record); err != nil {
			c.Logger.Warn("confirm: failed to persist audit record", zap.String("eventId", eventID), zap.Error(err))
		}
	}

	// Step 3: confirmation email, best effort.
	subject := "Your Appointment Confirmation"
	body := c.confirmationBody(slot, category)
	if err := c.Mailer.Send(ctx, customer.Email, subject, body, ""); err != nil {
		c.Logger.Warn("confirm: confirmation email failed, booking stands",
			zap.String("to", customer.Email), zap.Error(err))
		return record, newBookingError(CodeConfirmationMessageFailed, "appointment booked, but the confirmation email could not be sent", err)
	}

	return record, nil
}

func (c *AppointmentConfirmer) confirmationBody(slot models.Slot, category string) string {
	loc := c.Hours.Location
	if loc == nil {
		loc = time.UTC
	}
	start := slot.Start.In(loc)
	end := slot.End.In(loc)

	return fmt.Sprintf(`Your %s appointment has been confirmed!

Details:
Date & Time: %s - %s %s
Duration: %d minutes

Please remember:
- Arrive 5 minutes early
- Bring any relevant medical records
- 24-hour cancellation notice required

Thank you for booking with us!`,
		strings.ReplaceAll(category, "_", " "),
		start.Format("January 02, 2006 03:04 PM"),
		end.Format("03:04 PM"),
		start.Format("MST"),
		slot.DurationMinutes(),
	)
}

// FormatCategory renders a category identifier for humans:
// "follow_up" becomes "Follow Up".
func FormatCategory(category string) string {
	words := strings.Split(strings.ReplaceAll(category, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
