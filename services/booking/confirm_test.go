package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmSlot(t *testing.T) models.Slot {
	loc := nyLocation(t)
	return models.Slot{
		Start: time.Date(2025, time.March, 17, 10, 0, 0, 0, loc),
		End:   time.Date(2025, time.March, 17, 10, 30, 0, 0, loc),
	}
}

func TestConfirmCreatesEventAndEmails(t *testing.T) {
	cal := &stubCalendar{}
	mail := &stubMailer{}
	c := testConfirmer(t, cal, mail, testHours(t))

	record, err := c.Confirm(context.Background(), confirmSlot(t), validDetails(), models.CategoryFollowUp, 75.00)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "evt-1", record.ID)
	assert.Equal(t, 75.00, record.TotalPrice)
	assert.Equal(t, models.CategoryFollowUp, record.Category)

	require.NotNil(t, cal.createdEvent)
	assert.Equal(t, "Follow Up - Jane Doe", cal.createdEvent.Summary)
	assert.Contains(t, cal.createdEvent.Description, "Phone: 555-0100")
	assert.Contains(t, cal.createdEvent.Description, "Notes: first visit")
	assert.Equal(t, "jane@example.com", cal.createdEvent.AttendeeEmail)
	assert.Equal(t, 24*time.Hour, cal.createdEvent.EmailReminder)
	assert.Equal(t, 30*time.Minute, cal.createdEvent.PopupReminder)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "jane@example.com", mail.sent[0].To)
	assert.Equal(t, "Your Appointment Confirmation", mail.sent[0].Subject)
	assert.Contains(t, mail.sent[0].Body, "follow up appointment has been confirmed")
	assert.Contains(t, mail.sent[0].Body, "Arrive 5 minutes early")
	assert.Contains(t, mail.sent[0].Body, "24-hour cancellation notice")
	assert.Contains(t, mail.sent[0].Body, "Duration: 30 minutes")
}

func TestConfirmRevalidatesBeforeWriting(t *testing.T) {
	slot := confirmSlot(t)
	cal := &stubCalendar{queryBusy: func(context.Context, time.Time, time.Time) ([]models.TimeInterval, error) {
		return []models.TimeInterval{slot.Interval()}, nil
	}}
	mail := &stubMailer{}
	c := testConfirmer(t, cal, mail, testHours(t))

	record, err := c.Confirm(context.Background(), slot, validDetails(), models.CategoryGeneral, 50.00)

	assert.True(t, IsCode(err, CodeSlotNoLongerAvailable))
	assert.Nil(t, record)
	assert.Nil(t, cal.createdEvent)
	assert.Empty(t, mail.sent)
}

func TestConfirmCalendarReadFailure(t *testing.T) {
	cal := &stubCalendar{queryBusy: func(context.Context, time.Time, time.Time) ([]models.TimeInterval, error) {
		return nil, errors.New("freebusy: timeout")
	}}
	c := testConfirmer(t, cal, &stubMailer{}, testHours(t))

	record, err := c.Confirm(context.Background(), confirmSlot(t), validDetails(), models.CategoryGeneral, 50.00)

	assert.True(t, IsCode(err, CodeCalendarUnavailable))
	assert.Nil(t, record)
}

func TestConfirmCalendarWriteFailure(t *testing.T) {
	cal := &stubCalendar{createEvent: func(context.Context, models.EventRequest) (string, error) {
		return "", errors.New("insert: 500")
	}}
	mail := &stubMailer{}
	c := testConfirmer(t, cal, mail, testHours(t))

	record, err := c.Confirm(context.Background(), confirmSlot(t), validDetails(), models.CategoryGeneral, 50.00)

	assert.True(t, IsCode(err, CodeCalendarWriteFailed))
	assert.Nil(t, record)
	assert.Empty(t, mail.sent, "no confirmation for an unwritten event")
}

func TestConfirmEmailFailureReturnsRecordWithWarning(t *testing.T) {
	cal := &stubCalendar{}
	mail := &stubMailer{sendErr: errors.New("smtp: refused")}
	c := testConfirmer(t, cal, mail, testHours(t))

	record, err := c.Confirm(context.Background(), confirmSlot(t), validDetails(), models.CategoryGeneral, 50.00)

	require.NotNil(t, record, "the booking stands even when the email fails")
	assert.True(t, IsCode(err, CodeConfirmationMessageFailed))
	assert.NotNil(t, cal.createdEvent)
}

func TestConfirmPersistsAuditRecord(t *testing.T) {
	cal := &stubCalendar{}
	records := &stubRecords{}
	c := testConfirmer(t, cal, &stubMailer{}, testHours(t))
	c.Records = records

	record, err := c.Confirm(context.Background(), confirmSlot(t), validDetails(), models.CategoryConsultation, 100.00)

	require.NoError(t, err)
	require.Len(t, records.created, 1)
	assert.Equal(t, record.ID, records.created[0].ID)
	assert.Equal(t, "jane@example.com", records.created[0].CustomerEmail)
}

func TestConfirmAuditFailureDoesNotBlockBooking(t *testing.T) {
	cal := &stubCalendar{}
	c := testConfirmer(t, cal, &stubMailer{}, testHours(t))
	c.Records = &stubRecords{createErr: errors.New("mongo: down")}

	record, err := c.Confirm(context.Background(), confirmSlot(t), validDetails(), models.CategoryConsultation, 100.00)

	require.NoError(t, err)
	require.NotNil(t, record)
}

func TestFormatCategory(t *testing.T) {
	assert.Equal(t, "Follow Up", FormatCategory("follow_up"))
	assert.Equal(t, "Consultation", FormatCategory("consultation"))
	assert.Equal(t, "General", FormatCategory("general"))
	assert.Equal(t, "", FormatCategory(""))
}
