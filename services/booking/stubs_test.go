package booking

import (
	"context"
	"time"

	"medibook/models"

	"go.uber.org/zap"
)

// Hand-rolled collaborator stubs. Function fields override behavior per
// test; nil fields mean "succeed with zero values".

type stubCalendar struct {
	queryBusy   func(ctx context.Context, start, end time.Time) ([]models.TimeInterval, error)
	createEvent func(ctx context.Context, req models.EventRequest) (string, error)

	queryCalls   int
	createdEvent *models.EventRequest
}

func (s *stubCalendar) QueryBusy(ctx context.Context, start, end time.Time) ([]models.TimeInterval, error) {
	s.queryCalls++
	if s.queryBusy != nil {
		return s.queryBusy(ctx, start, end)
	}
	return nil, nil
}

func (s *stubCalendar) CreateEvent(ctx context.Context, req models.EventRequest) (string, error) {
	s.createdEvent = &req
	if s.createEvent != nil {
		return s.createEvent(ctx, req)
	}
	return "evt-1", nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type stubMailer struct {
	sendErr error
	sent    []sentMail
}

func (s *stubMailer) Send(ctx context.Context, to, subject, body, threadID string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type stubPayments struct {
	url         string
	err         error
	lastRequest *models.CheckoutRequest
}

func (s *stubPayments) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (string, error) {
	s.lastRequest = &req
	if s.err != nil {
		return "", s.err
	}
	if s.url == "" {
		return "https://pay.example/cs_test", nil
	}
	return s.url, nil
}

type stubRecords struct {
	createErr error
	created   []models.AppointmentRecord
}

func (s *stubRecords) Create(ctx context.Context, record models.AppointmentRecord) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, record)
	return nil
}

func (s *stubRecords) GetByID(ctx context.Context, id string) (*models.AppointmentRecord, error) {
	for i := range s.created {
		if s.created[i].ID == id {
			return &s.created[i], nil
		}
	}
	return nil, nil
}

func (s *stubRecords) ListRecent(ctx context.Context, limit int64) ([]models.AppointmentRecord, error) {
	return s.created, nil
}

func (s *stubRecords) ListByCustomer(ctx context.Context, email string) ([]models.AppointmentRecord, error) {
	var out []models.AppointmentRecord
	for _, r := range s.created {
		if r.CustomerEmail == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func testConfirmer(t interface{ Helper() }, cal *stubCalendar, mail *stubMailer, hours models.BusinessHours) *AppointmentConfirmer {
	t.Helper()
	return &AppointmentConfirmer{
		Calendar: cal,
		Mailer:   mail,
		Hours:    hours,
		Logger:   zap.NewNop(),
	}
}
