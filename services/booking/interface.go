package booking

import (
	"context"
	"time"

	"medibook/models"
)

// CalendarService is the external calendar collaborator: busy-interval
// reads and event writes. No distributed lock exists between the two, so
// a read-then-write race is possible; the confirmer's re-check narrows it.
type CalendarService interface {
	QueryBusy(ctx context.Context, start, end time.Time) ([]models.TimeInterval, error)
	CreateEvent(ctx context.Context, req models.EventRequest) (string, error)
}

// MessagingService sends outbound mail. An empty threadID starts a new
// conversation instead of replying.
type MessagingService interface {
	Send(ctx context.Context, to, subject, body, threadID string) error
}

// PaymentService creates hosted checkout links.
type PaymentService interface {
	CreateCheckout(ctx context.Context, req models.CheckoutRequest) (string, error)
}

// BookingSessionService drives the multi-step booking wizard. Transitions
// mutate the explicit session value; the caller owns persistence.
type BookingSessionService interface {
	StartSession(ctx context.Context, category, customerEmail string) (*models.BookingSession, error)
	SelectSlot(ctx context.Context, session *models.BookingSession, slot models.Slot) error
	SubmitDetails(ctx context.Context, session *models.BookingSession, details models.CustomerDetails) error
	CompletePayment(ctx context.Context, session *models.BookingSession) (*models.AppointmentRecord, string, error)
	Back(session *models.BookingSession) error
}
