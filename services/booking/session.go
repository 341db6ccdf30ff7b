package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"medibook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingSessionService implements BookingSessionService.
//
// Sessions are explicit values: every transition takes the session,
// mutates it in place, and leaves persistence to the caller. Forward
// transitions are the only place external I/O fires; a failed transition
// leaves the session in its current step with prior input intact.
type DefaultBookingSessionService struct {
	Availability *AvailabilityService
	Payments     PaymentService
	Confirmer    *AppointmentConfirmer
	WindowDays   int
	SlotDuration time.Duration
	Logger       *zap.Logger
	Now          func() time.Time // overridable for tests
}

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// StartSession creates a fresh session at the select-slot step with the
// current availability grid attached. The grid is fetched once here; the
// selected slot is later stored verbatim without a re-fetch.
func (s *DefaultBookingSessionService) StartSession(ctx context.Context, category, customerEmail string) (*models.BookingSession, error) {
	if category == "" {
		category = models.CategoryGeneral
	}

	loc := s.Availability.Hours.Location
	if loc == nil {
		loc = time.UTC
	}
	now := s.now().In(loc)
	// Midnight-anchored window so the slot grid lands on round wall times.
	rangeStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	rangeEnd := rangeStart.AddDate(0, 0, s.WindowDays)

	slots, err := s.Availability.GetAvailableSlots(ctx, rangeStart, rangeEnd, s.SlotDuration)
	if err != nil {
		return nil, err
	}

	session := &models.BookingSession{
		SessionID:     uuid.New().String(),
		Step:          models.StepSelectSlot,
		Category:      category,
		CustomerEmail: customerEmail,
		Availability:  slots,
		CreatedAt:     s.now(),
	}
	s.Logger.Info("booking session started",
		zap.String("sessionId", session.SessionID),
		zap.String("category", category),
		zap.Int("slots", len(slots)))
	return session, nil
}

// SelectSlot moves select_slot -> confirm_details. The slot must be one
// the session was offered; it is stored verbatim.
func (s *DefaultBookingSessionService) SelectSlot(ctx context.Context, session *models.BookingSession, slot models.Slot) error {
	if session.Step != models.StepSelectSlot {
		return newBookingError(CodeInvalidTransition,
			fmt.Sprintf("cannot select a slot from step %q", session.Step), nil)
	}

	offered := false
	for _, c := range session.Availability {
		if c.Start.Equal(slot.Start) && c.End.Equal(slot.End) {
			offered = true
			break
		}
	}
	if !offered {
		return newBookingError(CodeSlotNotOffered, "the chosen slot was not offered in this session", nil)
	}

	session.SelectedSlot = &slot
	session.Step = models.StepConfirmDetails
	return nil
}

// SubmitDetails moves confirm_details -> payment: validates the customer
// details, quotes the cost, and requests a checkout link. On collaborator
// failure the session stays at confirm_details with details preserved.
func (s *DefaultBookingSessionService) SubmitDetails(ctx context.Context, session *models.BookingSession, details models.CustomerDetails) error {
	if session.Step != models.StepConfirmDetails {
		return newBookingError(CodeInvalidTransition,
			fmt.Sprintf("cannot submit details from step %q", session.Step), nil)
	}
	if session.SelectedSlot == nil {
		return newBookingError(CodeInvalidTransition, "no slot selected", nil)
	}
	if err := validateDetails(details); err != nil {
		return err
	}

	session.Customer = &details
	price := Quote(session.Category, session.SelectedSlot.DurationMinutes())

	url, err := s.Payments.CreateCheckout(ctx, models.CheckoutRequest{
		Amount:        price,
		CustomerEmail: details.Email,
		CustomerName:  details.Name,
		Category:      session.Category,
		Metadata: map[string]string{
			"phone":            details.Phone,
			"appointment_time": session.SelectedSlot.Start.Format(time.RFC3339),
			"duration":         strconv.Itoa(session.SelectedSlot.DurationMinutes()),
			"notes":            details.Notes,
		},
	})
	if err != nil {
		s.Logger.Error("payment link generation failed",
			zap.String("sessionId", session.SessionID), zap.Error(err))
		return newBookingError(CodePaymentLinkFailed, "could not generate a payment link, please retry", err)
	}

	session.QuotedPrice = price
	session.PaymentURL = url
	session.Step = models.StepPayment
	return nil
}

// CompletePayment moves payment -> done on the user's payment-completed
// signal. Payment is not verified with the gateway server-side; the
// signal is trusted as-is (known gap, see DESIGN.md).
//
// Returns the created record and, when the confirmation email failed, a
// non-fatal warning. On confirmation failure the session stays at payment
// so the user can retry without paying again.
func (s *DefaultBookingSessionService) CompletePayment(ctx context.Context, session *models.BookingSession) (*models.AppointmentRecord, string, error) {
	if session.Step != models.StepPayment {
		return nil, "", newBookingError(CodeInvalidTransition,
			fmt.Sprintf("cannot complete payment from step %q", session.Step), nil)
	}
	if session.SelectedSlot == nil || session.Customer == nil {
		return nil, "", newBookingError(CodeInvalidTransition, "session is missing slot or customer details", nil)
	}

	record, err := s.Confirmer.Confirm(ctx, *session.SelectedSlot, *session.Customer, session.Category, session.QuotedPrice)
	if err != nil {
		if record != nil && IsCode(err, CodeConfirmationMessageFailed) {
			// The appointment exists; only the email failed.
			session.Step = models.StepDone
			session.AppointmentID = record.ID
			return record, err.Error(), nil
		}
		s.Logger.Warn("confirmation failed, session preserved at payment",
			zap.String("sessionId", session.SessionID), zap.Error(err))
		return nil, "", err
	}

	session.Step = models.StepDone
	session.AppointmentID = record.ID
	return record, "", nil
}

// Back performs the permitted backward transitions, discarding only the
// state captured by the step being left. The selected slot and customer
// details always survive.
func (s *DefaultBookingSessionService) Back(session *models.BookingSession) error {
	switch session.Step {
	case models.StepConfirmDetails:
		session.Step = models.StepSelectSlot
	case models.StepPayment:
		session.PaymentURL = ""
		session.QuotedPrice = 0
		session.Step = models.StepConfirmDetails
	default:
		return newBookingError(CodeInvalidTransition,
			fmt.Sprintf("cannot navigate back from step %q", session.Step), nil)
	}
	return nil
}

func validateDetails(d models.CustomerDetails) error {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(d.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return newBookingError(CodeInvalidDetails,
			fmt.Sprintf("required fields missing: %s", strings.Join(missing, ", ")), nil)
	}
	return nil
}
