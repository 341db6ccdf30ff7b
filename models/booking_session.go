package models

import "time"

// BookingStep enumerates the wizard states of a booking session.
type BookingStep string

const (
	StepSelectSlot     BookingStep = "select_slot"
	StepConfirmDetails BookingStep = "confirm_details"
	StepPayment        BookingStep = "payment"
	StepDone           BookingStep = "done"
)

// CustomerDetails is the patient information collected at the
// confirm-details step. Name, Email and Phone are required.
type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// BookingSession holds the resumable state of one in-progress booking.
// It is an explicit value owned by exactly one user interaction; the
// handler layer persists it in redis keyed by SessionID.
type BookingSession struct {
	SessionID     string           `json:"sessionId"`
	Step          BookingStep      `json:"step"`
	Category      string           `json:"category"`
	CustomerEmail string           `json:"customerEmail,omitempty"`
	Availability  []Slot           `json:"availability,omitempty"`
	SelectedSlot  *Slot            `json:"selectedSlot,omitempty"`
	Customer      *CustomerDetails `json:"customer,omitempty"`
	QuotedPrice   float64          `json:"quotedPrice,omitempty"`
	PaymentURL    string           `json:"paymentUrl,omitempty"`
	AppointmentID string           `json:"appointmentId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// BookingSessionResponse is the wire shape returned after each transition.
// StepFailed and InputPreserved tell the caller which step broke and
// whether prior input (slot choice, details) survived.
type BookingSessionResponse struct {
	Session        *BookingSession    `json:"session,omitempty"`
	Slots          []Slot             `json:"slots,omitempty"`
	Record         *AppointmentRecord `json:"record,omitempty"`
	Warning        string             `json:"warning,omitempty"`
	StepFailed     string             `json:"stepFailed,omitempty"`
	InputPreserved bool               `json:"inputPreserved,omitempty"`
}
