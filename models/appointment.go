package models

import "time"

// Appointment categories. Anything unrecognized is coerced to general.
const (
	CategoryConsultation = "consultation"
	CategoryFollowUp     = "follow_up"
	CategoryGeneral      = "general"
)

// TimeInterval is a half-open window [Start, End).
type TimeInterval struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// Overlaps reports whether t and b share any in-progress moment. Two
// intervals that merely touch at a boundary do not overlap: an
// appointment ending at 10:00 does not block one starting at 10:00.
func (t TimeInterval) Overlaps(b TimeInterval) bool {
	startsInside := !t.Start.Before(b.Start) && t.Start.Before(b.End)
	endsInside := t.End.After(b.Start) && !t.End.After(b.End)
	contains := !t.Start.After(b.Start) && !t.End.Before(b.End)
	return startsInside || endsInside || contains
}

// Slot is one bookable appointment window offered to a customer.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (s Slot) Interval() TimeInterval {
	return TimeInterval{Start: s.Start, End: s.End}
}

func (s Slot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// BusinessHours is the clinic's bookable window policy. StartHour is
// inclusive, EndHour exclusive, both wall-clock hours in Location.
type BusinessHours struct {
	StartHour int
	EndHour   int
	Location  *time.Location
}

// AppointmentRecord is the audit-trail row persisted for each confirmed
// appointment. ID is the calendar event ID.
type AppointmentRecord struct {
	ID            string       `json:"id" bson:"id"`
	Interval      TimeInterval `json:"interval" bson:"interval"`
	Category      string       `json:"category" bson:"category"`
	CustomerEmail string       `json:"customerEmail" bson:"customerEmail"`
	CustomerName  string       `json:"customerName" bson:"customerName"`
	Description   string       `json:"description" bson:"description"`
	TotalPrice    float64      `json:"totalPrice" bson:"totalPrice"`
	CreatedAt     time.Time    `json:"createdAt" bson:"createdAt"`
}

// EventRequest describes a calendar event to create for a confirmed
// booking, including the reminder lead times that replace the
// calendar's defaults.
type EventRequest struct {
	Interval      TimeInterval
	Summary       string
	Description   string
	AttendeeEmail string
	EmailReminder time.Duration
	PopupReminder time.Duration
}
