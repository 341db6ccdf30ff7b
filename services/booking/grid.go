package booking

import (
	"time"

	"medibook/models"
)

// ComputeSlots walks [rangeStart, rangeEnd) in fixed duration increments and
// returns every candidate window that fits the business-hours policy and
// touches no busy interval, ordered by ascending start time.
//
// Candidate starts are grid-aligned to rangeStart, not to wall-clock
// midnight. That is a deliberate choice inherited from the booking flow
// (callers pass midnight-anchored ranges); changing the alignment changes
// which slots exist, not their validity.
//
// Candidates outside business hours are skipped but the cursor still
// advances by duration, so multi-day ranges produce overnight runs of
// rejected candidates rather than jumping to the next opening.
func ComputeSlots(
	rangeStart, rangeEnd time.Time,
	duration time.Duration,
	busy []models.TimeInterval,
	hours models.BusinessHours,
) []models.Slot {
	if duration <= 0 || !rangeEnd.After(rangeStart) {
		return nil
	}

	loc := hours.Location
	if loc == nil {
		loc = time.UTC
	}

	var slots []models.Slot
	// Normalize once so every hour comparison happens in the policy zone.
	for cursor := rangeStart.In(loc); cursor.Before(rangeEnd); cursor = cursor.Add(duration) {
		slot := models.Slot{Start: cursor, End: cursor.Add(duration)}
		if slotAvailable(slot, busy, hours) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// slotAvailable is the single acceptance rule shared by grid computation
// and the pre-write re-check in the confirmer: the slot must sit entirely
// inside the business-hours window of its local day and overlap no busy
// interval.
func slotAvailable(slot models.Slot, busy []models.TimeInterval, hours models.BusinessHours) bool {
	loc := hours.Location
	if loc == nil {
		loc = time.UTC
	}

	start := slot.Start.In(loc)
	if h := start.Hour(); h < hours.StartHour || h >= hours.EndHour {
		return false
	}
	// The slot may not spill past closing time on its own day.
	closing := time.Date(start.Year(), start.Month(), start.Day(), hours.EndHour, 0, 0, 0, loc)
	if slot.End.After(closing) {
		return false
	}

	for _, b := range busy {
		if slot.Interval().Overlaps(b) {
			return false
		}
	}
	return true
}
