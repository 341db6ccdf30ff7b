package booking

import (
	"context"
	"time"

	"medibook/models"

	"go.uber.org/zap"
)

// AvailabilityService computes the current slot grid against the live
// calendar. Results are computed independently per query; nothing is
// cached across calls.
type AvailabilityService struct {
	Calendar CalendarService
	Hours    models.BusinessHours
	Logger   *zap.Logger
}

// GetAvailableSlots queries busy intervals for the range and runs the
// grid over them. A failed busy query surfaces calendarUnavailable with
// no slots; retry policy belongs to the caller.
func (s *AvailabilityService) GetAvailableSlots(
	ctx context.Context,
	rangeStart, rangeEnd time.Time,
	duration time.Duration,
) ([]models.Slot, error) {
	busy, err := s.Calendar.QueryBusy(ctx, rangeStart, rangeEnd)
	if err != nil {
		s.Logger.Error("availability: busy-interval query failed", zap.Error(err))
		return nil, newBookingError(CodeCalendarUnavailable, "could not read calendar availability", err)
	}
	return ComputeSlots(rangeStart, rangeEnd, duration, busy, s.Hours), nil
}
