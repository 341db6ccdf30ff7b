package calendar

import (
	"context"
	"fmt"
	"time"

	"medibook/models"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarService talks to a single Google calendar: freebusy reads
// for the availability grid, event inserts for confirmed bookings.
type GoogleCalendarService struct {
	svc        *gcal.Service
	calendarID string
	logger     *zap.Logger
}

func NewGoogleCalendarService(ctx context.Context, credentialsFile, calendarID string, logger *zap.Logger) (*GoogleCalendarService, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}
	return &GoogleCalendarService{svc: svc, calendarID: calendarID, logger: logger}, nil
}

// QueryBusy returns the occupied intervals on the calendar between start
// and end, as reported by the freebusy endpoint.
func (g *GoogleCalendarService) QueryBusy(ctx context.Context, start, end time.Time) ([]models.TimeInterval, error) {
	req := &gcal.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}
	resp, err := g.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed: %w", err)
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		return nil, nil
	}

	var busy []models.TimeInterval
	for _, p := range cal.Busy {
		bs, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			g.logger.Warn("skipping unparseable busy start", zap.String("value", p.Start), zap.Error(err))
			continue
		}
		be, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			g.logger.Warn("skipping unparseable busy end", zap.String("value", p.End), zap.Error(err))
			continue
		}
		busy = append(busy, models.TimeInterval{Start: bs, End: be})
	}
	return busy, nil
}

// CreateEvent inserts the appointment event and returns its ID. Invites
// go out to the attendee (sendUpdates=all); default reminders are
// replaced by the request's email and popup lead times.
func (g *GoogleCalendarService) CreateEvent(ctx context.Context, req models.EventRequest) (string, error) {
	event := &gcal.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start: &gcal.EventDateTime{
			DateTime: req.Interval.Start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: req.Interval.End.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Attendees: []*gcal.EventAttendee{
			{Email: req.AttendeeEmail},
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: int64(req.EmailReminder.Minutes())},
				{Method: "popup", Minutes: int64(req.PopupReminder.Minutes())},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("event insert failed: %w", err)
	}
	g.logger.Info("calendar event created",
		zap.String("eventId", created.Id),
		zap.String("summary", req.Summary))
	return created.Id, nil
}
