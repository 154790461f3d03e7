// Package calexport turns a saved booking into a Google Calendar event. The
// OAuth flow and the insert call belong to the host; this package only builds
// the event object.
package calexport

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"leedz/internal/entity"
	"leedz/shared/format"
	"leedz/shared/timezone"
)

// BuildEvent maps the booking to an event: timed when both clocks are
// present, all-day otherwise. The end date defaults to the start date and the
// client's email becomes the attendee.
func BuildEvent(booking *entity.Booking, client *entity.Client) (*calendar.Event, error) {
	if booking.StartDate == "" {
		return nil, fmt.Errorf("booking has no start date")
	}

	endDate := booking.EndDate
	if endDate == "" {
		endDate = booking.StartDate
	}

	event := &calendar.Event{
		Summary:     booking.Title,
		Location:    booking.Location,
		Description: booking.Description,
	}

	if booking.StartTime != "" && booking.EndTime != "" {
		start, err := timedStamp(booking.StartDate, booking.StartTime)
		if err != nil {
			return nil, fmt.Errorf("building event start: %w", err)
		}

		end, err := timedStamp(endDate, booking.EndTime)
		if err != nil {
			return nil, fmt.Errorf("building event end: %w", err)
		}

		zone := timezone.GetLocation().String()
		event.Start = &calendar.EventDateTime{DateTime: start, TimeZone: zone}
		event.End = &calendar.EventDateTime{DateTime: end, TimeZone: zone}
	} else {
		event.Start = &calendar.EventDateTime{Date: booking.StartDate}
		event.End = &calendar.EventDateTime{Date: endDate}
	}

	if client != nil && client.Email != "" {
		event.Attendees = []*calendar.EventAttendee{
			{Email: client.Email, DisplayName: client.Name},
		}
	}

	return event, nil
}

// timedStamp renders an RFC3339 timestamp at the local offset.
func timedStamp(isoDate, clock string) (string, error) {
	minutes, err := format.ClockMinutes(clock)
	if err != nil {
		return "", err
	}

	day, err := format.NoonLocal(isoDate)
	if err != nil {
		return "", err
	}

	stamp := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).
		Add(time.Duration(minutes) * time.Minute)

	return stamp.Format(time.RFC3339), nil
}
