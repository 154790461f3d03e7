package parser

import (
	"context"
	"fmt"
	"time"

	"leedz/internal/page"
)

const (
	calendarModalSelector       = "[role=dialog]"
	calendarHeadingSelector     = "h1, h2, [role=heading]"
	calendarLocationSelector    = "[data-location], .event-location"
	calendarDescriptionSelector = "[data-description], .event-description"

	calendarModalTimeout = 10 * time.Second
)

// Calendar extracts the open event modal into a booking: title, the
// date-time range string, location and description. The modal is rendered
// asynchronously, so parsing waits for it first.
type Calendar struct{}

func NewCalendar() *Calendar {
	return &Calendar{}
}

func (p *Calendar) Name() string {
	return "gcal"
}

func (p *Calendar) MatchPage(url string) bool {
	return containsAny(url, "calendar.google.com")
}

// QuickIdentity yields nothing: an event modal names an event, not a person.
func (p *Calendar) QuickIdentity(ctx context.Context, doc page.Adapter) *page.Identity {
	return nil
}

func (p *Calendar) Parse(ctx context.Context, doc page.Adapter) (*Patch, error) {
	modal, err := doc.WaitForElement(ctx, calendarModalSelector, calendarModalTimeout)
	if err != nil {
		return nil, fmt.Errorf("event modal never appeared: %w", err)
	}

	patch := &Patch{Source: "gcal", Booking: map[string]any{}}

	if heading, ok := modal.QueryOne(calendarHeadingSelector); ok {
		patch.Booking["title"] = heading.Text()
	}

	if dateRange, ok := p.findDateRange(modal); ok {
		patch.Booking["startDate"] = dateRange.StartDate
		patch.Booking["endDate"] = dateRange.EndDate

		if dateRange.StartTime != "" {
			patch.Booking["startTime"] = dateRange.StartTime
			patch.Booking["endTime"] = dateRange.EndTime
		}
	}

	if location, ok := modal.QueryOne(calendarLocationSelector); ok {
		patch.Booking["location"] = location.Text()
	}

	if description, ok := modal.QueryOne(calendarDescriptionSelector); ok {
		patch.Booking["description"] = description.Text()
	}

	patch.LLMContent = modal.Text()

	return patch, nil
}

// findDateRange scans the modal for the first element whose whole text parses
// as a range string.
func (p *Calendar) findDateRange(modal page.Element) (DateRange, bool) {
	for _, el := range modal.Query("*") {
		text := el.Text()

		// Range strings are short; anything longer is a container whose
		// text swallowed the rest of the modal.
		if len(text) > 70 {
			continue
		}

		if dateRange, ok := ParseDateRange(text); ok {
			return dateRange, true
		}
	}

	return DateRange{}, false
}
