package parser

import (
	"regexp"
	"strings"
)

// DateRange is the raw pieces of a calendar range string. Values stay in the
// page's own wording; canonicalization happens when the booking normalizes.
type DateRange struct {
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
}

var (
	// "2:30", "11:00am", "4pm"
	clockPattern = regexp.MustCompile(`^\d{1,2}(?::\d{2})?\s*(?:[ap]m?)?$`)
	meridiem     = regexp.MustCompile(`[ap]m?$`)

	// "August 24, 2026, 2:30am" (date with a trailing clock)
	datedClock = regexp.MustCompile(`^(.*?\d{4}),\s*(\d{1,2}(?::\d{2})?\s*[ap]m?)$`)
)

// ParseDateRange understands the three shapes a calendar event renders:
//
//	"August 24, 2026, 2:30am – August 25, 2026, 11:00am"   multi-day timed
//	"Sunday, August 24⋅2:30 – 4:30pm"                      same-day timed
//	"Sunday, August 24" / "August 24 – August 25, 2026"    all-day
//
// The boolean reports whether the string parsed at all.
func ParseDateRange(raw string) (DateRange, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return DateRange{}, false
	}

	// Same-day timed: a dot separator splits date from the clock range.
	if date, clocks, found := cutAny(text, "⋅", "·"); found {
		return parseSameDay(date, clocks)
	}

	left, right, found := splitRange(text)
	if !found {
		// Single date, all day.
		if looksLikeDate(text) {
			return DateRange{StartDate: text, EndDate: text}, true
		}

		return DateRange{}, false
	}

	// Multi-day timed: both sides carry "Month D, YYYY, H:MMam".
	if startMatch := datedClock.FindStringSubmatch(left); startMatch != nil {
		endMatch := datedClock.FindStringSubmatch(right)
		if endMatch == nil {
			return DateRange{}, false
		}

		return DateRange{
			StartDate: strings.TrimSpace(startMatch[1]),
			EndDate:   strings.TrimSpace(endMatch[1]),
			StartTime: strings.TrimSpace(startMatch[2]),
			EndTime:   strings.TrimSpace(endMatch[2]),
		}, true
	}

	// Multi-day all-day.
	if looksLikeDate(left) && looksLikeDate(right) {
		return DateRange{StartDate: left, EndDate: right}, true
	}

	return DateRange{}, false
}

func parseSameDay(date, clocks string) (DateRange, bool) {
	date = strings.TrimSpace(date)

	start, end, found := splitRange(clocks)
	if !found || !clockPattern.MatchString(start) || !clockPattern.MatchString(end) {
		return DateRange{}, false
	}

	// A bare start clock inherits the end's am/pm marker.
	if !meridiem.MatchString(start) {
		if marker := meridiem.FindString(end); marker != "" {
			start += marker
		}
	}

	return DateRange{
		StartDate: date,
		EndDate:   date,
		StartTime: start,
		EndTime:   end,
	}, true
}

// splitRange cuts on the dash between the two halves, tolerating the dash
// variants pages render.
func splitRange(text string) (string, string, bool) {
	left, right, found := cutAny(text, "–", "—", " - ")
	if !found {
		return "", "", false
	}

	return strings.TrimSpace(left), strings.TrimSpace(right), true
}

func cutAny(text string, separators ...string) (string, string, bool) {
	for _, sep := range separators {
		if left, right, found := strings.Cut(text, sep); found {
			return left, right, true
		}
	}

	return "", "", false
}

// A month name followed by a day number.
var datePattern = regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}`)

func looksLikeDate(text string) bool {
	return datePattern.MatchString(text)
}
