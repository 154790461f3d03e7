// Package format holds the pure value-normalization helpers shared by the
// parsers, the state container and the share pipeline: clock conversions,
// display dates, durations, money, phones and zips.
package format

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"leedz/shared/timezone"
)

const (
	ISODateLayout = "2006-01-02"
	ClockLayout   = "15:04"

	minutesPerDay  = 24 * 60
	centsPerDollar = 100
)

// currentYear is captured once at process start. Year defaulting must not drift
// across a midnight rollover mid-session.
var currentYear = time.Now().Year()

// CurrentYear returns the year captured at package load time.
func CurrentYear() int {
	return currentYear
}

var (
	clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*([ap]m?)?$`)
	pricePattern = regexp.MustCompile(`^\$?\s*(\d+)(?:\.(\d{1,2}))?$`)
	digitPattern = regexp.MustCompile(`\D`)
)

// To24Hour normalizes a clock string to "HH:MM". Accepted shapes: "19:00",
// "7:00 PM", "7pm", "7". Minutes default to 00.
func To24Hour(clock string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(clock))
	if cleaned == "" {
		return "", errors.New("empty clock string")
	}

	matches := clockPattern.FindStringSubmatch(cleaned)
	if matches == nil {
		return "", fmt.Errorf("unrecognized clock format: %q", clock)
	}

	hour, err := strconv.Atoi(matches[1])
	if err != nil {
		return "", fmt.Errorf("invalid hour in %q: %w", clock, err)
	}

	minute := 0
	if matches[2] != "" {
		minute, err = strconv.Atoi(matches[2])
		if err != nil {
			return "", fmt.Errorf("invalid minute in %q: %w", clock, err)
		}
	}

	switch marker := matches[3]; {
	case strings.HasPrefix(marker, "p"):
		if hour < 12 {
			hour += 12
		}
	case strings.HasPrefix(marker, "a"):
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 {
		return "", fmt.Errorf("clock out of range: %q", clock)
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// To12Hour renders a 24-hour "HH:MM" clock as "H:MM AM/PM".
func To12Hour(clock string) (string, error) {
	normalized, err := To24Hour(clock)
	if err != nil {
		return "", err
	}

	t, err := time.Parse(ClockLayout, normalized)
	if err != nil {
		return "", fmt.Errorf("invalid clock %q: %w", clock, err)
	}

	return t.Format("3:04 PM"), nil
}

// ClockMinutes converts a clock string to minutes since midnight.
func ClockMinutes(clock string) (int, error) {
	normalized, err := To24Hour(clock)
	if err != nil {
		return 0, err
	}

	hour, _ := strconv.Atoi(normalized[:2])
	minute, _ := strconv.Atoi(normalized[3:])

	return hour*60 + minute, nil
}

// DurationHours returns the hours between two clock strings, rounded to one
// decimal. An end before the start is treated as crossing midnight once, so the
// result is always in [0, 24).
func DurationHours(startClock, endClock string) (float64, error) {
	startMinutes, err := ClockMinutes(startClock)
	if err != nil {
		return 0, err
	}

	endMinutes, err := ClockMinutes(endClock)
	if err != nil {
		return 0, err
	}

	diff := endMinutes - startMinutes
	if diff < 0 {
		diff += minutesPerDay
	}

	return RoundHours(float64(diff) / 60), nil
}

// RoundHours rounds an hour count to one decimal place.
func RoundHours(hours float64) float64 {
	return float64(int(hours*10+0.5)) / 10
}

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var weekdays = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
	"sun": true, "mon": true, "tue": true, "tues": true, "wed": true,
	"thu": true, "thur": true, "thurs": true, "fri": true, "sat": true,
}

// ParseDisplayDate converts a human date like "November 5, 2025", "Nov 5" or
// "Sunday, August 24" to an ISO date. A missing year defaults to the year
// captured at load time. Already-ISO input passes through after validation.
func ParseDisplayDate(display string) (string, error) {
	cleaned := strings.TrimSpace(display)
	if cleaned == "" {
		return "", errors.New("empty date string")
	}

	if t, err := time.Parse(ISODateLayout, cleaned); err == nil {
		return t.Format(ISODateLayout), nil
	}

	cleaned = strings.ReplaceAll(cleaned, ",", " ")
	fields := strings.Fields(cleaned)

	if len(fields) > 0 && weekdays[strings.ToLower(fields[0])] {
		fields = fields[1:]
	}

	if len(fields) < 2 {
		return "", fmt.Errorf("unrecognized date format: %q", display)
	}

	month, ok := monthsByName[strings.ToLower(fields[0])]
	if !ok {
		return "", fmt.Errorf("unrecognized month in %q", display)
	}

	day, err := strconv.Atoi(strings.TrimSuffix(fields[1], "."))
	if err != nil || day < 1 || day > 31 {
		return "", fmt.Errorf("unrecognized day in %q", display)
	}

	year := currentYear
	if len(fields) >= 3 {
		parsed, err := strconv.Atoi(fields[2])
		if err != nil || parsed < 1000 {
			return "", fmt.Errorf("unrecognized year in %q", display)
		}
		year = parsed
	}

	return time.Date(year, month, day, 12, 0, 0, 0, timezone.GetLocation()).Format(ISODateLayout), nil
}

// FormatDisplayDate renders an ISO date as "Month D, YYYY".
func FormatDisplayDate(isoDate string) (string, error) {
	t, err := time.Parse(ISODateLayout, strings.TrimSpace(isoDate))
	if err != nil {
		return "", fmt.Errorf("invalid ISO date %q: %w", isoDate, err)
	}

	return t.Format("January 2, 2006"), nil
}

// NoonLocal anchors an ISO date at 12:00 in the application timezone. Noon keeps
// the calendar date stable when the value later crosses a UTC conversion.
func NoonLocal(isoDate string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODateLayout, strings.TrimSpace(isoDate), timezone.GetLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", isoDate, err)
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, timezone.GetLocation()), nil
}

// EpochMillis converts an ISO date plus optional clock to epoch milliseconds in
// the application timezone. With no clock the date is anchored at noon.
func EpochMillis(isoDate, clock string) (int64, error) {
	if strings.TrimSpace(clock) == "" {
		noon, err := NoonLocal(isoDate)
		if err != nil {
			return 0, err
		}

		return noon.UnixMilli(), nil
	}

	normalized, err := To24Hour(clock)
	if err != nil {
		return 0, err
	}

	t, err := time.ParseInLocation(ISODateLayout+" "+ClockLayout, strings.TrimSpace(isoDate)+" "+normalized, timezone.GetLocation())
	if err != nil {
		return 0, fmt.Errorf("invalid date/time %q %q: %w", isoDate, clock, err)
	}

	return t.UnixMilli(), nil
}

// PriceToCents parses a price with optional dollar sign and up to two decimals
// into integer cents, enforcing the configured ceiling.
func PriceToCents(price string, maxCents int64) (int64, error) {
	matches := pricePattern.FindStringSubmatch(strings.TrimSpace(price))
	if matches == nil {
		return 0, fmt.Errorf("invalid price: %q", price)
	}

	dollars, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price: %q", price)
	}

	cents := int64(0)
	if matches[2] != "" {
		fraction := matches[2]
		if len(fraction) == 1 {
			fraction += "0"
		}

		cents, err = strconv.ParseInt(fraction, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price: %q", price)
		}
	}

	total := dollars*centsPerDollar + cents
	if maxCents > 0 && total > maxCents {
		return 0, fmt.Errorf("price %q exceeds maximum of %d cents", price, maxCents)
	}

	return total, nil
}

// CentsToPrice renders integer cents as a "$D.CC" string.
func CentsToPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/centsPerDollar, cents%centsPerDollar)
}

// ZipFromLocation extracts the trailing 5-digit zip from a location string.
func ZipFromLocation(location string) (string, error) {
	trimmed := strings.TrimSpace(location)
	if len(trimmed) < 5 {
		return "", fmt.Errorf("location %q has no trailing zip", location)
	}

	zip := trimmed[len(trimmed)-5:]
	for _, r := range zip {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("location %q has no trailing zip", location)
		}
	}

	return zip, nil
}

// NormalizePhone strips separators and an optional leading country code,
// requiring exactly 10 digits.
func NormalizePhone(phone string) (string, error) {
	digits := digitPattern.ReplaceAllString(phone, "")

	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}

	if len(digits) != 10 {
		return "", fmt.Errorf("phone %q does not normalize to 10 digits", phone)
	}

	return digits, nil
}

// SanitizeCurrency coerces a free-form money string ("$150", "150.00") to a
// non-negative float, returning 0 on anything unparseable.
func SanitizeCurrency(value string) float64 {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "$"))
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 {
		return 0
	}

	return parsed
}
