package parser

import (
	"strings"

	"leedz/internal/entity"
	"leedz/shared/format"
)

// mergeClient fills only the client fields that are still empty after
// trimming. Scraped values always win over model output.
func mergeClient(client *entity.Client, extracted map[string]any) {
	for _, field := range entity.ClientFieldNames() {
		raw, ok := extracted[field]
		if !ok {
			continue
		}

		value, ok := raw.(string)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}

		current, _ := client.Get(field)
		if strings.TrimSpace(current) != "" {
			continue
		}

		_ = client.Set(field, value)
	}
}

// mergeBooking fills only the booking fields that are still empty. Rate and
// total fields go through currency sanitizing; duration is coerced to a float
// or dropped.
func mergeBooking(booking *entity.Booking, extracted map[string]any) {
	for _, field := range entity.BookingFieldNames() {
		raw, ok := extracted[field]
		if !ok {
			continue
		}

		if bookingFieldSet(booking, field) {
			continue
		}

		switch field {
		case entity.BookingFieldHourlyRate, entity.BookingFieldFlatRate, entity.BookingFieldTotalAmount:
			if text, ok := raw.(string); ok {
				if amount := format.SanitizeCurrency(text); amount > 0 {
					_ = booking.Set(field, amount)
				}

				continue
			}

			if amount, ok := raw.(float64); ok && amount > 0 {
				_ = booking.Set(field, amount)
			}
		case entity.BookingFieldDuration:
			if amount, ok := raw.(float64); ok && amount > 0 {
				_ = booking.Set(field, amount)
			}
		default:
			if text, ok := raw.(string); ok && strings.TrimSpace(text) != "" {
				_ = booking.Set(field, text)
			}
		}
	}
}

func bookingFieldSet(booking *entity.Booking, field string) bool {
	value, ok := booking.Get(field)
	if !ok {
		return false
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case float64:
		return v != 0
	default:
		return false
	}
}
