// Package calc is the reactive rate calculator: editable money rows that
// re-run the precedence rule on every edit, and the gate that dependent
// actions (responder email, paid leed) check before they run.
package calc

import (
	"strconv"
	"strings"

	"leedz/internal/entity"
	"leedz/shared/format"
)

// Semantic row classes; the rendering layer maps them to styling.
const (
	ClassFromDB  = "value-from-db"
	ClassPayment = "value-payment"
	ClassDerived = "value-derived"
)

// Row is one rendered calculator line.
type Row struct {
	Field    string  `json:"field"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Display  string  `json:"display"`
	Editable bool    `json:"editable"`
	Class    string  `json:"class"`
}

var rowLabels = map[string]string{
	entity.BookingFieldDuration:    "Duration (hours)",
	entity.BookingFieldHourlyRate:  "Hourly rate",
	entity.BookingFieldFlatRate:    "Flat rate",
	entity.BookingFieldTotalAmount: "Total",
}

// Rows builds the calculator lines for a booking. withDuration adds the
// duration row on pages that own one; fromDB marks every row loaded from
// persistence rather than typed or parsed.
func Rows(booking *entity.Booking, withDuration, fromDB bool) []Row {
	fields := []string{
		entity.BookingFieldHourlyRate,
		entity.BookingFieldFlatRate,
		entity.BookingFieldTotalAmount,
	}

	if withDuration {
		fields = append([]string{entity.BookingFieldDuration}, fields...)
	}

	rows := make([]Row, 0, len(fields))

	for _, field := range fields {
		value, _ := booking.Get(field)
		amount, _ := value.(float64)

		row := Row{
			Field:    field,
			Label:    rowLabels[field],
			Value:    amount,
			Editable: true,
		}

		switch {
		case fromDB:
			row.Class = ClassFromDB
		case field == entity.BookingFieldTotalAmount:
			row.Class = ClassPayment
		default:
			row.Class = ClassDerived
		}

		if field == entity.BookingFieldDuration {
			row.Display = strconv.FormatFloat(amount, 'f', 1, 64)
		} else {
			row.Display = "$" + strconv.FormatFloat(amount, 'f', 2, 64)
		}

		rows = append(rows, row)
	}

	return rows
}

// Apply takes one edited row value, writes it through the booking's setter
// and re-runs the precedence recompute.
func Apply(booking *entity.Booking, field, text string) error {
	var err error

	if field == entity.BookingFieldDuration {
		var hours float64

		hours, err = strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err == nil {
			err = booking.Set(field, hours)
		}
	} else {
		err = booking.Set(field, format.SanitizeCurrency(text))
	}

	if err != nil {
		return err
	}

	booking.RecomputeTotal()

	return nil
}

// ValidateRates gates dependent actions: at least one rate must be set and
// the total must have resolved.
func ValidateRates(booking *entity.Booking) (bool, string) {
	if booking.HourlyRate <= 0 && booking.FlatRate <= 0 {
		return false, "set an hourly or flat rate first"
	}

	if booking.TotalAmount <= 0 {
		return false, "the total has not been calculated yet"
	}

	return true, ""
}
