package calc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leedz/internal/calc"
	"leedz/internal/entity"
)

func TestApply_PrecedenceProperty(t *testing.T) {
	booking := entity.NewBooking(map[string]any{"duration": 4.0})

	require.NoError(t, calc.Apply(booking, "hourlyRate", "$150"))
	assert.InDelta(t, 600, booking.TotalAmount, 0.001)

	// A flat rate always wins over hourly × duration.
	require.NoError(t, calc.Apply(booking, "flatRate", "500"))
	assert.InDelta(t, 500, booking.TotalAmount, 0.001)

	// Clearing it hands the total back to the hourly computation.
	require.NoError(t, calc.Apply(booking, "flatRate", "0"))
	assert.InDelta(t, 600, booking.TotalAmount, 0.001)
}

func TestApply_UserTotalSurvives(t *testing.T) {
	booking := entity.NewBooking(map[string]any{"duration": 4.0, "hourlyRate": 150.0})

	require.NoError(t, calc.Apply(booking, "totalAmount", "999"))
	booking.RecomputeTotal()

	assert.InDelta(t, 999, booking.TotalAmount, 0.001)
}

func TestApply_Duration(t *testing.T) {
	booking := entity.NewBooking(map[string]any{"hourlyRate": 100.0})

	require.NoError(t, calc.Apply(booking, "duration", "2.5"))
	assert.InDelta(t, 250, booking.TotalAmount, 0.001)

	assert.Error(t, calc.Apply(booking, "duration", "lots"))
}

func TestRows(t *testing.T) {
	booking := entity.NewBooking(map[string]any{
		"duration":   3.0,
		"hourlyRate": 150.0,
	})
	booking.RecomputeTotal()

	rows := calc.Rows(booking, true, false)
	require.Len(t, rows, 4)

	assert.Equal(t, "duration", rows[0].Field)
	assert.Equal(t, "3.0", rows[0].Display)

	total := rows[3]
	assert.Equal(t, "totalAmount", total.Field)
	assert.Equal(t, "$450.00", total.Display)
	assert.Equal(t, calc.ClassPayment, total.Class)

	fromDB := calc.Rows(booking, false, true)
	require.Len(t, fromDB, 3)
	for _, row := range fromDB {
		assert.Equal(t, calc.ClassFromDB, row.Class)
	}
}

func TestValidateRates(t *testing.T) {
	booking := entity.NewBooking(map[string]any{})

	ok, msg := calc.ValidateRates(booking)
	assert.False(t, ok)
	assert.NotEmpty(t, msg)

	booking.HourlyRate = 100
	ok, _ = calc.ValidateRates(booking)
	assert.False(t, ok, "total still missing")

	booking.Duration = 2
	booking.RecomputeTotal()

	ok, msg = calc.ValidateRates(booking)
	assert.True(t, ok)
	assert.Empty(t, msg)
}
