package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leedz/internal/entity"
)

func TestMergeClient_NeverOverwritesScrapedFields(t *testing.T) {
	client := entity.NewClient(map[string]any{
		"name":  "Jane Doe",
		"email": "jane@ex.com",
	})

	mergeClient(client, map[string]any{
		"name":    "Janet Doe",
		"email":   "other@ex.com",
		"phone":   "4155551234",
		"company": "   ",
		"website": "https://jane.example",
	})

	assert.Equal(t, "Jane Doe", client.Name)
	assert.Equal(t, "jane@ex.com", client.Email)
	assert.Equal(t, "4155551234", client.Phone)
	assert.Empty(t, client.Company)
	assert.Equal(t, "https://jane.example", client.Website)
}

func TestMergeClient_WhitespaceCountsAsEmpty(t *testing.T) {
	client := entity.NewClient(map[string]any{"name": "Jane"})
	require.NoError(t, client.Set("company", "   "))

	mergeClient(client, map[string]any{"company": "Analytical Engines"})

	assert.Equal(t, "Analytical Engines", client.Company)
}

func TestMergeBooking_FillsOnlyHoles(t *testing.T) {
	booking := entity.NewBooking(map[string]any{
		"title":      "Reception",
		"hourlyRate": 100.0,
	})

	mergeBooking(booking, map[string]any{
		"title":      "Different title",
		"hourlyRate": 250.0,
		"flatRate":   "$500",
		"startDate":  "2026-09-12",
		"duration":   3.5,
	})

	assert.Equal(t, "Reception", booking.Title)
	assert.InDelta(t, 100, booking.HourlyRate, 0.001)
	assert.InDelta(t, 500, booking.FlatRate, 0.001)
	assert.Equal(t, "2026-09-12", booking.StartDate)
	assert.InDelta(t, 3.5, booking.Duration, 0.001)
}

func TestMergeBooking_RejectsUnsanitizableCurrency(t *testing.T) {
	booking := entity.NewBooking(map[string]any{})

	mergeBooking(booking, map[string]any{
		"hourlyRate": "call for pricing",
		"flatRate":   -100.0,
	})

	assert.Zero(t, booking.HourlyRate)
	assert.Zero(t, booking.FlatRate)
}
