package calexport_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leedz/internal/calexport"
	"leedz/internal/entity"
)

func TestBuildEvent_Timed(t *testing.T) {
	booking := entity.NewBooking(map[string]any{
		"title":       "Wedding Reception",
		"location":    "Grand Hall, Austin TX 78701",
		"description": "Four hour set",
		"startDate":   "2025-11-05",
		"startTime":   "18:00",
		"endTime":     "22:00",
	})
	client := entity.NewClient(map[string]any{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	})

	event, err := calexport.BuildEvent(booking, client)
	require.NoError(t, err)

	assert.Equal(t, "Wedding Reception", event.Summary)
	assert.Equal(t, "Grand Hall, Austin TX 78701", event.Location)
	assert.Equal(t, "Four hour set", event.Description)

	require.NotNil(t, event.Start)
	require.NotNil(t, event.End)
	assert.True(t, strings.HasPrefix(event.Start.DateTime, "2025-11-05T18:00:00"))
	assert.True(t, strings.HasPrefix(event.End.DateTime, "2025-11-05T22:00:00"))
	assert.Empty(t, event.Start.Date)
	assert.NotEmpty(t, event.Start.TimeZone)
	assert.Equal(t, event.Start.TimeZone, event.End.TimeZone)

	require.Len(t, event.Attendees, 1)
	assert.Equal(t, "jane@example.com", event.Attendees[0].Email)
	assert.Equal(t, "Jane Doe", event.Attendees[0].DisplayName)
}

func TestBuildEvent_AllDayWhenClocksMissing(t *testing.T) {
	booking := entity.NewBooking(map[string]any{
		"title":     "Conference",
		"startDate": "2025-06-10",
		"endDate":   "2025-06-12",
	})

	event, err := calexport.BuildEvent(booking, nil)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-10", event.Start.Date)
	assert.Equal(t, "2025-06-12", event.End.Date)
	assert.Empty(t, event.Start.DateTime)
	assert.Empty(t, event.Attendees)
}

func TestBuildEvent_EndDateDefaultsToStart(t *testing.T) {
	booking := entity.NewBooking(map[string]any{
		"title":     "Site Visit",
		"startDate": "2025-06-10",
	})

	event, err := calexport.BuildEvent(booking, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", event.End.Date)
}

func TestBuildEvent_Errors(t *testing.T) {
	_, err := calexport.BuildEvent(entity.NewBooking(nil), nil)
	assert.Error(t, err)

	booking := entity.NewBooking(map[string]any{
		"startDate": "2025-06-10",
		"startTime": "lunchtime",
		"endTime":   "22:00",
	})
	_, err = calexport.BuildEvent(booking, nil)
	assert.Error(t, err)
}

func TestBuildEvent_SkipsAttendeeWithoutEmail(t *testing.T) {
	booking := entity.NewBooking(map[string]any{
		"title":     "Gig",
		"startDate": "2025-06-10",
	})
	client := entity.NewClient(map[string]any{"name": "Jane Doe"})

	event, err := calexport.BuildEvent(booking, client)
	require.NoError(t, err)
	assert.Empty(t, event.Attendees)
}
