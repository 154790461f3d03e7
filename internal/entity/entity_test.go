package entity_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leedz/internal/entity"
	"leedz/shared/format"
)

func TestClient_RecordRoundTrip(t *testing.T) {
	clients := []*entity.Client{
		entity.NewClient(map[string]any{
			"name":  "Ada Lovelace",
			"email": "ada@analytical.org",
			"phone": "4155551234",
		}),
		entity.NewClient(map[string]any{
			"id":          "c-17",
			"name":        "Grace Hopper",
			"email":       "grace@navy.mil",
			"company":     "US Navy",
			"website":     "https://navy.mil",
			"clientNotes": "prefers morning calls",
			"createdAt":   "2026-01-05T09:00:00Z",
			"updatedAt":   "2026-02-01T10:30:00Z",
		}),
	}

	for _, client := range clients {
		require.True(t, client.Validate().Ok)

		first := client.ToRecord()
		second := entity.NewClient(first).ToRecord()

		assert.Equal(t, first, second)
	}
}

func TestClient_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  map[string]any
		wantOk  bool
		wantErr int
	}{
		{
			name:   "valid minimal",
			record: map[string]any{"name": "Ada"},
			wantOk: true,
		},
		{
			name:    "missing name",
			record:  map[string]any{"email": "ada@analytical.org"},
			wantOk:  false,
			wantErr: 1,
		},
		{
			name:    "bad email and bad phone collected together",
			record:  map[string]any{"name": "Ada", "email": "not-an-address", "phone": "12"},
			wantOk:  false,
			wantErr: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := entity.NewClient(tt.record).Validate()

			assert.Equal(t, tt.wantOk, result.Ok)
			assert.Len(t, result.Errors, tt.wantErr)
		})
	}
}

func TestClient_DirtyTracking(t *testing.T) {
	client := entity.NewClient(map[string]any{"name": "Ada"})
	assert.Empty(t, client.DirtyFields())

	require.NoError(t, client.Set("email", "ada@analytical.org"))
	require.NoError(t, client.Set("phone", "415-555-1234"))

	assert.Equal(t, []string{"email", "phone"}, client.DirtyFields())

	client.ClearDirty()
	assert.Empty(t, client.DirtyFields())
}

func TestClient_UpdateAppliesOnlyKnownFields(t *testing.T) {
	client := entity.NewClient(map[string]any{"name": "Ada"})

	client.Update(map[string]any{
		"email":   "ada@analytical.org",
		"nope":    "ignored",
		"company": "Analytical Engines",
	})

	assert.Equal(t, "ada@analytical.org", client.Email)
	assert.Equal(t, "Analytical Engines", client.Company)
}

func TestBooking_RecomputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(b *entity.Booking)
		expected float64
	}{
		{
			name: "flat rate wins over hourly",
			setup: func(b *entity.Booking) {
				b.FlatRate = 500
				b.HourlyRate = 100
				b.Duration = 3
			},
			expected: 500,
		},
		{
			name: "hourly times duration",
			setup: func(b *entity.Booking) {
				b.HourlyRate = 150
				b.Duration = 2.5
			},
			expected: 375,
		},
		{
			name: "user-entered total survives recompute",
			setup: func(b *entity.Booking) {
				b.HourlyRate = 100
				b.Duration = 4
				_ = b.Set("totalAmount", 999.0)
			},
			expected: 999,
		},
		{
			name: "flat rate overrides even a user-entered total",
			setup: func(b *entity.Booking) {
				_ = b.Set("totalAmount", 999.0)
				b.FlatRate = 450
			},
			expected: 450,
		},
		{
			name:     "nothing set leaves zero",
			setup:    func(b *entity.Booking) {},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := entity.NewBooking(map[string]any{})
			tt.setup(booking)

			booking.RecomputeTotal()

			assert.InDelta(t, tt.expected, booking.TotalAmount, 0.001)
		})
	}
}

func TestBooking_RecomputeDuration(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		expected  float64
	}{
		{name: "same day", startTime: "14:00", endTime: "17:30", expected: 3.5},
		{name: "crosses midnight", startTime: "22:00", endTime: "02:00", expected: 4},
		{name: "missing end leaves duration alone", startTime: "14:00", endTime: "", expected: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := entity.NewBooking(map[string]any{"duration": 1.5})
			booking.StartTime = tt.startTime
			booking.EndTime = tt.endTime

			booking.RecomputeDuration()

			assert.InDelta(t, tt.expected, booking.Duration, 0.001)
		})
	}
}

func TestBooking_Validate(t *testing.T) {
	booking := entity.NewBooking(map[string]any{
		"startDate": "2026-09-10",
		"endDate":   "2026-09-08",
	})
	booking.HourlyRate = -5

	result := booking.Validate()

	require.False(t, result.Ok)
	assert.Len(t, result.Errors, 2)
}

func TestBooking_Normalize(t *testing.T) {
	booking := entity.NewBooking(map[string]any{
		"startDate": "Sunday, August 24",
		"startTime": "7:00 PM",
		"endTime":   "11pm",
	})

	booking.Normalize()

	assert.Equal(t, fmt.Sprintf("%d-08-24", format.CurrentYear()), booking.StartDate)
	assert.Equal(t, "19:00", booking.StartTime)
	assert.Equal(t, "23:00", booking.EndTime)
}

func TestBooking_DefaultsStatusNew(t *testing.T) {
	booking := entity.NewBooking(map[string]any{"title": "Corporate mixer"})

	assert.Equal(t, "new", booking.Status)
	assert.False(t, booking.CreatedAt.IsZero())
}

func TestBooking_SetRejectsBadValues(t *testing.T) {
	booking := entity.NewBooking(map[string]any{})

	assert.Error(t, booking.Set("hourlyRate", "abc"))
	assert.Error(t, booking.Set("bogus", "x"))
	assert.NoError(t, booking.Set("hourlyRate", "125"))
	assert.InDelta(t, 125, booking.HourlyRate, 0.001)
}

func TestBooking_SetRejectsNonStringTextValues(t *testing.T) {
	booking := entity.NewBooking(map[string]any{"title": "Corporate mixer"})

	assert.Error(t, booking.Set("title", 42))
	assert.Error(t, booking.Set("startDate", 20260914))

	assert.Equal(t, "Corporate mixer", booking.Title)
	assert.Empty(t, booking.DirtyFields())
}

func TestSettings_Friends(t *testing.T) {
	settings := entity.NewSettings(map[string]any{
		"companyName": "Drum Lessons LLC",
		"friends":     []any{"amy@example.com", "bo@example.com"},
	})

	assert.False(t, settings.AddFriend("AMY@example.com"))
	assert.True(t, settings.AddFriend("cy@example.com"))
	assert.Equal(t, []string{"amy@example.com", "bo@example.com", "cy@example.com"}, settings.Friends)
}

func TestSettings_Validate(t *testing.T) {
	settings := entity.NewSettings(map[string]any{
		"email":   "bad address",
		"friends": []any{"also-bad"},
	})

	result := settings.Validate()

	require.False(t, result.Ok)
	assert.Len(t, result.Errors, 2)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, entity.ValidEmail("a@b.co"))
	assert.False(t, entity.ValidEmail("a@b"))
	assert.False(t, entity.ValidEmail("a b@c.co"))
	assert.False(t, entity.ValidEmail(""))
}
