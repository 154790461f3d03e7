package format_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leedz/shared/format"
)

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "19:00", want: "19:00"},
		{in: "7:00 PM", want: "19:00"},
		{in: "7pm", want: "19:00"},
		{in: "7", want: "07:00"},
		{in: "12am", want: "00:00"},
		{in: "12pm", want: "12:00"},
		{in: "12:30 AM", want: "00:30"},
		{in: "2:30pm", want: "14:30"},
		{in: "23:59", want: "23:59"},
		{in: "0:05", want: "00:05"},
		{in: "25:00", wantErr: true},
		{in: "7:75", wantErr: true},
		{in: "", wantErr: true},
		{in: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := format.To24Hour(tt.in)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTo12Hour(t *testing.T) {
	got, err := format.To12Hour("19:00")
	require.NoError(t, err)
	assert.Equal(t, "7:00 PM", got)

	got, err = format.To12Hour("00:30")
	require.NoError(t, err)
	assert.Equal(t, "12:30 AM", got)
}

func TestDurationHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{name: "plain evening", start: "18:00", end: "22:00", want: 4.0},
		{name: "half hour", start: "2:30pm", end: "4:30pm", want: 2.0},
		{name: "crosses midnight", start: "22:00", end: "02:00", want: 4.0},
		{name: "same clock", start: "09:00", end: "09:00", want: 0},
		{name: "one decimal", start: "09:00", end: "10:15", want: 1.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := format.DurationHours(tt.start, tt.end)

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 24.0)
		})
	}
}

func TestDurationCrossesMidnightOnlyWhenEndEarlier(t *testing.T) {
	// Property: crosses-midnight iff endMinutes < startMinutes.
	for startHour := 0; startHour < 24; startHour += 5 {
		for endHour := 0; endHour < 24; endHour += 5 {
			start := fmt.Sprintf("%02d:00", startHour)
			end := fmt.Sprintf("%02d:00", endHour)

			got, err := format.DurationHours(start, end)
			require.NoError(t, err)

			expected := float64(endHour - startHour)
			if endHour < startHour {
				expected += 24
			}

			assert.InDelta(t, expected, got, 0.001, "start=%s end=%s", start, end)
		}
	}
}

func TestParseDisplayDate(t *testing.T) {
	year := format.CurrentYear()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "November 5, 2025", want: "2025-11-05"},
		{in: "Aug 24, 2024", want: "2024-08-24"},
		{in: "Sunday, August 24", want: fmt.Sprintf("%d-08-24", year)},
		{in: "2025-11-05", want: "2025-11-05"},
		{in: "March 1", want: fmt.Sprintf("%d-03-01", year)},
		{in: "Fimbruary 5", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := format.ParseDisplayDate(tt.in)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDisplayDate(t *testing.T) {
	got, err := format.FormatDisplayDate("2025-11-05")
	require.NoError(t, err)
	assert.Equal(t, "November 5, 2025", got)
}

func TestNoonLocal(t *testing.T) {
	got, err := format.NoonLocal("2025-11-05")
	require.NoError(t, err)

	assert.Equal(t, 12, got.Hour())
	assert.Equal(t, time.November, got.Month())
	assert.Equal(t, 5, got.Day())

	// Noon anchoring keeps the calendar date stable in UTC as well.
	assert.Equal(t, 5, got.UTC().Day())
}

func TestEpochMillis(t *testing.T) {
	noonMillis, err := format.EpochMillis("2025-11-05", "")
	require.NoError(t, err)

	timedMillis, err := format.EpochMillis("2025-11-05", "18:00")
	require.NoError(t, err)

	assert.Equal(t, int64(6*60*60*1000), timedMillis-noonMillis)
}

func TestPriceToCents(t *testing.T) {
	tests := []struct {
		in      string
		max     int64
		want    int64
		wantErr bool
	}{
		{in: "$25", max: 100000, want: 2500},
		{in: "25.5", max: 100000, want: 2550},
		{in: "$0.99", max: 100000, want: 99},
		{in: "1000.00", max: 100000, want: 100000},
		{in: "1000.01", max: 100000, wantErr: true},
		{in: "$1.999", max: 100000, wantErr: true},
		{in: "-5", max: 100000, wantErr: true},
		{in: "free", max: 100000, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := format.PriceToCents(tt.in, tt.max)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZipFromLocation(t *testing.T) {
	zip, err := format.ZipFromLocation("123 Main St, Missoula MT 59801")
	require.NoError(t, err)
	assert.Equal(t, "59801", zip)

	_, err = format.ZipFromLocation("Missoula, Montana")
	assert.Error(t, err)

	_, err = format.ZipFromLocation("MT")
	assert.Error(t, err)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "(406) 555-0187", want: "4065550187"},
		{in: "406.555.0187", want: "4065550187"},
		{in: "1-406-555-0187", want: "4065550187"},
		{in: "+1 406 555 0187", want: "4065550187"},
		{in: "555-0187", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := format.NormalizePhone(tt.in)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeCurrency(t *testing.T) {
	assert.InDelta(t, 150.0, format.SanitizeCurrency("$150"), 0.001)
	assert.InDelta(t, 150.0, format.SanitizeCurrency("150.00"), 0.001)
	assert.InDelta(t, 1500.0, format.SanitizeCurrency("$1,500"), 0.001)
	assert.InDelta(t, 0.0, format.SanitizeCurrency("a lot"), 0.001)
	assert.InDelta(t, 0.0, format.SanitizeCurrency("-20"), 0.001)
}
