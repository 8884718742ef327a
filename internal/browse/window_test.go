package browse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateWindowBounds(t *testing.T) {
	// A Wednesday.
	now := time.Date(2025, time.March, 12, 15, 30, 45, 0, time.UTC)

	tests := []struct {
		name      string
		window    DateWindow
		wantStart string
		wantEnd   string
		wantOK    bool
	}{
		{"zero window", DateWindow{}, "", "", false},
		{"unknown preset", DateWindow{Preset: "fortnight"}, "", "", false},
		{"today", DateWindow{Preset: WindowToday}, "2025-03-12 00:00:00", "", true},
		{"last 7 days", DateWindow{Preset: Window7Days}, "2025-03-05 00:00:00", "", true},
		{"last 30 days", DateWindow{Preset: Window30Days}, "2025-02-10 00:00:00", "", true},
		{"this week starts monday", DateWindow{Preset: WindowThisWeek}, "2025-03-10 00:00:00", "", true},
		{"this month", DateWindow{Preset: WindowThisMonth}, "2025-03-01 00:00:00", "", true},
		{
			"custom both bounds",
			DateWindow{Preset: WindowCustom, Start: "2024-06-01", End: "2024-06-30"},
			"2024-06-01 00:00:00", "2024-06-30 23:59:59", true,
		},
		{
			"custom open end",
			DateWindow{Preset: WindowCustom, Start: "2024-06-01"},
			"2024-06-01 00:00:00", "", true,
		},
		{
			"custom open start",
			DateWindow{Preset: WindowCustom, End: "2024-06-30"},
			"", "2024-06-30 23:59:59", true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := tt.window.Bounds(now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestThisWeekOnSunday(t *testing.T) {
	sunday := time.Date(2025, time.March, 16, 9, 0, 0, 0, time.UTC)
	start, _, ok := DateWindow{Preset: WindowThisWeek}.Bounds(sunday)
	require.True(t, ok)
	assert.Equal(t, "2025-03-10 00:00:00", start)
}

func TestWindowPredicate(t *testing.T) {
	now := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)

	p := windowPredicate("date_created", DateWindow{Preset: WindowCustom, Start: "2025-01-01", End: "2025-02-01"}, now)
	require.NotNil(t, p)
	assert.Equal(t, "date_created >= ? AND date_created <= ?", p.SQL)
	assert.Len(t, p.Args, 2)

	assert.Nil(t, windowPredicate("date_created", DateWindow{}, now))
}
