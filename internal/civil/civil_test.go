package civil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRemote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "date and time",
			input:    "2024-01-15 09:30:00",
			expected: "2024-01-15T09:30:00.000+0800",
		},
		{
			name:     "date only defaults to midnight",
			input:    "2024-01-15",
			expected: "2024-01-15T00:00:00.000+0800",
		},
		{
			name:     "malformed input passes through",
			input:    "next tuesday",
			expected: "next tuesday",
		},
		{
			name:     "empty input stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToRemote(tt.input))
		})
	}
}

func TestFromRemote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "beijing offset used as-is",
			input:    "2024-01-15T09:30:00.000+0800",
			expected: "2024-01-15 09:30:00",
		},
		{
			name:     "utc offset shifted by eight hours",
			input:    "2024-01-15T16:00:00.000+0000",
			expected: "2024-01-16 00:00:00",
		},
		{
			name:     "zulu marker shifted by eight hours",
			input:    "2024-01-15T01:00:00Z",
			expected: "2024-01-15 09:00:00",
		},
		{
			name:     "fractional seconds discarded",
			input:    "2024-01-15T09:30:00.123+0800",
			expected: "2024-01-15 09:30:00",
		},
		{
			name:     "malformed input passes through",
			input:    "not a timestamp",
			expected: "not a timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromRemote(tt.input))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// FromRemote(ToRemote(s)) must recover the same civil time for any
	// valid local string.
	inputs := []string{
		"2024-01-15 09:30:00",
		"2024-12-31 23:59:59",
		"2000-02-29 00:00:01",
	}

	for _, s := range inputs {
		assert.Equal(t, s, FromRemote(ToRemote(s)), "round trip of %q", s)
	}
}

func TestParse(t *testing.T) {
	t.Run("local form", func(t *testing.T) {
		got, ok := Parse("2024-01-15 09:30:00")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 15, 9, 30, 0, 0, Beijing), got)
	})

	t.Run("wire form with utc marker", func(t *testing.T) {
		got, ok := Parse("2024-01-15T16:00:00.000+0000")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, Beijing), got)
	})

	t.Run("date only treated as beijing midnight", func(t *testing.T) {
		got, ok := Parse("2024-01-15")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, Beijing), got)
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, ok := Parse("garbage")
		assert.False(t, ok)
	})

	t.Run("empty fails", func(t *testing.T) {
		_, ok := Parse("")
		assert.False(t, ok)
	})
}

func TestFormatDueDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "midnight advances one day",
			input:    "2024-01-15T00:00:00.000+0800",
			expected: "2024-01-16 00:00:00",
		},
		{
			name:     "utc value landing on local midnight advances",
			input:    "2024-01-14T16:00:00.000+0000",
			expected: "2024-01-16 00:00:00",
		},
		{
			name:     "non-midnight unchanged",
			input:    "2024-01-15T18:30:00.000+0800",
			expected: "2024-01-15 18:30:00",
		},
		{
			name:     "one second past midnight unchanged",
			input:    "2024-01-15T00:00:01.000+0800",
			expected: "2024-01-15 00:00:01",
		},
		{
			name:     "malformed input passes through",
			input:    "???",
			expected: "???",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDueDate(tt.input))
		})
	}
}

func TestBucketPredicates(t *testing.T) {
	// Fixed reference point: 2024-06-15 10:00:00 Beijing time.
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, Beijing)

	t.Run("today", func(t *testing.T) {
		assert.True(t, IsTodayAt("2024-06-15 23:59:59", now))
		assert.True(t, IsTodayAt("2024-06-15 00:00:00", now))
		assert.False(t, IsTodayAt("2024-06-14 23:59:59", now))
		assert.False(t, IsTodayAt("2024-06-16 00:00:00", now))
		assert.False(t, IsTodayAt("garbage", now))
	})

	t.Run("today independent of wire zone", func(t *testing.T) {
		// 2024-06-14T20:00:00Z is 2024-06-15 04:00 in Beijing.
		assert.True(t, IsTodayAt("2024-06-14T20:00:00.000+0000", now))
	})

	t.Run("yesterday", func(t *testing.T) {
		assert.True(t, IsYesterdayAt("2024-06-14 08:00:00", now))
		assert.False(t, IsYesterdayAt("2024-06-15 08:00:00", now))
		assert.False(t, IsYesterdayAt("2024-06-13 08:00:00", now))
	})

	t.Run("within last 7 days", func(t *testing.T) {
		assert.True(t, WithinLast7DaysAt("2024-06-15 12:00:00", now), "today is inclusive")
		assert.True(t, WithinLast7DaysAt("2024-06-08 00:00:00", now), "exactly 7 days back is inclusive")
		assert.False(t, WithinLast7DaysAt("2024-06-07 23:59:59", now))
		assert.False(t, WithinLast7DaysAt("bad", now))
	})
}

func TestFormatFriendly(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, Beijing)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "under a minute",
			input:    "2024-06-15 09:59:30",
			expected: "just now",
		},
		{
			name:     "minutes",
			input:    "2024-06-15 09:15:00",
			expected: "45 minutes ago",
		},
		{
			name:     "hours",
			input:    "2024-06-15 04:00:00",
			expected: "6 hours ago",
		},
		{
			name:     "days",
			input:    "2024-06-12 10:00:00",
			expected: "3 days ago",
		},
		{
			name:     "older than a week falls back to date",
			input:    "2024-06-01 10:00:00",
			expected: "2024-06-01",
		},
		{
			name:     "empty stays empty",
			input:    "",
			expected: "",
		},
		{
			name:     "unparseable passes through",
			input:    "whenever",
			expected: "whenever",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyAt(tt.input, now))
		})
	}
}
