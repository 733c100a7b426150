package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNewsDateFormats(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"20240315T143000", time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)},
		{"20240315T1430", time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)},
		{"2024-03-15T14:30:00", time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)},
		{"2024-03-15T14:30:00Z", time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)},
		{"2024-03-15 14:30:00", time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)},
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, ok := ParseNewsDate(tc.in)
		require.True(t, ok, tc.in)
		assert.True(t, tc.want.Equal(got), "%s parsed to %v", tc.in, got)
	}
}

func TestParseNewsDateInvalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "15/03/2024"} {
		got, ok := ParseNewsDate(in)
		assert.False(t, ok, in)
		assert.True(t, got.IsZero(), in)
	}
}

func TestFormatNewsDate(t *testing.T) {
	ts := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)
	assert.Equal(t, "20240315T1430", FormatNewsDate(ts))
}
