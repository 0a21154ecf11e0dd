package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeFlexible(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{"RFC3339", "2024-01-02T10:30:00Z", time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC), false},
		{"RFC3339 with offset", "2024-01-02T10:30:00+07:00", time.Date(2024, 1, 2, 3, 30, 0, 0, time.UTC), false},
		{"Epoch millis", "1704067200000", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"Plain date", "2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"Compact date", "20240115", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"Date and time", "2024-01-02 08:15:00", time.Date(2024, 1, 2, 8, 15, 0, 0, time.UTC), false},
		{"Garbage", "not a date", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeFlexible(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s want %s", got, tt.expected)
		})
	}
}

func TestParseTimeFlexible_KeepsOffset(t *testing.T) {
	got, err := ParseTimeFlexible("2024-01-02T03:00:00+07:00")
	require.NoError(t, err)
	_, offset := got.Zone()
	assert.Equal(t, 7*3600, offset)
	assert.Equal(t, "2024-01-02", FormatDate(got))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-03-05T23:59:59Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-03-06T01:00:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("yesterday-ish")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(time.Time{}))
	assert.Equal(t, "2024-01-31", FormatDate(time.Date(2024, 1, 31, 22, 0, 0, 0, time.UTC)))
}
