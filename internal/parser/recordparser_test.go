package parser_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/parser"
)

var fullHeader = []string{"Date", "Platform", "Sentiment", "Media_Type", "Location", "Engagements"}

func TestHeaderRecordParser_Parse(t *testing.T) {
	recordParser, err := parser.NewHeaderRecordParser(fullHeader)
	require.NoError(t, err)

	tests := []struct {
		name        string
		row         []string
		expected    *model.Record
		expectError bool
	}{
		{
			name: "Valid Row",
			row:  []string{"2024-01-01", "Instagram", "Positive", "Video", "Jakarta", "120"},
			expected: &model.Record{
				Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Platform:    "Instagram",
				Sentiment:   "Positive",
				MediaType:   "Video",
				Location:    "Jakarta",
				Engagements: 120,
			},
		},
		{
			name: "Valid Row With Time And Padding",
			row:  []string{" 2024-01-01 13:45:00 ", " TikTok ", "Neutral", "Image", "Bandung", "1,500"},
			expected: &model.Record{
				Date:        time.Date(2024, 1, 1, 13, 45, 0, 0, time.UTC),
				Platform:    "TikTok",
				Sentiment:   "Neutral",
				MediaType:   "Image",
				Location:    "Bandung",
				Engagements: 1500,
			},
		},
		{
			name: "Empty Engagements Is Zero",
			row:  []string{"2024-01-02", "X", "Negative", "Text", "Surabaya", ""},
			expected: &model.Record{
				Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				Platform:  "X",
				Sentiment: "Negative",
				MediaType: "Text",
				Location:  "Surabaya",
			},
		},
		{
			name:        "Invalid Date",
			row:         []string{"someday", "X", "Negative", "Text", "Surabaya", "3"},
			expectError: true,
		},
		{
			name:        "Empty Date",
			row:         []string{"", "X", "Negative", "Text", "Surabaya", "3"},
			expectError: true,
		},
		{
			name:        "Non Integer Engagements",
			row:         []string{"2024-01-02", "X", "Negative", "Text", "Surabaya", "many"},
			expectError: true,
		},
		{
			name:        "Negative Engagements",
			row:         []string{"2024-01-02", "X", "Negative", "Text", "Surabaya", "-4"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := recordParser.Parse(tt.row)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, tt.expected.Date.Equal(result.Date), "date: got %s", result.Date)
			assert.Equal(t, tt.expected.Platform, result.Platform)
			assert.Equal(t, tt.expected.Sentiment, result.Sentiment)
			assert.Equal(t, tt.expected.MediaType, result.MediaType)
			assert.Equal(t, tt.expected.Location, result.Location)
			assert.Equal(t, tt.expected.Engagements, result.Engagements)
		})
	}
}

func TestNewHeaderRecordParser_Columns(t *testing.T) {
	p, err := parser.NewHeaderRecordParser([]string{"\ufeffdate", "Engagements", "Extra", "Platform"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Platform", "Engagements"}, p.Columns())

	rec, err := p.Parse([]string{"2024-02-01", "7", "ignored", "YouTube"})
	require.NoError(t, err)
	assert.Equal(t, "YouTube", rec.Platform)
	assert.Equal(t, int64(7), rec.Engagements)
	assert.Equal(t, "", rec.Location)
}

func TestNewHeaderRecordParser_MissingDate(t *testing.T) {
	_, err := parser.NewHeaderRecordParser([]string{"Platform", "Engagements"})
	require.Error(t, err)

	var schemaErr *model.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "Date", schemaErr.Column)
}

func TestHeaderRecordParser_CalendarDay(t *testing.T) {
	recordParser, err := parser.NewHeaderRecordParser(fullHeader)
	require.NoError(t, err)

	tests := []struct {
		name    string
		date    string
		wantDay time.Time
	}{
		{"Offset Early Morning", "2024-01-02T03:00:00+07:00", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"Offset Late Evening", "2024-01-01T23:30:00-05:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"Compact Date", "20240115", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"Epoch Millis", "1704067200000", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := recordParser.Parse([]string{tt.date, "X", "Positive", "Text", "Jakarta", "1"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantDay, rec.Day())
		})
	}
}
