package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"media-insight-dashboard/internal/model"
)

const sampleCSV = `Date,Platform,Sentiment,Media_Type,Location,Engagements
2024-01-01,X,Positive,Text,Jakarta,10
2024-01-01 18:30:00,Y,Negative,Video,Bandung,5

2024-01-02,X,Neutral,Image,Jakarta,7
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_CSV(t *testing.T) {
	ds, err := Load(writeFile(t, "mentions.csv", sampleCSV))
	require.NoError(t, err)

	require.Equal(t, 3, ds.Len())
	assert.Equal(t, model.KnownColumns, ds.Columns())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ds.MinDate())
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ds.MaxDate())
	assert.Equal(t, []string{"X", "Y"}, ds.Platforms())
	assert.Equal(t, "Bandung", ds.Records[1].Location)
	assert.Equal(t, 18, ds.Records[1].Date.Hour())
}

func TestLoad_TSV(t *testing.T) {
	content := "Date\tPlatform\tEngagements\n2024-05-01\tTikTok\t42\n"
	ds, err := Load(writeFile(t, "mentions.tsv", content))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, int64(42), ds.Records[0].Engagements)
	assert.False(t, ds.HasColumn(model.ColLocation))
}

func TestLoad_XLSXMatchesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentions.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Date", "Platform", "Sentiment", "Media_Type", "Location", "Engagements"},
		{"2024-01-01", "X", "Positive", "Text", "Jakarta", 10},
		{"2024-01-01 18:30:00", "Y", "Negative", "Video", "Bandung", 5},
		{"2024-01-02", "X", "Neutral", "Image", "Jakarta", 7},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	fromXLSX, err := Load(path)
	require.NoError(t, err)
	fromCSV, err := Load(writeFile(t, "mentions.csv", sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, fromCSV.Records, fromXLSX.Records)
	assert.Equal(t, fromCSV.Columns(), fromXLSX.Columns())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantRow int
	}{
		{
			name: "Missing File",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") },
		},
		{
			name: "Empty File",
			path: func(t *testing.T) string { return writeFile(t, "empty.csv", "") },
		},
		{
			name: "No Date Column",
			path: func(t *testing.T) string { return writeFile(t, "nodate.csv", "Platform,Engagements\nX,1\n") },
		},
		{
			name:    "Unparsable Date",
			path:    func(t *testing.T) string { return writeFile(t, "baddate.csv", "Date,Platform\n2024-01-01,X\nlater,Y\n") },
			wantRow: 2,
		},
		{
			name:    "Row Wider Than Header",
			path:    func(t *testing.T) string { return writeFile(t, "wide.csv", "Date,Platform\n2024-01-01,X\n2024-01-02,Y,extra\n") },
			wantRow: 2,
		},
		{
			name: "Malformed Quoting",
			path: func(t *testing.T) string { return writeFile(t, "quote.csv", "Date,Platform\n\"2024-01-01,X\n") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Load(tt.path(t))
			require.Error(t, err)
			assert.Nil(t, ds)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "expected LoadError, got %T", err)
			assert.Equal(t, tt.wantRow, loadErr.Row)
		})
	}
}

func TestFileDatasetRepository(t *testing.T) {
	path := writeFile(t, "mentions.csv", sampleCSV)
	repo := NewFileDatasetRepository(path)
	assert.Equal(t, "file:"+path, repo.Describe())

	ds, err := repo.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.LoadDataset(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
