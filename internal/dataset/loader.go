package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/parser"
	"media-insight-dashboard/internal/repository"
)

// LoadError reports that the dataset file is missing, unreadable or malformed.
type LoadError = model.LoadError

// Load reads a delimited or xlsx file into a Dataset.
func Load(path string) (*model.Dataset, error) {
	var rows [][]string
	var err error
	// Spreadsheets pad or trim rows freely; delimited files must not outgrow the header.
	fixedWidth := true

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
		fixedWidth = false
	case ".tsv":
		rows, err = readDelimited(path, '\t')
	default:
		rows, err = readDelimited(path, ',')
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("file has no header row")}
	}

	recordParser, err := parser.NewHeaderRecordParser(rows[0])
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	records := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		if fixedWidth && len(row) > len(rows[0]) {
			return nil, &LoadError{Path: path, Row: i + 1, Err: fmt.Errorf("expected %d fields, saw %d", len(rows[0]), len(row))}
		}
		rec, err := recordParser.Parse(row)
		if err != nil {
			return nil, &LoadError{Path: path, Row: i + 1, Err: err}
		}
		records = append(records, *rec)
	}

	ds := model.NewDataset(path, recordParser.Columns(), records)
	log.Info().
		Str("path", path).
		Int("records", ds.Len()).
		Strs("columns", ds.Columns()).
		Str("min_date", ds.MinDate().Format("2006-01-02")).
		Str("max_date", ds.MaxDate().Format("2006-01-02")).
		Msg("Dataset loaded")
	return ds, nil
}

func readDelimited(path string, comma rune) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed file: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

type fileDatasetRepository struct {
	path string
}

// NewFileDatasetRepository serves datasets from a flat file on disk.
func NewFileDatasetRepository(path string) repository.DatasetRepository {
	return &fileDatasetRepository{path: path}
}

func (r *fileDatasetRepository) LoadDataset(ctx context.Context) (*model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(r.path)
}

func (r *fileDatasetRepository) Describe() string {
	return "file:" + r.path
}
