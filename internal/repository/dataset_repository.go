package repository

import (
	"context"
	"fmt"

	"media-insight-dashboard/internal/model"
)

// DatasetRepository produces a full dataset from its backing source.
type DatasetRepository interface {
	LoadDataset(ctx context.Context) (*model.Dataset, error)
	Describe() string
}

// RecordWriter persists records into a store that a DatasetRepository can later read.
type RecordWriter interface {
	StoreRecords(ctx context.Context, records []model.Record) (int64, error)
}

// CheckRowLimit fails the load when a source holds more than maxRows records. A partial dataset
// would shift every aggregate, so the limit is never applied by truncating. maxRows <= 0 is no limit.
func CheckRowLimit(source string, rows, maxRows int) error {
	if maxRows > 0 && rows > maxRows {
		return &model.LoadError{Path: source, Err: fmt.Errorf("more than %d records (DATASET_MAX_ROWS)", maxRows)}
	}
	return nil
}
