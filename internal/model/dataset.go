package model

import (
	"fmt"
	"time"
)

// SchemaError is returned by the first stage that needs a column the dataset does not have.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset has no %q column", e.Column)
}

// LoadError reports that a dataset source is missing, unreadable or malformed.
type LoadError struct {
	Path string // file path or source description
	Row  int    // 1-based data row, 0 when not row specific
	Err  error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("load %s: row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Dataset is the in-memory, read-only result of a load.
type Dataset struct {
	Source   string
	Records  []Record
	LoadedAt time.Time

	columns   map[string]bool
	minDate   time.Time
	maxDate   time.Time
	platforms []string
}

// NewDataset builds a Dataset over records. columns names the header columns that were present.
func NewDataset(source string, columns []string, records []Record) *Dataset {
	ds := &Dataset{
		Source:   source,
		Records:  records,
		LoadedAt: time.Now().UTC(),
		columns:  make(map[string]bool, len(columns)),
	}
	for _, c := range columns {
		ds.columns[c] = true
	}

	seen := make(map[string]bool)
	for i, r := range records {
		day := r.Day()
		if i == 0 || day.Before(ds.minDate) {
			ds.minDate = day
		}
		if i == 0 || day.After(ds.maxDate) {
			ds.maxDate = day
		}
		if ds.columns[ColPlatform] && !seen[r.Platform] {
			seen[r.Platform] = true
			ds.platforms = append(ds.platforms, r.Platform)
		}
	}
	return ds
}

// HasColumn reports whether the source carried the named column.
func (d *Dataset) HasColumn(name string) bool {
	return d.columns[name]
}

// Require returns a SchemaError for the first absent column.
func (d *Dataset) Require(names ...string) error {
	for _, n := range names {
		if !d.columns[n] {
			return &SchemaError{Column: n}
		}
	}
	return nil
}

// Columns returns the known columns present in the dataset.
func (d *Dataset) Columns() []string {
	out := make([]string, 0, len(d.columns))
	for _, c := range KnownColumns {
		if d.columns[c] {
			out = append(out, c)
		}
	}
	return out
}

// Len is the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// MinDate is the earliest calendar date observed; zero for an empty dataset.
func (d *Dataset) MinDate() time.Time { return d.minDate }

// MaxDate is the latest calendar date observed; zero for an empty dataset.
func (d *Dataset) MaxDate() time.Time { return d.maxDate }

// Platforms returns distinct platform values in first-appearance order.
func (d *Dataset) Platforms() []string {
	out := make([]string, len(d.platforms))
	copy(out, d.platforms)
	return out
}

// FilteredView is the subset of a dataset matching some criteria.
type FilteredView struct {
	dataset *Dataset
	Records []Record
}

// NewFilteredView wraps records selected from ds.
func NewFilteredView(ds *Dataset, records []Record) *FilteredView {
	return &FilteredView{dataset: ds, Records: records}
}

// Dataset returns the dataset the view was taken from.
func (v *FilteredView) Dataset() *Dataset { return v.dataset }

// Len is the number of matching records.
func (v *FilteredView) Len() int { return len(v.Records) }

// Require checks columns against the underlying dataset.
func (v *FilteredView) Require(names ...string) error {
	return v.dataset.Require(names...)
}

// TotalEngagements sums engagements over the view.
func (v *FilteredView) TotalEngagements() int64 {
	var total int64
	for _, r := range v.Records {
		total += r.Engagements
	}
	return total
}
