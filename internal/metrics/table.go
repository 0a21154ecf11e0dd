package metrics

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"strconv"
)

// Row is one group of an aggregated table.
type Row struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}

// AggregatedTable is the result of grouping a filtered view by one dimension.
type AggregatedTable struct {
	KeyColumn   string `json:"keyColumn"`
	ValueColumn string `json:"valueColumn"`
	Rows        []Row  `json:"rows"`
}

// Len is the number of groups.
func (t *AggregatedTable) Len() int { return len(t.Rows) }

// IsEmpty reports a table without groups.
func (t *AggregatedTable) IsEmpty() bool { return len(t.Rows) == 0 }

// Total sums the value column.
func (t *AggregatedTable) Total() int64 {
	var total int64
	for _, r := range t.Rows {
		total += r.Value
	}
	return total
}

// CSV renders the table as comma separated text with a header row and no index column.
func (t *AggregatedTable) CSV() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{t.KeyColumn, t.ValueColumn})
	for _, r := range t.Rows {
		_ = w.Write([]string{r.Key, strconv.FormatInt(r.Value, 10)})
	}
	w.Flush()
	return buf.String()
}

// Hash fingerprints the serialized table.
func (t *AggregatedTable) Hash() string {
	sum := sha256.Sum256([]byte(t.CSV()))
	return hex.EncodeToString(sum[:])
}
