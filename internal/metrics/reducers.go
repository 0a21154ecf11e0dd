package metrics

import (
	"sort"

	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/util"
)

const TopLocationsLimit = 5

// Reducer turns a filtered view into an aggregated table.
type Reducer func(view *model.FilteredView) (*AggregatedTable, error)

type grouper struct {
	order  []string
	values map[string]int64
}

func newGrouper() *grouper {
	return &grouper{values: make(map[string]int64)}
}

func (g *grouper) add(key string, v int64) {
	if _, ok := g.values[key]; !ok {
		g.order = append(g.order, key)
	}
	g.values[key] += v
}

func (g *grouper) rows() []Row {
	rows := make([]Row, 0, len(g.order))
	for _, k := range g.order {
		rows = append(rows, Row{Key: k, Value: g.values[k]})
	}
	return rows
}

// sortByKey orders rows by group key, the order a grouped sum produces.
func sortByKey(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Key < rows[j].Key
	})
}

// sortDescending orders rows by value, keeping the incoming order among ties.
func sortDescending(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})
}

func columnValue(r model.Record, column string) string {
	switch column {
	case model.ColPlatform:
		return r.Platform
	case model.ColSentiment:
		return r.Sentiment
	case model.ColMediaType:
		return r.MediaType
	case model.ColLocation:
		return r.Location
	}
	return ""
}

// CountBy counts records per distinct value of column, most frequent first. Ties keep
// first-seen order.
func CountBy(view *model.FilteredView, column string) (*AggregatedTable, error) {
	if err := view.Require(column); err != nil {
		return nil, err
	}
	g := newGrouper()
	for _, r := range view.Records {
		g.add(columnValue(r, column), 1)
	}
	rows := g.rows()
	sortDescending(rows)
	return &AggregatedTable{KeyColumn: column, ValueColumn: "Count", Rows: rows}, nil
}

// SumEngagementsBy sums engagements per distinct value of column, largest first. Ties are
// ordered by key, so a top-N cut keeps the same groups whatever the record order.
func SumEngagementsBy(view *model.FilteredView, column string) (*AggregatedTable, error) {
	if err := view.Require(column, model.ColEngagements); err != nil {
		return nil, err
	}
	g := newGrouper()
	for _, r := range view.Records {
		g.add(columnValue(r, column), r.Engagements)
	}
	rows := g.rows()
	sortByKey(rows)
	sortDescending(rows)
	return &AggregatedTable{KeyColumn: column, ValueColumn: model.ColEngagements, Rows: rows}, nil
}

// SentimentBreakdown counts records per sentiment.
func SentimentBreakdown(view *model.FilteredView) (*AggregatedTable, error) {
	return CountBy(view, model.ColSentiment)
}

// EngagementTrend sums engagements per calendar date, in chronological order.
func EngagementTrend(view *model.FilteredView) (*AggregatedTable, error) {
	if err := view.Require(model.ColEngagements); err != nil {
		return nil, err
	}
	g := newGrouper()
	for _, r := range view.Records {
		g.add(util.FormatDate(r.Day()), r.Engagements)
	}
	rows := g.rows()
	// ISO dates sort lexically in time order.
	sortByKey(rows)
	return &AggregatedTable{KeyColumn: model.ColDate, ValueColumn: model.ColEngagements, Rows: rows}, nil
}

// PlatformEngagement sums engagements per platform, largest first.
func PlatformEngagement(view *model.FilteredView) (*AggregatedTable, error) {
	return SumEngagementsBy(view, model.ColPlatform)
}

// MediaTypeMix counts records per media type.
func MediaTypeMix(view *model.FilteredView) (*AggregatedTable, error) {
	return CountBy(view, model.ColMediaType)
}

// TopLocations sums engagements per location and keeps the five largest.
func TopLocations(view *model.FilteredView) (*AggregatedTable, error) {
	table, err := SumEngagementsBy(view, model.ColLocation)
	if err != nil {
		return nil, err
	}
	if len(table.Rows) > TopLocationsLimit {
		table.Rows = table.Rows[:TopLocationsLimit]
	}
	return table, nil
}
