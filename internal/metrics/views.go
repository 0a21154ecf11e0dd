package metrics

import (
	"errors"
	"fmt"

	"media-insight-dashboard/internal/model"
)

var ErrUnknownView = errors.New("unknown view")

type ViewID string

const (
	ViewSentiment       ViewID = "sentiment"
	ViewEngagementTrend ViewID = "engagement_trend"
	ViewPlatform        ViewID = "platform"
	ViewMediaType       ViewID = "media_type"
	ViewTopLocations    ViewID = "top_locations"
)

// ChartSpec tells the renderer how to draw a table.
type ChartSpec struct {
	Type        string  `json:"type"` // bar | line | pie
	Orientation string  `json:"orientation,omitempty"`
	Hole        float64 `json:"hole,omitempty"`
	XField      string  `json:"xField"`
	YField      string  `json:"yField"`
	ColorByKey  bool    `json:"colorByKey"`
}

// Definition describes one dashboard section.
type Definition struct {
	ID      ViewID
	Title   string
	Section string
	// Question is asked of the insight backend; %s is replaced by the brand name.
	Question string
	Chart    ChartSpec
	Reduce   Reducer
}

// QuestionFor fills the brand into the section question.
func (d Definition) QuestionFor(brand string) string {
	return fmt.Sprintf(d.Question, brand)
}

var definitions = []Definition{
	{
		ID:       ViewSentiment,
		Title:    "Sentiment Breakdown",
		Section:  "📌 Sentiment Breakdown",
		Question: "Apa insight paling menonjol dari distribusi sentimen terhadap %s dan bagaimana hal ini dapat memengaruhi strategi media mereka?",
		Chart:    ChartSpec{Type: "bar", XField: model.ColSentiment, YField: "Count", ColorByKey: true},
		Reduce:   SentimentBreakdown,
	},
	{
		ID:       ViewEngagementTrend,
		Title:    "Engagement Trend Over Time",
		Section:  "📈 Engagement Trend Over Time",
		Question: "Apa pola dan lonjakan keterlibatan audiens terhadap %s dari waktu ke waktu?",
		Chart:    ChartSpec{Type: "line", XField: model.ColDate, YField: model.ColEngagements},
		Reduce:   EngagementTrend,
	},
	{
		ID:       ViewPlatform,
		Title:    "Platform Engagements",
		Section:  "🧭 Platform Engagement",
		Question: "Platform mana yang menunjukkan performa terbaik dalam kampanye %s dan apa yang dapat disimpulkan dari hal ini?",
		Chart:    ChartSpec{Type: "bar", Orientation: "h", XField: model.ColEngagements, YField: model.ColPlatform, ColorByKey: true},
		Reduce:   PlatformEngagement,
	},
	{
		ID:       ViewMediaType,
		Title:    "Media Type Mix",
		Section:  "🧪 Media Type Mix",
		Question: "Apa format media paling disukai dan bagaimana rekomendasi strategi konten untuk %s?",
		Chart:    ChartSpec{Type: "pie", Hole: 0.4, XField: model.ColMediaType, YField: "Count"},
		Reduce:   MediaTypeMix,
	},
	{
		ID:       ViewTopLocations,
		Title:    "Top 5 Locations by Engagement",
		Section:  "🌍 Top 5 Locations by Engagement",
		Question: "Lokasi mana yang paling efektif untuk target audiens %s dan apa yang menyebabkannya?",
		Chart:    ChartSpec{Type: "bar", Orientation: "h", XField: model.ColEngagements, YField: model.ColLocation, ColorByKey: true},
		Reduce:   TopLocations,
	},
}

// Definitions returns the dashboard sections in display order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

func Lookup(id ViewID) (Definition, error) {
	for _, d := range definitions {
		if d.ID == id {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %s", ErrUnknownView, id)
}

// View is a computed section: its definition and aggregated table.
type View struct {
	Definition
	Table *AggregatedTable
}

// Derive filters the dataset once and runs every reducer over the result.
func Derive(ds *model.Dataset, criteria model.FilterCriteria) ([]View, error) {
	view, err := Filter(ds, criteria)
	if err != nil {
		return nil, err
	}
	return Reduce(view)
}

// Reduce runs every reducer over an already filtered view.
func Reduce(view *model.FilteredView) ([]View, error) {
	views := make([]View, 0, len(definitions))
	for _, d := range definitions {
		table, err := d.Reduce(view)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", d.ID, err)
		}
		views = append(views, View{Definition: d, Table: table})
	}
	return views, nil
}

// DeriveOne computes a single section.
func DeriveOne(ds *model.Dataset, criteria model.FilterCriteria, id ViewID) (View, error) {
	d, err := Lookup(id)
	if err != nil {
		return View{}, err
	}
	view, err := Filter(ds, criteria)
	if err != nil {
		return View{}, err
	}
	table, err := d.Reduce(view)
	if err != nil {
		return View{}, fmt.Errorf("view %s: %w", d.ID, err)
	}
	return View{Definition: d, Table: table}, nil
}
