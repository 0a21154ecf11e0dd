package model

import "time"

// Known column names of the source dataset.
const (
	ColDate        = "Date"
	ColPlatform    = "Platform"
	ColSentiment   = "Sentiment"
	ColMediaType   = "Media_Type"
	ColLocation    = "Location"
	ColEngagements = "Engagements"
)

// KnownColumns lists the columns a complete dataset carries, in source order.
var KnownColumns = []string{ColDate, ColPlatform, ColSentiment, ColMediaType, ColLocation, ColEngagements}

// Record is one mention/post row.
type Record struct {
	Date        time.Time `json:"Date"`
	Platform    string    `json:"Platform"`
	Sentiment   string    `json:"Sentiment"`
	MediaType   string    `json:"Media_Type"`
	Location    string    `json:"Location"`
	Engagements int64     `json:"Engagements"`
}

// Day returns the calendar date of the record as read on its own wall clock, stored as UTC
// midnight. A mention at 03:00+07:00 belongs to that local day, not to the previous UTC day.
func (r Record) Day() time.Time {
	return TruncateDay(r.Date)
}

// TruncateDay drops the time-of-day part of t, keeping the date of t's own location.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
