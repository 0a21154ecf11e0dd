package dto

import "media-insight-dashboard/internal/metrics"

type CriteriaResponse struct {
	StartDate string   `json:"startDate" example:"2024-01-01"`
	EndDate   string   `json:"endDate" example:"2024-01-31"`
	Platforms []string `json:"platforms"`
}

type TableRow struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}

type TableResponse struct {
	KeyColumn   string     `json:"keyColumn"`
	ValueColumn string     `json:"valueColumn"`
	Rows        []TableRow `json:"rows"`
}

type InsightErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type InsightResponse struct {
	Text   string `json:"text"`
	Model  string `json:"model"`
	Cached bool   `json:"cached"`
}

// SectionResponse pairs one chart with its own insight.
type SectionResponse struct {
	View         string                `json:"view"`
	Title        string                `json:"title"`
	Section      string                `json:"section"`
	Question     string                `json:"question"`
	Chart        metrics.ChartSpec     `json:"chart"`
	Table        TableResponse         `json:"table"`
	Insight      *InsightResponse      `json:"insight,omitempty"`
	InsightError *InsightErrorResponse `json:"insightError,omitempty"`
}

type DashboardResponse struct {
	Criteria    CriteriaResponse  `json:"criteria"`
	Source      string            `json:"source"`
	RecordCount int               `json:"recordCount"`
	Sections    []SectionResponse `json:"sections"`
	GeneratedAt int64             `json:"generatedAt"` // Epoch Milliseconds
}

type FiltersResponse struct {
	Defaults     CriteriaResponse `json:"defaults"`
	MinDate      string           `json:"minDate"`
	MaxDate      string           `json:"maxDate"`
	Platforms    []string         `json:"platforms"`
	Source       string           `json:"source"`
	TotalRecords int              `json:"totalRecords"`
}

type SessionResponse struct {
	SessionID string `json:"sessionId"`
}
