package dto

// ViewInsightRequest triggers an insight for one view. Empty fields fall back to the dashboard defaults.
type ViewInsightRequest struct {
	StartDate *string  `json:"startDate,omitempty" example:"2024-01-01"`
	EndDate   *string  `json:"endDate,omitempty" example:"2024-01-31"`
	Platforms []string `json:"platforms,omitempty"`
	Refresh   bool     `json:"refresh"`
}
