package model

import "time"

type InsightOutcome string

const (
	InsightOutcomeHit   InsightOutcome = "hit"
	InsightOutcomeMiss  InsightOutcome = "miss"
	InsightOutcomeError InsightOutcome = "error"
)

// InsightEvent records one completed insight request for diagnostics.
type InsightEvent struct {
	ID          string         `json:"id"`
	View        string         `json:"view"`
	CriteriaKey string         `json:"criteria_key"`
	TableHash   string         `json:"table_hash"`
	Provider    string         `json:"provider"`
	Model       string         `json:"model"`
	Outcome     InsightOutcome `json:"outcome"`
	ErrorKind   string         `json:"error_kind,omitempty"`
	PromptBytes int            `json:"prompt_bytes"`
	TokensUsed  int64          `json:"tokens_used,omitempty"`
	LatencyMs   int64          `json:"latency_ms"`
	Timestamp   time.Time      `json:"timestamp"`
}
