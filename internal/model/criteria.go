package model

import (
	"sort"
	"strings"
	"time"
)

// FilterCriteria selects the working subset of a dataset. Dates are inclusive calendar dates.
type FilterCriteria struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Platforms []string  `json:"platforms"`
}

// Inverted reports a start date after the end date; such criteria match nothing.
func (c FilterCriteria) Inverted() bool {
	return TruncateDay(c.StartDate).After(TruncateDay(c.EndDate))
}

// PlatformSet returns the allowed platforms as a set.
func (c FilterCriteria) PlatformSet() map[string]bool {
	set := make(map[string]bool, len(c.Platforms))
	for _, p := range c.Platforms {
		set[p] = true
	}
	return set
}

// Key is a canonical form of the criteria: platform order and duplicates do not matter.
func (c FilterCriteria) Key() string {
	platforms := make([]string, 0, len(c.Platforms))
	seen := make(map[string]bool, len(c.Platforms))
	for _, p := range c.Platforms {
		if !seen[p] {
			seen[p] = true
			platforms = append(platforms, p)
		}
	}
	sort.Strings(platforms)
	return TruncateDay(c.StartDate).Format("2006-01-02") + ".." +
		TruncateDay(c.EndDate).Format("2006-01-02") + "|" + strings.Join(platforms, "\x1f")
}
