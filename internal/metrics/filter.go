package metrics

import (
	"media-insight-dashboard/internal/model"
)

// DefaultCriteria spans the whole dataset: observed min/max dates and every platform.
func DefaultCriteria(ds *model.Dataset) model.FilterCriteria {
	return model.FilterCriteria{
		StartDate: ds.MinDate(),
		EndDate:   ds.MaxDate(),
		Platforms: ds.Platforms(),
	}
}

// Filter keeps the records whose calendar date lies in [StartDate, EndDate] and whose platform
// is in the criteria's platform set. It never fails on a well-typed dataset: inverted ranges and
// empty platform sets simply match nothing.
func Filter(ds *model.Dataset, criteria model.FilterCriteria) (*model.FilteredView, error) {
	return filterRecords(ds, ds.Records, criteria)
}

// Refine applies criteria to an existing view. Refine(Filter(d, c), c) equals Filter(d, c).
func Refine(view *model.FilteredView, criteria model.FilterCriteria) (*model.FilteredView, error) {
	return filterRecords(view.Dataset(), view.Records, criteria)
}

func filterRecords(ds *model.Dataset, records []model.Record, criteria model.FilterCriteria) (*model.FilteredView, error) {
	if err := ds.Require(model.ColPlatform); err != nil {
		return nil, err
	}
	if criteria.Inverted() || len(criteria.Platforms) == 0 {
		return model.NewFilteredView(ds, []model.Record{}), nil
	}

	start := model.TruncateDay(criteria.StartDate)
	end := model.TruncateDay(criteria.EndDate)
	platforms := criteria.PlatformSet()

	matched := make([]model.Record, 0, len(records))
	for _, r := range records {
		day := r.Day()
		if day.Before(start) || day.After(end) {
			continue
		}
		if !platforms[r.Platform] {
			continue
		}
		matched = append(matched, r)
	}
	return model.NewFilteredView(ds, matched), nil
}
