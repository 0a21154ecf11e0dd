package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/metrics"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/store"
)

// CriteriaInput is user supplied filter input. Nil fields fall back to the dataset defaults;
// a non-nil empty Platforms selects no platform.
type CriteriaInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Platforms []string
}

func (in CriteriaInput) Resolve(ds *model.Dataset) model.FilterCriteria {
	criteria := metrics.DefaultCriteria(ds)
	if in.StartDate != nil {
		criteria.StartDate = model.TruncateDay(*in.StartDate)
	}
	if in.EndDate != nil {
		criteria.EndDate = model.TruncateDay(*in.EndDate)
	}
	if in.Platforms != nil {
		criteria.Platforms = in.Platforms
	}
	return criteria
}

type DashboardRequest struct {
	Criteria     CriteriaInput
	WithInsights bool
	Refresh      bool
	SessionID    string
}

// Section pairs a view with its own insight. At most one of Insight and InsightErr is set.
type Section struct {
	metrics.View
	Insight    *InsightResult
	InsightErr *InsightError
}

type Dashboard struct {
	Criteria    model.FilterCriteria
	Source      string
	RecordCount int
	Sections    []Section
	GeneratedAt time.Time
}

type Filters struct {
	Defaults   model.FilterCriteria
	MinDate    time.Time
	MaxDate    time.Time
	Platforms  []string
	Source     string
	TotalCount int
}

type DashboardService interface {
	Build(ctx context.Context, req DashboardRequest) (*Dashboard, error)
	Filters() (*Filters, error)
	View(id metrics.ViewID, in CriteriaInput) (*metrics.View, error)
	Insight(ctx context.Context, id metrics.ViewID, in CriteriaInput, refresh bool) (*Section, error)
	Brand() string
}

type dashboardService struct {
	datasets    DatasetService
	insights    InsightService
	sessions    store.SessionStore
	brand       string
	concurrency int
}

func NewDashboardService(
	cfg *config.Config,
	datasets DatasetService,
	insights InsightService,
	sessions store.SessionStore,
) DashboardService {
	concurrency := cfg.Insight.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &dashboardService{
		datasets:    datasets,
		insights:    insights,
		sessions:    sessions,
		brand:       cfg.Insight.Brand,
		concurrency: concurrency,
	}
}

func (s *dashboardService) Brand() string { return s.brand }

func (s *dashboardService) Filters() (*Filters, error) {
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	return &Filters{
		Defaults:   metrics.DefaultCriteria(ds),
		MinDate:    ds.MinDate(),
		MaxDate:    ds.MaxDate(),
		Platforms:  ds.Platforms(),
		Source:     ds.Source,
		TotalCount: ds.Len(),
	}, nil
}

// Build derives all sections from one filter pass, then fetches their insights in parallel.
// Insight failures stay inside their section.
func (s *dashboardService) Build(ctx context.Context, req DashboardRequest) (*Dashboard, error) {
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	criteria := req.Criteria.Resolve(ds)

	log.Info().
		Time("start_date", criteria.StartDate).
		Time("end_date", criteria.EndDate).
		Strs("platforms", criteria.Platforms).
		Bool("insights", req.WithInsights).
		Msg("Building dashboard")

	view, err := metrics.Filter(ds, criteria)
	if err != nil {
		return nil, err
	}
	views, err := metrics.Reduce(view)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, len(views))
	for i, v := range views {
		sections[i] = Section{View: v}
	}

	if req.WithInsights {
		runCtx := ctx
		if req.SessionID != "" {
			sessionCtx, release, err := s.sessions.Begin(ctx, req.SessionID)
			if err != nil {
				return nil, err
			}
			defer release()
			runCtx = sessionCtx
		}
		s.fetchInsights(runCtx, criteria, sections, req.Refresh)
	}

	return &Dashboard{
		Criteria:    criteria,
		Source:      ds.Source,
		RecordCount: view.Len(),
		Sections:    sections,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *dashboardService) fetchInsights(ctx context.Context, criteria model.FilterCriteria, sections []Section, refresh bool) {
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range sections {
		section := &sections[i]
		g.Go(func() error {
			s.fillInsight(ctx, criteria, section, refresh)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *dashboardService) fillInsight(ctx context.Context, criteria model.FilterCriteria, section *Section, refresh bool) {
	result, err := s.insights.RequestInsight(ctx, InsightRequest{
		View:     section.ID,
		Title:    section.Title,
		Question: section.QuestionFor(s.brand),
		Criteria: criteria,
		Table:    section.Table,
		Refresh:  refresh,
	})
	if err != nil {
		var insightErr *InsightError
		if !errors.As(err, &insightErr) {
			insightErr = classifyInsightError(string(section.ID), err)
		}
		section.InsightErr = insightErr
		return
	}
	section.Insight = result
}

func (s *dashboardService) View(id metrics.ViewID, in CriteriaInput) (*metrics.View, error) {
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	v, err := metrics.DeriveOne(ds, in.Resolve(ds), id)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Insight computes one view and requests its insight independently of the others.
func (s *dashboardService) Insight(ctx context.Context, id metrics.ViewID, in CriteriaInput, refresh bool) (*Section, error) {
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	criteria := in.Resolve(ds)
	v, err := metrics.DeriveOne(ds, criteria, id)
	if err != nil {
		return nil, err
	}
	section := &Section{View: v}
	s.fillInsight(ctx, criteria, section, refresh)
	return section, nil
}
