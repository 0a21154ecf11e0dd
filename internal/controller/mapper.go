package controller

import (
	"media-insight-dashboard/internal/dto"
	"media-insight-dashboard/internal/metrics"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/service"
	"media-insight-dashboard/internal/util"
)

func toCriteriaResponse(c model.FilterCriteria) dto.CriteriaResponse {
	platforms := c.Platforms
	if platforms == nil {
		platforms = []string{}
	}
	return dto.CriteriaResponse{
		StartDate: util.FormatDate(c.StartDate),
		EndDate:   util.FormatDate(c.EndDate),
		Platforms: platforms,
	}
}

func toTableResponse(t *metrics.AggregatedTable) dto.TableResponse {
	rows := make([]dto.TableRow, 0, t.Len())
	for _, r := range t.Rows {
		rows = append(rows, dto.TableRow{Key: r.Key, Value: r.Value})
	}
	return dto.TableResponse{KeyColumn: t.KeyColumn, ValueColumn: t.ValueColumn, Rows: rows}
}

func toSectionResponse(s service.Section, brand string) dto.SectionResponse {
	resp := dto.SectionResponse{
		View:     string(s.ID),
		Title:    s.Title,
		Section:  s.Definition.Section,
		Question: s.QuestionFor(brand),
		Chart:    s.Chart,
		Table:    toTableResponse(s.Table),
	}
	if s.Insight != nil {
		resp.Insight = &dto.InsightResponse{Text: s.Insight.Text, Model: s.Insight.Model, Cached: s.Insight.Cached}
	}
	if s.InsightErr != nil {
		resp.InsightError = &dto.InsightErrorResponse{Kind: string(s.InsightErr.Kind), Message: s.InsightErr.Message()}
	}
	return resp
}

func toDashboardResponse(d *service.Dashboard, brand string) dto.DashboardResponse {
	sections := make([]dto.SectionResponse, 0, len(d.Sections))
	for _, s := range d.Sections {
		sections = append(sections, toSectionResponse(s, brand))
	}
	return dto.DashboardResponse{
		Criteria:    toCriteriaResponse(d.Criteria),
		Source:      d.Source,
		RecordCount: d.RecordCount,
		Sections:    sections,
		GeneratedAt: d.GeneratedAt.UnixMilli(),
	}
}
