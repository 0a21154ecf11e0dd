package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"media-insight-dashboard/internal/dto"
	"media-insight-dashboard/internal/metrics"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/service"
	"media-insight-dashboard/internal/store"
	"media-insight-dashboard/internal/util"
)

const SessionHeader = "X-Session-ID"

type DashboardController struct {
	dashboardService service.DashboardService
}

func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

func RegisterDashboardRoutes(router *gin.Engine, controller *DashboardController) {
	v1 := router.Group("/api/v1/dashboard")
	{
		v1.GET("", controller.GetDashboard)
		v1.GET("/filters", controller.GetFilters)
	}
}

// GetDashboard godoc
// @Summary      Get the media dashboard
// @Description  Filters the dataset once and returns the five dashboard sections. Each section carries its chart spec, aggregated table and its own insight, or an inline insight error. A failing insight never fails the response.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        startDate    query     string  false  "Start date (YYYY-MM-DD), defaults to the earliest date in the dataset"
// @Param        endDate      query     string  false  "End date (YYYY-MM-DD, inclusive), defaults to the latest date in the dataset"
// @Param        platforms    query     string  false  "Comma-separated list of platforms, defaults to all. An empty value selects none."
// @Param        insights     query     bool    false  "Request insights for every section" default(true)
// @Param        refresh      query     bool    false  "Bypass the insight cache" default(false)
// @Param        X-Session-ID header    string  false  "Session whose previous in-flight request is superseded"
// @Success      200          {object}  dto.DashboardResponse "Dashboard sections"
// @Failure      400          {object}  model.Response "Invalid query parameters"
// @Failure      404          {object}  model.Response "Unknown session"
// @Failure      500          {object}  model.Response "Internal server error"
// @Router       /api/v1/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	criteria, err := parseCriteriaQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, model.NewResponse(err.Error(), nil))
		return
	}
	withInsights, err := parseBoolQuery(ctx, "insights", true)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, model.NewResponse(err.Error(), nil))
		return
	}
	refresh, err := parseBoolQuery(ctx, "refresh", false)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, model.NewResponse(err.Error(), nil))
		return
	}

	dash, err := c.dashboardService.Build(ctx.Request.Context(), service.DashboardRequest{
		Criteria:     criteria,
		WithInsights: withInsights,
		Refresh:      refresh,
		SessionID:    ctx.GetHeader(SessionHeader),
	})
	if err != nil {
		respondError(ctx, err, "Failed to build dashboard")
		return
	}
	ctx.JSON(http.StatusOK, toDashboardResponse(dash, c.dashboardService.Brand()))
}

// GetFilters godoc
// @Summary      Get filter defaults
// @Description  Returns the observed date range and platform options used as the dashboard's default filter.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.FiltersResponse "Default filter criteria"
// @Failure      503  {object}  model.Response "Dataset not loaded"
// @Router       /api/v1/dashboard/filters [get]
func (c *DashboardController) GetFilters(ctx *gin.Context) {
	filters, err := c.dashboardService.Filters()
	if err != nil {
		respondError(ctx, err, "Failed to get filters")
		return
	}
	ctx.JSON(http.StatusOK, dto.FiltersResponse{
		Defaults:     toCriteriaResponse(filters.Defaults),
		MinDate:      util.FormatDate(filters.MinDate),
		MaxDate:      util.FormatDate(filters.MaxDate),
		Platforms:    filters.Platforms,
		Source:       filters.Source,
		TotalRecords: filters.TotalCount,
	})
}

// parseCriteriaQuery reads startDate, endDate and platforms. Absent parameters keep the dataset
// defaults; an inverted range is accepted and yields empty sections.
func parseCriteriaQuery(ctx *gin.Context) (service.CriteriaInput, error) {
	var in service.CriteriaInput

	if s := ctx.Query("startDate"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return in, errors.New("invalid startDate format. Use YYYY-MM-DD")
		}
		in.StartDate = &t
	}
	if s := ctx.Query("endDate"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return in, errors.New("invalid endDate format. Use YYYY-MM-DD")
		}
		in.EndDate = &t
	}
	if platformsStr, ok := ctx.GetQuery("platforms"); ok {
		in.Platforms = splitPlatforms(platformsStr)
	}
	return in, nil
}

func splitPlatforms(s string) []string {
	platforms := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			platforms = append(platforms, p)
		}
	}
	return platforms
}

func parseBoolQuery(ctx *gin.Context, name string, def bool) (bool, error) {
	s := ctx.Query(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q", name, s)
	}
	return v, nil
}

func respondError(ctx *gin.Context, err error, msg string) {
	var schemaErr *model.SchemaError
	switch {
	case errors.Is(err, metrics.ErrUnknownView):
		ctx.JSON(http.StatusNotFound, model.NewResponse(err.Error(), nil))
	case errors.Is(err, store.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, model.NewResponse(err.Error(), nil))
	case errors.Is(err, service.ErrDatasetNotLoaded):
		ctx.JSON(http.StatusServiceUnavailable, model.NewResponse(err.Error(), nil))
	case errors.As(err, &schemaErr):
		log.Error().Err(err).Str("column", schemaErr.Column).Msg("Dataset schema error")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse(err.Error(), nil))
	default:
		log.Error().Err(err).Msg(msg)
		ctx.JSON(http.StatusInternalServerError, model.NewResponse(msg, nil))
	}
}
