package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"media-insight-dashboard/internal/dto"
	"media-insight-dashboard/internal/metrics"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/service"
	"media-insight-dashboard/internal/util"
)

type ViewController struct {
	dashboardService service.DashboardService
}

func NewViewController(dashboardService service.DashboardService) *ViewController {
	return &ViewController{
		dashboardService: dashboardService,
	}
}

func RegisterViewRoutes(router *gin.Engine, controller *ViewController) {
	v1 := router.Group("/api/v1/views")
	{
		v1.GET("/:view", controller.GetView)
		v1.POST("/:view/insight", controller.RequestViewInsight)
	}
}

// GetView godoc
// @Summary      Get one aggregated view
// @Description  Computes a single dashboard section without requesting its insight.
// @Tags         views
// @Produce      json
// @Param        view       path      string  true   "View id" Enums(sentiment, engagement_trend, platform, media_type, top_locations)
// @Param        startDate  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        endDate    query     string  false  "End date (YYYY-MM-DD, inclusive)"
// @Param        platforms  query     string  false  "Comma-separated list of platforms"
// @Success      200        {object}  dto.SectionResponse "Aggregated view"
// @Failure      400        {object}  model.Response "Invalid query parameters"
// @Failure      404        {object}  model.Response "Unknown view"
// @Failure      500        {object}  model.Response "Internal server error"
// @Router       /api/v1/views/{view} [get]
func (c *ViewController) GetView(ctx *gin.Context) {
	criteria, err := parseCriteriaQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, model.NewResponse(err.Error(), nil))
		return
	}

	v, err := c.dashboardService.View(metrics.ViewID(ctx.Param("view")), criteria)
	if err != nil {
		respondError(ctx, err, "Failed to compute view")
		return
	}
	ctx.JSON(http.StatusOK, toSectionResponse(service.Section{View: *v}, c.dashboardService.Brand()))
}

// RequestViewInsight godoc
// @Summary      Request the insight for one view
// @Description  Computes one view and asks the completion backend for its insight, independently of the other sections. Insight failures are returned inline in insightError.
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        view     path      string                  true   "View id" Enums(sentiment, engagement_trend, platform, media_type, top_locations)
// @Param        request  body      dto.ViewInsightRequest  false  "Filter criteria"
// @Success      200      {object}  dto.SectionResponse "View with insight or inline insight error"
// @Failure      400      {object}  model.Response "Invalid request body"
// @Failure      404      {object}  model.Response "Unknown view"
// @Failure      500      {object}  model.Response "Internal server error"
// @Router       /api/v1/views/{view}/insight [post]
func (c *ViewController) RequestViewInsight(ctx *gin.Context) {
	var req dto.ViewInsightRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			log.Warn().Err(err).Msg("Invalid view insight request body")
			ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid request body: "+err.Error(), nil))
			return
		}
	}

	var criteria service.CriteriaInput
	if req.StartDate != nil {
		t, err := util.ParseDate(*req.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, model.NewResponse("invalid startDate format. Use YYYY-MM-DD", nil))
			return
		}
		criteria.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := util.ParseDate(*req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, model.NewResponse("invalid endDate format. Use YYYY-MM-DD", nil))
			return
		}
		criteria.EndDate = &t
	}
	criteria.Platforms = req.Platforms

	section, err := c.dashboardService.Insight(ctx.Request.Context(), metrics.ViewID(ctx.Param("view")), criteria, req.Refresh)
	if err != nil {
		respondError(ctx, err, "Failed to request insight")
		return
	}
	ctx.JSON(http.StatusOK, toSectionResponse(*section, c.dashboardService.Brand()))
}
