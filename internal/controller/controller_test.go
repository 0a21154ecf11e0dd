package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/dto"
	"media-insight-dashboard/internal/kafka"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/service"
	"media-insight-dashboard/internal/store"
)

const insightText = "1. Positif.\n2. Video.\n3. Jakarta."

type stubLLM struct {
	err error
}

func (s *stubLLM) Complete(ctx context.Context, prompt string) (*service.CompletionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.CompletionResult{Text: insightText, Model: "stub"}, nil
}

func (s *stubLLM) Provider() string { return "stub" }

func (s *stubLLM) Model() string { return "stub" }

type memoryRepository struct{ ds *model.Dataset }

func (r memoryRepository) LoadDataset(ctx context.Context) (*model.Dataset, error) { return r.ds, nil }

func (r memoryRepository) Describe() string { return "memory" }

func noon(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }

func setupRouter(t *testing.T, llm service.LLMService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ds := model.NewDataset("memory", model.KnownColumns, []model.Record{
		{Date: noon(2024, 1, 1), Platform: "X", Sentiment: "Positive", MediaType: "Text", Location: "Jakarta", Engagements: 10},
		{Date: noon(2024, 1, 1), Platform: "Y", Sentiment: "Negative", MediaType: "Video", Location: "Bandung", Engagements: 5},
		{Date: noon(2024, 1, 2), Platform: "X", Sentiment: "Positive", MediaType: "Video", Location: "Jakarta", Engagements: 7},
	})
	cfg := &config.Config{Insight: config.InsightConfig{
		Timeout: time.Second, Refresh: "cached", CacheSize: 8, CacheTTL: time.Hour,
		Concurrency: 2, Brand: "ZingPop", MaxPromptBytes: 64 * 1024,
	}}

	datasets := service.NewDatasetService(memoryRepository{ds: ds})
	require.NoError(t, datasets.Reload(context.Background()))
	insights := service.NewInsightService(cfg, llm, store.NewInsightCache(8, time.Hour), kafka.NewInsightEventPublisher(cfg))
	sessions := store.NewInMemorySessionStore()
	dashboard := service.NewDashboardService(cfg, datasets, insights, sessions)

	router := gin.New()
	RegisterDashboardRoutes(router, NewDashboardController(dashboard))
	RegisterViewRoutes(router, NewViewController(dashboard))
	RegisterSessionRoutes(router, NewSessionController(sessions))
	return router
}

func doRequest(router *gin.Engine, method, target string, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetDashboard(t *testing.T) {
	router := setupRouter(t, &stubLLM{})

	w := doRequest(router, http.MethodGet, "/api/v1/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-01-01", resp.Criteria.StartDate)
	assert.Equal(t, "2024-01-02", resp.Criteria.EndDate)
	assert.Equal(t, []string{"X", "Y"}, resp.Criteria.Platforms)
	assert.Equal(t, 3, resp.RecordCount)
	require.Len(t, resp.Sections, 5)

	platform := resp.Sections[2]
	assert.Equal(t, "platform", platform.View)
	assert.Equal(t, []dto.TableRow{{Key: "X", Value: 17}, {Key: "Y", Value: 5}}, platform.Table.Rows)
	assert.Equal(t, "h", platform.Chart.Orientation)
	require.NotNil(t, platform.Insight)
	assert.Equal(t, insightText, platform.Insight.Text)
	assert.Contains(t, platform.Question, "ZingPop")
}

func TestGetDashboard_Filters(t *testing.T) {
	router := setupRouter(t, &stubLLM{})

	tests := []struct {
		name    string
		query   string
		code    int
		records int
	}{
		{"Single Day And Platform", "?startDate=2024-01-01&endDate=2024-01-01&platforms=X&insights=false", http.StatusOK, 1},
		{"Empty Platforms Selects None", "?platforms=&insights=false", http.StatusOK, 0},
		{"Inverted Range Is Empty", "?startDate=2024-01-02&endDate=2024-01-01&insights=false", http.StatusOK, 0},
		{"Bad Date", "?startDate=yesterday-ish", http.StatusBadRequest, 0},
		{"Bad Bool", "?insights=maybe", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/api/v1/dashboard"+tt.query, "", nil)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				return
			}
			var resp dto.DashboardResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.records, resp.RecordCount)
			for _, s := range resp.Sections {
				assert.Nil(t, s.Insight)
				assert.NotNil(t, s.Table.Rows)
			}
		})
	}
}

func TestGetDashboard_InsightErrorInline(t *testing.T) {
	router := setupRouter(t, &stubLLM{err: errors.New("connection refused")})

	w := doRequest(router, http.MethodGet, "/api/v1/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, s := range resp.Sections {
		require.NotNil(t, s.InsightError, "section %s", s.View)
		assert.Equal(t, "upstream", s.InsightError.Kind)
		assert.NotEmpty(t, s.InsightError.Message)
		assert.NotEmpty(t, s.Table.Rows)
	}
}

func TestGetFilters(t *testing.T) {
	router := setupRouter(t, &stubLLM{})

	w := doRequest(router, http.MethodGet, "/api/v1/dashboard/filters", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.FiltersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-01-01", resp.MinDate)
	assert.Equal(t, "2024-01-02", resp.MaxDate)
	assert.Equal(t, []string{"X", "Y"}, resp.Platforms)
	assert.Equal(t, 3, resp.TotalRecords)
}

func TestViewRoutes(t *testing.T) {
	router := setupRouter(t, &stubLLM{})

	w := doRequest(router, http.MethodGet, "/api/v1/views/engagement_trend", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view dto.SectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, []dto.TableRow{{Key: "2024-01-01", Value: 15}, {Key: "2024-01-02", Value: 7}}, view.Table.Rows)
	assert.Nil(t, view.Insight)

	w = doRequest(router, http.MethodGet, "/api/v1/views/weather", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/views/sentiment/insight", `{"platforms":["X"]}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var section dto.SectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &section))
	assert.Equal(t, []dto.TableRow{{Key: "Positive", Value: 2}}, section.Table.Rows)
	require.NotNil(t, section.Insight)
	assert.Equal(t, insightText, section.Insight.Text)

	w = doRequest(router, http.MethodPost, "/api/v1/views/sentiment/insight", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/views/sentiment/insight", `{"startDate":"nope"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessions(t *testing.T) {
	router := setupRouter(t, &stubLLM{})

	w := doRequest(router, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var session dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.SessionID)

	w = doRequest(router, http.MethodGet, "/api/v1/dashboard", "", map[string]string{SessionHeader: session.SessionID})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/dashboard", "", map[string]string{SessionHeader: "unknown"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
