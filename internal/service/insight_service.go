package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/kafka"
	"media-insight-dashboard/internal/metrics"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/store"
)

const promptTemplate = `Anda adalah analis intelijen media profesional. Analisis dataset berikut untuk: %s.
DATA:
%s
PERTANYAAN: %s
Berikan 3 insight yang ringkas, berbobot, dan dapat ditindaklanjuti, semuanya dalam **bahasa Indonesia**.`

// BuildPrompt embeds the table as CSV together with the question in the analyst instruction.
func BuildPrompt(title string, table *metrics.AggregatedTable, question string) string {
	return fmt.Sprintf(promptTemplate, title, strings.TrimRight(table.CSV(), "\n"), question)
}

type InsightRequest struct {
	View     metrics.ViewID
	Title    string
	Question string
	Criteria model.FilterCriteria
	Table    *metrics.AggregatedTable
	// Refresh bypasses the cache for this request.
	Refresh bool
}

type InsightResult struct {
	View   metrics.ViewID
	Text   string
	Model  string
	Cached bool
}

type InsightService interface {
	RequestInsight(ctx context.Context, req InsightRequest) (*InsightResult, error)
	// Cache exposes the backing cache for maintenance jobs.
	Cache() store.InsightCache
}

type insightService struct {
	llm            LLMService
	cache          store.InsightCache
	publisher      kafka.InsightEventPublisher
	limiter        *rate.Limiter
	timeout        time.Duration
	alwaysRefresh  bool
	maxPromptBytes int
}

func NewInsightService(
	cfg *config.Config,
	llm LLMService,
	cache store.InsightCache,
	publisher kafka.InsightEventPublisher,
) InsightService {
	limit := rate.Inf
	burst := 1
	if cfg.Insight.RatePerMinute > 0 {
		limit = rate.Limit(float64(cfg.Insight.RatePerMinute) / 60.0)
		burst = cfg.Insight.Concurrency
		if burst < 1 {
			burst = 1
		}
	}
	return &insightService{
		llm:            llm,
		cache:          cache,
		publisher:      publisher,
		limiter:        rate.NewLimiter(limit, burst),
		timeout:        cfg.Insight.Timeout,
		alwaysRefresh:  cfg.Insight.Refresh == "always",
		maxPromptBytes: cfg.Insight.MaxPromptBytes,
	}
}

func (s *insightService) Cache() store.InsightCache { return s.cache }

func cacheKey(req InsightRequest) string {
	return string(req.View) + "|" + req.Criteria.Key() + "|" + req.Table.Hash()
}

func (s *insightService) RequestInsight(ctx context.Context, req InsightRequest) (*InsightResult, error) {
	if req.Table == nil {
		return nil, errors.New("insight request has no table")
	}
	start := time.Now()
	key := cacheKey(req)
	prompt := BuildPrompt(req.Title, req.Table, req.Question)
	event := model.InsightEvent{
		ID:          uuid.NewString(),
		View:        string(req.View),
		CriteriaKey: req.Criteria.Key(),
		TableHash:   req.Table.Hash(),
		Provider:    s.llm.Provider(),
		Model:       s.llm.Model(),
		PromptBytes: len(prompt),
	}

	if !s.alwaysRefresh && !req.Refresh {
		if cached, ok := s.cache.Get(key); ok {
			log.Debug().Str("view", string(req.View)).Msg("Insight cache hit")
			event.Outcome = model.InsightOutcomeHit
			event.Model = cached.Model
			s.publish(event, start)
			return &InsightResult{View: req.View, Text: cached.Text, Model: cached.Model, Cached: true}, nil
		}
	}

	result, err := s.complete(ctx, req, prompt)
	if err != nil {
		insightErr := classifyInsightError(string(req.View), err)
		log.Error().Err(insightErr.Err).
			Str("view", string(req.View)).
			Str("kind", string(insightErr.Kind)).
			Msg("Insight request failed")
		event.Outcome = model.InsightOutcomeError
		event.ErrorKind = string(insightErr.Kind)
		s.publish(event, start)
		return nil, insightErr
	}

	s.cache.Set(key, result.Text, result.Model)
	event.Outcome = model.InsightOutcomeMiss
	event.Model = result.Model
	event.TokensUsed = result.TokensUsed
	s.publish(event, start)

	log.Info().
		Str("view", string(req.View)).
		Str("model", result.Model).
		Dur("latency", time.Since(start)).
		Msg("Insight generated")
	return &InsightResult{View: req.View, Text: result.Text, Model: result.Model}, nil
}

func (s *insightService) complete(ctx context.Context, req InsightRequest, prompt string) (*CompletionResult, error) {
	if s.maxPromptBytes > 0 && len(prompt) > s.maxPromptBytes {
		return nil, &InsightError{
			View: string(req.View),
			Kind: InsightErrTooLarge,
			Err:  fmt.Errorf("prompt is %d bytes, limit is %d", len(prompt), s.maxPromptBytes),
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(callCtx); err != nil {
		if ctxErr := callCtx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// Wait fails early when the next token would arrive after the deadline.
		return nil, &InsightError{View: string(req.View), Kind: InsightErrRateLimit, Err: err}
	}

	result, err := s.llm.Complete(callCtx, prompt)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Text) == "" {
		return nil, errNoChoices
	}
	return result, nil
}

// publish never blocks the caller on the broker.
func (s *insightService) publish(event model.InsightEvent, start time.Time) {
	event.LatencyMs = time.Since(start).Milliseconds()
	event.Timestamp = time.Now().UTC()
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		log.Warn().Err(err).Str("view", event.View).Msg("Failed to publish insight event")
	}
}
