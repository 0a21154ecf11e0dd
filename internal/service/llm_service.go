package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"media-insight-dashboard/config"
)

// CompletionResult is the first candidate returned by a completion backend.
type CompletionResult struct {
	Text       string
	Model      string
	TokensUsed int64
}

// LLMService sends one user prompt to a chat-completion backend.
type LLMService interface {
	Complete(ctx context.Context, prompt string) (*CompletionResult, error)
	Provider() string
	Model() string
}

// NewLLMService picks the backend named by cfg.LLM.Provider.
func NewLLMService(cfg *config.Config) (LLMService, error) {
	switch cfg.LLM.Provider {
	case "openrouter":
		return NewOpenRouterLLMService(cfg.LLM, cfg.Insight.Timeout), nil
	case "gemini":
		return NewGeminiLLMService(context.Background(), cfg.LLM, cfg.Insight.Timeout)
	default:
		return nil, &config.ConfigError{Key: "LLM_PROVIDER", Reason: fmt.Sprintf("unsupported provider %q", cfg.LLM.Provider)}
	}
}

type openRouterLLMService struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenRouterLLMService talks to any OpenAI-compatible chat completions endpoint.
// SDK retries are disabled: a failed insight is reported, never re-sent.
func NewOpenRouterLLMService(cfg config.LLMConfig, timeout time.Duration) LLMService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultOpenRouterBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	return &openRouterLLMService{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

func (s *openRouterLLMService) Provider() string { return "openrouter" }

func (s *openRouterLLMService) Model() string { return s.model }

func (s *openRouterLLMService) Complete(ctx context.Context, prompt string) (*CompletionResult, error) {
	log.Debug().Str("model", s.model).Int("prompt_bytes", len(prompt)).Msg("OpenRouter LLM Service: Sending completion request")

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(s.temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			log.Error().Int("status_code", apiErr.StatusCode).Msg("OpenRouter API returned non-OK status")
			return nil, &statusError{StatusCode: apiErr.StatusCode, Err: err}
		}
		log.Error().Err(err).Msg("OpenRouter request failed")
		return nil, fmt.Errorf("openrouter request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		log.Error().Str("model", resp.Model).Msg("OpenRouter response has no choices")
		return nil, errNoChoices
	}

	return &CompletionResult{
		Text:       resp.Choices[0].Message.Content,
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

type geminiLLMService struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiLLMService(ctx context.Context, cfg config.LLMConfig, timeout time.Duration) (LLMService, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiLLMService{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
	}, nil
}

func (s *geminiLLMService) Provider() string { return "gemini" }

func (s *geminiLLMService) Model() string { return s.model }

func (s *geminiLLMService) Complete(ctx context.Context, prompt string) (*CompletionResult, error) {
	log.Debug().Str("model", s.model).Int("prompt_bytes", len(prompt)).Msg("Gemini LLM Service: Sending completion request")

	temperature := s.temperature
	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			log.Error().Int("status_code", apiErr.Code).Msg("Gemini API returned non-OK status")
			return nil, &statusError{StatusCode: apiErr.Code, Err: err}
		}
		log.Error().Err(err).Msg("Gemini request failed")
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		log.Error().Msg("Gemini response has no candidates or parts")
		return nil, errNoChoices
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	var tokens int64
	if result.UsageMetadata != nil {
		tokens = int64(result.UsageMetadata.TotalTokenCount)
	}
	return &CompletionResult{Text: text.String(), Model: s.model, TokensUsed: tokens}, nil
}
