package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-insight-dashboard/config"
)

const threeInsights = "1. Sentimen positif mendominasi.\n2. Video paling menarik.\n3. Jakarta memimpin keterlibatan."

func openRouterServer(t *testing.T, handler http.HandlerFunc) config.LLMConfig {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return config.LLMConfig{
		Provider:    "openrouter",
		APIKey:      "test-key",
		BaseURL:     srv.URL + "/api/v1",
		Model:       config.DefaultOpenRouterModel,
		Temperature: config.InsightTemperature,
	}
}

func writeCompletion(w http.ResponseWriter, content string, choices int) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type choice struct {
		Index        int     `json:"index"`
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	}
	resp := map[string]interface{}{
		"id":      "gen-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   config.DefaultOpenRouterModel,
		"choices": []choice{},
		"usage":   map[string]int{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
	}
	list := make([]choice, 0, choices)
	for i := 0; i < choices; i++ {
		list = append(list, choice{Index: i, Message: message{Role: "assistant", Content: content}, FinishReason: "stop"})
	}
	resp["choices"] = list
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func TestOpenRouterLLMService_Complete(t *testing.T) {
	var gotBody map[string]interface{}
	var gotPath, gotAuth string
	cfg := openRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		writeCompletion(w, threeInsights, 1)
	})

	svc := NewOpenRouterLLMService(cfg, 5*time.Second)
	assert.Equal(t, "openrouter", svc.Provider())

	result, err := svc.Complete(context.Background(), "halo")
	require.NoError(t, err)
	assert.Equal(t, threeInsights, result.Text)
	assert.Equal(t, int64(30), result.TokensUsed)

	assert.Equal(t, "/api/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, config.DefaultOpenRouterModel, gotBody["model"])
	assert.InDelta(t, 0.7, gotBody["temperature"], 1e-9)
}

func TestOpenRouterLLMService_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    InsightErrorKind
	}{
		{"Unauthorized", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
		}, InsightErrAuth},
		{"Rate Limited", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"slow down"}}`, http.StatusTooManyRequests)
		}, InsightErrRateLimit},
		{"Too Large", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"too big"}}`, http.StatusRequestEntityTooLarge)
		}, InsightErrTooLarge},
		{"No Choices", func(w http.ResponseWriter, r *http.Request) {
			writeCompletion(w, "", 0)
		}, InsightErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			cfg := openRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				tt.handler(w, r)
			})
			svc := NewOpenRouterLLMService(cfg, 5*time.Second)

			_, err := svc.Complete(context.Background(), "halo")
			require.Error(t, err)
			assert.Equal(t, tt.want, classifyInsightError("sentiment", err).Kind)
			assert.Equal(t, 1, calls, "failed calls must not be retried")
		})
	}
}

func TestOpenRouterLLMService_NetworkFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	svc := NewOpenRouterLLMService(config.LLMConfig{APIKey: "k", BaseURL: url, Model: "m"}, time.Second)
	_, err := svc.Complete(context.Background(), "halo")
	require.Error(t, err)

	insightErr := classifyInsightError("platform", err)
	assert.Equal(t, InsightErrNetwork, insightErr.Kind)
	assert.Equal(t, "platform", insightErr.View)
	assert.NotEmpty(t, insightErr.Message())
}

func TestGeminiLLMService_Complete(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"1. a\n"},{"text":"2. b"}]}}],"usageMetadata":{"totalTokenCount":12}}`)
	}))
	defer srv.Close()

	svc, err := NewGeminiLLMService(context.Background(), config.LLMConfig{
		Provider: "gemini", APIKey: "k", BaseURL: srv.URL, Model: "gemini-test", Temperature: 0.7,
	}, 5*time.Second)
	require.NoError(t, err)

	result, err := svc.Complete(context.Background(), "halo")
	require.NoError(t, err)
	assert.Equal(t, "1. a\n2. b", result.Text)
	assert.Equal(t, int64(12), result.TokensUsed)
	assert.True(t, strings.Contains(gotPath, "gemini-test"), "path %s should name the model", gotPath)
}

func TestNewLLMService_UnknownProvider(t *testing.T) {
	_, err := NewLLMService(&config.Config{LLM: config.LLMConfig{Provider: "watson"}})
	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "LLM_PROVIDER", cfgErr.Key)
}
