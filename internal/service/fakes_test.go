package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"media-insight-dashboard/internal/model"
)

type fakeLLM struct {
	text  string
	err   error
	calls atomic.Int32
	// block makes Complete wait for ctx cancellation.
	block   bool
	started chan struct{}
	prompts chan string
	errFor  map[string]error
	mu      sync.Mutex
}

func (f *fakeLLM) Provider() string { return "fake" }

func (f *fakeLLM) Model() string { return "fake-model" }

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (*CompletionResult, error) {
	f.calls.Add(1)
	if f.prompts != nil {
		f.prompts <- prompt
	}
	if f.block {
		if f.started != nil {
			f.started <- struct{}{}
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f.mu.Lock()
	for marker, err := range f.errFor {
		if strings.Contains(prompt, marker) {
			f.mu.Unlock()
			return nil, err
		}
	}
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &CompletionResult{Text: f.text, Model: "fake-model", TokensUsed: 7}, nil
}


type recordingPublisher struct {
	mu     sync.Mutex
	events []model.InsightEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...model.InsightEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) outcomes() []model.InsightOutcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.InsightOutcome, len(p.events))
	for i, e := range p.events {
		out[i] = e.Outcome
	}
	return out
}
