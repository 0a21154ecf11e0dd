package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/model"
)

func TestNewInsightEventPublisher_NoBrokers(t *testing.T) {
	cfg := &config.Config{Kafka: config.KafkaConfig{InsightTopic: "insight_events"}}
	p := NewInsightEventPublisher(cfg)

	_, isLogOnly := p.(logInsightEventPublisher)
	require.True(t, isLogOnly)
	assert.NoError(t, p.Publish(context.Background(), model.InsightEvent{View: "sentiment", Outcome: model.InsightOutcomeMiss, Timestamp: time.Now()}))
	assert.NoError(t, p.Close())
}

func TestNewInsightEventPublisher_WithBrokers(t *testing.T) {
	cfg := &config.Config{Kafka: config.KafkaConfig{
		Brokers:      []string{"localhost:9092"},
		InsightTopic: "insight_events",
		BatchSize:    10,
		BatchTimeout: time.Second,
	}}
	p := NewInsightEventPublisher(cfg)

	kp, ok := p.(*kafkaInsightEventPublisher)
	require.True(t, ok)
	assert.Equal(t, "insight_events", kp.topic)
	assert.Equal(t, "insight_events", kp.writer.Topic)
	assert.NoError(t, p.Publish(context.Background()))
	assert.NoError(t, p.Close())
}
