package kafka

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/model"
)

type InsightEventPublisher interface {
	Publish(ctx context.Context, events ...model.InsightEvent) error
	Close() error
}

type kafkaInsightEventPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewInsightEventPublisher writes events to Kafka, or only logs them when no brokers are configured.
func NewInsightEventPublisher(cfg *config.Config) InsightEventPublisher {
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.InsightTopic == "" {
		log.Info().Msg("Kafka brokers or insight topic not configured, insight events will only be logged")
		return logInsightEventPublisher{}
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.InsightTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    cfg.Kafka.BatchSize,
		BatchTimeout: cfg.Kafka.BatchTimeout,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error().Err(err).Int("message_count", len(messages)).Msg("Failed to deliver insight events to Kafka")
			}
		},
	}
	log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.InsightTopic).Msg("Kafka insight event publisher initialized")
	return &kafkaInsightEventPublisher{
		writer: writer,
		topic:  cfg.Kafka.InsightTopic,
	}
}

func (p *kafkaInsightEventPublisher) Publish(ctx context.Context, events ...model.InsightEvent) error {
	if len(events) == 0 {
		return nil
	}
	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			log.Error().Err(err).Str("view", event.View).Msg("Failed to marshal insight event for Kafka")
			continue
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(event.View),
			Value: value,
		})
	}
	if len(messages) == 0 {
		log.Warn().Msg("No valid insight events to produce.")
		return nil
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		log.Error().Err(err).Int("message_count", len(messages)).Msg("Failed to write insight events to Kafka")
		return err
	}
	log.Debug().Int("message_count", len(messages)).Str("topic", p.topic).Msg("Produced insight events to Kafka")
	return nil
}

func (p *kafkaInsightEventPublisher) Close() error {
	log.Info().Msg("Closing Kafka insight event publisher")
	return p.writer.Close()
}

type logInsightEventPublisher struct{}

func (logInsightEventPublisher) Publish(_ context.Context, events ...model.InsightEvent) error {
	for _, e := range events {
		log.Debug().
			Str("view", e.View).
			Str("outcome", string(e.Outcome)).
			Str("error_kind", e.ErrorKind).
			Int64("latency_ms", e.LatencyMs).
			Msg("Insight event")
	}
	return nil
}

func (logInsightEventPublisher) Close() error { return nil }
