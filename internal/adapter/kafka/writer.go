package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/wxtools/internal/config"
	"github.com/couchcryptid/wxtools/internal/domain"
	"github.com/couchcryptid/wxtools/internal/observability"
)

// Writer publishes weather observations to a Kafka topic.
type Writer struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured observation topic.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger}
}

// Publish serializes obs and writes it keyed by city so every observation for
// one city lands on the same partition.
func (w *Writer) Publish(ctx context.Context, obs domain.Observation) error {
	msg, err := serializeToMessage(obs)
	if err != nil {
		w.metrics.ObservationsPublished.WithLabelValues("error").Inc()
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		w.metrics.ObservationsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("publish observation: %w", err)
	}
	w.metrics.ObservationsPublished.WithLabelValues("success").Inc()
	w.logger.Debug("observation published", "city", obs.City, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Observation into a Kafka message.
func serializeToMessage(obs domain.Observation) (kafkago.Message, error) {
	data, err := json.Marshal(obs)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize observation: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(obs.City),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "city", Value: []byte(obs.City)},
			{Key: "fetched_at", Value: []byte(obs.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
