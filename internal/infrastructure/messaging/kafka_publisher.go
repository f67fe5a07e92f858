package messaging

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"
)

// KafkaPublisher is an implementation of EventPublisher that writes dataset
// events to a kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger logger.Logger
}

// NewKafkaPublisher creates a KafkaPublisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger logger.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}

	return &KafkaPublisher{writer: writer, logger: logger}, nil
}

// DatasetCreated publishes a dataset.created event keyed by dataset id.
func (p *KafkaPublisher) DatasetCreated(ctx context.Context, event *datasets.Event) error {
	serialized, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.DatasetID),
		Value: serialized,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event for dataset '%s': %w", event.DatasetID, err)
	}

	p.logger.Info(fmt.Sprintf("published %s event for dataset '%s'", event.Type, event.DatasetID))
	return nil
}

// Close flushes and closes the underlying kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
