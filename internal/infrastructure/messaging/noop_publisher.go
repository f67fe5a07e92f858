package messaging

import (
	"context"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
)

// NoopPublisher is an EventPublisher that discards all events. It is used
// when event publishing is disabled.
type NoopPublisher struct{}

// NewNoopPublisher creates a NoopPublisher.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// DatasetCreated discards the event.
func (p *NoopPublisher) DatasetCreated(ctx context.Context, event *datasets.Event) error {
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error {
	return nil
}
