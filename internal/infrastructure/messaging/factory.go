package messaging

import (
	"fmt"
	"io"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/config"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"
)

// Publisher combines the domain EventPublisher contract with a Close method
// for shutdown.
type Publisher interface {
	datasets.EventPublisher
	io.Closer
}

// NewEventPublisher creates the publisher selected by the settings: a kafka
// publisher when events are enabled, a noop publisher otherwise.
func NewEventPublisher(settings *config.EventSettings, logger logger.Logger) (Publisher, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event settings: %w", err)
	}

	if !settings.Enabled {
		return NewNoopPublisher(), nil
	}
	return NewKafkaPublisher(settings.Brokers, settings.Topic, logger)
}
