package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// EventConsumer is the lifecycle surface ConsumerGroup manages. Every typed
// Consumer satisfies it.
type EventConsumer interface {
	Topic() string
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup starts and stops a set of event consumers that share one
// subscriber.
type ConsumerGroup struct {
	consumers  []EventConsumer
	subscriber message.Subscriber
	logger     *zap.Logger
}

// NewConsumerGroup creates an empty group over the shared subscriber.
func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add registers a consumer.
func (g *ConsumerGroup) Add(consumer EventConsumer) {
	g.consumers = append(g.consumers, consumer)
}

// Start starts every consumer. When one fails, the ones already running are
// shut down before the error is returned.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, consumer := range g.consumers {
		if err := consumer.Start(ctx); err != nil {
			for _, started := range g.consumers[:i] {
				_ = started.Shutdown()
			}

			return fmt.Errorf("start consumer for topic %s: %w", consumer.Topic(), err)
		}

		g.logger.Info("consuming events", zap.String("topic", consumer.Topic()))
	}

	return nil
}

// Shutdown stops every consumer, closes the subscriber and joins any errors.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("stopping event consumers")

	errs := make([]error, 0, len(g.consumers)+1)
	for _, consumer := range g.consumers {
		errs = append(errs, consumer.Shutdown())
	}

	errs = append(errs, g.subscriber.Close())

	return errors.Join(errs...)
}
