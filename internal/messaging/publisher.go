package messaging

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Publish is a function that publishes a typed event. Handlers depend on
// this narrow type instead of the transport.
type Publish[T any] func(event *T) error

// NewPublishFunc creates a typed publish function bound to one topic.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return publisher.Publish(topic, message.NewMessage(uuid.NewString(), payload))
	}
}

// NopPublish returns a publish function that discards events. Used when
// event publishing is disabled.
func NopPublish[T any]() Publish[T] {
	return func(*T) error { return nil }
}

// PublisherGroup owns the underlying publisher's lifecycle.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup creates a new publisher group.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher returns the underlying message publisher for creating typed
// publish functions.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
