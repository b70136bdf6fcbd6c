// Package eventbus provides the transport that carries domain events from
// receivers and the scheduler to the dispatcher.
package eventbus

import (
	"context"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/events"
)

type EventHandler func(ctx context.Context, event events.DomainEvent) error

type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

type EventSubscriber interface {
	Handle(handler EventHandler)
	Subscribe(ctx context.Context) error
}

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
	GenerateID() string
}
