package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/channels/gochannel"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/channels/kafka"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/eventbus"
)

// NewEventBus creates an event bus for the given provider. The in-memory
// gochannel provider serves single-process deployments; kafka serves
// multi-process ones.
func NewEventBus(provider string, logger *slog.Logger) eventbus.EventBus {
	switch provider {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(watermill.NewSlogLogger(logger), "flowd")
		if err != nil {
			panic(fmt.Errorf("failed to create Kafka pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	case "", "gochannel":
		pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
		if err != nil {
			panic(fmt.Errorf("failed to create GoChannel pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	default:
		panic("Unsupported event bus provider: " + provider)
	}
}
