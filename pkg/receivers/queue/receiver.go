// Package queue consumes domain events from a Redis list and forwards them
// to the event bus, so external systems can raise events by pushing JSON.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/eventbus"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/events"
)

const defaultQueue = "flowd:events"

type Receiver struct {
	Addr     string
	Password string
	DB       int
	Queue    string

	client    redis.UniversalClient
	publisher eventbus.EventPublisher
	logger    *slog.Logger
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

func NewReceiver(addr, password string, db int, queue string, publisher eventbus.EventPublisher, logger *slog.Logger) *Receiver {
	if queue == "" {
		queue = defaultQueue
	}

	return &Receiver{
		Addr:      addr,
		Password:  password,
		DB:        db,
		Queue:     queue,
		publisher: publisher,
		stopCh:    make(chan struct{}),
		logger: logger.With(
			"module", "queue_receiver",
			"queue", queue,
		),
	}
}

func (r *Receiver) Start(ctx context.Context) error {
	addr := r.Addr
	if addr == "" {
		addr = "localhost:6379"
	}

	r.client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: r.Password,
		DB:       r.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.client.Ping(pingCtx).Err()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	r.logger.InfoContext(ctx, "Connected to Redis", "addr", addr, "db", r.DB)

	r.wg.Add(1)

	go r.consume(ctx)

	return nil
}

func (r *Receiver) consume(ctx context.Context) {
	defer r.wg.Done()

	r.logger.InfoContext(ctx, "Starting queue consumer")

	for {
		select {
		case <-r.stopCh:
			r.logger.InfoContext(ctx, "Queue consumer stopped")

			return
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "Context cancelled, stopping queue consumer")

			return
		default:
			err := r.processMessage(ctx)
			if err != nil {
				r.logger.ErrorContext(ctx, "Error processing message", "error", err)
				time.Sleep(1 * time.Second)
			}
		}
	}
}

func (r *Receiver) processMessage(ctx context.Context) error {
	result, err := r.client.BLPop(ctx, 1*time.Second, r.Queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}

		return fmt.Errorf("failed to pop message from queue: %w", err)
	}

	if len(result) < 2 {
		return nil
	}

	message := result[1]

	var event events.DomainEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		return fmt.Errorf("malformed event on queue: %w", err)
	}

	if event.Type == "" {
		return errors.New("event on queue has no type")
	}

	r.logger.InfoContext(ctx, "Received event from queue", "event_type", event.Type)

	return r.publisher.Publish(ctx, event)
}

func (r *Receiver) Stop(ctx context.Context) error {
	r.logger.InfoContext(ctx, "Stopping queue receiver")

	close(r.stopCh)
	r.wg.Wait()

	if r.client != nil {
		err := r.client.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "Error closing Redis client", "error", err)
		}
	}

	return nil
}
