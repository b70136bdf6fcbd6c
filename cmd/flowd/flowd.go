package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/catalog"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/cmd"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/dispatcher"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/engine"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/otelhelper"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/receivers/queue"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/scheduler"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/services"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/web"
)

type Config struct {
	Port        int
	DatabaseURL string
	EventBus    string
	RedisAddr   string
	RedisQueue  string
	Tracing     bool
}

type App struct {
	logger *slog.Logger
	config Config
}

func NewApp(logger *slog.Logger, config Config) *App {
	return &App{logger: logger, config: config}
}

// recordPersistence is the extra surface the record store needs from the
// persistence layer.
type recordPersistence interface {
	Records() (map[string][]map[string]any, error)
	SaveRecords(map[string][]map[string]any) error
}

func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	persistence := cmd.NewPersistence(a.config.DatabaseURL)
	defer func() {
		if err := persistence.Close(context.Background()); err != nil {
			a.logger.Error("Failed to close persistence", "error", err)
		}
	}()

	records := collab.NewRecordStore(nil)
	if rp, ok := persistence.(recordPersistence); ok {
		snapshot, err := rp.Records()
		if err != nil {
			return err
		}

		records = collab.NewRecordStore(rp.SaveRecords)
		records.Load(snapshot)
	}

	registry := cmd.NewRegistry(a.logger, records, collab.Services{})
	cat := catalog.Default()

	var tracer trace.Tracer

	if a.config.Tracing {
		var err error

		tracer, err = otelhelper.NewTracer(ctx, "flowd")
		if err != nil {
			return err
		}
	}

	history := services.NewHistory(persistence)
	eng := engine.NewEngine(persistence, registry, history, a.logger, tracer)

	bus := cmd.NewEventBus(a.config.EventBus, a.logger)
	defer func() {
		if err := bus.Close(); err != nil {
			a.logger.Error("Failed to close event bus", "error", err)
		}
	}()

	disp := dispatcher.NewDispatcher(persistence, eng, cat, a.logger)
	bus.Handle(disp.HandleBusEvent)

	if err := bus.Subscribe(ctx); err != nil {
		return err
	}

	sched := scheduler.NewScheduler(bus, a.logger)
	if err := sched.Start(ctx, persistence); err != nil {
		return err
	}

	workflowService := services.NewWorkflow(persistence, cat, sched, a.logger)

	if a.config.RedisAddr != "" {
		receiver := queue.NewReceiver(a.config.RedisAddr, "", 0, a.config.RedisQueue, bus, a.logger)
		if err := receiver.Start(ctx); err != nil {
			return err
		}

		defer func() {
			if err := receiver.Stop(context.Background()); err != nil {
				a.logger.Error("Failed to stop queue receiver", "error", err)
			}
		}()
	}

	handlers := web.NewAPIHandlers(
		workflowService,
		history,
		cat,
		registry,
		bus,
		validator.New(validator.WithRequiredStructEnabled()),
	)
	server := web.NewApp(handlers)

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.Listen(":" + strconv.Itoa(a.config.Port))
	}()

	a.logger.InfoContext(ctx, "flowd started", "port", a.config.Port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		a.logger.Error("Failed to shut down API server", "error", err)
	}

	if err := sched.Stop(shutdownCtx); err != nil {
		a.logger.Error("Failed to stop scheduler", "error", err)
	}

	disp.Drain()

	return nil
}
