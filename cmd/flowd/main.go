// Package main provides the flowd server binary: REST API, event
// dispatcher, and scheduler in one process.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/log"
)

const defaultPort = 9090

func main() {
	logger := log.WithModule("flowd")

	cmd := &cli.Command{
		Name:                  "flowd",
		Usage:                 "Workflow automation for small businesses",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Persistence location (directory path or file:// URL)",
				Value:   "file://./data",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS"),
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis address for the event queue receiver (empty disables it)",
				Sources: cli.EnvVars("REDIS_ADDR"),
			},
			&cli.StringFlag{
				Name:    "redis-queue",
				Usage:   "Redis list the queue receiver pops events from",
				Value:   "flowd:events",
				Sources: cli.EnvVars("REDIS_QUEUE"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Enable OTLP trace export",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing flowd")

			app := NewApp(logger, Config{
				Port:        command.Int("port"),
				DatabaseURL: command.String("database-url"),
				EventBus:    command.String("event-bus"),
				RedisAddr:   command.String("redis-addr"),
				RedisQueue:  command.String("redis-queue"),
				Tracing:     command.Bool("tracing"),
			})

			return app.Run(ctx)
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
