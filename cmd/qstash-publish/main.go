package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/qstash-go/internal/app"
	"github.com/samvad-hq/qstash-go/internal/config"
	"github.com/samvad-hq/qstash-go/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "qstash-publish failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher, err := app.NewPublisher(cfg, log)
	if err != nil {
		return fmt.Errorf("init publisher: %w", err)
	}

	if err := publisher.Run(ctx); err != nil {
		return fmt.Errorf("publish run: %w", err)
	}

	return nil
}
