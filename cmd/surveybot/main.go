package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/m3rciful/surveybot/bootstrap"
	"github.com/m3rciful/surveybot/bot"
	"github.com/m3rciful/surveybot/buildinfo"
	"github.com/m3rciful/surveybot/config"
	"github.com/m3rciful/surveybot/logger"
	"github.com/m3rciful/surveybot/metrics"
	"github.com/m3rciful/surveybot/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "surveybot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	boot, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Shutdown() }()
	defer func() { _ = boot.DB.Close() }()

	metrics.Init()
	stopMetrics := metrics.Serve(cfg.Metrics.Listen)

	logger.L.Info("bot starting",
		slog.String("event", "startup"),
		slog.String("version", buildinfo.Version),
		slog.String("commit", buildinfo.Commit),
		slog.Int("questions", boot.Catalog.Len()),
	)

	app := bot.New(cfg, boot.DB, boot.Catalog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := telegram.RunTelegram(ctx, app.RunOptions())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := stopMetrics(shutdownCtx); err != nil {
		logger.L.Warn("metrics shutdown failed",
			slog.String("event", "shutdown"),
			slog.String("err", err.Error()),
		)
	}

	logger.L.Info("bot stopped",
		slog.String("event", "shutdown"),
	)
	return runErr
}
