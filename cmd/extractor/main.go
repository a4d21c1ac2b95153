package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/riskibarqy/afcon-extractor/internal/app"
	"github.com/riskibarqy/afcon-extractor/internal/config"
	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		return reportConfigError(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		return 1
	}
	defer logger.Close()
	logger = logger.With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)

	extractor, err := app.NewExtractor(cfg, logger)
	if err != nil {
		logger.Error("extractor setup failed", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := extractor.Close(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, span := otel.Tracer("afcon-extractor/cmd/extractor").Start(ctx, "extraction.run")
	defer span.End()

	if _, err := extractor.Service.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "extraction failed", "error", err, "detail", fmt.Sprintf("%+v", err))
		return 1
	}
	return 0
}

// reportConfigError writes a configuration failure to the run log before
// the configured logger exists. Stderr is the last resort.
func reportConfigError(err error) int {
	logger, logErr := logging.New(logging.LevelInfo, config.LogFileFromEnv())
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	defer logger.Close()
	logger.Error("load config failed", "error", err)
	return 1
}
