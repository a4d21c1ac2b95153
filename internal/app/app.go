package app

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/afcon-extractor/external/apifootball"
	"github.com/riskibarqy/afcon-extractor/internal/config"
	"github.com/riskibarqy/afcon-extractor/internal/infrastructure/export"
	"github.com/riskibarqy/afcon-extractor/internal/observability"
	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
	"github.com/riskibarqy/afcon-extractor/internal/usecase"
)

// Extractor bundles a ready-to-run extraction with the telemetry it started.
type Extractor struct {
	Service  *usecase.ExtractionService
	shutdown []func(context.Context) error
}

// NewExtractor validates cfg, prepares the output directory and wires the
// provider client, table writer and optional telemetry.
func NewExtractor(cfg config.Config, logger *logging.Logger) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	out := &Extractor{}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, crerr.Wrap(err, "init uptrace")
	}
	out.shutdown = append(out.shutdown, shutdownTracing)

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		_ = out.Close(context.Background())
		return nil, crerr.Wrap(err, "init pyroscope")
	}
	out.shutdown = append(out.shutdown, func(context.Context) error { return stopProfiler() })

	client := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		Timeout:           cfg.HTTPTimeout,
		MaxRetries:        cfg.MaxRetries,
		RateLimitCooldown: cfg.RateLimitCooldown,
		TimeoutBackoff:    cfg.TimeoutBackoff,
		Logger:            logger,
	})
	writer := export.NewCSVWriter(cfg.DataDir, logger)

	out.Service = usecase.NewExtractionService(client, writer, usecase.ExtractionConfig{
		LeagueID:        cfg.LeagueID,
		Season:          cfg.Season,
		TopScorersLimit: cfg.TopScorersLimit,
		StageDelay:      cfg.StageDelay,
	}, logger)
	return out, nil
}

// Close flushes telemetry in reverse start order.
func (e *Extractor) Close(ctx context.Context) error {
	var errs error
	for i := len(e.shutdown) - 1; i >= 0; i-- {
		if err := e.shutdown[i](ctx); err != nil {
			errs = crerr.CombineErrors(errs, err)
		}
	}
	e.shutdown = nil
	return errs
}
