package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/afcon-extractor/internal/domain/fixture"
	"github.com/riskibarqy/afcon-extractor/internal/domain/leaguestanding"
	"github.com/riskibarqy/afcon-extractor/internal/domain/topscorers"
	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
	"github.com/riskibarqy/afcon-extractor/internal/platform/resilience"
)

const (
	FixturesFile   = "afcon_fixtures.csv"
	StandingsFile  = "afcon_standings.csv"
	TopScorersFile = "afcon_top_scorers.csv"

	StageFixtures   = "fixtures"
	StageStandings  = "standings"
	StageTopScorers = "top_scorers"

	bannerRule = "============================================================"
)

// FootballProvider is the read side of the sports data API.
type FootballProvider interface {
	FetchFixtures(ctx context.Context, leagueID, season int) ([]fixture.Fixture, error)
	FetchStandings(ctx context.Context, leagueID, season int) ([]leaguestanding.Standing, error)
	FetchTopScorers(ctx context.Context, leagueID, season, limit int) ([]topscorers.TopScorer, error)
}

// TableWriter persists one named table and returns where it was stored.
type TableWriter interface {
	WriteTable(ctx context.Context, name string, header []string, rows [][]string) (string, error)
}

type ExtractionConfig struct {
	LeagueID        int
	Season          int
	TopScorersLimit int
	StageDelay      time.Duration
	Title           string
}

type ExtractionService struct {
	provider FootballProvider
	writer   TableWriter
	cfg      ExtractionConfig
	logger   *logging.Logger
	sleep    resilience.SleepFunc
	now      func() time.Time
}

// Summary reports what one run produced.
type Summary struct {
	StartedAt         time.Time
	FinishedAt        time.Time
	Fixtures          int
	FinishedFixtures  int
	CancelledFixtures int
	Standings         int
	TopScorers        int
	Files             []string
	FailedStages      []string
}

type ExtractionOption func(*ExtractionService)

func WithSleep(sleep resilience.SleepFunc) ExtractionOption {
	return func(s *ExtractionService) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

func WithClock(now func() time.Time) ExtractionOption {
	return func(s *ExtractionService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewExtractionService(
	provider FootballProvider,
	writer TableWriter,
	cfg ExtractionConfig,
	logger *logging.Logger,
	opts ...ExtractionOption,
) *ExtractionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.TopScorersLimit <= 0 {
		cfg.TopScorersLimit = topscorers.DefaultLimit
	}
	if cfg.StageDelay < 0 {
		cfg.StageDelay = 0
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = fmt.Sprintf("AFCON %d", cfg.Season)
	}

	s := &ExtractionService{
		provider: provider,
		writer:   writer,
		cfg:      cfg,
		logger:   logger,
		sleep:    resilience.Sleep,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run extracts fixtures, standings and top scorers in that order and writes
// one table per non-empty category. A failed extraction only leaves its
// table out; write failures, cancellation and panics abort the run.
func (s *ExtractionService) Run(ctx context.Context) (summary Summary, err error) {
	ctx, span := startSpan(ctx, "usecase.ExtractionService.Run",
		attribute.Int("extraction.league_id", s.cfg.LeagueID),
		attribute.Int("extraction.season", s.cfg.Season),
	)
	defer func() {
		if recovered := recover(); recovered != nil {
			err = crerr.Newf("extraction panicked: %v", recovered)
		}
		endSpan(span, err)
	}()

	summary.StartedAt = s.now()
	s.banner(ctx, s.cfg.Title+" Data Extraction Started", "timestamp", summary.StartedAt.Format(time.RFC3339))

	fixtures, ok := runStage(ctx, s, StageFixtures, func(ctx context.Context) ([]fixture.Fixture, error) {
		return s.provider.FetchFixtures(ctx, s.cfg.LeagueID, s.cfg.Season)
	})
	if !ok {
		summary.FailedStages = append(summary.FailedStages, StageFixtures)
	}
	summary.Fixtures = len(fixtures)
	for _, item := range fixtures {
		switch {
		case fixture.IsFinishedStatus(item.Status):
			summary.FinishedFixtures++
		case fixture.IsCancelledLikeStatus(item.Status):
			summary.CancelledFixtures++
		}
	}
	if err := s.save(ctx, &summary, FixturesFile, fixture.Header, toRows(fixtures)); err != nil {
		return summary, err
	}
	if err := s.pause(ctx); err != nil {
		return summary, err
	}

	standings, ok := runStage(ctx, s, StageStandings, func(ctx context.Context) ([]leaguestanding.Standing, error) {
		return s.provider.FetchStandings(ctx, s.cfg.LeagueID, s.cfg.Season)
	})
	if !ok {
		summary.FailedStages = append(summary.FailedStages, StageStandings)
	}
	summary.Standings = len(standings)
	if err := s.save(ctx, &summary, StandingsFile, leaguestanding.Header, toRows(standings)); err != nil {
		return summary, err
	}
	if err := s.pause(ctx); err != nil {
		return summary, err
	}

	scorers, ok := runStage(ctx, s, StageTopScorers, func(ctx context.Context) ([]topscorers.TopScorer, error) {
		return s.provider.FetchTopScorers(ctx, s.cfg.LeagueID, s.cfg.Season, s.cfg.TopScorersLimit)
	})
	if !ok {
		summary.FailedStages = append(summary.FailedStages, StageTopScorers)
	}
	if len(scorers) > s.cfg.TopScorersLimit {
		scorers = scorers[:s.cfg.TopScorersLimit]
	}
	summary.TopScorers = len(scorers)
	if err := s.save(ctx, &summary, TopScorersFile, topscorers.Header, toRows(scorers)); err != nil {
		return summary, err
	}

	summary.FinishedAt = s.now()
	span.SetAttributes(
		attribute.Int("extraction.fixtures", summary.Fixtures),
		attribute.Int("extraction.cancelled_fixtures", summary.CancelledFixtures),
		attribute.Int("extraction.standings", summary.Standings),
		attribute.Int("extraction.top_scorers", summary.TopScorers),
		attribute.Int("extraction.files", len(summary.Files)),
	)
	s.banner(ctx, "Data extraction completed successfully!",
		"fixtures", summary.Fixtures,
		"finished_fixtures", summary.FinishedFixtures,
		"cancelled_fixtures", summary.CancelledFixtures,
		"standings", summary.Standings,
		"top_scorers", summary.TopScorers,
		"files", len(summary.Files),
		"failed_stages", summary.FailedStages,
		"duration", summary.FinishedAt.Sub(summary.StartedAt),
	)
	return summary, nil
}

// runStage turns a provider failure into an empty result. Cancellation is
// reported the same way; the caller notices it at the next pause or write.
func runStage[T any](ctx context.Context, s *ExtractionService, stage string, fetch func(context.Context) ([]T, error)) ([]T, bool) {
	ctx, span := startSpan(ctx, "usecase.ExtractionService."+stage, attribute.String("extraction.stage", stage))
	var err error
	defer func() { endSpan(span, err) }()

	s.logger.InfoContext(ctx, "extracting", "stage", stage)
	rows, err := fetch(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "no data returned", "stage", stage, "error", err)
		return nil, false
	}
	span.SetAttributes(attribute.Int("extraction.rows", len(rows)))
	s.logger.InfoContext(ctx, "extracted", "stage", stage, "rows", len(rows))
	return rows, true
}

func (s *ExtractionService) save(ctx context.Context, summary *Summary, name string, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return crerr.Wrap(err, "extraction cancelled")
	}
	if len(rows) == 0 {
		s.logger.WarnContext(ctx, "nothing to save", "file", name)
		return nil
	}
	path, err := s.writer.WriteTable(ctx, name, header, rows)
	if err != nil {
		return crerr.Wrapf(err, "save %s", name)
	}
	summary.Files = append(summary.Files, path)
	s.logger.InfoContext(ctx, "saved", "path", path, "rows", len(rows))
	return nil
}

func (s *ExtractionService) pause(ctx context.Context) error {
	if err := s.sleep(ctx, s.cfg.StageDelay); err != nil {
		return crerr.Wrap(err, "extraction cancelled")
	}
	return nil
}

func (s *ExtractionService) banner(ctx context.Context, title string, args ...any) {
	s.logger.InfoContext(ctx, bannerRule)
	s.logger.InfoContext(ctx, title, args...)
	s.logger.InfoContext(ctx, bannerRule)
}

type rowRenderer interface {
	Row() []string
}

func toRows[T rowRenderer](items []T) [][]string {
	out := make([][]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Row())
	}
	return out
}
