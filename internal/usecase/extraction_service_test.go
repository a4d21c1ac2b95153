package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/afcon-extractor/internal/domain/fixture"
	"github.com/riskibarqy/afcon-extractor/internal/domain/leaguestanding"
	"github.com/riskibarqy/afcon-extractor/internal/domain/topscorers"
	"github.com/riskibarqy/afcon-extractor/internal/infrastructure/export"
	usecasemock "github.com/riskibarqy/afcon-extractor/internal/mocks/usecase"
	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
)

type recordedSleeps struct {
	waits []time.Duration
	fail  error
}

func (r *recordedSleeps) Sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	if r.fail != nil {
		return r.fail
	}
	return ctx.Err()
}

func testExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		LeagueID:        6,
		Season:          2025,
		TopScorersLimit: 30,
		StageDelay:      2 * time.Second,
	}
}

func sampleFixtures() []fixture.Fixture {
	home, away := 2, 0
	return []fixture.Fixture{
		{ID: 1001, Venue: "Stade Adrar", City: "Agadir", Status: "FT", HomeTeamID: 31, HomeTeam: "Morocco", AwayTeamID: 1504, AwayTeam: "Comoros", HomeGoals: &home, AwayGoals: &away},
		{ID: 1002, Venue: fixture.UnknownVenue, City: fixture.UnknownVenue, Status: "NS", HomeTeamID: 32, HomeTeam: "Egypt", AwayTeamID: 1531, AwayTeam: "South Africa"},
	}
}

func sampleStandings() []leaguestanding.Standing {
	return []leaguestanding.Standing{
		{Group: "Group A", Rank: 1, TeamID: 31, Team: "Morocco", Played: 1, Won: 1, GoalsFor: 2, GoalDifference: 2, Points: 3},
		{Group: "Group A", Rank: 2, TeamID: 1504, Team: "Comoros", Played: 1, Lost: 1, GoalsAgainst: 2, GoalDifference: -2},
	}
}

func sampleScorers(n int) []topscorers.TopScorer {
	out := make([]topscorers.TopScorer, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, topscorers.TopScorer{PlayerID: int64(i + 1), PlayerName: "Player", Team: "Morocco", Goals: n - i})
	}
	return out
}

func TestExtractionService_Run_WritesAllTables(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	provider := usecasemock.NewFootballProvider(t)
	provider.On("FetchFixtures", mock.Anything, 6, 2025).Return(sampleFixtures(), nil).Once()
	provider.On("FetchStandings", mock.Anything, 6, 2025).Return(sampleStandings(), nil).Once()
	provider.On("FetchTopScorers", mock.Anything, 6, 2025, 30).Return(sampleScorers(3), nil).Once()

	sleeps := &recordedSleeps{}
	service := NewExtractionService(provider, export.NewCSVWriter(dir, logging.NewNop()), testExtractionConfig(), logging.NewNop(), WithSleep(sleeps.Sleep))

	summary, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("run extraction: %v", err)
	}

	require.Equal(t, 2, summary.Fixtures)
	require.Equal(t, 1, summary.FinishedFixtures)
	require.Equal(t, 0, summary.CancelledFixtures)
	require.Equal(t, 2, summary.Standings)
	require.Equal(t, 3, summary.TopScorers)
	require.Empty(t, summary.FailedStages)
	require.Equal(t, []string{
		filepath.Join(dir, FixturesFile),
		filepath.Join(dir, StandingsFile),
		filepath.Join(dir, TopScorersFile),
	}, summary.Files)
	require.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, sleeps.waits)

	raw, err := os.ReadFile(filepath.Join(dir, FixturesFile))
	require.NoError(t, err)
	require.Equal(t,
		"fixture_id,date,venue,city,status,round,home_team_id,home_team,away_team_id,away_team,home_goals,away_goals\n"+
			"1001,,Stade Adrar,Agadir,FT,,31,Morocco,1504,Comoros,2,0\n"+
			"1002,,Unknown,Unknown,NS,,32,Egypt,1531,South Africa,,\n",
		string(raw),
	)
}

func TestExtractionService_Run_CountsFixturesByStatus(t *testing.T) {
	t.Parallel()

	fixtures := append(sampleFixtures(),
		fixture.Fixture{ID: 1003, Status: fixture.StatusPostponed, HomeTeam: "Mali", AwayTeam: "Zambia"},
		fixture.Fixture{ID: 1004, Status: fixture.StatusCancelled, HomeTeam: "Nigeria", AwayTeam: "Tunisia"},
		fixture.Fixture{ID: 1005, Status: fixture.StatusAbandoned, HomeTeam: "Senegal", AwayTeam: "Botswana"},
		fixture.Fixture{ID: 1006, Status: fixture.StatusPenalties, HomeTeam: "Algeria", AwayTeam: "Sudan"},
	)

	provider := usecasemock.NewFootballProvider(t)
	writer := usecasemock.NewTableWriter(t)
	provider.On("FetchFixtures", mock.Anything, 6, 2025).Return(fixtures, nil).Once()
	provider.On("FetchStandings", mock.Anything, 6, 2025).Return(nil, nil).Once()
	provider.On("FetchTopScorers", mock.Anything, 6, 2025, 30).Return(nil, nil).Once()
	writer.On("WriteTable", mock.Anything, FixturesFile, fixture.Header, mock.Anything).Return(FixturesFile, nil).Once()

	service := NewExtractionService(provider, writer, testExtractionConfig(), logging.NewNop(), WithSleep((&recordedSleeps{}).Sleep))

	summary, err := service.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 6, summary.Fixtures)
	require.Equal(t, 2, summary.FinishedFixtures)
	require.Equal(t, 3, summary.CancelledFixtures)
}

func TestExtractionService_Run_FailedStageSkipsOnlyItsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	provider := usecasemock.NewFootballProvider(t)
	provider.On("FetchFixtures", mock.Anything, 6, 2025).Return(sampleFixtures(), nil).Once()
	provider.On("FetchStandings", mock.Anything, 6, 2025).Return(nil, errors.New("malformed response endpoint=standings")).Once()
	provider.On("FetchTopScorers", mock.Anything, 6, 2025, 30).Return(sampleScorers(2), nil).Once()

	service := NewExtractionService(provider, export.NewCSVWriter(dir, logging.NewNop()), testExtractionConfig(), logging.NewNop(), WithSleep((&recordedSleeps{}).Sleep))

	summary, err := service.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{StageStandings}, summary.FailedStages)
	require.Equal(t, 0, summary.Standings)
	require.Len(t, summary.Files, 2)

	_, err = os.Stat(filepath.Join(dir, StandingsFile))
	require.True(t, os.IsNotExist(err), "standings file must not be created")
	_, err = os.Stat(filepath.Join(dir, TopScorersFile))
	require.NoError(t, err)
}

func TestExtractionService_Run_EmptyResultWritesNothing(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewFootballProvider(t)
	writer := usecasemock.NewTableWriter(t)
	provider.On("FetchFixtures", mock.Anything, 6, 2025).Return([]fixture.Fixture{}, nil).Once()
	provider.On("FetchStandings", mock.Anything, 6, 2025).Return(sampleStandings(), nil).Once()
	provider.On("FetchTopScorers", mock.Anything, 6, 2025, 30).Return(nil, nil).Once()
	writer.
		On("WriteTable", mock.Anything, StandingsFile, leaguestanding.Header, mock.MatchedBy(func(rows [][]string) bool { return len(rows) == 2 })).
		Return("/tmp/"+StandingsFile, nil).
		Once()

	service := NewExtractionService(provider, writer, testExtractionConfig(), logging.NewNop(), WithSleep((&recordedSleeps{}).Sleep))

	summary, err := service.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"/tmp/" + StandingsFile}, summary.Files)
	require.Empty(t, summary.FailedStages)
}

func TestExtractionService_Run_CapsTopScorers(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewFootballProvider(t)
	writer := usecasemock.NewTableWriter(t)
	provider.On("FetchFixtures", mock.Anything, 6, 2025).Return(nil, nil).Once()
	provider.On("FetchStandings", mock.Anything, 6, 2025).Return(nil, nil).Once()
	provider.On("FetchTopScorers", mock.Anything, 6, 2025, 30).Return(sampleScorers(40), nil).Once()
	writer.
		On("WriteTable", mock.Anything, TopScorersFile, topscorers.Header, mock.MatchedBy(func(rows [][]string) bool {
			return len(rows) == 30 && rows[0][0] == "1" && rows[29][0] == "30"
		})).
		Return(TopScorersFile, nil).
		Once()

	service := NewExtractionService(provider, writer, testExtractionConfig(), logging.NewNop(), WithSleep((&recordedSleeps{}).Sleep))

	summary, err := service.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 30, summary.TopScorers)
}

func TestExtractionService_Run_WriteFailureAborts(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewFootballProvider(t)
	writer := usecasemock.NewTableWriter(t)
	diskFull := errors.New("no space left on device")
	provider.On("FetchFixtures", mock.Anything, 6, 2025).Return(sampleFixtures(), nil).Once()
	writer.On("WriteTable", mock.Anything, FixturesFile, fixture.Header, mock.Anything).Return("", diskFull).Once()

	service := NewExtractionService(provider, writer, testExtractionConfig(), logging.NewNop(), WithSleep((&recordedSleeps{}).Sleep))

	_, err := service.Run(context.Background())
	if !errors.Is(err, diskFull) {
		t.Fatalf("expected write error, got %v", err)
	}
	require.ErrorContains(t, err, FixturesFile)
}

func TestExtractionService_Run_RecoversPanic(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewFootballProvider(t)
	writer := usecasemock.NewTableWriter(t)
	provider.
		On("FetchFixtures", mock.Anything, 6, 2025).
		Return(func(context.Context, int, int) ([]fixture.Fixture, error) { panic("boom") }).
		Once()

	service := NewExtractionService(provider, writer, testExtractionConfig(), logging.NewNop(), WithSleep((&recordedSleeps{}).Sleep))

	_, err := service.Run(context.Background())
	require.ErrorContains(t, err, "extraction panicked: boom")
}

func TestExtractionService_Run_StopsWhenCancelledDuringDelay(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewFootballProvider(t)
	writer := usecasemock.NewTableWriter(t)
	provider.On("FetchFixtures", mock.Anything, 6, 2025).Return(nil, nil).Once()

	sleeps := &recordedSleeps{fail: context.Canceled}
	service := NewExtractionService(provider, writer, testExtractionConfig(), logging.NewNop(), WithSleep(sleeps.Sleep))

	_, err := service.Run(context.Background())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	require.Len(t, sleeps.waits, 1)
}

func TestNewExtractionService_Defaults(t *testing.T) {
	t.Parallel()

	service := NewExtractionService(nil, nil, ExtractionConfig{Season: 2025, StageDelay: -time.Second}, nil)
	require.Equal(t, topscorers.DefaultLimit, service.cfg.TopScorersLimit)
	require.Equal(t, time.Duration(0), service.cfg.StageDelay)
	require.Equal(t, "AFCON 2025", service.cfg.Title)
}
