package apifootball

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/afcon-extractor/internal/domain/fixture"
	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
)

// FetchFixtures returns every fixture of the league season in provider order.
func (c *Client) FetchFixtures(ctx context.Context, leagueID, season int) ([]fixture.Fixture, error) {
	ctx, span := tracer.Start(ctx, "apifootball.Client.FetchFixtures")
	defer span.End()

	env, err := c.Get(ctx, EndpointFixtures, seasonParams(leagueID, season))
	if err != nil {
		return nil, err
	}
	items, err := responseItems(EndpointFixtures, env)
	if err != nil {
		return nil, err
	}
	return parseFixtures(ctx, c.logger, items), nil
}

func parseFixtures(ctx context.Context, logger *logging.Logger, items []any) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for idx, item := range items {
		row, err := parseFixture(fmt.Sprintf("response[%d]", idx), item)
		if err != nil {
			logger.WarnContext(ctx, "skipping fixture with missing field", "index", idx, "error", err)
			continue
		}
		if _, dup := seen[row.ID]; dup {
			logger.WarnContext(ctx, "skipping duplicate fixture", "index", idx, "fixture_id", row.ID)
			continue
		}
		seen[row.ID] = struct{}{}
		out = append(out, row)
	}
	return out
}

func parseFixture(path string, item any) (fixture.Fixture, error) {
	root := newNode(path, item)
	match := root.object("fixture")
	home := root.object("teams").object("home")
	away := root.object("teams").object("away")

	row := fixture.Fixture{
		ID:         match.getInt64("id"),
		Date:       match.getString("date"),
		Status:     match.object("status").getString("short"),
		Round:      root.object("league").getString("round"),
		HomeTeamID: home.getInt64("id"),
		HomeTeam:   home.getString("name"),
		AwayTeamID: away.getInt64("id"),
		AwayTeam:   away.getString("name"),
		Venue:      fixture.UnknownVenue,
		City:       fixture.UnknownVenue,
	}
	if err := root.err(); err != nil {
		return fixture.Fixture{}, err
	}

	if venue, ok := match.optionalObject("venue"); ok {
		row.Venue = venue.stringOr("name", fixture.UnknownVenue)
		row.City = venue.stringOr("city", fixture.UnknownVenue)
	}
	if goals, ok := root.optionalObject("goals"); ok {
		row.HomeGoals = goals.optionalInt("home")
		row.AwayGoals = goals.optionalInt("away")
	}
	return row, nil
}

// responseItems decodes the response field of env as a JSON array.
func responseItems(endpoint string, env Envelope) ([]any, error) {
	if !env.HasResponse() {
		return nil, malformed(endpoint, "response field missing")
	}
	var items []any
	if err := sonic.Unmarshal(env.Response, &items); err != nil {
		return nil, malformed(endpoint, "response is not an array")
	}
	return items, nil
}
