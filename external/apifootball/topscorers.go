package apifootball

import (
	"context"
	"fmt"

	"github.com/riskibarqy/afcon-extractor/internal/domain/topscorers"
	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
)

// FetchTopScorers returns at most limit entries of the goal ranking in
// provider order. The source list is cut to limit before parsing, so skipped
// entries are not backfilled from further down the ranking.
func (c *Client) FetchTopScorers(ctx context.Context, leagueID, season, limit int) ([]topscorers.TopScorer, error) {
	ctx, span := tracer.Start(ctx, "apifootball.Client.FetchTopScorers")
	defer span.End()

	env, err := c.Get(ctx, EndpointTopScorers, seasonParams(leagueID, season))
	if err != nil {
		return nil, err
	}
	items, err := responseItems(EndpointTopScorers, env)
	if err != nil {
		return nil, err
	}
	return parseTopScorers(ctx, c.logger, items, limit), nil
}

func parseTopScorers(ctx context.Context, logger *logging.Logger, items []any, limit int) []topscorers.TopScorer {
	if limit <= 0 {
		limit = topscorers.DefaultLimit
	}
	if len(items) > limit {
		items = items[:limit]
	}

	out := make([]topscorers.TopScorer, 0, len(items))
	for idx, item := range items {
		row, err := parseTopScorer(fmt.Sprintf("response[%d]", idx), item)
		if err != nil {
			logger.WarnContext(ctx, "skipping top scorer with missing field", "index", idx, "error", err)
			continue
		}
		out = append(out, row)
	}
	return out
}

func parseTopScorer(path string, item any) (topscorers.TopScorer, error) {
	root := newNode(path, item)
	player := root.object("player")
	stats := root.first("statistics")
	goals := stats.object("goals")
	games := stats.object("games")

	row := topscorers.TopScorer{
		PlayerID:   player.getInt64("id"),
		PlayerName: player.getString("name"),
		Team:       stats.object("team").getString("name"),
		Goals:      goals.getInt("total"),
		// The provider spells this field "appearences".
		Appearances: games.getInt("appearences"),
		Minutes:     games.getInt("minutes"),
	}
	if err := root.err(); err != nil {
		return topscorers.TopScorer{}, err
	}
	row.Assists = goals.intOr("assists", 0)
	return row, nil
}
