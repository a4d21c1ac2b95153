package apifootball

import (
	"context"
	"fmt"

	"github.com/riskibarqy/afcon-extractor/internal/domain/leaguestanding"
	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
)

// FetchStandings flattens every group of the first league entry into one
// slice. Each row keeps its own group label.
func (c *Client) FetchStandings(ctx context.Context, leagueID, season int) ([]leaguestanding.Standing, error) {
	ctx, span := tracer.Start(ctx, "apifootball.Client.FetchStandings")
	defer span.End()

	env, err := c.Get(ctx, EndpointStandings, seasonParams(leagueID, season))
	if err != nil {
		return nil, err
	}
	items, err := responseItems(EndpointStandings, env)
	if err != nil {
		return nil, err
	}
	groups, err := standingGroups(items)
	if err != nil {
		return nil, err
	}
	return parseStandings(ctx, c.logger, groups), nil
}

// standingGroups resolves response[0].league.standings, an array of groups
// where each group is an array of team rows.
func standingGroups(items []any) ([]any, error) {
	if len(items) == 0 {
		return nil, malformed(EndpointStandings, "response is empty")
	}
	league := newNode("response[0]", items[0]).object("league")
	if err := league.err(); err != nil {
		return nil, malformed(EndpointStandings, err.Error())
	}
	raw, ok := league.lookup("standings")
	if !ok {
		return nil, malformed(EndpointStandings, "field response[0].league.standings: missing")
	}
	groups, ok := raw.([]any)
	if !ok {
		return nil, malformed(EndpointStandings, "field response[0].league.standings: "+describeMismatch("array", raw))
	}
	return groups, nil
}

func parseStandings(ctx context.Context, logger *logging.Logger, groups []any) []leaguestanding.Standing {
	out := make([]leaguestanding.Standing, 0, len(groups)*4)
	seen := make(map[leaguestanding.Key]struct{})
	for groupIdx, group := range groups {
		rows, ok := group.([]any)
		if !ok {
			logger.WarnContext(ctx, "skipping standings group that is not a list",
				"group_index", groupIdx,
				"type", fmt.Sprintf("%T", group),
			)
			continue
		}
		for rowIdx, item := range rows {
			path := fmt.Sprintf("response[0].league.standings[%d][%d]", groupIdx, rowIdx)
			row, err := parseStanding(path, item)
			if err != nil {
				logger.WarnContext(ctx, "skipping standing with missing field", "group_index", groupIdx, "index", rowIdx, "error", err)
				continue
			}
			if _, dup := seen[row.Key()]; dup {
				logger.WarnContext(ctx, "skipping duplicate standing", "group", row.Group, "team_id", row.TeamID)
				continue
			}
			seen[row.Key()] = struct{}{}
			out = append(out, row)
		}
	}
	return out
}

func parseStanding(path string, item any) (leaguestanding.Standing, error) {
	root := newNode(path, item)
	team := root.object("team")
	all := root.object("all")
	goals := all.object("goals")

	row := leaguestanding.Standing{
		Group:          root.getString("group"),
		Rank:           root.getInt("rank"),
		TeamID:         team.getInt64("id"),
		Team:           team.getString("name"),
		Played:         all.getInt("played"),
		Won:            all.getInt("win"),
		Draw:           all.getInt("draw"),
		Lost:           all.getInt("lose"),
		GoalsFor:       goals.getInt("for"),
		GoalsAgainst:   goals.getInt("against"),
		GoalDifference: root.getInt("goalsDiff"),
		Points:         root.getInt("points"),
	}
	if err := root.err(); err != nil {
		return leaguestanding.Standing{}, err
	}
	return row, nil
}
