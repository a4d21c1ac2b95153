package leaguestanding

import "strconv"

// Header lists the CSV columns in Row order.
var Header = []string{
	"group",
	"rank",
	"team_id",
	"team",
	"played",
	"win",
	"draw",
	"lose",
	"goals_for",
	"goals_against",
	"goal_diff",
	"points",
}

// Standing represents one team's row inside a tournament group.
type Standing struct {
	Group          string
	Rank           int
	TeamID         int64
	Team           string
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// Key identifies a standing row within one extraction.
type Key struct {
	Group  string
	TeamID int64
}

func (s Standing) Key() Key {
	return Key{Group: s.Group, TeamID: s.TeamID}
}

func (s Standing) Row() []string {
	return []string{
		s.Group,
		strconv.Itoa(s.Rank),
		strconv.FormatInt(s.TeamID, 10),
		s.Team,
		strconv.Itoa(s.Played),
		strconv.Itoa(s.Won),
		strconv.Itoa(s.Draw),
		strconv.Itoa(s.Lost),
		strconv.Itoa(s.GoalsFor),
		strconv.Itoa(s.GoalsAgainst),
		strconv.Itoa(s.GoalDifference),
		strconv.Itoa(s.Points),
	}
}
