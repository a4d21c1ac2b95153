package topscorers

import "strconv"

// DefaultLimit caps how many ranking entries are exported.
const DefaultLimit = 30

var Header = []string{
	"player_id",
	"player_name",
	"team",
	"goals",
	"assists",
	"appearances",
	"minutes",
}

// TopScorer is one entry of the provider's goal ranking. Statistics come
// from the player's first statistics block.
type TopScorer struct {
	PlayerID    int64
	PlayerName  string
	Team        string
	Goals       int
	Assists     int
	Appearances int
	Minutes     int
}

func (s TopScorer) Row() []string {
	return []string{
		strconv.FormatInt(s.PlayerID, 10),
		s.PlayerName,
		s.Team,
		strconv.Itoa(s.Goals),
		strconv.Itoa(s.Assists),
		strconv.Itoa(s.Appearances),
		strconv.Itoa(s.Minutes),
	}
}
