package fixture

import (
	"strconv"
	"strings"
)

// API-Football short status codes.
const (
	StatusNotStarted  = "NS"
	StatusToBeDefined = "TBD"
	StatusFullTime    = "FT"
	StatusAfterExtra  = "AET"
	StatusPenalties   = "PEN"
	StatusPostponed   = "PST"
	StatusCancelled   = "CANC"
	StatusAbandoned   = "ABD"
)

// UnknownVenue is used when the provider omits the venue name or city.
const UnknownVenue = "Unknown"

// Header lists the CSV columns in Row order.
var Header = []string{
	"fixture_id",
	"date",
	"venue",
	"city",
	"status",
	"round",
	"home_team_id",
	"home_team",
	"away_team_id",
	"away_team",
	"home_goals",
	"away_goals",
}

// Fixture represents one scheduled or played match.
type Fixture struct {
	ID         int64
	Date       string
	Venue      string
	City       string
	Status     string
	Round      string
	HomeTeamID int64
	HomeTeam   string
	AwayTeamID int64
	AwayTeam   string
	HomeGoals  *int
	AwayGoals  *int
}

// Row renders the fixture in Header order. Unplayed matches leave the goal
// columns empty.
func (f Fixture) Row() []string {
	return []string{
		strconv.FormatInt(f.ID, 10),
		f.Date,
		f.Venue,
		f.City,
		f.Status,
		f.Round,
		strconv.FormatInt(f.HomeTeamID, 10),
		f.HomeTeam,
		strconv.FormatInt(f.AwayTeamID, 10),
		f.AwayTeam,
		formatOptionalInt(f.HomeGoals),
		formatOptionalInt(f.AwayGoals),
	}
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusToBeDefined
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFullTime, StatusAfterExtra, StatusPenalties:
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, StatusAbandoned:
		return true
	default:
		return false
	}
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
