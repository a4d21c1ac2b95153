package leaguestanding

import (
	"reflect"
	"testing"
)

func TestStandingRowFollowsHeader(t *testing.T) {
	row := Standing{
		Group: "Group A", Rank: 1, TeamID: 31, Team: "Morocco",
		Played: 3, Won: 2, Draw: 1, Lost: 0,
		GoalsFor: 6, GoalsAgainst: 1, GoalDifference: 5, Points: 7,
	}.Row()

	want := []string{"Group A", "1", "31", "Morocco", "3", "2", "1", "0", "6", "1", "5", "7"}
	if !reflect.DeepEqual(row, want) {
		t.Fatalf("unexpected row: got=%v want=%v", row, want)
	}
	if len(row) != len(Header) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(Header))
	}
}

func TestStandingKey(t *testing.T) {
	a := Standing{Group: "Group A", TeamID: 31}
	b := Standing{Group: "Group B", TeamID: 31}
	if a.Key() == b.Key() {
		t.Fatalf("same team in different groups must not collide")
	}
}
