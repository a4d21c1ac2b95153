package topscorers

import (
	"reflect"
	"testing"
)

func TestTopScorerRow(t *testing.T) {
	row := TopScorer{
		PlayerID: 276, PlayerName: "Mohamed Salah", Team: "Egypt",
		Goals: 5, Assists: 0, Appearances: 4, Minutes: 360,
	}.Row()

	want := []string{"276", "Mohamed Salah", "Egypt", "5", "0", "4", "360"}
	if !reflect.DeepEqual(row, want) {
		t.Fatalf("unexpected row: got=%v want=%v", row, want)
	}
	if len(row) != len(Header) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(Header))
	}
}
