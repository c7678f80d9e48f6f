package game

import (
	"errors"
	"testing"

	"github.com/deejott23/binokel-count/internal/scoring"
)

// fakeBook records every ledger call the controller makes.
type fakeBook struct {
	deltas      []map[string]int
	completions []struct{ winners, losers [2]string }
}

func (f *fakeBook) ApplyRoundDelta(d map[string]int) {
	cp := make(map[string]int, len(d))
	for k, v := range d {
		cp[k] = v
	}
	f.deltas = append(f.deltas, cp)
}

func (f *fakeBook) RecordGameCompletion(winners, losers [2]string) {
	f.completions = append(f.completions, struct{ winners, losers [2]string }{winners, losers})
}

func newTestController(t *testing.T, target int) (*Controller, *fakeBook) {
	t.Helper()
	book := &fakeBook{}
	c := NewController(book)
	team1, team2 := testTeams()
	if err := c.StartGame(team1, team2, target); err != nil {
		t.Fatalf("StartGame() error = %v", err)
	}
	return c, book
}

func TestControllerTransitions(t *testing.T) {
	book := &fakeBook{}
	c := NewController(book)

	if _, err := c.AddRound(madeBid("p1")); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("AddRound() while idle = %v, want %v", err, ErrNoActiveGame)
	}
	if _, err := c.UndoLastRound(); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("UndoLastRound() while idle = %v, want %v", err, ErrNoActiveGame)
	}
	if err := c.Discard(); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("Discard() while idle = %v, want %v", err, ErrNoActiveGame)
	}

	team1, team2 := testTeams()
	if err := c.StartGame(team1, team2, 1000); err != nil {
		t.Fatalf("StartGame() error = %v", err)
	}
	if err := c.StartGame(team1, team2, 1000); !errors.Is(err, ErrGameActive) {
		t.Errorf("StartGame() while playing = %v, want %v", err, ErrGameActive)
	}
	if c.Phase() != PhasePlaying {
		t.Errorf("phase = %q, want %q", c.Phase(), PhasePlaying)
	}
}

func TestPreviewDoesNotCommit(t *testing.T) {
	c, book := newTestController(t, 1000)

	res, err := c.PreviewRound(madeBid("p1"))
	if err != nil {
		t.Fatalf("PreviewRound() error = %v", err)
	}
	if res.Team1Delta != 170 {
		t.Errorf("preview Team1Delta = %d, want 170", res.Team1Delta)
	}
	if len(c.State().History) != 0 || c.State().Team1.Score != 0 {
		t.Errorf("preview mutated game state")
	}
	if len(book.deltas) != 0 {
		t.Errorf("preview reached the ledger: %v", book.deltas)
	}

	// Commit of the identical input must match the preview.
	entry, err := c.AddRound(madeBid("p1"))
	if err != nil {
		t.Fatalf("AddRound() error = %v", err)
	}
	if entry.Result.Team1Delta != res.Team1Delta || entry.Result.Team2Delta != res.Team2Delta {
		t.Errorf("commit result diverges from preview")
	}
	if len(book.deltas) != 1 {
		t.Fatalf("ledger deltas = %d calls, want 1", len(book.deltas))
	}
}

func TestUndoNegatesLedgerDeltas(t *testing.T) {
	c, book := newTestController(t, 1000)

	if _, err := c.AddRound(madeBid("p1")); err != nil {
		t.Fatalf("AddRound() error = %v", err)
	}
	if _, err := c.UndoLastRound(); err != nil {
		t.Fatalf("UndoLastRound() error = %v", err)
	}

	if len(book.deltas) != 2 {
		t.Fatalf("ledger deltas = %d calls, want 2", len(book.deltas))
	}
	for id, pts := range book.deltas[0] {
		if book.deltas[1][id] != -pts {
			t.Errorf("undo delta for %s = %d, want %d", id, book.deltas[1][id], -pts)
		}
	}
	if len(c.State().History) != 0 {
		t.Errorf("history not empty after undo")
	}
}

func TestWinDetection(t *testing.T) {
	c, book := newTestController(t, 150)

	entry, err := c.AddRound(madeBid("p1")) // team1 +170 crosses 150
	if err != nil {
		t.Fatalf("AddRound() error = %v", err)
	}
	if entry.Team1Total < 150 {
		t.Fatalf("test round should cross the target, got %d", entry.Team1Total)
	}
	if c.Phase() != PhaseWon {
		t.Fatalf("phase = %q, want %q", c.Phase(), PhaseWon)
	}
	if len(book.completions) != 1 {
		t.Fatalf("completions = %d, want exactly 1", len(book.completions))
	}
	if got := book.completions[0].winners; got != [2]string{"p1", "p2"} {
		t.Errorf("winners = %v, want team 1", got)
	}
	winner, ok := c.Winner()
	if !ok || winner.Name != "Anna / Ben" {
		t.Errorf("Winner() = %q, %v", winner.Name, ok)
	}

	// Won is terminal: no edits, no un-winning, and never a second record.
	if _, err := c.AddRound(madeBid("p1")); !errors.Is(err, ErrGameDecided) {
		t.Errorf("AddRound() after win = %v, want %v", err, ErrGameDecided)
	}
	if _, err := c.UndoLastRound(); !errors.Is(err, ErrGameDecided) {
		t.Errorf("UndoLastRound() after win = %v, want %v", err, ErrGameDecided)
	}
	if err := c.StartGame(testTeamsAsArgs()); !errors.Is(err, ErrGameDecided) {
		t.Errorf("StartGame() after win = %v, want %v", err, ErrGameDecided)
	}
	if len(book.completions) != 1 {
		t.Errorf("completions grew to %d", len(book.completions))
	}

	c.Reset()
	if c.Phase() != PhaseIdle || c.State() != nil {
		t.Errorf("reset did not clear the table")
	}
	if err := c.StartGame(testTeamsAsArgs()); err != nil {
		t.Errorf("StartGame() after reset = %v", err)
	}
}

// Both teams cross the target in the same round: team 1 is the winner by
// check order, even when team 2 scored higher.
func TestWinTieBreakPrefersTeam1(t *testing.T) {
	c, book := newTestController(t, 150)

	in := scoring.RoundInput{
		BidderID: "p3",
		Bid:      150,
		Meld:     map[string]int{"p1": 30, "p3": 100},
		Tricks:   map[string]int{"p1": 80, "p2": 50, "p3": 100, "p4": 10},
	}
	entry, err := c.AddRound(in)
	if err != nil {
		t.Fatalf("AddRound() error = %v", err)
	}
	if entry.Team1Total < 150 || entry.Team2Total < 150 {
		t.Fatalf("both teams should cross: %d, %d", entry.Team1Total, entry.Team2Total)
	}
	if entry.Team2Total <= entry.Team1Total {
		t.Fatalf("tie-break case wants team 2 ahead: %d vs %d", entry.Team1Total, entry.Team2Total)
	}
	if got := book.completions[0].winners; got != [2]string{"p1", "p2"} {
		t.Errorf("winners = %v, want team 1 by check order", got)
	}
}

func TestForfeit(t *testing.T) {
	c, book := newTestController(t, 1000)

	if err := c.Forfeit(3); !errors.Is(err, ErrUnknownTeam) {
		t.Errorf("Forfeit(3) = %v, want %v", err, ErrUnknownTeam)
	}
	if err := c.Forfeit(2); err != nil {
		t.Fatalf("Forfeit(2) error = %v", err)
	}
	if c.Phase() != PhaseWon || c.WinnerNumber() != 2 {
		t.Errorf("phase/winner = %q/%d, want won/2", c.Phase(), c.WinnerNumber())
	}
	if len(book.completions) != 1 || book.completions[0].winners != [2]string{"p3", "p4"} {
		t.Errorf("completions = %+v, want one for team 2", book.completions)
	}
}

func TestDiscardLeavesNoTrace(t *testing.T) {
	c, book := newTestController(t, 1000)

	if _, err := c.AddRound(madeBid("p1")); err != nil {
		t.Fatalf("AddRound() error = %v", err)
	}
	if err := c.Discard(); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if c.Phase() != PhaseIdle || c.State() != nil {
		t.Errorf("discard did not clear the game")
	}
	if len(book.completions) != 0 {
		t.Errorf("discard recorded a completion: %+v", book.completions)
	}
}

func testTeamsAsArgs() (scoring.Team, scoring.Team, int) {
	team1, team2 := testTeams()
	return team1, team2, 1000
}
