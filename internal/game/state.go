// internal/game/state.go
//
// Game state for a single Binokel game.
// Responsibilities:
//   - Validate and create a fresh game (two teams of two distinct players,
//     positive target score).
//   - Commit rounds: score via the engine, apply deltas, append history.
//   - Undo the most recent round as an exact inverse of its commit.
//
// Notes:
//   - Operations are snapshot-returning: they never mutate the receiver and
//     hand back a fresh *State, so prior states stay independently
//     inspectable (undo, review-before-commit).
//   - History entries carry 1-based contiguous round numbers equal to the
//     history length at insertion, and the post-round cumulative totals.

package game

import (
	"errors"

	"github.com/deejott23/binokel-count/internal/scoring"
)

var (
	// ErrTargetNotPositive is returned when a game is started with a
	// target score of zero or less.
	ErrTargetNotPositive = errors.New("target score must be positive")
	// ErrPlayersNotDistinct is returned when the four seats are not filled
	// by four distinct, non-empty player ids.
	ErrPlayersNotDistinct = errors.New("teams need four distinct players")
	// ErrNoRounds is returned by UndoLastRound on an empty history.
	ErrNoRounds = errors.New("no rounds to undo")
)

// RoundEntry is an immutable history record of one committed round.
type RoundEntry struct {
	Number     int                 `json:"number"`     // 1-based, contiguous.
	BidderID   string              `json:"bidderId"`   // Seat identity of the bidder.
	BidderName string              `json:"bidderName"` // Name snapshot at commit time.
	Bid        int                 `json:"bid"`        // The bid the round was scored against.
	Result     scoring.RoundResult `json:"result"`     // Full engine output for the round.
	Team1Total int                 `json:"team1Total"` // Cumulative team 1 score after this round.
	Team2Total int                 `json:"team2Total"` // Cumulative team 2 score after this round.
}

// State is the complete state of one game in progress.
// Invariant: each team's Score equals the sum of its deltas over History.
type State struct {
	Team1   scoring.Team `json:"team1"`
	Team2   scoring.Team `json:"team2"`
	Target  int          `json:"target"`
	History []RoundEntry `json:"history"`
}

// Start validates the rosters and creates a fresh game state with both
// scores at zero and an empty history. Team display names default to the
// paired player names.
func Start(team1, team2 scoring.Team, target int) (*State, error) {
	if target <= 0 {
		return nil, ErrTargetNotPositive
	}
	ids := make(map[string]struct{}, 4)
	for _, p := range [...]scoring.SeatPlayer{
		team1.Players[0], team1.Players[1],
		team2.Players[0], team2.Players[1],
	} {
		if p.ID == "" {
			return nil, ErrPlayersNotDistinct
		}
		ids[p.ID] = struct{}{}
	}
	if len(ids) != 4 {
		return nil, ErrPlayersNotDistinct
	}

	team1.Score, team2.Score = 0, 0
	team1.Name = team1.DisplayName()
	team2.Name = team2.DisplayName()
	return &State{Team1: team1, Team2: team2, Target: target}, nil
}

// AddRound scores the input against the current teams and returns a new
// state with the deltas applied and a history entry appended, plus the
// entry itself so callers can propagate its player deltas.
func (s *State) AddRound(in scoring.RoundInput) (*State, RoundEntry, error) {
	res, err := scoring.ComputeRound(in, s.Team1, s.Team2)
	if err != nil {
		return nil, RoundEntry{}, err
	}

	next := s.clone()
	next.Team1.Score += res.Team1Delta
	next.Team2.Score += res.Team2Delta

	entry := RoundEntry{
		Number:     len(next.History) + 1,
		BidderID:   in.BidderID,
		BidderName: next.seatName(in.BidderID),
		Bid:        in.Bid,
		Result:     res,
		Team1Total: next.Team1.Score,
		Team2Total: next.Team2.Score,
	}
	next.History = append(next.History, entry)
	return next, entry, nil
}

// UndoLastRound returns a new state with the most recent round removed and
// its deltas subtracted, along with the removed entry so callers can apply
// negated player deltas. It exactly inverts the matching AddRound; repeated
// calls peel one round at a time.
func (s *State) UndoLastRound() (*State, RoundEntry, error) {
	if len(s.History) == 0 {
		return nil, RoundEntry{}, ErrNoRounds
	}

	next := s.clone()
	last := next.History[len(next.History)-1]
	next.Team1.Score -= last.Result.Team1Delta
	next.Team2.Score -= last.Result.Team2Delta
	next.History = next.History[:len(next.History)-1]
	return next, last, nil
}

// clone copies the state deeply enough that the copy and the original never
// alias: teams are values and history entries are immutable once appended,
// so a fresh slice is sufficient.
func (s *State) clone() *State {
	next := *s
	next.History = make([]RoundEntry, len(s.History), len(s.History)+1)
	copy(next.History, s.History)
	return &next
}

// seatName resolves a seated player's display name, or "" if not seated.
func (s *State) seatName(id string) string {
	for _, p := range [...]scoring.SeatPlayer{
		s.Team1.Players[0], s.Team1.Players[1],
		s.Team2.Players[0], s.Team2.Players[1],
	} {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}
