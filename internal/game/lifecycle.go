// internal/game/lifecycle.go
//
// Lifecycle controller over the single active-game slot.
// Responsibilities:
//   - State machine: idle -> playing -> won -> idle.
//   - Win detection after every committed round (first team at or past the
//     target), manual forfeit, and discard without a ledger trace.
//   - Feeding the player ledger: per-round lifetime deltas (negated on
//     undo) and exactly one completion record per finished game.
//
// Notes:
//   - PreviewRound is the mandatory dry run: callers preview a result,
//     show it, and only then commit the identical input via AddRound.
//   - Undo is only legal while playing; a won game stays won until reset.

package game

import (
	"errors"

	"github.com/deejott23/binokel-count/internal/scoring"
)

// Phase is the lifecycle stage of the active-game slot.
type Phase string

const (
	// PhaseIdle means no game is active.
	PhaseIdle Phase = "idle"
	// PhasePlaying means a game is in progress.
	PhasePlaying Phase = "playing"
	// PhaseWon is terminal until an explicit reset.
	PhaseWon Phase = "won"
)

var (
	// ErrNoActiveGame signals an operation that needs a game in progress.
	ErrNoActiveGame = errors.New("no active game")
	// ErrGameActive signals starting over a game that is still in progress.
	ErrGameActive = errors.New("a game is already active")
	// ErrGameDecided signals a mutating operation attempted after the win;
	// a won game can only be reset, never edited or un-won.
	ErrGameDecided = errors.New("game already decided")
	// ErrUnknownTeam signals a forfeit for a team number other than 1 or 2.
	ErrUnknownTeam = errors.New("unknown team")
)

// Scorebook is the slice of the player ledger the controller drives.
type Scorebook interface {
	// ApplyRoundDelta adds each mapped amount to that player's lifetime
	// score. Called once per committed round, and once more with negated
	// amounts when a round is undone.
	ApplyRoundDelta(deltas map[string]int)

	// RecordGameCompletion bumps games-played for all four participants
	// and wins for the two winners. The controller guarantees at most one
	// call per finished game.
	RecordGameCompletion(winners, losers [2]string)
}

// Controller owns the active-game slot and composes the game state with
// the player ledger.
type Controller struct {
	ledger Scorebook
	phase  Phase
	state  *State
	winner int // 1 or 2 while PhaseWon, 0 otherwise
}

// NewController returns an idle controller writing into the given ledger.
func NewController(ledger Scorebook) *Controller {
	return &Controller{ledger: ledger, phase: PhaseIdle}
}

// Phase reports the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// State returns the current game state snapshot, or nil when idle.
// The returned state is never mutated in place; it is safe to keep.
func (c *Controller) State() *State { return c.state }

// Winner returns the winning team while the game is won.
func (c *Controller) Winner() (scoring.Team, bool) {
	switch {
	case c.phase != PhaseWon:
		return scoring.Team{}, false
	case c.winner == 1:
		return c.state.Team1, true
	default:
		return c.state.Team2, true
	}
}

// WinnerNumber reports the winning team slot (1 or 2) while the game is
// won, and 0 otherwise.
func (c *Controller) WinnerNumber() int { return c.winner }

// StartGame transitions idle -> playing with a freshly validated state.
func (c *Controller) StartGame(team1, team2 scoring.Team, target int) error {
	switch c.phase {
	case PhasePlaying:
		return ErrGameActive
	case PhaseWon:
		return ErrGameDecided
	}
	st, err := Start(team1, team2, target)
	if err != nil {
		return err
	}
	c.state = st
	c.phase = PhasePlaying
	return nil
}

// PreviewRound computes a round result without committing anything.
// The caller is expected to show it and then either AddRound the identical
// input or drop it.
func (c *Controller) PreviewRound(in scoring.RoundInput) (scoring.RoundResult, error) {
	if err := c.requirePlaying(); err != nil {
		return scoring.RoundResult{}, err
	}
	return scoring.ComputeRound(in, c.state.Team1, c.state.Team2)
}

// AddRound commits a round: applies it to the game state, feeds the player
// deltas to the ledger, and re-evaluates the win condition. When either
// team reaches the target the game transitions to won and the ledger
// records the completion exactly once.
//
// Tie-break policy: if both teams cross the target in the same round,
// team 1 wins because it is checked first. This mirrors the evaluation
// order the scoring rules have always used and is kept deliberately.
func (c *Controller) AddRound(in scoring.RoundInput) (RoundEntry, error) {
	if err := c.requirePlaying(); err != nil {
		return RoundEntry{}, err
	}
	next, entry, err := c.state.AddRound(in)
	if err != nil {
		return RoundEntry{}, err
	}
	c.state = next
	c.ledger.ApplyRoundDelta(entry.Result.PlayerScores)

	switch {
	case next.Team1.Score >= next.Target:
		c.declareWinner(1)
	case next.Team2.Score >= next.Target:
		c.declareWinner(2)
	}
	return entry, nil
}

// UndoLastRound inverts the most recent commit, including its lifetime
// ledger deltas. Only legal while playing: undo never un-wins a game.
func (c *Controller) UndoLastRound() (RoundEntry, error) {
	if err := c.requirePlaying(); err != nil {
		return RoundEntry{}, err
	}
	next, entry, err := c.state.UndoLastRound()
	if err != nil {
		return RoundEntry{}, err
	}
	c.state = next

	negated := make(map[string]int, len(entry.Result.PlayerScores))
	for id, pts := range entry.Result.PlayerScores {
		negated[id] = -pts
	}
	c.ledger.ApplyRoundDelta(negated)
	return entry, nil
}

// Forfeit ends the game in the named team's favor without a score
// comparison. The completion is still recorded.
func (c *Controller) Forfeit(team int) error {
	if err := c.requirePlaying(); err != nil {
		return err
	}
	if team != 1 && team != 2 {
		return ErrUnknownTeam
	}
	c.declareWinner(team)
	return nil
}

// Discard abandons the active game without any ledger update: no games
// played, no wins.
func (c *Controller) Discard() error {
	if err := c.requirePlaying(); err != nil {
		return err
	}
	c.state = nil
	c.phase = PhaseIdle
	return nil
}

// Reset unconditionally clears the active game and any win marker.
func (c *Controller) Reset() {
	c.state = nil
	c.phase = PhaseIdle
	c.winner = 0
}

func (c *Controller) declareWinner(team int) {
	c.phase = PhaseWon
	c.winner = team
	win, lose := c.state.Team1, c.state.Team2
	if team == 2 {
		win, lose = lose, win
	}
	c.ledger.RecordGameCompletion(
		[2]string{win.Players[0].ID, win.Players[1].ID},
		[2]string{lose.Players[0].ID, lose.Players[1].ID},
	)
}

func (c *Controller) requirePlaying() error {
	switch c.phase {
	case PhaseIdle:
		return ErrNoActiveGame
	case PhaseWon:
		return ErrGameDecided
	}
	return nil
}
