// internal/game/snapshot.go
//
// Flat snapshot of the active-game slot for the persistence collaborator.
// The controller exposes pure snapshot-in/snapshot-out semantics and does
// no I/O itself; storage backends serialize the Snapshot as they see fit.

package game

import "errors"

// ErrCorruptSnapshot is returned by Restore when a loaded snapshot fails
// its internal consistency checks.
var ErrCorruptSnapshot = errors.New("corrupt game snapshot")

// Snapshot captures the full controller state in one flat value.
type Snapshot struct {
	Phase  Phase  `json:"phase"`
	Winner int    `json:"winner,omitempty"` // 1 or 2 while won.
	State  *State `json:"state,omitempty"`  // Absent while idle.
}

// Snapshot returns the current controller state as a flat value.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{Phase: c.phase, Winner: c.winner, State: c.state}
}

// Restore replaces the controller state with a previously taken snapshot.
// The snapshot is verified before anything is replaced: phases must be
// known, a non-idle snapshot must carry a state whose history is contiguous
// and whose team scores equal the sum of the recorded deltas, and a winner
// marker is only legal while won.
func (c *Controller) Restore(sn Snapshot) error {
	switch sn.Phase {
	case PhaseIdle:
		if sn.State != nil || sn.Winner != 0 {
			return ErrCorruptSnapshot
		}
	case PhasePlaying:
		if sn.State == nil || sn.Winner != 0 {
			return ErrCorruptSnapshot
		}
	case PhaseWon:
		if sn.State == nil || (sn.Winner != 1 && sn.Winner != 2) {
			return ErrCorruptSnapshot
		}
	default:
		return ErrCorruptSnapshot
	}

	if sn.State != nil {
		if sn.State.Target <= 0 {
			return ErrCorruptSnapshot
		}
		var sum1, sum2 int
		for i, e := range sn.State.History {
			if e.Number != i+1 {
				return ErrCorruptSnapshot
			}
			sum1 += e.Result.Team1Delta
			sum2 += e.Result.Team2Delta
		}
		if sum1 != sn.State.Team1.Score || sum2 != sn.State.Team2.Score {
			return ErrCorruptSnapshot
		}
	}

	c.phase = sn.Phase
	c.winner = sn.Winner
	c.state = sn.State
	return nil
}
