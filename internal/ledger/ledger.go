// internal/ledger/ledger.go
//
// Lifetime player ledger, independent of any single game.
// Responsibilities:
//   - Roster CRUD: create players with fresh ids, delete permanently.
//   - Track lifetime statistics: cumulative score (signed), games played,
//     and wins, mutated only through the operations here.
//
// Notes:
//   - ApplyRoundDelta is called once per committed round and once with
//     negated amounts per undone round, so lifetime scores always track
//     the net of currently applied rounds.
//   - RecordGameCompletion must be invoked at most once per finished game;
//     duplicate-call protection is the caller's job.

package ledger

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrEmptyName rejects creating a player with a blank display name.
	ErrEmptyName = errors.New("player name must not be empty")
	// ErrNameTaken rejects duplicate display names (case-insensitive).
	ErrNameTaken = errors.New("player name already taken")
	// ErrUnknownPlayer signals an id with no matching player.
	ErrUnknownPlayer = errors.New("player not found")
)

// Player is one person's lifetime record across games.
type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LifetimeScore int    `json:"lifetimeScore"` // Signed; may go negative.
	GamesPlayed   int    `json:"gamesPlayed"`
	Wins          int    `json:"wins"` // Never exceeds GamesPlayed.
}

// Ledger exclusively owns the player collection.
type Ledger struct {
	players map[string]*Player
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{players: make(map[string]*Player)}
}

// NewFromPlayers builds a ledger from previously persisted players.
func NewFromPlayers(players []Player) *Ledger {
	l := New()
	for _, p := range players {
		cp := p
		l.players[p.ID] = &cp
	}
	return l
}

// CreatePlayer adds a new player with a fresh unique id and zeroed stats.
func (l *Ledger) CreatePlayer(name string) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, ErrEmptyName
	}
	if _, ok := l.FindByName(name); ok {
		return Player{}, ErrNameTaken
	}
	p := &Player{ID: uuid.NewString(), Name: name}
	l.players[p.ID] = p
	return *p, nil
}

// DeletePlayer removes a player permanently. Historical game records are
// per-game state and are not touched.
func (l *Ledger) DeletePlayer(id string) error {
	if _, ok := l.players[id]; !ok {
		return ErrUnknownPlayer
	}
	delete(l.players, id)
	return nil
}

// Get returns a copy of the player with the given id.
func (l *Ledger) Get(id string) (Player, bool) {
	p, ok := l.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// FindByName returns a copy of the player with the given display name,
// compared case-insensitively.
func (l *Ledger) FindByName(name string) (Player, bool) {
	for _, p := range l.players {
		if strings.EqualFold(p.Name, name) {
			return *p, true
		}
	}
	return Player{}, false
}

// List returns copies of all players sorted by name.
func (l *Ledger) List() []Player {
	out := make([]Player, 0, len(l.players))
	for _, p := range l.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ApplyRoundDelta adds each mapped signed amount to that player's lifetime
// score. Unknown ids are skipped: a player deleted mid-game simply stops
// accumulating.
func (l *Ledger) ApplyRoundDelta(deltas map[string]int) {
	for id, pts := range deltas {
		if p, ok := l.players[id]; ok {
			p.LifetimeScore += pts
		}
	}
}

// RecordGameCompletion bumps games-played for all four participants and
// wins for the two winners.
func (l *Ledger) RecordGameCompletion(winners, losers [2]string) {
	for _, id := range winners {
		if p, ok := l.players[id]; ok {
			p.GamesPlayed++
			p.Wins++
		}
	}
	for _, id := range losers {
		if p, ok := l.players[id]; ok {
			p.GamesPlayed++
		}
	}
}
