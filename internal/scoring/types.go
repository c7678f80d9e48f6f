// internal/scoring/types.go
//
// Core type definitions for the Binokel round-scoring engine.
// Defines:
//   - SeatPlayer: id + name snapshot of a seated player.
//   - Team: a partnership of exactly two seated players with a running score.
//   - RoundInput: everything entered for one round of play.
//   - RoundResult: per-team deltas, per-player scores, and the rationale.

package scoring

// TrickPool is the total trick points dealt out per played round across all
// four players. Callers are expected to verify that the trick points of a
// non-abandoned round sum to this before committing it; the engine itself
// does not enforce the sum.
const TrickPool = 240

// SeatPlayer is a snapshot of a roster player seated into a team for one
// game. It holds identity and display name only; the team does not own the
// player's lifetime record.
type SeatPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Team is a partnership of exactly two players with a running game score.
// A Team exists only for the lifetime of a single game.
type Team struct {
	Name    string        `json:"name"`    // Display name, derived from the players if empty.
	Players [2]SeatPlayer `json:"players"` // Seat order is preserved.
	Score   int           `json:"score"`   // Cumulative score, may go negative.
}

// Contains reports whether the player id is seated on this team.
func (t Team) Contains(id string) bool {
	return t.Players[0].ID == id || t.Players[1].ID == id
}

// DisplayName returns the team name, deriving "A / B" from the players when
// no explicit name was set.
func (t Team) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Players[0].Name + " / " + t.Players[1].Name
}

// RoundInput carries the raw facts entered for a single round.
// The Meld and Tricks maps are keyed by player id; absent entries read as 0.
type RoundInput struct {
	BidderID  string         `json:"bidderId"`  // Must be seated on one of the two teams.
	Bid       int            `json:"bid"`       // Positive; conventionally a multiple of 10.
	Meld      map[string]int `json:"meld"`      // Declared combination points per player.
	Tricks    map[string]int `json:"tricks"`    // Trick points per player.
	Abandoned bool           `json:"abandoned"` // Bidder conceded before play finished.
}

// RoundResult is the outcome of scoring one round. It is derived data and
// never stored apart from the history entry that carries it.
type RoundResult struct {
	Team1Delta   int            `json:"team1Delta"`   // Signed score change for team 1.
	Team2Delta   int            `json:"team2Delta"`   // Signed score change for team 2.
	PlayerScores map[string]int `json:"playerScores"` // Round contribution per player, all four seats.
	Rationale    string         `json:"rationale"`    // Human-readable explanation of the result.
}
