// internal/scoring/engine.go
//
// Round-scoring engine for partnership Binokel.
// Responsibilities:
//   - Identify the bidding team from the bidder's seat.
//   - Score abandoned rounds (fixed single-bid penalty, everyone at zero).
//   - Score played rounds: meld + tricks against the bid, with the
//     no-trick rule and the doubled penalty on a failed bid.
//   - Produce a rationale string recording the comparison that decided
//     the round.
//
// Notes:
//   - ComputeRound is pure: it never mutates its arguments and has no
//     state, so callers can use it to preview a round before committing.
//   - The bidding team's delta is NOT always the sum of its players'
//     scores: a failed bid forces -2x bid and an abandonment forces -bid.
//     The defending team's delta is always the literal player sum.

package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrBidderNotSeated is returned when the bidder id is on neither team.
	ErrBidderNotSeated = errors.New("bidder is not seated on either team")
	// ErrInvalidBid is returned for a zero or negative bid value.
	ErrInvalidBid = errors.New("bid value must be positive")
)

// ComputeRound scores a single round against the two teams.
// It returns the per-team deltas (in team1/team2 position), the per-player
// round scores for all four seats, and a rationale string.
func ComputeRound(in RoundInput, team1, team2 Team) (RoundResult, error) {
	if in.Bid <= 0 {
		return RoundResult{}, ErrInvalidBid
	}

	var bidTeam, otherTeam Team
	bidderOnTeam1 := false
	switch {
	case team1.Contains(in.BidderID):
		bidTeam, otherTeam = team1, team2
		bidderOnTeam1 = true
	case team2.Contains(in.BidderID):
		bidTeam, otherTeam = team2, team1
	default:
		return RoundResult{}, fmt.Errorf("%w: %q", ErrBidderNotSeated, in.BidderID)
	}

	scores := make(map[string]int, 4)

	var bidDelta, otherDelta int
	var rationale string

	if in.Abandoned {
		// Abandonment short-circuits normal scoring entirely: every player
		// is at zero regardless of any meld or trick points entered, the
		// bidding team eats the bid once, the defenders get nothing.
		for _, p := range bidTeam.Players {
			scores[p.ID] = 0
		}
		for _, p := range otherTeam.Players {
			scores[p.ID] = 0
		}
		bidDelta = -in.Bid
		otherDelta = 0
		rationale = "bidder abandoned"
	} else {
		bidTotal := teamTotal(bidTeam, in.Meld) + teamTotal(bidTeam, in.Tricks)

		if bidTotal >= in.Bid {
			rationale = fmt.Sprintf("bid made: %d >= %d", bidTotal, in.Bid)
			for _, p := range bidTeam.Players {
				scores[p.ID] = playerScore(at(in.Meld, p.ID), at(in.Tricks, p.ID))
				bidDelta += scores[p.ID]
			}
		} else {
			// No partial credit on a failed bid: the team is set back twice
			// the bid no matter what it actually accumulated.
			rationale = fmt.Sprintf("bid failed: %d < %d", bidTotal, in.Bid)
			for _, p := range bidTeam.Players {
				scores[p.ID] = 0
			}
			bidDelta = -2 * in.Bid
		}

		// Defenders keep whatever they earned in both sub-cases, under the
		// same no-trick rule.
		for _, p := range otherTeam.Players {
			scores[p.ID] = playerScore(at(in.Meld, p.ID), at(in.Tricks, p.ID))
			otherDelta += scores[p.ID]
		}
	}

	res := RoundResult{PlayerScores: scores, Rationale: rationale}
	if bidderOnTeam1 {
		res.Team1Delta, res.Team2Delta = bidDelta, otherDelta
	} else {
		res.Team1Delta, res.Team2Delta = otherDelta, bidDelta
	}
	return res, nil
}

// playerScore applies the no-trick rule: a player who won no trick scores
// nothing for the round, meld included. Otherwise meld and tricks count.
func playerScore(meld, tricks int) int {
	if tricks == 0 {
		return 0
	}
	return meld + tricks
}

// teamTotal sums a per-player point map over a team's two seats.
func teamTotal(t Team, points map[string]int) int {
	return at(points, t.Players[0].ID) + at(points, t.Players[1].ID)
}

// at looks up a player's points with the "missing means zero" convention.
func at(points map[string]int, id string) int {
	if points == nil {
		return 0
	}
	return points[id]
}
