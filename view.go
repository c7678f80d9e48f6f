// view.go
//
// Terminal rendering for the Binokel score keeper. Pure string builders
// over lipgloss styles; nothing here touches game state.

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deejott23/binokel-count/internal/game"
	"github.com/deejott23/binokel-count/internal/ledger"
	"github.com/deejott23/binokel-count/internal/scoring"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	clrBorder = lipgloss.Color("#30363d")
	clrSubtle = lipgloss.Color("#8b949e")
	clrGold   = lipgloss.Color("#e3b341")
	clrGreen  = lipgloss.Color("#3fb950")
	clrRed    = lipgloss.Color("#f85149")
	clrWhite  = lipgloss.Color("#e6edf3")
	clrTitle  = lipgloss.Color("#58a6ff")
)

// ─── Style helpers ───────────────────────────────────────────────────────────

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
func bold(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

var box = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(clrBorder).
	Padding(0, 1)

// signed renders a delta with its sign, green/red/grey by direction.
func signed(n int) string {
	s := fmt.Sprintf("%+d", n)
	switch {
	case n > 0:
		return fg(clrGreen).Render(s)
	case n < 0:
		return fg(clrRed).Render(s)
	}
	return fg(clrSubtle).Render(s)
}

// ─── Views ───────────────────────────────────────────────────────────────────

func renderTitle() string {
	return bold(clrTitle).Render("binokel-count") +
		fg(clrSubtle).Render(" — partnership score keeper")
}

func renderScoreboard(st *game.State, phase game.Phase) string {
	var b strings.Builder
	label := fmt.Sprintf("target %d", st.Target)
	if phase == game.PhaseWon {
		label = "final"
	}
	fmt.Fprintf(&b, "%s  %s\n",
		bold(clrTitle).Render("scoreboard"), fg(clrSubtle).Render(label))
	fmt.Fprintf(&b, "%s %s\n",
		fg(clrWhite).Render(pad(st.Team1.DisplayName(), 28)),
		bold(clrGold).Render(fmt.Sprintf("%6d", st.Team1.Score)))
	fmt.Fprintf(&b, "%s %s",
		fg(clrWhite).Render(pad(st.Team2.DisplayName(), 28)),
		bold(clrGold).Render(fmt.Sprintf("%6d", st.Team2.Score)))
	return box.Render(b.String())
}

func renderHistory(st *game.State) string {
	var b strings.Builder
	b.WriteString(fg(clrSubtle).Render(
		pad("#", 4) + pad("bidder", 14) + pad("bid", 6) +
			pad("team 1", 8) + pad("team 2", 8) + "result"))
	for _, e := range st.History {
		fmt.Fprintf(&b, "\n%s%s%s%s%s%s",
			pad(fmt.Sprintf("%d", e.Number), 4),
			fg(clrWhite).Render(pad(e.BidderName, 14)),
			pad(fmt.Sprintf("%d", e.Bid), 6),
			pad(fmt.Sprintf("%d", e.Team1Total), 8),
			pad(fmt.Sprintf("%d", e.Team2Total), 8),
			fg(clrSubtle).Render(e.Result.Rationale))
	}
	return box.Render(b.String())
}

func renderPreview(st *game.State, res scoring.RoundResult) string {
	var b strings.Builder
	b.WriteString(bold(clrTitle).Render("round preview"))
	fmt.Fprintf(&b, "\n%s %s", pad(st.Team1.DisplayName(), 28), signed(res.Team1Delta))
	fmt.Fprintf(&b, "\n%s %s", pad(st.Team2.DisplayName(), 28), signed(res.Team2Delta))
	for _, p := range [...]scoring.SeatPlayer{
		st.Team1.Players[0], st.Team1.Players[1],
		st.Team2.Players[0], st.Team2.Players[1],
	} {
		fmt.Fprintf(&b, "\n  %s %s",
			fg(clrSubtle).Render(pad(p.Name, 26)), signed(res.PlayerScores[p.ID]))
	}
	fmt.Fprintf(&b, "\n%s", fg(clrSubtle).Render(res.Rationale))
	return box.Render(b.String())
}

func renderStandings(players []ledger.Player) string {
	if len(players) == 0 {
		return fg(clrSubtle).Render("no roster players yet, try \"player add <name>\"")
	}
	var b strings.Builder
	b.WriteString(fg(clrSubtle).Render(
		pad("player", 20) + pad("lifetime", 10) + pad("games", 7) + "wins"))
	for _, p := range players {
		fmt.Fprintf(&b, "\n%s%s%s%s",
			fg(clrWhite).Render(pad(p.Name, 20)),
			pad(fmt.Sprintf("%d", p.LifetimeScore), 10),
			pad(fmt.Sprintf("%d", p.GamesPlayed), 7),
			fmt.Sprintf("%d", p.Wins))
	}
	return box.Render(b.String())
}

func renderWin(t scoring.Team) string {
	return box.BorderForeground(clrGold).Render(
		bold(clrGold).Render("🏆 " + t.DisplayName() + " wins!"))
}

func renderError(err error) string {
	return fg(clrRed).Render("error: " + err.Error())
}

// pad left-aligns s in a field of width w, truncating politely.
func pad(s string, w int) string {
	if len(s) > w-1 {
		s = s[:w-1]
	}
	return s + strings.Repeat(" ", w-len(s))
}
