// cli.go
//
// Interactive terminal shell for the Binokel score keeper.
// Responsibilities:
//   - Roster commands (player add/rm, standings).
//   - Game commands (start, status, round, undo, forfeit, discard, reset).
//   - Round entry with the mandatory two-phase flow: every round is
//     previewed via the pure engine and only committed on confirmation.
//   - Admission checks the core does not enforce: trick points of a played
//     round must sum to the 240-point pool, and a player seated in the
//     active game cannot be removed from the roster.
//   - Fire-and-forget persistence after every committed mutation (players
//     and the active-game snapshot); failures are logged, never fatal.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/deejott23/binokel-count/internal/game"
	"github.com/deejott23/binokel-count/internal/ledger"
	"github.com/deejott23/binokel-count/internal/scoring"
	"github.com/deejott23/binokel-count/internal/store"
)

const defaultTarget = 1000

type app struct {
	ctrl   *game.Controller
	ledger *ledger.Ledger
	lstore *ledger.Store
	snaps  store.Store
	out    io.Writer
	sc     *bufio.Scanner
}

func newApp(ctrl *game.Controller, led *ledger.Ledger, lstore *ledger.Store, snaps store.Store, out io.Writer) *app {
	return &app{ctrl: ctrl, ledger: led, lstore: lstore, snaps: snaps, out: out}
}

// run reads commands line by line until EOF or quit.
func (a *app) run(in io.Reader) error {
	a.sc = bufio.NewScanner(in)
	fmt.Fprintln(a.out, renderTitle())
	fmt.Fprintln(a.out, `Type "help" for commands.`)

	for {
		fmt.Fprint(a.out, "binokel> ")
		if !a.sc.Scan() {
			fmt.Fprintln(a.out)
			return a.sc.Err()
		}
		line := strings.TrimSpace(a.sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "help":
			a.printHelp()
		case "players":
			fmt.Fprintln(a.out, renderStandings(a.ledger.List()))
		case "player":
			a.cmdPlayer(fields[1:])
		case "start":
			a.cmdStart(fields[1:])
		case "status":
			a.cmdStatus()
		case "round":
			a.cmdRound()
		case "undo":
			a.cmdUndo()
		case "forfeit":
			a.cmdForfeit(fields[1:])
		case "discard":
			a.cmdDiscard()
		case "reset":
			a.cmdReset()
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(a.out, "unknown command %q, try \"help\"\n", fields[0])
		}
	}
}

func (a *app) printHelp() {
	fmt.Fprint(a.out, `commands:
  players                          lifetime standings
  player add <name>                add a roster player
  player rm <name>                 remove a roster player
  start <p1> <p2> vs <p3> <p4> [target]
                                   start a game (default target `+strconv.Itoa(defaultTarget)+`)
  status                           scoreboard and round history
  round                            enter a round (preview, then commit)
  undo                             take back the last round
  forfeit <1|2>                    end the game in that team's favor
  discard                          drop the game without recording it
  reset                            clear a finished game
  quit                             leave
`)
}

// ----------------------------- roster ------------------------------------

func (a *app) cmdPlayer(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: player add|rm <name>")
		return
	}
	name := strings.Join(args[1:], " ")
	switch args[0] {
	case "add":
		p, err := a.ledger.CreatePlayer(name)
		if err != nil {
			a.printErr(err)
			return
		}
		a.persistPlayers()
		fmt.Fprintf(a.out, "added %s\n", p.Name)
	case "rm":
		p, ok := a.ledger.FindByName(name)
		if !ok {
			a.printErr(ledger.ErrUnknownPlayer)
			return
		}
		if st := a.ctrl.State(); st != nil && (st.Team1.Contains(p.ID) || st.Team2.Contains(p.ID)) {
			fmt.Fprintf(a.out, "%s is seated in the active game\n", p.Name)
			return
		}
		if err := a.ledger.DeletePlayer(p.ID); err != nil {
			a.printErr(err)
			return
		}
		a.persistPlayers()
		fmt.Fprintf(a.out, "removed %s\n", p.Name)
	default:
		fmt.Fprintln(a.out, "usage: player add|rm <name>")
	}
}

// ----------------------------- lifecycle ----------------------------------

func (a *app) cmdStart(args []string) {
	// start <p1> <p2> vs <p3> <p4> [target]
	vs := -1
	for i, f := range args {
		if f == "vs" {
			vs = i
			break
		}
	}
	if vs != 2 || len(args) < 5 || len(args) > 6 {
		fmt.Fprintln(a.out, "usage: start <p1> <p2> vs <p3> <p4> [target]")
		return
	}

	target := defaultTarget
	if v := getEnv("TARGET_SCORE", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			target = n
		}
	}
	if len(args) == 6 {
		n, err := strconv.Atoi(args[5])
		if err != nil {
			fmt.Fprintf(a.out, "bad target %q\n", args[5])
			return
		}
		target = n
	}

	var seats [4]scoring.SeatPlayer
	for i, name := range []string{args[0], args[1], args[3], args[4]} {
		p, ok := a.ledger.FindByName(name)
		if !ok {
			fmt.Fprintf(a.out, "no roster player named %q\n", name)
			return
		}
		seats[i] = scoring.SeatPlayer{ID: p.ID, Name: p.Name}
	}

	team1 := scoring.Team{Players: [2]scoring.SeatPlayer{seats[0], seats[1]}}
	team2 := scoring.Team{Players: [2]scoring.SeatPlayer{seats[2], seats[3]}}
	if err := a.ctrl.StartGame(team1, team2, target); err != nil {
		a.printErr(err)
		return
	}
	a.persistGame()
	fmt.Fprintln(a.out, renderScoreboard(a.ctrl.State(), a.ctrl.Phase()))
}

func (a *app) cmdStatus() {
	st := a.ctrl.State()
	if st == nil {
		fmt.Fprintln(a.out, "no active game")
		return
	}
	fmt.Fprintln(a.out, renderScoreboard(st, a.ctrl.Phase()))
	if len(st.History) > 0 {
		fmt.Fprintln(a.out, renderHistory(st))
	}
	if w, ok := a.ctrl.Winner(); ok {
		fmt.Fprintln(a.out, renderWin(w))
	}
}

func (a *app) cmdUndo() {
	entry, err := a.ctrl.UndoLastRound()
	if err != nil {
		a.printErr(err)
		return
	}
	a.persistPlayers()
	a.persistGame()
	fmt.Fprintf(a.out, "undid round %d (%s)\n", entry.Number, entry.Result.Rationale)
	fmt.Fprintln(a.out, renderScoreboard(a.ctrl.State(), a.ctrl.Phase()))
}

func (a *app) cmdForfeit(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: forfeit <1|2>")
		return
	}
	team, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "usage: forfeit <1|2>")
		return
	}
	if err := a.ctrl.Forfeit(team); err != nil {
		a.printErr(err)
		return
	}
	a.finishGame()
}

func (a *app) cmdDiscard() {
	if err := a.ctrl.Discard(); err != nil {
		a.printErr(err)
		return
	}
	a.persistGame()
	fmt.Fprintln(a.out, "game discarded, nothing recorded")
}

func (a *app) cmdReset() {
	a.ctrl.Reset()
	a.persistGame()
	fmt.Fprintln(a.out, "table cleared")
}

// ----------------------------- round entry ---------------------------------

// cmdRound collects a round interactively, previews it via the pure engine,
// and commits the identical input only after confirmation.
func (a *app) cmdRound() {
	if a.ctrl.Phase() != game.PhasePlaying {
		a.printErr(game.ErrNoActiveGame)
		return
	}
	st := a.ctrl.State()
	seats := [4]scoring.SeatPlayer{
		st.Team1.Players[0], st.Team1.Players[1],
		st.Team2.Players[0], st.Team2.Players[1],
	}

	bidderName, ok := a.prompt("bidder")
	if !ok {
		return
	}
	var bidder scoring.SeatPlayer
	found := false
	for _, p := range seats {
		if strings.EqualFold(p.Name, bidderName) {
			bidder, found = p, true
			break
		}
	}
	if !found {
		fmt.Fprintf(a.out, "%q is not seated in this game\n", bidderName)
		return
	}

	bid, ok := a.promptInt("bid")
	if !ok {
		return
	}
	abandoned, ok := a.promptYesNo("abandoned? [y/N]")
	if !ok {
		return
	}

	in := scoring.RoundInput{BidderID: bidder.ID, Bid: bid, Abandoned: abandoned}
	if !abandoned {
		in.Meld = make(map[string]int, 4)
		in.Tricks = make(map[string]int, 4)
		for _, p := range seats {
			v, ok := a.promptInt("meld " + p.Name)
			if !ok {
				return
			}
			in.Meld[p.ID] = v
		}
		total := 0
		for _, p := range seats {
			v, ok := a.promptInt("tricks " + p.Name)
			if !ok {
				return
			}
			in.Tricks[p.ID] = v
			total += v
		}
		if total != scoring.TrickPool {
			fmt.Fprintf(a.out, "trick points sum to %d, must be %d; round not recorded\n",
				total, scoring.TrickPool)
			return
		}
	}

	// Preview first, always. The commit below reuses the identical input.
	res, err := a.ctrl.PreviewRound(in)
	if err != nil {
		a.printErr(err)
		return
	}
	fmt.Fprintln(a.out, renderPreview(st, res))

	commit, ok := a.promptYesNo("commit? [y/N]")
	if !ok || !commit {
		fmt.Fprintln(a.out, "round discarded")
		return
	}

	if _, err := a.ctrl.AddRound(in); err != nil {
		a.printErr(err)
		return
	}
	a.persistPlayers()
	a.persistGame()
	fmt.Fprintln(a.out, renderScoreboard(a.ctrl.State(), a.ctrl.Phase()))
	if a.ctrl.Phase() == game.PhaseWon {
		a.finishGame()
	}
}

// finishGame renders the win banner and appends the finished-game log row.
func (a *app) finishGame() {
	winner, ok := a.ctrl.Winner()
	if !ok {
		return
	}
	st := a.ctrl.State()
	loser := st.Team2
	if a.ctrl.WinnerNumber() == 2 {
		loser = st.Team1
	}
	fmt.Fprintln(a.out, renderWin(winner))

	err := a.lstore.LogFinishedGame(context.Background(), ledger.FinishedGame{
		WinnerTeam:  winner.DisplayName(),
		LoserTeam:   loser.DisplayName(),
		WinnerScore: winner.Score,
		LoserScore:  loser.Score,
		Rounds:      len(st.History),
		FinishedAt:  time.Now(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("log finished game")
	}
	a.persistPlayers()
	a.persistGame()
}

// ----------------------------- persistence ---------------------------------

func (a *app) persistPlayers() {
	if err := a.lstore.SaveAll(context.Background(), a.ledger.List()); err != nil {
		log.Warn().Err(err).Msg("persist players")
	}
}

func (a *app) persistGame() {
	ctx := context.Background()
	if a.ctrl.Phase() == game.PhaseIdle {
		if err := a.snaps.Clear(ctx); err != nil {
			log.Warn().Err(err).Msg("clear game snapshot")
		}
		return
	}
	if err := a.snaps.Save(ctx, a.ctrl.Snapshot()); err != nil {
		log.Warn().Err(err).Msg("persist game snapshot")
	}
}

// ----------------------------- prompts -------------------------------------

func (a *app) prompt(label string) (string, bool) {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.sc.Scan() {
		fmt.Fprintln(a.out, "\ninput closed, round aborted")
		return "", false
	}
	return strings.TrimSpace(a.sc.Text()), true
}

func (a *app) promptInt(label string) (int, bool) {
	for {
		s, ok := a.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			fmt.Fprintln(a.out, "enter a non-negative number")
			continue
		}
		return n, true
	}
}

func (a *app) promptYesNo(label string) (bool, bool) {
	s, ok := a.prompt(label)
	if !ok {
		return false, false
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", true
}

func (a *app) printErr(err error) {
	fmt.Fprintln(a.out, renderError(err))
}
