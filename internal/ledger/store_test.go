package ledger

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lifetime_score INTEGER NOT NULL DEFAULT 0,
			games_played INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE finished_games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			winner_team TEXT NOT NULL,
			loser_team TEXT NOT NULL,
			winner_score INTEGER NOT NULL,
			loser_score INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			finished_at TEXT NOT NULL
		);`)
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testDB(t))

	players := []Player{
		{ID: "a", Name: "Anna", LifetimeScore: -190, GamesPlayed: 3, Wins: 1},
		{ID: "b", Name: "Ben", LifetimeScore: 420, GamesPlayed: 3, Wins: 2},
	}
	if err := s.SaveAll(ctx, players); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d players, want 2", len(got))
	}
	if got[0] != players[0] || got[1] != players[1] {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// SaveAll is a snapshot: a smaller roster replaces, never merges.
	if err := s.SaveAll(ctx, players[:1]); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}
	got, err = s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("snapshot save merged instead of replacing: %+v", got)
	}
}

func TestLogFinishedGame(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	s := NewStore(db)

	err := s.LogFinishedGame(ctx, FinishedGame{
		WinnerTeam: "Anna / Ben", LoserTeam: "Carla / Dora",
		WinnerScore: 1020, LoserScore: 640, Rounds: 9,
		FinishedAt: time.Date(2026, 8, 25, 21, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("LogFinishedGame() error = %v", err)
	}

	var winner string
	var rounds int
	if err := db.QueryRow(`SELECT winner_team, rounds FROM finished_games`).Scan(&winner, &rounds); err != nil {
		t.Fatalf("query log: %v", err)
	}
	if winner != "Anna / Ben" || rounds != 9 {
		t.Errorf("logged row = %q/%d", winner, rounds)
	}
}
