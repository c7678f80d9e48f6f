package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store persists the player collection and the finished-game log in SQLite.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// LoadAll reads every persisted player.
func (s *Store) LoadAll(ctx context.Context) ([]Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, lifetime_score, games_played, wins FROM players ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.LifetimeScore, &p.GamesPlayed, &p.Wins); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveAll rewrites the players table from the given snapshot in one
// transaction. The ledger is flat key-value data; a full rewrite keeps the
// table byte-for-byte equivalent to the in-memory collection.
func (s *Store) SaveAll(ctx context.Context, players []Player) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("clear players: %w", err)
	}
	for _, p := range players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO players(id, name, lifetime_score, games_played, wins)
			 VALUES(?,?,?,?,?)`,
			p.ID, p.Name, p.LifetimeScore, p.GamesPlayed, p.Wins,
		); err != nil {
			return fmt.Errorf("insert player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// FinishedGame is one row of the completed-game log.
type FinishedGame struct {
	WinnerTeam  string
	LoserTeam   string
	WinnerScore int
	LoserScore  int
	Rounds      int
	FinishedAt  time.Time
}

// LogFinishedGame appends a completed game to the log.
func (s *Store) LogFinishedGame(ctx context.Context, g FinishedGame) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO finished_games(winner_team, loser_team, winner_score, loser_score, rounds, finished_at)
		 VALUES(?,?,?,?,?,?)`,
		g.WinnerTeam, g.LoserTeam, g.WinnerScore, g.LoserScore, g.Rounds,
		g.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}
