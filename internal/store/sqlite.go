package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/deejott23/binokel-count/internal/game"
)

// sqlite persists the snapshot as a single flat JSON document row.
type sqlite struct{ db *sql.DB }

// NewSQLiteStore constructs a Store backed by the game_snapshot table.
func NewSQLiteStore(db *sql.DB) Store { return &sqlite{db: db} }

func (s *sqlite) Save(ctx context.Context, sn game.Snapshot) error {
	data, err := json.Marshal(sn)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO game_snapshot(id, data, saved_at) VALUES(1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data=excluded.data, saved_at=excluded.saved_at`,
		string(data), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *sqlite) Load(ctx context.Context) (game.Snapshot, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM game_snapshot WHERE id=1`,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Snapshot{}, false, nil
	}
	if err != nil {
		return game.Snapshot{}, false, err
	}

	var sn game.Snapshot
	if err := json.Unmarshal([]byte(data), &sn); err != nil {
		return game.Snapshot{}, false, err
	}
	return sn, true, nil
}

func (s *sqlite) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM game_snapshot WHERE id=1`)
	return err
}
