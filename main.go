package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/deejott23/binokel-count/internal/game"
	"github.com/deejott23/binokel-count/internal/ledger"
	"github.com/deejott23/binokel-count/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/binokel.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	ctx := context.Background()

	lstore := ledger.NewStore(db)
	players, err := lstore.LoadAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load players")
	}
	led := ledger.NewFromPlayers(players)

	ctrl := game.NewController(led)
	snaps := store.NewSQLiteStore(db)
	if sn, ok, err := snaps.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to load game snapshot")
	} else if ok {
		if err := ctrl.Restore(sn); err != nil {
			log.Warn().Err(err).Msg("discarding unusable game snapshot")
			_ = snaps.Clear(ctx)
		} else {
			log.Info().Str("phase", string(ctrl.Phase())).Msg("restored saved game")
		}
	}

	app := newApp(ctrl, led, lstore, snaps, os.Stdout)
	log.Info().Int("players", len(players)).Msg("starting binokel-count")
	if err := app.run(os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("scorer exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
