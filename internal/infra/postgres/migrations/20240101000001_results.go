package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

const createResultsSQL = `
CREATE TABLE IF NOT EXISTS game_results (
	id BIGSERIAL PRIMARY KEY,
	game_pin TEXT NOT NULL,
	quiz_id TEXT NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	data JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS game_results_pin_idx ON game_results (game_pin);

CREATE TABLE IF NOT EXISTS quiz_stats (
	quiz_id TEXT PRIMARY KEY,
	times_played BIGINT NOT NULL DEFAULT 0,
	average_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_participants BIGINT NOT NULL DEFAULT 0
)`

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createResultsSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`DROP TABLE IF EXISTS game_results; DROP TABLE IF EXISTS quiz_stats`)
			return err
		},
	)
}
