package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"quizroom-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResultStore persists finished games as JSONB rows keyed by PIN plus finish
// time, and maintains per-quiz aggregate stats.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

// SaveResult writes one finished game. Finished PINs are reusable, so the row
// key includes the finish timestamp.
func (s *ResultStore) SaveResult(ctx context.Context, result domain.GameResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO game_results (game_pin, quiz_id, finished_at, data) VALUES ($1, $2, $3, $4)`,
		result.Pin, result.QuizID, result.FinishedAt, raw)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// RecordQuizPlayed bumps the play counter and folds the game's average score
// into the quiz's running average.
func (s *ResultStore) RecordQuizPlayed(ctx context.Context, quizID string, averageScore float64, participantCount int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO quiz_stats (quiz_id, times_played, average_score, total_participants)
		VALUES ($1, 1, $2, $3)
		ON CONFLICT (quiz_id) DO UPDATE SET
			average_score = (quiz_stats.average_score * quiz_stats.times_played + $2) / (quiz_stats.times_played + 1),
			times_played = quiz_stats.times_played + 1,
			total_participants = quiz_stats.total_participants + $3`,
		quizID, averageScore, participantCount)
	if err != nil {
		return fmt.Errorf("record quiz played: %w", err)
	}
	return nil
}
