package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daniyarm/trivia-game-bot/internal/domain/entities"
)

// ScoreRepository persists scoreboard entries in Postgres. It serves
// deployments where the bot runs next to a server database; single-machine
// setups use FileScoreRepository instead.
type ScoreRepository struct {
	db *pgxpool.Pool
}

// NewScoreRepository creates a new ScoreRepository with the provided pool.
func NewScoreRepository(db *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Append inserts a new scoreboard entry.
func (r *ScoreRepository) Append(ctx context.Context, entry entities.ScoreboardEntry) error {
	query := `
    INSERT INTO scoreboard (player, score, played_at)
    VALUES ($1, $2, $3)
    `
	if _, err := r.db.Exec(ctx, query, entry.PlayerName, entry.Score, entry.Date); err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}

	return nil
}

// List returns all persisted entries, highest score first.
func (r *ScoreRepository) List(ctx context.Context) ([]entities.ScoreboardEntry, error) {
	query := `
    SELECT player, score, played_at
    FROM scoreboard
    ORDER BY score DESC, played_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query scoreboard: %w", err)
	}
	defer rows.Close()

	var entries []entities.ScoreboardEntry
	for rows.Next() {
		var entry entities.ScoreboardEntry
		if err := rows.Scan(&entry.PlayerName, &entry.Score, &entry.Date); err != nil {
			return nil, fmt.Errorf("scan scoreboard row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scoreboard rows: %w", err)
	}

	return entries, nil
}
