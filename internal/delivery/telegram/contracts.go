package telegram

import (
	"context"

	"github.com/daniyarm/trivia-game-bot/internal/domain/entities"
)

// ScoreRepository persists and lists finished-round scores.
type ScoreRepository interface {
	Append(ctx context.Context, entry entities.ScoreboardEntry) error
	List(ctx context.Context) ([]entities.ScoreboardEntry, error)
}
