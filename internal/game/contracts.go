package game

import (
	"context"

	"github.com/daniyarm/trivia-game-bot/internal/domain/entities"
	"github.com/daniyarm/trivia-game-bot/internal/trivia"
)

// View is the surface the state machine drives. The delivery layer maps each
// screen to a concrete rendering; errors shown here are recovered, the game
// keeps running.
type View interface {
	ShowScreen(screen entities.Screen)
	ShowError(message string)
	// PromptPlayerName asks who to credit the final score to. An empty
	// string means the score is not persisted.
	PromptPlayerName() string
	Quit()
}

// QuestionClient is the part of the trivia API client the game consumes.
type QuestionClient interface {
	FetchCategories(ctx context.Context) (map[string]string, error)
	FetchQuestions(ctx context.Context, query trivia.QuestionQuery) ([]entities.Question, error)
}

// ScoreRepository persists high-score entries at end-of-game.
type ScoreRepository interface {
	Append(ctx context.Context, entry entities.ScoreboardEntry) error
}
