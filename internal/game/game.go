package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/daniyarm/trivia-game-bot/internal/domain/entities"
	"github.com/daniyarm/trivia-game-bot/internal/trivia"
)

// Selection labels offered to the player. The "Any" entries translate to an
// absent filter when fetching.
const (
	AnyCategory   = "Any Category"
	AnyDifficulty = "Any Difficulty"
	AnyType       = "Any Type"
)

const basePoints = 100

// difficultyMultiplier weights the base points per correct answer. Unknown
// difficulties count as easy.
var difficultyMultiplier = map[string]int{
	entities.DifficultyEasy:   1,
	entities.DifficultyMedium: 2,
	entities.DifficultyHard:   3,
}

var availableDifficulties = []string{AnyDifficulty, "Easy", "Medium", "Hard"}

var availableQuestionTypes = []string{AnyType, "Multiple Choice", "True / False"}

// questionTypeValue maps the displayed type labels to API values.
var questionTypeValue = map[string]string{
	AnyType:           "",
	"Multiple Choice": entities.TypeMultiple,
	"True / False":    entities.TypeBoolean,
}

// Lookup failures for names that were never offered by the corresponding
// Available list. These indicate a view bug and propagate as hard errors.
var (
	ErrUnknownCategory     = errors.New("unknown category")
	ErrUnknownQuestionType = errors.New("unknown question type")
)

// Game is the quiz state machine. It owns the selectable catalogs, the
// question queue, the current question and the cumulative score, and drives
// the View through a round. A Game belongs to a single player session and
// is not safe for concurrent use.
type Game struct {
	view   View
	client QuestionClient
	scores ScoreRepository
	logger *zap.Logger
	amount int

	categories map[string]string
	questions  []entities.Question
	current    *entities.Question
	score      int
}

// New creates a game that fetches amount questions per round.
func New(client QuestionClient, scores ScoreRepository, view View, logger *zap.Logger, amount int) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	if amount <= 0 {
		amount = 10
	}

	return &Game{
		view:   view,
		client: client,
		scores: scores,
		logger: logger,
		amount: amount,
	}
}

// LoadCategories fetches and stores the category catalog. Failure is
// non-fatal: it is reported through the view and the previous catalog (or
// the empty one) stays in place.
func (g *Game) LoadCategories(ctx context.Context) {
	categories, err := g.client.FetchCategories(ctx)
	if err != nil {
		g.logger.Warn("load categories failed", zap.Error(err))
		g.view.ShowError(fmt.Sprintf("Error loading categories: %v. Please try again later.", err))
		return
	}

	g.categories = categories
}

// CategoriesLoaded reports whether a catalog is available.
func (g *Game) CategoriesLoaded() bool { return len(g.categories) > 0 }

// ShowStartScreen opens the round configuration screen.
func (g *Game) ShowStartScreen() {
	g.view.ShowScreen(entities.ScreenStartGame)
}

// AvailableCategories lists the selectable categories: "Any Category"
// first, then the fetched names in sorted order.
func (g *Game) AvailableCategories() []string {
	names := make([]string, 0, len(g.categories)+1)
	for name := range g.categories {
		names = append(names, name)
	}
	sort.Strings(names)

	return append([]string{AnyCategory}, names...)
}

// CategoryID resolves a displayed category name to its API id. "" means no
// filter ("Any Category").
func (g *Game) CategoryID(name string) (string, error) {
	if name == AnyCategory {
		return "", nil
	}

	id, ok := g.categories[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return id, nil
}

// AvailableDifficulties lists the selectable difficulties. The set is fixed,
// not server-derived.
func (g *Game) AvailableDifficulties() []string {
	return append([]string(nil), availableDifficulties...)
}

// DifficultyValue resolves a displayed difficulty to its API value. "" means
// no filter.
func (g *Game) DifficultyValue(name string) string {
	if name == AnyDifficulty {
		return ""
	}
	return strings.ToLower(name)
}

// AvailableQuestionTypes lists the selectable question types.
func (g *Game) AvailableQuestionTypes() []string {
	return append([]string(nil), availableQuestionTypes...)
}

// QuestionTypeValue resolves a displayed question type to its API value.
// "" means no filter.
func (g *Game) QuestionTypeValue(name string) (string, error) {
	value, ok := questionTypeValue[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuestionType, name)
	}
	return value, nil
}

// LoadQuestions starts a new round: fetches a fresh batch for the given API
// filter values, resets the score, replaces the queue and advances to the
// first question. On failure the error is reported through the view and the
// previous state is left untouched.
func (g *Game) LoadQuestions(ctx context.Context, category, difficulty, questionType string) {
	questions, err := g.client.FetchQuestions(ctx, trivia.QuestionQuery{
		Amount:     g.amount,
		Category:   category,
		Difficulty: difficulty,
		Type:       questionType,
	})
	if err != nil {
		g.logger.Warn("load questions failed", zap.Error(err))
		g.view.ShowError(fmt.Sprintf("Error loading questions: %v", err))
		return
	}

	g.score = 0
	g.questions = questions
	g.current = nil
	g.ShowNextQuestion(ctx)
}

// ShowNextQuestion pops the next question off the queue and tells the view
// to present it. An empty queue ends the game.
func (g *Game) ShowNextQuestion(ctx context.Context) {
	if len(g.questions) == 0 {
		g.EndGame(ctx)
		return
	}

	question := g.questions[0]
	g.questions = g.questions[1:]
	g.current = &question

	if question.Type == entities.TypeBoolean {
		g.view.ShowScreen(entities.ScreenTrueFalseQuiz)
	} else {
		g.view.ShowScreen(entities.ScreenMultipleChoiceQuiz)
	}
}

// CheckAnswer compares the selected answer with the current question's
// correct one. A match awards 100 points weighted by difficulty; a miss
// leaves the score untouched. Without a current question it is a no-op.
func (g *Game) CheckAnswer(selected string) bool {
	if g.current == nil {
		return false
	}
	if selected != g.current.CorrectAnswer {
		return false
	}

	multiplier, ok := difficultyMultiplier[g.current.Difficulty]
	if !ok {
		multiplier = 1
	}
	g.score += basePoints * multiplier

	return true
}

// EndGame closes the round: asks the view for a player name, persists the
// score unless the prompt was cancelled, resets the score and shows the
// scoreboard. The machine is immediately ready for a new round.
func (g *Game) EndGame(ctx context.Context) {
	if name := g.view.PromptPlayerName(); name != "" {
		entry := entities.ScoreboardEntry{
			PlayerName: name,
			Score:      g.score,
			Date:       time.Now(),
		}
		if err := g.scores.Append(ctx, entry); err != nil {
			g.logger.Error("save score failed", zap.Error(err))
			g.view.ShowError(fmt.Sprintf("Error saving score: %v", err))
		}
	}

	g.score = 0
	g.current = nil
	g.view.ShowScreen(entities.ScreenScoreboard)
}

// Quit abandons the game without persisting anything; the view tears its
// session down.
func (g *Game) Quit() {
	g.score = 0
	g.current = nil
	g.questions = nil
	g.view.Quit()
}

// CurrentQuestion returns the question awaiting an answer, or nil.
func (g *Game) CurrentQuestion() *entities.Question { return g.current }

// Score returns the cumulative score of the running round.
func (g *Game) Score() int { return g.score }

// Remaining returns how many questions are still queued.
func (g *Game) Remaining() int { return len(g.questions) }
