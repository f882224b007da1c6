package trivia

import (
	"encoding/json"

	"github.com/daniyarm/trivia-game-bot/internal/domain/entities"
)

// rawQuestion mirrors the question payload exactly as the API encodes it,
// before any text decoding.
type rawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type questionsPayload struct {
	Results []rawQuestion `json:"results"`
}

type categoriesPayload struct {
	TriviaCategories []rawCategory `json:"trivia_categories"`
}

type rawCategory struct {
	ID   json.RawMessage `json:"id"`
	Name string          `json:"name"`
}

type tokenPayload struct {
	Token string `json:"token"`
}

// formatQuestion decodes every text field of a raw question and validates
// the decoded difficulty.
func formatQuestion(raw rawQuestion) (entities.Question, error) {
	difficulty := DecodeText(raw.Difficulty)
	switch difficulty {
	case entities.DifficultyEasy, entities.DifficultyMedium, entities.DifficultyHard:
	default:
		return entities.Question{}, newError(KindInvalidParameter, "Invalid difficulty value: %s", difficulty)
	}

	incorrect := make([]string, len(raw.IncorrectAnswers))
	for i, answer := range raw.IncorrectAnswers {
		incorrect[i] = DecodeText(answer)
	}

	return entities.Question{
		Type:             DecodeText(raw.Type),
		Difficulty:       difficulty,
		Category:         DecodeText(raw.Category),
		Question:         DecodeText(raw.Question),
		CorrectAnswer:    DecodeText(raw.CorrectAnswer),
		IncorrectAnswers: incorrect,
	}, nil
}

// coerceCategoryID renders a category id as a string whether the API sent
// it as a JSON number or a quoted string. Returns "" for anything else.
func coerceCategoryID(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}
