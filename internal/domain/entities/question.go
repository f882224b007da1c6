package entities

// Question difficulties as the trivia API reports them.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question types as the trivia API reports them.
const (
	TypeMultiple = "multiple"
	TypeBoolean  = "boolean"
)

// Question represents a single trivia question. All text fields are already
// decoded; a Question is immutable after construction.
type Question struct {
	Type             string   // "multiple" or "boolean"
	Difficulty       string   // "easy", "medium" or "hard"
	Category         string   // human-readable category name
	Question         string   // the question text
	CorrectAnswer    string   // the single correct answer
	IncorrectAnswers []string // the remaining answers, in API order
}

// AllAnswers returns the correct answer followed by the incorrect ones.
// The order is fixed; shuffling for display is the view's job.
func (q Question) AllAnswers() []string {
	answers := make([]string, 0, len(q.IncorrectAnswers)+1)
	answers = append(answers, q.CorrectAnswer)
	answers = append(answers, q.IncorrectAnswers...)
	return answers
}
