package entities

// Screen identifies one of the application's views. Keeping the set closed
// lets the game and the delivery layer agree on navigation at compile time
// instead of dispatching frames by name.
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenStartGame
	ScreenTrueFalseQuiz
	ScreenMultipleChoiceQuiz
	ScreenScoreboard
)

func (s Screen) String() string {
	switch s {
	case ScreenMainMenu:
		return "main_menu"
	case ScreenStartGame:
		return "start_game"
	case ScreenTrueFalseQuiz:
		return "true_false_quiz"
	case ScreenMultipleChoiceQuiz:
		return "multiple_choice_quiz"
	case ScreenScoreboard:
		return "scoreboard"
	default:
		return "unknown"
	}
}
