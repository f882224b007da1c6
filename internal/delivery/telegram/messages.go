// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/daniyarm/trivia-game-bot/internal/domain/entities"
)

const (
	msgWelcome = "<b>Trivia Game Bot</b>\n\n" +
		"Answer trivia questions from the Open Trivia Database and climb the scoreboard.\n\n" +
		"/play — start a new round\n" +
		"/scores — show the scoreboard\n" +
		"/help — how to play"
	msgHelp = "Pick a category, a difficulty and a question type, then answer the questions.\n\n" +
		"Easy answers are worth 100 points, medium 200 and hard 300."
	msgChooseCategory   = "Choose a category:"
	msgChooseDifficulty = "Choose a difficulty:"
	msgChooseType       = "Choose a question type:"
	msgLoadingQuestions = "Loading questions…"
	msgNoSession        = "No round in progress. Use /play to start one."
	msgStopped          = "Round abandoned. Use /play whenever you want a rematch."
	msgInternalError    = "Something went wrong. Please try again later."
	msgUnknownCommand   = "Unknown command. Available commands:\n\n/play — start a new round\n/scores — show the scoreboard\n/help — how to play"
	msgEmptyScoreboard  = "The scoreboard is empty. Be the first, use /play!"
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatQuestion renders the current question header and text.
func formatQuestion(q *entities.Question, number, total, score int) string {
	return fmt.Sprintf(
		"<b>Question %d/%d</b>  ·  %s · %s\nScore: %d\n\n%s",
		number,
		total,
		html.EscapeString(q.Category),
		titleCase(string(q.Difficulty)),
		score,
		html.EscapeString(q.Question),
	)
}

// formatFeedback renders the answer result appended to the question text.
func formatFeedback(q *entities.Question, selected string, correct bool) string {
	if correct {
		return fmt.Sprintf("%s\n\n✅ Correct!", html.EscapeString(q.Question))
	}
	return fmt.Sprintf(
		"%s\n\n❌ Wrong. You answered: %s\nCorrect answer: <b>%s</b>",
		html.EscapeString(q.Question),
		html.EscapeString(selected),
		html.EscapeString(q.CorrectAnswer),
	)
}

// formatRoundOver renders the round result followed by the top scores.
func formatRoundOver(roundScore int, entries []entities.ScoreboardEntry) string {
	header := fmt.Sprintf("<b>Round over!</b> Your score: %d\n\n", roundScore)
	return header + formatTopScores(entries)
}

// formatTopScores renders the top ten scoreboard entries.
func formatTopScores(entries []entities.ScoreboardEntry) string {
	if len(entries) == 0 {
		return msgEmptyScoreboard
	}

	var sb strings.Builder
	sb.WriteString("<b>Scoreboard</b>\n")
	for i, e := range entries {
		if i >= 10 {
			break
		}
		sb.WriteString(fmt.Sprintf(
			"%d. %s — %d  (%s)\n",
			i+1,
			html.EscapeString(e.PlayerName),
			e.Score,
			e.Date.Format("2006-01-02"),
		))
	}

	return sb.String()
}
