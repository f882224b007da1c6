package telegram

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/daniyarm/trivia-game-bot/internal/domain/entities"
)

const renderTimeout = 5 * time.Second

// chatView renders game screens into a single Telegram chat.
type chatView struct {
	h      *Handler
	chatID int64
	sess   *session

	asked     int // questions shown so far in the current round
	lastScore int // final score captured before the game resets it
}

func (v *chatView) ShowScreen(screen entities.Screen) {
	switch screen {
	case entities.ScreenMainMenu:
		msg := newHTMLMessage(v.chatID, msgWelcome)
		msg.ReplyMarkup = buildMainMenuKeyboard()
		v.h.send(msg)

	case entities.ScreenStartGame:
		v.asked = 0
		v.sess.categories = v.sess.game.AvailableCategories()
		msg := newHTMLMessage(v.chatID, msgChooseCategory)
		msg.ReplyMarkup = buildCategoryKeyboard(v.sess.categories)
		v.h.send(msg)

	case entities.ScreenTrueFalseQuiz, entities.ScreenMultipleChoiceQuiz:
		v.showQuestion(screen)

	case entities.ScreenScoreboard:
		v.showScoreboard()

	default:
		v.h.logger.Warn("unknown screen", zap.Int("screen", int(screen)))
	}
}

func (v *chatView) showQuestion(screen entities.Screen) {
	q := v.sess.game.CurrentQuestion()
	if q == nil {
		return
	}

	var answers []string
	if screen == entities.ScreenTrueFalseQuiz {
		answers = []string{"True", "False"}
	} else {
		answers = q.AllAnswers()
		rand.Shuffle(len(answers), func(i, j int) {
			answers[i], answers[j] = answers[j], answers[i]
		})
	}
	v.sess.answers = answers

	v.asked++
	total := v.asked + v.sess.game.Remaining()

	msg := newHTMLMessage(v.chatID, formatQuestion(q, v.asked, total, v.sess.game.Score()))
	msg.ReplyMarkup = buildAnswerKeyboard(answers)
	v.h.send(msg)
}

func (v *chatView) showScoreboard() {
	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	entries, err := v.h.scores.List(ctx)
	if err != nil {
		v.h.logger.Error("failed to list scores", zap.Error(err))
	}

	msg := newHTMLMessage(v.chatID, formatRoundOver(v.lastScore, entries))
	msg.ReplyMarkup = buildScoreboardKeyboard()
	v.h.send(msg)
}

func (v *chatView) ShowError(text string) {
	v.h.sendError(v.chatID, text)
}

// PromptPlayerName reports the name the score is recorded under. It runs
// before the game resets its round state, so the score is captured here.
func (v *chatView) PromptPlayerName() string {
	v.lastScore = v.sess.game.Score()
	return v.sess.playerName
}

func (v *chatView) Quit() {
	v.sess.close()
	v.h.sessions.Delete(v.chatID)
}
