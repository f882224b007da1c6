package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/daniyarm/trivia-game-bot/internal/game"
)

// advanceDelay is how long the answer feedback stays on screen before the
// next question is shown.
const advanceDelay = 1500 * time.Millisecond

type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	client   game.QuestionClient
	scores   ScoreRepository
	amount   int
	sessions *sessionStore
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	client game.QuestionClient,
	scores ScoreRepository,
	amount int,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		client:   client,
		scores:   scores,
		amount:   amount,
		sessions: newSessionStore(),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	if !update.Message.IsCommand() {
		return
	}

	chatID := update.Message.Chat.ID
	from := update.Message.From

	switch update.Message.Command() {
	case "start":
		msg := newHTMLMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildMainMenuKeyboard()
		h.send(msg)

	case "play":
		_ = h.withErrorHandling(h.startRound(from))(ctx, chatID)

	case "scores":
		_ = h.withErrorHandling(h.scoreboardHandler())(ctx, chatID)

	case "stop":
		if sess := h.sessions.Get(chatID); sess != nil {
			sess.withGame(func(g *game.Game) { g.Quit() })
		}
		h.send(newHTMLMessage(chatID, msgStopped))

	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))

	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

// startRound creates a fresh session for the chat and opens category
// selection. A previous round still in flight is abandoned first.
func (h *Handler) startRound(from *tgbotapi.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if old := h.sessions.Get(chatID); old != nil {
			old.withGame(func(g *game.Game) { g.Quit() })
		}

		sess := &session{playerName: displayName(from)}
		view := &chatView{h: h, chatID: chatID, sess: sess}
		sess.game = game.New(h.client, h.scores, view, h.logger, h.amount)
		h.sessions.Store(chatID, sess)

		sess.withGame(func(g *game.Game) {
			g.LoadCategories(ctx)
			if !g.CategoriesLoaded() {
				// The game already reported the failure to the chat.
				sess.close()
				h.sessions.Delete(chatID)
				return
			}
			g.ShowStartScreen()
		})
		return nil
	}
}

func (h *Handler) scoreboardHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entries, err := h.scores.List(ctx)
		if err != nil {
			return err
		}
		h.send(newHTMLMessage(chatID, formatTopScores(entries)))
		return nil
	}
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	cd := decodeCallback(cb.Data)

	switch cd.Action {
	case actionPlay, actionAgain:
		_ = h.withErrorHandling(h.startRound(cb.From))(ctx, chatID)

	case actionScores:
		_ = h.withErrorHandling(h.scoreboardHandler())(ctx, chatID)

	case actionCategory:
		h.handleCategoryCallback(cb, cd)

	case actionDifficulty:
		h.handleDifficultyCallback(cb, cd)

	case actionType:
		h.handleTypeCallback(ctx, cb, cd)

	case actionAnswer:
		h.handleAnswerCallback(cb, cd)

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, "")
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Error("callback answer error", zap.Error(err))
	}
}

func (h *Handler) handleCategoryCallback(cb *tgbotapi.CallbackQuery, cd callbackData) {
	chatID := cb.Message.Chat.ID
	sess := h.sessions.Get(chatID)
	if sess == nil {
		h.sendError(chatID, msgNoSession)
		return
	}

	sess.withGame(func(g *game.Game) {
		i, ok := indexParam(cd)
		if !ok || i >= len(sess.categories) {
			h.logger.Warn("invalid category callback", zap.String("data", cb.Data))
			return
		}
		sess.categoryName = sess.categories[i]

		edit := newHTMLEdit(chatID, cb.Message.MessageID, msgChooseDifficulty)
		kb := buildDifficultyKeyboard(g.AvailableDifficulties())
		edit.ReplyMarkup = &kb
		h.send(edit)
	})
}

func (h *Handler) handleDifficultyCallback(cb *tgbotapi.CallbackQuery, cd callbackData) {
	chatID := cb.Message.Chat.ID
	sess := h.sessions.Get(chatID)
	if sess == nil {
		h.sendError(chatID, msgNoSession)
		return
	}

	sess.withGame(func(g *game.Game) {
		difficulties := g.AvailableDifficulties()
		i, ok := indexParam(cd)
		if !ok || i >= len(difficulties) {
			h.logger.Warn("invalid difficulty callback", zap.String("data", cb.Data))
			return
		}
		sess.difficultyName = difficulties[i]

		edit := newHTMLEdit(chatID, cb.Message.MessageID, msgChooseType)
		kb := buildTypeKeyboard(g.AvailableQuestionTypes())
		edit.ReplyMarkup = &kb
		h.send(edit)
	})
}

func (h *Handler) handleTypeCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) {
	chatID := cb.Message.Chat.ID
	sess := h.sessions.Get(chatID)
	if sess == nil {
		h.sendError(chatID, msgNoSession)
		return
	}

	sess.withGame(func(g *game.Game) {
		types := g.AvailableQuestionTypes()
		i, ok := indexParam(cd)
		if !ok || i >= len(types) {
			h.logger.Warn("invalid type callback", zap.String("data", cb.Data))
			return
		}
		sess.typeName = types[i]

		category, err := g.CategoryID(sess.categoryName)
		if err != nil {
			h.logger.Error("unknown category selected",
				zap.String("category", sess.categoryName),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return
		}

		questionType, err := g.QuestionTypeValue(sess.typeName)
		if err != nil {
			h.logger.Error("unknown question type selected",
				zap.String("type", sess.typeName),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return
		}

		h.send(newHTMLEdit(chatID, cb.Message.MessageID, msgLoadingQuestions))

		difficulty := g.DifficultyValue(sess.difficultyName)
		g.LoadQuestions(ctx, category, difficulty, questionType)
	})
}

func (h *Handler) handleAnswerCallback(cb *tgbotapi.CallbackQuery, cd callbackData) {
	chatID := cb.Message.Chat.ID
	sess := h.sessions.Get(chatID)
	if sess == nil {
		h.sendError(chatID, msgNoSession)
		return
	}

	sess.withGame(func(g *game.Game) {
		q := g.CurrentQuestion()
		i, ok := indexParam(cd)
		if !ok || q == nil || i >= len(sess.answers) {
			h.logger.Warn("invalid answer callback", zap.String("data", cb.Data))
			return
		}

		selected := sess.answers[i]
		correct := g.CheckAnswer(selected)

		h.send(newHTMLEdit(chatID, cb.Message.MessageID, formatFeedback(q, selected, correct)))

		// Let the feedback sit for a moment, then move on. The timer runs
		// on its own goroutine, so it re-enters through withGame.
		time.AfterFunc(advanceDelay, func() {
			ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
			defer cancel()
			sess.withGame(func(g *game.Game) {
				g.ShowNextQuestion(ctx)
			})
		})
	})
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newHTMLMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// displayName picks a human-readable name for the scoreboard.
func displayName(from *tgbotapi.User) string {
	if from == nil {
		return ""
	}
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if name == "" {
		name = from.UserName
	}
	return name
}
