package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/daniyarm/trivia-game-bot/internal/config"
	"github.com/daniyarm/trivia-game-bot/internal/delivery/telegram"
	"github.com/daniyarm/trivia-game-bot/internal/infra/postgres"
	"github.com/daniyarm/trivia-game-bot/internal/logger"
	"github.com/daniyarm/trivia-game-bot/internal/repository"
	"github.com/daniyarm/trivia-game-bot/internal/trivia"
)

func main() {
	// Load environment variables from .env if present.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("failed to create bot api", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start the bot",
		},
		{
			Command:     "play",
			Description: "Start a new quiz round",
		},
		{
			Command:     "scores",
			Description: "Show the scoreboard",
		},
		{
			Command:     "stop",
			Description: "Abandon the current round",
		},
		{
			Command:     "help",
			Description: "How to play",
		},
	}

	_, err = bot.Request(tgbotapi.NewSetMyCommands(commands...))
	if err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	zl.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := trivia.NewClient(ctx, trivia.Config{
		QuestionsURL:    cfg.API.QuestionsURL,
		CategoriesURL:   cfg.API.CategoriesURL,
		TokenURL:        cfg.API.TokenURL,
		Timeout:         cfg.API.Timeout,
		RetryMax:        cfg.API.RetryMax,
		RetryWaitMin:    cfg.API.RetryWaitMin,
		MaxTokenRetries: cfg.Quiz.MaxTokenRetries,
	}, zl)
	if err != nil {
		zl.Fatal("failed to create trivia client", zap.Error(err))
	}
	defer client.Close()

	var scores telegram.ScoreRepository
	switch cfg.Scoreboard.Backend {
	case config.BackendPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			zl.Fatal("database url is not configured", zap.Error(err))
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			zl.Fatal("failed to create postgres pool", zap.Error(err))
		}
		defer pool.Close()

		scores = repository.NewScoreRepository(pool)

	default:
		scores = repository.NewFileScoreRepository(cfg.Scoreboard.File)
	}

	handler := telegram.NewHandler(bot, zl, client, scores, cfg.Quiz.Amount)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zl.Fatal("handler stopped", zap.Error(err))
	}

	zl.Info("shutdown signal received")
}
