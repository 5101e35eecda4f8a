package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/config"
	"github.com/doniyorbek/sher-quiz-bot/internal/corpus"
	"github.com/doniyorbek/sher-quiz-bot/internal/delivery/telegram"
	"github.com/doniyorbek/sher-quiz-bot/internal/infra/postgres"
	"github.com/doniyorbek/sher-quiz-bot/internal/logger"
	"github.com/doniyorbek/sher-quiz-bot/internal/repository"
	"github.com/doniyorbek/sher-quiz-bot/internal/service"
	"github.com/doniyorbek/sher-quiz-bot/internal/storage"
)

func main() {
	// Optional .env for local runs; real deployments set environment
	// variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.AdminChatID == 0 {
		zlog.Warn("ADMIN_CHAT_ID is not set, /addsubscriber will be rejected for everyone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The bank is built once before any session starts and is read-only
	// afterwards. An empty bank keeps the bot up but every gated entry
	// point reports the missing corpus.
	bank, err := corpus.Load(cfg.CorpusPath, zlog)
	if err != nil {
		zlog.Fatal("failed to load question corpus", zap.Error(err))
	}
	if bank.Empty() {
		zlog.Error("question bank is empty, quizzes are unavailable",
			zap.String("corpus_path", cfg.CorpusPath),
		)
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zlog.Fatal("database is not configured", zap.Error(err))
	}

	if err := postgres.Migrate(dsn, cfg.MigrationsPath, zlog); err != nil {
		zlog.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zlog.Fatal("failed to create bot api", zap.Error(err))
	}
	zlog.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Quizni boshlash"},
		{Command: "payment", Description: "To'lov haqida ma'lumot"},
		{Command: "cancel", Description: "Quizni bekor qilish"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zlog.Warn("failed to set bot commands", zap.Error(err))
	}

	subscriberRepo := repository.NewSubscriberRepository(pool)

	accessService := service.NewAccessService(subscriberRepo, zlog)
	quizService := service.NewQuizService(bank, zlog)
	subscriptionService := service.NewSubscriptionService(subscriberRepo, cfg.AdminChatID, zlog)
	expiryService := service.NewExpiryService(subscriberRepo, zlog)

	sessions := storage.NewSessionStore()

	handler := telegram.NewHandler(
		bot,
		zlog,
		accessService,
		quizService,
		subscriptionService,
		sessions,
	)

	expiryService.SetNotifier(handler)
	go expiryService.Start(ctx)

	if cfg.Webhook.Enabled {
		err = handler.RunWebhook(ctx, cfg.Webhook.BaseURL, cfg.Webhook.Port)
	} else {
		err = handler.Run(ctx)
	}
	if err != nil && ctx.Err() == nil {
		zlog.Fatal("handler stopped", zap.Error(err))
	}

	zlog.Info("shutdown signal received")
}
