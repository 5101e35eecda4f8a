package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	webhookPath = "/webhook"

	// Every inbound event gets a bounded deadline so a slow storage or
	// transport call can never hang a session.
	updateTimeout = 30 * time.Second
)

type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	access   AccessService
	quiz     QuizService
	subs     SubscriptionService
	sessions SessionStore
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	access AccessService,
	quiz QuizService,
	subs SubscriptionService,
	sessions SessionStore,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		access:   access,
		quiz:     quiz,
		subs:     subs,
		sessions: sessions,
	}
}

// Run receives updates over long polling until the context is cancelled.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started", zap.String("mode", "polling"))
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

// RunWebhook registers the bot webhook and serves updates over HTTP until
// the context is cancelled.
func (h *Handler) RunWebhook(ctx context.Context, baseURL string, port int) error {
	url := strings.TrimRight(baseURL, "/") + webhookPath

	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := h.bot.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}

	info, err := h.bot.GetWebhookInfo()
	if err != nil {
		return fmt.Errorf("get webhook info: %w", err)
	}
	if info.LastErrorDate != 0 {
		h.logger.Warn("telegram reports webhook error",
			zap.String("last_error", info.LastErrorMessage),
		)
	}

	updates := h.bot.ListenForWebhook(webhookPath)

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("webhook server failed", zap.Error(err))
		}
	}()

	h.logger.Info("telegram handler started",
		zap.String("mode", "webhook"),
		zap.String("url", url),
		zap.Int("port", port),
	)
	defer h.logger.Info("telegram handler stopped")

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
	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

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

	msg := update.Message
	h.logger.Debug("message received",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.String("text", msg.Text),
	)

	if !msg.IsCommand() {
		return
	}

	userID := msg.From.ID
	chatID := msg.Chat.ID

	// Events for the same user are processed one at a time.
	h.sessions.Lock(userID)
	defer h.sessions.Unlock(userID)

	switch msg.Command() {
	case "start":
		h.handleStart(ctx, userID, chatID, msg.From.FirstName)
	case "payment":
		h.handlePayment(chatID)
	case "addsubscriber":
		h.handleAddSubscriber(ctx, chatID, msg.CommandArguments())
	case "cancel":
		h.handleCancel(userID, chatID)
	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// NotifyExpiring sends a renewal reminder; in private chats the chat id
// equals the user id.
func (h *Handler) NotifyExpiring(userID int64, expiresAt time.Time) error {
	msg := newPlainMessage(userID, fmt.Sprintf(msgfExpiringSoon, expiresAt.Format(expiryTimeLayout)))
	if _, err := h.bot.Send(msg); err != nil {
		return fmt.Errorf("send expiry notice: %w", err)
	}
	return nil
}

// send delivers a message, logging transport failures. Edits that change
// nothing are a legitimate duplicate-delivery outcome and are ignored.
func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		if isNotModified(err) {
			return
		}
		h.logger.Error("failed to send telegram message", zap.Error(err))
	}
}

func isNotModified(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "message is not modified")
}

func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}
