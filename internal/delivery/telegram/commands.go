package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
	"github.com/doniyorbek/sher-quiz-bot/internal/service"
)

// handleStart gates entry and opens subject selection. A previous session,
// whatever its state, is discarded: /start is always a safe recovery path.
func (h *Handler) handleStart(ctx context.Context, userID, chatID int64, firstName string) {
	h.sessions.Delete(userID)

	if !h.access.IsEntitled(ctx, userID) {
		h.logger.Info("start denied, not subscribed", zap.Int64("user_id", userID))
		h.send(newPlainMessage(chatID, fmt.Sprintf("Salom, %s! 👋\n", firstName)+msgNotSubscribed))
		return
	}

	if !h.quiz.HasQuestions() {
		h.logger.Error("start with empty question bank", zap.Int64("user_id", userID))
		h.send(newPlainMessage(chatID, msgNoSubjects))
		return
	}

	sess := entities.NewQuizSession(userID, chatID)
	h.sessions.Put(sess)

	msg := newPlainMessage(chatID, fmt.Sprintf(msgfWelcome, firstName))
	msg.ReplyMarkup = buildSubjectKeyboard(h.quiz.Subjects())
	h.send(msg)
}

// handlePayment sends payment instructions. Informational, no state change.
func (h *Handler) handlePayment(chatID int64) {
	h.send(newPlainMessage(chatID, fmt.Sprintf(msgfPaymentInstructions, chatID)))
}

// handleAddSubscriber processes the admin-only grant command:
// /addsubscriber <userId> [expiryDays].
func (h *Handler) handleAddSubscriber(ctx context.Context, chatID int64, rawArgs string) {
	args := strings.Fields(rawArgs)
	if len(args) == 0 {
		h.send(newPlainMessage(chatID, msgUsageAddSubscriber))
		return
	}

	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.send(newPlainMessage(chatID, msgBadTargetID))
		return
	}

	var expiryDays *int
	if len(args) > 1 {
		days, err := strconv.Atoi(args[1])
		if err != nil {
			h.send(newPlainMessage(chatID, msgBadExpiryDays))
			return
		}
		expiryDays = &days
	}

	sub, err := h.subs.Grant(ctx, chatID, targetID, "", expiryDays)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			h.send(newPlainMessage(chatID, msgAdminOnly))
		case errors.Is(err, service.ErrInvalidExpiryDays):
			h.send(newPlainMessage(chatID, msgExpiryDaysPositive))
		default:
			h.logger.Error("grant failed",
				zap.Int64("target_user_id", targetID),
				zap.Error(err),
			)
			h.send(newPlainMessage(chatID, msgGrantFailed))
		}
		return
	}

	expiryText := "muddatsiz"
	if sub.ExpiresAt != nil {
		expiryText = sub.ExpiresAt.Format(expiryTimeLayout) + " gacha"
	}
	h.send(newPlainMessage(chatID, fmt.Sprintf(msgfGrantDone, targetID, expiryText)))

	// Best effort: the grant stands even if the activation notice fails.
	suffix := ""
	if sub.ExpiresAt != nil {
		suffix = fmt.Sprintf(" (%s gacha amal qiladi)", sub.ExpiresAt.Format(expiryTimeLayout))
	}
	notice := newPlainMessage(targetID, fmt.Sprintf(msgfActivated, suffix))
	if _, err := h.bot.Send(notice); err != nil {
		h.logger.Warn("failed to notify granted subscriber",
			zap.Int64("target_user_id", targetID),
			zap.Error(err),
		)
		h.send(newPlainMessage(chatID, fmt.Sprintf(msgfGrantNotifyFailed, err)))
	}
}

// handleCancel terminates the session from any state.
func (h *Handler) handleCancel(userID, chatID int64) {
	h.sessions.Delete(userID)
	h.send(newPlainMessage(chatID, msgCancelled))
}
