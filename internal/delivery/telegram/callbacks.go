package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
	"github.com/doniyorbek/sher-quiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock" regardless of the outcome.
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.logger.Debug("callback answer failed", zap.Error(err))
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	event, err := decodeCallback(cb.Data)
	if err != nil {
		// A malformed token mutates nothing; the user keeps their session.
		h.logger.Warn("malformed callback token",
			zap.Int64("user_id", userID),
			zap.String("data", cb.Data),
		)
		h.send(newPlainMessage(chatID, msgUnexpectedError))
		return
	}

	h.sessions.Lock(userID)
	defer h.sessions.Unlock(userID)

	switch ev := event.(type) {
	case subjectEvent:
		h.handleSelection(ctx, cb, ev.Subject)
	case randomMixEvent:
		h.handleSelection(ctx, cb, "")
	case answerEvent:
		h.handleAnswer(cb, ev)
	case nextBatchEvent:
		h.handleNextBatch(cb)
	}
}

// handleSelection starts a quiz for the chosen subject; an empty subject
// means random mix. Selecting from an old keyboard after the session is
// gone re-runs the entitlement gate.
func (h *Handler) handleSelection(ctx context.Context, cb *tgbotapi.CallbackQuery, subject string) {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	sess, ok := h.sessions.Get(userID)
	if !ok {
		if !h.access.IsEntitled(ctx, userID) {
			h.send(newPlainMessage(chatID, msgNotSubscribed))
			return
		}
		sess = entities.NewQuizSession(userID, chatID)
		h.sessions.Put(sess)
	}

	var err error
	if subject == "" {
		err = h.quiz.BeginRandomMix(sess)
	} else {
		err = h.quiz.BeginSubject(sess, subject)
	}
	if err != nil {
		// Data integrity failure: drop to no-session, tell the user to
		// recover via /start.
		h.logger.Error("failed to begin quiz",
			zap.Int64("user_id", userID),
			zap.String("subject", subject),
			zap.Error(err),
		)
		h.sessions.Delete(userID)
		h.send(tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, msgSubjectLoadError))
		return
	}

	h.send(tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, fmt.Sprintf(msgfQuizStarting, sess.Subject)))
	h.sendBatch(sess)
}

// handleAnswer applies an answer event to the session and edits the question
// message with feedback.
func (h *Handler) handleAnswer(cb *tgbotapi.CallbackQuery, ev answerEvent) {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	sess, ok := h.sessions.Get(userID)
	if !ok {
		h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		return
	}

	res, err := h.quiz.Answer(sess, ev.QuestionIndex, ev.Letter)
	if err != nil {
		if errors.Is(err, service.ErrQuestionOutOfRange) {
			// Structural failure, not a stale click: abort the session.
			h.logger.Error("answer with out-of-range question index",
				zap.Int64("user_id", userID),
				zap.Int("qid", ev.QuestionIndex),
			)
			h.sessions.Delete(userID)
			h.send(tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, msgSubjectLoadError))
			return
		}

		h.logger.Error("answer handling failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.send(newPlainMessage(chatID, msgUnexpectedError))
		return
	}

	feedback := buildFeedbackText(ev.QuestionIndex, sess.Questions[ev.QuestionIndex], res)
	h.send(tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, feedback))

	if res.QuizDone {
		h.finishQuiz(userID, chatID, res.Score, res.Total)
	}
}

// handleNextBatch advances to the next batch, or reports how many answers
// are still missing.
func (h *Handler) handleNextBatch(cb *tgbotapi.CallbackQuery) {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	sess, ok := h.sessions.Get(userID)
	if !ok {
		h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		return
	}

	adv, err := h.quiz.NextBatch(sess)
	if err != nil {
		h.logger.Error("next batch failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sessions.Delete(userID)
		h.send(newPlainMessage(chatID, msgUnexpectedError))
		return
	}

	if adv.Refused {
		h.send(newPlainMessage(chatID, fmt.Sprintf(msgfRemaining, adv.Remaining)))
		return
	}

	if adv.Completed {
		// Duplicate "next" after the final batch: report the result again.
		h.finishQuiz(userID, chatID, sess.Score, sess.Total())
		return
	}

	// Drop the used prompt, then present the fresh batch.
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, cb.Message.MessageID)); err != nil {
		h.logger.Debug("failed to delete next-batch prompt", zap.Error(err))
	}
	h.sendBatch(sess)
}

// finishQuiz reports the final score, clears the session and re-offers the
// subject keyboard.
func (h *Handler) finishQuiz(userID, chatID int64, score, total int) {
	h.sessions.Delete(userID)

	msg := newPlainMessage(chatID, fmt.Sprintf(msgfQuizFinished, score, total)+"\n\n"+msgChooseNewSubject)
	msg.ReplyMarkup = buildSubjectKeyboard(h.quiz.Subjects())
	h.send(msg)
}
