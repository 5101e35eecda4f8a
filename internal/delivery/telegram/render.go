// render.go turns the session's in-flight batch into question messages and
// inline keyboards, and formats answer feedback.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
	"github.com/doniyorbek/sher-quiz-bot/internal/service"
)

// sendBatch presents every question of the in-flight batch as its own
// message, followed by a next-batch prompt when more questions remain.
func (h *Handler) sendBatch(sess *entities.QuizSession) {
	for _, bq := range h.quiz.CurrentBatch(sess) {
		msg := newPlainMessage(sess.ChatID, buildQuestionText(bq.Index, bq.Question))
		msg.ReplyMarkup = buildAnswerKeyboard(bq.Index, bq.Question)
		h.send(msg)
	}

	if sess.HasMore() {
		prompt := newPlainMessage(sess.ChatID, msgAnswerBeforeNext)
		prompt.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(btnNextBatch, tokenNext),
			),
		)
		h.send(prompt)
	}
}

// buildQuestionText renders a question with its numbered text and the full
// option lines.
func buildQuestionText(qid int, q entities.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s\n", qid+1, q.Text)
	for _, opt := range q.Options {
		fmt.Fprintf(&b, "\n%s) %s", opt.Letter, opt.Label)
	}
	return b.String()
}

// buildAnswerKeyboard renders one row of letter buttons for a question.
func buildAnswerKeyboard(qid int, q entities.Question) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for _, opt := range q.Options {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			opt.Letter,
			buildAnswerCallback(qid, opt.Letter),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(buttons)
}

// buildFeedbackText renders the answered question with correctness feedback.
// Feedback always carries the full option labels, never bare letters.
func buildFeedbackText(qid int, q entities.Question, res service.AnswerResult) string {
	var b strings.Builder
	b.WriteString(buildQuestionText(qid, q))
	b.WriteString("\n\n--------------------\n")

	if res.Correct {
		b.WriteString(msgfAnswerCorrect)
	} else {
		fmt.Fprintf(&b, msgfAnswerWrong, res.CorrectLabel)
	}

	fmt.Fprintf(&b, "\nSiz tanladingiz: %s", res.ChosenLabel)
	return b.String()
}

// buildSubjectKeyboard renders one button per subject plus the random-mix
// entry.
func buildSubjectKeyboard(subjects []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(subjects)+1)
	for _, subject := range subjects {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(subject, buildSubjectCallback(subject)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnRandomMix, tokenRandom),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
