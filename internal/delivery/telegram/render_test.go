package telegram

import (
	"strings"
	"testing"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
	"github.com/doniyorbek/sher-quiz-bot/internal/service"
)

func sampleQuestion() entities.Question {
	return entities.Question{
		Text: "Poytaxt qaysi?",
		Options: []entities.Option{
			{Letter: "A", Label: "Toshkent"},
			{Letter: "B", Label: "Samarqand"},
			{Letter: "C", Label: "Buxoro"},
			{Letter: "D", Label: "Xiva"},
		},
		Correct: "A",
	}
}

func TestBuildQuestionText(t *testing.T) {
	text := buildQuestionText(4, sampleQuestion())

	if !strings.HasPrefix(text, "5. Poytaxt qaysi?") {
		t.Fatalf("expected 1-based numbering, got %q", text)
	}
	for _, line := range []string{"A) Toshkent", "B) Samarqand", "C) Buxoro", "D) Xiva"} {
		if !strings.Contains(text, line) {
			t.Fatalf("missing option line %q in %q", line, text)
		}
	}
}

func TestBuildAnswerKeyboard(t *testing.T) {
	kb := buildAnswerKeyboard(2, sampleQuestion())

	if len(kb.InlineKeyboard) != 1 {
		t.Fatalf("expected a single row, got %d", len(kb.InlineKeyboard))
	}
	row := kb.InlineKeyboard[0]
	if len(row) != 4 {
		t.Fatalf("expected 4 buttons, got %d", len(row))
	}
	if row[1].Text != "B" || *row[1].CallbackData != "ans|2|B" {
		t.Fatalf("unexpected button: %+v", row[1])
	}
}

func TestBuildFeedbackText(t *testing.T) {
	q := sampleQuestion()

	wrong := buildFeedbackText(0, q, service.AnswerResult{
		Correct:      false,
		ChosenLabel:  "B) Samarqand",
		CorrectLabel: "A) Toshkent",
	})
	if !strings.Contains(wrong, "A) Toshkent") {
		t.Fatalf("wrong-answer feedback must show the correct label: %q", wrong)
	}
	if !strings.Contains(wrong, "Siz tanladingiz: B) Samarqand") {
		t.Fatalf("feedback must show the chosen label: %q", wrong)
	}

	right := buildFeedbackText(0, q, service.AnswerResult{
		Correct:     true,
		ChosenLabel: "A) Toshkent",
	})
	if !strings.Contains(right, msgfAnswerCorrect) {
		t.Fatalf("correct-answer feedback missing marker: %q", right)
	}
}

func TestBuildSubjectKeyboard(t *testing.T) {
	kb := buildSubjectKeyboard([]string{"Informatika", "Matematika"})

	if len(kb.InlineKeyboard) != 3 {
		t.Fatalf("expected 2 subject rows plus random row, got %d", len(kb.InlineKeyboard))
	}
	if *kb.InlineKeyboard[0][0].CallbackData != "subj|Informatika" {
		t.Fatalf("unexpected subject callback: %v", *kb.InlineKeyboard[0][0].CallbackData)
	}
	last := kb.InlineKeyboard[2][0]
	if last.Text != btnRandomMix || *last.CallbackData != tokenRandom {
		t.Fatalf("expected random-mix button last, got %+v", last)
	}
}
