package service

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

func TestRandomMixStratifiedAllocation(t *testing.T) {
	// Subjects of sizes 5, 100 and 5 with a target of 50: every subject
	// contributes at least one question and never more than it has.
	bank := testBank(map[string]int{"Small1": 5, "Big": 100, "Small2": 5})
	svc := NewQuizService(bank, zap.NewNop())

	sess := entities.NewQuizSession(1, 1)
	if err := svc.BeginRandomMix(sess); err != nil {
		t.Fatalf("BeginRandomMix: %v", err)
	}
	if sess.Subject != RandomMixSubject {
		t.Fatalf("expected subject %q, got %q", RandomMixSubject, sess.Subject)
	}

	perSubject := make(map[string]int)
	seen := make(map[string]struct{})
	for _, q := range sess.Questions {
		if _, dup := seen[q.Text]; dup {
			t.Fatalf("duplicate question sampled: %q", q.Text)
		}
		seen[q.Text] = struct{}{}

		subject := strings.SplitN(q.Text, " ", 2)[0]
		perSubject[subject]++
	}

	sizes := map[string]int{"Small1": 5, "Big": 100, "Small2": 5}
	for subject, size := range sizes {
		if perSubject[subject] < 1 {
			t.Fatalf("subject %s got no questions: %v", subject, perSubject)
		}
		if perSubject[subject] > size {
			t.Fatalf("subject %s exceeded its size: %d > %d", subject, perSubject[subject], size)
		}
	}

	// Best-effort total: never above the target.
	if len(sess.Questions) > randomMixTarget {
		t.Fatalf("expected at most %d questions, got %d", randomMixTarget, len(sess.Questions))
	}
}

func TestRandomMixSmallBankTakesEverything(t *testing.T) {
	bank := testBank(map[string]int{"A": 3, "B": 4})
	svc := NewQuizService(bank, zap.NewNop())

	sess := entities.NewQuizSession(1, 1)
	if err := svc.BeginRandomMix(sess); err != nil {
		t.Fatalf("BeginRandomMix: %v", err)
	}

	if got := len(sess.Questions); got != 7 {
		t.Fatalf("expected all 7 questions, got %d", got)
	}
}

func TestRandomMixEmptyBank(t *testing.T) {
	svc := NewQuizService(entities.NewQuestionBank(), zap.NewNop())

	sess := entities.NewQuizSession(1, 1)
	if err := svc.BeginRandomMix(sess); err == nil {
		t.Fatal("expected error for empty bank")
	}
}
