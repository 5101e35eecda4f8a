package corpus

import (
	"testing"

	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

const validCorpus = `Subject: Math

What is 2+2?
a) 3
b) 4
c) 5
d) 6
Answer: b

What is 3*3?
a) 9
b) 6
c) 12
d) 3
Answer: a

Subject: History

Who was first?
a) Alice
b) Bob
c) Carol
d) Dave
Answer: c
`

func TestParseValidCorpus(t *testing.T) {
	bank := Parse(validCorpus, zap.NewNop())

	subjects := bank.Subjects()
	if len(subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %d: %v", len(subjects), subjects)
	}
	if subjects[0] != "Math" || subjects[1] != "History" {
		t.Fatalf("unexpected subject order: %v", subjects)
	}

	if got := len(bank.Questions("Math")); got != 2 {
		t.Fatalf("expected 2 Math questions, got %d", got)
	}
	if got := len(bank.Questions("History")); got != 1 {
		t.Fatalf("expected 1 History question, got %d", got)
	}

	for _, subject := range subjects {
		for _, q := range bank.Questions(subject) {
			if len(q.Options) != entities.OptionsPerQuestion {
				t.Fatalf("question %q: expected 4 options, got %d", q.Text, len(q.Options))
			}
			if _, ok := q.OptionByLetter(q.Correct); !ok {
				t.Fatalf("question %q: correct letter %q not among options", q.Text, q.Correct)
			}
		}
	}
}

func TestParseNormalizesLettersToUppercase(t *testing.T) {
	bank := Parse(validCorpus, zap.NewNop())

	q := bank.Questions("Math")[0]
	if q.Correct != "B" {
		t.Fatalf("expected correct letter B, got %q", q.Correct)
	}
	for i, want := range []string{"A", "B", "C", "D"} {
		if q.Options[i].Letter != want {
			t.Fatalf("option %d: expected letter %s, got %q", i, want, q.Options[i].Letter)
		}
	}
	if q.Options[1].Label != "4" {
		t.Fatalf("expected label without prefix, got %q", q.Options[1].Label)
	}
}

func TestParseBlockWithoutSubjectContext(t *testing.T) {
	corpus := `What is orphaned?
a) one
b) two
c) three
d) four
Answer: a

Subject: Real

What survives?
a) yes
b) no
c) maybe
d) never
Answer: a
`
	bank := Parse(corpus, zap.NewNop())

	if got := bank.Total(); got != 1 {
		t.Fatalf("expected only the in-context question, got %d", got)
	}
	if got := len(bank.Questions("Real")); got != 1 {
		t.Fatalf("expected 1 question in Real, got %d", got)
	}
}

func TestParseEmptySubjectNameDropsContext(t *testing.T) {
	corpus := `Subject:

Orphan after empty subject?
a) one
b) two
c) three
d) four
Answer: a
`
	bank := Parse(corpus, zap.NewNop())

	if !bank.Empty() {
		t.Fatalf("expected empty bank, got %d questions", bank.Total())
	}
}

func TestParseRejectsMalformedBlocks(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{
			name:  "too few lines",
			block: "Short?\na) one\nAnswer: a",
		},
		{
			name:  "malformed option line",
			block: "Bad option?\na) one\nbad two\nc) three\nd) four\nAnswer: a",
		},
		{
			name:  "malformed answer line",
			block: "Bad answer?\na) one\nb) two\nc) three\nd) four\nAnsw: a",
		},
		{
			name:  "answer letter not single alpha",
			block: "Bad letter?\na) one\nb) two\nc) three\nd) four\nAnswer: ab",
		},
		{
			name:  "answer letter not among options",
			block: "Absent letter?\na) one\nb) two\nc) three\nd) four\nAnswer: e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corpus := "Subject: S\n\n" + tt.block + "\n\nGood one?\na) one\nb) two\nc) three\nd) four\nAnswer: a\n"
			bank := Parse(corpus, zap.NewNop())

			// The malformed block is skipped, the valid one survives.
			if got := bank.Total(); got != 1 {
				t.Fatalf("expected 1 question, got %d", got)
			}
		})
	}
}

func TestParseEmptyCorpus(t *testing.T) {
	if bank := Parse("", zap.NewNop()); !bank.Empty() {
		t.Fatal("expected empty bank for empty corpus")
	}
	if bank := Parse("   \n\n  ", zap.NewNop()); !bank.Empty() {
		t.Fatal("expected empty bank for whitespace corpus")
	}
}

func TestParseWindowsLineEndings(t *testing.T) {
	corpus := "Subject: S\r\n\r\nQ?\r\na) one\r\nb) two\r\nc) three\r\nd) four\r\nAnswer: a\r\n"
	bank := Parse(corpus, zap.NewNop())

	if got := bank.Total(); got != 1 {
		t.Fatalf("expected 1 question, got %d", got)
	}
}
