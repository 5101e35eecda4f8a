package entities

import (
	"errors"
	"fmt"
)

// OptionsPerQuestion is the number of answer options every question carries.
const OptionsPerQuestion = 4

var (
	ErrWrongOptionCount    = errors.New("question must have exactly 4 options")
	ErrCorrectLetterAbsent = errors.New("correct letter is not among the options")
)

// Option is a single answer option: an uppercase letter and its label text.
type Option struct {
	Letter string // single uppercase letter, e.g. "A"
	Label  string // option text without the letter prefix
}

// Question is an immutable multiple-choice question.
type Question struct {
	Text    string
	Options []Option // exactly OptionsPerQuestion entries, parse order
	Correct string   // uppercase letter of the correct option
}

// OptionByLetter returns the option matching the given uppercase letter.
func (q Question) OptionByLetter(letter string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Letter == letter {
			return opt, true
		}
	}
	return Option{}, false
}

// CorrectOption returns the correct option of the question.
func (q Question) CorrectOption() Option {
	opt, _ := q.OptionByLetter(q.Correct)
	return opt
}

// Validate checks the question invariants: exactly four options and the
// correct letter present among them.
func (q Question) Validate() error {
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("%w: got %d", ErrWrongOptionCount, len(q.Options))
	}
	if _, ok := q.OptionByLetter(q.Correct); !ok {
		return fmt.Errorf("%w: %q", ErrCorrectLetterAbsent, q.Correct)
	}
	return nil
}

// QuestionBank holds all loaded subjects and their questions. It is built
// once at startup and never mutated afterwards, so concurrent reads from
// multiple sessions need no locking.
type QuestionBank struct {
	subjects map[string][]Question
	order    []string // subjects in corpus order
}

// NewQuestionBank creates an empty bank.
func NewQuestionBank() *QuestionBank {
	return &QuestionBank{subjects: make(map[string][]Question)}
}

// AddSubject registers a subject with no questions yet. Adding an already
// known subject is a no-op.
func (b *QuestionBank) AddSubject(name string) {
	if _, ok := b.subjects[name]; ok {
		return
	}
	b.subjects[name] = nil
	b.order = append(b.order, name)
}

// AddQuestion appends a question to a subject, registering the subject if
// needed.
func (b *QuestionBank) AddQuestion(subject string, q Question) {
	b.AddSubject(subject)
	b.subjects[subject] = append(b.subjects[subject], q)
}

// Subjects returns subject names in corpus order, skipping subjects that
// ended up with no questions.
func (b *QuestionBank) Subjects() []string {
	out := make([]string, 0, len(b.order))
	for _, name := range b.order {
		if len(b.subjects[name]) > 0 {
			out = append(out, name)
		}
	}
	return out
}

// Questions returns the questions of a subject. The returned slice is the
// bank's own storage: callers must copy before mutating.
func (b *QuestionBank) Questions(subject string) []Question {
	return b.subjects[subject]
}

// Total returns the number of questions across all subjects.
func (b *QuestionBank) Total() int {
	total := 0
	for _, qs := range b.subjects {
		total += len(qs)
	}
	return total
}

// Empty reports whether the bank contains no questions at all.
func (b *QuestionBank) Empty() bool {
	return b.Total() == 0
}
