package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

// BatchSize is the number of questions presented together before the user
// may advance.
const BatchSize = 10

// RandomMixSubject is the synthetic subject label for the stratified
// random-mix selection.
const RandomMixSubject = "Random Mix"

var (
	ErrNoQuestions        = errors.New("no questions available")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrBatchNotStarted    = errors.New("no batch in progress")
)

// QuizService owns the quiz session state machine: subject selection,
// question ordering, batch windows, idempotent scoring and completion
// detection. The question bank is shared read-only across all sessions.
type QuizService struct {
	bank   *entities.QuestionBank
	logger *zap.Logger
	rng    *rand.Rand
}

// NewQuizService creates a quiz service over an immutable question bank.
func NewQuizService(bank *entities.QuestionBank, logger *zap.Logger) *QuizService {
	return &QuizService{
		bank:   bank,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Subjects returns the selectable subject names.
func (s *QuizService) Subjects() []string {
	return s.bank.Subjects()
}

// HasQuestions reports whether any quiz can be started at all.
func (s *QuizService) HasQuestions() bool {
	return !s.bank.Empty()
}

// BeginSubject starts the quiz of a named subject on a subject-selection
// session: the session receives a shuffled copy of the subject's questions
// and enters the first batch.
func (s *QuizService) BeginSubject(sess *entities.QuizSession, subject string) error {
	questions := s.bank.Questions(subject)
	if len(questions) == 0 {
		return fmt.Errorf("%w: %q", ErrSubjectNotFound, subject)
	}

	snapshot := append([]entities.Question(nil), questions...)
	s.rng.Shuffle(len(snapshot), func(i, j int) {
		snapshot[i], snapshot[j] = snapshot[j], snapshot[i]
	})

	s.begin(sess, subject, snapshot)
	return nil
}

// BeginRandomMix starts a quiz over a proportional stratified sample across
// all subjects.
func (s *QuizService) BeginRandomMix(sess *entities.QuizSession) error {
	questions := s.randomMix()
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	s.begin(sess, RandomMixSubject, questions)
	return nil
}

func (s *QuizService) begin(sess *entities.QuizSession, subject string, questions []entities.Question) {
	sess.Subject = subject
	sess.Questions = questions
	sess.Cursor = 0
	sess.Score = 0
	sess.Credited = make(map[int]struct{})
	s.startBatch(sess)

	s.logger.Info("quiz started",
		zap.Int64("user_id", sess.UserID),
		zap.String("subject", subject),
		zap.Int("questions", len(questions)),
	)
}

// startBatch opens the next contiguous batch window at the cursor and
// advances the cursor past it.
func (s *QuizService) startBatch(sess *entities.QuizSession) {
	end := sess.Cursor + BatchSize
	if end > len(sess.Questions) {
		end = len(sess.Questions)
	}

	batch := make([]int, 0, end-sess.Cursor)
	for i := sess.Cursor; i < end; i++ {
		batch = append(batch, i)
	}

	sess.CurrentBatch = batch
	sess.AnsweredInBatch = make(map[int]struct{})
	sess.Cursor = end
	sess.State = entities.StateInBatch
}

// BatchQuestion pairs a question with its global index for presentation.
type BatchQuestion struct {
	Index    int
	Question entities.Question
}

// CurrentBatch returns the in-flight batch as presentable questions.
func (s *QuizService) CurrentBatch(sess *entities.QuizSession) []BatchQuestion {
	out := make([]BatchQuestion, 0, len(sess.CurrentBatch))
	for _, idx := range sess.CurrentBatch {
		out = append(out, BatchQuestion{Index: idx, Question: sess.Questions[idx]})
	}
	return out
}

// AnswerResult describes the outcome of one answer submission. Labels carry
// the full option text, never bare letters.
type AnswerResult struct {
	Correct      bool
	ChosenLabel  string
	CorrectLabel string
	OutOfWindow  bool // stale answer for a question outside the in-flight batch
	BatchDone    bool // the in-flight batch just became fully answered
	QuizDone     bool // the final batch just became fully answered
	Score        int
	Total        int
}

// Answer records an answer to the question with global index qid.
//
// Scoring is idempotent: a question is credited at most once, on its first
// correct answer, regardless of how many times or in which order it is
// re-answered. An answer to a question outside the in-flight batch (a stale
// callback) still scores idempotently but never triggers batch completion.
// An out-of-range qid is a structural error and returns
// ErrQuestionOutOfRange.
func (s *QuizService) Answer(sess *entities.QuizSession, qid int, letter string) (AnswerResult, error) {
	if qid < 0 || qid >= len(sess.Questions) {
		return AnswerResult{}, fmt.Errorf("%w: %d of %d", ErrQuestionOutOfRange, qid, len(sess.Questions))
	}

	letter = strings.ToUpper(letter)
	q := sess.Questions[qid]

	res := AnswerResult{
		Correct:      letter == q.Correct,
		ChosenLabel:  optionLabel(q, letter),
		CorrectLabel: optionLabel(q, q.Correct),
		Score:        sess.Score,
		Total:        len(sess.Questions),
	}

	inWindow := sess.InCurrentBatch(qid)
	if inWindow {
		if _, seen := sess.AnsweredInBatch[qid]; !seen {
			sess.AnsweredInBatch[qid] = struct{}{}
			s.logger.Info("answer recorded",
				zap.Int64("user_id", sess.UserID),
				zap.Int("qid", qid),
				zap.Bool("correct", res.Correct),
				zap.Int("batch_answered", len(sess.AnsweredInBatch)),
				zap.Int("batch_size", len(sess.CurrentBatch)),
			)
		}
	} else {
		res.OutOfWindow = true
		s.logger.Warn("answer outside current batch",
			zap.Int64("user_id", sess.UserID),
			zap.Int("qid", qid),
			zap.Ints("current_batch", sess.CurrentBatch),
		)
	}

	if res.Correct {
		if _, credited := sess.Credited[qid]; !credited {
			sess.Credited[qid] = struct{}{}
			sess.Score++
			res.Score = sess.Score
		}
	}

	// Completion is only driven by in-window answers while the batch is
	// actually in flight.
	if inWindow && sess.State == entities.StateInBatch && sess.BatchAnswered() {
		if sess.InFinalBatch() {
			sess.State = entities.StateCompleted
			res.QuizDone = true
			s.logger.Info("quiz completed",
				zap.Int64("user_id", sess.UserID),
				zap.String("subject", sess.Subject),
				zap.Int("score", sess.Score),
				zap.Int("total", len(sess.Questions)),
			)
		} else {
			sess.State = entities.StateAwaitingNext
			res.BatchDone = true
		}
	}

	res.Score = sess.Score
	return res, nil
}

// BatchAdvance describes the outcome of a next-batch request.
type BatchAdvance struct {
	Refused   bool // unanswered questions remain in the in-flight batch
	Remaining int  // unanswered count when refused
	Completed bool // no questions left beyond the in-flight batch
	Batch     []BatchQuestion
}

// NextBatch advances the session to the next batch window. A premature
// request while unanswered questions remain does not change state and
// reports how many answers are still missing.
func (s *QuizService) NextBatch(sess *entities.QuizSession) (BatchAdvance, error) {
	if len(sess.CurrentBatch) == 0 {
		return BatchAdvance{}, ErrBatchNotStarted
	}

	if !sess.BatchAnswered() {
		return BatchAdvance{Refused: true, Remaining: sess.RemainingInBatch()}, nil
	}

	if !sess.HasMore() {
		// The final batch normally completes the quiz at answer time;
		// this is reached only on a duplicate "next" delivery.
		sess.State = entities.StateCompleted
		return BatchAdvance{Completed: true}, nil
	}

	s.startBatch(sess)
	s.logger.Info("next batch started",
		zap.Int64("user_id", sess.UserID),
		zap.Ints("batch", sess.CurrentBatch),
	)

	return BatchAdvance{Batch: s.CurrentBatch(sess)}, nil
}

// optionLabel returns the full option text for a letter, or the bare letter
// in parentheses when the letter matches no option.
func optionLabel(q entities.Question, letter string) string {
	if opt, ok := q.OptionByLetter(letter); ok {
		return fmt.Sprintf("%s) %s", opt.Letter, opt.Label)
	}
	return "(" + letter + ")"
}
