package service

import (
	"math"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

// randomMixTarget is the combined question target for random-mix selection.
const randomMixTarget = 50

// randomMix builds a proportional stratified sample across all subjects.
//
// The target total is min(randomMixTarget, total available). Every non-empty
// subject contributes max(1, round(target * size/total)) questions, capped
// at its own size, sampled without replacement. Rounding may leave the
// combined total below the target; the sample is best-effort and never
// padded. The combined result is shuffled.
func (s *QuizService) randomMix() []entities.Question {
	total := s.bank.Total()
	if total == 0 {
		return nil
	}

	target := randomMixTarget
	if total < target {
		target = total
	}

	var mix []entities.Question
	for _, subject := range s.bank.Subjects() {
		questions := s.bank.Questions(subject)

		proportion := float64(len(questions)) / float64(total)
		count := int(math.Round(float64(target) * proportion))
		if count < 1 {
			count = 1
		}
		if count > len(questions) {
			count = len(questions)
		}

		mix = append(mix, s.sample(questions, count)...)
	}

	s.rng.Shuffle(len(mix), func(i, j int) {
		mix[i], mix[j] = mix[j], mix[i]
	})

	return mix
}

// sample returns count questions drawn without replacement. The input slice
// is never mutated.
func (s *QuizService) sample(questions []entities.Question, count int) []entities.Question {
	if count >= len(questions) {
		return append([]entities.Question(nil), questions...)
	}

	indices := s.rng.Perm(len(questions))[:count]
	out := make([]entities.Question, 0, count)
	for _, idx := range indices {
		out = append(out, questions[idx])
	}
	return out
}
