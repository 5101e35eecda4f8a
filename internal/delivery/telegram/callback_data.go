package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Callback tokens. Answer and subject tokens carry "|"-separated parameters.
const (
	tokenSubjectPrefix = "subj"
	tokenAnswerPrefix  = "ans"
	tokenRandom        = "random"
	tokenNext          = "next"

	tokenSeparator = "|"
)

var errBadCallback = errors.New("malformed callback data")

// callbackEvent is a typed inbound callback. Tokens are parsed once at the
// boundary; the rest of the handler dispatches on the variant, never on raw
// string prefixes.
type callbackEvent interface {
	isCallbackEvent()
}

// subjectEvent selects a named subject for a new quiz.
type subjectEvent struct {
	Subject string
}

// randomMixEvent starts a random-mix quiz across all subjects.
type randomMixEvent struct{}

// answerEvent submits an answer letter for a question by global index.
type answerEvent struct {
	QuestionIndex int
	Letter        string
}

// nextBatchEvent requests the next question batch.
type nextBatchEvent struct{}

func (subjectEvent) isCallbackEvent()   {}
func (randomMixEvent) isCallbackEvent() {}
func (answerEvent) isCallbackEvent()    {}
func (nextBatchEvent) isCallbackEvent() {}

// decodeCallback parses raw callback data into a typed event.
func decodeCallback(data string) (callbackEvent, error) {
	switch data {
	case tokenRandom:
		return randomMixEvent{}, nil
	case tokenNext:
		return nextBatchEvent{}, nil
	}

	parts := strings.Split(data, tokenSeparator)
	switch parts[0] {
	case tokenSubjectPrefix:
		if len(parts) != 2 || parts[1] == "" {
			return nil, fmt.Errorf("%w: %q", errBadCallback, data)
		}
		return subjectEvent{Subject: parts[1]}, nil

	case tokenAnswerPrefix:
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q", errBadCallback, data)
		}
		qid, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errBadCallback, data)
		}
		if parts[2] == "" {
			return nil, fmt.Errorf("%w: %q", errBadCallback, data)
		}
		return answerEvent{QuestionIndex: qid, Letter: parts[2]}, nil
	}

	return nil, fmt.Errorf("%w: %q", errBadCallback, data)
}

// buildSubjectCallback builds the token for selecting a subject.
func buildSubjectCallback(subject string) string {
	return tokenSubjectPrefix + tokenSeparator + subject
}

// buildAnswerCallback builds the token for answering a question.
func buildAnswerCallback(qid int, letter string) string {
	return tokenAnswerPrefix + tokenSeparator + strconv.Itoa(qid) + tokenSeparator + letter
}
