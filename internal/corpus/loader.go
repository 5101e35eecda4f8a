// Package corpus parses the plain-text question corpus into the immutable
// question bank served to quiz sessions.
package corpus

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

const (
	subjectPrefix = "Subject:"
	answerPrefix  = "Answer:"

	// A question block: question text, four options, answer line.
	questionBlockLines = 2 + entities.OptionsPerQuestion
)

// Load reads the corpus file and parses it into a question bank.
func Load(path string, logger *zap.Logger) (*entities.QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	return Parse(string(data), logger), nil
}

// Parse builds a question bank from raw corpus text.
//
// The corpus is a sequence of blank-line-delimited blocks. A block whose
// first line is "Subject: <name>" opens a subject context; any other block
// is one question belonging to the open context. Malformed blocks are
// skipped with a warning; parsing is best-effort and never aborts the load.
func Parse(content string, logger *zap.Logger) *entities.QuestionBank {
	bank := entities.NewQuestionBank()

	content = strings.ReplaceAll(content, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(content), "\n\n")

	currentSubject := ""
	for _, block := range blocks {
		lines := splitLines(block)
		if len(lines) == 0 {
			continue
		}

		if strings.HasPrefix(lines[0], subjectPrefix) {
			name := strings.TrimSpace(strings.TrimPrefix(lines[0], subjectPrefix))
			if name == "" {
				logger.Warn("empty subject name, block dropped", zap.String("block", block))
				currentSubject = ""
				continue
			}
			currentSubject = name
			bank.AddSubject(name)
			logger.Info("found subject", zap.String("subject", name))
			continue
		}

		if currentSubject == "" {
			logger.Warn("question block without subject context, skipped",
				zap.String("block", block),
			)
			continue
		}

		q, err := parseQuestion(lines)
		if err != nil {
			logger.Warn("malformed question block, skipped",
				zap.String("subject", currentSubject),
				zap.String("block", block),
				zap.Error(err),
			)
			continue
		}

		bank.AddQuestion(currentSubject, q)
	}

	subjects := bank.Subjects()
	logger.Info("corpus loaded",
		zap.Strings("subjects", subjects),
		zap.Int("questions", bank.Total()),
	)
	if bank.Empty() {
		logger.Warn("no questions loaded from corpus")
	}

	return bank
}

// parseQuestion parses one question block: line 0 is the question text,
// lines 1-4 are options of the form "<letter>) <label>", line 5 is
// "Answer: <letter>".
func parseQuestion(lines []string) (entities.Question, error) {
	if len(lines) < questionBlockLines {
		return entities.Question{}, fmt.Errorf("expected at least %d lines, got %d", questionBlockLines, len(lines))
	}

	q := entities.Question{Text: lines[0]}

	for _, line := range lines[1 : 1+entities.OptionsPerQuestion] {
		opt, err := parseOption(line)
		if err != nil {
			return entities.Question{}, err
		}
		q.Options = append(q.Options, opt)
	}

	answerLine := lines[1+entities.OptionsPerQuestion]
	if !strings.HasPrefix(answerLine, answerPrefix) {
		return entities.Question{}, fmt.Errorf("malformed answer line: %q", answerLine)
	}

	letter := strings.TrimSpace(strings.TrimPrefix(answerLine, answerPrefix))
	if !isSingleLetter(letter) {
		return entities.Question{}, fmt.Errorf("invalid correct answer letter: %q", letter)
	}
	q.Correct = strings.ToUpper(letter)

	if err := q.Validate(); err != nil {
		return entities.Question{}, err
	}
	return q, nil
}

// parseOption parses an option line "<letter>) <label>". Letters are
// normalized to uppercase.
func parseOption(line string) (entities.Option, error) {
	if len(line) < 3 || line[1] != ')' || !isSingleLetter(line[:1]) {
		return entities.Option{}, fmt.Errorf("malformed option line: %q", line)
	}

	return entities.Option{
		Letter: strings.ToUpper(line[:1]),
		Label:  strings.TrimSpace(line[2:]),
	}, nil
}

func isSingleLetter(s string) bool {
	runes := []rune(s)
	return len(runes) == 1 && unicode.IsLetter(runes[0])
}

func splitLines(block string) []string {
	raw := strings.Split(strings.TrimSpace(block), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
