package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"quizbox/internal/domain"
)

// QuestionLoader reads a YAML question pack from disk.
//
// Pack format:
//
//	questions:
//	  - text: "What is 2 + 2?"
//	    options: ["3", "4", "5", "6"]
//	    correct: 1
//	    time_limit: 20s
type QuestionLoader struct {
	path string
}

func NewQuestionLoader(path string) *QuestionLoader {
	return &QuestionLoader{path: path}
}

type pack struct {
	Questions []domain.Question `yaml:"questions"`
}

func (l *QuestionLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read question pack: %w", err)
	}
	var p pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse question pack: %w", err)
	}
	if len(p.Questions) == 0 {
		return nil, domain.ErrNoQuestions
	}
	for i, q := range p.Questions {
		if len(q.Options) != domain.OptionCount {
			return nil, fmt.Errorf("question %d: expected %d options, got %d", i, domain.OptionCount, len(q.Options))
		}
		if q.Correct < 0 || q.Correct >= domain.OptionCount {
			return nil, fmt.Errorf("question %d: correct index %d out of range", i, q.Correct)
		}
	}
	return p.Questions, nil
}
