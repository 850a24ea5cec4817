package memory

import (
	"context"
	"testing"
	"time"

	"quizbox/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticLoader(sampleBank()),
	}
	repo := NewQuestionRepository(loader, time.Minute)

	if _, err := repo.GetQuestions(context.Background()); err != nil {
		t.Fatalf("get questions: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetQuestions(context.Background()); err != nil {
		t.Fatalf("get questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestStaticLoaderRejectsEmptyBank(t *testing.T) {
	loader := NewStaticLoader(nil)
	if _, err := loader.LoadQuestions(context.Background()); err != domain.ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx)
}

func sampleBank() []domain.Question {
	return []domain.Question{
		{
			Text:    "What is 2 + 2?",
			Options: []string{"3", "4", "5", "6"},
			Correct: 1,
		},
	}
}
