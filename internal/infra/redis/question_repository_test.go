package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quizbox/internal/domain"
	"quizbox/internal/infra/memory"
)

func newMiniredisClient(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	client := newMiniredisClient(t)
	loader := &countingLoader{loader: memory.NewStaticLoader(sampleBank())}
	repo := NewQuestionRepository(client, loader, 5*time.Minute)

	questions, err := repo.GetQuestions(context.Background())
	if err != nil {
		t.Fatalf("get questions: %v", err)
	}
	if len(questions) != 1 || loader.calls != 1 {
		t.Fatalf("expected one loader call, got %d (questions %d)", loader.calls, len(questions))
	}

	// Second fetch must come from the Redis blob.
	questions, err = repo.GetQuestions(context.Background())
	if err != nil {
		t.Fatalf("get questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if questions[0].Correct != 1 {
		t.Fatalf("cached question lost data: %+v", questions[0])
	}
}

type countingLoader struct {
	loader memory.QuestionLoader
	calls  int
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.loader.LoadQuestions(ctx)
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
