package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validPack = `
questions:
  - text: "What is 2 + 2?"
    options: ["3", "4", "5", "6"]
    correct: 1
    time_limit: 15s
  - text: "Capital of France?"
    options: ["Lyon", "Nice", "Paris", "Lille"]
    correct: 2
`

func writePack(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write pack: %v", err)
	}
	return path
}

func TestLoadQuestionPack(t *testing.T) {
	loader := NewQuestionLoader(writePack(t, validPack))

	questions, err := loader.LoadQuestions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].TimeLimit != 15*time.Second {
		t.Fatalf("expected parsed time limit, got %s", questions[0].TimeLimit)
	}
	if questions[1].Correct != 2 || questions[1].TimeLimit != 0 {
		t.Fatalf("unexpected second question: %+v", questions[1])
	}
}

func TestLoadRejectsBadOptionCount(t *testing.T) {
	loader := NewQuestionLoader(writePack(t, `
questions:
  - text: "Too few"
    options: ["a", "b"]
    correct: 0
`))
	if _, err := loader.LoadQuestions(context.Background()); err == nil {
		t.Fatalf("expected error for wrong option count")
	}
}

func TestLoadRejectsOutOfRangeCorrect(t *testing.T) {
	loader := NewQuestionLoader(writePack(t, `
questions:
  - text: "Bad index"
    options: ["a", "b", "c", "d"]
    correct: 7
`))
	if _, err := loader.LoadQuestions(context.Background()); err == nil {
		t.Fatalf("expected error for out-of-range correct index")
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewQuestionLoader(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := loader.LoadQuestions(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
