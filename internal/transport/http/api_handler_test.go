package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"quizbox/internal/app"
	"quizbox/internal/domain"
	"quizbox/internal/infra/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.GameService) {
	t.Helper()
	repo := memory.NewQuestionRepository(memory.NewStaticLoader(sampleBank()), time.Minute)
	service, err := app.NewGameService(context.Background(), "4821", repo, nil, app.DefaultRules(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	router := httprouter.New()
	NewAPIHandler(service, zerolog.Nop()).Register(router)
	wsHandler := NewWSHandler(service, zerolog.Nop())
	router.HandlerFunc(http.MethodGet, "/ws/host", wsHandler.ServeHostFeed)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, service
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestJoinAnswerStateFlow(t *testing.T) {
	server, _ := newTestServer(t)

	var joined joinResponse
	if code := getJSON(t, server.URL+"/api/join?pin=4821&name=Alice", &joined); code != http.StatusOK {
		t.Fatalf("join status %d", code)
	}
	if !joined.OK || joined.PlayerID == "" || joined.Icon == "" {
		t.Fatalf("unexpected join response: %+v", joined)
	}

	var ok okResponse
	if code := getJSON(t, server.URL+"/api/host/start", &ok); code != http.StatusOK {
		t.Fatalf("start status %d", code)
	}
	if code := getJSON(t, server.URL+"/api/host/next", &ok); code != http.StatusOK {
		t.Fatalf("next status %d", code)
	}

	if code := getJSON(t, server.URL+"/api/answer?pid="+joined.PlayerID+"&opt=1", &ok); code != http.StatusOK {
		t.Fatalf("answer status %d", code)
	}

	// Duplicate answer is rejected, not overwritten.
	var dup errResponse
	if code := getJSON(t, server.URL+"/api/answer?pid="+joined.PlayerID+"&opt=2", &dup); code != http.StatusConflict {
		t.Fatalf("duplicate answer status %d", code)
	}

	if code := getJSON(t, server.URL+"/api/host/reveal", &ok); code != http.StatusOK {
		t.Fatalf("reveal status %d", code)
	}

	var view domain.PlayerView
	if code := getJSON(t, server.URL+"/api/state?pid="+joined.PlayerID, &view); code != http.StatusOK {
		t.Fatalf("state status %d", code)
	}
	if view.Phase != domain.PhaseReveal || !view.MyCorrect || view.MyScore <= 0 {
		t.Fatalf("expected scored reveal view, got %+v", view)
	}
	if view.Correct != 1 {
		t.Fatalf("reveal must expose the correct option, got %d", view.Correct)
	}
}

func TestJoinRejectsWrongPIN(t *testing.T) {
	server, _ := newTestServer(t)

	var resp errResponse
	if code := getJSON(t, server.URL+"/api/join?pin=9999&name=Alice", &resp); code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrong pin, got %d", code)
	}
	if resp.OK || resp.Err == "" {
		t.Fatalf("expected error payload, got %+v", resp)
	}
}

func TestHostStateSnapshot(t *testing.T) {
	server, _ := newTestServer(t)

	var view domain.HostView
	if code := getJSON(t, server.URL+"/api/state", &view); code != http.StatusOK {
		t.Fatalf("state status %d", code)
	}
	if view.PIN != "4821" || view.Phase != domain.PhaseLobby {
		t.Fatalf("unexpected host view: %+v", view)
	}
	if view.QuestionVisible || view.QuestionText != "" {
		t.Fatalf("lobby must not leak question content: %+v", view)
	}
}

func TestUnknownHostCommand(t *testing.T) {
	server, _ := newTestServer(t)

	var resp errResponse
	if code := getJSON(t, server.URL+"/api/host/shuffle", &resp); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown command, got %d", code)
	}
}

func TestQREndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/qr")
	if err != nil {
		t.Fatalf("get qr: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("qr status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected png, got %s", ct)
	}
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
