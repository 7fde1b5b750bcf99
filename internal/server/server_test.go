package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/intent"
	"github.com/kfarah/kitchenbuddy/internal/logger"
	"github.com/kfarah/kitchenbuddy/internal/pipeline"
	"github.com/kfarah/kitchenbuddy/internal/recipe"
	"github.com/kfarah/kitchenbuddy/internal/session"
	"github.com/kfarah/kitchenbuddy/internal/storage"
	"github.com/kfarah/kitchenbuddy/internal/timer"
)

func newTestServer(t *testing.T) (*Server, *timer.Manager) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	recipes := recipe.NewMemorySource(log)
	store := storage.NewMemoryStore(log)
	timers := timer.NewManager(nil, log, timer.WithMinuteScale(10*time.Millisecond))
	t.Cleanup(timers.StopAll)

	controller := session.New(recipes, store, timers, log)
	pipe := pipeline.New(intent.NewClassifier(log), controller, log,
		pipeline.WithCommandLog(storage.NewMemoryCommandLog()),
	)
	return New(pipe, recipes, store, timers, log), timers
}

func do(t *testing.T, h http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestRequiresUserHeader(t *testing.T) {
	s, _ := newTestServer(t)
	r := s.Router()

	if w := do(t, r, http.MethodGet, "/api/recipes", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	// /health is open.
	if w := do(t, r, http.MethodGet, "/health", "", ""); w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}

func TestVoiceCommand(t *testing.T) {
	s, _ := newTestServer(t)
	r := s.Router()

	w := do(t, r, http.MethodPost, "/api/voice/command", "u1", `{"command":"start recipe for butter chicken"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp domain.Response
	decode(t, w, &resp)
	if !resp.Success || resp.Intent != "start_recipe" {
		t.Errorf("response = %+v", resp)
	}
	if resp.Redirect != "/recipes/butter-chicken/steps/1" {
		t.Errorf("redirect = %q", resp.Redirect)
	}
}

func TestVoiceCommandValidation(t *testing.T) {
	s, _ := newTestServer(t)
	r := s.Router()

	if w := do(t, r, http.MethodPost, "/api/voice/command", "u1", `{"command":""}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty command status = %d, want 400", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/voice/command", "u1", `not json`); w.Code != http.StatusBadRequest {
		t.Errorf("bad JSON status = %d, want 400", w.Code)
	}
}

func TestTranscribeWithoutBackend(t *testing.T) {
	s, _ := newTestServer(t)
	r := s.Router()

	w := do(t, r, http.MethodPost, "/api/voice/transcribe", "u1", "rawaudiobytes")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp domain.Response
	decode(t, w, &resp)
	if resp.Success {
		t.Error("transcription succeeded without a backend")
	}
}

func TestVoiceStatus(t *testing.T) {
	s, timers := newTestServer(t)
	r := s.Router()

	timers.Start(context.Background(), "t1", 5, nil)

	w := do(t, r, http.MethodGet, "/api/voice/status", "u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var status map[string]any
	decode(t, w, &status)
	if status["voice_available"] != true {
		t.Error("voice_available = false")
	}
	if status["transcription"] != false {
		t.Error("transcription advertised without a speech backend")
	}
	if status["active_timers"] != float64(1) {
		t.Errorf("active_timers = %v, want 1", status["active_timers"])
	}
	if status["ai_enabled"] != false {
		t.Error("ai_enabled = true with no responder")
	}
}

func TestTimerEndpoints(t *testing.T) {
	s, timers := newTestServer(t)
	r := s.Router()

	if w := do(t, r, http.MethodGet, "/api/timers/nope", "u1", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown timer status = %d, want 404", w.Code)
	}

	timers.Start(context.Background(), "t1", 5, nil)

	w := do(t, r, http.MethodGet, "/api/timers/t1", "u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("timer status = %d", w.Code)
	}
	var st map[string]any
	decode(t, w, &st)
	if st["active"] != true {
		t.Error("timer not reported active")
	}
	if _, ok := st["remaining"].(string); !ok {
		t.Error("remaining not formatted as string")
	}

	if w := do(t, r, http.MethodDelete, "/api/timers/t1", "u1", ""); w.Code != http.StatusOK {
		t.Errorf("stop status = %d, want 200", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/api/timers/t1", "u1", ""); w.Code != http.StatusNotFound {
		t.Errorf("second stop status = %d, want 404", w.Code)
	}
}

func TestRecipeEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	r := s.Router()

	w := do(t, r, http.MethodGet, "/api/recipes", "u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []recipeSummaryView
	decode(t, w, &list)
	if len(list) != 5 {
		t.Errorf("recipes = %d, want 5", len(list))
	}

	w = do(t, r, http.MethodGet, "/api/recipes/greek-salad", "u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var full fullRecipeView
	decode(t, w, &full)
	if full.Title != "Greek Salad" || len(full.Steps) != 7 {
		t.Errorf("recipe = %q with %d steps", full.Title, len(full.Steps))
	}
	if full.CookingMinutes != 15 {
		t.Errorf("cooking_minutes = %d, want 15", full.CookingMinutes)
	}

	if w := do(t, r, http.MethodGet, "/api/recipes/nope", "u1", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown recipe status = %d, want 404", w.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	r := s.Router()

	w := do(t, r, http.MethodGet, "/api/search?dietary=vegan", "u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d", w.Code)
	}
	var list []recipeSummaryView
	decode(t, w, &list)
	if len(list) != 2 {
		t.Errorf("vegan recipes = %d, want 2", len(list))
	}
}

func TestAIQueryWithoutResponder(t *testing.T) {
	s, _ := newTestServer(t)
	r := s.Router()

	if w := do(t, r, http.MethodPost, "/api/ai/query", "u1", `{"query":"why"}`); w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
