package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kfarah/kitchenbuddy/internal/domain"
)

// maxAudioBytes caps uploaded audio clips.
const maxAudioBytes = 10 << 20

type ctxKey int

const userKey ctxKey = 0

// requireUser extracts the caller identity from the X-User-ID header.
// The frontend sets it after login; requests without it are rejected.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, userID)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userKey).(string)
	return id
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVoiceCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Command string `json:"command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Command == "" {
		writeError(w, http.StatusBadRequest, "command is required")
		return
	}

	resp := s.pipeline.HandleText(r.Context(), userID(r), req.Command)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	audio, err := readAudio(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(audio) == 0 {
		writeError(w, http.StatusBadRequest, "no audio provided")
		return
	}

	resp := s.pipeline.HandleAudio(r.Context(), userID(r), audio)
	writeJSON(w, http.StatusOK, resp)
}

// readAudio accepts either a multipart "audio" part or a raw body.
func readAudio(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxAudioBytes); err == nil {
		file, _, err := r.FormFile("audio")
		if err != nil {
			return nil, errors.New("missing audio file")
		}
		defer file.Close()
		return io.ReadAll(io.LimitReader(file, maxAudioBytes))
	}
	return io.ReadAll(io.LimitReader(r.Body, maxAudioBytes))
}

func (s *Server) handleVoiceStatus(w http.ResponseWriter, r *http.Request) {
	// Server-side speech-to-text is not configured; clients transcribe
	// in the browser and send text.
	status := map[string]any{
		"voice_available": true,
		"transcription":   false,
		"ai_enabled":      s.responder != nil,
		"active_timers":   s.timers.Count(),
		"session":         nil,
	}
	if sess, err := s.sessions.ActiveForUser(r.Context(), userID(r)); err == nil {
		status["session"] = sessionView(sess)
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleAIQuery(w http.ResponseWriter, r *http.Request) {
	if s.responder == nil {
		writeError(w, http.StatusServiceUnavailable, "AI assistant not available")
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	rctx := domain.ResponderContext{UserID: userID(r)}
	if sess, err := s.sessions.ActiveForUser(r.Context(), userID(r)); err == nil {
		rctx.RecipeID = sess.RecipeID
		rctx.CurrentStep = sess.CurrentStep
	}

	answer, err := s.responder.Respond(r.Context(), req.Query, rctx)
	if err != nil {
		s.log.Error("ai query failed: %v", err)
		writeError(w, http.StatusBadGateway, "AI query failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": answer})
}

func (s *Server) handleTimerStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status, ok := s.timers.Status(id)
	if !ok {
		writeError(w, http.StatusNotFound, "timer not found")
		return
	}
	formatted, _ := s.timers.RemainingFormatted(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":                id,
		"active":            status.Active,
		"duration_minutes":  status.DurationMinutes,
		"remaining_seconds": status.RemainingSeconds,
		"remaining_minutes": status.RemainingMinutes,
		"remaining":         formatted,
	})
}

func (s *Server) handleTimerStop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.timers.Stop(r.Context(), id) {
		writeError(w, http.StatusNotFound, "timer not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "stopped": true})
}

func (s *Server) handleRecipeList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.recipes.Search(r.Context(), "", "", "")
	if err != nil {
		s.log.Error("listing recipes: %v", err)
		writeError(w, http.StatusInternalServerError, "could not list recipes")
		return
	}
	writeJSON(w, http.StatusOK, summaryViews(summaries))
}

func (s *Server) handleRecipeGet(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.recipes.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	if err != nil {
		s.log.Error("loading recipe: %v", err)
		writeError(w, http.StatusInternalServerError, "could not load recipe")
		return
	}
	writeJSON(w, http.StatusOK, recipeView(recipe))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summaries, err := s.recipes.Search(r.Context(), q.Get("q"), q.Get("category"), q.Get("dietary"))
	if err != nil {
		s.log.Error("searching recipes: %v", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, summaryViews(summaries))
}
