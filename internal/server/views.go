package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kfarah/kitchenbuddy/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// View types shape domain values for the JSON API.

type stepView struct {
	Number      int    `json:"number"`
	Instruction string `json:"instruction"`
}

type fullRecipeView struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Category       string     `json:"category"`
	Ingredients    string     `json:"ingredients"`
	DietaryTags    []string   `json:"dietary_tags"`
	CookingMinutes int        `json:"cooking_minutes"`
	Difficulty     string     `json:"difficulty"`
	Description    string     `json:"description"`
	Steps          []stepView `json:"steps"`
}

func recipeView(r *domain.Recipe) fullRecipeView {
	steps := make([]stepView, len(r.Steps))
	for i, st := range r.Steps {
		steps[i] = stepView{Number: st.Number, Instruction: st.Instruction}
	}
	return fullRecipeView{
		ID:             r.ID,
		Title:          r.Title,
		Category:       r.Category,
		Ingredients:    r.Ingredients,
		DietaryTags:    r.DietaryTags,
		CookingMinutes: int(r.CookingTime / time.Minute),
		Difficulty:     r.Difficulty,
		Description:    r.Description,
		Steps:          steps,
	}
}

type recipeSummaryView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	DietaryTags []string `json:"dietary_tags"`
	Description string   `json:"description"`
}

func summaryViews(summaries []domain.RecipeSummary) []recipeSummaryView {
	out := make([]recipeSummaryView, len(summaries))
	for i, s := range summaries {
		out[i] = recipeSummaryView{
			ID:          s.ID,
			Title:       s.Title,
			Category:    s.Category,
			DietaryTags: s.DietaryTags,
			Description: s.Description,
		}
	}
	return out
}

type cookingSessionView struct {
	ID          string `json:"id"`
	RecipeID    string `json:"recipe_id"`
	CurrentStep int    `json:"current_step"`
	StartedAt   string `json:"started_at"`
}

func sessionView(s *domain.CookingSession) cookingSessionView {
	return cookingSessionView{
		ID:          s.ID,
		RecipeID:    s.RecipeID,
		CurrentStep: s.CurrentStep,
		StartedAt:   s.StartedAt.Format(time.RFC3339),
	}
}
