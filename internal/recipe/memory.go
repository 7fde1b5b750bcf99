// Package recipe provides recipe source implementations.
package recipe

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*MemorySource)(nil)

// MemorySource holds recipes in memory. Safe for concurrent reads.
type MemorySource struct {
	mu      sync.RWMutex
	recipes map[string]*domain.Recipe
	log     *logger.Logger
}

// NewMemorySource creates a recipe source preloaded with the sample
// catalog.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{
		recipes: make(map[string]*domain.Recipe),
		log:     log,
	}
	src.seed()
	return src
}

// Get returns a recipe by ID.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// ListAll returns every recipe, sorted by title. Used by the fuzzy
// name matcher, which needs the full candidate list.
func (s *MemorySource) ListAll(ctx context.Context) ([]*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Search filters recipes by free-text query (title substring), category,
// and dietary tag. Empty arguments match everything.
func (s *MemorySource) Search(ctx context.Context, query, category, dietary string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)

	var out []domain.RecipeSummary
	for _, r := range s.recipes {
		if query != "" && !strings.Contains(strings.ToLower(r.Title), query) {
			continue
		}
		if category != "" && !strings.EqualFold(r.Category, category) {
			continue
		}
		if dietary != "" && !r.HasTag(dietary) {
			continue
		}
		out = append(out, domain.RecipeSummary{
			ID:          r.ID,
			Title:       r.Title,
			Category:    r.Category,
			DietaryTags: r.DietaryTags,
			Description: r.Description,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })

	s.log.Debug("search q=%q category=%q dietary=%q -> %d recipes", query, category, dietary, len(out))
	return out, nil
}
