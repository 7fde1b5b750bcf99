package ai

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/logger"
)

// Compile-time interface check.
var _ domain.Responder = (*Responder)(nil)

const systemPrompt = `You are a helpful cooking assistant. Provide concise, practical advice for cooking questions. Keep responses under 100 words and use a friendly, encouraging tone. Focus on actionable tips and clear explanations.`

// complexKeywords mark queries worth the cost of a remote call. Anything
// else is answered from the local knowledge base.
var complexKeywords = []string{
	"why", "how", "explain", "suggest", "recommend", "substitute",
	"alternative", "healthy", "nutrition", "tips", "advice",
	"what can i cook", "ingredient", "technique",
}

var substitutions = map[string][]string{
	"butter": {"olive oil", "coconut oil", "applesauce"},
	"eggs":   {"flax seeds", "banana", "applesauce"},
	"milk":   {"almond milk", "soy milk", "oat milk"},
	"flour":  {"almond flour", "coconut flour", "gluten-free flour"},
	"sugar":  {"honey", "maple syrup", "stevia"},
	"salt":   {"herbs", "lemon juice", "vinegar"},
}

var cookingTips = []string{
	"Always read the recipe completely before starting",
	"Prep all ingredients before cooking (mise en place)",
	"Use a sharp knife for safer and more efficient cutting",
	"Don't overcrowd the pan when sautéing",
	"Taste as you cook and adjust seasoning",
	"Let meat rest after cooking for juicier results",
	"Use the right size pot or pan for the job",
	"Keep your workspace clean and organized",
}

var healthyTips = []string{
	"Use herbs and spices instead of salt for flavor",
	"Choose lean proteins like chicken breast or fish",
	"Include plenty of colorful vegetables",
	"Use healthy cooking methods like grilling or steaming",
	"Limit processed foods and added sugars",
	"Control portion sizes",
	"Stay hydrated while cooking",
}

// Responder answers free-form cooking queries. With a client it calls
// the remote model for complex questions and falls back to the local
// knowledge base on any error; without one it answers locally.
type Responder struct {
	client *Client
	log    *logger.Logger
	pick   func(n int) int
}

// NewResponder creates a responder. client may be nil.
func NewResponder(client *Client, log *logger.Logger) *Responder {
	return &Responder{
		client: client,
		log:    log,
		pick:   rand.Intn,
	}
}

// Respond answers a cooking query. Never fails: remote errors degrade
// to a knowledge-base answer.
func (r *Responder) Respond(ctx context.Context, query string, rctx domain.ResponderContext) (string, error) {
	if r.client != nil && isComplexQuery(query) {
		answer, err := r.remote(ctx, query, rctx)
		if err != nil {
			r.log.Warn("remote query failed, using fallback: %v", err)
		} else {
			return answer, nil
		}
	}
	return r.fallback(query), nil
}

func (r *Responder) remote(ctx context.Context, query string, rctx domain.ResponderContext) (string, error) {
	userPrompt := "Cooking question: " + query
	if rctx.RecipeID != "" {
		meta, err := json.Marshal(rctx)
		if err == nil {
			userPrompt += "\nContext: " + string(meta)
		}
	}

	answer, err := r.client.Chat(ctx, []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: userPrompt},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func isComplexQuery(query string) bool {
	query = strings.ToLower(query)
	for _, kw := range complexKeywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}

// fallback answers from the local knowledge base. Checks are ordered
// from most to least specific.
func (r *Responder) fallback(query string) string {
	query = strings.ToLower(query)

	if strings.Contains(query, "substitute") || strings.Contains(query, "alternative") {
		for ingredient, subs := range substitutions {
			if strings.Contains(query, ingredient) {
				return "You can substitute " + ingredient + " with " + strings.Join(subs[:2], ", ") +
					". Choose based on your recipe and dietary needs."
			}
		}
	}

	if strings.Contains(query, "tip") || strings.Contains(query, "advice") || strings.Contains(query, "how to") {
		return "Here's a helpful cooking tip: " + cookingTips[r.pick(len(cookingTips))]
	}

	if strings.Contains(query, "healthy") || strings.Contains(query, "nutrition") {
		return "For healthy cooking: " + healthyTips[r.pick(len(healthyTips))]
	}

	if strings.Contains(query, "ingredient") || strings.Contains(query, "what do i need") {
		return "I'd be happy to help you with ingredients! Please tell me which recipe you're working on, and I'll list what you need."
	}

	if strings.Contains(query, "suggest") || strings.Contains(query, "recommend") || strings.Contains(query, "what can i cook") {
		return "I can suggest recipes based on your preferences! Try saying 'show me vegetarian recipes' or 'find quick dinner ideas'."
	}

	return "I'm here to help with your cooking! You can ask me about recipes, ingredients, cooking tips, or set timers. What would you like to know?"
}
