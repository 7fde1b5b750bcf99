package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/logger"
	"github.com/kfarah/kitchenbuddy/internal/recipe"
	"github.com/kfarah/kitchenbuddy/internal/storage"
	"github.com/kfarah/kitchenbuddy/internal/timer"
)

// stubResponder answers every query with a fixed string.
type stubResponder struct {
	answer string
}

func (s *stubResponder) Respond(_ context.Context, _ string, _ domain.ResponderContext) (string, error) {
	return s.answer, nil
}

func newController(t *testing.T, opts ...Option) (*Controller, *storage.MemoryStore, *timer.Manager) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	recipes := recipe.NewMemorySource(log)
	store := storage.NewMemoryStore(log)
	timers := timer.NewManager(nil, log, timer.WithMinuteScale(10*time.Millisecond))
	t.Cleanup(timers.StopAll)
	return New(recipes, store, timers, log, opts...), store, timers
}

func handle(c *Controller, userID, text string, it domain.Intent) domain.Response {
	return c.Handle(context.Background(), Command{UserID: userID, Text: text, Intent: it})
}

func TestStartRecipe(t *testing.T) {
	c, store, _ := newController(t)

	resp := handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)
	if !resp.Success {
		t.Fatalf("start failed: %q", resp.Message)
	}
	if resp.Redirect != "/recipes/butter-chicken/steps/1" {
		t.Errorf("redirect = %q, want /recipes/butter-chicken/steps/1", resp.Redirect)
	}

	sess, err := store.ActiveForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("no active session after start: %v", err)
	}
	if sess.RecipeID != "butter-chicken" || sess.CurrentStep != 1 {
		t.Errorf("session = recipe %q step %d, want butter-chicken step 1", sess.RecipeID, sess.CurrentStep)
	}
}

func TestStartRecipeFuzzyName(t *testing.T) {
	c, store, _ := newController(t)

	resp := handle(c, "u1", "cook buter chiken", domain.IntentStartRecipe)
	if !resp.Success {
		t.Fatalf("fuzzy start failed: %q", resp.Message)
	}
	sess, _ := store.ActiveForUser(context.Background(), "u1")
	if sess == nil || sess.RecipeID != "butter-chicken" {
		t.Fatalf("fuzzy start did not resolve to butter-chicken")
	}
}

// failingStore reports a transient backend error on every call.
type failingStore struct {
	err error
}

func (s *failingStore) Save(_ context.Context, _ *domain.CookingSession) error {
	return s.err
}

func (s *failingStore) ActiveForUser(_ context.Context, _ string) (*domain.CookingSession, error) {
	return nil, s.err
}

// A store failure during the supersede check fails the command; it must
// not be mistaken for "no active session", which would risk two active
// sessions for the user.
func TestStartRecipeStoreFailure(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	recipes := recipe.NewMemorySource(log)
	timers := timer.NewManager(nil, log, timer.WithMinuteScale(10*time.Millisecond))
	t.Cleanup(timers.StopAll)
	c := New(recipes, &failingStore{err: errors.New("connection refused")}, timers, log)

	resp := handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)
	if resp.Success {
		t.Fatal("start succeeded despite store failure")
	}
	if !strings.Contains(resp.Message, "went wrong") {
		t.Errorf("message = %q, want internal-error wording", resp.Message)
	}
}

func TestStartRecipeUnknownName(t *testing.T) {
	c, _, _ := newController(t)

	resp := handle(c, "u1", "start recipe for unicorn stew", domain.IntentStartRecipe)
	if resp.Success {
		t.Fatal("start succeeded for unknown recipe")
	}
	if !strings.Contains(resp.Message, "couldn't find a recipe") {
		t.Errorf("message = %q, want not-found wording", resp.Message)
	}
}

func TestStartRecipeMissingName(t *testing.T) {
	c, _, _ := newController(t)

	resp := handle(c, "u1", "start recipe", domain.IntentStartRecipe)
	if resp.Success {
		t.Fatal("start succeeded with no recipe name")
	}
}

// Starting a new recipe while one is in progress must end the old
// session so at most one is active per user.
func TestStartRecipeSupersedesActiveSession(t *testing.T) {
	c, store, _ := newController(t)
	ctx := context.Background()

	handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)
	first, _ := store.ActiveForUser(ctx, "u1")

	resp := handle(c, "u1", "start recipe for greek salad", domain.IntentStartRecipe)
	if !resp.Success {
		t.Fatalf("second start failed: %q", resp.Message)
	}

	current, err := store.ActiveForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("no active session after second start: %v", err)
	}
	if current.RecipeID != "greek-salad" {
		t.Errorf("active recipe = %q, want greek-salad", current.RecipeID)
	}
	if current.ID == first.ID {
		t.Error("second start reused the first session")
	}
	if first.IsActive {
		t.Error("first session still active after supersede")
	}
}

func TestNextStepAdvances(t *testing.T) {
	c, store, _ := newController(t)
	ctx := context.Background()

	handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)

	resp := handle(c, "u1", "next step", domain.IntentNextStep)
	if !resp.Success {
		t.Fatalf("next failed: %q", resp.Message)
	}
	if resp.Redirect != "/recipes/butter-chicken/steps/2" {
		t.Errorf("redirect = %q, want step 2", resp.Redirect)
	}

	sess, _ := store.ActiveForUser(ctx, "u1")
	if sess.CurrentStep != 2 {
		t.Errorf("CurrentStep = %d, want 2", sess.CurrentStep)
	}
}

// Advancing past the final step completes the recipe and ends the
// session instead of walking off the end.
func TestNextStepOnLastStepEndsSession(t *testing.T) {
	c, store, _ := newController(t)
	ctx := context.Background()

	handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)
	sess, _ := store.ActiveForUser(ctx, "u1")
	sess.CurrentStep = 7 // butter chicken has 7 steps
	store.Save(ctx, sess)

	resp := handle(c, "u1", "next step", domain.IntentNextStep)
	if !resp.Success {
		t.Fatalf("completing next failed: %q", resp.Message)
	}
	if !strings.Contains(resp.Message, "completed") {
		t.Errorf("message = %q, want completion wording", resp.Message)
	}

	if _, err := store.ActiveForUser(ctx, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("session still active after completion, err = %v", err)
	}
	if sess.CompletedAt.IsZero() {
		t.Error("CompletedAt not set on completion")
	}
}

func TestPrevStepFloorsAtOne(t *testing.T) {
	c, store, _ := newController(t)
	ctx := context.Background()

	handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)

	resp := handle(c, "u1", "go back", domain.IntentPrevStep)
	if resp.Success {
		t.Fatal("prev on step 1 reported success")
	}
	sess, _ := store.ActiveForUser(ctx, "u1")
	if sess.CurrentStep != 1 {
		t.Errorf("CurrentStep = %d, want 1", sess.CurrentStep)
	}
}

func TestPrevStepRetreats(t *testing.T) {
	c, store, _ := newController(t)
	ctx := context.Background()

	handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)
	handle(c, "u1", "next step", domain.IntentNextStep)

	resp := handle(c, "u1", "go back", domain.IntentPrevStep)
	if !resp.Success {
		t.Fatalf("prev failed: %q", resp.Message)
	}
	sess, _ := store.ActiveForUser(ctx, "u1")
	if sess.CurrentStep != 1 {
		t.Errorf("CurrentStep = %d, want 1", sess.CurrentStep)
	}
}

func TestNavigationWithoutSession(t *testing.T) {
	c, _, _ := newController(t)

	for _, it := range []domain.Intent{
		domain.IntentNextStep,
		domain.IntentPrevStep,
		domain.IntentRepeatStep,
		domain.IntentCurrentStep,
		domain.IntentIngredientsQuery,
	} {
		if resp := handle(c, "u1", "anything", it); resp.Success {
			t.Errorf("%s succeeded with no active session", it)
		}
	}
}

func TestRepeatAndCurrentStep(t *testing.T) {
	c, _, _ := newController(t)

	handle(c, "u1", "start recipe for greek salad", domain.IntentStartRecipe)

	repeat := handle(c, "u1", "repeat that", domain.IntentRepeatStep)
	if !repeat.Success || !strings.HasPrefix(repeat.Message, "Step 1:") {
		t.Errorf("repeat message = %q, want Step 1 text", repeat.Message)
	}

	current := handle(c, "u1", "where am i", domain.IntentCurrentStep)
	if !current.Success || !strings.Contains(current.Message, "step 1 of 7") {
		t.Errorf("current message = %q, want step 1 of 7", current.Message)
	}
}

// stop_cooking is idempotent: it succeeds whether or not a session
// exists.
func TestStopCookingIdempotent(t *testing.T) {
	c, store, _ := newController(t)
	ctx := context.Background()

	handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)

	first := handle(c, "u1", "stop cooking", domain.IntentStopCooking)
	if !first.Success {
		t.Fatalf("stop failed: %q", first.Message)
	}
	if _, err := store.ActiveForUser(ctx, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Error("session still active after stop")
	}

	second := handle(c, "u1", "stop cooking", domain.IntentStopCooking)
	if !second.Success {
		t.Fatalf("second stop failed: %q", second.Message)
	}
	if first.Message != second.Message {
		t.Errorf("stop messages differ: %q vs %q", first.Message, second.Message)
	}
}

func TestSetTimerRequiresSession(t *testing.T) {
	c, _, timers := newController(t)

	resp := handle(c, "u1", "set timer for 5 minutes", domain.IntentSetTimer)
	if resp.Success {
		t.Fatal("set timer succeeded with no active session")
	}
	if timers.Count() != 0 {
		t.Errorf("timer registered despite failure, count = %d", timers.Count())
	}
}

func TestSetTimer(t *testing.T) {
	c, _, timers := newController(t)

	handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)

	resp := handle(c, "u1", "set timer for 10 minutes", domain.IntentSetTimer)
	if !resp.Success {
		t.Fatalf("set timer failed: %q", resp.Message)
	}
	if !strings.Contains(resp.Message, "10 minutes") {
		t.Errorf("message = %q, want 10 minutes", resp.Message)
	}
	if timers.Count() != 1 {
		t.Errorf("timer count = %d, want 1", timers.Count())
	}

	// Same step, same timer id: refused.
	again := handle(c, "u1", "set timer for 3 minutes", domain.IntentSetTimer)
	if again.Success {
		t.Error("duplicate timer for the same step succeeded")
	}
}

func TestIngredientsQuery(t *testing.T) {
	c, _, _ := newController(t)

	handle(c, "u1", "start recipe for avocado toast", domain.IntentStartRecipe)

	resp := handle(c, "u1", "what are the ingredients", domain.IntentIngredientsQuery)
	if !resp.Success {
		t.Fatalf("ingredients failed: %q", resp.Message)
	}
	if !strings.HasPrefix(resp.Message, "Here are the ingredients you'll need:") {
		t.Errorf("message = %q, want ingredient list prefix", resp.Message)
	}
	if !strings.Contains(resp.Message, "avocado") {
		t.Errorf("message = %q, want avocado mentioned", resp.Message)
	}
}

func TestDietaryFilter(t *testing.T) {
	c, _, _ := newController(t)

	resp := handle(c, "u1", "show vegan recipes", domain.IntentDietaryFilter)
	if !resp.Success {
		t.Fatalf("dietary filter failed: %q", resp.Message)
	}
	if resp.Redirect != "/search?dietary=vegan" {
		t.Errorf("redirect = %q, want /search?dietary=vegan", resp.Redirect)
	}

	missing := handle(c, "u1", "filter recipes", domain.IntentDietaryFilter)
	if missing.Success {
		t.Error("dietary filter succeeded without a preference")
	}
}

func TestSearchRecipe(t *testing.T) {
	c, _, _ := newController(t)

	resp := handle(c, "u1", "search recipe for pasta", domain.IntentSearchRecipe)
	if !resp.Success {
		t.Fatalf("search failed: %q", resp.Message)
	}
	if resp.Redirect != "/search?q=pasta" {
		t.Errorf("redirect = %q, want /search?q=pasta", resp.Redirect)
	}
}

func TestAIQuery(t *testing.T) {
	withoutAI, _, _ := newController(t)
	if resp := handle(withoutAI, "u1", "why is my sauce split", domain.IntentAIQuery); resp.Success {
		t.Error("ai query succeeded with no responder configured")
	}

	withAI, _, _ := newController(t, WithResponder(&stubResponder{answer: "Whisk harder."}))
	resp := handle(withAI, "u1", "why is my sauce split", domain.IntentAIQuery)
	if !resp.Success {
		t.Fatalf("ai query failed: %q", resp.Message)
	}
	if resp.Message != "Whisk harder." {
		t.Errorf("message = %q, want responder answer", resp.Message)
	}
}

func TestResumeCooking(t *testing.T) {
	c, _, _ := newController(t)

	none := handle(c, "u1", "resume cooking", domain.IntentResumeCooking)
	if none.Success {
		t.Error("resume succeeded with nothing to resume")
	}

	handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)
	handle(c, "u1", "next step", domain.IntentNextStep)

	resp := handle(c, "u1", "resume cooking", domain.IntentResumeCooking)
	if !resp.Success {
		t.Fatalf("resume failed: %q", resp.Message)
	}
	if resp.Redirect != "/recipes/butter-chicken/steps/2" {
		t.Errorf("redirect = %q, want step 2", resp.Redirect)
	}
}

func TestHelpAndUnknown(t *testing.T) {
	c, _, _ := newController(t)

	help := handle(c, "u1", "help", domain.IntentHelp)
	if !help.Success || !strings.Contains(help.Message, "voice commands") {
		t.Errorf("help message = %q", help.Message)
	}

	unknown := handle(c, "u1", "gibberish", domain.IntentUnknown)
	if unknown.Success {
		t.Error("unknown intent reported success")
	}
	if unknown.Intent != "unknown" {
		t.Errorf("intent = %q, want unknown", unknown.Intent)
	}
}

// Sessions are per user: one user's commands must not touch another's
// state.
func TestSessionsAreIsolatedPerUser(t *testing.T) {
	c, store, _ := newController(t)
	ctx := context.Background()

	handle(c, "u1", "start recipe for butter chicken", domain.IntentStartRecipe)
	handle(c, "u2", "start recipe for greek salad", domain.IntentStartRecipe)
	handle(c, "u1", "next step", domain.IntentNextStep)

	s1, _ := store.ActiveForUser(ctx, "u1")
	s2, _ := store.ActiveForUser(ctx, "u2")
	if s1.CurrentStep != 2 {
		t.Errorf("u1 step = %d, want 2", s1.CurrentStep)
	}
	if s2.CurrentStep != 1 {
		t.Errorf("u2 step = %d, want 1", s2.CurrentStep)
	}
}
