// Package session implements the per-user cooking session state machine
// that turns classified voice intents into state changes and responses.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/intent"
	"github.com/kfarah/kitchenbuddy/internal/logger"
	"github.com/kfarah/kitchenbuddy/internal/speech"
	"github.com/kfarah/kitchenbuddy/internal/timer"
)

// Option configures the controller.
type Option func(*Controller)

// WithNarrator enables spoken confirmations alongside responses.
func WithNarrator(n domain.Narrator) Option {
	return func(c *Controller) { c.narrator = n }
}

// WithResponder enables free-form AI queries.
func WithResponder(r domain.Responder) Option {
	return func(c *Controller) { c.responder = r }
}

// Command is one classified voice command from a user.
type Command struct {
	UserID string
	Text   string
	Intent domain.Intent
}

// Controller dispatches classified intents against the user's cooking
// session. It depends only on interfaces and is fully testable with the
// in-memory implementations.
type Controller struct {
	recipes   domain.RecipeSource
	store     domain.SessionStore
	timers    *timer.Manager
	narrator  domain.Narrator
	responder domain.Responder
	log       *logger.Logger
}

// New creates a controller with the given dependencies and options.
func New(recipes domain.RecipeSource, store domain.SessionStore, timers *timer.Manager, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		recipes: recipes,
		store:   store,
		timers:  timers,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handle executes one command and returns the response. It never
// returns an error: failures become responses with Success=false so the
// caller always has something to show and to log.
func (c *Controller) Handle(ctx context.Context, cmd Command) domain.Response {
	switch cmd.Intent {
	case domain.IntentStartRecipe:
		return c.startRecipe(ctx, cmd)
	case domain.IntentNextStep:
		return c.nextStep(ctx, cmd)
	case domain.IntentPrevStep:
		return c.prevStep(ctx, cmd)
	case domain.IntentRepeatStep:
		return c.repeatStep(ctx, cmd)
	case domain.IntentCurrentStep:
		return c.currentStep(ctx, cmd)
	case domain.IntentStopCooking:
		return c.stopCooking(ctx, cmd)
	case domain.IntentSearchRecipe:
		return c.searchRecipe(ctx, cmd)
	case domain.IntentIngredientsQuery:
		return c.ingredientsQuery(ctx, cmd)
	case domain.IntentSetTimer:
		return c.setTimer(ctx, cmd)
	case domain.IntentDietaryFilter:
		return c.dietaryFilter(ctx, cmd)
	case domain.IntentAIQuery:
		return c.aiQuery(ctx, cmd)
	case domain.IntentResumeCooking:
		return c.resumeCooking(ctx, cmd)
	case domain.IntentHelp:
		return c.help(ctx, cmd)
	default:
		return c.fail(cmd, speech.LineUnknown())
	}
}

func (c *Controller) startRecipe(ctx context.Context, cmd Command) domain.Response {
	name := intent.ExtractRecipeName(cmd.Text)
	if name == "" {
		return c.fail(cmd, speech.LineAskRecipeName())
	}

	all, err := c.recipes.ListAll(ctx)
	if err != nil {
		c.log.Error("listing recipes: %v", err)
		return c.fail(cmd, speech.LineInternalError())
	}
	recipe := intent.FindRecipeByName(name, all)
	if recipe == nil {
		return c.fail(cmd, speech.LineRecipeNotFound(name))
	}

	// One active session per user: starting a new recipe supersedes
	// any session already in progress. A store failure here is not
	// "no session"; proceeding would leave two active sessions.
	prev, err := c.store.ActiveForUser(ctx, cmd.UserID)
	if err == nil {
		prev.End(time.Now())
		if err := c.store.Save(ctx, prev); err != nil {
			c.log.Error("ending superseded session %s: %v", prev.ID, err)
			return c.fail(cmd, speech.LineInternalError())
		}
		c.log.Info("superseded session %s for user %s", prev.ID, cmd.UserID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		c.log.Error("loading session for user %s: %v", cmd.UserID, err)
		return c.fail(cmd, speech.LineInternalError())
	}

	sess := &domain.CookingSession{
		ID:          generateID(),
		UserID:      cmd.UserID,
		RecipeID:    recipe.ID,
		CurrentStep: 1,
		IsActive:    true,
		StartedAt:   time.Now(),
	}
	if err := c.store.Save(ctx, sess); err != nil {
		c.log.Error("saving session: %v", err)
		return c.fail(cmd, speech.LineInternalError())
	}

	c.log.Info("started session %s: user=%s recipe=%q", sess.ID, cmd.UserID, recipe.Title)
	c.say(ctx, speech.LineStartRecipeSpoken(recipe.Title))
	return c.ok(cmd, speech.LineStartRecipe(recipe.Title), stepURL(recipe.ID, 1))
}

func (c *Controller) nextStep(ctx context.Context, cmd Command) domain.Response {
	sess, recipe, resp, ok := c.activeSession(ctx, cmd)
	if !ok {
		return resp
	}

	if sess.CurrentStep >= len(recipe.Steps) {
		// Finishing the last step completes the recipe and ends the
		// session.
		sess.End(time.Now())
		if err := c.store.Save(ctx, sess); err != nil {
			c.log.Error("completing session %s: %v", sess.ID, err)
			return c.fail(cmd, speech.LineInternalError())
		}
		c.say(ctx, speech.LineRecipeCompleted())
		return c.ok(cmd, speech.LineRecipeCompleted(), recipeURL(recipe.ID))
	}

	sess.CurrentStep++
	if err := c.store.Save(ctx, sess); err != nil {
		c.log.Error("advancing session %s: %v", sess.ID, err)
		return c.fail(cmd, speech.LineInternalError())
	}
	c.say(ctx, speech.LineStep(sess.CurrentStep, recipe.StepText(sess.CurrentStep)))
	return c.ok(cmd, speech.LineMovedToStep(sess.CurrentStep, recipe.Title), stepURL(recipe.ID, sess.CurrentStep))
}

func (c *Controller) prevStep(ctx context.Context, cmd Command) domain.Response {
	sess, recipe, resp, ok := c.activeSession(ctx, cmd)
	if !ok {
		return resp
	}

	// Step 1 is the floor; the session never retreats past it.
	if sess.CurrentStep <= 1 {
		return c.fail(cmd, speech.LineAlreadyFirstStep())
	}

	sess.CurrentStep--
	if err := c.store.Save(ctx, sess); err != nil {
		c.log.Error("retreating session %s: %v", sess.ID, err)
		return c.fail(cmd, speech.LineInternalError())
	}
	c.say(ctx, speech.LineStep(sess.CurrentStep, recipe.StepText(sess.CurrentStep)))
	return c.ok(cmd, speech.LineMovedToStep(sess.CurrentStep, recipe.Title), stepURL(recipe.ID, sess.CurrentStep))
}

func (c *Controller) repeatStep(ctx context.Context, cmd Command) domain.Response {
	sess, recipe, resp, ok := c.activeSession(ctx, cmd)
	if !ok {
		return resp
	}

	line := speech.LineStep(sess.CurrentStep, recipe.StepText(sess.CurrentStep))
	c.say(ctx, line)
	return c.ok(cmd, line, stepURL(recipe.ID, sess.CurrentStep))
}

func (c *Controller) currentStep(ctx context.Context, cmd Command) domain.Response {
	sess, recipe, resp, ok := c.activeSession(ctx, cmd)
	if !ok {
		return resp
	}

	line := speech.LineCurrentStep(sess.CurrentStep, len(recipe.Steps), recipe.StepText(sess.CurrentStep))
	c.say(ctx, line)
	return c.ok(cmd, line, "")
}

// stopCooking is idempotent: stopping with no active session still
// succeeds with the same message.
func (c *Controller) stopCooking(ctx context.Context, cmd Command) domain.Response {
	sess, err := c.store.ActiveForUser(ctx, cmd.UserID)
	if err == nil {
		sess.End(time.Now())
		if err := c.store.Save(ctx, sess); err != nil {
			c.log.Error("ending session %s: %v", sess.ID, err)
			return c.fail(cmd, speech.LineInternalError())
		}
		c.log.Info("ended session %s for user %s", sess.ID, cmd.UserID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		c.log.Error("loading session for user %s: %v", cmd.UserID, err)
		return c.fail(cmd, speech.LineInternalError())
	}

	c.say(ctx, speech.LineSessionEnded())
	return c.ok(cmd, speech.LineSessionEnded(), "/dashboard")
}

func (c *Controller) searchRecipe(ctx context.Context, cmd Command) domain.Response {
	query := intent.ExtractRecipeName(cmd.Text)
	if query == "" {
		query = strings.TrimSpace(strings.ToLower(cmd.Text))
	}
	return c.ok(cmd, speech.LineSearching(query), "/search?q="+url.QueryEscape(query))
}

func (c *Controller) ingredientsQuery(ctx context.Context, cmd Command) domain.Response {
	_, recipe, resp, ok := c.activeSession(ctx, cmd)
	if !ok {
		return resp
	}

	if recipe.Ingredients == "" {
		return c.fail(cmd, speech.LineIngredientsMissing())
	}
	line := speech.LineIngredients(recipe.Ingredients)
	c.say(ctx, line)
	return c.ok(cmd, line, "")
}

func (c *Controller) setTimer(ctx context.Context, cmd Command) domain.Response {
	minutes := intent.ExtractTimerDuration(cmd.Text)

	sess, err := c.store.ActiveForUser(ctx, cmd.UserID)
	if err != nil {
		return c.fail(cmd, speech.LineTimerNeedsSession())
	}

	id := fmt.Sprintf("%s-step-%d", sess.ID, sess.CurrentStep)
	if !c.timers.Start(ctx, id, minutes, nil) {
		return c.fail(cmd, speech.LineTimerExists())
	}
	return c.ok(cmd, speech.LineTimerSet(minutes), stepURL(sess.RecipeID, sess.CurrentStep))
}

func (c *Controller) dietaryFilter(ctx context.Context, cmd Command) domain.Response {
	preference := intent.ExtractDietaryPreference(cmd.Text)
	if preference == "" {
		return c.fail(cmd, speech.LineAskDietary())
	}
	line := speech.LineDietaryFilter(preference)
	c.say(ctx, line)
	return c.ok(cmd, line, "/search?dietary="+url.QueryEscape(preference))
}

func (c *Controller) aiQuery(ctx context.Context, cmd Command) domain.Response {
	if c.responder == nil {
		return c.fail(cmd, speech.LineAIUnavailable())
	}

	rctx := domain.ResponderContext{UserID: cmd.UserID}
	if sess, err := c.store.ActiveForUser(ctx, cmd.UserID); err == nil {
		rctx.RecipeID = sess.RecipeID
		rctx.CurrentStep = sess.CurrentStep
	}

	answer, err := c.responder.Respond(ctx, cmd.Text, rctx)
	if err != nil {
		c.log.Warn("responder failed: %v", err)
		return c.fail(cmd, speech.LineAIUnavailable())
	}
	c.say(ctx, answer)
	return c.ok(cmd, answer, "")
}

func (c *Controller) resumeCooking(ctx context.Context, cmd Command) domain.Response {
	sess, err := c.store.ActiveForUser(ctx, cmd.UserID)
	if err != nil {
		return c.fail(cmd, speech.LineNothingToResume())
	}

	recipe, err := c.recipes.Get(ctx, sess.RecipeID)
	if err != nil {
		c.log.Error("loading recipe %s: %v", sess.RecipeID, err)
		return c.fail(cmd, speech.LineRecipeMissing())
	}

	line := speech.LineResuming(recipe.Title, sess.CurrentStep)
	c.say(ctx, line)
	return c.ok(cmd, line, stepURL(recipe.ID, sess.CurrentStep))
}

func (c *Controller) help(ctx context.Context, cmd Command) domain.Response {
	c.say(ctx, speech.LineHelpSpoken())
	return c.ok(cmd, speech.LineHelp(), "")
}

// activeSession loads the user's active session and its recipe. On
// failure it returns the response to send and ok=false.
func (c *Controller) activeSession(ctx context.Context, cmd Command) (*domain.CookingSession, *domain.Recipe, domain.Response, bool) {
	sess, err := c.store.ActiveForUser(ctx, cmd.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.log.Error("loading session for user %s: %v", cmd.UserID, err)
		}
		return nil, nil, c.fail(cmd, speech.LineNoSession()), false
	}

	recipe, err := c.recipes.Get(ctx, sess.RecipeID)
	if err != nil {
		c.log.Error("loading recipe %s: %v", sess.RecipeID, err)
		return nil, nil, c.fail(cmd, speech.LineRecipeMissing()), false
	}
	return sess, recipe, domain.Response{}, true
}

func (c *Controller) ok(cmd Command, message, redirect string) domain.Response {
	return domain.Response{
		Success:  true,
		Intent:   cmd.Intent.String(),
		Text:     cmd.Text,
		Message:  message,
		Redirect: redirect,
	}
}

func (c *Controller) fail(cmd Command, message string) domain.Response {
	return domain.Response{
		Success: false,
		Intent:  cmd.Intent.String(),
		Text:    cmd.Text,
		Message: message,
	}
}

func (c *Controller) say(ctx context.Context, text string) {
	if c.narrator != nil {
		c.narrator.Say(ctx, text)
	}
}

func stepURL(recipeID string, step int) string {
	return fmt.Sprintf("/recipes/%s/steps/%d", recipeID, step)
}

func recipeURL(recipeID string) string {
	return "/recipes/" + recipeID
}
