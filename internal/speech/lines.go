// Package speech, lines.go: centralises every user-facing voice line.
// Edit this file to change KitchenBuddy's personality. Keep lines short
// and direct; they are read aloud by the browser's TTS.
package speech

import (
	"fmt"
	"strings"
)

// ── Recipe start ─────────────────────────────────────────────────

func LineStartRecipe(title string) string {
	return fmt.Sprintf("Starting recipe: %s", title)
}

// LineStartRecipeSpoken is the narrated confirmation, warmer than the
// on-screen message.
func LineStartRecipeSpoken(title string) string {
	return fmt.Sprintf("Great! Let's start cooking %s. I'll guide you through each step.", title)
}

func LineRecipeNotFound(name string) string {
	return fmt.Sprintf("I couldn't find a recipe for %s. Please try again or search for available recipes.", name)
}

func LineAskRecipeName() string {
	return "Please specify which recipe you'd like to cook. For example, 'Start recipe for butter chicken'."
}

// ── Step navigation ──────────────────────────────────────────────

func LineMovedToStep(step int, title string) string {
	return fmt.Sprintf("Moving to step %d of %s", step, title)
}

func LineRecipeCompleted() string {
	return "Recipe completed! Great job!"
}

func LineAlreadyFirstStep() string {
	return "You are already at the first step of this recipe."
}

func LineStep(number int, instruction string) string {
	return fmt.Sprintf("Step %d: %s", number, instruction)
}

func LineCurrentStep(number, total int, instruction string) string {
	return fmt.Sprintf("You're on step %d of %d: %s", number, total, instruction)
}

func LineNoSession() string {
	return "No active cooking session. Please start a recipe first."
}

func LineRecipeMissing() string {
	return "Recipe not found."
}

func LineInternalError() string {
	return "Something went wrong. Please try that again."
}

// ── Timers ───────────────────────────────────────────────────────

func LineTimerSet(minutes int) string {
	return fmt.Sprintf("Setting timer for %d minutes.", minutes)
}

func LineTimerNeedsSession() string {
	return "Please start a recipe first before setting a timer."
}

func LineTimerExists() string {
	return "A timer with that name is already running."
}

// ── Ingredients ──────────────────────────────────────────────────

// LineIngredients formats a raw ingredient block for speech. Bullets
// and dashes are stripped; lines are joined into one utterance.
func LineIngredients(raw string) string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "•-")
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	if len(items) == 0 {
		return "Let me check the ingredients for you."
	}
	return "Here are the ingredients you'll need: " + strings.Join(items, ". ")
}

func LineIngredientsMissing() string {
	return "I couldn't find the recipe ingredients. Please try again."
}

// ── Search and filtering ─────────────────────────────────────────

func LineSearching(query string) string {
	return fmt.Sprintf("Searching for %s.", query)
}

func LineDietaryFilter(preference string) string {
	return fmt.Sprintf("Showing %s recipes for you.", preference)
}

func LineAskDietary() string {
	return "Please specify a dietary preference like vegan, vegetarian, or gluten-free."
}

// ── AI queries ───────────────────────────────────────────────────

func LineAIUnavailable() string {
	return "I'm sorry, I can't process that query right now. Please try a different command."
}

// ── Session lifecycle ────────────────────────────────────────────

func LineResuming(title string, step int) string {
	return fmt.Sprintf("Resuming %s from step %d.", title, step)
}

func LineNothingToResume() string {
	return "You don't have any active cooking sessions to resume."
}

func LineSessionEnded() string {
	return "Cooking session ended. You can start a new recipe anytime."
}

// ── Help / fallback ──────────────────────────────────────────────

func LineHelp() string {
	return strings.Join([]string{
		"Here are some voice commands you can use:",
		`- "Start recipe for [recipe name]" to begin cooking`,
		`- "Next step" or "Previous step" to navigate`,
		`- "Repeat step" to hear the current instruction again`,
		`- "Set timer for [time]" to start a cooking timer`,
		`- "What are the ingredients?" to hear the ingredient list`,
		`- "Show vegan recipes" to filter by dietary preference`,
		`- "Stop cooking" to end the current session`,
	}, "\n")
}

func LineHelpSpoken() string {
	return "I'll help you with cooking commands. You can ask me to start recipes, navigate steps, set timers, and more."
}

func LineUnknown() string {
	return "I didn't understand that command. Try saying 'help' to learn what I can do."
}

func LineTranscriptionUnavailable() string {
	return "Voice transcription isn't available right now. Please type your command instead."
}

func LineNoTranscript() string {
	return "I couldn't hear anything in that recording. Please try again."
}
