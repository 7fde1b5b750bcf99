// Package intent turns transcribed speech into structured commands:
// an intent classification plus the parameters the intent needs
// (recipe names, timer durations, dietary preferences).
package intent

import (
	"regexp"
	"strings"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/logger"
)

// intentRule binds an intent to the patterns that trigger it.
type intentRule struct {
	intent   domain.Intent
	patterns []*regexp.Regexp
}

// Classifier matches normalized utterances against an ordered rule list.
// Rule order is load-bearing: the first intent with any matching pattern
// wins, so ambiguous utterances ("stop the timer") resolve by list
// position, not by specificity. Do not reorder.
type Classifier struct {
	log   *logger.Logger
	rules []intentRule
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// NewClassifier creates the keyword classifier with its fixed rule set.
func NewClassifier(log *logger.Logger) *Classifier {
	return &Classifier{
		log: log,
		rules: []intentRule{
			{domain.IntentStartRecipe, compile(
				`\b(start|begin|cook|make|prepare)\b`,
				`\b(recipe|dish|meal)\b`,
				`\b(lets cook|let's cook)\b`,
				`\b(open recipe|show recipe)\b`,
			)},
			{domain.IntentNextStep, compile(
				`\b(next|continue|proceed|go on)\b`,
				`\b(what's next|what is next)\b`,
				`\b(move on|next step)\b`,
				`\b(continue cooking)\b`,
			)},
			{domain.IntentPrevStep, compile(
				`\b(previous|back|go back|last step)\b`,
				`\b(what was before|repeat previous)\b`,
				`\b(step back|go backwards)\b`,
			)},
			{domain.IntentRepeatStep, compile(
				`\b(repeat|say again|one more time)\b`,
				`\b(what was that|didn't hear)\b`,
				`\b(go back|previous step)\b`,
				`\b(read again|tell me again)\b`,
			)},
			{domain.IntentCurrentStep, compile(
				`\b(current step|what step|which step)\b`,
				`\b(where am i|what am i doing)\b`,
				`\b(step number|current instruction)\b`,
			)},
			{domain.IntentStopCooking, compile(
				`\b(stop|end|finish|done)\b`,
				`\b(quit|exit|cancel)\b`,
				`\b(stop cooking|end recipe)\b`,
				`\b(pause cooking|take a break)\b`,
			)},
			{domain.IntentSearchRecipe, compile(
				`\b(search|find|look for)\b`,
				`\b(recipe for|how to make)\b`,
				`\b(show me|find me)\b`,
				`\b(suggest|recommend)\b`,
			)},
			{domain.IntentIngredientsQuery, compile(
				`\b(ingredients|what do i need|what's needed)\b`,
				`\b(do i have|check ingredients)\b`,
				`\b(ingredient list|what's in it)\b`,
				`\b(missing ingredients|what's missing)\b`,
			)},
			{domain.IntentSetTimer, compile(
				`\b(timer|set timer|start timer)\b`,
				`\b(countdown|alarm|reminder)\b`,
				`\b(wait|time|minutes)\b`,
				`\b(how long|duration)\b`,
			)},
			{domain.IntentDietaryFilter, compile(
				`\b(vegan|vegetarian|gluten-free)\b`,
				`\b(show only|filter|dietary)\b`,
				`\b(healthy|low carb|keto)\b`,
				`\b(no meat|dairy-free)\b`,
			)},
			{domain.IntentAIQuery, compile(
				`\b(what can i cook|suggest|recommend)\b`,
				`\b(how to|tips|advice)\b`,
				`\b(is this healthy|nutrition)\b`,
				`\b(substitute|alternative)\b`,
				`\b(why|explain|tell me about)\b`,
			)},
			{domain.IntentResumeCooking, compile(
				`\b(resume|continue|pick up)\b`,
				`\b(where was i|what was i cooking)\b`,
				`\b(restart|begin again)\b`,
			)},
			{domain.IntentHelp, compile(
				`\b(help|what can you do|commands)\b`,
				`\b(how to use|instructions)\b`,
				`\b(support|assist)\b`,
			)},
		},
	}
}

// Classify maps an utterance to an intent. Input is lower-cased and
// trimmed first; empty input and input matching no pattern both yield
// IntentUnknown. Pure function of its input.
func (c *Classifier) Classify(text string) domain.Intent {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return domain.IntentUnknown
	}

	for _, rule := range c.rules {
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				c.log.Debug("classified %q as %s", text, rule.intent)
				return rule.intent
			}
		}
	}

	c.log.Debug("no pattern matched %q", text)
	return domain.IntentUnknown
}
