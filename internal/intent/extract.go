package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// ── Recipe name ──────────────────────────────────────────────────

// namePatterns are tried in order; the first match wins.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`recipe for (.+)`),
	regexp.MustCompile(`how to make (.+)`),
	regexp.MustCompile(`cook (.+)`),
	regexp.MustCompile(`make (.+)`),
	regexp.MustCompile(`prepare (.+)`),
	regexp.MustCompile(`start (.+)`),
	regexp.MustCompile(`begin (.+)`),
	regexp.MustCompile(`open (.+)`),
}

// recipeIndicators flag that the words after them name a recipe.
var recipeIndicators = map[string]bool{
	"recipe": true,
	"dish":   true,
	"meal":   true,
	"food":   true,
}

// fillerWords is applied to the extracted name to drop indicator and
// article words that are not part of the title.
var fillerWords = regexp.MustCompile(`\b(recipe|dish|meal|food|for|the|a|an)\b`)

// ExtractRecipeName pulls a recipe name out of an utterance like
// "start recipe for butter chicken". Returns "" when no name is found
// or the name is all filler.
func ExtractRecipeName(text string) string {
	text = strings.ToLower(text)
	if text == "" {
		return ""
	}

	var name string
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			name = strings.TrimSpace(m[1])
			break
		}
	}

	// Fallback: take everything after a recipe-indicator word.
	if name == "" {
		words := strings.Fields(text)
		if len(words) >= 2 {
			for i, w := range words {
				if recipeIndicators[w] && i+1 < len(words) {
					name = strings.Join(words[i+1:], " ")
					break
				}
			}
		}
	}
	if name == "" {
		return ""
	}

	name = fillerWords.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// ── Timer duration ───────────────────────────────────────────────

// DefaultTimerMinutes is used when no duration pattern matches. This is
// a designed fallback, not a swallowed error: "set a timer" is a valid
// command and gets a short timer.
const DefaultTimerMinutes = 5

// durationRule matches one duration phrasing. fixed is used for word
// forms; otherwise the captured digits are parsed and multiplied by scale.
type durationRule struct {
	re    *regexp.Regexp
	fixed int
	scale int
}

var durationRules = []durationRule{
	{re: regexp.MustCompile(`(\d+)\s*minutes?`), scale: 1},
	{re: regexp.MustCompile(`(\d+)\s*mins?`), scale: 1},
	{re: regexp.MustCompile(`(\d+)\s*min`), scale: 1},
	{re: regexp.MustCompile(`five\s*minutes?`), fixed: 5},
	{re: regexp.MustCompile(`ten\s*minutes?`), fixed: 10},
	{re: regexp.MustCompile(`fifteen\s*minutes?`), fixed: 15},
	{re: regexp.MustCompile(`thirty\s*minutes?`), fixed: 30},
	{re: regexp.MustCompile(`one\s*hour`), fixed: 60},
	{re: regexp.MustCompile(`(\d+)\s*hours?`), scale: 60},
	{re: regexp.MustCompile(`(\d+)\s*hrs?`), scale: 60},
}

// ExtractTimerDuration parses a timer duration in minutes from an
// utterance. Rules are tried in order; a rule whose digits fail to parse
// falls through to the next. Word-form hours ("two hours") are out of
// pattern scope and land on the default.
func ExtractTimerDuration(text string) int {
	text = strings.ToLower(text)
	if text == "" {
		return DefaultTimerMinutes
	}

	for _, rule := range durationRules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if rule.fixed > 0 {
			return rule.fixed
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n * rule.scale
	}
	return DefaultTimerMinutes
}

// ── Dietary preference ───────────────────────────────────────────

// dietaryRule maps a canonical preference to its spoken synonyms.
type dietaryRule struct {
	preference string
	keywords   []string
}

// dietaryRules are checked in declaration order; the first preference
// with any matching keyword wins.
var dietaryRules = []dietaryRule{
	{"vegan", []string{"vegan", "no animal products"}},
	{"vegetarian", []string{"vegetarian", "no meat", "meatless"}},
	{"gluten-free", []string{"gluten-free", "gluten free", "no gluten"}},
	{"dairy-free", []string{"dairy-free", "dairy free", "no dairy", "lactose-free"}},
	{"keto", []string{"keto", "ketogenic", "low carb"}},
	{"paleo", []string{"paleo", "paleolithic"}},
	{"low-sodium", []string{"low sodium", "low-sodium", "no salt"}},
	{"low-fat", []string{"low fat", "low-fat", "fat-free"}},
}

// ExtractDietaryPreference returns the canonical dietary preference
// mentioned in the utterance, or "" when none is found.
func ExtractDietaryPreference(text string) string {
	text = strings.ToLower(text)
	if text == "" {
		return ""
	}
	for _, rule := range dietaryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.preference
			}
		}
	}
	return ""
}
