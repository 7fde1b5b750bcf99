// Package domain defines the core types and interfaces for KitchenBuddy.
// All other packages depend on domain; domain depends on nothing.
package domain

import "time"

// Recipe is a complete recipe as stored by the catalog.
type Recipe struct {
	ID          string
	Title       string
	Category    string
	Ingredients string // raw ingredient block, one ingredient per line
	DietaryTags []string
	CookingTime time.Duration
	Difficulty  string // "easy", "medium", "hard"
	Description string // voice-friendly summary
	Steps       []Step
}

// Step is a single numbered cooking instruction.
type Step struct {
	Number      int // 1-based
	Instruction string
}

// StepText returns the instruction for the given 1-based step number,
// or "" when the number is out of range.
func (r *Recipe) StepText(number int) string {
	if number < 1 || number > len(r.Steps) {
		return ""
	}
	return r.Steps[number-1].Instruction
}

// HasTag reports whether the recipe carries the given dietary tag.
func (r *Recipe) HasTag(tag string) bool {
	for _, t := range r.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// RecipeSummary is a lightweight view of a recipe for listings.
type RecipeSummary struct {
	ID          string
	Title       string
	Category    string
	DietaryTags []string
	Description string
}
