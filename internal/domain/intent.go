package domain

// Intent classifies what the user wants to do. The zero value is
// IntentUnknown.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentStartRecipe
	IntentNextStep
	IntentPrevStep
	IntentRepeatStep
	IntentCurrentStep
	IntentStopCooking
	IntentSearchRecipe
	IntentIngredientsQuery
	IntentSetTimer
	IntentDietaryFilter
	IntentAIQuery
	IntentResumeCooking
	IntentHelp
)

// String returns the snake_case intent name used in logs and the audit trail.
func (i Intent) String() string {
	switch i {
	case IntentStartRecipe:
		return "start_recipe"
	case IntentNextStep:
		return "next_step"
	case IntentPrevStep:
		return "prev_step"
	case IntentRepeatStep:
		return "repeat_step"
	case IntentCurrentStep:
		return "current_step"
	case IntentStopCooking:
		return "stop_cooking"
	case IntentSearchRecipe:
		return "search_recipe"
	case IntentIngredientsQuery:
		return "ingredients_query"
	case IntentSetTimer:
		return "set_timer"
	case IntentDietaryFilter:
		return "dietary_filter"
	case IntentAIQuery:
		return "ai_query"
	case IntentResumeCooking:
		return "resume_cooking"
	case IntentHelp:
		return "help"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the intent as its snake_case name so stored audit
// records stay readable. The audit log is write-only, so there is no
// decode counterpart.
func (i Intent) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}
