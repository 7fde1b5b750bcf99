package speech

import (
	"strings"
	"testing"
)

func TestLineIngredients(t *testing.T) {
	raw := "2 slices bread\n• 1 ripe avocado\n- Salt to taste\n\n  \n1 lemon"
	got := LineIngredients(raw)

	if !strings.HasPrefix(got, "Here are the ingredients you'll need: ") {
		t.Fatalf("missing prefix: %q", got)
	}
	for _, want := range []string{"2 slices bread", "1 ripe avocado", "Salt to taste", "1 lemon"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
	if strings.ContainsAny(got, "•-") {
		t.Errorf("bullets not stripped: %q", got)
	}
}

func TestLineIngredientsEmpty(t *testing.T) {
	for _, raw := range []string{"", "  \n \n", "•\n-"} {
		if got := LineIngredients(raw); got != "Let me check the ingredients for you." {
			t.Errorf("LineIngredients(%q) = %q", raw, got)
		}
	}
}
