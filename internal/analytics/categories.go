package analytics

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Uncategorized is the canonical label for transactions with no usable
// category.
const Uncategorized = "Uncategorized"

// NormalizeCategory maps a raw upstream category label to a canonical
// Title Case form. SNAKE_CASE, lowercase-with-spaces, and already-normalized
// inputs all converge on the same label, so the function is idempotent:
// NormalizeCategory("FOOD_AND_DRINK") == "Food And Drink".
func NormalizeCategory(raw *string) string {
	if raw == nil {
		return Uncategorized
	}
	s := strings.TrimSpace(*raw)
	if s == "" || s == Uncategorized {
		return Uncategorized
	}
	s = strings.ReplaceAll(s, "_", " ")
	s = cases.Title(language.English).String(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}
