package analyze

import (
	"regexp"
	"strings"
)

// parentheticalRe matches short parenthetical asides (5-60 chars inside).
// Very short groups like "(a)" and long ones are left alone.
var parentheticalRe = regexp.MustCompile(`\([^)]{5,60}\)`)

// Explain simplifies text for easier listening: parenthetical asides are
// dropped, semicolons become sentence breaks, and only the first three
// resulting sentences are kept. Falls back to the first 300 characters when
// no sentences parse.
func Explain(text string) string {
	simplified := parentheticalRe.ReplaceAllString(text, "")
	simplified = strings.ReplaceAll(simplified, ";", ".")

	sents := sentences(simplified)
	if len(sents) == 0 {
		return truncate(text, 300)
	}
	if len(sents) > 3 {
		sents = sents[:3]
	}

	parts := make([]string, len(sents))
	for i, s := range sents {
		parts[i] = strings.TrimSpace(s)
	}
	return strings.Join(parts, " ")
}
