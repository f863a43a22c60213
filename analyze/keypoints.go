package analyze

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxPoints is the key-point count used by the voice commands.
const DefaultMaxPoints = 4

// KeyPoints extracts up to maxPoints key sentences, scored by keyword
// density, formatted as numbered points ("Point 1: ..."). When no sentence
// contains a keyword, the first maxPoints sentences are used verbatim.
func KeyPoints(text string, maxPoints int) string {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}

	sents := sentences(text)
	keywords := Keywords(text, DefaultTopKeywords)

	type scored struct {
		hits int
		text string
	}
	var positive []scored
	for _, s := range sents {
		if hits := keywordHits(s, keywords); hits > 0 {
			positive = append(positive, scored{hits: hits, text: strings.TrimSpace(s)})
		}
	}

	// Stable: equal scores keep document order.
	sort.SliceStable(positive, func(i, j int) bool { return positive[i].hits > positive[j].hits })
	if len(positive) > maxPoints {
		positive = positive[:maxPoints]
	}

	var points []string
	for _, s := range positive {
		points = append(points, s.text)
	}
	if len(points) == 0 {
		for i := 0; i < len(sents) && i < maxPoints; i++ {
			points = append(points, strings.TrimSpace(sents[i]))
		}
	}

	numbered := make([]string, len(points))
	for i, p := range points {
		numbered[i] = fmt.Sprintf("Point %d: %s", i+1, p)
	}
	return strings.Join(numbered, ". ")
}
