package analyze

import (
	"sort"
	"strings"
)

// Position weights for extractive summarization. Leading and trailing
// sentences carry more signal than the middle of a passage. These values
// are load-bearing: changing them changes which sentences every summary
// picks, so treat any edit as a behavior change.
const (
	FirstSentenceWeight  = 1.0
	LastSentenceWeight   = 0.8
	MiddleSentenceWeight = 0.5
)

// DefaultMaxSentences is the summary length used by the voice commands.
const DefaultMaxSentences = 3

// Summarize returns an extractive summary of at most maxSentences sentences,
// selected by position and keyword density but emitted in original document
// order. Text with maxSentences sentences or fewer is returned unchanged.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	sents := sentences(text)
	if len(sents) == 0 {
		return truncate(text, 400)
	}
	if len(sents) <= maxSentences {
		return text
	}

	keywords := Keywords(text, DefaultTopKeywords)

	type scored struct {
		score float64
		pos   int
	}
	all := make([]scored, len(sents))
	for i := range sents {
		pos := MiddleSentenceWeight
		switch i {
		case 0:
			pos = FirstSentenceWeight
		case len(sents) - 1:
			pos = LastSentenceWeight
		}
		// Denominator +1 keeps the score defined when no keywords exist.
		kw := float64(keywordHits(sents[i], keywords)) / float64(len(keywords)+1)
		all[i] = scored{score: pos + kw, pos: i}
	}

	// Highest score first, earlier sentence on ties.
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].pos < all[j].pos
	})

	top := all[:maxSentences]
	// Re-order the selection by original position: the summary must read in
	// document order even though selection was score-ordered.
	sort.Slice(top, func(i, j int) bool { return top[i].pos < top[j].pos })

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = strings.TrimSpace(sents[s.pos])
	}
	return strings.Join(parts, " ")
}
