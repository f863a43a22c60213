// Package analyze provides the extractive text-analysis primitives behind
// the summarize, explain, key-points and describe voice commands.
//
// Every function is total: degenerate input (empty text, a single sentence)
// degrades to truncation or verbatim output, never an error. The algorithms
// are deterministic and dependency-free so the engine keeps answering with
// zero network access; Analyzer optionally upgrades summaries and media
// descriptions through a remote provider with silent local fallback.
package analyze

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultTopKeywords is the keyword count used by the analyzers.
const DefaultTopKeywords = 10

// wordRe matches candidate keyword tokens: lowercase words of 4+ letters.
var wordRe = regexp.MustCompile(`\b[a-z]{4,}\b`)

// sentenceRe matches sentences including their terminator.
var sentenceRe = regexp.MustCompile(`[^.!?\n]+[.!?\n]+`)

// stopWords are excluded from keyword extraction.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "shall": true,
	"should": true, "may": true, "might": true, "can": true, "could": true,
	"in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "and": true, "or": true, "but": true,
	"not": true, "with": true, "by": true, "from": true, "this": true,
	"that": true, "it": true, "its": true, "we": true, "i": true,
	"you": true, "he": true, "she": true, "they": true, "their": true,
}

// Keywords extracts the topN most frequent salient terms from text,
// lowercase, stop-words excluded, ties broken by first appearance.
func Keywords(text string, topN int) []string {
	if topN <= 0 {
		topN = DefaultTopKeywords
	}

	words := wordRe.FindAllString(strings.ToLower(text), -1)
	freq := make(map[string]int)
	var order []string // unique words in first-seen order
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}

	// Stable sort keeps first-seen order among equal frequencies.
	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}
	return order
}

// sentences returns the sentences of text including terminators.
func sentences(text string) []string {
	return sentenceRe.FindAllString(text, -1)
}

// keywordHits counts how many of the keywords occur in sentence.
func keywordHits(sentence string, keywords []string) int {
	lower := strings.ToLower(sentence)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}

// truncate returns at most n runes of text.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
