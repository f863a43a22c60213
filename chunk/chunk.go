// Package chunk splits extracted document text into an ordered sequence of
// speakable chunks for voice playback.
//
// Splitting strategy:
//  1. Split on sentence boundaries (., !, ? or newline, followed by whitespace)
//  2. Pack whole sentences greedily up to a word budget per chunk
//  3. Media markers ("[IMAGE: ...]", "[TABLE]", ...) always terminate the
//     running chunk and become standalone chunks
//
// A sentence is never split across chunks and a media marker is never merged
// into adjacent prose, so concatenating the sequence reproduces the document's
// sentences in reading order.
package chunk

import (
	"regexp"
	"strings"
)

// Options configures the chunking behaviour.
type Options struct {
	// WordsPerChunk is the word budget per chunk. Default: 80.
	WordsPerChunk int
}

func (o *Options) defaults() {
	if o.WordsPerChunk <= 0 {
		o.WordsPerChunk = 80
	}
}

// Chunk is one speakable fragment in document order.
type Chunk struct {
	Index int    `json:"index"` // 0-based position in the sequence
	Text  string `json:"text"`  // chunk text or media marker
	Words int    `json:"words"` // word count (0 for media markers)
}

// mediaRe matches media placeholder markers emitted by the extraction layer,
// e.g. "[IMAGE: 2 image(s) on this page]" or "[TABLE]". Prefix-anchored:
// a marker chunk starts with the bracket.
var mediaRe = regexp.MustCompile(`(?i)^\[(image|table|graph|figure|chart)([^\]]*)\]`)

// headingKeywordRe matches structural heading openers ("Chapter 2: Forces").
var headingKeywordRe = regexp.MustCompile(`(?i)^(chapter|section|unit|part|lesson)\b`)

// headingNumberRe matches numbered-list headings ("3. Newton's Laws").
var headingNumberRe = regexp.MustCompile(`^[0-9]+\.\s+\w`)

const maxHeadingLen = 80

// Split divides text into speakable chunks. It never returns empty chunks;
// degenerate input yields an empty sequence.
func Split(text string, opts Options) []Chunk {
	opts.defaults()

	var chunks []Chunk
	var current []string
	wordCount := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		joined := strings.Join(current, " ")
		if strings.TrimSpace(joined) != "" {
			chunks = append(chunks, Chunk{Index: len(chunks), Text: joined, Words: wordCount})
		}
		current = nil
		wordCount = 0
	}

	for _, sentence := range Sentences(text) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		// Media markers stand alone; prose trailing the closing bracket
		// goes back through the packing path.
		for {
			m := mediaRe.FindString(sentence)
			if m == "" {
				break
			}
			flush()
			chunks = append(chunks, Chunk{Index: len(chunks), Text: m})
			sentence = strings.TrimSpace(sentence[len(m):])
		}
		if sentence == "" {
			continue
		}

		wc := len(strings.Fields(sentence))
		if wordCount+wc > opts.WordsPerChunk && len(current) > 0 {
			flush()
		}
		current = append(current, sentence)
		wordCount += wc
	}
	flush()

	return chunks
}

// Texts returns just the chunk strings, in order.
func Texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

// IsMedia reports whether a chunk string is a media placeholder and, if so,
// its kind with the first letter capitalized ("Image", "Table", "Graph",
// "Figure", "Chart"). Consumers that receive chunks out of band re-derive
// the classification with this function.
func IsMedia(chunk string) (bool, string) {
	m := mediaRe.FindStringSubmatch(strings.TrimSpace(chunk))
	if m == nil {
		return false, ""
	}
	kind := strings.ToLower(m[1])
	return true, strings.ToUpper(kind[:1]) + kind[1:]
}

// DetectHeading returns the trimmed heading string when text looks like a
// chapter/section title, or "" otherwise. A heading is under 80 characters
// and either opens with a structural keyword or a numbered-list pattern.
func DetectHeading(text string) string {
	stripped := strings.TrimSpace(text)
	if len(stripped) >= maxHeadingLen {
		return ""
	}
	if headingKeywordRe.MatchString(stripped) || headingNumberRe.MatchString(stripped) {
		return stripped
	}
	return ""
}

// Sentences splits text on sentence boundaries: a terminator (., !, ?)
// followed by whitespace, or a newline. Terminators stay attached to their
// sentence.
func Sentences(text string) []string {
	var out []string
	var sb strings.Builder

	flush := func() {
		s := strings.TrimSpace(sb.String())
		if s != "" {
			out = append(out, s)
		}
		sb.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			flush()
			continue
		}
		sb.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Boundary only when followed by whitespace (or end of input),
			// so "3.14" and "e.g." stay intact.
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\t' || runes[i+1] == '\n' {
				flush()
			}
		}
	}
	flush()

	return out
}
