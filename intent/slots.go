package intent

import (
	"regexp"
	"strings"
)

// Slot extraction helpers. These are separate pure functions rather than
// rule-table entries: the orchestrator calls them once a set_username,
// set_password or open_file intent has fired, on the same utterance.

// usernameCarrierRe strips the carrier phrases around a spoken username.
var usernameCarrierRe = regexp.MustCompile(`(?i)\b(username|user name|my name is|name is|i am|iam|is|my|call me)\b`)

// passwordCarrierRe strips the carrier phrases around a spoken password.
var passwordCarrierRe = regexp.MustCompile(`(?i)\b(password|pass word|password is|pass is|is|my password)\b`)

// digitWords replaces spelled-out digits with numerals. Whole-word matching
// only: "one" inside "money" must survive.
var digitWords = []struct {
	re    *regexp.Regexp
	digit string
}{
	{regexp.MustCompile(`\bzero\b`), "0"},
	{regexp.MustCompile(`\bone\b`), "1"},
	{regexp.MustCompile(`\btwo\b`), "2"},
	{regexp.MustCompile(`\bthree\b`), "3"},
	{regexp.MustCompile(`\bfour\b`), "4"},
	{regexp.MustCompile(`\bfive\b`), "5"},
	{regexp.MustCompile(`\bsix\b`), "6"},
	{regexp.MustCompile(`\bseven\b`), "7"},
	{regexp.MustCompile(`\beight\b`), "8"},
	{regexp.MustCompile(`\bnine\b`), "9"},
}

// standaloneDigitRe matches a single spoken digit 1-9.
var standaloneDigitRe = regexp.MustCompile(`\b([1-9])\b`)

// ordinalWords maps spoken ordinals to zero-based indices.
var ordinalWords = []struct {
	word *regexp.Regexp
	idx  int
}{
	{regexp.MustCompile(`(?i)\bfirst\b`), 0},
	{regexp.MustCompile(`(?i)\bsecond\b`), 1},
	{regexp.MustCompile(`(?i)\bthird\b`), 2},
	{regexp.MustCompile(`(?i)\bfourth\b`), 3},
	{regexp.MustCompile(`(?i)\bfifth\b`), 4},
}

// ExtractUsername strips carrier phrases ("my name is ...") and returns the
// first remaining token.
func ExtractUsername(utterance string) string {
	t := strings.TrimSpace(usernameCarrierRe.ReplaceAllString(utterance, ""))
	if fields := strings.Fields(t); len(fields) > 0 {
		return fields[0]
	}
	return t
}

// ExtractPassword strips carrier phrases, converts spelled-out digits to
// numerals, and removes all whitespace, so "password one two three four"
// becomes "1234".
func ExtractPassword(utterance string) string {
	t := strings.TrimSpace(passwordCarrierRe.ReplaceAllString(utterance, ""))
	for _, dw := range digitWords {
		t = dw.re.ReplaceAllString(t, dw.digit)
	}
	return strings.Join(strings.Fields(t), "")
}

// ExtractFileNumber resolves a spoken file reference to a zero-based index:
// a standalone digit 1-9 ("open file 3" selects index 2) or an ordinal word
// ("open the third file"). The second result is false when neither form is
// present; absence is not index zero.
func ExtractFileNumber(utterance string) (int, bool) {
	if m := standaloneDigitRe.FindStringSubmatch(utterance); m != nil {
		return int(m[1][0]-'0') - 1, true
	}
	for _, ow := range ordinalWords {
		if ow.word.MatchString(utterance) {
			return ow.idx, true
		}
	}
	return 0, false
}
