// Package intent maps transcribed voice utterances to structured control
// intents for the reading assistant.
//
// Classification is deliberately rule-based: an ordered table of regular
// expressions over English and transliterated Indian-language keywords.
// Matching is deterministic and auditable, works offline, and degrades to
// the "unknown" intent instead of failing. Language-switch commands are
// detected first because they are meta-commands that must preempt content
// commands.
package intent

import "strings"

// Confidence levels for rule-based matches. These are fixed tags, not
// calibrated probabilities.
const (
	ConfidenceLang = 0.95 // trigger-gated language switch
	ConfidenceRule = 0.9  // ordinary rule-table match
	ConfidenceNone = 0.0  // unknown
)

// Intent is the immutable result of classifying one utterance.
type Intent struct {
	Name       string            `json:"name"`
	Confidence float64           `json:"confidence"`
	Payload    map[string]string `json:"payload,omitempty"`
}

// Intent names produced by the classifier. Unmatched input yields Unknown.
const (
	Greeting       = "greeting"
	Confirm        = "confirm"
	Deny           = "deny"
	SetUsername    = "set_username"
	SetPassword    = "set_password"
	ScanFiles      = "scan_files"
	OpenFile       = "open_file"
	StartRead      = "start_read"
	Pause          = "pause"
	Resume         = "resume"
	Repeat         = "repeat"
	Next           = "next"
	Prev           = "prev"
	Summarize      = "summarize"
	Explain        = "explain"
	KeyPoints      = "key_points"
	Louder         = "louder"
	Quieter        = "quieter"
	Slower         = "slower"
	Faster         = "faster"
	Clarify        = "clarify"
	Describe       = "describe"
	Logout         = "logout"
	ChangeLanguage = "change_language"
	Unknown        = "unknown"
)

// Classify maps a transcribed utterance to an Intent. It never fails:
// empty or unrecognized input yields the Unknown intent with confidence 0.
func Classify(utterance string) Intent {
	t := strings.ToLower(strings.TrimSpace(utterance))
	if t == "" {
		return Intent{Name: Unknown, Confidence: ConfidenceNone}
	}

	// Language switching preempts every content rule. Gated on a trigger
	// term so that a language name mentioned in passing does not switch.
	if lang, ok := detectLanguageSwitch(t); ok {
		return Intent{
			Name:       ChangeLanguage,
			Confidence: ConfidenceLang,
			Payload:    map[string]string{"language": lang},
		}
	}

	// First matching rule wins; table order is the priority policy.
	for _, rule := range rules {
		for _, re := range rule.patterns {
			if re.MatchString(t) {
				return Intent{Name: rule.name, Confidence: ConfidenceRule}
			}
		}
	}

	return Intent{Name: Unknown, Confidence: ConfidenceNone}
}
