package intent

import "testing"

func TestClassifyRuleMatches(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		{"hello there", Greeting},
		{"yes that is correct", Confirm},
		{"no that is wrong", Deny},
		{"my name is harini", SetUsername},
		{"password is one two three four", SetPassword},
		{"show files please", ScanFiles},
		{"scan for documents", ScanFiles},
		{"open the second file", OpenFile},
		{"start reading", StartRead},
		{"read", StartRead},
		{"padhna shuru karo", StartRead},
		{"pause for a moment", Pause},
		{"ruko", Pause},
		{"resume please", Resume},
		{"carry on", Resume},
		{"say that again", Repeat},
		{"dobara bolo", Repeat},
		{"next section please", Next},
		{"go back", Prev},
		{"give me a summary", Summarize},
		{"saar batao", Summarize},
		{"explain it simple", Explain},
		{"samjhao", Explain},
		{"what are the key points", KeyPoints},
		{"mukhya baatein", KeyPoints},
		{"speak louder", Louder},
		{"volume down please", Quieter},
		{"slow down", Slower},
		{"dheere bolo", Slower},
		{"speed up", Faster},
		{"jaldi padho", Faster},
		{"i am confused", Clarify},
		{"describe the picture", Describe},
		{"log out now", Logout},
		{"goodbye", Logout},
	}
	for _, tt := range tests {
		got := Classify(tt.utterance)
		if got.Name != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.utterance, got.Name, tt.want)
			continue
		}
		if got.Confidence != ConfidenceRule {
			t.Errorf("Classify(%q) confidence = %v, want %v", tt.utterance, got.Confidence, ConfidenceRule)
		}
	}
}

func TestClassifyUnknown(t *testing.T) {
	for _, u := range []string{"", "   ", "xyzzy qux", "zzzzz"} {
		got := Classify(u)
		if got.Name != Unknown || got.Confidence != ConfidenceNone {
			t.Errorf("Classify(%q) = %+v, want unknown/0.0", u, got)
		}
	}
}

func TestClassifyLanguageSwitch(t *testing.T) {
	tests := []struct {
		utterance string
		lang      string
	}{
		{"switch to kannada please", "kannada"},
		{"change language to hindi", "hindi"},
		{"speak in tamil", "tamil"},
		{"telugu lo cheppu", "telugu"},
		{"hindi mein bolo", "hindi"},
		{"change to english", "english"},
		{"switch to malayalam", "malayalam"},
	}
	for _, tt := range tests {
		got := Classify(tt.utterance)
		if got.Name != ChangeLanguage {
			t.Errorf("Classify(%q) = %q, want change_language", tt.utterance, got.Name)
			continue
		}
		if got.Confidence != ConfidenceLang {
			t.Errorf("Classify(%q) confidence = %v, want %v", tt.utterance, got.Confidence, ConfidenceLang)
		}
		if got.Payload["language"] != tt.lang {
			t.Errorf("Classify(%q) language = %q, want %q", tt.utterance, got.Payload["language"], tt.lang)
		}
	}
}

func TestLanguageSwitchRequiresTrigger(t *testing.T) {
	// A language name without a trigger term is not a switch command.
	got := Classify("summarize the tamil chapter")
	if got.Name == ChangeLanguage {
		t.Errorf("ungated language mention classified as change_language")
	}
}

// Ordering regressions: these utterances match several rule patterns; table
// order decides the winner.
func TestClassifyOrdering(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		// "read" also matches start_read; modifier rules rank higher.
		{"can you read it louder please", Louder},
		{"read slow please", Slower},
		{"read fast", Faster},
		// "next chapter" mentions no media; must hit next, not describe.
		{"next chapter", Next},
		// "repeat" must reach the repeat rule, not deny.
		{"repeat that", Repeat},
		// "read file" wins over bare "read".
		{"read file two", OpenFile},
		// "start" alone begins reading, not greeting.
		{"start", StartRead},
	}
	for _, tt := range tests {
		if got := Classify(tt.utterance); got.Name != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.utterance, got.Name, tt.want)
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	if got := Classify("PAUSE THE READING"); got.Name != Pause {
		t.Errorf("uppercase input = %q, want pause", got.Name)
	}
}

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my name is harini", "harini"},
		{"username demo", "demo"},
		{"i am arjun kumar", "arjun"}, // first token only
		{"call me priya", "priya"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractUsername(tt.in); got != tt.want {
			t.Errorf("ExtractUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractPassword(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"password is one two three four", "1234"},
		{"my password zero nine", "09"},
		{"pass is abc one", "abc1"},
		// Whole words only: "one" inside "money" survives.
		{"password money one", "money1"},
		{"password is 1234", "1234"},
	}
	for _, tt := range tests {
		if got := ExtractPassword(tt.in); got != tt.want {
			t.Errorf("ExtractPassword(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractFileNumber(t *testing.T) {
	tests := []struct {
		in   string
		idx  int
		ok   bool
	}{
		{"open file 3", 2, true},
		{"open the first one", 0, true},
		{"the fifth document", 4, true},
		{"open the third file", 2, true},
		{"open something", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		idx, ok := ExtractFileNumber(tt.in)
		if idx != tt.idx || ok != tt.ok {
			t.Errorf("ExtractFileNumber(%q) = (%d, %v), want (%d, %v)", tt.in, idx, ok, tt.idx, tt.ok)
		}
	}
}
