package intent

import "regexp"

// rule pairs an intent name with its utterance patterns. Keywords mix
// English with Hindi, Kannada, Tamil and Telugu transliterations so users
// can code-switch mid-session.
type rule struct {
	name     string
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// rules is evaluated top to bottom and the first match wins, so the order
// is itself the disambiguation policy. Modifier and navigation commands sit
// above start_read on purpose: "read it louder" means louder, not start.
// Do not reorder without updating the ordering regression tests.
var rules = []rule{
	{Confirm, compileAll(`\b(yes|correct|right|confirm|ok|okay|sure|haan|bilkul)\b`)},
	{Deny, compileAll(`\b(no|wrong|nahi|nope|incorrect)\b`)},
	{Clarify, compileAll(`\b(didn.t understand|not clear|confused|samjha nahi|puriyala|artagalilla|unclear)\b`)},
	{SetUsername, compileAll(`\b(username|user name|my name is|name is|i am|iam)\b`)},
	{SetPassword, compileAll(`\b(password|pass word|password is|pass is)\b`)},
	{Pause, compileAll(`\b(stop|pause|wait|ruko|nillu|nirthu|hold on)\b`)},
	{Resume, compileAll(`\b(resume|continue|chaliye|mundhe|go on|carry on)\b`)},
	{Repeat, compileAll(`\b(repeat|again|dobara|marubar|matte|phir se|once more|say again)\b`)},
	{Next, compileAll(`\b(next|skip|forward|agle|munde|munbu|next chapter|next section)\b`)},
	{Prev, compileAll(`\b(previous|back|peeche|hinde|pinthu|last section)\b`)},
	{Summarize, compileAll(`\b(summarize|summary|short|brief|saar|saransh|brief me)\b`)},
	{Explain, compileAll(`\b(explain|simple|easy|samjhao|artha|vilak|in simple words|simple way)\b`)},
	{KeyPoints, compileAll(`\b(important|key points|highlights|mukhya|muhtvapurna|main points)\b`)},
	{Louder, compileAll(`\b(louder|volume up|zyada|jaasti|adhikam|speak louder|more volume)\b`)},
	{Quieter, compileAll(`\b(quieter|softer|volume down|kum|kam|less volume|lower volume)\b`)},
	{Slower, compileAll(`\b(slower|slow down|dheere|melle|thire|read slow|slowly)\b`)},
	{Faster, compileAll(`\b(faster|speed up|jaldi|bega|veg|read fast)\b`)},
	{Describe, compileAll(`\b(describe|image|graph|chart|picture|table|diagram|figure)\b`)},
	{ScanFiles, compileAll(`\b(scan|list|find|search|discover|show files|upload|documents|files)\b`)},
	{OpenFile, compileAll(`\b(open|load|select|choose|read file)\b`)},
	{StartRead, compileAll(`\b(start reading|begin reading|read|padhna shuru|odhu|chadhu|start)\b`)},
	{Logout, compileAll(`\b(logout|log out|exit|bye|goodbye|close|quit)\b`)},
	{Greeting, compileAll(`\b(hi|hello|hey|ready|namaste)\b`)},
}

// language switch detection ------------------------------------------------

// langPattern pairs a language name with its spoken spellings: native
// script plus common Latin transliterations (including frequent
// mis-transcriptions like "telgu").
type langPattern struct {
	name     string
	patterns []*regexp.Regexp
}

var langPatterns = []langPattern{
	{"english", compileAll(`english`, `angrezi`)},
	{"hindi", compileAll(`hindi`, `हिंदी`, `hindhi`)},
	{"kannada", compileAll(`kannada`, `ಕನ್ನಡ`, `kannad`)},
	{"tamil", compileAll(`tamil`, `தமிழ்`, `tamizh`)},
	{"telugu", compileAll(`telugu`, `తెలుగు`, `telgu`)},
	{"malayalam", compileAll(`malayalam`, `മലയാളം`, `malayaalam`)},
	{"marathi", compileAll(`marathi`, `मराठी`, `marati`)},
	{"bengali", compileAll(`bengali`, `bangla`, `বাংলা`)},
	{"gujarati", compileAll(`gujarati`, `ગુજરાતી`, `gujrati`)},
	{"punjabi", compileAll(`punjabi`, `ਪੰਜਾਬੀ`, `panjabi`)},
	{"urdu", compileAll(`urdu`, `اردو`)},
	{"odia", compileAll(`odia`, `oriya`, `ଓଡ଼ିଆ`)},
	{"assamese", compileAll(`assamese`, `অসমীয়া`)},
}

// langTriggers gate language detection: a language name alone is not a
// switch command ("tamil literature" must not switch), but "switch to
// tamil" or "tamil mein bolo" must.
var langTriggers = compileAll(
	`\bchange\b`, `\bswitch\b`, `\bspeak in\b`, `\bin\b`, `\blanguage\b`,
	`\bbhasha\b`, `\bmein\b`, `\blo\b`, `\bmadhye\b`, `\bil\b`, `\bto\b`,
)

// detectLanguageSwitch returns the target language when the utterance
// contains both a trigger term and a known language pattern.
func detectLanguageSwitch(t string) (string, bool) {
	triggered := false
	for _, re := range langTriggers {
		if re.MatchString(t) {
			triggered = true
			break
		}
	}
	if !triggered {
		return "", false
	}
	for _, lp := range langPatterns {
		for _, re := range lp.patterns {
			if re.MatchString(t) {
				return lp.name, true
			}
		}
	}
	return "", false
}
