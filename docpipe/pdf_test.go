package docpipe

import (
	"strings"
	"testing"
)

func TestExtractTextFromStream(t *testing.T) {
	stream := []byte(`BT
/F1 12 Tf
72 720 Td
(Forces and Motion) Tj
0 -14 Td
(An object at rest stays at rest.) Tj
T*
[(Net force ) -120 (changes velocity.)] TJ
ET`)

	got := extractTextFromStream(stream)
	for _, want := range []string{
		"Forces and Motion",
		"An object at rest stays at rest.",
		"Net force changes velocity.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain text`, "plain text"},
		{`line\nbreak`, "line\nbreak"},
		{`tab\there`, "tab\there"},
		{`escaped \( paren \)`, "escaped ( paren )"},
		{`back\\slash`, `back\slash`},
		{`octal\040space`, "octal space"},
		{`\110i`, "Hi"},
	}
	for _, tt := range tests {
		if got := decodePDFString([]byte(tt.in)); got != tt.want {
			t.Errorf("decodePDFString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanPDFText(t *testing.T) {
	got := cleanPDFText("  spaced \t\n  out\x00 text  ")
	if got != "spaced out text" {
		t.Errorf("cleanPDFText = %q", got)
	}
}

func TestQualityNeedsOCR(t *testing.T) {
	tests := []struct {
		name string
		q    ExtractionQuality
		want bool
	}{
		{"scanned", ExtractionQuality{CharsPerPage: 5, PrintableRatio: 1.0, HasImageStreams: true}, true},
		{"garbage encoding", ExtractionQuality{CharsPerPage: 2000, PrintableRatio: 0.4}, true},
		{"clean text", ExtractionQuality{CharsPerPage: 1800, PrintableRatio: 0.99}, false},
		{"sparse but no images", ExtractionQuality{CharsPerPage: 10, PrintableRatio: 0.99}, false},
	}
	for _, tt := range tests {
		if got := tt.q.NeedsOCR(); got != tt.want {
			t.Errorf("%s: NeedsOCR = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCountVisualRefs(t *testing.T) {
	text := "See figure 3 for the full diagram. Table 2 lists the values. Nothing else."
	if got := countVisualRefs(text); got < 2 {
		t.Errorf("countVisualRefs = %d, want >= 2", got)
	}
	if got := countVisualRefs("no references here"); got != 0 {
		t.Errorf("countVisualRefs = %d, want 0", got)
	}
}

func TestWordlikeRatio(t *testing.T) {
	if got := wordlikeRatio("normal words in sentences"); got != 1.0 {
		t.Errorf("ratio = %v, want 1.0", got)
	}
	if got := wordlikeRatio(""); got != 0 {
		t.Errorf("empty ratio = %v, want 0", got)
	}
}
