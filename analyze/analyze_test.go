package analyze

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestKeywords(t *testing.T) {
	text := "Gravity pulls objects together. Gravity acts between masses. Objects with larger masses feel stronger gravity."
	got := Keywords(text, 10)

	if len(got) == 0 {
		t.Fatal("expected keywords, got none")
	}
	if got[0] != "gravity" {
		t.Errorf("top keyword = %q, want gravity", got[0])
	}
	for _, kw := range got {
		if len(kw) < 4 {
			t.Errorf("keyword %q shorter than 4 chars", kw)
		}
		if stopWords[kw] {
			t.Errorf("stop word %q extracted as keyword", kw)
		}
		if kw != strings.ToLower(kw) {
			t.Errorf("keyword %q not lowercase", kw)
		}
	}
}

func TestKeywordsTieOrder(t *testing.T) {
	// All words appear once; ties must preserve first-seen order.
	got := Keywords("zebra apple mango apple zebra mango", 3)
	want := []string{"zebra", "apple", "mango"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("Keywords = %v, want %v", got, want)
		}
	}
}

func TestKeywordsEmpty(t *testing.T) {
	if got := Keywords("", 10); len(got) != 0 {
		t.Errorf("Keywords(\"\") = %v, want empty", got)
	}
	if got := Keywords("the and was is", 10); len(got) != 0 {
		t.Errorf("stop-words-only text yielded %v", got)
	}
}

func TestSummarizeShortTextUnchanged(t *testing.T) {
	text := "One sentence here. Another sentence follows."
	if got := Summarize(text, 3); got != text {
		t.Errorf("Summarize(short) = %q, want unchanged input", got)
	}
}

func TestSummarizePreservesDocumentOrder(t *testing.T) {
	text := "Photosynthesis converts light into energy. " +
		"Plants use chlorophyll for this process. " +
		"Some random aside about weather. " +
		"Another filler sentence with nothing. " +
		"Photosynthesis sustains nearly all life on Earth."
	got := Summarize(text, 3)

	sents := sentences(got)
	if len(sents) > 3 {
		t.Fatalf("summary has %d sentences, want <= 3", len(sents))
	}
	// Selected sentences must appear in original order.
	lastIdx := -1
	for _, s := range sents {
		idx := strings.Index(text, strings.TrimSpace(s))
		if idx < 0 {
			t.Fatalf("summary sentence %q not found in source", s)
		}
		if idx < lastIdx {
			t.Errorf("summary out of document order: %q before earlier material", s)
		}
		lastIdx = idx
	}
}

func TestSummarizeNoSentences(t *testing.T) {
	raw := strings.Repeat("x", 500) // no terminators at all
	got := Summarize(raw, 3)
	if len(got) != 400 {
		t.Errorf("fallback length = %d, want 400", len(got))
	}
}

func TestExplain(t *testing.T) {
	text := "Velocity (the rate of change of position) is a vector; it has direction. " +
		"Speed is the magnitude. A third sentence. A fourth sentence."
	got := Explain(text)

	if strings.Contains(got, "rate of change") {
		t.Error("parenthetical aside not removed")
	}
	if strings.Contains(got, ";") {
		t.Error("semicolon not converted to sentence break")
	}
	if n := len(sentences(got)); n > 3 {
		t.Errorf("Explain kept %d sentences, want <= 3", n)
	}
	if strings.Contains(got, "fourth") {
		t.Error("Explain kept more than the first three sentences")
	}
}

func TestExplainFallback(t *testing.T) {
	raw := strings.Repeat("y", 350)
	got := Explain(raw)
	if len(got) != 300 {
		t.Errorf("fallback length = %d, want 300", len(got))
	}
}

func TestKeyPointsNumbering(t *testing.T) {
	text := "Energy cannot be created or destroyed. Energy changes form constantly. " +
		"Heat is a form of energy. The weather was nice. Kinetic energy depends on motion."
	got := KeyPoints(text, 4)

	if !strings.HasPrefix(got, "Point 1:") {
		t.Errorf("output does not start with Point 1: %q", got)
	}
	if strings.Count(got, "Point ") > 4 {
		t.Errorf("more than 4 points in %q", got)
	}
	if strings.Contains(got, "Point 0") {
		t.Error("points must be 1-indexed")
	}
}

func TestKeyPointsFallbackVerbatim(t *testing.T) {
	// Short words only: no extractable keywords, so no sentence scores > 0.
	text := "It is ok. We can go. He did it."
	got := KeyPoints(text, 2)
	if !strings.HasPrefix(got, "Point 1: It is ok.") {
		t.Errorf("fallback should use first sentences verbatim, got %q", got)
	}
	if strings.Count(got, "Point ") != 2 {
		t.Errorf("want exactly 2 points, got %q", got)
	}
}

func TestDescribeMedia(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"Image", "image"},
		{"Table", "table"},
		{"Graph", "graph"},
		{"Chart", "chart"},
		{"Figure", "figure"},
		{"Hologram", "visual element"},
	}
	for _, tt := range tests {
		got := DescribeMedia(tt.kind, "")
		if !strings.Contains(got, tt.want) {
			t.Errorf("DescribeMedia(%q) = %q, missing %q", tt.kind, got, tt.want)
		}
	}
}

func TestDescribeMediaWithContext(t *testing.T) {
	got := DescribeMedia("Graph", "Temperature rises steadily. Temperature affects pressure. Pressure and temperature correlate.")
	if !strings.Contains(got, "relate to:") {
		t.Errorf("context keywords not appended: %q", got)
	}
	if !strings.Contains(got, "temperature") {
		t.Errorf("top context keyword missing: %q", got)
	}
}

// fakeRemote scripts remote provider behavior for fallback tests.
type fakeRemote struct {
	summary string
	desc    string
	err     error
}

func (f *fakeRemote) Summarize(_ context.Context, _, _ string) (string, error) {
	return f.summary, f.err
}
func (f *fakeRemote) DescribeMedia(_ context.Context, _, _ string) (string, error) {
	return f.desc, f.err
}

func TestAnalyzerRemoteFirst(t *testing.T) {
	a := New(Config{Remote: &fakeRemote{summary: "remote summary", desc: "remote description"}})
	ctx := context.Background()

	if got := a.Summarize(ctx, "Some text here.", "en"); got != "remote summary" {
		t.Errorf("Summarize = %q, want remote answer", got)
	}
	if got := a.DescribeMedia(ctx, "Image", ""); got != "remote description" {
		t.Errorf("DescribeMedia = %q, want remote answer", got)
	}
}

func TestAnalyzerFallsBackSilently(t *testing.T) {
	a := New(Config{Remote: &fakeRemote{err: errors.New("quota exceeded")}})
	ctx := context.Background()

	text := "First fact. Second fact. Third fact. Fourth fact."
	got := a.Summarize(ctx, text, "en")
	if got == "" {
		t.Fatal("fallback produced empty summary")
	}
	if want := Summarize(text, DefaultMaxSentences); got != want {
		t.Errorf("fallback = %q, want local result %q", got, want)
	}

	if got := a.DescribeMedia(ctx, "Table", ""); !strings.Contains(got, "table") {
		t.Errorf("fallback description = %q", got)
	}
}

func TestAnalyzerLocalOnly(t *testing.T) {
	a := New(Config{})
	got := a.Summarize(context.Background(), "Only one sentence.", "en")
	if got != "Only one sentence." {
		t.Errorf("local-only Summarize = %q", got)
	}
}
