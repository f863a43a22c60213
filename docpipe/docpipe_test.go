package docpipe

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/lectio/chunk"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetect(t *testing.T) {
	p := New(Config{})
	tests := []struct {
		path   string
		want   Format
		wantErr bool
	}{
		{"lesson.pdf", FormatPDF, false},
		{"notes.DOCX", FormatDocx, false},
		{"book.epub", FormatEPUB, false},
		{"readme.md", FormatMD, false},
		{"readme.markdown", FormatMD, false},
		{"plain.txt", FormatTXT, false},
		{"page.html", FormatHTML, false},
		{"archive.zip", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := p.Detect(tt.path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Detect(%q): expected error", tt.path)
			}
			continue
		}
		if err != nil {
			t.Errorf("Detect(%q): %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestExtractText(t *testing.T) {
	path := writeFile(t, "lesson.txt", `Chapter 1: The Water Cycle

Water evaporates from oceans and lakes. The vapor rises and cools.

Chapter 2: Condensation

Clouds form when vapor condenses around dust particles.
`)

	p := New(Config{})
	doc, err := p.Extract(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Chapter 1: The Water Cycle" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Format != FormatTXT {
		t.Errorf("format = %s", doc.Format)
	}

	var headings []string
	for _, s := range doc.Sections {
		if s.Type == "heading" {
			headings = append(headings, s.Title)
		}
	}
	if len(headings) != 2 {
		t.Fatalf("headings = %v, want 2", headings)
	}

	// headings must survive as their own lines in the raw text
	lines := strings.Split(doc.RawText, "\n")
	if lines[0] != "Chapter 1: The Water Cycle" {
		t.Errorf("first raw line = %q", lines[0])
	}
}

func TestExtractMarkdown(t *testing.T) {
	path := writeFile(t, "notes.md", `# Photosynthesis

Plants convert sunlight into energy.

## Inputs

| Input | Source |
|-------|--------|
| Water | Roots  |
| Light | Sun    |

![diagram of a leaf](leaf.png)

Carbon dioxide enters through the stomata.
`)

	p := New(Config{})
	doc, err := p.Extract(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Photosynthesis" {
		t.Errorf("title = %q", doc.Title)
	}

	var markers []string
	for _, s := range doc.Sections {
		if s.Type == "media" {
			markers = append(markers, s.Text)
		}
	}
	if len(markers) != 2 {
		t.Fatalf("media markers = %v, want 2", markers)
	}
	if markers[0] != "[TABLE: 3 row(s)]" {
		t.Errorf("table marker = %q", markers[0])
	}
	if markers[1] != "[IMAGE: embedded image]" {
		t.Errorf("image marker = %q", markers[1])
	}

	// the chunker must isolate the markers from surrounding prose
	chunks := chunk.Split(doc.RawText, chunk.Options{})
	mediaCount := 0
	for _, c := range chunks {
		if ok, _ := chunk.IsMedia(c.Text); ok {
			mediaCount++
			if strings.Contains(c.Text, "Carbon dioxide") {
				t.Errorf("prose merged into media chunk: %q", c.Text)
			}
		}
	}
	if mediaCount != 2 {
		t.Errorf("media chunks = %d, want 2", mediaCount)
	}
}

func TestExtractHTML(t *testing.T) {
	path := writeFile(t, "page.html", `<html>
<head><title>Cell Biology</title><style>p{color:red}</style></head>
<body>
<nav>Skip this</nav>
<h1>Cell Biology</h1>
<p>The cell is the basic unit of life.</p>
<img src="cell.png" alt="labeled cell diagram">
<table><tr><th>Organelle</th></tr><tr><td>Nucleus</td></tr></table>
<p style="display:none">hidden tracking text</p>
<script>alert(1)</script>
</body>
</html>`)

	p := New(Config{})
	doc, err := p.Extract(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Cell Biology" {
		t.Errorf("title = %q", doc.Title)
	}
	if strings.Contains(doc.RawText, "hidden tracking") || strings.Contains(doc.RawText, "alert") || strings.Contains(doc.RawText, "Skip this") {
		t.Errorf("boilerplate leaked into raw text: %q", doc.RawText)
	}
	if !strings.Contains(doc.RawText, "[IMAGE: labeled cell diagram]") {
		t.Errorf("missing image marker in %q", doc.RawText)
	}
	if !strings.Contains(doc.RawText, "[TABLE: 2 row(s)]") {
		t.Errorf("missing table marker in %q", doc.RawText)
	}
}

func TestExtractTooLarge(t *testing.T) {
	path := writeFile(t, "big.txt", strings.Repeat("word ", 100))
	p := New(Config{MaxFileSize: 10})
	if _, err := p.Extract(context.Background(), path); err == nil {
		t.Fatal("expected size error")
	}
}

func TestExtractMissingFile(t *testing.T) {
	p := New(Config{})
	if _, err := p.Extract(context.Background(), "/does/not/exist.txt"); err == nil {
		t.Fatal("expected stat error")
	}
}

func TestAssembleRawTextSkipsEmpties(t *testing.T) {
	got := assembleRawText([]Section{
		{Text: "First."},
		{Text: "   "},
		{Text: "Second."},
	})
	if got != "First.\nSecond." {
		t.Errorf("raw text = %q", got)
	}
}
