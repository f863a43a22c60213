package docpipe

import (
	"os"
	"strings"

	"github.com/hazyhaar/lectio/chunk"
)

// extractText extracts content from a plain text file. Paragraphs split on
// blank lines; a paragraph whose first line looks like a chapter title is
// emitted as a heading section so it survives on its own line in RawText.
func extractText(path string) (string, []Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	var sections []Section
	var title string

	for _, para := range splitParagraphs(string(data)) {
		lines := strings.Split(para, "\n")
		first := strings.TrimSpace(lines[0])

		if h := chunk.DetectHeading(first); h != "" {
			if title == "" {
				title = h
			}
			sections = append(sections, Section{
				Title: h,
				Level: 1,
				Text:  h,
				Type:  "heading",
			})
			lines = lines[1:]
		}

		text := strings.TrimSpace(strings.Join(lines, " "))
		text = collapseSpaces(text)
		if text != "" {
			sections = append(sections, Section{Text: text, Type: "paragraph"})
		}
	}

	if title == "" && len(sections) > 0 {
		title = firstLine(sections[0].Text)
	}
	return title, sections, nil
}

// extractMarkdown extracts structured sections from a Markdown file.
// ATX headings (# lines) become heading sections; markdown tables become
// placeholder markers since column layout cannot be spoken linearly.
func extractMarkdown(path string) (string, []Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	lines := strings.Split(string(data), "\n")
	var sections []Section
	var title string
	var currentText strings.Builder
	tableRows := 0

	flushParagraph := func() {
		text := strings.TrimSpace(currentText.String())
		if text != "" {
			sections = append(sections, Section{Text: text, Type: "paragraph"})
		}
		currentText.Reset()
	}
	flushTable := func() {
		if tableRows > 0 {
			sections = append(sections, Section{
				Text: tableMarker(tableRows),
				Type: "media",
			})
			tableRows = 0
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Table rows: | a | b |. The separator row (|---|---|) is layout.
		if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") {
			flushParagraph()
			if !isTableSeparator(trimmed) {
				tableRows++
			}
			continue
		}
		flushTable()

		if strings.HasPrefix(trimmed, "#") {
			flushParagraph()

			level := 0
			for _, ch := range trimmed {
				if ch == '#' {
					level++
				} else {
					break
				}
			}
			if level > 6 {
				level = 6
			}

			headingText := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			headingText = strings.TrimRight(headingText, "#")
			headingText = strings.TrimSpace(headingText)

			if headingText != "" {
				if title == "" {
					title = headingText
				}
				sections = append(sections, Section{
					Title: headingText,
					Level: level,
					Text:  headingText,
					Type:  "heading",
				})
			}
			continue
		}

		// Image embeds: ![alt](url)
		if strings.HasPrefix(trimmed, "![") {
			flushParagraph()
			sections = append(sections, Section{
				Text: "[IMAGE: embedded image]",
				Type: "media",
			})
			continue
		}

		if trimmed == "" {
			flushParagraph()
			continue
		}

		if currentText.Len() > 0 {
			currentText.WriteByte(' ')
		}
		currentText.WriteString(trimmed)
	}
	flushParagraph()
	flushTable()

	if title == "" && len(sections) > 0 {
		title = firstLine(sections[0].Text)
	}
	return title, sections, nil
}

func isTableSeparator(line string) bool {
	for _, r := range line {
		switch r {
		case '|', '-', ':', ' ':
		default:
			return false
		}
	}
	return true
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
