package docpipe

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
)

// extractDocx parses a .docx file by reading word/document.xml from the ZIP
// archive. Paragraphs become sections; tables are replaced by a placeholder
// marker carrying the row count.
func extractDocx(path string) (string, []Section, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", nil, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var sections []Section
	var title string
	var currentText strings.Builder
	var inParagraph bool
	var paragraphStyle string
	tableDepth := 0
	tableRows := 0
	imageCount := 0

	flushPara := func() {
		text := strings.TrimSpace(currentText.String())
		currentText.Reset()
		if text == "" {
			return
		}
		level := docxHeadingLevel(paragraphStyle)
		if level > 0 {
			if title == "" {
				title = text
			}
			sections = append(sections, Section{
				Title: text,
				Level: level,
				Text:  text,
				Type:  "heading",
			})
		} else {
			sections = append(sections, Section{Text: text, Type: "paragraph"})
		}
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth == 1 {
					tableRows++
				}
			case "p":
				if tableDepth == 0 {
					inParagraph = true
					currentText.Reset()
					paragraphStyle = ""
				}
			case "pStyle":
				if inParagraph {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							paragraphStyle = attr.Value
						}
					}
				}
			case "drawing", "pict":
				// Inline image or legacy picture.
				if tableDepth == 0 {
					imageCount++
				}
			}

		case xml.CharData:
			if inParagraph && tableDepth == 0 {
				currentText.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
				if tableDepth == 0 {
					sections = append(sections, Section{
						Text: tableMarker(tableRows),
						Type: "media",
					})
					tableRows = 0
				}
			case "p":
				if inParagraph && tableDepth == 0 {
					inParagraph = false
					if imageCount > 0 {
						flushPara()
						sections = append(sections, Section{
							Text: fmt.Sprintf("[IMAGE: %d image(s)]", imageCount),
							Type: "media",
						})
						imageCount = 0
						continue
					}
					flushPara()
				}
			}
		}
	}

	return title, sections, nil
}

// docxHeadingLevel extracts the heading level from a paragraph style name.
// e.g. "Heading1" → 1, "Heading2" → 2, "Title" → 1, etc.
func docxHeadingLevel(style string) int {
	lower := strings.ToLower(style)

	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}

	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}
