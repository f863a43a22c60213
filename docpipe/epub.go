package docpipe

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// epubPolicy keeps structural and media elements and drops scripting,
// styling and event handlers before the DOM walk. EPUB content is untrusted
// zip payload.
var epubPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("alt").OnElements("img")
	p.AllowElements("figure", "figcaption")
	return p
}()

// extractEPUB walks the EPUB spine in reading order and extracts each
// content document. Headings, paragraphs and media markers come out the
// same way as for standalone HTML files.
func extractEPUB(path string) (string, []Section, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return "", nil, fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return "", nil, fmt.Errorf("no rootfiles in epub")
	}
	book := rc.Rootfiles[0]

	var sections []Section
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}

		clean := epubPolicy.SanitizeBytes(data)
		doc, err := html.Parse(bytes.NewReader(clean))
		if err != nil {
			continue
		}
		extractHTMLNodes(doc, &sections)
	}

	if len(sections) == 0 {
		return "", nil, fmt.Errorf("no text content in epub")
	}

	title := strings.TrimSpace(book.Title)
	if title == "" {
		title = firstLine(sections[0].Text)
	}
	return title, sections, nil
}
