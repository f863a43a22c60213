// Package docpipe extracts speakable text from document files.
//
// Supported formats:
//   - .docx: Microsoft Word (zip archive, word/document.xml)
//   - .pdf:  PDF text extraction with per-page image detection
//   - .epub: EPUB (spine traversal, XHTML text extraction)
//   - .md:   Markdown with heading detection
//   - .txt:  plain text, paragraph splitting
//   - .html: DOM walk, boilerplate stripped
//
// Visual content a screen reader cannot speak (images, tables) is replaced
// by inline placeholder markers ("[IMAGE: 2 image(s) on this page]",
// "[TABLE: 3 row(s)]") so the downstream chunker can isolate them and the
// reading engine can offer a description instead of silence.
//
// Usage:
//
//	pipe := docpipe.New(docpipe.Config{})
//	doc, err := pipe.Extract(ctx, "/path/to/lesson.pdf")
//	chunks := chunk.Split(doc.RawText, chunk.Options{})
package docpipe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Pipeline is the document extraction engine.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// Detect returns the document format based on file extension.
func (p *Pipeline) Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx":
		return FormatDocx, nil
	case ".pdf":
		return FormatPDF, nil
	case ".epub":
		return FormatEPUB, nil
	case ".md", ".markdown":
		return FormatMD, nil
	case ".txt", ".text":
		return FormatTXT, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", ext)
	}
}

// Extract parses a document and returns its sections plus the assembled
// raw text with media markers inline.
func (p *Pipeline) Extract(ctx context.Context, path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > p.cfg.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), p.cfg.MaxFileSize)
	}

	format, err := p.Detect(path)
	if err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "extracting document", "path", path, "format", format)

	var sections []Section
	var title string
	var pdfQuality *ExtractionQuality

	switch format {
	case FormatDocx:
		title, sections, err = extractDocx(path)
	case FormatPDF:
		title, sections, pdfQuality, err = extractPDF(path)
	case FormatEPUB:
		title, sections, err = extractEPUB(path)
	case FormatMD:
		title, sections, err = extractMarkdown(path)
	case FormatTXT:
		title, sections, err = extractText(path)
	case FormatHTML:
		title, sections, err = extractHTMLFile(path)
	default:
		return nil, fmt.Errorf("no parser for format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("extract %s (%s): %w", path, format, err)
	}

	return &Document{
		Path:     path,
		Format:   format,
		Title:    title,
		Sections: sections,
		RawText:  assembleRawText(sections),
		Quality:  pdfQuality,
	}, nil
}

// assembleRawText joins section texts one per line. Headings and media
// markers land on their own lines, which is what the sentence splitter in
// the chunker treats as a boundary.
func assembleRawText(sections []Section) string {
	var sb strings.Builder
	for _, s := range sections {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// SupportedFormats returns all supported format extensions.
func SupportedFormats() []string {
	return []string{"pdf", "docx", "epub", "md", "txt", "html"}
}
