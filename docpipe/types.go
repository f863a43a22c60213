package docpipe

// Format identifies a document type.
type Format string

const (
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
	FormatEPUB Format = "epub"
	FormatMD   Format = "md"
	FormatTXT  Format = "txt"
	FormatHTML Format = "html"
)

// Section is a structural unit of a document.
type Section struct {
	Title    string            `json:"title,omitempty"`
	Level    int               `json:"level"`              // heading level 1-6, 0 for body
	Text     string            `json:"text"`               // extracted text or media marker
	Type     string            `json:"type"`               // heading, paragraph, table, media, page
	Metadata map[string]string `json:"metadata,omitempty"` // extra attributes
}

// Document is the result of extracting content from a file. RawText is the
// section texts joined line by line, with media placeholders ("[IMAGE: ...]",
// "[TABLE: ...]") inline where the visual content sat, ready for chunking.
type Document struct {
	Path     string              `json:"path"`
	Format   Format              `json:"format"`
	Title    string              `json:"title"`
	Sections []Section           `json:"sections"`
	RawText  string              `json:"raw_text"`
	Quality  *ExtractionQuality  `json:"quality,omitempty"` // PDF extraction quality metrics
}
