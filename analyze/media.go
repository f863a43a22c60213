package analyze

import "strings"

// mediaTemplates are the spoken descriptions per media kind. Keys match the
// capitalized kind returned by chunk.IsMedia.
var mediaTemplates = map[string]string{
	"Image":  "There is an image on this page. It likely illustrates a concept discussed in this section.",
	"Table":  "There is a table here. It organizes data into rows and columns for comparison.",
	"Graph":  "There is a graph in this section. It visually represents numerical data or trends.",
	"Chart":  "There is a chart here showing statistical or comparative information.",
	"Figure": "There is a figure on this page. It may be a diagram, illustration, or labeled image.",
}

const genericMediaTemplate = "There is a visual element in this section."

// DescribeMedia returns a spoken description for a media placeholder of the
// given kind ("Image", "Table", "Graph", "Chart", "Figure"; anything else
// gets a generic template). When surrounding context text is supplied, the
// top extracted keywords are appended as a topical hint.
func DescribeMedia(kind, context string) string {
	base, ok := mediaTemplates[kind]
	if !ok {
		base = genericMediaTemplate
	}

	if context != "" {
		keywords := Keywords(context, 5)
		if len(keywords) > 0 {
			if len(keywords) > 3 {
				keywords = keywords[:3]
			}
			base += " The visual appears to relate to: " + strings.Join(keywords, ", ") + "."
		}
	}
	return base
}
