package docpipe

import "fmt"

// Placeholder markers for visual content. The chunker isolates anything
// matching "[KIND ...]" into its own chunk; the reading engine then offers
// a spoken description in place of the visual.

func imageMarker(count int) string {
	return fmt.Sprintf("[IMAGE: %d image(s) on this page]", count)
}

func tableMarker(rows int) string {
	return fmt.Sprintf("[TABLE: %d row(s)]", rows)
}
