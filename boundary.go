package plumber

import "strings"

// nextBoundary returns the offset of the nearest occurrence at or after
// start of any marker in boundaries. Markers that do not occur again are
// ignored. When no marker occurs at all the block is the last thing in
// the document, and the end of the document is returned.
func nextBoundary(doc Document, start int, boundaries Boundaries) int {
	next := len(doc)
	for _, marker := range boundaries {
		if i := strings.Index(string(doc[start:]), marker); i >= 0 && start+i < next {
			next = start + i
		}
	}
	return next
}
