package plumber

import "strings"

// DeleteSection removes the first block whose step line matches marker
// ("&name" for an anchor, "*name" for an alias) and returns the edited
// document. The second return value is false when the marker does not
// occur, in which case the document is returned unchanged.
//
// A block spans from its "- step: <marker>" line to the next boundary
// marker. Both ends are pulled backward over leading indentation, blank
// lines, and comment markers, so the deletion takes the block's own
// leading whitespace with it and leaves the following block's leading
// whitespace in place.
//
// DeleteSection is a pure function of its inputs: it removes at most the
// leftmost occurrence and never truncates a marker token.
func DeleteSection(doc Document, marker string, boundaries Boundaries) (Document, bool) {
	start := strings.Index(string(doc), stepPrefix+marker)
	if start < 0 {
		return doc, false
	}

	// Search for the end past the "- step:" token so the block's own
	// step line is not matched as its boundary.
	end := nextBoundary(doc, start+len(stepToken), boundaries)

	start -= indentSpan(doc, start)

	switch {
	case end == len(doc):
		// No boundary follows: the block is last in the document and
		// the deletion runs through its trailing newline.
	case start == 0:
		// The block opens the document. Keeping the separator
		// whitespace would leave a dangling blank line at offset 0, so
		// delete up to the boundary itself.
	default:
		// Pull the end backward so the next block keeps its own
		// leading whitespace and comments.
		end -= indentSpan(doc, end)
	}

	return doc[:start] + doc[end:], true
}
