package plumber

// indentSpan reports how many characters immediately before pos belong
// to a block's leading indentation: newlines, spaces, and comment
// markers. Subtracting the count from pos pulls a deletion boundary
// backward past blank lines, indentation, and any comment lines sitting
// directly above the block.
//
// The scan runs from pos-1 down to offset 1; offset 0 is never consumed,
// so a deletion can never swallow the first character of the document
// through indentation alone.
func indentSpan(doc Document, pos int) int {
	count := 0
	for i := pos - 1; i > 0; i-- {
		c := doc[i]
		if c != '\n' && c != ' ' && c != commentChar {
			break
		}
		count++
	}
	return count
}
