package plumber

import "strings"

// RemoveStep removes a step's anchor block and every alias block from
// the document. The second return value is false when the document has
// no anchor for the step; aliases are deliberately left alone in that
// case, since a reference without a definition means the document is
// already in a state this tool should not touch.
//
// Each alias is removed in a fresh pass over the current document, so
// any number of references is handled and the first remaining
// occurrence is always the one deleted.
func RemoveStep(doc Document, step string, boundaries Boundaries) (Document, bool) {
	out, ok := DeleteSection(doc, anchorSigil+step, boundaries)
	if !ok {
		return doc, false
	}

	alias := aliasSigil + step
	for strings.Contains(string(out), stepPrefix+alias) {
		out, _ = DeleteSection(out, alias, boundaries)
	}

	return out, true
}
