package itinerary

import "regexp"

// Placement says where Splice puts the inserted text relative to the anchor.
type Placement int

const (
	Before Placement = iota
	After
	Append
)

// Splice returns a copy of original with inserted placed before or after the
// first anchor match. When the anchor is nil, does not match, or placement
// is Append, inserted goes to the end of the text.
func Splice(original string, anchor *regexp.Regexp, inserted string, placement Placement) string {
	if anchor == nil || placement == Append {
		return original + inserted
	}
	loc := anchor.FindStringIndex(original)
	if loc == nil {
		return original + inserted
	}
	pos := loc[0]
	if placement == After {
		pos = loc[1]
	}
	return insertAt(original, pos, inserted)
}

func insertAt(text string, pos int, inserted string) string {
	return text[:pos] + inserted + text[pos:]
}
