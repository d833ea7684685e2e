package extract

import "regexp"

// anchor marks one order header within pasted order-history text.
type anchor struct {
	date  string // placed date as written, e.g. "July 31, 2025"
	total string // total as written, e.g. "57.57"
	id    string // vendor order id, e.g. "702-1234567-1234567"
	start int    // offset where the anchor begins
	end   int    // offset just past the anchor; block content starts here
}

// anchorPattern matches the three-part order header: placed date, total,
// and vendor order id. The parts may be separated by arbitrary content,
// including newlines, so the scan must not be line-anchored.
var anchorPattern = regexp.MustCompile(
	`(?is)order placed\s*([a-z]+ \d{1,2}, \d{4})\s*total\s*\$(\d+\.?\d*)\s*.*?order # (\d{3}-\d{7}-\d{7})`)

// findAnchors scans text in one pass for order headers. Matches are
// leftmost-first and non-overlapping.
func findAnchors(text string) []anchor {
	matches := anchorPattern.FindAllStringSubmatchIndex(text, -1)
	anchors := make([]anchor, 0, len(matches))
	for _, m := range matches {
		anchors = append(anchors, anchor{
			date:  text[m[2]:m[3]],
			total: text[m[4]:m[5]],
			id:    text[m[6]:m[7]],
			start: m[0],
			end:   m[1],
		})
	}
	return anchors
}
