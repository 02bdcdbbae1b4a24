package plan

import "regexp"

// dayHeadingRe matches "# Day 3" and "## Day 3: Legs" at the start of a line.
// Level 3+ headings and inline mentions of "Day N" are not section boundaries.
var dayHeadingRe = regexp.MustCompile(`(?m)^[ \t]*#{1,2}[ \t]*Day[ \t]+(\d+)`)

// Segment is the verbatim text of one day, heading line included.
type Segment struct {
	DayNumber string
	Raw       string
}

// SegmentText splits plan text into per-day sections in text order. Each section
// runs from its heading to the next heading or the end of the text. Text
// without any day heading yields no segments.
func SegmentText(text string) []Segment {
	locs := dayHeadingRe.FindAllStringSubmatchIndex(text, -1)
	segments := make([]Segment, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, Segment{
			DayNumber: text[loc[2]:loc[3]],
			Raw:       text[loc[0]:end],
		})
	}
	return segments
}
