package markup

import "regexp"

// SegmentType identifies inline formatting.
type SegmentType int

const (
	Text SegmentType = iota
	InlineCode
	Bold
)

func (t SegmentType) String() string {
	switch t {
	case InlineCode:
		return "code"
	case Bold:
		return "bold"
	default:
		return "text"
	}
}

// Segment is a run of inline text with one formatting.
type Segment struct {
	Type SegmentType `json:"type"`
	Text string      `json:"text"`
}

var inlineSpan = regexp.MustCompile("(`[^`]+`|\\*\\*[^*]+\\*\\*)")

// Inline splits block text into plain, code and bold segments, scanning left
// to right. Spans do not nest and there is no escaping.
func Inline(text string) []Segment {
	var segs []Segment
	last := 0
	for _, loc := range inlineSpan.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segs = append(segs, Segment{Type: Text, Text: text[last:loc[0]]})
		}
		span := text[loc[0]:loc[1]]
		if span[0] == '`' {
			segs = append(segs, Segment{Type: InlineCode, Text: span[1 : len(span)-1]})
		} else {
			segs = append(segs, Segment{Type: Bold, Text: span[2 : len(span)-2]})
		}
		last = loc[1]
	}
	if last < len(text) {
		segs = append(segs, Segment{Type: Text, Text: text[last:]})
	}
	return segs
}
