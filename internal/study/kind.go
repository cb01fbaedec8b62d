package study

import "fmt"

// Kind is the type of study material requested for a topic.
type Kind string

const (
	KindNotes     Kind = "notes"
	KindMCQ       Kind = "mcq"
	KindResources Kind = "resources"
	KindSummary   Kind = "summary"
)

// Kinds lists every material kind in display order.
var Kinds = []Kind{KindNotes, KindMCQ, KindSummary, KindResources}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindNotes, KindMCQ, KindResources, KindSummary:
		return k, nil
	default:
		return "", fmt.Errorf("unknown material kind %q", s)
	}
}

// Tracked reports whether reading progress is remembered for this kind.
// Only long-form text (notes and summaries) is tracked.
func (k Kind) Tracked() bool {
	return k == KindNotes || k == KindSummary
}

// Title is the heading shown above generated material.
func (k Kind) Title() string {
	switch k {
	case KindMCQ:
		return "Multiple Choice Questions"
	case KindNotes:
		return "Study Notes"
	case KindResources:
		return "Web Resources"
	case KindSummary:
		return "Quick Revision Summary"
	default:
		return "Content"
	}
}

// LoadingPhrase completes "Crafting ... for <topic>".
func (k Kind) LoadingPhrase() string {
	switch k {
	case KindMCQ:
		return "your MCQs"
	case KindNotes:
		return "your study notes"
	case KindResources:
		return "relevant resources"
	case KindSummary:
		return "a quick summary"
	default:
		return "content"
	}
}

// Action is the label of the button that requests this kind.
func (k Kind) Action() string {
	switch k {
	case KindMCQ:
		return "Generate MCQs"
	case KindNotes:
		return "Generate Notes"
	case KindResources:
		return "Find Resources"
	case KindSummary:
		return "Generate Quick Summary"
	default:
		return string(k)
	}
}
