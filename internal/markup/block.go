// Package markup classifies the markdown subset produced by the
// generative-text service into display blocks and inline segments.
package markup

// BlockType identifies the kind of a display block.
type BlockType int

const (
	Heading BlockType = iota
	Paragraph
	ListItem
	Blockquote
	Rule
	Image
	Code
	Spacer
)

func (t BlockType) String() string {
	switch t {
	case Heading:
		return "heading"
	case Paragraph:
		return "paragraph"
	case ListItem:
		return "list_item"
	case Blockquote:
		return "blockquote"
	case Rule:
		return "rule"
	case Image:
		return "image"
	case Code:
		return "code"
	case Spacer:
		return "spacer"
	default:
		return "unknown"
	}
}

// Block is one display element. Which fields are set depends on Type:
//
//	Heading     Level (1-3), Text
//	Paragraph   Text
//	ListItem    Indent, Text
//	Blockquote  Text
//	Image       Alt, Src
//	Code        Lang, Text (raw, newline-joined)
//	Rule, Spacer  nothing
type Block struct {
	Type   BlockType `json:"type"`
	Level  int       `json:"level,omitempty"`
	Indent int       `json:"indent,omitempty"`
	Text   string    `json:"text,omitempty"`
	Alt    string    `json:"alt,omitempty"`
	Src    string    `json:"src,omitempty"`
	Lang   string    `json:"lang,omitempty"`
}

// Inline reports whether the block's Text carries inline formatting.
func (b Block) Inline() bool {
	switch b.Type {
	case Heading, Paragraph, ListItem, Blockquote:
		return true
	default:
		return false
	}
}
