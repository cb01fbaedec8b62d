package markup

import (
	"regexp"
	"strings"
	"unicode"
)

const fence = "```"

var imageLine = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)

// Parse splits text into display blocks in a single pass. It is pure: the
// same text always yields the same blocks.
//
// Fence lines toggle a code block and win over every other rule. Outside a
// code block the first matching rule classifies the line: image, "# ",
// "## ", "### ", horizontal rule, "> ", "* " or "- ", paragraph. Blank lines
// become a single Spacer, never leading and never two in a row. A code block
// still open at the end is emitted if it has content.
func Parse(text string) []Block {
	var (
		blocks []Block
		inCode bool
		lang   string
		buf    []string
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, fence) {
			if inCode {
				blocks = append(blocks, Block{Type: Code, Lang: lang, Text: strings.Join(buf, "\n")})
				buf, lang = nil, ""
			} else {
				lang = strings.TrimSpace(trimmed[len(fence):])
			}
			inCode = !inCode
			continue
		}
		if inCode {
			buf = append(buf, line)
			continue
		}

		if b, ok := classify(line, trimmed); ok {
			blocks = append(blocks, b)
			continue
		}
		if len(blocks) > 0 && blocks[len(blocks)-1].Type != Spacer {
			blocks = append(blocks, Block{Type: Spacer})
		}
	}

	if inCode && len(buf) > 0 {
		blocks = append(blocks, Block{Type: Code, Lang: lang, Text: strings.Join(buf, "\n")})
	}
	return blocks
}

// classify applies the line rules in priority order. It returns false for a
// blank line.
func classify(line, trimmed string) (Block, bool) {
	if m := imageLine.FindStringSubmatch(trimmed); m != nil {
		return Block{Type: Image, Alt: m[1], Src: m[2]}, true
	}

	switch {
	case strings.HasPrefix(line, "# "):
		return Block{Type: Heading, Level: 1, Text: line[2:]}, true
	case strings.HasPrefix(line, "## "):
		return Block{Type: Heading, Level: 2, Text: line[3:]}, true
	case strings.HasPrefix(line, "### "):
		return Block{Type: Heading, Level: 3, Text: line[4:]}, true
	case trimmed == "---" || trimmed == "___" || trimmed == "***":
		return Block{Type: Rule}, true
	case strings.HasPrefix(trimmed, "> "):
		return Block{Type: Blockquote, Text: trimmed[2:]}, true
	case strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "- "):
		return Block{Type: ListItem, Indent: leadingSpace(line) / 2, Text: trimmed[2:]}, true
	case trimmed != "":
		return Block{Type: Paragraph, Text: line}, true
	}
	return Block{}, false
}

func leadingSpace(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// Plain re-serializes paragraph blocks back to text, one per line.
// Other block types are skipped.
func Plain(blocks []Block) string {
	var lines []string
	for _, b := range blocks {
		if b.Type == Paragraph {
			lines = append(lines, b.Text)
		}
	}
	return strings.Join(lines, "\n")
}
