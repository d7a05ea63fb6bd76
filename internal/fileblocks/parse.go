// Package fileblocks extracts code from generated text that may wrap it in
// markdown fences.
package fileblocks

import (
	"regexp"
	"strings"
)

// Block is one fenced code block.
type Block struct {
	Lang    string // e.g. "tsx", empty when untagged
	Content string // content between the fences
}

var fenceOpenRe = regexp.MustCompile("^```\\s*([\\w+-]*)")

// Parse extracts fenced code blocks from text in order of appearance.
// An unterminated final block runs to the end of the text.
func Parse(text string) []Block {
	lines := strings.Split(text, "\n")
	var blocks []Block
	var current *Block
	var buf strings.Builder

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if current != nil {
			if trimmed == "```" {
				current.Content = buf.String()
				blocks = append(blocks, *current)
				current = nil
				buf.Reset()
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(line)
			continue
		}

		if m := fenceOpenRe.FindStringSubmatch(trimmed); m != nil {
			current = &Block{Lang: m[1]}
			buf.Reset()
		}
	}
	if current != nil {
		current.Content = buf.String()
		blocks = append(blocks, *current)
	}
	return blocks
}

// Unfence returns the code in text. When text contains fenced blocks the
// largest one is returned; otherwise text is returned trimmed. The result
// always ends in a single newline unless empty.
func Unfence(text string) string {
	code := strings.TrimSpace(text)
	if strings.Contains(code, "```") {
		best := ""
		for _, b := range Parse(code) {
			if len(b.Content) > len(best) {
				best = b.Content
			}
		}
		if strings.TrimSpace(best) != "" {
			code = strings.TrimSpace(best)
		}
	}
	if code == "" {
		return ""
	}
	return code + "\n"
}
