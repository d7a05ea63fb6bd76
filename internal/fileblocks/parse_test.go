package fileblocks

import (
	"testing"
)

func TestParse_SingleBlock(t *testing.T) {
	input := "```go\npackage main\n\nfunc main() {}\n```\n"
	blocks := Parse(input)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Lang != "go" {
		t.Fatalf("expected lang go, got %q", blocks[0].Lang)
	}
	if blocks[0].Content != "package main\n\nfunc main() {}" {
		t.Fatalf("unexpected content: %q", blocks[0].Content)
	}
}

func TestParse_MultipleBlocks(t *testing.T) {
	input := "Here you go:\n\n```tsx\nexport default Logo;\n```\n\nAnd the styles:\n\n```css\n.logo {}\n```\n"
	blocks := Parse(input)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Lang != "tsx" || blocks[1].Lang != "css" {
		t.Fatalf("langs = %q, %q", blocks[0].Lang, blocks[1].Lang)
	}
}

func TestParse_NoLanguageTag(t *testing.T) {
	blocks := Parse("```\ncontent here\n```\n")
	if len(blocks) != 1 || blocks[0].Lang != "" || blocks[0].Content != "content here" {
		t.Fatalf("got %+v", blocks)
	}
}

func TestParse_Unterminated(t *testing.T) {
	blocks := Parse("```go\npackage main\n")
	if len(blocks) != 1 || blocks[0].Content != "package main\n" {
		t.Fatalf("got %+v", blocks)
	}
}

func TestParse_NoBlocks(t *testing.T) {
	if blocks := Parse("package main\n"); len(blocks) != 0 {
		t.Fatalf("got %+v", blocks)
	}
}

func TestUnfence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "package main\n\nfunc main() {}", "package main\n\nfunc main() {}\n"},
		{"surrounding space", "\n\n  package main  \n\n", "package main\n"},
		{"fenced", "```go\npackage main\n```", "package main\n"},
		{"fenced with prose", "Sure! Here it is:\n```tsx\nconst A = () => <div/>;\nexport default A;\n```\nEnjoy.", "const A = () => <div/>;\nexport default A;\n"},
		{"largest block wins", "```sh\ngo build\n```\n```go\npackage main\n\nfunc main() {}\n```", "package main\n\nfunc main() {}\n"},
		{"empty", "   ", ""},
		{"empty fence keeps text", "```\n```", "```\n```\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unfence(tt.in); got != tt.want {
				t.Fatalf("Unfence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
