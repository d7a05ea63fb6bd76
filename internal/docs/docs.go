// Package docs holds the articles shown by "crew docs".
package docs

import (
	"fmt"
	"io"
)

// Topic is one documentation article.
type Topic struct {
	Name    string // slug used as the CLI argument
	Title   string
	Summary string // shown in the index
	Content string // plain text, no ANSI
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Get looks up a topic by name.
func Get(name string) (Topic, error) {
	for _, t := range topics {
		if t.Name == name {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("unknown topic %q (run 'crew docs' to list topics)", name)
}

// WriteIndex lists the topics with their summaries.
func WriteIndex(w io.Writer) {
	fmt.Fprint(w, "\nAvailable topics:\n\n")
	for _, t := range topics {
		fmt.Fprintf(w, "  %-14s %s\n", t.Name, t.Summary)
	}
	fmt.Fprintln(w, "\nRun 'crew docs <topic>' to read a topic.")
}
