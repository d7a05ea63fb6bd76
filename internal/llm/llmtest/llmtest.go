// Package llmtest provides a scripted llm.Completer for tests.
package llmtest

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/jorge-barreto/crew/internal/llm"
)

var functionRe = regexp.MustCompile(`FUNCTION def (\w+)\(`)

// FunctionName returns the AI function named by a prompt, or "".
func FunctionName(prompt string) string {
	m := functionRe.FindStringSubmatch(prompt)
	if m == nil {
		return ""
	}
	return m[1]
}

// Call is one recorded request.
type Call struct {
	Function string
	Prompt   string
}

// Fake answers each request with the next reply queued for its function.
// A request with nothing queued fails, which a Caller retries once.
type Fake struct {
	mu      sync.Mutex
	replies map[string][]string
	calls   []Call
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{replies: make(map[string][]string)}
}

// Reply queues replies for function, returning f for chaining.
func (f *Fake) Reply(function string, replies ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[function] = append(f.replies[function], replies...)
	return f
}

func (f *Fake) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var prompt string
	if len(messages) > 0 {
		prompt = messages[0].Content
	}
	name := FunctionName(prompt)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Function: name, Prompt: prompt})
	q := f.replies[name]
	if len(q) == 0 {
		return "", fmt.Errorf("llmtest: no reply queued for %q", name)
	}
	f.replies[name] = q[1:]
	return q[0], nil
}

// Calls returns every recorded request in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many requests named function.
func (f *Fake) Count(function string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Function == function {
			n++
		}
	}
	return n
}

// Functions returns the function name of each request in order.
func (f *Fake) Functions() []string {
	var out []string
	for _, c := range f.Calls() {
		out = append(out, c.Function)
	}
	return out
}

// Caller wraps f in an llm.Caller with logging disabled.
func (f *Fake) Caller() *llm.Caller {
	return llm.NewCaller(f, nil)
}
