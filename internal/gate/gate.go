// Package gate asks the operator questions on the terminal, including the
// confirmation required before AI-written code is executed.
package gate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jorge-barreto/crew/internal/ux"
)

// ErrOperatorAbort is returned when the operator declines to run generated code.
var ErrOperatorAbort = errors.New("operator aborted: generated code was not approved")

type line struct {
	text string
	err  error
}

// Prompter reads answers line by line from one input stream.
type Prompter struct {
	lines chan line
	// Auto approves every confirmation without reading input.
	Auto bool
}

// New starts reading lines from in. The reader goroutine exits at EOF.
func New(in io.Reader, auto bool) *Prompter {
	p := &Prompter{lines: make(chan line), Auto: auto}
	go func() {
		r := bufio.NewReader(in)
		for {
			s, err := r.ReadString('\n')
			if err != nil && s == "" {
				p.lines <- line{err: err}
				close(p.lines)
				return
			}
			p.lines <- line{text: strings.TrimSpace(s)}
		}
	}()
	return p
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

// Ask prints question and returns the first non-empty answer.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	ux.Prompt(question)
	for {
		s, err := p.readLine(ctx)
		if err != nil {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		if s != "" {
			return s, nil
		}
	}
}

// Decision is a parsed confirmation answer.
type Decision int

const (
	Unknown Decision = iota
	Proceed
	Abort
)

// Parse maps an answer to a Decision, ignoring case and surrounding space.
func Parse(answer string) Decision {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "1", "ok", "y", "yes":
		return Proceed
	case "2", "no", "n", "abort":
		return Abort
	default:
		return Unknown
	}
}

// ConfirmSafeCode asks whether generated code may run on this machine. It
// returns ErrOperatorAbort if the operator declines or input ends. Unknown
// answers re-prompt.
func (p *Prompter) ConfirmSafeCode(ctx context.Context, position string) error {
	if p.Auto {
		ux.AgentMessage(ux.UnitTest, position, "Code execution auto-approved (--auto mode)")
		return nil
	}
	for {
		ux.Prompt("WARNING: You are about to run code written entirely by AI. " +
			"Review your code and confirm you wish to continue.\n" +
			"[1] All good, execute!\n[2] Abort!")
		s, err := p.readLine(ctx)
		if errors.Is(err, io.EOF) {
			return ErrOperatorAbort
		}
		if err != nil {
			return err
		}
		switch Parse(s) {
		case Proceed:
			return nil
		case Abort:
			return ErrOperatorAbort
		default:
			ux.Warning("Invalid input %q. Please enter 1 or 2.", s)
		}
	}
}
