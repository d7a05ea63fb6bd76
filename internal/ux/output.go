package ux

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	bold    = color.New(color.Bold)
	dim     = color.New(color.Faint)
	red     = color.New(color.FgRed)
	green   = color.New(color.FgGreen)
	yellow  = color.New(color.FgYellow)
	cyan    = color.New(color.FgCyan)
	magenta = color.New(color.FgMagenta)

	greenBold = color.New(color.Bold, color.FgGreen)
)

// Out is where narration is written. Tests may redirect it.
var Out io.Writer = os.Stdout

func timestamp() string {
	return dim.Sprintf("[%s]", time.Now().Format("15:04:05"))
}

// Kind classifies an agent message and selects its colour.
type Kind int

const (
	AICall Kind = iota
	UnitTest
	Issue
)

func (k Kind) color() *color.Color {
	switch k {
	case UnitTest:
		return magenta
	case Issue:
		return red
	default:
		return cyan
	}
}

// AgentMessage prints a statement made by the agent at position.
func AgentMessage(kind Kind, position, statement string) {
	fmt.Fprintf(Out, "%s %s %s\n", timestamp(), green.Sprintf("Agent: %s:", position), kind.color().Sprint(statement))
}

// AgentHeader prints a timestamped header before an agent starts executing.
func AgentHeader(index, total int, position string) {
	rule := cyan.Sprint("══════════════════════════════════════")
	fmt.Fprintf(Out, "\n%s %s\n", timestamp(), rule)
	fmt.Fprintf(Out, "%s  %s\n", timestamp(), bold.Sprintf("Agent %d/%d: %s", index+1, total, position))
	fmt.Fprintf(Out, "%s %s\n", timestamp(), rule)
}

// AgentComplete prints an agent completion message.
func AgentComplete(index int, position string, duration time.Duration) {
	m := int(duration.Minutes())
	s := int(duration.Seconds()) % 60
	fmt.Fprintf(Out, "%s  %s\n", timestamp(), green.Sprintf("✓ Agent %d (%s) finished (%dm %02ds)", index+1, position, m, s))
}

// AgentFail prints an agent failure message.
func AgentFail(index int, position, errMsg string) {
	fmt.Fprintf(Out, "%s  %s\n", timestamp(), red.Sprintf("✗ Agent %d (%s) failed: %s", index+1, position, errMsg))
}

// RepairLoop prints a loop-back message for a failed build.
func RepairLoop(position string, attempt, max int) {
	fmt.Fprintf(Out, "%s  %s\n", timestamp(), yellow.Sprintf("↺ %s: build failed. Back to work (attempt %d/%d)", position, attempt, max))
}

// Warning prints a non-fatal problem.
func Warning(format string, a ...any) {
	fmt.Fprintf(Out, "%s  %s\n", timestamp(), yellow.Sprintf("⚠ "+format, a...))
}

// Prompt prints a question for the operator.
func Prompt(question string) {
	fmt.Fprintf(Out, "\n%s\n", color.New(color.FgBlue).Sprint(question))
}

// Success prints a final success message.
func Success(total int) {
	fmt.Fprintf(Out, "\n%s  %s\n\n", timestamp(), greenBold.Sprintf("══ All %d agents finished ══", total))
}

// Errorf prints a fatal diagnostic to stderr.
func Errorf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", red.Sprint("error:"), fmt.Sprintf(format, a...))
}

// Bold returns s in bold.
func Bold(s string) string { return bold.Sprint(s) }

// Dim returns s dimmed.
func Dim(s string) string { return dim.Sprint(s) }

// Green returns s in green.
func Green(s string) string { return green.Sprint(s) }

// Yellow returns s in yellow.
func Yellow(s string) string { return yellow.Sprint(s) }

// Cyan returns s in cyan.
func Cyan(s string) string { return cyan.Sprint(s) }
