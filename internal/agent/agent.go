// Package agent holds the state primitive shared by every crew agent.
package agent

import (
	"context"

	"go.uber.org/zap"

	"github.com/jorge-barreto/crew/internal/aifunc"
	"github.com/jorge-barreto/crew/internal/factsheet"
	"github.com/jorge-barreto/crew/internal/llm"
)

// State is an agent's position in its own state machine.
type State int

const (
	Discovery State = iota
	Working
	UnitTesting
	Finished
)

func (s State) String() string {
	switch s {
	case Discovery:
		return "discovery"
	case Working:
		return "working"
	case UnitTesting:
		return "unit-testing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Agent is the only capability the manager depends on.
type Agent interface {
	Position() string
	Execute(ctx context.Context, fs *factsheet.FactSheet) error
}

// Basic is the identity and state every agent embeds.
// It is not safe for concurrent use.
type Basic struct {
	Objective string
	Position  string
	State     State
	Memory    []llm.Message
}

// New returns a Basic in the Discovery state.
func New(objective, position string) Basic {
	return Basic{Objective: objective, Position: position, State: Discovery}
}

// UpdateState moves the agent to s. Finished is terminal.
func (b *Basic) UpdateState(s State) {
	if b.State == Finished {
		return
	}
	b.State = s
}

// Remember appends messages to memory.
func (b *Basic) Remember(msgs ...llm.Message) {
	b.Memory = append(b.Memory, msgs...)
}

// Request sends fn with input through c on behalf of the agent and records
// the exchange in memory.
func (b *Basic) Request(ctx context.Context, c *llm.Caller, fn aifunc.Function, input, operation string) (string, error) {
	t := b.task(fn, input, operation)
	text, err := c.Request(ctx, t)
	if err != nil {
		return "", err
	}
	b.Remember(llm.Prompt(t), llm.Message{Role: "assistant", Content: text})
	return text, nil
}

// RequestDecoded is Request followed by a strict JSON decode into T.
func RequestDecoded[T any](ctx context.Context, b *Basic, c *llm.Caller, fn aifunc.Function, input, operation string) (T, error) {
	text, err := b.Request(ctx, c, fn, input, operation)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := llm.Decode[T](fn.Name, text)
	if err != nil {
		c.Log.Error("decode failed", zap.String("function", fn.Name), zap.String("position", b.Position), zap.Error(err))
	}
	return v, err
}

func (b *Basic) task(fn aifunc.Function, input, operation string) llm.Task {
	return llm.Task{Function: fn, Input: input, Position: b.Position, Operation: operation}
}
