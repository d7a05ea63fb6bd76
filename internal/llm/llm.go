// Package llm wraps calls to the external text-generation service. A call
// names an AI function from the aifunc catalog, is retried once on failure,
// and can be decoded into a typed value.
package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/crew/internal/aifunc"
	"github.com/jorge-barreto/crew/internal/ux"
)

// Message is one entry of a chat request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer sends messages to a generative service and returns its reply.
// Tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Task is a single request for an AI function's output.
type Task struct {
	Function  aifunc.Function
	Input     string
	Position  string // position of the agent asking, for narration
	Operation string // what the agent is doing, for narration
}

// Caller dispatches tasks to a Completer.
type Caller struct {
	Client Completer
	Log    *zap.Logger
}

// NewCaller returns a Caller. A nil logger discards log output.
func NewCaller(client Completer, log *zap.Logger) *Caller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Caller{Client: client, Log: log}
}

// Prompt builds the single system message for a task.
func Prompt(t Task) Message {
	content := fmt.Sprintf(`FUNCTION %s
INSTRUCTION: You are a function printer. You ONLY print the results of functions.
Nothing else. No commentary. Here is the input for the function: %s.
Print out what the function will return.`, t.Function.Signature(), t.Input)
	return Message{Role: "system", Content: content}
}

// Request sends the task and returns the raw reply. A failed call is
// retried exactly once; a second failure is returned as a
// *TransientServiceError.
func (c *Caller) Request(ctx context.Context, t Task) (string, error) {
	msg := Prompt(t)
	ux.AgentMessage(ux.AICall, t.Position, t.Operation)

	log := c.Log.With(
		zap.String("function", t.Function.Name),
		zap.String("position", t.Position),
	)

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		start := time.Now()
		text, err := c.Client.Complete(ctx, []Message{msg})
		if err == nil {
			log.Info("completion",
				zap.Int("attempt", attempt),
				zap.Duration("latency", time.Since(start)),
				zap.Int("prompt_bytes", len(msg.Content)),
				zap.Int("reply_bytes", len(text)))
			return text, nil
		}
		lastErr = err
		log.Warn("completion failed", zap.Int("attempt", attempt), zap.Error(err))
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", &TransientServiceError{Function: t.Function.Name, Err: lastErr}
}

// RequestDecoded sends the task and decodes the reply as JSON into T.
// Malformed replies are not retried.
func RequestDecoded[T any](ctx context.Context, c *Caller, t Task) (T, error) {
	text, err := c.Request(ctx, t)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := Decode[T](t.Function.Name, text)
	if err != nil {
		c.Log.Error("decode failed", zap.String("function", t.Function.Name), zap.Error(err))
	}
	return v, err
}
