package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/jorge-barreto/crew/internal/aifunc"
	"github.com/jorge-barreto/crew/internal/llm"
)

type scriptedCompleter struct {
	replies []string
	n       int
}

func (s *scriptedCompleter) Complete(ctx context.Context, _ []llm.Message) (string, error) {
	if s.n >= len(s.replies) {
		return "", errors.New("exhausted")
	}
	r := s.replies[s.n]
	s.n++
	return r, nil
}

var fn = aifunc.Function{Name: "print_x", Doc: "    prints x"}

func TestNew(t *testing.T) {
	b := New("builds things", "Builder")
	if b.State != Discovery {
		t.Fatalf("state = %v", b.State)
	}
	if b.Position != "Builder" || b.Objective != "builds things" {
		t.Fatalf("got %+v", b)
	}
	if len(b.Memory) != 0 {
		t.Fatal("memory should start empty")
	}
}

func TestUpdateState_FinishedIsTerminal(t *testing.T) {
	b := New("o", "p")
	b.UpdateState(Working)
	b.UpdateState(UnitTesting)
	if b.State != UnitTesting {
		t.Fatalf("state = %v", b.State)
	}
	b.UpdateState(Finished)
	b.UpdateState(Working)
	if b.State != Finished {
		t.Fatalf("finished agent moved to %v", b.State)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Discovery:   "discovery",
		Working:     "working",
		UnitTesting: "unit-testing",
		Finished:    "finished",
		State(42):   "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(s), s.String(), want)
		}
	}
}

func TestRequest_RecordsMemory(t *testing.T) {
	b := New("o", "Tester")
	c := llm.NewCaller(&scriptedCompleter{replies: []string{"reply one"}}, nil)
	text, err := b.Request(context.Background(), c, fn, "input", "op")
	if err != nil {
		t.Fatal(err)
	}
	if text != "reply one" {
		t.Fatalf("text = %q", text)
	}
	if len(b.Memory) != 2 {
		t.Fatalf("memory = %d entries", len(b.Memory))
	}
	if b.Memory[0].Role != "system" || b.Memory[1].Role != "assistant" || b.Memory[1].Content != "reply one" {
		t.Fatalf("memory = %+v", b.Memory)
	}
}

func TestRequestDecoded(t *testing.T) {
	b := New("o", "Tester")
	c := llm.NewCaller(&scriptedCompleter{replies: []string{`["a","b"]`, `not json`}}, nil)
	got, err := RequestDecoded[[]string](context.Background(), &b, c, fn, "in", "op")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
	_, err = RequestDecoded[[]string](context.Background(), &b, c, fn, "in", "op")
	var sde *llm.SchemaDecodeError
	if !errors.As(err, &sde) {
		t.Fatalf("expected SchemaDecodeError, got %v", err)
	}
}
