package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jorge-barreto/crew/internal/aifunc"
)

// fakeCompleter returns queued replies and errors in call order.
type fakeCompleter struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   [][]Message
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.calls)
	f.calls = append(f.calls, messages)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", errors.New("no reply queued")
}

var testFn = aifunc.Function{Name: "print_test", Doc: "    prints a test value"}

func testTask() Task {
	return Task{Function: testFn, Input: "some input", Position: "Tester", Operation: "testing"}
}

func TestPrompt(t *testing.T) {
	msg := Prompt(testTask())
	if msg.Role != "system" {
		t.Fatalf("role = %q", msg.Role)
	}
	for _, want := range []string{"print_test", "some input", "You ONLY print the results of functions"} {
		if !strings.Contains(msg.Content, want) {
			t.Fatalf("prompt missing %q:\n%s", want, msg.Content)
		}
	}
}

func TestRequest_FirstTrySucceeds(t *testing.T) {
	fc := &fakeCompleter{replies: []string{"hello"}}
	got, err := NewCaller(fc, nil).Request(context.Background(), testTask())
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
	if len(fc.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(fc.calls))
	}
	if len(fc.calls[0]) != 1 || fc.calls[0][0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", fc.calls[0])
	}
}

func TestRequest_RetriesOnce(t *testing.T) {
	fc := &fakeCompleter{
		errs:    []error{errors.New("connection reset")},
		replies: []string{"", "second time lucky"},
	}
	got, err := NewCaller(fc, nil).Request(context.Background(), testTask())
	if err != nil {
		t.Fatal(err)
	}
	if got != "second time lucky" {
		t.Fatalf("got %q", got)
	}
	if len(fc.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(fc.calls))
	}
	if fc.calls[0][0].Content != fc.calls[1][0].Content {
		t.Fatal("retry should resend the same message")
	}
}

func TestRequest_SecondFailureIsFatal(t *testing.T) {
	boom := errors.New("service unavailable")
	fc := &fakeCompleter{errs: []error{boom, boom, nil}, replies: []string{"", "", "never"}}
	_, err := NewCaller(fc, nil).Request(context.Background(), testTask())
	var tse *TransientServiceError
	if !errors.As(err, &tse) {
		t.Fatalf("expected TransientServiceError, got %v", err)
	}
	if tse.Function != "print_test" {
		t.Fatalf("function = %q", tse.Function)
	}
	if !errors.Is(err, boom) {
		t.Fatal("error should wrap the last completer error")
	}
	if len(fc.calls) != 2 {
		t.Fatalf("calls = %d, want exactly 2", len(fc.calls))
	}
}

func TestRequest_CancelledContextNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fc := &fakeCompleter{errs: []error{context.Canceled}}
	_, err := NewCaller(fc, nil).Request(ctx, testTask())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(fc.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(fc.calls))
	}
}

type scope struct {
	A bool `json:"a"`
	B bool `json:"b"`
}

func TestRequestDecoded(t *testing.T) {
	fc := &fakeCompleter{replies: []string{`{"a": true, "b": false}`}}
	got, err := RequestDecoded[scope](context.Background(), NewCaller(fc, nil), testTask())
	if err != nil {
		t.Fatal(err)
	}
	if !got.A || got.B {
		t.Fatalf("got %+v", got)
	}
}

func TestRequestDecoded_MalformedNotRetried(t *testing.T) {
	fc := &fakeCompleter{replies: []string{`{"a": tru`, `{"a": true, "b": true}`}}
	_, err := RequestDecoded[scope](context.Background(), NewCaller(fc, nil), testTask())
	var sde *SchemaDecodeError
	if !errors.As(err, &sde) {
		t.Fatalf("expected SchemaDecodeError, got %v", err)
	}
	if len(fc.calls) != 1 {
		t.Fatalf("calls = %d, decode failures must not be retried", len(fc.calls))
	}
}

func TestRequestDecoded_TransportFailurePassesThrough(t *testing.T) {
	boom := errors.New("down")
	fc := &fakeCompleter{errs: []error{boom, boom}}
	_, err := RequestDecoded[scope](context.Background(), NewCaller(fc, nil), testTask())
	var tse *TransientServiceError
	if !errors.As(err, &tse) {
		t.Fatalf("expected TransientServiceError, got %v", err)
	}
}

type named struct {
	Name string `json:"name"`
}

func (n *named) Validate() error {
	if n.Name == "" {
		return errors.New("name is empty")
	}
	return nil
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   \n"},
		{"null", "null"},
		{"truncated", `["a", "b"`},
		{"prose", "Sure! Here is the JSON you asked for"},
		{"fenced", "```json\n[\"a\"]\n```"},
		{"wrong type", `{"a": "yes"}`},
		{"trailing data", `{"a": true} {"b": true}`},
		{"trailing garbage", `{"a": true} ]`},
		{"array for object", `[true, false]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[scope]("print_scope", tt.text)
			var sde *SchemaDecodeError
			if !errors.As(err, &sde) {
				t.Fatalf("expected SchemaDecodeError for %q, got %v", tt.text, err)
			}
			if sde.Function != "print_scope" {
				t.Fatalf("function = %q", sde.Function)
			}
		})
	}
}

func TestDecode_Valid(t *testing.T) {
	got, err := Decode[[]string]("print_urls", " [\"https://a.example\", \"https://b.example\"]\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != "https://b.example" {
		t.Fatalf("got %v", got)
	}
}

func TestDecode_Validator(t *testing.T) {
	if _, err := Decode[named]("f", `{"name": ""}`); err == nil {
		t.Fatal("expected validation failure")
	}
	got, err := Decode[named]("f", `{"name": "home"}`)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "home" {
		t.Fatalf("got %+v", got)
	}
}

func TestSchemaDecodeError_TruncatesText(t *testing.T) {
	err := &SchemaDecodeError{Function: "f", Text: strings.Repeat("x", 500), Err: errors.New("bad")}
	if len(err.Error()) > 300 {
		t.Fatalf("message too long: %d", len(err.Error()))
	}
}
