package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// validator is implemented by decoded types that check their own shape.
type validator interface {
	Validate() error
}

// Decode parses text as a single JSON value of type T. Empty input, null,
// syntax errors, type mismatches, trailing data and failed Validate calls
// all yield a *SchemaDecodeError.
func Decode[T any](function, text string) (T, error) {
	var v T
	if bytes.Equal(bytes.TrimSpace([]byte(text)), []byte("null")) {
		return v, &SchemaDecodeError{Function: function, Text: text, Err: errors.New("null reply")}
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty reply")
		}
		var zero T
		return zero, &SchemaDecodeError{Function: function, Text: text, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var zero T
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return zero, &SchemaDecodeError{Function: function, Text: text, Err: err}
	}
	if val, ok := any(&v).(validator); ok {
		if err := val.Validate(); err != nil {
			var zero T
			return zero, &SchemaDecodeError{Function: function, Text: text, Err: err}
		}
	}
	return v, nil
}
