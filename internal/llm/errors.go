package llm

import "fmt"

// TransientServiceError is returned when the service failed twice in a row.
type TransientServiceError struct {
	Function string
	Err      error
}

func (e *TransientServiceError) Error() string {
	return fmt.Sprintf("%s: generative service failed twice: %v", e.Function, e.Err)
}

func (e *TransientServiceError) Unwrap() error { return e.Err }

// SchemaDecodeError is returned when a delivered reply does not match the
// expected JSON shape.
type SchemaDecodeError struct {
	Function string
	Text     string
	Err      error
}

func (e *SchemaDecodeError) Error() string {
	text := e.Text
	if len(text) > 200 {
		text = text[:197] + "..."
	}
	return fmt.Sprintf("%s: failed to decode reply %q: %v", e.Function, text, e.Err)
}

func (e *SchemaDecodeError) Unwrap() error { return e.Err }
