// Package aifunc holds the catalog of "AI functions": named descriptions of
// a function whose output the generative service is asked to print. The
// catalog is data; the llm package turns an entry plus its input into a
// request.
package aifunc

// Function describes one AI function.
type Function struct {
	Name string // identifier echoed in the request, e.g. "print_project_scope"
	Doc  string // description of input, behaviour and output format
}

// Signature renders the function as the pseudo-source the service is shown.
func (f Function) Signature() string {
	return "def " + f.Name + "(input: str) -> str:\n" + f.Doc
}
