// Package factsheet holds the project-level blackboard that the managing
// agent hands from one agent to the next.
package factsheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ProjectScope is decoded from the architect's scope request.
type ProjectScope struct {
	IsCRUDRequired         bool `json:"is_crud_required"`
	IsUserLoginAndLogout   bool `json:"is_user_login_and_logout"`
	IsExternalURLsRequired bool `json:"is_external_urls_required"`
}

// RouteObject describes one REST endpoint of the generated backend.
type RouteObject struct {
	Route          string          `json:"route"`
	Method         string          `json:"method"`
	IsRouteDynamic bool            `json:"is_route_dynamic"`
	RequestBody    json.RawMessage `json:"request_body"`
	Response       json.RawMessage `json:"response"`
}

// FactSheet is the shared record threaded through the pipeline. Only the
// agent currently executing holds it.
type FactSheet struct {
	ProjectDescription string        `json:"project_description"`
	ProjectScope       *ProjectScope `json:"project_scope"`
	ExternalURLs       []string      `json:"external_urls"`
	BackendCode        *string       `json:"backend_code"`
	APIEndpointSchema  []RouteObject `json:"api_endpoint_schema"`

	urlsAssigned bool
}

// ErrURLsAssigned is returned when external URLs are assigned a second time.
var ErrURLsAssigned = errors.New("external urls already assigned; they may only be filtered")

// New returns a fact sheet for a project description.
func New(description string) *FactSheet {
	return &FactSheet{ProjectDescription: description}
}

// HasExternalURLs reports whether external URLs have been assigned.
func (f *FactSheet) HasExternalURLs() bool {
	return f.urlsAssigned || f.ExternalURLs != nil
}

// SetExternalURLs performs the one-time assignment of candidate URLs.
// Duplicates are dropped, first occurrence wins.
func (f *FactSheet) SetExternalURLs(urls []string) error {
	if f.HasExternalURLs() {
		return ErrURLsAssigned
	}
	f.ExternalURLs = dedupe(urls)
	f.urlsAssigned = true
	return nil
}

// ExcludeURLs removes the given URLs, keeping the order of the rest.
func (f *FactSheet) ExcludeURLs(exclude []string) {
	if len(exclude) == 0 || f.ExternalURLs == nil {
		return
	}
	drop := make(map[string]bool, len(exclude))
	for _, u := range exclude {
		drop[u] = true
	}
	kept := make([]string, 0, len(f.ExternalURLs))
	for _, u := range f.ExternalURLs {
		if !drop[u] {
			kept = append(kept, u)
		}
	}
	f.ExternalURLs = kept
}

// SetBackendCode records the latest backend artifact.
func (f *FactSheet) SetBackendCode(code string) {
	f.BackendCode = &code
}

// Code returns the backend code, or "" when none has been generated.
func (f *FactSheet) Code() string {
	if f.BackendCode == nil {
		return ""
	}
	return *f.BackendCode
}

// UnmarshalJSON restores a fact sheet, treating a present external_urls
// field as an assignment.
func (f *FactSheet) UnmarshalJSON(data []byte) error {
	type plain FactSheet
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = FactSheet(p)
	f.urlsAssigned = f.ExternalURLs != nil
	return nil
}

// ProbeTargets returns the endpoints that can be probed without inventing
// path parameters: GET routes with a static path, in schema order.
func ProbeTargets(schema []RouteObject) []RouteObject {
	var out []RouteObject
	for _, r := range schema {
		if strings.EqualFold(r.Method, "get") && !r.IsRouteDynamic {
			out = append(out, r)
		}
	}
	return out
}

// String summarises the fact sheet for narration.
func (f *FactSheet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "description=%q", f.ProjectDescription)
	if f.ProjectScope != nil {
		fmt.Fprintf(&b, " scope={crud:%t login:%t external:%t}",
			f.ProjectScope.IsCRUDRequired, f.ProjectScope.IsUserLoginAndLogout, f.ProjectScope.IsExternalURLsRequired)
	}
	if f.ExternalURLs != nil {
		fmt.Fprintf(&b, " urls=%d", len(f.ExternalURLs))
	}
	if f.BackendCode != nil {
		fmt.Fprintf(&b, " code=%dB", len(*f.BackendCode))
	}
	if f.APIEndpointSchema != nil {
		fmt.Fprintf(&b, " endpoints=%d", len(f.APIEndpointSchema))
	}
	return b.String()
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
