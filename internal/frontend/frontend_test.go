package frontend

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jorge-barreto/crew/internal/agent"
	"github.com/jorge-barreto/crew/internal/factsheet"
	"github.com/jorge-barreto/crew/internal/llm"
	"github.com/jorge-barreto/crew/internal/llm/llmtest"
	"github.com/jorge-barreto/crew/internal/state"
	"github.com/jorge-barreto/crew/internal/toolchain"
	"github.com/jorge-barreto/crew/internal/ux"
)

func TestMain(m *testing.M) {
	ux.Out = io.Discard
	os.Exit(m.Run())
}

type fakeBuilder struct {
	results []*toolchain.Result
	builds  int
}

func (b *fakeBuilder) Build(ctx context.Context) (*toolchain.Result, error) {
	b.builds++
	if len(b.results) == 0 {
		return &toolchain.Result{}, nil
	}
	r := b.results[0]
	b.results = b.results[1:]
	return r, nil
}

const twoPages = `[
  {"page_name": "home_page", "suggested_content_sections": {"banner": "welcome"}},
  {"page_name": "rates_page", "suggested_content_sections": {"table": "live rates"}}
]`

const assignments = `{
  "home_page": [],
  "rates_page": [
    {"api_route": "/rates", "method": "get", "route_type": "internal"},
    {"api_route": "https://api.example.com/v1/fx", "method": "get", "route_type": "external"}
  ]
}`

type fixture struct {
	opts    Options
	fake    *llmtest.Fake
	builder *fakeBuilder
	dev     *Developer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	opts := Options{
		Dir:             filepath.Join(dir, "web_app"),
		BackendMainPath: filepath.Join(dir, "web_server", "main.go"),
		SchemaPath:      filepath.Join(dir, "web_server", "api_endpoints.json"),
		MaxFailures:     2,
		ArtifactsDir:    filepath.Join(dir, "artifacts"),
	}
	if err := state.EnsureDir(opts.ArtifactsDir); err != nil {
		t.Fatal(err)
	}
	state.WriteFile(opts.BackendMainPath, []byte("package main // rates server"))
	state.WriteFile(opts.SchemaPath, []byte(`[{"route": "/rates", "method": "get", "is_route_dynamic": false}]`))

	f := &fixture{opts: opts, fake: llmtest.New(), builder: &fakeBuilder{}}
	f.dev = New(f.fake.Caller(), f.builder, opts)
	return f
}

// planAndComponents queues replies for discovery and every component.
func (f *fixture) planAndComponents(pages string) {
	f.fake.Reply("print_recommended_site_pages", pages).
		Reply("print_recommended_site_pages_with_apis", assignments).
		Reply("print_recommended_site_main_colours", `["#111111", "#222222", "#333333", "#444444"]`).
		Reply("print_svg_logo", "<svg></svg>").
		Reply("print_completed_logo_with_brand_name_react_component", "```tsx\nexport default function Logo() {}\n```").
		Reply("print_header_navigation_react_component", "export default function Navigation() {}").
		Reply("print_footer_navigation_react_component", "export default function Footer() {}").
		Reply("print_react_typescript_hook_component", "export default function useCall() {}").
		Reply("print_html_webpage_content_with_text", "<main>home</main>", "<main>rates</main>").
		Reply("print_create_react_component_with_API_integration", "api-home", "api-rates").
		Reply("print_create_full_react_component", "merged-home", "merged-rates").
		Reply("print_give_component_fantastic_styling", "styled-home", "styled-rates")
}

func (f *fixture) read(t *testing.T, c BuildComponent) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.opts.Dir, c.Path()))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestExecute_BuildsEveryComponent(t *testing.T) {
	f := newFixture(t)
	f.planAndComponents(twoPages)
	fs := factsheet.New("live currency rates")
	fs.SetExternalURLs([]string{"https://api.example.com/v1/fx"})

	if err := f.dev.Execute(context.Background(), fs); err != nil {
		t.Fatal(err)
	}
	if f.dev.Basic.State != agent.Finished {
		t.Fatalf("state = %v", f.dev.Basic.State)
	}
	if f.dev.Sheet.BuildMode != Completion {
		t.Fatalf("build mode = %v", f.dev.Sheet.BuildMode)
	}
	if !reflect.DeepEqual(f.dev.Sheet.Pages, []string{"home_page", "rates_page"}) {
		t.Fatalf("pages = %v", f.dev.Sheet.Pages)
	}
	if len(f.dev.Sheet.BrandColours) != MaxBrandColours {
		t.Fatalf("colours = %v", f.dev.Sheet.BrandColours)
	}
	if len(f.dev.Sheet.APIAssignments["rates_page"]) != 2 {
		t.Fatalf("assignments = %+v", f.dev.Sheet.APIAssignments)
	}
	if f.builder.builds != 6 {
		t.Fatalf("builds = %d, want one per component", f.builder.builds)
	}

	want := map[BuildComponent]string{
		Logo:         "export default function Logo() {}\n",
		NavHeader:    "export default function Navigation() {}\n",
		NavFooter:    "export default function Footer() {}\n",
		ReactHook:    "export default function useCall() {}\n",
		PageContent1: "styled-home\n",
		PageContent2: "styled-rates\n",
	}
	for c, content := range want {
		if got := f.read(t, c); got != content {
			t.Errorf("%s = %q, want %q", c.Name(), got, content)
		}
	}
}

func TestExecute_PageStagesChain(t *testing.T) {
	f := newFixture(t)
	f.planAndComponents(twoPages)
	fs := factsheet.New("rates")
	if err := f.dev.Execute(context.Background(), fs); err != nil {
		t.Fatal(err)
	}

	var apiPrompts, mergePrompts, stylePrompts []string
	for _, c := range f.fake.Calls() {
		switch c.Function {
		case "print_create_react_component_with_API_integration":
			apiPrompts = append(apiPrompts, c.Prompt)
		case "print_create_full_react_component":
			mergePrompts = append(mergePrompts, c.Prompt)
		case "print_give_component_fantastic_styling":
			stylePrompts = append(stylePrompts, c.Prompt)
		}
	}
	if len(apiPrompts) != 2 || len(mergePrompts) != 2 || len(stylePrompts) != 2 {
		t.Fatalf("stage counts = %d/%d/%d", len(apiPrompts), len(mergePrompts), len(stylePrompts))
	}
	if !strings.Contains(apiPrompts[0], "export default function useCall() {}") {
		t.Fatal("api stage should receive the hook source")
	}
	if !strings.Contains(apiPrompts[1], "/rates") || strings.Contains(apiPrompts[0], "/rates") {
		t.Fatal("api stage should receive only the page's own routes")
	}
	if !strings.Contains(mergePrompts[1], "api-rates") || !strings.Contains(mergePrompts[1], "<main>rates</main>") {
		t.Fatalf("merge stage input = %s", mergePrompts[1])
	}
	if !strings.Contains(stylePrompts[1], "merged-rates") {
		t.Fatalf("style stage input = %s", stylePrompts[1])
	}
}

func TestExecute_OneRepairPerComponent(t *testing.T) {
	f := newFixture(t)
	f.planAndComponents(twoPages)
	f.fake.Reply("print_code_bugs_resolution", "export default function Logo() { return null }")
	f.builder.results = []*toolchain.Result{
		{ExitCode: 1, Stderr: "Logo.tsx: Cannot find name 'svg'"},
		{ExitCode: 0},
	}

	if err := f.dev.Execute(context.Background(), factsheet.New("rates")); err != nil {
		t.Fatal(err)
	}
	if f.dev.Failures != 1 {
		t.Fatalf("failures = %d", f.dev.Failures)
	}
	if got := f.read(t, Logo); got != "export default function Logo() { return null }\n" {
		t.Fatalf("Logo = %q", got)
	}
	if f.builder.builds != 7 {
		t.Fatalf("builds = %d, want 7", f.builder.builds)
	}
	fixes := 0
	for _, c := range f.fake.Calls() {
		if c.Function == "print_code_bugs_resolution" {
			fixes++
			if !strings.Contains(c.Prompt, "Cannot find name") || !strings.Contains(c.Prompt, "export default function Logo() {}") {
				t.Fatalf("fix prompt missing code or error:\n%s", c.Prompt)
			}
		}
	}
	if fixes != 1 {
		t.Fatalf("fixes = %d", fixes)
	}
}

func TestExecute_FailedRepairContinues(t *testing.T) {
	f := newFixture(t)
	f.dev.opts.MaxFailures = 3
	f.planAndComponents(twoPages)
	f.fake.Reply("print_code_bugs_resolution", "still broken")
	f.builder.results = []*toolchain.Result{{ExitCode: 1, Stderr: "e1"}, {ExitCode: 1, Stderr: "e2"}}

	if err := f.dev.Execute(context.Background(), factsheet.New("rates")); err != nil {
		t.Fatal(err)
	}
	if f.dev.Failures != 2 {
		t.Fatalf("failures = %d", f.dev.Failures)
	}
	if f.dev.Basic.State != agent.Finished {
		t.Fatal("later components should still be built")
	}
}

func TestExecute_SharedFailureCounterAborts(t *testing.T) {
	f := newFixture(t)
	f.planAndComponents(twoPages)
	f.fake.Reply("print_code_bugs_resolution", "fixed logo")
	f.builder.results = []*toolchain.Result{
		{ExitCode: 1, Stderr: "logo broken"},
		{ExitCode: 0},
		{ExitCode: 1, Stderr: "nav broken"},
	}

	err := f.dev.Execute(context.Background(), factsheet.New("rates"))
	if !errors.Is(err, ErrTooManyFailures) {
		t.Fatalf("expected ErrTooManyFailures, got %v", err)
	}
	if f.dev.Focus != NavHeader {
		t.Fatalf("focus = %s", f.dev.Focus.Name())
	}
	if f.dev.Basic.State == agent.Finished {
		t.Fatal("aborted agent should not be finished")
	}
	fb, _ := state.ReadFeedback(f.opts.ArtifactsDir)
	if len(fb) != 2 {
		t.Fatalf("feedback = %+v", fb)
	}
}

func TestExecute_MissingPageSkipped(t *testing.T) {
	f := newFixture(t)
	f.planAndComponents(`[{"page_name": "home_page", "suggested_content_sections": {"hero": "hi"}}]`)

	if err := f.dev.Execute(context.Background(), factsheet.New("one pager")); err != nil {
		t.Fatal(err)
	}
	if f.fake.Count("print_give_component_fantastic_styling") != 1 {
		t.Fatalf("styling calls = %d", f.fake.Count("print_give_component_fantastic_styling"))
	}
	if _, err := os.Stat(filepath.Join(f.opts.Dir, PageContent2.Path())); !os.IsNotExist(err) {
		t.Fatal("second page should not be written")
	}
	if f.builder.builds != 5 {
		t.Fatalf("builds = %d", f.builder.builds)
	}
}

func TestExecute_MalformedPagesIsFatal(t *testing.T) {
	f := newFixture(t)
	f.fake.Reply("print_recommended_site_pages", `[{"suggested_content_sections": {}}]`)
	err := f.dev.Execute(context.Background(), factsheet.New("x"))
	var sde *llm.SchemaDecodeError
	if !errors.As(err, &sde) {
		t.Fatalf("expected SchemaDecodeError, got %v", err)
	}
}

func TestExecute_MissingBackendIsFatal(t *testing.T) {
	f := newFixture(t)
	os.Remove(f.opts.BackendMainPath)
	if err := f.dev.Execute(context.Background(), factsheet.New("x")); err == nil {
		t.Fatal("expected error")
	}
	if len(f.fake.Calls()) != 0 {
		t.Fatal("no calls expected")
	}
}

func TestComponents(t *testing.T) {
	var names, paths []string
	for _, c := range Components() {
		names = append(names, c.Name())
		paths = append(paths, c.Path())
	}
	wantNames := []string{"Logo", "NavHeader", "NavFooter", "ReactHook", "PageContent1", "PageContent2"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Fatalf("names = %v", names)
	}
	wantPaths := []string{
		"src/components/shared/Logo.tsx",
		"src/components/shared/Navigation.tsx",
		"src/components/shared/Footer.tsx",
		"src/hooks/useCall.tsx",
		"src/components/pages/PageOne.tsx",
		"src/components/pages/PageTwo.tsx",
	}
	if !reflect.DeepEqual(paths, wantPaths) {
		t.Fatalf("paths = %v", paths)
	}
}

func TestBuildModeString(t *testing.T) {
	if PageComponents.String() != "Frontend Page Components" {
		t.Fatalf("got %q", PageComponents.String())
	}
}
