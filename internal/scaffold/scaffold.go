// Package scaffold creates the files a new crew project starts from.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/crew/internal/state"
	"github.com/jorge-barreto/crew/internal/ux"
)

//go:embed templates/*.tmpl
var templates embed.FS

var configTemplate = `name: my-site

# Generative service. provider "command" runs a local CLI instead:
#   provider: command
#   command: [claude, -p]
provider: openai
model: gpt-4
temperature: 0.1
requests-per-minute: 0

backend:
  dir: web_server
  template: code_template.go.tmpl
  main: main.go
  schema: api_endpoints.json
  build: [go, build, ./...]
  run: [go, run, .]
  address: http://127.0.0.1:8080
  max-bugs: 2

frontend:
  enabled: false
  dir: web_app
  build: [yarn, build]
  max-failures: 2

probe:
  timeout: 5
  warmup: 5
`

var envTemplate = `# Copy to .env and fill in. Values already in the environment win.
OPEN_AI_KEY=
OPEN_AI_ORG=
`

var ignoreTemplate = `artifacts/
`

// file is one scaffolded file. Files that already exist are kept.
type file struct {
	path    string
	desc    string
	content []byte
}

// Init writes a .crew/ directory and a backend project into targetDir.
// Progress is written to w.
func Init(w io.Writer, targetDir string) error {
	crewDir := filepath.Join(targetDir, ".crew")
	if _, err := os.Stat(crewDir); err == nil {
		return fmt.Errorf(".crew directory already exists in %s", targetDir)
	}

	tmpl, err := fs.ReadFile(templates, "templates/code_template.go.tmpl")
	if err != nil {
		return err
	}
	gomod, err := fs.ReadFile(templates, "templates/go.mod.tmpl")
	if err != nil {
		return err
	}

	files := []file{
		{path: ".crew/config.yaml", desc: "crew configuration", content: []byte(configTemplate)},
		{path: ".crew/.gitignore", desc: "keeps run artifacts out of git", content: []byte(ignoreTemplate)},
		{path: ".env.example", desc: "service credentials", content: []byte(envTemplate)},
		{path: "web_server/go.mod", desc: "backend module", content: gomod},
		{path: "web_server/code_template.go.tmpl", desc: "code template the backend developer rewrites", content: tmpl},
	}

	var created, kept []file
	for _, f := range files {
		full := filepath.Join(targetDir, f.path)
		if _, err := os.Stat(full); err == nil {
			kept = append(kept, f)
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := state.WriteFile(full, f.content); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
		created = append(created, f)
	}

	fmt.Fprintf(w, "\n%s\n\n", ux.Green(ux.Bold("✓ Initialized crew project")))
	fmt.Fprintf(w, "  Created:\n")
	for _, f := range created {
		fmt.Fprintf(w, "    %-34s %s\n", ux.Cyan(f.path), f.desc)
	}
	if len(kept) > 0 {
		fmt.Fprintf(w, "  Kept existing:\n")
		for _, f := range kept {
			fmt.Fprintf(w, "    %s\n", ux.Cyan(f.path))
		}
	}
	fmt.Fprintf(w, "\n  Next steps:\n")
	fmt.Fprintf(w, "    1. Copy %s to %s and set OPEN_AI_KEY\n", ux.Cyan(".env.example"), ux.Cyan(".env"))
	fmt.Fprintf(w, "    2. Run %s to preview\n", ux.Cyan("crew run --dry-run"))
	fmt.Fprintf(w, "    3. Run %s\n\n", ux.Cyan(`crew run "describe your website"`))
	return nil
}
