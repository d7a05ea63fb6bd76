package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.1
	DefaultAddress     = "http://127.0.0.1:8080"
)

var validProviders = map[string]bool{
	"openai":  true,
	"command": true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config, projectRoot string) error {
	if cfg.Name == "" {
		return fmt.Errorf("config: 'name' is required")
	}

	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if !validProviders[cfg.Provider] {
		return fmt.Errorf("config: unknown provider %q (must be openai or command)", cfg.Provider)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature != nil && (*cfg.Temperature < 0 || *cfg.Temperature > 2) {
		return fmt.Errorf("config: temperature must be between 0 and 2")
	}
	if cfg.RequestsPerMinute < 0 {
		return fmt.Errorf("config: requests-per-minute must be >= 0")
	}
	switch cfg.Provider {
	case "command":
		if len(cfg.Command) == 0 {
			return fmt.Errorf("config: provider 'command' requires 'command'")
		}
		if err := checkArgv("command", cfg.Command); err != nil {
			return err
		}
	case "openai":
		if len(cfg.Command) > 0 {
			return fmt.Errorf("config: 'command' is only valid with provider 'command'")
		}
	}

	if err := validateBackend(&cfg.Backend, projectRoot); err != nil {
		return err
	}
	if err := validateFrontend(&cfg.Frontend); err != nil {
		return err
	}

	if cfg.Probe.Timeout == 0 {
		cfg.Probe.Timeout = 5
	}
	if cfg.Probe.Warmup == 0 {
		cfg.Probe.Warmup = 5
	}
	if cfg.Probe.Timeout < 0 || cfg.Probe.Warmup < 0 {
		return fmt.Errorf("config: probe timings must be >= 0")
	}
	return nil
}

func validateBackend(b *Backend, projectRoot string) error {
	if b.Dir == "" {
		b.Dir = "web_server"
	}
	if b.Template == "" {
		b.Template = "code_template.go.tmpl"
	}
	if b.Main == "" {
		b.Main = "main.go"
	}
	if b.Schema == "" {
		b.Schema = "api_endpoints.json"
	}
	if len(b.Build) == 0 {
		b.Build = []string{"go", "build", "./..."}
	}
	if len(b.Run) == 0 {
		b.Run = []string{"go", "run", "."}
	}
	if b.Address == "" {
		b.Address = DefaultAddress
	}
	if b.MaxBugs == 0 {
		b.MaxBugs = 2
	}
	if b.MaxBugs < 0 {
		return fmt.Errorf("config: backend: max-bugs must be >= 0")
	}
	for name, p := range map[string]string{"template": b.Template, "main": b.Main, "schema": b.Schema} {
		if filepath.IsAbs(p) || strings.HasPrefix(filepath.Clean(p), "..") {
			return fmt.Errorf("config: backend: %s %q must be relative to the backend dir", name, p)
		}
	}
	if !strings.HasPrefix(b.Address, "http://") && !strings.HasPrefix(b.Address, "https://") {
		return fmt.Errorf("config: backend: address %q must start with http:// or https://", b.Address)
	}
	if err := checkArgv("backend.build", b.Build); err != nil {
		return err
	}
	if err := checkArgv("backend.run", b.Run); err != nil {
		return err
	}

	templatePath := filepath.Join(resolve(projectRoot, b.Dir), b.Template)
	if _, err := os.Stat(templatePath); err != nil {
		return fmt.Errorf("config: backend: code template %q not found", templatePath)
	}
	return nil
}

func validateFrontend(f *Frontend) error {
	if f.Dir == "" {
		f.Dir = "web_app"
	}
	if len(f.Build) == 0 {
		f.Build = []string{"yarn", "build"}
	}
	if f.MaxFailures == 0 {
		f.MaxFailures = 2
	}
	if f.MaxFailures < 0 {
		return fmt.Errorf("config: frontend: max-failures must be >= 0")
	}
	return checkArgv("frontend.build", f.Build)
}

func checkArgv(field string, argv []string) error {
	for _, a := range argv {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("config: '%s' entries must be non-empty", field)
		}
	}
	return nil
}
