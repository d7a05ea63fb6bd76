// Package config loads .crew/config.yaml and the credentials crew needs.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend describes the generated web server project.
type Backend struct {
	Dir      string   `yaml:"dir"`
	Template string   `yaml:"template"`
	Main     string   `yaml:"main"`
	Schema   string   `yaml:"schema"`
	Build    []string `yaml:"build"`
	Run      []string `yaml:"run"`
	Address  string   `yaml:"address"`
	MaxBugs  int      `yaml:"max-bugs"`
}

// Frontend describes the generated web app project.
type Frontend struct {
	Enabled     bool     `yaml:"enabled"`
	Dir         string   `yaml:"dir"`
	Build       []string `yaml:"build"`
	MaxFailures int      `yaml:"max-failures"`
}

// Probe holds HTTP health check timings, in seconds.
type Probe struct {
	Timeout int `yaml:"timeout"`
	Warmup  int `yaml:"warmup"`
}

type Config struct {
	Name              string   `yaml:"name"`
	Provider          string   `yaml:"provider"`
	Model             string   `yaml:"model"`
	Temperature       *float64 `yaml:"temperature"`
	BaseURL           string   `yaml:"base-url"`
	RequestsPerMinute int      `yaml:"requests-per-minute"`
	Command           []string `yaml:"command"`
	Backend           Backend  `yaml:"backend"`
	Frontend          Frontend `yaml:"frontend"`
	Probe             Probe    `yaml:"probe"`
}

// Load reads a YAML config file and returns a validated Config.
func Load(path, projectRoot string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg, projectRoot); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the config file location under projectRoot.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, ".crew", "config.yaml")
}

// ArtifactsDir returns the run artifacts location under projectRoot.
func ArtifactsDir(projectRoot string) string {
	return filepath.Join(projectRoot, ".crew", "artifacts")
}

// BackendDir is the absolute backend project directory.
func (c *Config) BackendDir(projectRoot string) string {
	return resolve(projectRoot, c.Backend.Dir)
}

// FrontendDir is the absolute frontend project directory.
func (c *Config) FrontendDir(projectRoot string) string {
	return resolve(projectRoot, c.Frontend.Dir)
}

// TemperatureValue returns the sampling temperature.
func (c *Config) TemperatureValue() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
