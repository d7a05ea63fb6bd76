package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	EnvAPIKey = "OPEN_AI_KEY"
	EnvOrg    = "OPEN_AI_ORG"
)

// LoadEnv loads projectRoot/.env into the process environment. Variables
// already set are kept. A missing file is not an error.
func LoadEnv(projectRoot string) error {
	path := filepath.Join(projectRoot, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Credentials returns the service key and optional organization.
func Credentials() (key, org string, err error) {
	key = os.Getenv(EnvAPIKey)
	if key == "" {
		return "", "", fmt.Errorf("%s is not set (add it to .env or the environment)", EnvAPIKey)
	}
	return key, os.Getenv(EnvOrg), nil
}
