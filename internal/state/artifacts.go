package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jorge-barreto/crew/internal/factsheet"
)

// EnsureDir creates the artifacts directory structure.
func EnsureDir(artifactsDir string) error {
	dirs := []string{
		artifactsDir,
		filepath.Join(artifactsDir, "logs"),
		filepath.Join(artifactsDir, "feedback"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating artifacts dir %s: %w", d, err)
		}
	}
	return nil
}

// Reset removes the records of a previous run. Generated code outside the
// artifacts directory is left alone.
func Reset(artifactsDir string) error {
	for _, name := range []string{"state.json", "timing.json", "factsheet.json"} {
		if err := os.Remove(filepath.Join(artifactsDir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.RemoveAll(filepath.Join(artifactsDir, "feedback")); err != nil {
		return err
	}
	return EnsureDir(artifactsDir)
}

// WriteFeedback saves build error output from agent's attempt-th failure.
func WriteFeedback(artifactsDir, agent string, attempt int, content string) error {
	name := fmt.Sprintf("%s-build-%d.md", slug(agent), attempt)
	return os.WriteFile(filepath.Join(artifactsDir, "feedback", name), []byte(content), 0644)
}

// Feedback is one captured build failure.
type Feedback struct {
	Name    string
	Content string
}

// ReadFeedback returns every captured build failure, sorted by file name.
func ReadFeedback(artifactsDir string) ([]Feedback, error) {
	dir := filepath.Join(artifactsDir, "feedback")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []Feedback
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, Feedback{Name: e.Name(), Content: string(data)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func factSheetPath(artifactsDir string) string {
	return filepath.Join(artifactsDir, "factsheet.json")
}

// SaveFactSheet writes the fact sheet as it stands.
func SaveFactSheet(artifactsDir string, sheet *factsheet.FactSheet) error {
	data, err := json.MarshalIndent(sheet, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(factSheetPath(artifactsDir), data, 0644)
}

// LoadFactSheet reads the last saved fact sheet. It returns nil, nil when
// none has been saved.
func LoadFactSheet(artifactsDir string) (*factsheet.FactSheet, error) {
	data, err := os.ReadFile(factSheetPath(artifactsDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var sheet factsheet.FactSheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", factSheetPath(artifactsDir), err)
	}
	return &sheet, nil
}

// LogPath returns the path of the structured run log.
func LogPath(artifactsDir string) string {
	return filepath.Join(artifactsDir, "logs", "run.log")
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
