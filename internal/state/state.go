// Package state persists a crew run record and its artifacts under
// .crew/artifacts.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
	StatusInterrupted = "interrupted"
)

// Run is the record of one crew run.
type Run struct {
	RunID      string    `json:"run_id"`
	Request    string    `json:"request"`
	Status     string    `json:"status"`
	Agents     []string  `json:"agents"`
	AgentIndex int       `json:"agent_index"`
	StartedAt  time.Time `json:"started_at"`
	Error      string    `json:"error,omitempty"`
}

// NewRun starts a record for request with a fresh run ID.
func NewRun(request string, agents []string) *Run {
	return &Run{
		RunID:     uuid.NewString(),
		Request:   request,
		Status:    StatusRunning,
		Agents:    agents,
		StartedAt: time.Now().UTC(),
	}
}

func runPath(artifactsDir string) string {
	return filepath.Join(artifactsDir, "state.json")
}

// Load reads the run record. A missing file yields an empty record;
// see Exists.
func Load(artifactsDir string) (*Run, error) {
	data, err := os.ReadFile(runPath(artifactsDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Run{}, nil
		}
		return nil, err
	}
	var r Run
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Exists reports whether the record came from a real run.
func (r *Run) Exists() bool {
	return r.RunID != ""
}

// Save writes the run record to the artifacts directory.
func (r *Run) Save(artifactsDir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(runPath(artifactsDir), data, 0644)
}

// Advance moves to the next agent.
func (r *Run) Advance() {
	r.AgentIndex++
}

// Current returns the position of the agent at AgentIndex, or "" past the end.
func (r *Run) Current() string {
	if r.AgentIndex < 0 || r.AgentIndex >= len(r.Agents) {
		return ""
	}
	return r.Agents[r.AgentIndex]
}

// Fail marks the run failed, or interrupted when err is a cancellation.
func (r *Run) Fail(err error) {
	r.Status = StatusFailed
	if errors.Is(err, context.Canceled) {
		r.Status = StatusInterrupted
	}
	if err != nil {
		r.Error = err.Error()
	}
}
