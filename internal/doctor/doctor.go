// Package doctor asks the generative service to explain a failed run.
package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jorge-barreto/crew/internal/aifunc"
	"github.com/jorge-barreto/crew/internal/architect"
	"github.com/jorge-barreto/crew/internal/backend"
	"github.com/jorge-barreto/crew/internal/config"
	"github.com/jorge-barreto/crew/internal/frontend"
	"github.com/jorge-barreto/crew/internal/llm"
	"github.com/jorge-barreto/crew/internal/state"
	"github.com/jorge-barreto/crew/internal/ux"
)

const Position = "Doctor"

const maxLogLines = 200

// Run gathers failure context from artifactsDir and writes the service's
// diagnosis to w.
func Run(ctx context.Context, w io.Writer, caller *llm.Caller, cfg *config.Config, artifactsDir string, run *state.Run) error {
	if run.Status != state.StatusFailed && run.Status != state.StatusInterrupted {
		fmt.Fprintln(w, "No failed run to diagnose.")
		return nil
	}
	failed := run.Current()
	if failed == "" {
		failed = "(before the first agent)"
	}

	input := buildInput(run, failed,
		gatherAgentConfig(cfg, failed),
		gatherLog(artifactsDir),
		gatherFeedback(artifactsDir),
		gatherTiming(artifactsDir))

	fmt.Fprintf(w, "\n%s\n\n", ux.Bold(ux.Cyan(fmt.Sprintf("══ Doctor: diagnosing %s (agent %d/%d) ══", failed, run.AgentIndex+1, len(run.Agents)))))

	diagnosis, err := caller.Request(ctx, llm.Task{
		Function:  aifunc.DiagnoseFailedRun,
		Input:     input,
		Position:  Position,
		Operation: "Diagnosing the failed run...",
	})
	if err != nil {
		return fmt.Errorf("diagnosing run: %w", err)
	}
	fmt.Fprintf(w, "\n%s\n\n", strings.TrimSpace(diagnosis))
	fmt.Fprintf(w, "  Re-run with %s once the cause is fixed.\n\n", ux.Cyan("crew run"))
	return nil
}

func buildInput(run *state.Run, failed, agentConfig, log, feedback, timing string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "RUN_STATUS: %s\n", run.Status)
	fmt.Fprintf(&b, "REQUEST: %s\n", run.Request)
	fmt.Fprintf(&b, "FAILED_AGENT: %s\n", failed)
	fmt.Fprintf(&b, "PIPELINE: %s\n", strings.Join(run.Agents, " -> "))
	if run.Error != "" {
		fmt.Fprintf(&b, "ERROR: %s\n", run.Error)
	}
	if agentConfig != "" {
		fmt.Fprintf(&b, "\nAGENT_CONFIG:\n%s\n", agentConfig)
	}
	if timing != "" {
		fmt.Fprintf(&b, "\nTIMING:\n%s\n", timing)
	}
	if feedback != "" {
		fmt.Fprintf(&b, "\nBUILD_ERRORS:\n%s\n", feedback)
	}
	fmt.Fprintf(&b, "\nRUN_LOG (last %d lines):\n%s\n", maxLogLines, log)
	return b.String()
}

// gatherAgentConfig describes the configuration the failing agent ran with.
func gatherAgentConfig(cfg *config.Config, position string) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Provider: %s", cfg.Provider))
	if cfg.Provider == "command" {
		parts = append(parts, fmt.Sprintf("Command: %s", strings.Join(cfg.Command, " ")))
	} else {
		parts = append(parts, fmt.Sprintf("Model: %s", cfg.Model))
		parts = append(parts, fmt.Sprintf("Temperature: %g", cfg.TemperatureValue()))
	}
	switch position {
	case architect.Position:
		parts = append(parts, fmt.Sprintf("Probe timeout: %ds", cfg.Probe.Timeout))
	case backend.Position:
		b := cfg.Backend
		parts = append(parts,
			fmt.Sprintf("Backend dir: %s", b.Dir),
			fmt.Sprintf("Template: %s", b.Template),
			fmt.Sprintf("Build: %s", strings.Join(b.Build, " ")),
			fmt.Sprintf("Run: %s", strings.Join(b.Run, " ")),
			fmt.Sprintf("Address: %s", b.Address),
			fmt.Sprintf("Max bugs: %d", b.MaxBugs))
	case frontend.Position:
		f := cfg.Frontend
		parts = append(parts,
			fmt.Sprintf("Frontend dir: %s", f.Dir),
			fmt.Sprintf("Build: %s", strings.Join(f.Build, " ")),
			fmt.Sprintf("Max failures: %d", f.MaxFailures))
	}
	return strings.Join(parts, "\n")
}

func gatherLog(artifactsDir string) string {
	data, err := os.ReadFile(state.LogPath(artifactsDir))
	if err != nil {
		return "(no log file found)"
	}
	text := strings.TrimRight(string(data), "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
		return fmt.Sprintf("... (truncated to last %d lines)\n%s", maxLogLines, strings.Join(lines, "\n"))
	}
	return text
}

func gatherFeedback(artifactsDir string) string {
	entries, err := state.ReadFeedback(artifactsDir)
	if err != nil {
		return ""
	}
	var parts []string
	for _, f := range entries {
		parts = append(parts, fmt.Sprintf("--- %s ---\n%s", f.Name, f.Content))
	}
	return strings.Join(parts, "\n")
}

func gatherTiming(artifactsDir string) string {
	timing, err := state.LoadTiming(artifactsDir)
	if err != nil {
		return ""
	}
	var parts []string
	for _, e := range timing.Entries {
		if e.Duration != "" {
			parts = append(parts, fmt.Sprintf("%s started %s, duration %s",
				e.Agent, e.Start.Format("15:04:05"), e.Duration))
		} else {
			parts = append(parts, fmt.Sprintf("%s started %s (did not complete)",
				e.Agent, e.Start.Format("15:04:05")))
		}
	}
	return strings.Join(parts, "\n")
}
