// Package manager drives a crew run: it turns the operator's request into a
// project description and hands the fact sheet to each agent in turn.
package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jorge-barreto/crew/internal/agent"
	"github.com/jorge-barreto/crew/internal/aifunc"
	"github.com/jorge-barreto/crew/internal/factsheet"
	"github.com/jorge-barreto/crew/internal/llm"
	"github.com/jorge-barreto/crew/internal/runlog"
	"github.com/jorge-barreto/crew/internal/state"
	"github.com/jorge-barreto/crew/internal/ux"
)

const Position = "Project Manager"

// ErrEmptyDescription is returned when the request converts to nothing.
var ErrEmptyDescription = errors.New("request produced an empty project description")

// Manager owns the fact sheet for the duration of a run.
type Manager struct {
	Basic        agent.Basic
	Sheet        *factsheet.FactSheet
	Record       *state.Run
	Timing       *state.Timing
	ArtifactsDir string

	request string
	agents  []agent.Agent
	log     *zap.Logger
}

// New converts request into a project description and opens a fact sheet
// for it. Run state is recorded under artifactsDir.
func New(ctx context.Context, caller *llm.Caller, request, artifactsDir string) (*Manager, error) {
	m := &Manager{
		Basic:        agent.New("Manage agents who are building an excellent website for a user.", Position),
		ArtifactsDir: artifactsDir,
		request:      request,
		log:          caller.Log.With(zap.String("agent", Position)),
	}
	description, err := m.Basic.Request(ctx, caller, aifunc.ConvertUserInputToGoal, request, "Converting the request into a project goal...")
	if err != nil {
		return nil, fmt.Errorf("converting request: %w", err)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	m.Sheet = factsheet.New(description)
	m.Basic.UpdateState(agent.Working)
	m.log.Info("project description", zap.String("description", description))
	return m, nil
}

// AddAgent appends agents to the pipeline in execution order.
func (m *Manager) AddAgent(agents ...agent.Agent) {
	m.agents = append(m.agents, agents...)
}

// Positions lists the pipeline's agents in execution order.
func (m *Manager) Positions() []string {
	return positions(m.agents)
}

func positions(agents []agent.Agent) []string {
	out := make([]string, len(agents))
	for i, a := range agents {
		out[i] = a.Position()
	}
	return out
}

// fail records err against the run, persists what is known, and returns
// err annotated with the failing agent.
func (m *Manager) fail(position string, err error) error {
	m.Record.Fail(err)
	if saveErr := m.Record.Save(m.ArtifactsDir); saveErr != nil {
		ux.Warning("failed to save state: %v", saveErr)
	}
	if saveErr := state.SaveFactSheet(m.ArtifactsDir, m.Sheet); saveErr != nil {
		ux.Warning("failed to save fact sheet: %v", saveErr)
	}
	if flushErr := m.Timing.Flush(m.ArtifactsDir); flushErr != nil {
		ux.Warning("failed to flush timing: %v", flushErr)
	}
	m.log.Error("run failed", zap.String("position", position), zap.String("status", m.Record.Status), zap.Error(err))
	if position == "" {
		return err
	}
	return fmt.Errorf("%s failed to execute: %w", position, err)
}

// Run runs every agent in sequence. The first agent error aborts
// the run.
func (m *Manager) Run(ctx context.Context) error {
	if err := state.EnsureDir(m.ArtifactsDir); err != nil {
		return err
	}
	m.Record = state.NewRun(m.request, m.Positions())
	m.Timing = &state.Timing{}
	m.log = runlog.WithRun(m.log, m.Record.RunID)
	if err := m.Record.Save(m.ArtifactsDir); err != nil {
		return fmt.Errorf("saving initial state: %w", err)
	}

	total := len(m.agents)
	for m.Record.AgentIndex < total {
		i := m.Record.AgentIndex
		a := m.agents[i]
		position := a.Position()

		if ctx.Err() != nil {
			return m.fail("", ctx.Err())
		}

		ux.AgentHeader(i, total, position)
		m.Timing.Start(position)
		m.log.Info("agent started", zap.String("position", position))

		err := a.Execute(ctx, m.Sheet)
		duration := m.Timing.End(position)
		if err != nil {
			ux.AgentFail(i, position, err.Error())
			return m.fail(position, err)
		}

		if err := state.SaveFactSheet(m.ArtifactsDir, m.Sheet); err != nil {
			return m.fail(position, fmt.Errorf("saving fact sheet: %w", err))
		}
		if err := m.Timing.Flush(m.ArtifactsDir); err != nil {
			ux.Warning("failed to flush timing: %v", err)
		}
		m.Record.Advance()
		if err := m.Record.Save(m.ArtifactsDir); err != nil {
			return fmt.Errorf("saving state after %s: %w", position, err)
		}
		m.log.Info("agent finished", zap.String("position", position), zap.Duration("duration", duration))
		ux.AgentComplete(i, position, duration)
	}

	m.Record.Status = state.StatusCompleted
	if err := m.Record.Save(m.ArtifactsDir); err != nil {
		return fmt.Errorf("saving final state: %w", err)
	}
	m.Basic.UpdateState(agent.Finished)
	ux.Success(total)
	return nil
}

// Step is one line of the dry-run plan.
type Step struct {
	Position string
	Details  []string
}

// DryRunPrint writes the agent plan without executing anything.
func DryRunPrint(w io.Writer, steps []Step) {
	fmt.Fprintf(w, "\n%s\n\n", ux.Bold(fmt.Sprintf("Dry run: %d agents", len(steps))))
	for i, s := range steps {
		fmt.Fprintf(w, "  %s %s\n", ux.Cyan(fmt.Sprintf("%d.", i+1)), ux.Bold(s.Position))
		for _, d := range s.Details {
			fmt.Fprintf(w, "     %s\n", d)
		}
	}
	fmt.Fprintln(w)
}
