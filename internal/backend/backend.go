// Package backend implements the backend developer: it writes the web
// server, builds it, repairs build failures within a bounded budget, and
// probes the running server's static GET routes.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/crew/internal/agent"
	"github.com/jorge-barreto/crew/internal/aifunc"
	"github.com/jorge-barreto/crew/internal/factsheet"
	"github.com/jorge-barreto/crew/internal/fileblocks"
	"github.com/jorge-barreto/crew/internal/llm"
	"github.com/jorge-barreto/crew/internal/state"
	"github.com/jorge-barreto/crew/internal/toolchain"
	"github.com/jorge-barreto/crew/internal/ux"
)

const Position = "Backend Developer"

// ErrTooManyBugs is returned when the build keeps failing after the repair
// budget is spent.
var ErrTooManyBugs = errors.New("too many bugs to successfully build the backend")

// Toolchain builds and launches the backend project.
type Toolchain interface {
	Build(ctx context.Context) (*toolchain.Result, error)
	Start(ctx context.Context) (toolchain.Handle, error)
}

// Confirmer approves running generated code.
type Confirmer interface {
	ConfirmSafeCode(ctx context.Context, position string) error
}

// Prober reports the HTTP status of a GET to url.
type Prober interface {
	Status(ctx context.Context, url string) (int, error)
}

// Options locate the backend project and bound the repair loop.
type Options struct {
	TemplatePath string // code template read in Discovery
	MainPath     string // generated server source
	SchemaPath   string // endpoint schema JSON
	Address      string // base URL the server listens on
	MaxBugs      int    // failed builds tolerated before ErrTooManyBugs
	Warmup       time.Duration
	ArtifactsDir string // build errors go to its feedback dir; "" disables
}

// Developer moves Discovery -> Working -> UnitTesting -> (Working | Finished).
type Developer struct {
	Basic     agent.Basic
	BugCount  int
	LastError string

	failures int
	caller   *llm.Caller
	tc       Toolchain
	gate     Confirmer
	prober   Prober
	opts     Options
	log      *zap.Logger
}

// New returns a Developer in the Discovery state.
func New(caller *llm.Caller, tc Toolchain, gate Confirmer, prober Prober, opts Options) *Developer {
	return &Developer{
		Basic:  agent.New("Develops the backend code for the web server and JSON database.", Position),
		caller: caller,
		tc:     tc,
		gate:   gate,
		prober: prober,
		opts:   opts,
		log:    caller.Log.With(zap.String("agent", Position)),
	}
}

func (d *Developer) Position() string { return d.Basic.Position }

// Execute runs the developer until it is Finished or a fatal error occurs.
func (d *Developer) Execute(ctx context.Context, fs *factsheet.FactSheet) error {
	for d.Basic.State != agent.Finished {
		var err error
		switch d.Basic.State {
		case agent.Discovery:
			err = d.discover(ctx, fs)
		case agent.Working:
			err = d.work(ctx, fs)
		case agent.UnitTesting:
			err = d.unitTest(ctx, fs)
		default:
			d.Basic.UpdateState(agent.Finished)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Developer) discover(ctx context.Context, fs *factsheet.FactSheet) error {
	template, err := os.ReadFile(d.opts.TemplatePath)
	if err != nil {
		return fmt.Errorf("reading code template: %w", err)
	}
	input := fmt.Sprintf("CODE TEMPLATE: %s \n PROJECT DESCRIPTION: %s", template, fs.ProjectDescription)
	code, err := d.Basic.Request(ctx, d.caller, aifunc.PrintBackendWebserverCode, input, "Writing initial backend code")
	if err != nil {
		return fmt.Errorf("initial backend code: %w", err)
	}
	if err := d.commit(fs, code); err != nil {
		return err
	}
	d.Basic.UpdateState(agent.Working)
	return nil
}

func (d *Developer) work(ctx context.Context, fs *factsheet.FactSheet) error {
	var code string
	var err error
	if d.BugCount == 0 {
		input := fmt.Sprintf("CODE TEMPLATE: %s \n PROJECT DESCRIPTION: %s", fs.Code(), fs.ProjectDescription)
		code, err = d.Basic.Request(ctx, d.caller, aifunc.PrintImprovedWebserverCode, input, "Improving backend code")
	} else {
		input := fmt.Sprintf("BROKEN CODE: %s \n ERROR BUGS: %s \n THIS FUNCTION JUST OUTPUTS THE CODE. JUST OUTPUT THE CODE.",
			fs.Code(), d.LastError)
		code, err = d.Basic.Request(ctx, d.caller, aifunc.PrintFixedCode, input, "Fixing backend code bugs")
	}
	if err != nil {
		return fmt.Errorf("backend code: %w", err)
	}
	if err := d.commit(fs, code); err != nil {
		return err
	}
	d.Basic.UpdateState(agent.UnitTesting)
	return nil
}

func (d *Developer) unitTest(ctx context.Context, fs *factsheet.FactSheet) error {
	ux.AgentMessage(ux.UnitTest, d.Position(), "Backend Code Unit Testing: Ensuring code safety")
	if err := d.gate.ConfirmSafeCode(ctx, d.Position()); err != nil {
		return err
	}

	ux.AgentMessage(ux.UnitTest, d.Position(), "Backend Code Unit Testing: Building project")
	res, err := d.tc.Build(ctx)
	if err != nil {
		return fmt.Errorf("building backend: %w", err)
	}
	if !res.Success() {
		return d.buildFailed(res)
	}

	d.BugCount = 0
	d.LastError = ""
	ux.AgentMessage(ux.UnitTest, d.Position(), "Backend Code Unit Testing: Test server build successful")
	d.log.Info("build succeeded")

	routes, err := d.describeEndpoints(ctx)
	if err != nil {
		return err
	}
	fs.APIEndpointSchema = routes
	if err := d.saveSchema(routes); err != nil {
		return err
	}

	if err := d.probeServer(ctx, factsheet.ProbeTargets(routes)); err != nil {
		return err
	}
	d.Basic.UpdateState(agent.Finished)
	return nil
}

func (d *Developer) buildFailed(res *toolchain.Result) error {
	d.failures++
	d.BugCount++
	d.LastError = res.ErrorText()
	d.log.Warn("build failed", zap.Int("exit_code", res.ExitCode), zap.Int("bug_count", d.BugCount))

	if d.opts.ArtifactsDir != "" {
		if err := state.WriteFeedback(d.opts.ArtifactsDir, d.Position(), d.failures, d.LastError); err != nil {
			d.log.Warn("writing feedback", zap.Error(err))
		}
	}

	if d.BugCount > d.opts.MaxBugs {
		ux.AgentMessage(ux.Issue, d.Position(), "Backend Code Unit Testing: Too many bugs found in code, shutting down")
		return fmt.Errorf("%w (%d failed builds)", ErrTooManyBugs, d.BugCount)
	}
	ux.RepairLoop(d.Position(), d.BugCount, d.opts.MaxBugs)
	d.Basic.UpdateState(agent.Working)
	return nil
}

// describeEndpoints asks for the REST endpoints of the source as built.
func (d *Developer) describeEndpoints(ctx context.Context) ([]factsheet.RouteObject, error) {
	built, err := os.ReadFile(d.opts.MainPath)
	if err != nil {
		return nil, fmt.Errorf("reading built backend: %w", err)
	}
	input := fmt.Sprintf("CODE INPUT: %s \n", built)
	routes, err := agent.RequestDecoded[[]factsheet.RouteObject](ctx, &d.Basic, d.caller,
		aifunc.PrintRESTAPIEndpoints, input, "Extracting REST API endpoints")
	if err != nil {
		return nil, fmt.Errorf("api endpoints: %w", err)
	}
	d.log.Info("endpoints described", zap.Int("count", len(routes)))
	return routes, nil
}

func (d *Developer) saveSchema(routes []factsheet.RouteObject) error {
	data, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding endpoint schema: %w", err)
	}
	if err := state.WriteFile(d.opts.SchemaPath, data); err != nil {
		return fmt.Errorf("saving endpoint schema: %w", err)
	}
	return nil
}

// probeServer launches the server once, waits for it to warm up and probes
// each target. Failures are warnings. A transport error stops the server
// early; the handle is released exactly once either way.
func (d *Developer) probeServer(ctx context.Context, targets []factsheet.RouteObject) error {
	if len(targets) == 0 {
		ux.AgentMessage(ux.UnitTest, d.Position(), "Backend Code Unit Testing: No static GET routes to probe")
		return nil
	}

	ux.AgentMessage(ux.UnitTest, d.Position(), "Backend Code Unit Testing: Starting web server...")
	handle, err := d.tc.Start(ctx)
	if err != nil {
		ux.AgentMessage(ux.Issue, d.Position(), "WARNING: Failed to start backend server: "+err.Error())
		d.log.Warn("server start failed", zap.Error(err))
		return nil
	}
	released := false
	release := func() {
		if released {
			return
		}
		released = true
		if err := handle.Stop(); err != nil {
			d.log.Warn("stopping server", zap.Error(err))
		}
	}
	defer release()

	ux.AgentMessage(ux.UnitTest, d.Position(),
		fmt.Sprintf("Backend Code Unit Testing: Launching tests on server in %s...", d.opts.Warmup))
	if err := sleep(ctx, d.opts.Warmup); err != nil {
		return err
	}

	for _, route := range targets {
		ux.AgentMessage(ux.UnitTest, d.Position(), "Testing endpoint "+route.Route)
		url := d.opts.Address + route.Route
		code, err := d.prober.Status(ctx, url)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			ux.AgentMessage(ux.Issue, d.Position(),
				fmt.Sprintf("WARNING: Failed to call backend url endpoint %s: %v", route.Route, err))
			d.log.Warn("endpoint probe failed", zap.String("route", route.Route), zap.Error(err))
			release()
		case code != 200:
			ux.AgentMessage(ux.Issue, d.Position(),
				fmt.Sprintf("WARNING: Backend url endpoint %s returned %d", route.Route, code))
			d.log.Warn("endpoint unhealthy", zap.String("route", route.Route), zap.Int("status", code))
		default:
			d.log.Info("endpoint healthy", zap.String("route", route.Route))
		}
	}
	return nil
}

// commit persists generated code to the backend main file and the fact sheet.
func (d *Developer) commit(fs *factsheet.FactSheet, text string) error {
	code := fileblocks.Unfence(text)
	if err := state.WriteFile(d.opts.MainPath, []byte(code)); err != nil {
		return fmt.Errorf("saving backend code: %w", err)
	}
	fs.SetBackendCode(code)
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
