// Package frontend implements the frontend developer: it plans the web app's
// pages, routes and branding, then writes a fixed set of React components,
// checking the whole project builds after each one.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jorge-barreto/crew/internal/agent"
	"github.com/jorge-barreto/crew/internal/aifunc"
	"github.com/jorge-barreto/crew/internal/factsheet"
	"github.com/jorge-barreto/crew/internal/llm"
	"github.com/jorge-barreto/crew/internal/state"
	"github.com/jorge-barreto/crew/internal/toolchain"
	"github.com/jorge-barreto/crew/internal/ux"
)

const Position = "Frontend Developer"

// ErrTooManyFailures is returned once the component builds have failed too
// often across the whole component loop.
var ErrTooManyFailures = errors.New("too many failed frontend builds")

// Builder builds the whole web app project.
type Builder interface {
	Build(ctx context.Context) (*toolchain.Result, error)
}

// Options locate the web app and the backend artifacts it is built from.
type Options struct {
	Dir             string // web app root
	BackendMainPath string
	SchemaPath      string
	MaxFailures     int
	ArtifactsDir    string // build errors go to its feedback dir; "" disables
}

// Developer moves Discovery -> Working -> Finished.
type Developer struct {
	Basic    agent.Basic
	Sheet    DesignBuildSheet
	Focus    BuildComponent
	Failures int

	caller  *llm.Caller
	builder Builder
	opts    Options
	log     *zap.Logger
}

// New returns a Developer in the Discovery state with an empty build sheet.
func New(caller *llm.Caller, builder Builder, opts Options) *Developer {
	return &Developer{
		Basic:   agent.New("Develops the frontend code for the website.", Position),
		Sheet:   DesignBuildSheet{BuildMode: Infrastructure},
		caller:  caller,
		builder: builder,
		opts:    opts,
		log:     caller.Log.With(zap.String("agent", Position)),
	}
}

func (d *Developer) Position() string { return d.Basic.Position }

// Execute runs the developer until it is Finished or a fatal error occurs.
func (d *Developer) Execute(ctx context.Context, fs *factsheet.FactSheet) error {
	for d.Basic.State != agent.Finished {
		switch d.Basic.State {
		case agent.Discovery:
			d.confirmStage()
			if err := d.discover(ctx, fs); err != nil {
				return err
			}
			d.Basic.UpdateState(agent.Working)
		case agent.Working:
			if err := d.buildComponents(ctx, fs.ProjectDescription); err != nil {
				return err
			}
			d.Basic.UpdateState(agent.Finished)
		default:
			d.Basic.UpdateState(agent.Finished)
		}
	}
	return nil
}

func (d *Developer) confirmStage() {
	ux.AgentMessage(ux.UnitTest, d.Position(), "["+d.Sheet.BuildMode.String()+"]")
}

func (d *Developer) discover(ctx context.Context, fs *factsheet.FactSheet) error {
	backendCode, err := os.ReadFile(d.opts.BackendMainPath)
	if err != nil {
		return fmt.Errorf("reading backend code: %w", err)
	}

	pages, err := agent.RequestDecoded[[]SitePage](ctx, &d.Basic, d.caller, aifunc.PrintRecommendedSitePages,
		fmt.Sprintf("PROJECT_DESCRIPTION: %q, CODE_LOGIC: %q", fs.ProjectDescription, backendCode),
		"Recommending site pages")
	if err != nil {
		return fmt.Errorf("site pages: %w", err)
	}
	d.Sheet.PagesDescriptions = pages
	d.Sheet.Pages = make([]string, 0, len(pages))
	for _, p := range pages {
		d.Sheet.Pages = append(d.Sheet.Pages, p.PageName)
	}

	schema, err := os.ReadFile(d.opts.SchemaPath)
	if err != nil {
		return fmt.Errorf("reading endpoint schema: %w", err)
	}
	external := ""
	if fs.ExternalURLs != nil {
		external = jsonString(fs.ExternalURLs)
	}
	routes, err := agent.RequestDecoded[PageRoutes](ctx, &d.Basic, d.caller, aifunc.PrintRecommendedSitePagesWithAPIs,
		fmt.Sprintf("WEBSITE SPECIFICATION: {\n  PROJECT_DESCRIPTION: %s,\n  PAGES: %s,\n  INTERNAL_API_ROUTES: %s,\n  EXTERNAL_API_ROUTES: %s\n}",
			fs.ProjectDescription, jsonString(d.Sheet.Pages), schema, external),
		"Assigning API routes to pages")
	if err != nil {
		return fmt.Errorf("page routes: %w", err)
	}
	d.Sheet.APIAssignments = routes

	colours, err := agent.RequestDecoded[[]string](ctx, &d.Basic, d.caller, aifunc.PrintRecommendedSiteMainColours,
		fmt.Sprintf("PROJECT_DESCRIPTION: %s, WEBSITE_CONTENT: %s", fs.ProjectDescription, jsonString(d.Sheet.PagesDescriptions)),
		"Defining brand colours")
	if err != nil {
		return fmt.Errorf("brand colours: %w", err)
	}
	if len(colours) > MaxBrandColours {
		d.log.Info("dropping extra brand colours", zap.Strings("dropped", colours[MaxBrandColours:]))
		colours = colours[:MaxBrandColours]
	}
	d.Sheet.BrandColours = colours

	d.log.Info("frontend planned",
		zap.Strings("pages", d.Sheet.Pages),
		zap.Int("assigned_pages", len(routes)),
		zap.Strings("colours", colours))
	return nil
}

func (d *Developer) buildComponents(ctx context.Context, description string) error {
	d.Sheet.BuildMode = PageComponents
	d.confirmStage()

	for _, c := range Components() {
		d.Focus = c
		made, err := d.create(ctx, c, description)
		if err != nil {
			return err
		}
		if !made {
			continue
		}

		errText, err := d.test(ctx)
		if err != nil {
			return err
		}
		if errText == "" {
			continue
		}
		if err := d.fix(ctx, c, errText); err != nil {
			return err
		}
		if _, err := d.test(ctx); err != nil {
			return err
		}
	}

	d.Sheet.BuildMode = Completion
	d.confirmStage()
	return nil
}

// test builds the web app. It returns the build error text on failure and
// ErrTooManyFailures once the shared failure budget is spent.
func (d *Developer) test(ctx context.Context) (string, error) {
	ux.AgentMessage(ux.UnitTest, d.Position(), "Testing component: "+d.Focus.Name())
	res, err := d.builder.Build(ctx)
	if err != nil {
		return "", fmt.Errorf("building frontend: %w", err)
	}
	if res.Success() {
		ux.AgentMessage(ux.UnitTest, d.Position(), "Component build test successful")
		return "", nil
	}

	d.Failures++
	text := res.ErrorText()
	d.log.Warn("component build failed",
		zap.String("component", d.Focus.Name()),
		zap.Int("failures", d.Failures),
		zap.Int("exit_code", res.ExitCode))
	if d.opts.ArtifactsDir != "" {
		if err := state.WriteFeedback(d.opts.ArtifactsDir, d.Position(), d.Failures, text); err != nil {
			d.log.Warn("writing feedback", zap.Error(err))
		}
	}
	if d.Failures >= d.opts.MaxFailures {
		ux.AgentMessage(ux.Issue, d.Position(), "Too many code failures")
		ux.AgentMessage(ux.Issue, d.Position(), "Remember: check frontend builds before retrying")
		return "", fmt.Errorf("%w: %d failures, last in %s", ErrTooManyFailures, d.Failures, d.Focus.Name())
	}
	return text, nil
}

// fix requests one repair of c using the build error.
func (d *Developer) fix(ctx context.Context, c BuildComponent, errText string) error {
	ux.AgentMessage(ux.UnitTest, d.Position(), "Fixing component bugs")
	buggy, err := os.ReadFile(d.componentPath(c))
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.Path(), err)
	}
	code, err := d.Basic.Request(ctx, d.caller, aifunc.PrintCodeBugsResolution,
		fmt.Sprintf("ORIGINAL_CODE: %s, ERROR_MESSAGE: %q", buggy, errText),
		"Fixing "+c.Name())
	if err != nil {
		return fmt.Errorf("fixing %s: %w", c.Name(), err)
	}
	return d.save(c, code)
}
