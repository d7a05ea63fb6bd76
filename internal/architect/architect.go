// Package architect implements the solutions architect: it decides the
// project's scope and which external data sources are usable.
package architect

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jorge-barreto/crew/internal/agent"
	"github.com/jorge-barreto/crew/internal/aifunc"
	"github.com/jorge-barreto/crew/internal/factsheet"
	"github.com/jorge-barreto/crew/internal/llm"
	"github.com/jorge-barreto/crew/internal/ux"
)

const Position = "Solutions Architect"

// Prober reports the HTTP status of a GET to url.
type Prober interface {
	Status(ctx context.Context, url string) (int, error)
}

// Architect moves Discovery -> (UnitTesting) -> Finished.
type Architect struct {
	Basic  agent.Basic
	caller *llm.Caller
	prober Prober
	log    *zap.Logger
}

// New returns an Architect in the Discovery state.
func New(caller *llm.Caller, prober Prober) *Architect {
	return &Architect{
		Basic:  agent.New("Gathers information and designs the solution for website development.", Position),
		caller: caller,
		prober: prober,
		log:    caller.Log.With(zap.String("agent", Position)),
	}
}

func (a *Architect) Position() string { return a.Basic.Position }

// Execute runs the architect until it is Finished.
func (a *Architect) Execute(ctx context.Context, fs *factsheet.FactSheet) error {
	for a.Basic.State != agent.Finished {
		switch a.Basic.State {
		case agent.Discovery:
			if err := a.discover(ctx, fs); err != nil {
				return err
			}
		case agent.UnitTesting:
			if err := a.testURLs(ctx, fs); err != nil {
				return err
			}
		default:
			a.Basic.UpdateState(agent.Finished)
		}
	}
	return nil
}

func (a *Architect) discover(ctx context.Context, fs *factsheet.FactSheet) error {
	scope, err := agent.RequestDecoded[factsheet.ProjectScope](ctx, &a.Basic, a.caller,
		aifunc.PrintProjectScope, fs.ProjectDescription, "Defining project scope")
	if err != nil {
		return fmt.Errorf("project scope: %w", err)
	}
	fs.ProjectScope = &scope
	a.log.Info("scope decided",
		zap.Bool("crud", scope.IsCRUDRequired),
		zap.Bool("login", scope.IsUserLoginAndLogout),
		zap.Bool("external_urls", scope.IsExternalURLsRequired))

	next := agent.Finished
	if scope.IsExternalURLsRequired {
		urls, err := agent.RequestDecoded[[]string](ctx, &a.Basic, a.caller,
			aifunc.PrintSiteURLs, fs.ProjectDescription, "Finding external data sources")
		if err != nil {
			return fmt.Errorf("external urls: %w", err)
		}
		if err := fs.SetExternalURLs(urls); err != nil {
			return err
		}
		next = agent.UnitTesting
	}
	a.Basic.UpdateState(next)
	return nil
}

// testURLs probes every candidate URL once and drops those that do not
// answer 200. URLs that cannot be reached are reported and kept.
func (a *Architect) testURLs(ctx context.Context, fs *factsheet.FactSheet) error {
	var exclude []string
	for _, url := range fs.ExternalURLs {
		ux.AgentMessage(ux.UnitTest, a.Position(), "Testing URL endpoint: "+url)
		code, err := a.prober.Status(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			ux.AgentMessage(ux.Issue, a.Position(), fmt.Sprintf("Error checking %s: %v", url, err))
			a.log.Warn("url probe failed", zap.String("url", url), zap.Error(err))
			continue
		}
		a.log.Info("url probed", zap.String("url", url), zap.Int("status", code))
		if code != 200 {
			exclude = append(exclude, url)
		}
	}
	if len(exclude) > 0 {
		ux.AgentMessage(ux.Issue, a.Position(), fmt.Sprintf("Excluding %d unusable URL(s)", len(exclude)))
		fs.ExcludeURLs(exclude)
	}
	a.Basic.UpdateState(agent.Finished)
	return nil
}
