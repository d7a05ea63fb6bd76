package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/crew/internal/agent"
	"github.com/jorge-barreto/crew/internal/architect"
	"github.com/jorge-barreto/crew/internal/backend"
	"github.com/jorge-barreto/crew/internal/config"
	"github.com/jorge-barreto/crew/internal/docs"
	"github.com/jorge-barreto/crew/internal/doctor"
	"github.com/jorge-barreto/crew/internal/frontend"
	"github.com/jorge-barreto/crew/internal/gate"
	"github.com/jorge-barreto/crew/internal/llm"
	"github.com/jorge-barreto/crew/internal/manager"
	"github.com/jorge-barreto/crew/internal/probe"
	"github.com/jorge-barreto/crew/internal/runlog"
	"github.com/jorge-barreto/crew/internal/scaffold"
	"github.com/jorge-barreto/crew/internal/state"
	"github.com/jorge-barreto/crew/internal/toolchain"
	"github.com/jorge-barreto/crew/internal/ux"
)

func main() {
	app := &cli.Command{
		Name:        "crew",
		Usage:       "A crew of AI agents that builds a web server from a one-line request",
		Description: "Run 'crew docs' for documentation on configuration, agents, and artifacts.",
		Commands: []*cli.Command{
			initCmd(),
			runCmd(),
			statusCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ux.Errorf("%v", err)
		os.Exit(1)
	}
}

// project is a loaded crew project.
type project struct {
	root         string
	cfg          *config.Config
	artifactsDir string
}

func loadProject() (*project, error) {
	root, err := findProjectRoot()
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnv(root); err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.Path(root), root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &project{root: root, cfg: cfg, artifactsDir: config.ArtifactsDir(root)}, nil
}

// completer builds the generative service client the config names.
func (p *project) completer() (llm.Completer, error) {
	switch p.cfg.Provider {
	case "command":
		return &llm.Command{Args: p.cfg.Command, Dir: p.root}, nil
	default:
		key, org, err := config.Credentials()
		if err != nil {
			return nil, err
		}
		return llm.NewOpenAI(p.cfg.BaseURL, key, org, p.cfg.Model, p.cfg.TemperatureValue(), p.cfg.RequestsPerMinute), nil
	}
}

func (p *project) backendOptions() backend.Options {
	dir := p.cfg.BackendDir(p.root)
	return backend.Options{
		TemplatePath: filepath.Join(dir, p.cfg.Backend.Template),
		MainPath:     filepath.Join(dir, p.cfg.Backend.Main),
		SchemaPath:   filepath.Join(dir, p.cfg.Backend.Schema),
		Address:      p.cfg.Backend.Address,
		MaxBugs:      p.cfg.Backend.MaxBugs,
		Warmup:       time.Duration(p.cfg.Probe.Warmup) * time.Second,
		ArtifactsDir: p.artifactsDir,
	}
}

// preflight checks the binaries a run needs are installed.
func (p *project) preflight(withFrontend bool) error {
	commands := [][]string{p.cfg.Backend.Build, p.cfg.Backend.Run}
	if withFrontend {
		commands = append(commands, p.cfg.Frontend.Build)
	}
	if p.cfg.Provider == "command" {
		commands = append(commands, p.cfg.Command)
	}
	return toolchain.Preflight(commands...)
}

// plan describes the agents a run would execute.
func (p *project) plan(withFrontend bool) []manager.Step {
	b := p.cfg.Backend
	steps := []manager.Step{
		{Position: manager.Position, Details: []string{fmt.Sprintf("provider: %s, model: %s", p.cfg.Provider, p.cfg.Model)}},
		{Position: architect.Position, Details: []string{fmt.Sprintf("probe timeout: %ds", p.cfg.Probe.Timeout)}},
		{Position: backend.Position, Details: []string{
			fmt.Sprintf("dir: %s", p.cfg.BackendDir(p.root)),
			fmt.Sprintf("template: %s -> %s", b.Template, b.Main),
			fmt.Sprintf("build: %s", strings.Join(b.Build, " ")),
			fmt.Sprintf("run: %s", strings.Join(b.Run, " ")),
			fmt.Sprintf("max-bugs: %d", b.MaxBugs),
		}},
	}
	if withFrontend {
		steps = append(steps, manager.Step{Position: frontend.Position, Details: []string{
			fmt.Sprintf("dir: %s", p.cfg.FrontendDir(p.root)),
			fmt.Sprintf("build: %s", strings.Join(p.cfg.Frontend.Build, " ")),
			fmt.Sprintf("max-failures: %d", p.cfg.Frontend.MaxFailures),
		}})
	}
	return steps
}

func runCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Build a web server for a request",
		ArgsUsage: "[request]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "auto", Usage: "Approve generated code without asking"},
			&cli.BoolFlag{Name: "with-frontend", Usage: "Also build the React frontend"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the agent plan without executing"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			withFrontend := cmd.Bool("with-frontend") || p.cfg.Frontend.Enabled

			if err := p.preflight(withFrontend); err != nil {
				return err
			}
			if cmd.Bool("dry-run") {
				manager.DryRunPrint(os.Stdout, p.plan(withFrontend))
				return nil
			}

			client, err := p.completer()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			prompter := gate.New(os.Stdin, cmd.Bool("auto"))
			request := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if request == "" {
				request, err = prompter.Ask(ctx, "What website are we building today?")
				if err != nil {
					return err
				}
			}

			if err := state.Reset(p.artifactsDir); err != nil {
				return fmt.Errorf("resetting artifacts: %w", err)
			}
			log, err := runlog.New(state.LogPath(p.artifactsDir))
			if err != nil {
				return err
			}
			defer log.Sync()

			serverLog, err := os.Create(filepath.Join(p.artifactsDir, "logs", "server.log"))
			if err != nil {
				return err
			}
			defer serverLog.Close()

			caller := llm.NewCaller(client, log)
			mgr, err := manager.New(ctx, caller, request, p.artifactsDir)
			if err != nil {
				return err
			}

			backendTC := &toolchain.Project{
				Dir:       p.cfg.BackendDir(p.root),
				BuildArgs: p.cfg.Backend.Build,
				RunArgs:   p.cfg.Backend.Run,
				Output:    serverLog,
			}
			prober := probe.New(time.Duration(p.cfg.Probe.Timeout) * time.Second)
			opts := p.backendOptions()

			agents := []agent.Agent{
				architect.New(caller, prober),
				backend.New(caller, backendTC, prompter, prober, opts),
			}
			if withFrontend {
				frontendTC := &toolchain.Project{
					Dir:       p.cfg.FrontendDir(p.root),
					BuildArgs: p.cfg.Frontend.Build,
				}
				agents = append(agents, frontend.New(caller, frontendTC, frontend.Options{
					Dir:             p.cfg.FrontendDir(p.root),
					BackendMainPath: opts.MainPath,
					SchemaPath:      opts.SchemaPath,
					MaxFailures:     p.cfg.Frontend.MaxFailures,
					ArtifactsDir:    p.artifactsDir,
				}))
			}
			mgr.AddAgent(agents...)
			return mgr.Run(ctx)
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the last run",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, err := findProjectRoot()
			if err != nil {
				return err
			}
			artifactsDir := config.ArtifactsDir(root)
			run, err := state.Load(artifactsDir)
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}
			sheet, err := state.LoadFactSheet(artifactsDir)
			if err != nil {
				return fmt.Errorf("loading fact sheet: %w", err)
			}
			ux.RenderStatus(os.Stdout, run, sheet, artifactsDir)
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Diagnose a failed run using AI",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			run, err := state.Load(p.artifactsDir)
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}
			client, err := p.completer()
			if err != nil {
				return err
			}
			return doctor.Run(ctx, os.Stdout, llm.NewCaller(client, nil), p.cfg, p.artifactsDir, run)
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a crew project in the current directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(os.Stdout, dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				docs.WriteIndex(os.Stdout)
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// findProjectRoot walks up from cwd looking for .crew/config.yaml.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(config.Path(dir)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .crew/config.yaml found (searched from cwd to root); run 'crew init' first")
		}
		dir = parent
	}
}
