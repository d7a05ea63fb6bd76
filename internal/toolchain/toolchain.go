// Package toolchain runs the external build and run commands of a generated
// project.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"
)

// Result is the outcome of a build.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the build exited 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// ErrorText is the text to feed back to a fix request: stderr, or stdout when
// the toolchain reports errors there.
func (r *Result) ErrorText() string {
	if strings.TrimSpace(r.Stderr) != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Project is a generated project and the commands that build and run it.
type Project struct {
	Dir       string
	BuildArgs []string
	RunArgs   []string
	// Output receives the running server's stdout and stderr. Nil discards.
	Output io.Writer
}

// Build runs the build command to completion. There is no timeout; only ctx
// stops it.
func (p *Project) Build(ctx context.Context) (*Result, error) {
	if len(p.BuildArgs) == 0 {
		return nil, fmt.Errorf("no build command configured")
	}
	cmd := exec.CommandContext(ctx, p.BuildArgs[0], p.BuildArgs[1:]...)
	cmd.Dir = p.Dir
	cmd.Env = os.Environ()
	scope(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res, err := resultOf(cmd.Run(), stdout.String(), stderr.String())
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", strings.Join(p.BuildArgs, " "), err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return res, nil
}

// resultOf turns the error from running a command into a Result. A non-zero
// exit is a Result; failing to run at all is an error.
func resultOf(runErr error, stdout, stderr string) (*Result, error) {
	res := &Result{Stdout: stdout, Stderr: stderr}
	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return nil, runErr
	}
	return res, nil
}

// Handle is a launched process. Stop may be called any number of times; the
// process is only signalled once.
type Handle interface {
	Stop() error
}

// Start launches the run command and returns without waiting for it.
// Cancelling ctx also stops the process.
func (p *Project) Start(ctx context.Context) (Handle, error) {
	if len(p.RunArgs) == 0 {
		return nil, fmt.Errorf("no run command configured")
	}
	cmd := exec.CommandContext(ctx, p.RunArgs[0], p.RunArgs[1:]...)
	cmd.Dir = p.Dir
	cmd.Env = os.Environ()
	scope(cmd)

	out := p.Output
	if out == nil {
		out = io.Discard
	}
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", strings.Join(p.RunArgs, " "), err)
	}
	proc := &process{cmd: cmd, done: make(chan struct{})}
	go func() {
		proc.waitErr = cmd.Wait()
		close(proc.done)
	}()
	return proc, nil
}

type process struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error

	once    sync.Once
	stopErr error
}

// stopGrace is how long a stopped process gets to exit before SIGKILL.
var stopGrace = 5 * time.Second

func (p *process) Stop() error {
	p.once.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}
		pgid := -p.cmd.Process.Pid
		if err := syscall.Kill(pgid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
			p.stopErr = fmt.Errorf("stopping process: %w", err)
			return
		}
		select {
		case <-p.done:
		case <-time.After(stopGrace):
			syscall.Kill(pgid, syscall.SIGKILL)
			<-p.done
		}
	})
	return p.stopErr
}

// scope runs cmd in its own process group so the whole tree is signalled
// together, e.g. "go run" and the binary it spawns.
func scope(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = 5 * time.Second
}
