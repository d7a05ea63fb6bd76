package llm

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Command is a Completer backed by a local CLI that reads a prompt as its
// final argument and prints the reply, e.g. []string{"claude", "-p"}.
type Command struct {
	Args []string
	Dir  string
}

// Complete implements Completer. Messages are joined into a single prompt.
func (c *Command) Complete(ctx context.Context, messages []Message) (string, error) {
	if len(c.Args) == 0 {
		return "", fmt.Errorf("command completer: no command configured")
	}
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, m.Content)
	}
	args := append(append([]string{}, c.Args[1:]...), strings.Join(parts, "\n\n"))

	cmd := exec.CommandContext(ctx, c.Args[0], args...)
	cmd.Dir = c.Dir
	cmd.Env = filteredEnv()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s: %w: %s", c.Args[0], err, msg)
		}
		return "", fmt.Errorf("%s: %w", c.Args[0], err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// filteredEnv strips CLAUDECODE so a nested claude CLI does not refuse to run.
func filteredEnv() []string {
	var env []string
	for _, e := range os.Environ() {
		key := strings.SplitN(e, "=", 2)[0]
		if strings.HasPrefix(key, "CLAUDECODE") {
			continue
		}
		env = append(env, e)
	}
	return env
}
