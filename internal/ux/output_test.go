package ux

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, prevNoColor := Out, color.NoColor
	Out, color.NoColor = &buf, true
	t.Cleanup(func() { Out, color.NoColor = prev, prevNoColor })
	return &buf
}

func TestAgentHeader(t *testing.T) {
	buf := capture(t)
	AgentHeader(1, 3, "Backend Developer")
	if !strings.Contains(buf.String(), "Agent 2/3: Backend Developer") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestAgentComplete_Duration(t *testing.T) {
	buf := capture(t)
	AgentComplete(0, "Solutions Architect", 75*time.Second)
	if !strings.Contains(buf.String(), "Agent 1 (Solutions Architect) finished (1m 15s)") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestAgentMessage(t *testing.T) {
	buf := capture(t)
	AgentMessage(UnitTest, "Frontend Developer", "Testing component: Logo")
	out := buf.String()
	if !strings.Contains(out, "Agent: Frontend Developer:") || !strings.Contains(out, "Testing component: Logo") {
		t.Fatalf("output = %q", out)
	}
}

func TestRepairLoop(t *testing.T) {
	buf := capture(t)
	RepairLoop("Backend Developer", 1, 2)
	if !strings.Contains(buf.String(), "attempt 1/2") {
		t.Fatalf("output = %q", buf.String())
	}
}
