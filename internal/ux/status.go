package ux

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/crew/internal/factsheet"
	"github.com/jorge-barreto/crew/internal/state"
)

// RenderStatus writes the status display for the last run.
func RenderStatus(w io.Writer, run *state.Run, sheet *factsheet.FactSheet, artifactsDir string) {
	if !run.Exists() {
		fmt.Fprintf(w, "No crew run recorded in %s\n", artifactsDir)
		return
	}
	timing, _ := state.LoadTiming(artifactsDir)

	fmt.Fprintf(w, "%s  %s\n", Bold("Run:"), run.RunID)
	fmt.Fprintf(w, "%s  %s\n", Bold("Request:"), run.Request)
	total := len(run.Agents)
	switch {
	case run.Status == state.StatusCompleted:
		fmt.Fprintf(w, "%s  %s\n", Bold("State:"), greenBold.Sprint("completed"))
	case run.AgentIndex < total:
		fmt.Fprintf(w, "%s  %d/%d (%s): %s\n", Bold("State:"), run.AgentIndex+1, total, run.Current(), run.Status)
	default:
		fmt.Fprintf(w, "%s  %s\n", Bold("State:"), run.Status)
	}
	if run.Error != "" {
		fmt.Fprintf(w, "%s  %s\n", Bold("Error:"), red.Sprint(run.Error))
	}

	if run.AgentIndex > 0 {
		fmt.Fprintf(w, "\n%s\n", Bold("Completed:"))
		for i := 0; i < run.AgentIndex && i < total; i++ {
			fmt.Fprintf(w, "  %s  %-22s %s  %s\n", Dim(fmt.Sprint(i+1)), run.Agents[i], Green("done"), findDuration(timing, run.Agents[i]))
		}
	}
	if run.AgentIndex < total {
		fmt.Fprintf(w, "\n%s\n", Bold("Remaining:"))
		for i := run.AgentIndex; i < total; i++ {
			marker := "  "
			if i == run.AgentIndex {
				marker = Yellow("→") + " "
			}
			fmt.Fprintf(w, "  %s%s  %s\n", marker, Dim(fmt.Sprint(i+1)), run.Agents[i])
		}
	}

	if sheet != nil {
		renderSheet(w, sheet)
	}

	fmt.Fprintf(w, "\n%s\n", Bold("Artifacts:"))
	entries, err := os.ReadDir(artifactsDir)
	if err != nil {
		fmt.Fprintf(w, "  %s\n", Dim("(none)"))
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			fmt.Fprintf(w, "  %s\n", filepath.Join(artifactsDir, e.Name()))
			continue
		}
		sub, _ := os.ReadDir(filepath.Join(artifactsDir, e.Name()))
		if len(sub) == 0 {
			continue
		}
		first, last := sub[0].Name(), sub[len(sub)-1].Name()
		if first == last {
			fmt.Fprintf(w, "  %s\n", filepath.Join(artifactsDir, e.Name(), first))
		} else {
			fmt.Fprintf(w, "  %s .. %s\n", filepath.Join(artifactsDir, e.Name(), first), last)
		}
	}
	fmt.Fprintln(w)
}

func renderSheet(w io.Writer, sheet *factsheet.FactSheet) {
	fmt.Fprintf(w, "\n%s\n", Bold("Fact sheet:"))
	fmt.Fprintf(w, "  description  %s\n", sheet.ProjectDescription)
	if s := sheet.ProjectScope; s != nil {
		fmt.Fprintf(w, "  scope        crud=%t login=%t external-urls=%t\n", s.IsCRUDRequired, s.IsUserLoginAndLogout, s.IsExternalURLsRequired)
	}
	if sheet.HasExternalURLs() {
		fmt.Fprintf(w, "  urls         %d\n", len(sheet.ExternalURLs))
		for _, u := range sheet.ExternalURLs {
			fmt.Fprintf(w, "               %s\n", Dim(u))
		}
	}
	if sheet.BackendCode != nil {
		fmt.Fprintf(w, "  backend      %d bytes\n", len(sheet.Code()))
	}
	if sheet.APIEndpointSchema != nil {
		fmt.Fprintf(w, "  endpoints    %d\n", len(sheet.APIEndpointSchema))
	}
}

func findDuration(timing *state.Timing, agent string) string {
	if timing == nil {
		return ""
	}
	for i := len(timing.Entries) - 1; i >= 0; i-- {
		if timing.Entries[i].Agent == agent && timing.Entries[i].Duration != "" {
			return fmt.Sprintf("(%s)", timing.Entries[i].Duration)
		}
	}
	return ""
}
