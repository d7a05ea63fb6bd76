package toolchain

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// Preflight checks that every command's binary is on PATH.
func Preflight(commands ...[]string) error {
	needed := make(map[string]bool)
	for _, argv := range commands {
		if len(argv) > 0 {
			needed[argv[0]] = true
		}
	}

	var missing []string
	for bin := range needed {
		if _, err := exec.LookPath(bin); err != nil {
			missing = append(missing, bin)
		}
	}
	sort.Strings(missing)

	if len(missing) > 0 {
		return fmt.Errorf("required binaries not found in PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}
