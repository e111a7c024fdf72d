package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// runUV executes a uv command with stdout/stderr passed through. Package-level
// so tests can stub the subprocess away.
var runUV = runUVCommand

func runUVCommand(args []string) error {
	fmt.Printf("→ uvrs executing: %s\n", strings.Join(args, " "))
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", strings.Join(args[:2], " "), err)
	}
	return nil
}

// RunScript hands a script invocation to uv run. On unix the current process
// is replaced, so uv's exit code becomes ours for free.
func RunScript(args []string) error {
	uvArgs := append([]string{"uv", "run", "--exact", "--script"}, args...)
	return execProcess(uvArgs)
}
