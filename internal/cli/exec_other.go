//go:build !unix

package cli

import (
	"fmt"
	"os"
	"os/exec"
)

// execProcess runs argv as a child process where exec-style process
// replacement is unavailable, propagating its exit code through the returned
// *exec.ExitError.
func execProcess(argv []string) error {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("%s not found on PATH: %w", argv[0], err)
	}
	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
