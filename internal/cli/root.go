package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uvrs",
		Short: "Create and run uv scripts with a POSIX-friendly shebang",
		Long: `uvrs wraps uv's single-file script support so that scripts carry a
portable "#!/usr/bin/env uvrs" shebang, stay executable, and pin their
dependency universe with an exclude-newer timestamp in the inline
metadata block.

Running "uvrs script.py [args...]" delegates to "uv run --exact --script",
which is what makes the shebang work.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	initCmd := &cobra.Command{
		Use:   "init <path> [-- uv-init-args...]",
		Short: "Create a new script via `uv init --script` and add the uvrs shebang",
		Args:  cobra.MinimumNArgs(1),
		RunE:  RunInit,
	}
	initCmd.Flags().String("python", "", "Python version constraint forwarded to uv init")
	initCmd.Flags().Bool("no-stamp", false, "Skip adding the exclude-newer timestamp to metadata")

	fixCmd := &cobra.Command{
		Use:   "fix <path>",
		Short: "Ensure a script starts with the uvrs shebang and is executable",
		Args:  cobra.ExactArgs(1),
		RunE:  RunFix,
	}
	fixCmd.Flags().Bool("no-stamp", false, "Skip adding/updating the exclude-newer timestamp")

	addCmd := &cobra.Command{
		Use:                "add <path> [args...]",
		Short:              "Forward to `uv add --script` with the provided arguments",
		DisableFlagParsing: true,
		RunE:               RunAdd,
	}

	removeCmd := &cobra.Command{
		Use:                "remove <path> [args...]",
		Short:              "Forward to `uv remove --script` with the provided arguments",
		DisableFlagParsing: true,
		RunE:               RunRemove,
	}

	stampCmd := &cobra.Command{
		Use:   "stamp <path>",
		Short: "Add or update the exclude-newer timestamp and upgrade dependencies",
		Args:  cobra.ExactArgs(1),
		RunE:  RunStamp,
	}

	rootCmd.AddCommand(
		initCmd,
		fixCmd,
		addCmd,
		removeCmd,
		stampCmd,
	)

	return rootCmd
}

// Execute dispatches argv and returns the process exit code. A first argument
// that is neither a flag nor a known subcommand is treated as a script path
// and handed straight to uv run, so "#!/usr/bin/env uvrs" scripts work.
func Execute(version string, argv []string) int {
	rootCmd := NewRootCommand(version)

	if len(argv) > 0 && !strings.HasPrefix(argv[0], "-") && !isKnownCommand(rootCmd, argv[0]) {
		if err := RunScript(argv); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitCode(err)
		}
		return 0
	}

	rootCmd.SetArgs(argv)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

func isKnownCommand(rootCmd *cobra.Command, name string) bool {
	// cobra registers these lazily during Execute.
	switch name {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return false
}

// exitCode surfaces the delegated uv process's own exit code when one exists.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
