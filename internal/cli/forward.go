package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// add and remove are straight pass-throughs: uvrs only supplies the
// "--script <path>" part, the rest of the arguments (package specs, -U, ...)
// go to uv untouched. Flag parsing is disabled on these commands so uv flags
// survive.

func RunAdd(cmd *cobra.Command, args []string) error {
	return forwardToUV(cmd, "add", args)
}

func RunRemove(cmd *cobra.Command, args []string) error {
	return forwardToUV(cmd, "remove", args)
}

func forwardToUV(cmd *cobra.Command, verb string, args []string) error {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		return cmd.Help()
	}
	if len(args) == 0 {
		return fmt.Errorf("uvrs %s requires a script path", verb)
	}
	path := args[0]
	if err := requireScriptFile(path); err != nil {
		return err
	}
	uvArgs := append([]string{"uv", verb, "--script", path}, args[1:]...)
	return runUV(uvArgs)
}
