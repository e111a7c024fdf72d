package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/treyhunner/uvrs/internal/fileutil"
	"github.com/treyhunner/uvrs/internal/metadata"
)

func RunInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	extras := args[1:]

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists at %s\nTo add or update the shebang use: uvrs fix %s", path, path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	pythonVersion, err := OptionalStringFlag(cmd, "python")
	if err != nil {
		return err
	}
	noStamp, err := OptionalBoolFlag(cmd, "no-stamp", false)
	if err != nil {
		return err
	}

	uvArgs := []string{"uv", "init", "--script", path}
	if pythonVersion != "" {
		uvArgs = append(uvArgs, "--python", pythonVersion)
	}
	uvArgs = append(uvArgs, extras...)
	if err := runUV(uvArgs); err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s after uv init: %w", path, err)
	}
	updated := fileutil.EnsureTrailingNewline(metadata.NormalizeShebang(string(content)))
	if _, err := fileutil.WriteIfChanged(path, []byte(updated)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := fileutil.EnsureExecutable(path); err != nil {
		return fmt.Errorf("failed to mark %s executable: %w", path, err)
	}
	fmt.Printf("Updated shebang in %s\n", path)

	timestamp, stamped, err := stampFile(path, time.Now(), noStamp)
	if err != nil {
		return err
	}
	if stamped {
		fmt.Printf("Set exclude-newer to %s\n", timestamp)
	}
	return nil
}
