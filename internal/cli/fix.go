package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/treyhunner/uvrs/internal/fileutil"
	"github.com/treyhunner/uvrs/internal/metadata"
)

func RunFix(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := requireScriptFile(path); err != nil {
		return err
	}

	noStamp, err := OptionalBoolFlag(cmd, "no-stamp", false)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	// The whole edit happens in memory so a malformed metadata block aborts
	// before any byte reaches disk.
	updated := fileutil.EnsureTrailingNewline(metadata.NormalizeShebang(string(content)))
	// fix --no-stamp leaves metadata alone entirely, matching the flag's
	// promise that only the shebang and mode are touched.
	var timestamp string
	if !noStamp {
		updated, timestamp, err = stampText(updated, time.Now(), false)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if _, err := fileutil.WriteIfChanged(path, []byte(updated)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := fileutil.EnsureExecutable(path); err != nil {
		return fmt.Errorf("failed to mark %s executable: %w", path, err)
	}
	fmt.Printf("Updated shebang in %s\n", path)

	if noStamp {
		return nil
	}
	fmt.Printf("Set exclude-newer to %s\n", timestamp)

	// Sync with upgrade so the environment matches the refreshed timestamp.
	return runUV([]string{"uv", "sync", "--script", path, "--upgrade"})
}
