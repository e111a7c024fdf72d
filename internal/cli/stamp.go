package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/treyhunner/uvrs/internal/fileutil"
	"github.com/treyhunner/uvrs/internal/metadata"
)

func RunStamp(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := requireScriptFile(path); err != nil {
		return err
	}

	timestamp, _, err := stampFile(path, time.Now(), false)
	if err != nil {
		return err
	}
	fmt.Printf("Set exclude-newer to %s in %s\n", timestamp, path)

	// Upgrade requirements to match the new timestamp.
	return runUV([]string{"uv", "sync", "--script", path, "--upgrade"})
}

// stampFile reads the script, refreshes exclude-newer in its metadata block
// (creating a minimal block when none exists), and writes the result back.
// Nothing is written when the block is malformed. Reports whether a timestamp
// was actually set.
func stampFile(path string, now time.Time, skip bool) (string, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, timestamp, err := stampText(string(content), now, skip)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := fileutil.WriteIfChanged(path, []byte(updated)); err != nil {
		return "", false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return timestamp, timestamp != "", nil
}

// stampText is the pure in-memory counterpart of stampFile. With skip set, a
// missing block is still created (dependencies only, timestamp key absent)
// while an existing block stays byte-identical: present-but-stale is the
// user's to keep, and intentionally-absent is never silently populated.
func stampText(text string, now time.Time, skip bool) (updated, timestamp string, err error) {
	block, found, err := metadata.Locate(text)
	if err != nil {
		return "", "", err
	}

	if !found {
		fields := metadata.Fields{Dependencies: []string{}}
		timestamp, _ = metadata.StampUnlessSkipped(&fields, now, skip)
		return metadata.Insert(text, fields), timestamp, nil
	}

	if skip {
		return text, "", nil
	}

	fields := metadata.ParseFields(block.Lines)
	timestamp = metadata.Stamp(&fields, now)
	updated = metadata.Replace(text, block, metadata.FormatBlock(fields.Lines()))
	return updated, timestamp, nil
}
