package cli

import (
	"fmt"
	"os"
)

// requireScriptFile rejects paths that do not point at an existing regular
// file before anything is forwarded to uv.
func requireScriptFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist", path)
		}
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is not a file", path)
	}
	return nil
}
