package metadata

import "strings"

// Shebang is the canonical interpreter directive written to every script.
// env indirection keeps it portable across install locations.
const Shebang = "#!/usr/bin/env uvrs"

// NormalizeShebang ensures text starts with the canonical shebang line. A
// first line that is already an interpreter directive (any "#!" prefix) is
// replaced wholesale; any other first line is pushed down by a prepended
// directive. Idempotent.
func NormalizeShebang(text string) string {
	if strings.HasPrefix(text, "#!") {
		_, rest, found := strings.Cut(text, "\n")
		if !found {
			return Shebang + "\n"
		}
		return Shebang + "\n" + rest
	}
	return Shebang + "\n" + text
}
