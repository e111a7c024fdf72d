package fileutil

import (
	"bytes"
	"os"
	"strings"
)

// WriteIfChanged writes data to path unless the file already holds exactly
// that content. Permission bits on an existing file are preserved; new files
// are created 0644. Reports whether a write happened.
func WriteIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureExecutable sets the executable bits on path when none are present.
// Already-executable files are left alone so a custom mode survives.
func EnsureExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode()
	if mode&0o111 != 0 {
		return nil
	}
	return os.Chmod(path, mode|0o111)
}

func EnsureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
