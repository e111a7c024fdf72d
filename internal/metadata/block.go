package metadata

import (
	"errors"
	"strings"
)

const (
	StartMarker = "# /// script"
	EndMarker   = "# ///"
)

// ErrUnclosedBlock reports a start marker with no matching end marker.
// Callers must not write the file back when they see it: inserting a second
// block next to a truncated one would corrupt the script.
var ErrUnclosedBlock = errors.New("script metadata block is missing its closing \"# ///\" marker")

// Block is the byte range of an inline metadata block within a script buffer.
// Start and End cover both marker lines; End excludes the newline that
// terminates the end marker. Lines holds the content between the markers with
// the comment leader stripped.
type Block struct {
	Start int
	End   int
	Lines []string
}

// Locate finds the first inline metadata block in text. It returns
// (zero, false, nil) when no start marker exists, and ErrUnclosedBlock when a
// start marker is not followed by an end marker before the first non-comment
// line or end of input. Content after a validly closed block is never
// re-scanned, so a second start marker there is ordinary text.
func Locate(text string) (Block, bool, error) {
	offset := 0
	for offset <= len(text) {
		line, next := nextLine(text, offset)
		if line != StartMarker {
			if next < 0 {
				return Block{}, false, nil
			}
			offset = next
			continue
		}

		block := Block{Start: offset}
		if next < 0 {
			return Block{}, false, ErrUnclosedBlock
		}
		offset = next
		for offset <= len(text) {
			line, next = nextLine(text, offset)
			if line == EndMarker {
				block.End = offset + len(line)
				return block, true, nil
			}
			if !isCommentLine(line) {
				// PEP 723 terminates the block at the first
				// non-comment line, so this block has no valid
				// close.
				return Block{}, false, ErrUnclosedBlock
			}
			block.Lines = append(block.Lines, stripLeader(line))
			if next < 0 {
				break
			}
			offset = next
		}
		return Block{}, false, ErrUnclosedBlock
	}
	return Block{}, false, nil
}

// Replace splices lines (comment-prefixed block lines, markers included) over
// the located block, leaving every other byte of text untouched.
func Replace(text string, block Block, lines []string) string {
	return text[:block.Start] + strings.Join(lines, "\n") + text[block.End:]
}

// Insert builds a fresh block from fields and inserts it after the shebang
// line when present, else at the top of the buffer, with one blank line
// separating it from existing content. Callers must have checked Locate
// first; Insert never detects duplicates.
func Insert(text string, fields Fields) string {
	block := strings.Join(FormatBlock(fields.Lines()), "\n")
	if strings.HasPrefix(text, "#!") {
		shebang, rest, found := strings.Cut(text, "\n")
		if !found || rest == "" {
			return shebang + "\n" + block + "\n"
		}
		return shebang + "\n" + block + "\n\n" + rest
	}
	if text == "" {
		return block + "\n"
	}
	return block + "\n\n" + text
}

// FormatBlock wraps content lines with the start/end markers and re-applies
// the comment leader to each line.
func FormatBlock(lines []string) []string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, StartMarker)
	for _, line := range lines {
		if line == "" {
			out = append(out, "#")
		} else {
			out = append(out, "# "+line)
		}
	}
	out = append(out, EndMarker)
	return out
}

// nextLine returns the line starting at offset (without its newline) and the
// offset of the following line, or -1 when this is the final line.
func nextLine(text string, offset int) (string, int) {
	rest := text[offset:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i], offset + i + 1
	}
	return rest, -1
}

// A block content line is "#" alone or "#" followed by a space. Anything
// else ("#foo", a blank line, code) cannot round-trip through the comment
// leader and marks the block as truncated.
func isCommentLine(line string) bool {
	return line == "#" || strings.HasPrefix(line, "# ")
}

func stripLeader(line string) string {
	line = strings.TrimPrefix(line, "#")
	return strings.TrimPrefix(line, " ")
}
