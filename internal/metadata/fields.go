package metadata

import "strings"

const uvTableHeader = "[tool.uv]"

// Fields is the parsed content of a metadata block. Recognized keys are
// lifted into struct fields; every other line round-trips verbatim through
// Extra (top level) or UV.Extra (inside [tool.uv]).
type Fields struct {
	RequiresPython string
	// Dependencies is nil when the key is absent and empty (non-nil) for
	// "dependencies = []".
	Dependencies []string
	Extra        []string
	UV           *UVOptions
}

// UVOptions is the [tool.uv] table.
type UVOptions struct {
	ExcludeNewer string
	Extra        []string
}

type parseMode int

const (
	modeTop parseMode = iota
	modeTopOpaque
	modeUV
	modeUVOpaque
)

// ParseFields parses block content lines (comment leader already stripped)
// into Fields. It never fails: anything outside the recognized grammar is
// preserved verbatim so the block can be re-emitted without loss.
func ParseFields(lines []string) Fields {
	var f Fields
	mode := modeTop
	seenUV := false

	appendRaw := func(line string) {
		if mode == modeUV || mode == modeUVOpaque {
			f.UV.Extra = append(f.UV.Extra, line)
		} else {
			f.Extra = append(f.Extra, line)
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if isTableHeader(trimmed) {
			if trimmed == uvTableHeader && !seenUV {
				seenUV = true
				mode = modeUV
				if f.UV == nil {
					f.UV = &UVOptions{}
				}
				continue
			}
			if mode == modeUV || mode == modeUVOpaque {
				mode = modeUVOpaque
			} else {
				mode = modeTopOpaque
			}
			appendRaw(line)
			continue
		}

		switch mode {
		case modeTop:
			key, rest, ok := splitKey(line)
			if !ok {
				appendRaw(line)
				continue
			}
			switch key {
			case "requires-python":
				// An empty value would vanish on serialization, so
				// it stays preserved verbatim instead.
				if value, ok := parseTOMLString(rest); ok && value != "" {
					f.RequiresPython = value
					continue
				}
			case "dependencies":
				items, next, ok := parseStringArray(lines, i, rest)
				if ok {
					f.Dependencies = items
					i = next
					continue
				}
			}
			appendRaw(line)
		case modeUV:
			key, rest, ok := splitKey(line)
			if ok && key == "exclude-newer" {
				if value, ok := parseTOMLString(rest); ok && value != "" {
					f.UV.ExcludeNewer = value
					continue
				}
				// tomlkit-era scripts write the value as an unquoted
				// TOML datetime; capture it so a later stamp replaces
				// the key instead of duplicating it.
				if raw := strings.TrimSpace(rest); raw != "" && !strings.ContainsAny(raw, "\"'") {
					f.UV.ExcludeNewer = raw
					continue
				}
			}
			appendRaw(line)
		default:
			appendRaw(line)
		}
	}
	return f
}

// Lines serializes fields back to block content lines: recognized top-level
// keys in canonical order, preserved unrecognized lines, then the [tool.uv]
// table. Composed with ParseFields this is a fixed point: parsing the output
// and serializing again reproduces it byte for byte.
func (f Fields) Lines() []string {
	var out []string
	if f.RequiresPython != "" {
		out = append(out, "requires-python = "+quoteTOML(f.RequiresPython))
	}
	if f.Dependencies != nil {
		if len(f.Dependencies) == 0 {
			out = append(out, "dependencies = []")
		} else {
			out = append(out, "dependencies = [")
			for _, dep := range f.Dependencies {
				out = append(out, "    "+quoteTOML(dep)+",")
			}
			out = append(out, "]")
		}
	}
	out = append(out, trimTrailingBlank(f.Extra)...)
	if f.UV != nil {
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, uvTableHeader)
		if f.UV.ExcludeNewer != "" {
			out = append(out, "exclude-newer = "+quoteTOML(f.UV.ExcludeNewer))
		}
		out = append(out, trimTrailingBlank(f.UV.Extra)...)
	}
	return out
}

func isTableHeader(trimmed string) bool {
	return len(trimmed) >= 2 && strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")
}

// splitKey splits a "key = value" line, returning the bare key and the text
// after the equals sign.
func splitKey(line string) (key, rest string, ok bool) {
	key, rest, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, "\"'[]") {
		return "", "", false
	}
	return key, rest, true
}

// dropKey removes "key = ..." lines from lines. Run before emitting a
// recognized key canonically so the block cannot end up with the key twice.
func dropKey(lines []string, key string) []string {
	var out []string
	for _, line := range lines {
		if k, _, ok := splitKey(line); ok && k == key {
			continue
		}
		out = append(out, line)
	}
	return out
}

// parseTOMLString parses a basic ("...") or literal ('...') TOML string.
func parseTOMLString(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 {
		return "", false
	}
	switch raw[0] {
	case '\'':
		if raw[len(raw)-1] != '\'' || strings.Contains(raw[1:len(raw)-1], "'") {
			return "", false
		}
		return raw[1 : len(raw)-1], true
	case '"':
		value, rest, ok := scanBasicString(raw)
		if !ok || strings.TrimSpace(rest) != "" {
			return "", false
		}
		return value, true
	}
	return "", false
}

// scanBasicString consumes a double-quoted string with its escapes from the
// front of raw, returning the decoded value and the remaining text.
func scanBasicString(raw string) (value, rest string, ok bool) {
	if raw == "" || raw[0] != '"' {
		return "", "", false
	}
	var b strings.Builder
	for i := 1; i < len(raw); i++ {
		switch raw[i] {
		case '"':
			return b.String(), raw[i+1:], true
		case '\\':
			i++
			if i >= len(raw) {
				return "", "", false
			}
			switch raw[i] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				return "", "", false
			}
		default:
			b.WriteByte(raw[i])
		}
	}
	return "", "", false
}

func quoteTOML(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(s[i])
		}
	}
	b.WriteByte('"')
	return b.String()
}

// parseStringArray parses an array of strings whose opening line is
// lines[i] with rest holding the text after "dependencies =". The array may
// span multiple lines; next is the index of its final line. A body containing
// anything other than quoted strings and commas fails the parse so the
// original lines stay preserved verbatim.
func parseStringArray(lines []string, i int, rest string) (items []string, next int, ok bool) {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "[") {
		return nil, 0, false
	}
	body := rest
	next = i
	for !arrayClosed(body) {
		next++
		if next >= len(lines) {
			return nil, 0, false
		}
		body += "\n" + lines[next]
	}

	inner := strings.TrimSpace(body)
	inner = inner[1 : len(inner)-1]
	items = make([]string, 0, 4)
	expectItem := true
	for {
		inner = strings.TrimLeft(inner, " \t\n")
		if inner == "" {
			return items, next, true
		}
		if inner[0] == ',' {
			if expectItem {
				return nil, 0, false
			}
			expectItem = true
			inner = inner[1:]
			continue
		}
		if !expectItem {
			return nil, 0, false
		}
		var value string
		var parsed bool
		switch inner[0] {
		case '"':
			value, inner, parsed = scanBasicString(inner)
		case '\'':
			end := strings.IndexByte(inner[1:], '\'')
			if end >= 0 {
				value, inner, parsed = inner[1:end+1], inner[end+2:], true
			}
		}
		if !parsed {
			return nil, 0, false
		}
		items = append(items, value)
		expectItem = false
	}
}

// arrayClosed reports whether body contains a complete bracketed array,
// ignoring brackets inside quoted strings.
func arrayClosed(body string) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(body); i++ {
		c := body[i]
		if quote != 0 {
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return strings.TrimSpace(body[i+1:]) == ""
			}
		}
	}
	return false
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}
