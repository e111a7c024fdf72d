package metadata

import (
	"errors"
	"strings"
	"testing"
)

const sampleScript = `#!/usr/bin/env uvrs
# /// script
# requires-python = ">=3.12"
# dependencies = [
#     "requests",
# ]
#
# [tool.uv]
# exclude-newer = "2024-01-02T03:04:05Z"
# ///

print("hello")
`

func TestLocateFindsBlock(t *testing.T) {
	block, found, err := Locate(sampleScript)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if !found {
		t.Fatal("expected block to be found")
	}

	raw := sampleScript[block.Start:block.End]
	if !strings.HasPrefix(raw, StartMarker+"\n") {
		t.Fatalf("block range does not start at start marker:\n%s", raw)
	}
	if !strings.HasSuffix(raw, EndMarker) {
		t.Fatalf("block range does not end at end marker:\n%s", raw)
	}
	if len(block.Lines) != 7 {
		t.Fatalf("expected 7 content lines, got %d: %q", len(block.Lines), block.Lines)
	}
	if block.Lines[0] != `requires-python = ">=3.12"` {
		t.Fatalf("unexpected first content line: %q", block.Lines[0])
	}
}

func TestLocateNoBlock(t *testing.T) {
	for _, text := range []string{
		"",
		"print(1)\n",
		"#!/usr/bin/env python\nprint(1)\n",
		"# ///\nprint(1)\n", // end marker with no start is ordinary content
	} {
		if _, found, err := Locate(text); err != nil || found {
			t.Fatalf("Locate(%q) = found=%v err=%v, want not found", text, found, err)
		}
	}
}

func TestLocateUnclosedBlock(t *testing.T) {
	for _, text := range []string{
		"# /// script\n# dependencies = []\n",
		"# /// script",
		"# /// script\n# dependencies = []\nprint(1)\n# ///\n", // code line truncates the block
	} {
		_, _, err := Locate(text)
		if !errors.Is(err, ErrUnclosedBlock) {
			t.Fatalf("Locate(%q) err = %v, want ErrUnclosedBlock", text, err)
		}
	}
}

func TestLocateIgnoresSecondStartMarker(t *testing.T) {
	text := "# /// script\n# dependencies = []\n# ///\n\n# /// script\nnot a block\n"
	block, found, err := Locate(text)
	if err != nil || !found {
		t.Fatalf("Locate failed: found=%v err=%v", found, err)
	}
	if got := text[block.Start:block.End]; strings.Contains(got, "not a block") {
		t.Fatalf("second marker was re-scanned as a block:\n%s", got)
	}
}

func TestReplaceRoundTripsCanonicalBlock(t *testing.T) {
	block, found, err := Locate(sampleScript)
	if err != nil || !found {
		t.Fatalf("Locate failed: found=%v err=%v", found, err)
	}
	fields := ParseFields(block.Lines)
	updated := Replace(sampleScript, block, FormatBlock(fields.Lines()))
	if updated != sampleScript {
		t.Fatalf("canonical block changed under parse+serialize:\n--- got ---\n%s\n--- want ---\n%s", updated, sampleScript)
	}
}

func TestReplaceTouchesOnlyBlockBytes(t *testing.T) {
	text := "leading\n# /// script\n# dependencies = []\n# ///\ntrailing\n"
	block, found, err := Locate(text)
	if err != nil || !found {
		t.Fatalf("Locate failed: found=%v err=%v", found, err)
	}
	updated := Replace(text, block, []string{"REPLACED"})
	if updated != "leading\nREPLACED\ntrailing\n" {
		t.Fatalf("unexpected splice result: %q", updated)
	}
}

func TestInsertWithoutShebang(t *testing.T) {
	fields := Fields{Dependencies: []string{}}
	got := Insert("print(1)\n", fields)
	want := "# /// script\n# dependencies = []\n# ///\n\nprint(1)\n"
	if got != want {
		t.Fatalf("Insert = %q, want %q", got, want)
	}
}

func TestInsertAfterShebang(t *testing.T) {
	fields := Fields{Dependencies: []string{}}
	got := Insert("#!/usr/bin/env uvrs\nprint(1)\n", fields)
	want := "#!/usr/bin/env uvrs\n# /// script\n# dependencies = []\n# ///\n\nprint(1)\n"
	if got != want {
		t.Fatalf("Insert = %q, want %q", got, want)
	}
}

func TestInsertIntoEmptyBuffer(t *testing.T) {
	got := Insert("", Fields{Dependencies: []string{}})
	want := "# /// script\n# dependencies = []\n# ///\n"
	if got != want {
		t.Fatalf("Insert = %q, want %q", got, want)
	}
}

func TestInsertPreservesOriginalContent(t *testing.T) {
	fields := Fields{Dependencies: []string{"rich"}}
	for _, original := range []string{
		"print(1)\n",
		"import sys\n\nprint(sys.argv)\n",
		"no trailing newline",
	} {
		got := Insert(original, fields)
		if !strings.Contains(got, original) {
			t.Fatalf("Insert lost original content %q:\n%s", original, got)
		}
		if _, found, err := Locate(got); err != nil || !found {
			t.Fatalf("inserted block not locatable: found=%v err=%v\n%s", found, err, got)
		}
	}
}
