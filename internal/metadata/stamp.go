package metadata

import "time"

// FormatTimestamp renders an instant as the exclude-newer profile: UTC,
// second precision, literal Z suffix.
func FormatTimestamp(now time.Time) string {
	return now.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// Stamp sets exclude-newer in the [tool.uv] table to now, creating the table
// when absent. Any prior value is overwritten wholesale. Returns the
// serialized timestamp.
func Stamp(f *Fields, now time.Time) string {
	if f.UV == nil {
		f.UV = &UVOptions{}
	} else {
		// A prior value the parser could not read (e.g. an empty or
		// malformed string) sits in Extra; scrub it so the canonical
		// emission holds exactly one exclude-newer key.
		f.UV.Extra = dropKey(f.UV.Extra, "exclude-newer")
	}
	f.UV.ExcludeNewer = FormatTimestamp(now)
	return f.UV.ExcludeNewer
}

// StampUnlessSkipped stamps freshly authored metadata unless the user asked
// to skip it, in which case the exclude-newer key stays absent entirely
// rather than being written empty.
func StampUnlessSkipped(f *Fields, now time.Time, skip bool) (string, bool) {
	if skip {
		return "", false
	}
	return Stamp(f, now), true
}
