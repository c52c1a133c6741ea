package catalog

import "strings"

const (
	// sectionMarker opens the list of size entries in the configuration
	// document. Matched against the trimmed line content, exactly.
	sectionMarker = "files:"

	// itemMarker prefixes each list entry under the section marker.
	itemMarker = "- "
)

// ParseDocument scans the configuration document line by line and returns the
// raw size entries listed under the "files:" section marker, lowercased and
// with surrounding quotes stripped, in document order.
//
// Full YAML semantics are deliberately not supported: the document has exactly
// one shape and a structured parser would not reproduce the stop-at-dedent and
// quote-stripping behaviors existing documents rely on. Blank lines inside the
// section are skipped; the first non-blank line that is not a list item ends
// the section, and anything after it is ignored. Entries are not validated
// here, malformed tokens later resolve to a byte size of zero.
func ParseDocument(text string) []string {
	var entries []string
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inSection {
			if trimmed == sectionMarker {
				inSection = true
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, itemMarker) {
			break
		}
		value := strings.TrimPrefix(trimmed, itemMarker)
		value = strings.Trim(value, `"'`)
		entries = append(entries, strings.ToLower(value))
	}
	return entries
}
