package knowledge

import (
	"strings"
	"unicode"
)

// Collection name constraints imposed by the backing store.
const (
	minCollectionLen = 3
	maxCollectionLen = 63

	// collectionFiller replaces a non-alphanumeric first or last
	// character after normalization.
	collectionFiller = 'c'
)

// ResolveCollection deterministically maps a human-supplied course name
// to a valid collection identifier.
//
// The result always has length in [3,63], starts and ends with an
// alphanumeric character, and contains only [a-z0-9_-]. Two course
// names that normalize identically ("CS 101", "cs-101") share a
// collection; that collision is an accepted property of the design, and
// downstream consumers rely on the groupings it produces.
//
// ResolveCollection is a pure function: no I/O, no side effects.
func ResolveCollection(courseName string) string {
	// Lowercase, then drop everything that is not a lowercase letter,
	// digit, whitespace, hyphen or underscore.
	lowered := strings.ToLower(courseName)

	var kept strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			kept.WriteRune(r)
		case unicode.IsSpace(r):
			kept.WriteRune(' ')
		}
	}

	// Collapse every run of spaces/underscores/hyphens into a single
	// underscore; runs at either end are dropped entirely.
	var b []byte
	pendingSep := false
	for _, r := range kept.String() {
		if r == ' ' || r == '_' || r == '-' {
			pendingSep = true
			continue
		}
		if pendingSep && len(b) > 0 {
			b = append(b, '_')
		}
		pendingSep = false
		b = append(b, byte(r))
	}
	name := string(b)

	// Pad short names, truncate long ones.
	if len(name) < minCollectionLen {
		name += "_col"
	}
	if len(name) > maxCollectionLen {
		name = strings.TrimRight(name[:maxCollectionLen], "_-")
	}

	// First and last character must be alphanumeric, independently.
	id := []byte(name)
	if !isAlnum(id[0]) {
		id[0] = collectionFiller
	}
	if !isAlnum(id[len(id)-1]) {
		id[len(id)-1] = collectionFiller
	}

	return string(id)
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
