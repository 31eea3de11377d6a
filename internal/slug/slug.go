// Package slug derives URL-safe identifiers from item names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// Matches runs of whitespace (for replacement with a single dash).
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Matches anything outside the slug alphabet.
	invalidCharRe = regexp.MustCompile(`[^a-z0-9-]`)
)

// Make derives the canonical slug for an item name.
// The slug is the source of truth for item identity: two names that
// normalize to the same slug refer to the same item.
//
// Rules:
//  1. Trim surrounding whitespace and lowercase
//  2. Replace interior whitespace runs with a single dash
//  3. Remove any character outside [a-z0-9-]
//
// Examples:
//
//	"Duct Tape!"       → "duct-tape"
//	"  Multi   Space " → "multi-space"
//	"WD-40"            → "wd-40"
//	"!!!"              → ""
//
// Purely numeric or symbolic input can collapse to the empty string;
// callers must reject an empty slug before touching storage.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = invalidCharRe.ReplaceAllString(s, "")
	return s
}
