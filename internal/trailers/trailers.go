// Package trailers parses and renders the provenance trailers portit embeds in
// commit messages. Two trailer vocabularies exist: "cherry picked from commit",
// written by git itself for -x cherry-picks, and "with child", written by the
// replay resolver when it flattens a merge commit onto a single parent line.
package trailers

import (
	"fmt"
	"regexp"
)

// Trailer names
const (
	CherryPickedFrom = "cherry picked from commit"
	WithChild        = "with child"
)

// A trailer references a commit by at least a short id; git never abbreviates
// below 7 characters.
var trailerRe = regexp.MustCompile(`(cherry picked from commit|with child) ([0-9a-f]{7,40})`)

// Set maps a trailer name to the commit ids it references, in order of
// appearance within the message.
type Set map[string][]string

// Parse scans an entire commit message body for provenance trailers.
func Parse(message string) Set {
	set := Set{}
	for _, match := range trailerRe.FindAllStringSubmatch(message, -1) {
		set[match[1]] = append(set[match[1]], match[2])
	}
	return set
}

// IDs returns every referenced commit id across all trailer names
func (s Set) IDs() []string {
	var ids []string
	for _, name := range []string{CherryPickedFrom, WithChild} {
		ids = append(ids, s[name]...)
	}
	return ids
}

// References reports whether any trailer in the set references id
func (s Set) References(id string) bool {
	for _, ids := range s {
		for _, ref := range ids {
			if ref == id {
				return true
			}
		}
	}
	return false
}

// WithChildLine renders a "with child" trailer line for id
func WithChildLine(id string) string {
	return fmt.Sprintf("(%s %s)", WithChild, id)
}

// CherryPickedFromLine renders a "cherry picked from commit" trailer line for id
func CherryPickedFromLine(id string) string {
	return fmt.Sprintf("(%s %s)", CherryPickedFrom, id)
}
