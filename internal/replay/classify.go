package replay

import (
	"strings"
)

// ClassifyParents reports which parent of a two-parent merge is the implicit
// mainline: the parent that equals the merge base of the parent pair. That
// equality means the merge fast-forwarded one side, so the other side is
// unambiguously the branch being merged in. Returns the 1-based parent index,
// or 0 when neither parent equals the pair's merge base.
//
// Note this deliberately compares against the merge base of the parent *pair*,
// not of any wider range; at most one parent can equal it.
func ClassifyParents(pairBase string, parents []string) int {
	if len(parents) != 2 || pairBase == "" {
		return 0
	}
	if parents[0] == pairBase {
		return 1
	}
	if parents[1] == pairBase {
		return 2
	}
	return 0
}

// minSelectionLen is the shortest accepted short-id prefix, matching git's
// core.abbrev floor.
const minSelectionLen = 4

// matchParent resolves an operator-supplied selection against the parents of a
// merge. A selection matches a parent when it equals the parent id or is a hex
// prefix of it (short ids, at least minSelectionLen characters). Returns the
// 1-based index, or 0 for no match. An exact full-id match wins over a prefix
// match.
func matchParent(selection string, parents []string) int {
	for i, parent := range parents {
		if parent == selection {
			return i + 1
		}
	}
	if len(selection) < minSelectionLen {
		return 0
	}
	for i, parent := range parents {
		if strings.HasPrefix(parent, selection) {
			return i + 1
		}
	}
	return 0
}
