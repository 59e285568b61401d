package git

import (
	"fmt"
)

// MergeBase returns the merge base between two revs, or the empty string when
// the two revs share no history at all.
func (r *Repo) MergeBase(rev1, rev2 string) (string, error) {
	hash1, err := r.resolveRefHash(rev1)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", rev1, err)
	}

	hash2, err := r.resolveRefHash(rev2)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", rev2, err)
	}

	commit1, err := r.gg.CommitObject(hash1)
	if err != nil {
		return "", fmt.Errorf("failed to get commit for %s: %w", rev1, err)
	}

	commit2, err := r.gg.CommitObject(hash2)
	if err != nil {
		return "", fmt.Errorf("failed to get commit for %s: %w", rev2, err)
	}

	mergeBases, err := commit1.MergeBase(commit2)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base: %w", err)
	}

	if len(mergeBases) == 0 {
		return "", nil
	}

	return mergeBases[0].Hash.String(), nil
}
