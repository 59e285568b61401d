package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// AncestorIter lazily yields commits from an ancestry walk, newest first.
// Next returns io.EOF when the walk is exhausted.
type AncestorIter struct {
	iter object.CommitIter
}

// Next returns the next commit in the walk
func (it *AncestorIter) Next() (CommitInfo, error) {
	commit, err := it.iter.Next()
	if err != nil {
		return CommitInfo{}, err
	}
	return commitInfoFromObject(commit), nil
}

// Close releases the underlying iterator
func (it *AncestorIter) Close() {
	it.iter.Close()
}

// WalkAncestors walks the ancestry of from in reverse-topological (newest-first)
// order. When stopAt is non-empty, stopAt and its whole ancestry are excluded,
// yielding the half-open range (stopAt, from] the same way `git log stopAt..from`
// does. Excluding only the bound itself would not be enough: a merge on the
// walked side whose other parent forks below stopAt would drag shared ancestors
// back into the walk.
// The walk is lazy; callers may stop consuming at any point.
func (r *Repo) WalkAncestors(from, stopAt string) (*AncestorIter, error) {
	fromHash, err := r.resolveRefHash(from)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", from, err)
	}

	commit, err := r.gg.CommitObject(fromHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit for %s: %w", from, err)
	}

	var boundary map[plumbing.Hash]bool
	if stopAt != "" {
		boundary, err = r.ancestrySet(stopAt)
		if err != nil {
			return nil, err
		}
	}

	return &AncestorIter{
		iter: object.NewCommitPreorderIter(commit, boundary, nil),
	}, nil
}

// ancestrySet returns rev and every commit reachable from it
func (r *Repo) ancestrySet(rev string) (map[plumbing.Hash]bool, error) {
	hash, err := r.resolveRefHash(rev)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", rev, err)
	}

	commit, err := r.gg.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit for %s: %w", rev, err)
	}

	set := make(map[plumbing.Hash]bool)
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	defer iter.Close()
	err = iter.ForEach(func(c *object.Commit) error {
		set[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk ancestry of %s: %w", rev, err)
	}
	return set, nil
}
