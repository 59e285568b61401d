// Package eligibility finds commits on a source branch that have not yet been
// ported to a target branch, judged by the provenance trailers embedded in the
// target's commit messages.
package eligibility

import (
	"fmt"
	"io"

	porterrors "portit.dev/portit/internal/errors"
	"portit.dev/portit/internal/git"
	"portit.dev/portit/internal/trailers"
)

// Identity is the author identity configuration the analyzer filters by.
// Both keys are multi-valued; a commit matches when its author name equals any
// configured name or its author email equals any configured email. Matching is
// exact string equality, mirroring how git stores author fields.
type Identity struct {
	Names  []string
	Emails []string
}

// Empty reports whether no identity is configured at all
func (id Identity) Empty() bool {
	return len(id.Names) == 0 && len(id.Emails) == 0
}

// Matches reports whether an author name/email pair belongs to the identity
func (id Identity) Matches(name, email string) bool {
	for _, n := range id.Names {
		if n == name {
			return true
		}
	}
	for _, e := range id.Emails {
		if e == email {
			return true
		}
	}
	return false
}

// CommitIter is the lazy ancestry walk the analyzer consumes.
// Satisfied by *git.AncestorIter.
type CommitIter interface {
	Next() (git.CommitInfo, error)
	Close()
}

// Backend is the subset of repository queries the analyzer needs
type Backend interface {
	ResolveCommit(ref string) (git.CommitInfo, error)
	MergeBase(rev1, rev2 string) (string, error)
	WalkAncestors(from, stopAt string) (*git.AncestorIter, error)
}

// walker abstracts Backend's concrete iterator for tests
type walker interface {
	ResolveCommit(ref string) (git.CommitInfo, error)
	MergeBase(rev1, rev2 string) (string, error)
	walk(from, stopAt string) (CommitIter, error)
}

// Options configures a FindUnpicked run
type Options struct {
	// Source is the branch whose commits are candidates for porting
	Source string
	// Target is the branch being checked for provenance markers
	Target string
	// Since bounds the source walk: the walk stops after this commit (inclusive)
	Since string
	// AllAuthors disables authorship filtering entirely
	AllAuthors bool
	// Identity is the author filter applied when AllAuthors is false
	Identity Identity
}

// Seq is a lazy, single-use sequence of eligible commits.
// Next returns io.EOF once the walk is exhausted or the Since bound is hit.
type Seq struct {
	iter      CommitIter
	picked    map[string]bool
	opts      Options
	sinceSHA  string
	exhausted bool
}

// FindUnpicked analyzes source against target and returns the sequence of
// commits present on source but absent, by provenance, from target.
//
// The cherrypicked set is built eagerly (one full walk of target back to the
// merge base); the source walk itself is lazy.
func FindUnpicked(backend Backend, opts Options) (*Seq, error) {
	return findUnpicked(backendWalker{backend}, opts)
}

func findUnpicked(backend walker, opts Options) (*Seq, error) {
	source, err := backend.ResolveCommit(opts.Source)
	if err != nil {
		return nil, err
	}
	target, err := backend.ResolveCommit(opts.Target)
	if err != nil {
		return nil, err
	}

	base, err := backend.MergeBase(source.SHA, target.SHA)
	if err != nil {
		return nil, err
	}
	if base == "" {
		return nil, fmt.Errorf("%s and %s: %w", opts.Source, opts.Target, porterrors.ErrNoCommonAncestor)
	}

	if !opts.AllAuthors && opts.Identity.Empty() {
		return nil, porterrors.ErrNoIdentityConfigured
	}

	var sinceSHA string
	if opts.Since != "" {
		since, err := backend.ResolveCommit(opts.Since)
		if err != nil {
			return nil, err
		}
		sinceSHA = since.SHA
	}

	picked, err := cherrypickedSet(backend, target.SHA, base)
	if err != nil {
		return nil, err
	}

	iter, err := backend.walk(source.SHA, base)
	if err != nil {
		return nil, err
	}

	return &Seq{
		iter:     iter,
		picked:   picked,
		opts:     opts,
		sinceSHA: sinceSHA,
	}, nil
}

// cherrypickedSet collects every commit id referenced by a provenance trailer
// anywhere in target's history down to (but excluding) the merge base.
func cherrypickedSet(backend walker, target, base string) (map[string]bool, error) {
	iter, err := backend.walk(target, base)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	picked := make(map[string]bool)
	for {
		commit, err := iter.Next()
		if err == io.EOF {
			return picked, nil
		}
		if err != nil {
			return nil, err
		}
		for _, id := range trailers.Parse(commit.Message).IDs() {
			picked[id] = true
		}
	}
}

// Next returns the next eligible commit, or io.EOF when the sequence ends
func (s *Seq) Next() (git.CommitInfo, error) {
	if s.exhausted {
		return git.CommitInfo{}, io.EOF
	}
	for {
		commit, err := s.iter.Next()
		if err != nil {
			s.exhausted = true
			return git.CommitInfo{}, err
		}

		// The since bound is inclusive: this commit is still considered,
		// but the walk ends after it either way.
		atSince := s.sinceSHA != "" && commit.SHA == s.sinceSHA
		if atSince {
			s.exhausted = true
		}

		if s.picked[commit.SHA] {
			if atSince {
				return git.CommitInfo{}, io.EOF
			}
			continue
		}
		if s.opts.AllAuthors || s.opts.Identity.Matches(commit.AuthorName, commit.AuthorEmail) {
			return commit, nil
		}
		if atSince {
			return git.CommitInfo{}, io.EOF
		}
	}
}

// Close releases the underlying walk
func (s *Seq) Close() {
	s.iter.Close()
}

// backendWalker adapts a Backend's concrete iterator to the walker seam
type backendWalker struct {
	Backend
}

func (b backendWalker) walk(from, stopAt string) (CommitIter, error) {
	return b.WalkAncestors(from, stopAt)
}
