// Package git provides a wrapper around git commands and go-git for repository operations.
//
// History queries (ref resolution, merge bases, ancestry walks) go through go-git;
// history mutations (cherry-pick, amend) shell out to the git binary so that conflict
// state, hooks, and message templates behave exactly as they would for a user.
package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Repo is a handle to a git repository, combining a go-git repository for
// read-only history queries with a CommandRunner for mutating operations.
type Repo struct {
	gg     *gogit.Repository
	runner *CommandRunner
	path   string
}

// Open opens the git repository containing path
func Open(path string) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	gg, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	root := absPath
	if worktree, err := gg.Worktree(); err == nil {
		root = worktree.Filesystem.Root()
	}

	return &Repo{
		gg:     gg,
		runner: NewCommandRunner(root),
		path:   root,
	}, nil
}

// Root returns the root directory of the repository worktree
func (r *Repo) Root() string {
	return r.path
}
