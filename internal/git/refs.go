package git

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	porterrors "portit.dev/portit/internal/errors"
)

// CommitInfo is a read-only view of a single commit
type CommitInfo struct {
	SHA         string
	AuthorName  string
	AuthorEmail string
	Parents     []string
	Message     string
}

// ShortSHA returns the abbreviated commit identifier
func (c CommitInfo) ShortSHA() string {
	if len(c.SHA) < 8 {
		return c.SHA
	}
	return c.SHA[:8]
}

// Subject returns the first line of the commit message
func (c CommitInfo) Subject() string {
	message := strings.TrimSpace(c.Message)
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return strings.TrimSpace(message[:idx])
	}
	return message
}

// ResolveCommit resolves a ref (branch name, tag, SHA, or revision expression)
// to the commit it points at
func (r *Repo) ResolveCommit(ref string) (CommitInfo, error) {
	hash, err := r.resolveRefHash(ref)
	if err != nil {
		return CommitInfo{}, porterrors.NewRefError(ref)
	}

	commit, err := r.gg.CommitObject(hash)
	if err != nil {
		return CommitInfo{}, porterrors.NewRefError(ref)
	}

	return commitInfoFromObject(commit), nil
}

// resolveRefHash resolves a ref (branch name, SHA, or ref path) to a hash
func (r *Repo) resolveRefHash(ref string) (plumbing.Hash, error) {
	// 1. Try as a full reference name
	if ref1, err := r.gg.Reference(plumbing.ReferenceName(ref), true); err == nil {
		return ref1.Hash(), nil
	}

	// 2. Try as a local branch
	if ref1, err := r.gg.Reference(plumbing.ReferenceName("refs/heads/"+ref), true); err == nil {
		return ref1.Hash(), nil
	}

	// 3. Try as a remote branch
	if ref1, err := r.gg.Reference(plumbing.ReferenceName("refs/remotes/origin/"+ref), true); err == nil {
		return ref1.Hash(), nil
	}

	// 4. Try as a tag
	if ref1, err := r.gg.Reference(plumbing.ReferenceName("refs/tags/"+ref), true); err == nil {
		return ref1.Hash(), nil
	}

	// 5. Try ResolveRevision (handles SHAs, short SHAs, and expressions like HEAD~1)
	hash, err := r.gg.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		return *hash, nil
	}

	return plumbing.ZeroHash, err
}

func commitInfoFromObject(commit *object.Commit) CommitInfo {
	parents := make([]string, 0, len(commit.ParentHashes))
	for _, parent := range commit.ParentHashes {
		parents = append(parents, parent.String())
	}
	return CommitInfo{
		SHA:         commit.Hash.String(),
		AuthorName:  commit.Author.Name,
		AuthorEmail: commit.Author.Email,
		Parents:     parents,
		Message:     commit.Message,
	}
}
