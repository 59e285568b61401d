// Package testhelpers provides scripted git repositories for tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// GitRepo represents a real git repository scripted by tests
type GitRepo struct {
	Dir string
	t   *testing.T
}

// NewGitRepo initializes a fresh repository with a test identity in a
// temp directory cleaned up with the test.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()
	dir := t.TempDir()

	// Use git -c flags to avoid reading global config and set local configs
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	repo := &GitRepo{Dir: dir, t: t}
	repo.Git("config", "user.name", "Test User")
	repo.Git("config", "user.email", "test@example.com")
	return repo
}

// Git runs a git command in the repository, failing the test on error
func (r *GitRepo) Git(args ...string) string {
	r.t.Helper()
	out, err := r.gitOutput(args...)
	if err != nil {
		r.t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return out
}

// TryGit runs a git command and returns its output and error without failing
func (r *GitRepo) TryGit(args ...string) (string, error) {
	return r.gitOutput(args...)
}

func (r *GitRepo) gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(output)), err
}

// CommitNewFile writes a new file and commits it, returning the commit SHA
func (r *GitRepo) CommitNewFile(name, message string) string {
	r.t.Helper()
	return r.CommitNewFileAs(name, message, "", "")
}

// CommitNewFileAs writes a new file and commits it under a specific author
func (r *GitRepo) CommitNewFileAs(name, message, author, email string) string {
	r.t.Helper()
	path := filepath.Join(r.Dir, name)
	if err := os.WriteFile(path, []byte(name+"\n"), 0o644); err != nil {
		r.t.Fatalf("failed to write %s: %v", name, err)
	}
	r.Git("add", name)

	args := []string{"commit", "-m", message}
	if author != "" {
		args = append(args, "--author", fmt.Sprintf("%s <%s>", author, email))
	}
	r.Git(args...)
	return r.RevParse("HEAD")
}

// CreateAndCheckoutBranch creates a branch at HEAD and checks it out
func (r *GitRepo) CreateAndCheckoutBranch(name string) {
	r.t.Helper()
	r.Git("checkout", "-b", name)
}

// Checkout switches to an existing branch
func (r *GitRepo) Checkout(name string) {
	r.t.Helper()
	r.Git("checkout", name)
}

// RevParse resolves a rev to a full SHA
func (r *GitRepo) RevParse(rev string) string {
	r.t.Helper()
	return r.Git("rev-parse", rev)
}

// Merge merges a branch into the current branch with a real merge commit
func (r *GitRepo) Merge(branch, message string) string {
	r.t.Helper()
	r.Git("merge", "--no-ff", "-m", message, branch)
	return r.RevParse("HEAD")
}

// CherryPickX cherry-picks a commit with -x so the provenance trailer is recorded
func (r *GitRepo) CherryPickX(sha string) string {
	r.t.Helper()
	r.Git("cherry-pick", "-x", sha)
	return r.RevParse("HEAD")
}
