package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	porterrors "portit.dev/portit/internal/errors"
)

// ReplayResult represents the result of a cherry-pick operation
type ReplayResult int

const (
	// ReplayDone indicates the cherry-pick applied cleanly
	ReplayDone ReplayResult = iota
	// ReplayConflict indicates the cherry-pick stopped on conflicts
	ReplayConflict
)

// CherryPick replays a single-parent commit onto HEAD.
// The -x option makes git record the origin commit in the message.
// If commitDirectly is false the change is only staged (-n).
// Returns the replay result and the git exit code.
func (r *Repo) CherryPick(ctx context.Context, sha string, commitDirectly bool) (ReplayResult, int, error) {
	args := []string{"cherry-pick", "-x"}
	if !commitDirectly {
		args = append(args, "-n")
	}
	args = append(args, sha)
	return r.runCherryPick(ctx, args)
}

// CherryPickMainline replays a merge commit as the diff against its mainline
// parent (1-based index, matching git cherry-pick -m).
func (r *Repo) CherryPickMainline(ctx context.Context, sha string, mainline int, commitDirectly bool) (ReplayResult, int, error) {
	args := []string{"cherry-pick", "-x", "-m", fmt.Sprintf("%d", mainline)}
	if !commitDirectly {
		args = append(args, "-n")
	}
	args = append(args, sha)
	return r.runCherryPick(ctx, args)
}

func (r *Repo) runCherryPick(ctx context.Context, args []string) (ReplayResult, int, error) {
	_, err := r.runner.Run(ctx, args...)
	if err == nil {
		return ReplayDone, 0, nil
	}

	code := 1
	var cmdErr *porterrors.GitCommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		code = cmdErr.ExitCode
	}

	// A conflicted pick leaves the repository mid-replay for the operator;
	// anything else is a hard failure.
	if r.IsCherryPickInProgress(ctx) || r.hasUnmergedFiles(ctx) {
		return ReplayConflict, code, nil
	}
	return ReplayDone, code, err
}

// IsCherryPickInProgress reports whether a cherry-pick is awaiting resolution
func (r *Repo) IsCherryPickInProgress(ctx context.Context) bool {
	_, err := r.runner.Run(ctx, "rev-parse", "--verify", "--quiet", "CHERRY_PICK_HEAD")
	return err == nil
}

func (r *Repo) hasUnmergedFiles(ctx context.Context) bool {
	output, err := r.runner.Run(ctx, "diff", "--name-only", "--diff-filter=U")
	return err == nil && output != ""
}

// LastCommitMessage returns the full message body of the commit at HEAD
func (r *Repo) LastCommitMessage(ctx context.Context) (string, error) {
	return r.runner.RunRaw(ctx, "log", "-1", "--format=%B")
}

// AmendLastCommitMessage rewrites the message of the commit at HEAD in place
func (r *Repo) AmendLastCommitMessage(ctx context.Context, message string) error {
	_, err := r.runner.RunWithInput(ctx, message, "commit", "--amend", "-F", "-")
	return err
}

// AppendPendingMergeMessage appends text to the pending merge message file
// (.git/MERGE_MSG), so the next commit the operator makes carries it.
func (r *Repo) AppendPendingMergeMessage(ctx context.Context, text string) error {
	gitDir, err := r.runner.Run(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return err
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(r.path, gitDir)
	}

	path := filepath.Join(gitDir, "MERGE_MSG")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open merge message file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("failed to append merge message: %w", err)
	}
	return nil
}
