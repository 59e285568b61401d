package git_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	porterrors "portit.dev/portit/internal/errors"
	"portit.dev/portit/internal/git"
	"portit.dev/portit/internal/trailers"
	"portit.dev/portit/testhelpers"
)

func TestResolveCommit(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	sha := fixture.CommitNewFile("a.txt", "first commit")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	commit, err := repo.ResolveCommit("main")
	require.NoError(t, err)
	assert.Equal(t, sha, commit.SHA)
	assert.Equal(t, "Test User", commit.AuthorName)
	assert.Equal(t, "test@example.com", commit.AuthorEmail)
	assert.Equal(t, "first commit", commit.Subject())
	assert.Empty(t, commit.Parents)

	// Short SHAs resolve too
	commit, err = repo.ResolveCommit(sha[:8])
	require.NoError(t, err)
	assert.Equal(t, sha, commit.SHA)
}

func TestResolveCommitInvalidRef(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	fixture.CommitNewFile("a.txt", "first commit")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	_, err = repo.ResolveCommit("does-not-exist")
	assert.ErrorIs(t, err, porterrors.ErrInvalidRef)
}

func TestMergeBase(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	base := fixture.CommitNewFile("a.txt", "base")
	fixture.CreateAndCheckoutBranch("feature")
	fixture.CommitNewFile("b.txt", "feature work")
	fixture.Checkout("main")
	fixture.CommitNewFile("c.txt", "main work")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	got, err := repo.MergeBase("main", "feature")
	require.NoError(t, err)
	assert.Equal(t, base, got)
}

func TestWalkAncestorsStopsAtBound(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	base := fixture.CommitNewFile("a.txt", "base")
	c1 := fixture.CommitNewFile("b.txt", "one")
	c2 := fixture.CommitNewFile("c.txt", "two")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	iter, err := repo.WalkAncestors("main", base)
	require.NoError(t, err)
	defer iter.Close()

	var shas []string
	for {
		commit, err := iter.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		shas = append(shas, commit.SHA)
	}

	// Newest first, base excluded
	assert.Equal(t, []string{c2, c1}, shas)
}

func TestWalkAncestorsExcludesForkBelowBound(t *testing.T) {
	// topic forks from the root commit, below the walk's bound. The merge on
	// src must not drag the shared history back into the walk.
	//
	//	root ── bound ── M     (src)
	//	   \            /
	//	    t1 ──────t2        (topic)
	fixture := testhelpers.NewGitRepo(t)
	root := fixture.CommitNewFile("root.txt", "root")
	fixture.Git("branch", "topic")
	bound := fixture.CommitNewFile("bound.txt", "bound")
	fixture.Git("branch", "src")

	fixture.Checkout("topic")
	t1 := fixture.CommitNewFile("t1.txt", "topic one")
	t2 := fixture.CommitNewFile("t2.txt", "topic two")

	fixture.Checkout("src")
	merge := fixture.Merge("topic", "Merge branch 'topic' into src")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	iter, err := repo.WalkAncestors("src", bound)
	require.NoError(t, err)
	defer iter.Close()

	var shas []string
	for {
		commit, err := iter.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		shas = append(shas, commit.SHA)
	}

	assert.ElementsMatch(t, []string{merge, t2, t1}, shas)
	assert.NotContains(t, shas, root)
	assert.NotContains(t, shas, bound)
}

func TestIdentityConfigIsMultiValued(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	fixture.CommitNewFile("a.txt", "base")
	fixture.Git("config", "--add", "user.name", "Second Self")
	fixture.Git("config", "--add", "user.email", "second@example.com")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	names, emails, err := repo.IdentityConfig(context.Background())
	require.NoError(t, err)
	assert.Contains(t, names, "Test User")
	assert.Contains(t, names, "Second Self")
	assert.Contains(t, emails, "test@example.com")
	assert.Contains(t, emails, "second@example.com")
}

func TestCherryPickRecordsProvenance(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	fixture.CommitNewFile("a.txt", "base")
	fixture.CreateAndCheckoutBranch("feature")
	picked := fixture.CommitNewFile("b.txt", "feature work")
	fixture.Checkout("main")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	result, code, err := repo.CherryPick(context.Background(), picked, true)
	require.NoError(t, err)
	assert.Equal(t, git.ReplayDone, result)
	assert.Equal(t, 0, code)

	message, err := repo.LastCommitMessage(context.Background())
	require.NoError(t, err)
	set := trailers.Parse(message)
	assert.Equal(t, []string{picked}, set[trailers.CherryPickedFrom])
}

func TestAmendLastCommitMessage(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	fixture.CommitNewFile("a.txt", "original subject")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	ctx := context.Background()
	message, err := repo.LastCommitMessage(ctx)
	require.NoError(t, err)

	amended := message + "\n(with child feedfacefeedfacefeedfacefeedfacefeedface)\n"
	require.NoError(t, repo.AmendLastCommitMessage(ctx, amended))

	got, err := repo.LastCommitMessage(ctx)
	require.NoError(t, err)
	assert.Contains(t, got, "original subject")
	assert.Contains(t, got, "(with child feedface")
}

func TestRevListRangeIsOldestFirst(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	base := fixture.CommitNewFile("a.txt", "base")
	c1 := fixture.CommitNewFile("b.txt", "one")
	c2 := fixture.CommitNewFile("c.txt", "two")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	shas, err := repo.RevListRange(context.Background(), base, "main")
	require.NoError(t, err)
	assert.Equal(t, []string{c1, c2}, shas)
}

func TestLogRangeAndDiffRange(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	base := fixture.CommitNewFile("a.txt", "base")
	fixture.CommitNewFile("b.txt", "add b")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	lines, err := repo.LogRange(context.Background(), base, "main")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "add b")

	patch, err := repo.DiffRange(context.Background(), base, "main")
	require.NoError(t, err)
	assert.Contains(t, patch, "b.txt")
}

func TestAppendPendingMergeMessage(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	fixture.CommitNewFile("a.txt", "base")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repo.AppendPendingMergeMessage(ctx, "(with child abcdefabcdefabcdefabcdefabcdefabcdefabcd)\n"))

	data, err := os.ReadFile(filepath.Join(fixture.Dir, ".git", "MERGE_MSG"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "(with child abcdefabcdef")
}
