package eligibility_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portit.dev/portit/internal/eligibility"
	"portit.dev/portit/internal/git"
	"portit.dev/portit/testhelpers"
)

func drain(t *testing.T, seq *eligibility.Seq) []string {
	t.Helper()
	defer seq.Close()

	var shas []string
	for {
		commit, err := seq.Next()
		if err == io.EOF {
			return shas
		}
		require.NoError(t, err)
		shas = append(shas, commit.SHA)
	}
}

func TestWindowExcludesSharedHistoryBehindMergedBranch(t *testing.T) {
	// topic forks from the root commit, below the merge base of src and rel.
	// Merging it into src must not make the shared ancestors eligible.
	//
	//	root ── base ── M      (src; rel stays at base)
	//	   \           /
	//	    t1 ───────+        (topic)
	fixture := testhelpers.NewGitRepo(t)
	root := fixture.CommitNewFile("root.txt", "root")
	fixture.Git("branch", "topic")
	base := fixture.CommitNewFile("base.txt", "base")
	fixture.Git("branch", "rel")
	fixture.Git("branch", "src")

	fixture.Checkout("topic")
	t1 := fixture.CommitNewFile("t1.txt", "topic work")

	fixture.Checkout("src")
	merge := fixture.Merge("topic", "Merge branch 'topic' into src")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	seq, err := eligibility.FindUnpicked(repo, eligibility.Options{
		Source:     "src",
		Target:     "rel",
		AllAuthors: true,
	})
	require.NoError(t, err)

	shas := drain(t, seq)
	assert.ElementsMatch(t, []string{merge, t1}, shas)
	assert.NotContains(t, shas, root)
	assert.NotContains(t, shas, base)
}

func TestCherryPickedCommitLeavesTheSequence(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	fixture.CommitNewFile("base.txt", "base")
	fixture.Git("branch", "rel")
	fixture.CreateAndCheckoutBranch("src")
	c1 := fixture.CommitNewFile("one.txt", "change one")
	c2 := fixture.CommitNewFile("two.txt", "change two")

	fixture.Checkout("rel")
	fixture.CherryPickX(c1)

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	seq, err := eligibility.FindUnpicked(repo, eligibility.Options{
		Source:     "src",
		Target:     "rel",
		AllAuthors: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{c2}, drain(t, seq))
}

func TestIdentityFilterAgainstRealRepository(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	fixture.CommitNewFile("base.txt", "base")
	fixture.Git("branch", "rel")
	fixture.CreateAndCheckoutBranch("src")
	mine := fixture.CommitNewFile("mine.txt", "my change")
	fixture.CommitNewFileAs("theirs.txt", "their change", "Someone Else", "else@example.com")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	seq, err := eligibility.FindUnpicked(repo, eligibility.Options{
		Source: "src",
		Target: "rel",
		Identity: eligibility.Identity{
			Names:  []string{"Test User"},
			Emails: []string{"test@example.com"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{mine}, drain(t, seq))
}
