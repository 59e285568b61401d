package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portit.dev/portit/internal/git"
)

func TestFormatUnpickedLine(t *testing.T) {
	commit := git.CommitInfo{
		SHA:         "0123456789abcdef0123456789abcdef01234567",
		AuthorName:  "Test User",
		AuthorEmail: "test@example.com",
		Message:     "fix the thing\n\nlonger body\n",
	}

	line := formatUnpickedLine(commit, false, false)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567 fix the thing", line)

	line = formatUnpickedLine(commit, true, false)
	assert.Contains(t, line, "fix the thing")
	assert.Contains(t, line, "| Test User test@example.com")
}

func TestRootCommandWiring(t *testing.T) {
	root := NewRootCmd("1.0.0", "abc1234", "2026-01-01")

	names := make([]string, 0)
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "unpicked")
	assert.Contains(t, names, "replay")
}
