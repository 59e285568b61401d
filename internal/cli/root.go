// Package cli wires the portit subcommands. All command logic lives in the
// eligibility and replay packages; this layer parses flags, opens the
// repository, and maps results to exit codes.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portit",
		Short: "Portit tracks which commits have been ported between long-lived branches and replays the ones that haven't",
		Long: `Portit tracks which commits have been ported between long-lived branches
(release branches, vendor branches) using the provenance trailers that
cherry-picks leave in commit messages, and replays missing commits onto the
current branch, merge commits included.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newUnpickedCmd())
	rootCmd.AddCommand(newReplayCmd())

	return rootCmd
}
