package cli

import (
	"os"

	"github.com/spf13/cobra"

	"portit.dev/portit/internal/git"
	"portit.dev/portit/internal/logfile"
	"portit.dev/portit/internal/output"
	"portit.dev/portit/internal/replay"
)

// newReplayCmd creates the replay command
func newReplayCmd() *cobra.Command {
	var (
		noCommit bool
		selected string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:     "replay [-n|--no-commit] [-s|--select=PARENT] [--dry-run] COMMIT",
		Short:   "Replay a commit (merge commits included) onto the current branch",
		Aliases: []string{"r"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := git.Open(".")
			if err != nil {
				return err
			}

			splog := output.NewSplog()
			var prompter replay.Prompter
			if output.IsInteractive() {
				prompter = newSurveyPrompter(splog)
			}

			resolver := replay.NewResolver(repo, prompter, splog, logfile.Logger())
			result, err := resolver.Replay(cmd.Context(), replay.Options{
				Commit:   args[0],
				NoCommit: noCommit,
				Select:   selected,
				DryRun:   dryRun,
			})
			if err != nil {
				// Mirror git's own exit code when the failure came from git
				if result.ExitCode != 0 {
					splog.Warn("%v", err)
					os.Exit(result.ExitCode)
				}
				return err
			}

			switch result.State {
			case replay.StateAborted:
				splog.Info("aborted; no changes were made")
			case replay.StateConflict:
				splog.Tip("resolve the conflicts, then `git add` and `git cherry-pick --continue` to finish the replay")
			case replay.StateApplied:
				if !dryRun {
					splog.Info("replayed %s", args[0])
				}
			}

			// The exit code mirrors the underlying replay status
			if result.ExitCode != 0 {
				os.Exit(result.ExitCode)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&noCommit, "no-commit", "n", false, "Stage the replayed change without committing")
	cmd.Flags().StringVarP(&selected, "select", "s", "", "Parent (id or hex prefix) whose side of a merge to replay")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the operations instead of executing them")

	return cmd
}
