package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"portit.dev/portit/internal/eligibility"
	"portit.dev/portit/internal/git"
	"portit.dev/portit/internal/output"
)

// newUnpickedCmd creates the unpicked command
func newUnpickedCmd() *cobra.Command {
	var (
		since      string
		allAuthors bool
	)

	cmd := &cobra.Command{
		Use:     "unpicked [--since=COMMIT] [--all] SOURCE [TARGET]",
		Short:   "List commits on SOURCE that have not been ported to TARGET (default HEAD)",
		Aliases: []string{"u"},
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := git.Open(".")
			if err != nil {
				return err
			}

			source := args[0]
			target := "HEAD"
			if len(args) == 2 {
				target = args[1]
			}

			var identity eligibility.Identity
			if !allAuthors {
				names, emails, err := repo.IdentityConfig(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to read identity config: %w", err)
				}
				identity = eligibility.Identity{Names: names, Emails: emails}
			}

			seq, err := eligibility.FindUnpicked(repo, eligibility.Options{
				Source:     source,
				Target:     target,
				Since:      since,
				AllAuthors: allAuthors,
				Identity:   identity,
			})
			if err != nil {
				return err
			}
			defer seq.Close()

			colorize := output.IsInteractive()
			splog := output.NewSplog()
			for {
				commit, err := seq.Next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				splog.Info("%s", formatUnpickedLine(commit, allAuthors, colorize))
			}
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Stop the walk at this commit (inclusive)")
	cmd.Flags().BoolVar(&allAuthors, "all", false, "List commits from all authors, not just your configured identity")

	return cmd
}

func formatUnpickedLine(commit git.CommitInfo, withAuthor, colorize bool) string {
	sha := commit.SHA
	if colorize {
		sha = output.ColorSHA(sha)
	}
	line := fmt.Sprintf("%s %s", sha, commit.Subject())
	if withAuthor {
		author := fmt.Sprintf("| %s %s", commit.AuthorName, commit.AuthorEmail)
		if colorize {
			author = output.ColorDim(author)
		}
		line += " " + author
	}
	return line
}
