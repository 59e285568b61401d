package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"portit.dev/portit/internal/output"
	"portit.dev/portit/internal/replay"
)

// surveyPrompter drives the merge-disambiguation menu with survey.
// It blocks on operator input; there is deliberately no timeout.
type surveyPrompter struct {
	splog    *output.Splog
	prompted bool
}

func newSurveyPrompter(splog *output.Splog) *surveyPrompter {
	return &surveyPrompter{splog: splog}
}

var menuActions = []struct {
	label  string
	action replay.Action
}{
	{"Show the commit graph between the common ancestor and the merge", replay.ActionShowGraph},
	{"List commits only on branch 1", replay.ActionShowLogFirst},
	{"List commits only on branch 2", replay.ActionShowLogSecond},
	{"Show branch 1's diff", replay.ActionShowDiffFirst},
	{"Show branch 2's diff", replay.ActionShowDiffSecond},
	{"Replay branch 1", replay.ActionChooseFirst},
	{"Replay branch 2", replay.ActionChooseSecond},
	{"Help", replay.ActionHelp},
	{"Abort", replay.ActionAbort},
}

func (p *surveyPrompter) NextAction(prompt replay.Prompt) (replay.Action, error) {
	if !p.prompted {
		p.splog.Info("%s is a merge commit and neither parent is an obvious mainline.", prompt.Commit.ShortSHA())
		p.splog.Info("  %s: %s", output.ColorBranch("branch 1"), output.ColorSHA(prompt.Parents[0]))
		p.splog.Info("  %s: %s", output.ColorBranch("branch 2"), output.ColorSHA(prompt.Parents[1]))
		p.prompted = true
	}

	options := make([]string, len(menuActions))
	for i, item := range menuActions {
		options[i] = item.label
	}

	var choice string
	question := &survey.Select{
		Message:  fmt.Sprintf("How should %s be replayed?", prompt.Commit.ShortSHA()),
		Options:  options,
		PageSize: len(options),
	}
	if err := survey.AskOne(question, &choice); err != nil {
		return replay.ActionAbort, err
	}

	for _, item := range menuActions {
		if item.label == choice {
			return item.action, nil
		}
	}
	return replay.ActionAbort, fmt.Errorf("unexpected choice %q", choice)
}
