// Package replay decides how to replay a single commit onto the current
// position. Linear commits apply directly; two-parent merges are flattened
// onto whichever parent represents the mainline, determined automatically,
// by explicit selection, or interactively.
package replay

import (
	"context"
	"log"
	"strings"

	porterrors "portit.dev/portit/internal/errors"
	"portit.dev/portit/internal/git"
	"portit.dev/portit/internal/output"
	"portit.dev/portit/internal/trailers"
)

// Backend is the subset of repository operations the resolver needs.
// Everything before the cherry-pick is read-only; the cherry-pick, amend and
// merge-message writes are the only mutations.
type Backend interface {
	ResolveCommit(ref string) (git.CommitInfo, error)
	MergeBase(rev1, rev2 string) (string, error)
	CherryPick(ctx context.Context, sha string, commitDirectly bool) (git.ReplayResult, int, error)
	CherryPickMainline(ctx context.Context, sha string, mainline int, commitDirectly bool) (git.ReplayResult, int, error)
	RevListRange(ctx context.Context, fromExclusive, toInclusive string) ([]string, error)
	LogRange(ctx context.Context, fromExclusive, toInclusive string) ([]string, error)
	LogGraph(ctx context.Context, fromExclusive, toInclusive string) (string, error)
	DiffRange(ctx context.Context, fromExclusive, toInclusive string) (string, error)
	LastCommitMessage(ctx context.Context) (string, error)
	AmendLastCommitMessage(ctx context.Context, message string) error
	AppendPendingMergeMessage(ctx context.Context, text string) error
}

// Prompt describes an ambiguous merge to the operator
type Prompt struct {
	Commit  git.CommitInfo
	Common  string
	Parents []string
}

// Prompter supplies operator actions for the disambiguation loop.
// Implementations block on input; the loop never times out.
type Prompter interface {
	NextAction(p Prompt) (Action, error)
}

// Options configures a single replay
type Options struct {
	// Commit is the ref of the commit to replay
	Commit string
	// NoCommit stages the change without committing (-n)
	NoCommit bool
	// Select is an explicit parent selection (id or hex prefix) for merges
	Select string
	// DryRun prints the operations instead of executing them
	DryRun bool
}

// Result is the terminal outcome of a replay
type Result struct {
	// State is the terminal state reached
	State State
	// ExitCode mirrors the underlying replay's status code
	ExitCode int
}

// Resolver drives the replay state machine against a backend
type Resolver struct {
	backend  Backend
	prompter Prompter
	splog    *output.Splog
	trace    *log.Logger
}

// NewResolver creates a Resolver. prompter may be nil for non-interactive use,
// in which case ambiguous merges fail instead of prompting. trace may be nil.
func NewResolver(backend Backend, prompter Prompter, splog *output.Splog, trace *log.Logger) *Resolver {
	return &Resolver{backend: backend, prompter: prompter, splog: splog, trace: trace}
}

// Replay performs the full state machine for one commit.
// Fatal conditions (invalid ref, unsupported parent count, bad selection) are
// returned as errors before any mutating backend call. Conflicts and aborts
// are not errors; they are reported through Result. When a cherry-pick fails
// hard, the error is returned together with git's exit code in Result.
func (r *Resolver) Replay(ctx context.Context, opts Options) (Result, error) {
	commit, err := r.backend.ResolveCommit(opts.Commit)
	if err != nil {
		return Result{}, err
	}
	r.tracef("replay %s: %d parents", commit.ShortSHA(), len(commit.Parents))

	switch len(commit.Parents) {
	case 1:
		return r.replayLinear(ctx, commit, opts)
	case 2:
		return r.replayMerge(ctx, commit, opts)
	default:
		return Result{}, porterrors.NewParentCountError(commit.SHA, len(commit.Parents))
	}
}

func (r *Resolver) replayLinear(ctx context.Context, commit git.CommitInfo, opts Options) (Result, error) {
	r.transition(StateLinear)
	if opts.Select != "" {
		r.splog.Warn("--select has no meaning for non-merge commit %s; ignoring", commit.ShortSHA())
	}

	if opts.DryRun {
		r.splog.Info("dry-run: git cherry-pick -x%s %s", noCommitFlag(opts.NoCommit), commit.SHA)
		return Result{State: StateApplied}, nil
	}

	result, code, err := r.backend.CherryPick(ctx, commit.SHA, !opts.NoCommit)
	if err != nil {
		// A hard failure still carries git's exit code for the caller to mirror.
		return Result{ExitCode: code}, err
	}
	if result == git.ReplayConflict {
		r.transition(StateConflict)
		r.splog.Warn("replay of %s stopped on conflicts; resolve and commit manually", commit.ShortSHA())
		return Result{State: StateConflict, ExitCode: code}, nil
	}
	r.transition(StateApplied)
	return Result{State: StateApplied}, nil
}

func (r *Resolver) replayMerge(ctx context.Context, commit git.CommitInfo, opts Options) (Result, error) {
	r.transition(StateMerge)

	common, err := r.backend.MergeBase(commit.Parents[0], commit.Parents[1])
	if err != nil {
		return Result{}, err
	}

	diffParent := 0
	if mainline := ClassifyParents(common, commit.Parents); mainline != 0 {
		// One side fast-forwarded: the mainline is forced, replay the other.
		diffParent = 3 - mainline
		r.tracef("parent %d equals the pair merge base; replaying parent %d", mainline, diffParent)
	} else if opts.Select != "" {
		diffParent = matchParent(opts.Select, commit.Parents)
		if diffParent == 0 {
			return Result{}, porterrors.NewSelectionError(opts.Select, commit.Parents)
		}
	} else {
		chosen, result, done := r.disambiguate(ctx, commit, common)
		if done {
			return result, nil
		}
		diffParent = chosen
	}

	return r.executeMergeReplay(ctx, commit, common, diffParent, opts)
}

// disambiguate runs the interactive loop until the operator picks a side or
// aborts. Returns done=true with a terminal Result on abort.
func (r *Resolver) disambiguate(ctx context.Context, commit git.CommitInfo, common string) (int, Result, bool) {
	if r.prompter == nil {
		r.splog.Warn("merge %s has no obvious mainline and no --select was given", commit.ShortSHA())
		return 0, Result{State: StateAborted, ExitCode: 1}, true
	}

	state := StateAwaitingChoice
	r.transition(state)
	prompt := Prompt{Commit: commit, Common: common, Parents: commit.Parents}

	for state == StateAwaitingChoice {
		action, err := r.prompter.NextAction(prompt)
		if err != nil {
			// Treat a dead prompt (ctrl-c, closed stdin) as an abort.
			return 0, Result{State: StateAborted, ExitCode: 1}, true
		}

		decision := Decide(state, action)
		state = decision.Next
		switch state {
		case StateAwaitingChoice:
			r.inspect(ctx, commit, common, decision.Inspect)
		case StateAborted:
			r.transition(state)
			return 0, Result{State: StateAborted, ExitCode: 1}, true
		case StateReplaying:
			return decision.DiffParent, Result{}, false
		}
	}
	return 0, Result{State: StateAborted, ExitCode: 1}, true
}

func (r *Resolver) inspect(ctx context.Context, commit git.CommitInfo, common string, action Action) {
	show := func(text string, err error) {
		if err != nil {
			r.splog.Warn("%v", err)
			return
		}
		r.splog.Page(text)
		r.splog.Newline()
	}

	switch action {
	case ActionShowGraph:
		show(r.backend.LogGraph(ctx, common, commit.SHA))
	case ActionShowLogFirst:
		show(joinLines(r.backend.LogRange(ctx, common, commit.Parents[0])))
	case ActionShowLogSecond:
		show(joinLines(r.backend.LogRange(ctx, common, commit.Parents[1])))
	case ActionShowDiffFirst:
		show(r.backend.DiffRange(ctx, common, commit.Parents[0]))
	case ActionShowDiffSecond:
		show(r.backend.DiffRange(ctx, common, commit.Parents[1]))
	case ActionHelp:
		r.splog.Page(helpText)
	}
}

func (r *Resolver) executeMergeReplay(ctx context.Context, commit git.CommitInfo, common string, diffParent int, opts Options) (Result, error) {
	r.transition(StateReplaying)

	// git's -m takes the mainline parent: the one we keep as trunk,
	// which is the opposite of the side being replayed.
	mainline := 3 - diffParent
	diffSHA := commit.Parents[diffParent-1]

	// Every commit private to the replayed side becomes a "with child"
	// trailer, oldest first, so future eligibility runs see them as ported.
	children, err := r.backend.RevListRange(ctx, common, diffSHA)
	if err != nil {
		return Result{}, err
	}
	lines := make([]string, 0, len(children))
	for _, child := range children {
		lines = append(lines, trailers.WithChildLine(child))
	}
	trailerBlock := strings.Join(lines, "\n")

	if opts.DryRun {
		r.splog.Info("dry-run: git cherry-pick -x -m %d%s %s", mainline, noCommitFlag(opts.NoCommit), commit.SHA)
		if len(lines) > 0 {
			r.splog.Info("dry-run: append to the commit message:")
			r.splog.Page(trailerBlock + "\n")
		}
		return Result{State: StateApplied}, nil
	}

	result, code, err := r.backend.CherryPickMainline(ctx, commit.SHA, mainline, !opts.NoCommit)
	if err != nil {
		return Result{ExitCode: code}, err
	}

	if result == git.ReplayConflict {
		r.transition(StateConflict)
		if trailerBlock != "" {
			if err := r.backend.AppendPendingMergeMessage(ctx, "\n"+trailerBlock+"\n"); err != nil {
				return Result{}, err
			}
		}
		r.splog.Warn("replay of %s stopped on conflicts; provenance trailers were added to the pending merge message", commit.ShortSHA())
		return Result{State: StateConflict, ExitCode: code}, nil
	}

	if opts.NoCommit {
		// Staged only: park the trailers in the pending merge message so the
		// operator's eventual commit carries them.
		if trailerBlock != "" {
			if err := r.backend.AppendPendingMergeMessage(ctx, "\n"+trailerBlock+"\n"); err != nil {
				return Result{}, err
			}
		}
		r.transition(StateApplied)
		return Result{State: StateApplied}, nil
	}

	if trailerBlock != "" {
		message, err := r.backend.LastCommitMessage(ctx)
		if err != nil {
			return Result{}, err
		}
		amended := strings.TrimRight(message, "\n") + "\n\n" + trailerBlock + "\n"
		if err := r.backend.AmendLastCommitMessage(ctx, amended); err != nil {
			return Result{}, err
		}
	}
	r.transition(StateApplied)
	return Result{State: StateApplied}, nil
}

func (r *Resolver) transition(state State) {
	r.tracef("state -> %s", state)
}

func (r *Resolver) tracef(format string, args ...interface{}) {
	if r.trace != nil {
		r.trace.Printf(format, args...)
	}
}

func noCommitFlag(noCommit bool) string {
	if noCommit {
		return " -n"
	}
	return ""
}

func joinLines(lines []string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n") + "\n", nil
}

const helpText = `This merge commit has two parents and neither is an ancestor of the other,
so there is no obvious mainline to diff against. Inspect both sides, then pick
the branch whose commits you want to replay; the other parent is treated as
the unchanged trunk. Aborting leaves the repository untouched.
`
