package replay

// State is the resolver's position in the replay state machine
type State int

const (
	// StateClassifying is the initial state, before the parent count is known
	StateClassifying State = iota
	// StateLinear means the commit has a single parent and replays directly
	StateLinear
	// StateMerge means the commit has two parents and a mainline must be chosen
	StateMerge
	// StateAwaitingChoice means the mainline is ambiguous and the operator is deciding
	StateAwaitingChoice
	// StateReplaying means a mainline is chosen and the backend replay is running
	StateReplaying
	// StateApplied is the terminal success state
	StateApplied
	// StateConflict is the terminal state for a replay stopped on conflicts
	StateConflict
	// StateAborted is the terminal state for an operator abort
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateClassifying:
		return "classifying"
	case StateLinear:
		return "linear"
	case StateMerge:
		return "merge"
	case StateAwaitingChoice:
		return "awaiting-choice"
	case StateReplaying:
		return "replaying"
	case StateApplied:
		return "applied"
	case StateConflict:
		return "conflict"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// Action is one operator input in the disambiguation loop
type Action int

const (
	// ActionShowGraph displays the commit graph between the common ancestor and the merge
	ActionShowGraph Action = iota
	// ActionShowLogFirst lists the first parent's private commits
	ActionShowLogFirst
	// ActionShowLogSecond lists the second parent's private commits
	ActionShowLogSecond
	// ActionShowDiffFirst shows the first parent's diff against the common ancestor
	ActionShowDiffFirst
	// ActionShowDiffSecond shows the second parent's diff against the common ancestor
	ActionShowDiffSecond
	// ActionChooseFirst replays the first parent's side of the merge
	ActionChooseFirst
	// ActionChooseSecond replays the second parent's side of the merge
	ActionChooseSecond
	// ActionHelp prints the menu help
	ActionHelp
	// ActionAbort leaves the repository untouched and exits non-zero
	ActionAbort
)

// Decision is the outcome of one step of the disambiguation loop
type Decision struct {
	// Next is the state the resolver moves to
	Next State
	// DiffParent is the 1-based parent whose side will be replayed;
	// only meaningful when Next is StateReplaying
	DiffParent int
	// Inspect is the inspection to perform before prompting again;
	// only meaningful when Next stays StateAwaitingChoice
	Inspect Action
}

// Decide advances the disambiguation loop by one operator action. It is a pure
// function of (state, action): inspections loop back to StateAwaitingChoice, a
// branch choice moves to StateReplaying, and abort moves to StateAborted.
func Decide(state State, action Action) Decision {
	if state != StateAwaitingChoice {
		return Decision{Next: state}
	}
	switch action {
	case ActionChooseFirst:
		return Decision{Next: StateReplaying, DiffParent: 1}
	case ActionChooseSecond:
		return Decision{Next: StateReplaying, DiffParent: 2}
	case ActionAbort:
		return Decision{Next: StateAborted}
	default:
		return Decision{Next: StateAwaitingChoice, Inspect: action}
	}
}
