// Package errors provides sentinel errors and custom error types for the portit application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrInvalidRef indicates that a ref does not resolve to a commit
	ErrInvalidRef = errors.New("invalid ref")

	// ErrNoCommonAncestor indicates that two refs share no history
	ErrNoCommonAncestor = errors.New("no common ancestor")

	// ErrNoIdentityConfigured indicates that neither user.name nor user.email is set
	ErrNoIdentityConfigured = errors.New("no identity configured")

	// ErrUnsupportedParentCount indicates a commit with zero or more than two parents
	ErrUnsupportedParentCount = errors.New("unsupported parent count")

	// ErrSelectionNotAParent indicates that an explicit parent selection matched neither parent
	ErrSelectionNotAParent = errors.New("selection is not a parent")

	// ErrReplayConflict indicates that a replay stopped on conflicts awaiting manual resolution
	ErrReplayConflict = errors.New("replay conflict")

	// ErrAborted indicates that the operator aborted an interactive operation
	ErrAborted = errors.New("aborted")
)

// RefError represents a ref that could not be resolved to a commit
type RefError struct {
	Ref string
}

func (e *RefError) Error() string {
	return fmt.Sprintf("ref %s does not resolve to a commit", e.Ref)
}

// Is returns true if the target error is ErrInvalidRef
func (e *RefError) Is(target error) bool {
	return target == ErrInvalidRef
}

// NewRefError creates a new RefError
func NewRefError(ref string) *RefError {
	return &RefError{Ref: ref}
}

// ParentCountError represents a commit whose parent count cannot be replayed
type ParentCountError struct {
	SHA   string
	Count int
}

func (e *ParentCountError) Error() string {
	if e.Count > 2 {
		return fmt.Sprintf("commit %s is an octopus merge (%d parents); only commits with one or two parents are supported", e.SHA, e.Count)
	}
	return fmt.Sprintf("commit %s has %d parents; only commits with one or two parents are supported", e.SHA, e.Count)
}

// Is returns true if the target error is ErrUnsupportedParentCount
func (e *ParentCountError) Is(target error) bool {
	return target == ErrUnsupportedParentCount
}

// NewParentCountError creates a new ParentCountError
func NewParentCountError(sha string, count int) *ParentCountError {
	return &ParentCountError{SHA: sha, Count: count}
}

// SelectionError represents an explicit parent selection that matched neither parent
type SelectionError struct {
	Selection string
	Parents   []string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("selection %s matches neither parent (%s)", e.Selection, strings.Join(e.Parents, ", "))
}

// Is returns true if the target error is ErrSelectionNotAParent
func (e *SelectionError) Is(target error) bool {
	return target == ErrSelectionNotAParent
}

// NewSelectionError creates a new SelectionError
func NewSelectionError(selection string, parents []string) *SelectionError {
	return &SelectionError{Selection: selection, Parents: parents}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}
