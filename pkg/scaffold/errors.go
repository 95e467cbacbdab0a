// Package scaffold implements the template-to-project generation pipeline:
// enumerating template sources, rendering template files, emitting license
// text and restructuring the resulting tree.
package scaffold

import (
	"errors"
	"fmt"
)

// ExitCode values are part of the CLI contract; calling scripts assert on
// them, so they must stay stable and distinct per failure cause.
type ExitCode int

const (
	ExitOK               ExitCode = 0
	ExitLocationError    ExitCode = 1
	ExitDirectoryExists  ExitCode = 2
	ExitGitError         ExitCode = 3
	ExitInvalidAction    ExitCode = 4
	ExitPermissionDenied ExitCode = 5
	ExitUserAbort        ExitCode = 6
	ExitOSError          ExitCode = 7
	ExitFolderNotEmpty   ExitCode = 8
)

var (
	// ErrLocationNotSimple is returned when the requested location is not a
	// single path segment relative to the working directory.
	ErrLocationNotSimple = errors.New("location must be a single directory name, relative to the current directory")

	// ErrTargetNotEmpty is returned by validation when the target directory
	// already contains entries.
	ErrTargetNotEmpty = errors.New("the chosen folder is not empty")

	// ErrTargetExists is returned when the target directory appears between
	// validation and creation.
	ErrTargetExists = errors.New("project directory already exists")

	// ErrPermissionDenied is returned when the target (or its parent) cannot
	// be written.
	ErrPermissionDenied = errors.New("permission denied creating project directory")

	// ErrUserAbort signals a deliberate abort before any filesystem mutation.
	ErrUserAbort = errors.New("aborted by user")
)

// SourceUnavailableError reports a custom template source whose root cannot
// be read. The bundled default source never produces it; its absence is a
// packaging defect and panics instead.
type SourceUnavailableError struct {
	Root string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("template source %s is unavailable: %v", e.Root, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// RenderError reports a template that could not be located or parsed. It is
// a defect in the template set, not a user error.
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render template %s: %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// StructureError reports a generated tree that does not match the layout the
// restructuring step requires, e.g. a template set without the placeholder
// application folder.
type StructureError struct {
	Path   string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("generated tree is malformed at %s: %s", e.Path, e.Reason)
}

// GitError wraps any failure from the repository initializer.
type GitError struct {
	Err error
}

func (e *GitError) Error() string { return fmt.Sprintf("git: %v", e.Err) }

func (e *GitError) Unwrap() error { return e.Err }

// ExitCodeFor maps a pipeline error to its process exit code. Unknown errors
// fall through to the generic OS error code, matching the copy-phase
// contract where underlying I/O failures are reported verbatim.
func ExitCodeFor(err error) ExitCode {
	var gitErr *GitError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrLocationNotSimple):
		return ExitLocationError
	case errors.Is(err, ErrTargetNotEmpty):
		return ExitFolderNotEmpty
	case errors.Is(err, ErrTargetExists):
		return ExitDirectoryExists
	case errors.Is(err, ErrPermissionDenied):
		return ExitPermissionDenied
	case errors.Is(err, ErrUserAbort):
		return ExitUserAbort
	case errors.As(err, &gitErr):
		return ExitGitError
	default:
		return ExitOSError
	}
}
