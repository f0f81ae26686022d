// errors.go classifies command failures into the documented process exit
// codes: 0 success, 1 user error (bad input), 2 I/O/store error, 3 mount
// error.
package cmd

import (
	"errors"

	"github.com/jamesblissett/tagfs/internal/config"
	"github.com/jamesblissett/tagfs/internal/editscript"
	"github.com/jamesblissett/tagfs/internal/query"
	"github.com/jamesblissett/tagfs/internal/store"
	"github.com/jamesblissett/tagfs/internal/validate"
)

// mountFailure marks an error as having occurred during mount setup,
// distinguishing it (exit code 3) from an ordinary store I/O error
// (exit code 2) at the same call site.
type mountFailure struct{ err error }

func (e *mountFailure) Error() string { return e.err.Error() }
func (e *mountFailure) Unwrap() error { return e.err }

func asMountFailure(err error) error {
	if err == nil {
		return nil
	}
	return &mountFailure{err}
}

// exitCode maps a command error to the exit code documented for the CLI.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var mf *mountFailure
	if errors.As(err, &mf) {
		return 3
	}

	switch {
	case errors.Is(err, validate.ErrInvalidPath),
		errors.Is(err, validate.ErrInvalidTag),
		errors.Is(err, query.ErrUnexpectedToken),
		errors.Is(err, query.ErrUnterminatedGroup),
		errors.Is(err, query.ErrInvalidTag),
		errors.Is(err, editscript.ErrMalformedPath),
		errors.Is(err, editscript.ErrOrphanTag),
		errors.Is(err, editscript.ErrDuplicateTagInBlock),
		errors.Is(err, config.ErrUnknownKey),
		errors.Is(err, config.ErrInvalidValue),
		errors.Is(err, store.ErrNotFound):
		return 1
	default:
		return 2
	}
}
