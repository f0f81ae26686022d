// Package fshandler translates filesystem operations (lookup, getattr,
// readdir, read, readlink) into store and query-builder calls over the
// entry model, independent of any particular transport.
package fshandler

import (
	"errors"
	"syscall"
)

var (
	// ErrNotExist indicates lookup found no child by that name.
	ErrNotExist = errors.New("no such entry")
	// ErrNotDir indicates an operation valid only on directories was
	// attempted on a non-directory entry.
	ErrNotDir = errors.New("not a directory")
	// ErrNotReadable indicates read/readlink was attempted on a kind
	// that does not support it.
	ErrNotReadable = errors.New("entry does not support this operation")
	// ErrInvalidExpression wraps a query parse failure. Callers with a
	// typed expression up front (SaveQuery, the CLI query command) use it
	// to reject bad input before it ever reaches a directory listing.
	ErrInvalidExpression = errors.New("invalid query expression")
)

// Errno maps a handler error to the POSIX errno a FUSE transport should
// return. Unrecognized errors map to EIO, following the teacher's
// fail-loud-rather-than-silently-succeed instinct for unexpected states.
//
// ErrInvalidExpression maps to ENOENT rather than EINVAL: a malformed
// query segment looked up inside the mount is just a path that doesn't
// resolve to anything, the same as any other missing entry. The typed
// error survives unmapped for callers (SaveQuery, the CLI query command)
// that want to report the parse failure rather than a bare ENOENT.
func Errno(err error) syscall.Errno {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotExist):
		return syscall.ENOENT
	case errors.Is(err, ErrInvalidExpression):
		return syscall.ENOENT
	case errors.Is(err, ErrNotDir):
		return syscall.ENOTDIR
	case errors.Is(err, ErrNotReadable):
		return syscall.EINVAL
	default:
		return syscall.EIO
	}
}
