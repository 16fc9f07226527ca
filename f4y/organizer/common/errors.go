package common

import (
	"errors"
)

// Error taxonomy for the organize pass. Per-item failures wrap ErrMove and
// are logged without aborting the run; the guard sentinels mark deliberate
// no-ops, not failures.
var (
	// ErrMove wraps OS-level move failures (cross-device, permission, ...).
	ErrMove = errors.New("move failed")
	// ErrSelfMove marks a move whose resolved source and destination are the
	// same path.
	ErrSelfMove = errors.New("source and destination are the same")
	// ErrNestedMove marks an attempt to move a directory into its own
	// descendant.
	ErrNestedMove = errors.New("cannot move a folder into its own descendant")
	// ErrSourceUnavailable marks an unlistable source directory, the only
	// per-run fatal filesystem condition.
	ErrSourceUnavailable = errors.New("source directory unavailable")

	ErrPathEmpty   = errors.New("path cannot be empty")
	ErrPathTooLong = errors.New("path too long (max 4096 characters)")
	ErrPathInvalid = errors.New("path contains invalid characters")
)

// IsMoveGuard reports whether an error is one of the deliberate no-op
// guards rather than a real failure.
func IsMoveGuard(err error) bool {
	return errors.Is(err, ErrSelfMove) || errors.Is(err, ErrNestedMove)
}
