// Package apperr defines sentinel errors shared across packages.
package apperr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate")
	ErrCycle            = errors.New("cycle detected")
	ErrUnknownReference = errors.New("unknown reference")
	ErrInvalid          = errors.New("invalid")
)
