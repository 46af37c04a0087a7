package core

import "errors"

// ErrNotFound is wrapped by store operations that reference an absent id.
// Update/delete of a missing entity is always an explicit error, never a
// silent no-op.
var ErrNotFound = errors.New("not found")

// ErrValidation is wrapped by store operations that reject caller input
// (negative quantities or amounts, empty names, unknown statuses).
var ErrValidation = errors.New("validation failed")
