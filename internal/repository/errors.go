package repository

import "errors"

// ErrInvalidEntity indicates a nil or unidentified entity was passed to
// Register. Lookup and duplicate failures wrap store.ErrNotFound and
// store.ErrDuplicate instead.
var ErrInvalidEntity = errors.New("invalid entity")
