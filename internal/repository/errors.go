package repository

import "errors"

var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects a write,
// e.g. a second open order for the same owner.
var ErrDuplicate = errors.New("duplicate key")
