package usecase

import "time"

// IDGenerator produces opaque identifiers (session keys).
type IDGenerator interface {
	NewID() string
}

// Clock is injected so lead-time checks are testable.
type Clock interface {
	Now() time.Time
}
