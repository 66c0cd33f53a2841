package machine

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("machine: coordinate out of bounds")

	// ErrUnknownKind is returned when parsing or building an unknown cell kind.
	ErrUnknownKind = errors.New("machine: unknown cell kind")

	// ErrUnknownDir is returned when parsing or building an unknown direction.
	ErrUnknownDir = errors.New("machine: unknown direction")

	// ErrCorruptPlan reports a move plan that breaks the one-source,
	// one-destination rule. It indicates a bug in plan resolution and is
	// raised as a panic by Step rather than returned.
	ErrCorruptPlan = errors.New("machine: corrupt move plan")
)
