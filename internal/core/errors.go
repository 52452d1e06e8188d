package core

import "errors"

var (
	// ErrDuplicateConnection signals a register for an id that is already
	// present. The transport assigns unique ids, so hitting this means a
	// broken precondition, not bad client input.
	ErrDuplicateConnection = errors.New("connection already registered")
	// ErrNotFound signals an operation against an unknown connection id.
	ErrNotFound = errors.New("connection not found")
)
