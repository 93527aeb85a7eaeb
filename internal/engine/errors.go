package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrSelectionOutOfRange indicates a region extends past the end of the text.
	ErrSelectionOutOfRange = errors.New("selection out of range")

	// ErrUnimplementedMovement indicates a movement the engine cannot perform.
	ErrUnimplementedMovement = errors.New("movement not implemented")
)
