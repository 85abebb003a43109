package quest

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownKind is returned for unrecognized goal kinds, on create and on load.
	ErrUnknownKind = fmt.Errorf("unknown goal kind: %w", ErrInvalidArgument)
)
