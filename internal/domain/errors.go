package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidPosition    = errors.New("actuator position must be between 0 and 100")
	ErrInvalidFocusLength = errors.New("focus length must be positive")
)

// PersistenceError reports storage that could not be read or held content
// that did not parse. Callers recover by falling back to a default.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
