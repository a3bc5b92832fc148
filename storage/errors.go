package storage

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when an insert succeeded but the backend sent back no rows
var ErrEmptyResult = errors.New("storage: insert returned no rows")

// ParseError reports stored content under Key that could not be deserialized
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("storage: parse %q: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
