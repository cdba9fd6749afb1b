package models

import (
	"errors"
	"fmt"
)

// Common decode errors
var (
	// ErrMissingKey indicates a key the response was expected to contain is absent
	ErrMissingKey = errors.New("missing key")
	// ErrUnexpectedShape indicates a value is not the JSON type the decoder expected
	ErrUnexpectedShape = errors.New("unexpected JSON shape")
	// ErrUnknownTransaction indicates a transaction type outside add, drop, add/drop and trade
	ErrUnknownTransaction = errors.New("unknown transaction type")
)

// DecodeError reports a response-shape mismatch for a single entity key.
type DecodeError struct {
	Entity string
	Key    string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: key %q: %v", e.Entity, e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func missing(entity, key string) error {
	return &DecodeError{Entity: entity, Key: key, Err: ErrMissingKey}
}

func badShape(entity, key string, err error) error {
	if err == nil {
		err = ErrUnexpectedShape
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Entity: entity, Key: key, Err: err}
}
