package hashmix

import (
	"errors"
	"fmt"
)

var (
	// ErrUninitialized is returned when a digest is read from an accumulator
	// that was not produced by its constructor (for example a zero value).
	ErrUninitialized = errors.New("uninitialized accumulator")

	// ErrDecimalRange is returned when a decimal has a coefficient wider than
	// 96 bits or a scale above 28.
	ErrDecimalRange = errors.New("decimal out of range")
)

// UninitializedError reports a digest read from an uninitialized accumulator.
//
// It matches ErrUninitialized via errors.Is.
type UninitializedError struct {
	Algorithm string
}

func (e *UninitializedError) Error() string {
	return fmt.Sprintf("%s: cannot read digest: %v", e.Algorithm, ErrUninitialized)
}

func (e *UninitializedError) Unwrap() error { return ErrUninitialized }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
