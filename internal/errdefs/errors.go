package errdefs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")

	// ErrAlreadyExists is returned by repositories on unique constraint violations.
	ErrAlreadyExists = errors.New("already exists")
)

// Internal wraps err as ErrInternal unless it already carries a known kind.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != nil {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// Kind returns the sentinel kind err wraps, or nil.
func Kind(err error) error {
	for _, kind := range []error{ErrInvalidInput, ErrForbidden, ErrNotFound, ErrConflict, ErrInternal} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
