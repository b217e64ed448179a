package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidValue = errors.New("invalid numeric value")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSliceLen ensures a slice parameter has at least one element.
func validateSliceLen(n int, paramName string) error {
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrEmptySlice, paramName)
	}
	return nil
}
