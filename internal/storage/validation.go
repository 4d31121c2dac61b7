// Package storage persists raw AI provider responses in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/roomcraft/internal/service"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidResponse = errors.New("invalid cached response")
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

func validateResponse(resp *service.CachedResponse) error {
	if resp == nil {
		return fmt.Errorf("%w: response", ErrNilParameter)
	}
	if strings.TrimSpace(resp.Key) == "" {
		return fmt.Errorf("%w: missing key", ErrInvalidResponse)
	}
	if strings.TrimSpace(resp.Provider) == "" {
		return fmt.Errorf("%w: missing provider", ErrInvalidResponse)
	}
	return nil
}
