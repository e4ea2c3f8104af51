package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Load errors
	ErrMalformedInput    = errors.New("malformed tabular input")
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// Column errors
	ErrInvalidColumn          = errors.New("column not present in table")
	ErrMissingRequiredColumns = errors.New("required columns missing")

	// Profile errors
	ErrProfileFailed = errors.New("profile computation failed")
	ErrEmptyTable    = errors.New("table has no rows")
)

// NewInvalidColumnError reports a reference to a column the table does not have
func NewInvalidColumnError(column string) error {
	return fmt.Errorf("%w: %q", ErrInvalidColumn, column)
}

// NewMissingColumnsError names the full expected column set so the caller can
// render one descriptive message
func NewMissingColumnsError(profile string, missing, expected []string) error {
	return fmt.Errorf("%w: %s profile needs %v (missing %v)", ErrMissingRequiredColumns, profile, expected, missing)
}

// Error checking helpers
func IsLoadError(err error) bool {
	return errors.Is(err, ErrMalformedInput) || errors.Is(err, ErrUnsupportedFormat)
}

func IsColumnError(err error) bool {
	return errors.Is(err, ErrInvalidColumn) || errors.Is(err, ErrMissingRequiredColumns)
}
