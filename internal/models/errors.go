package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrInvalidArgs ErrorType = iota
	ErrCommand
	ErrParse
	ErrFileOp
	ErrSigning
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrInvalidArgs:
		return "InvalidArgs"
	case ErrCommand:
		return "Command"
	case ErrParse:
		return "Parse"
	case ErrFileOp:
		return "FileOp"
	case ErrSigning:
		return "Signing"
	default:
		return "Unknown"
	}
}

// InventoryError represents an error during inventory generation
type InventoryError struct {
	Type ErrorType
	// Line is the raw zypper output line that could not be parsed, if any.
	Line string
	Err  error
}

// Error implements the error interface
func (e *InventoryError) Error() string {
	if e.Line != "" {
		return fmt.Sprintf("[%s] %v\n\n%s", e.Type, e.Err, e.Line)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *InventoryError) Unwrap() error {
	return e.Err
}

// IsErrorType reports whether err carries an InventoryError of type t.
func IsErrorType(err error, t ErrorType) bool {
	var ie *InventoryError
	if errors.As(err, &ie) {
		return ie.Type == t
	}
	return false
}
