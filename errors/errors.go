// Package errors provides error handling for archon.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints attached to errors
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := provider.Run(); err != nil {
//	    return errors.Wrap(err, "provider failed to produce data")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "check the matrix file for ragged rows")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Common sentinel errors for use across archon.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrInvalidConfig indicates the analysis configuration is malformed
	ErrInvalidConfig = New("invalid configuration")

	// ErrUnknownPlugin indicates a plugin identifier is not registered
	ErrUnknownPlugin = New("unknown plugin")

	// ErrInvalidArgument indicates a plugin argument failed validation
	ErrInvalidArgument = New("invalid argument")
)

// IsUnknownPluginError checks if an error is or wraps ErrUnknownPlugin
func IsUnknownPluginError(err error) bool {
	return err != nil && Is(err, ErrUnknownPlugin)
}

// IsInvalidArgumentError checks if an error is or wraps ErrInvalidArgument
func IsInvalidArgumentError(err error) bool {
	return err != nil && Is(err, ErrInvalidArgument)
}

// NewUnknownPluginError creates an unknown-plugin error naming the identifier
func NewUnknownPluginError(kind, identifier string) error {
	return Wrapf(ErrUnknownPlugin, "no %s registered with identifier %q", kind, identifier)
}

// NewInvalidArgumentError creates an invalid-argument error with a formatted message
func NewInvalidArgumentError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidArgument, Newf(format, args...).Error())
}
