// Package errors provides standardized error handling for the uaman
// application. It defines common error types, constants, and helper functions
// for consistent error creation, wrapping, and handling across the
// application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrNotFound         = NewFileError("not found", "", NotFound, nil)
	ErrPermissionDenied = NewFileError("permission denied", "", PermissionDenied, nil)
	ErrInvalidPath      = NewFileError("invalid path", "", InvalidPath, nil)
	ErrUnsupported      = New("operation not supported for this entry type")
	ErrInvalidConfig    = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	NotFound
	PermissionDenied
	InvalidPath
	OperationFailed
	// Selection error kinds
	UnsupportedOperation
	// Config error kinds
	InvalidConfig
	ConfigNotSet
	// Dispatch error kinds
	LaunchFailed
	// History store error kinds
	StorageFailed
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to filesystem operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// UnsupportedError represents an operation applied to an entry kind that
// cannot carry it (renaming or launching a missing-item entry)
type UnsupportedError struct {
	ApplicationError
	operation string
}

// NewUnsupportedError creates a new unsupported-operation error
func NewUnsupportedError(operation string) *UnsupportedError {
	return &UnsupportedError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("%s is not supported for this entry type", operation),
			kind: UnsupportedOperation,
		},
		operation: operation,
	}
}

// Operation returns the rejected operation name
func (e *UnsupportedError) Operation() string {
	return e.operation
}

// LaunchError represents a dispatch that could not start anything at all
type LaunchError struct {
	ApplicationError
	executable string
}

// NewLaunchError creates a new launch error
func NewLaunchError(msg string, executable string, err error) *LaunchError {
	return &LaunchError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: LaunchFailed,
		},
		executable: executable,
	}
}

// Error returns the launch error message
func (e *LaunchError) Error() string {
	if e.executable != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.executable, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.executable)
	}
	return e.ApplicationError.Error()
}

// Executable returns the executable that failed to start
func (e *LaunchError) Executable() string {
	return e.executable
}

// StorageError represents errors from the launch-history store
type StorageError struct {
	ApplicationError
	operation string
}

// NewStorageError creates a new storage error
func NewStorageError(msg string, err error) *StorageError {
	return &StorageError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: StorageFailed,
		},
	}
}

// WithOperation adds operation information to the storage error
func (e *StorageError) WithOperation(operation string) *StorageError {
	e.operation = operation
	return e
}

// Error returns the storage error message
func (e *StorageError) Error() string {
	if e.operation != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: operation=%s: %v", e.msg, e.operation, e.err)
		}
		return fmt.Sprintf("%s: operation=%s", e.msg, e.operation)
	}
	return e.ApplicationError.Error()
}

// Operation returns the store operation associated with the error
func (e *StorageError) Operation() string {
	return e.operation
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsNotFound checks if the error is a not-found error
func IsNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == NotFound
	}
	return false
}

// IsPermissionDenied checks if the error is a permission-denied error
func IsPermissionDenied(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == PermissionDenied
	}
	return false
}

// IsUnsupported checks if the error rejects an operation for an entry kind
func IsUnsupported(err error) bool {
	var unsupportedErr *UnsupportedError
	return errors.As(err, &unsupportedErr)
}

// IsLaunchFailed checks if the error is a launch failure
func IsLaunchFailed(err error) bool {
	var launchErr *LaunchError
	return errors.As(err, &launchErr)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsStorageError checks if the error is a history store error
func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

type kinder interface {
	Kind() ErrorKind
}

// KindOf extracts the error kind from anywhere in the chain, or Unknown when
// no application error is present.
func KindOf(err error) ErrorKind {
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// UserMessage converts any error into a short string suitable for showing to
// the operator. Application errors map by kind; anything else falls back to
// the raw error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch KindOf(err) {
	case NotFound:
		return fmt.Sprintf("Not found: %v", err)
	case PermissionDenied:
		return fmt.Sprintf("Permission denied: %v", err)
	case UnsupportedOperation:
		return err.Error()
	case LaunchFailed:
		return fmt.Sprintf("Launch failed: %v", err)
	case InvalidConfig, ConfigNotSet:
		return fmt.Sprintf("Configuration problem: %v", err)
	case StorageFailed:
		return fmt.Sprintf("History unavailable: %v", err)
	default:
		return err.Error()
	}
}
