package filesort

import (
	"errors"
	"fmt"
)

// ErrIO matches, via errors.Is, every error caused by reading, writing,
// encoding or decoding data during a sort. A sort that fails with ErrIO has
// left the destination untouched.
var ErrIO = errors.New("filesort: I/O failure")

// SerializationError represents an error that occurred while a codec encoded a record
type SerializationError struct {
	// Cause is the original error returned by the codec
	Cause error
	// Path is the file being written
	Path string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error writing %s: %v", e.Path, e.Cause)
}

func (e *SerializationError) Unwrap() error {
	return e.Cause
}

// Is reports SerializationError as an ErrIO.
func (e *SerializationError) Is(target error) bool {
	return target == ErrIO
}

// NewSerializationError creates a SerializationError
func NewSerializationError(cause error, path string) error {
	return &SerializationError{Cause: cause, Path: path}
}

// DeserializationError represents an error that occurred while a codec decoded a record
type DeserializationError struct {
	// Cause is the original error returned by the codec or the underlying reader
	Cause error
	// Path is the file being read, or a description of the input stream
	Path string
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialization error reading %s: %v", e.Path, e.Cause)
}

func (e *DeserializationError) Unwrap() error {
	return e.Cause
}

// Is reports DeserializationError as an ErrIO.
func (e *DeserializationError) Is(target error) bool {
	return target == ErrIO
}

// NewDeserializationError creates a DeserializationError
func NewDeserializationError(cause error, path string) error {
	return &DeserializationError{Cause: cause, Path: path}
}

// ComparisonError represents a panic raised by the comparison function
type ComparisonError struct {
	// Cause is the value recovered from the panic
	Cause interface{}
	// Context provides additional information about when the comparison failed
	Context string
}

func (e *ComparisonError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("comparison panic in %s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("comparison panic: %v", e.Cause)
}

func (e *ComparisonError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// NewComparisonError creates a ComparisonError
func NewComparisonError(cause interface{}, context string) error {
	return &ComparisonError{Cause: cause, Context: context}
}

// DiskError is a filesystem operation that failed: creating, opening,
// closing, removing or renaming a file.
type DiskError struct {
	Op   string
	Path string
	Err  error
}

func (e *DiskError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("disk error during %s on %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("disk error during %s: %v", e.Op, e.Err)
}

func (e *DiskError) Unwrap() error {
	return e.Err
}

// Is reports DiskError as an ErrIO.
func (e *DiskError) Is(target error) bool {
	return target == ErrIO
}

// NewDiskError creates a DiskError wrapping the underlying I/O error
func NewDiskError(err error, operation, path string) error {
	return &DiskError{Op: operation, Path: path, Err: err}
}

// ConfigError represents an error in configuration parameters
type ConfigError struct {
	// Field is the name of the configuration field that's invalid
	Field string
	// Value is the invalid value provided
	Value interface{}
	// Reason explains why the value is invalid
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field %s (value: %v): %s", e.Field, e.Value, e.Reason)
}
