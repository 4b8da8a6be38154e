// Package errors provides the shared error vocabulary for Compendium.
//
// Each struct error unwraps to one of the sentinels below so callers can
// classify failures with errors.Is without depending on concrete types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a tag, format, or document was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates malformed markup, arguments, or documents
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal indicates a renderer-specific failure
	ErrInternal = errors.New("internal error")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
	// ErrNotImplemented indicates a render hook with no behaviour
	ErrNotImplemented = errors.New("not implemented")
	// ErrLimitExceeded indicates a resource limit such as nesting depth was hit
	ErrLimitExceeded = errors.New("limit exceeded")
)

// NotFoundError represents a named resource that does not exist.
type NotFoundError struct {
	Resource string // Kind of resource (e.g., "format", "tag", "path")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents a field that failed validation.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents a failed read or write of a source document.
type IOError struct {
	Operation string // e.g. "open", "decompress", "read"
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a decoding failure of an entry document.
type ParseError struct {
	Format  string // e.g. "JSON", "YAML", "entry"
	Path    string // File path or JSON pointer, if applicable
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

// Unwrap returns the cause, if any, and ErrInvalidInput.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Err, ErrInvalidInput}
	}
	return []error{ErrInvalidInput}
}

// UnsupportedError represents an unsupported feature or format.
type UnsupportedError struct {
	Feature string
	Reason  string
	Err     error
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// NotImplementedError is returned by a render hook that has no behaviour.
// Name identifies the hook, e.g. "RenderSpell" or "section".
type NotImplementedError struct {
	Name string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("render method %s is not implemented", e.Name)
}

func (e *NotImplementedError) Unwrap() error {
	return ErrNotImplemented
}

// LimitError reports that a renderer exceeded a configured resource limit.
type LimitError struct {
	Resource string // e.g. "markup depth"
	Limit    int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s limit of %d exceeded", e.Resource, e.Limit)
}

func (e *LimitError) Unwrap() error {
	return ErrLimitExceeded
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{Format: format, Path: path, Message: message}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{Feature: feature, Reason: reason}
}

// NewNotImplemented creates a NotImplementedError
func NewNotImplemented(name string) *NotImplementedError {
	return &NotImplementedError{Name: name}
}

// NewLimit creates a LimitError
func NewLimit(resource string, limit int) *LimitError {
	return &LimitError{Resource: resource, Limit: limit}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// New wraps errors.New for convenience
func New(text string) error {
	return errors.New(text)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target any) bool {
	return errors.As(err, target)
}
