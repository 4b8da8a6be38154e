package markup

import (
	"fmt"

	"github.com/FocuswithJustin/Compendium/core/errors"
)

// LexErrorKind classifies lexing failures.
type LexErrorKind int

const (
	// NoTagName means "{@" was not followed by a name.
	NoTagName LexErrorKind = iota
	// UnclosedTag means the input ended inside a tag.
	UnclosedTag
	// UnexpectedToken means a character matched no token rule.
	UnexpectedToken
)

// LexError reports malformed markup. Offset is a byte offset into the input.
type LexError struct {
	Kind   LexErrorKind
	Offset int
	Token  string // only set for UnexpectedToken
}

func (e *LexError) Error() string {
	switch e.Kind {
	case NoTagName:
		return fmt.Sprintf("tag beginning at index %d does not have a name", e.Offset)
	case UnclosedTag:
		return fmt.Sprintf("tag beginning at index %d is never closed", e.Offset)
	default:
		return fmt.Sprintf("unexpected token `%s` at index `%d`", e.Token, e.Offset)
	}
}

func (e *LexError) Unwrap() error {
	return errors.ErrInvalidInput
}

// TagError reports a tag name missing from the alias table.
type TagError struct {
	Name string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("unrecognized tag name `%s`", e.Name)
}

func (e *TagError) Unwrap() error {
	return errors.ErrNotFound
}

// ArgRange is an inclusive bound on the number of tag arguments.
// A negative Max means there is no upper bound.
type ArgRange struct {
	Min int
	Max int
}

// Exactly accepts n arguments.
func Exactly(n int) ArgRange { return ArgRange{Min: n, Max: n} }

// AtLeast accepts n or more arguments.
func AtLeast(n int) ArgRange { return ArgRange{Min: n, Max: -1} }

// Between accepts min through max arguments.
func Between(min, max int) ArgRange { return ArgRange{Min: min, Max: max} }

// Any accepts any number of arguments.
func Any() ArgRange { return AtLeast(0) }

// Contains reports whether n lies within the range.
func (r ArgRange) Contains(n int) bool {
	return n >= r.Min && (r.Max < 0 || n <= r.Max)
}

func (r ArgRange) String() string {
	if r.Max < 0 {
		return fmt.Sprintf("%d or more", r.Min)
	}
	return fmt.Sprintf("between %d and %d", r.Min, r.Max)
}

// ArgCountError reports a tag called with the wrong number of arguments.
type ArgCountError struct {
	Expected ArgRange
	Actual   int
}

func (e *ArgCountError) Error() string {
	return fmt.Sprintf("wrong number of arguments (expected %s, found %d)", e.Expected, e.Actual)
}

func (e *ArgCountError) Unwrap() error {
	return errors.ErrInvalidInput
}

// CheckArgCount returns an *ArgCountError when args does not fit r.
func CheckArgCount(r ArgRange, args []string) error {
	if !r.Contains(len(args)) {
		return &ArgCountError{Expected: r, Actual: len(args)}
	}
	return nil
}

// ArgFormatError reports an argument whose content could not be interpreted.
type ArgFormatError struct {
	Message string
}

func (e *ArgFormatError) Error() string {
	return "invalid argument format: " + e.Message
}

func (e *ArgFormatError) Unwrap() error {
	return errors.ErrInvalidInput
}

// RenderError carries a failure raised by a caller-supplied hook.
type RenderError struct {
	Message string
}

func (e *RenderError) Error() string {
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return errors.ErrInternal
}
