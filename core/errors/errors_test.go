package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantBase error
	}{
		{"not found with id", NewNotFound("format", "pdf"), "format not found: pdf", ErrNotFound},
		{"not found without id", &NotFoundError{Resource: "document"}, "document not found", ErrNotFound},
		{"validation with field", NewValidation("max_depth", "must be positive"), "validation failed for max_depth: must be positive", ErrInvalidInput},
		{"validation without field", &ValidationError{Message: "bad"}, "validation failed: bad", ErrInvalidInput},
		{"parse with path", NewParse("JSON", "book.json", "unexpected EOF"), "failed to parse JSON at book.json: unexpected EOF", ErrInvalidInput},
		{"parse without path", NewParse("entry", "", "unknown type"), "failed to parse entry: unknown type", ErrInvalidInput},
		{"unsupported with reason", NewUnsupported("format", "no hooks"), "unsupported format: no hooks", ErrUnsupported},
		{"unsupported bare", &UnsupportedError{Feature: "compression"}, "unsupported compression", ErrUnsupported},
		{"not implemented", NewNotImplemented("RenderSpell"), "render method RenderSpell is not implemented", ErrNotImplemented},
		{"limit", NewLimit("markup depth", 64), "markup depth limit of 64 exceeded", ErrLimitExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantBase) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantBase)
			}
		})
	}
}

func TestUnderlyingErrorWins(t *testing.T) {
	underlying := fmt.Errorf("disk error")
	err := &NotFoundError{Resource: "file", ID: "a.json", Err: underlying}
	if got := err.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}

	ioErr := NewIO("open", "a.json.xz", underlying)
	if got := ioErr.Error(); got != "failed to open a.json.xz: disk error" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(ioErr, underlying) {
		t.Error("IOError should unwrap to its cause")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := NewNotImplemented("section")
	wrapped := Wrapf(Wrap(base, "render entry"), "document %s", "phb")
	if got := wrapped.Error(); got != "document phb: render entry: render method section is not implemented" {
		t.Errorf("Error() = %q", got)
	}

	var target *NotImplementedError
	if !As(wrapped, &target) {
		t.Fatal("As should find NotImplementedError")
	}
	if target.Name != "section" {
		t.Errorf("Name = %q, want %q", target.Name, "section")
	}
	if !Is(wrapped, ErrNotImplemented) {
		t.Error("Is should match ErrNotImplemented")
	}
}

func TestParseErrorWithCause(t *testing.T) {
	cause := NewNotFound("block type", "spellbook")
	err := &ParseError{Format: "entry", Message: `unknown type "spellbook"`, Err: cause}
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseError should match both its cause and ErrInvalidInput")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "spellbook" {
		t.Errorf("errors.As(NotFoundError) = %v", nf)
	}
}
