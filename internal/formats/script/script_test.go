package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/FocuswithJustin/Compendium/core/entry"
	apperrors "github.com/FocuswithJustin/Compendium/core/errors"
	"github.com/FocuswithJustin/Compendium/core/markup"
	"github.com/FocuswithJustin/Compendium/internal/formats"
)

func newFormat(t *testing.T, src string) *Format {
	t.Helper()
	f, err := New(formats.Options{Script: src})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(f.Close)
	return f
}

func TestDefaultScript(t *testing.T) {
	f := newFormat(t, "")
	tests := []struct {
		input string
		want  string
	}{
		{"{@b x} {@i y} {@u z} {@s w}", "*x* /y/ _z_ -w-"},
		{"{@spell fireball|phb|Fire Ball}", "/Fire Ball/"},
		{"{@damage 2d6}", "7 (2d6)"},
		{"{@item longsword}", "longsword"},
	}
	for _, tt := range tests {
		got, err := f.RenderMarkup(tt.input)
		if err != nil {
			t.Errorf("RenderMarkup(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RenderMarkup(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCustomHooks(t *testing.T) {
	src := `
tags = {}
function tags.b(args, render) return "<" .. render(args[1]) .. ">" end
function tags.spell(args) return string.upper(args[1]) end
function tags.item(args) return nil end
function tags.dc(args) return 15 end
function tags.note(args) return tostring(dofile) .. " " .. tostring(io) end
`
	f := newFormat(t, src)
	tests := []struct {
		input string
		want  string
	}{
		{"{@bold {@spell fireball}}", "<FIREBALL>"},
		{"{@item longsword|phb|a blade}", "a blade"},
		{"{@dc 12}", "15"},
		{"{@note x}", "nil nil"},
	}
	for _, tt := range tests {
		got, err := f.RenderMarkup(tt.input)
		if err != nil {
			t.Errorf("RenderMarkup(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RenderMarkup(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if !f.vm.Has(markup.Bold) || f.vm.Has(markup.Italic) {
		t.Error("Has() does not match the script's hooks")
	}
}

func TestRenderEntry(t *testing.T) {
	f := newFormat(t, "")
	e, err := entry.Parse([]byte(`{"type":"section","name":"Traps","entries":["A {@b deep} pit."]}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, err := f.RenderEntry(e)
	if err != nil {
		t.Fatalf("RenderEntry() error = %v", err)
	}
	if want := "Traps\n=====\n\nA *deep* pit."; got != want {
		t.Errorf("RenderEntry() = %q, want %q", got, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		is   error
	}{
		{"syntax", "tags = {", apperrors.ErrInvalidInput},
		{"unknown tag", "tags = { nosuch = function() return '' end }", apperrors.ErrInvalidInput},
		{"not a function", "tags = { bold = 'x' }", apperrors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(formats.Options{Script: tt.src})
			if !errors.Is(err, tt.is) {
				t.Errorf("New() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestHookRuntimeError(t *testing.T) {
	f := newFormat(t, `tags = { bold = function() error("boom") end }`)
	_, err := f.RenderMarkup("{@b x}")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("RenderMarkup() error = %v, want boom", err)
	}
}

func TestNoTagsTable(t *testing.T) {
	f := newFormat(t, "x = 1")
	got, err := f.RenderMarkup("{@b x}")
	if err != nil || got != "x" {
		t.Errorf("RenderMarkup() = %q, %v", got, err)
	}
}

func TestNestedRenderErrorKeepsType(t *testing.T) {
	f := newFormat(t, `
tags = {}
function tags.bold(args, render) return "*" .. render(args[1]) .. "*" end
`)
	_, err := f.RenderMarkup("{@b {@yeet}}")
	var tagErr *markup.TagError
	if !errors.As(err, &tagErr) {
		t.Fatalf("RenderMarkup() error = %v (%T), want *markup.TagError", err, err)
	}
	if tagErr.Name != "yeet" {
		t.Errorf("TagError.Name = %q, want %q", tagErr.Name, "yeet")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("RenderMarkup() error = %v, want ErrNotFound", err)
	}
}
