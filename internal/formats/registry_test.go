package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/FocuswithJustin/Compendium/core/entry"
	apperrors "github.com/FocuswithJustin/Compendium/core/errors"
)

type upper struct{ depth int }

func (u upper) RenderMarkup(text string) (string, error) { return strings.ToUpper(text), nil }

func (u upper) RenderEntry(e entry.Entry) (string, error) {
	s, _ := e.Text()
	return strings.ToUpper(s), nil
}

func register(id string) {
	Register(&Registration{
		Manifest: &Manifest{ID: id, Version: "1.0.0", MediaType: "text/plain"},
		New: func(opts Options) (Format, error) {
			return upper{depth: opts.MaxDepth}, nil
		},
	})
}

func TestRegistry(t *testing.T) {
	Clear()
	defer Clear()

	register("upper")
	register("alpha")

	if !Has("upper") || Has("missing") {
		t.Errorf("Has() disagrees with registrations")
	}
	if got := strings.Join(IDs(), ","); got != "alpha,upper" {
		t.Errorf("IDs() = %q, want %q", got, "alpha,upper")
	}

	f, err := New("upper", Options{MaxDepth: 3})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got, _ := f.RenderMarkup("abc"); got != "ABC" {
		t.Errorf("RenderMarkup() = %q, want %q", got, "ABC")
	}
	if got, _ := f.RenderEntry(entry.String("x")); got != "X" {
		t.Errorf("RenderEntry() = %q, want %q", got, "X")
	}
	if f.(upper).depth != 3 {
		t.Errorf("options not passed to constructor")
	}
}

func TestRegistryNotFound(t *testing.T) {
	Clear()
	_, err := New("nope", Options{})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("New(nope) error = %v, want ErrNotFound", err)
	}
	var nf *apperrors.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "nope" {
		t.Errorf("error = %#v", err)
	}
}

func TestRegisterIgnoresIncomplete(t *testing.T) {
	Clear()
	defer Clear()

	Register(nil)
	Register(&Registration{Manifest: &Manifest{}})
	Register(&Registration{Manifest: &Manifest{ID: "x"}})
	if n := len(List()); n != 0 {
		t.Errorf("len(List()) = %d, want 0", n)
	}
}
