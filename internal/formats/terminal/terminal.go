// Package terminal renders entries and markup for a terminal, with bold
// headings, boxed asides and ruled tables.
package terminal

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/markup"
	"github.com/FocuswithJustin/Compendium/internal/formats"
	"github.com/FocuswithJustin/Compendium/internal/formats/base"
	"github.com/FocuswithJustin/Compendium/internal/formats/text"
)

// Manifest returns the format manifest for registration.
func Manifest() *formats.Manifest {
	return &formats.Manifest{
		ID:          "terminal",
		Version:     "1.0.0",
		MediaType:   "text/plain; charset=utf-8",
		Extension:   ".ans",
		Description: "Styled terminal output; plain when stdout is not a terminal",
	}
}

// Register registers this format with the registry.
func Register() {
	formats.Register(&formats.Registration{
		Manifest: Manifest(),
		New: func(opts formats.Options) (formats.Format, error) {
			return New(opts), nil
		},
	})
}

func init() {
	Register()
}

// New returns a terminal format whose colour support follows stdout.
func New(opts formats.Options) base.Format {
	return NewFor(os.Stdout, opts)
}

// NewFor returns a terminal format styled for w.
func NewFor(w io.Writer, opts formats.Options) base.Format {
	s := NewStyle(lipgloss.NewRenderer(w))
	return base.New(s, Tags{styles: s.styles}, opts.MaxDepth)
}

type styles struct {
	h1, h2, h3  lipgloss.Style
	strong, em  lipgloss.Style
	strike, und lipgloss.Style
	link, faint lipgloss.Style
	aside       lipgloss.Style
	readaloud   lipgloss.Style
	border      lipgloss.Style
	header      lipgloss.Style
	cell        lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *styles {
	accent := lipgloss.AdaptiveColor{Light: "#5A3E9B", Dark: "#C9A9FF"}
	return &styles{
		h1:        r.NewStyle().Bold(true).Underline(true).Foreground(accent),
		h2:        r.NewStyle().Bold(true).Foreground(accent),
		h3:        r.NewStyle().Bold(true),
		strong:    r.NewStyle().Bold(true),
		em:        r.NewStyle().Italic(true),
		strike:    r.NewStyle().Strikethrough(true),
		und:       r.NewStyle().Underline(true),
		link:      r.NewStyle().Underline(true).Foreground(lipgloss.Color("12")),
		faint:     r.NewStyle().Faint(true),
		aside:     r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		readaloud: r.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).PaddingLeft(1),
		border:    r.NewStyle().Foreground(lipgloss.Color("8")),
		header:    r.NewStyle().Bold(true).Padding(0, 1),
		cell:      r.NewStyle().Padding(0, 1),
	}
}

func render(st lipgloss.Style, s string, err error) (string, error) {
	if err != nil || s == "" {
		return s, err
	}
	return st.Render(s), nil
}

// Tags style the formatting tags. Everything else renders as plain text.
type Tags struct {
	text.Tags
	styles *styles
}

func (t Tags) RenderBold(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderBold(r, args)
	return render(t.styles.strong, s, err)
}

func (t Tags) RenderItalic(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderItalic(r, args)
	return render(t.styles.em, s, err)
}

func (t Tags) RenderStrikethrough(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderStrikethrough(r, args)
	return render(t.styles.strike, s, err)
}

func (t Tags) RenderUnderline(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderUnderline(r, args)
	return render(t.styles.und, s, err)
}

func (t Tags) RenderLink(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderLink(r, args)
	return render(t.styles.link, s, err)
}

// Style lays out blocks like the text format and decorates them with
// lipgloss.
type Style struct {
	text.Style
	styles *styles
}

// NewStyle returns a Style rendering through r.
func NewStyle(r *lipgloss.Renderer) Style {
	return Style{styles: newStyles(r)}
}

var _ base.Style = Style{}

func (s Style) Heading(level int, title string, _ entry.Meta) string {
	switch level {
	case 1:
		return s.styles.h1.Render(title)
	case 2:
		return s.styles.h2.Render(title)
	}
	return s.styles.h3.Render(title)
}

func (s Style) Table(t base.Table) string {
	cols := t.Columns()
	if cols == 0 {
		return t.Caption
	}
	pad := func(cells []string) []string {
		out := make([]string, cols)
		copy(out, cells)
		return out
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.styles.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.styles.header
			}
			st := s.styles.cell
			if col < len(t.Styles) {
				switch {
				case strings.Contains(t.Styles[col], "text-center"):
					st = st.Align(lipgloss.Center)
				case strings.Contains(t.Styles[col], "text-right"):
					st = st.Align(lipgloss.Right)
				}
			}
			return st
		})
	if len(t.Header) > 0 {
		tbl = tbl.Headers(pad(t.Header)...)
	}
	for _, row := range t.Rows {
		tbl = tbl.Row(pad(row)...)
	}

	var parts []string
	if t.Caption != "" {
		parts = append(parts, s.styles.strong.Render(t.Caption))
	}
	parts = append(parts, tbl.String())
	for _, fn := range t.Footnotes {
		parts = append(parts, s.styles.faint.Render(fn))
	}
	return strings.Join(parts, "\n")
}

func (s Style) Aside(kind base.AsideKind, title string, body []string) string {
	content := s.Join(append([]string{s.Strong(title)}, body...))
	if kind == base.AsideReadaloud {
		return s.styles.readaloud.Render(content)
	}
	return s.styles.aside.Render(content)
}

func (s Style) Rule() string { return s.styles.faint.Render(strings.Repeat("─", 40)) }

func (s Style) Strong(v string) string {
	if v == "" {
		return ""
	}
	return s.styles.strong.Render(v)
}

func (s Style) Emphasis(v string) string {
	if v == "" {
		return ""
	}
	return s.styles.em.Render(v)
}

func (s Style) Link(label, href string) string {
	return s.styles.link.Render(s.Style.Link(label, href))
}
