// Package markdown renders entries and markup as GitHub flavoured Markdown.
package markdown

import (
	"strings"

	"github.com/FocuswithJustin/Compendium/core/encoding"
	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/markup"
	"github.com/FocuswithJustin/Compendium/internal/formats"
	"github.com/FocuswithJustin/Compendium/internal/formats/base"
	"github.com/FocuswithJustin/Compendium/internal/formats/text"
)

// Manifest returns the format manifest for registration.
func Manifest() *formats.Manifest {
	return &formats.Manifest{
		ID:          "markdown",
		Version:     "1.0.0",
		MediaType:   "text/markdown; charset=utf-8",
		Extension:   ".md",
		Description: "GitHub flavoured Markdown with pipe tables",
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

// New returns a Markdown format.
func New(opts formats.Options) base.Format {
	return base.New(Style{}, Tags{}, opts.MaxDepth)
}

// Tags add Markdown emphasis and links to the plain text tags.
type Tags struct {
	text.Tags
}

func wrap(s string, err error, mark string) (string, error) {
	if err != nil || s == "" {
		return s, err
	}
	return mark + s + mark, nil
}

func (t Tags) RenderBold(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderBold(r, args)
	return wrap(s, err, "**")
}

func (t Tags) RenderItalic(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderItalic(r, args)
	return wrap(s, err, "_")
}

func (t Tags) RenderStrikethrough(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderStrikethrough(r, args)
	return wrap(s, err, "~~")
}

func (t Tags) RenderAttack(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderAttack(r, args)
	if err != nil {
		return "", err
	}
	return wrap(s+":", nil, "_")
}

func (Tags) RenderH(markup.Renderer, []string) (string, error) {
	return "_Hit:_ ", nil
}

// RenderLink renders {@link text|url}. A lone argument is both.
func (t Tags) RenderLink(r markup.Renderer, args []string) (string, error) {
	if err := markup.CheckArgCount(markup.Between(1, 2), args); err != nil {
		return "", err
	}
	if len(args) == 1 {
		return "<" + args[0] + ">", nil
	}
	label, err := r.Render(args[0])
	if err != nil {
		return "", err
	}
	return Style{}.Link(label, args[1]), nil
}

// Style writes Markdown blocks. Source text is not escaped, so Markdown in
// entries passes through.
type Style struct {
	text.Style
}

var _ base.Style = Style{}

func (Style) Heading(level int, title string, _ entry.Meta) string {
	return strings.Repeat("#", level) + " " + title
}

func (Style) Table(t base.Table) string {
	cols := t.Columns()
	if cols == 0 {
		return ""
	}
	var lines []string
	lines = append(lines, row(t.Header, cols))
	align := make([]string, cols)
	for j := range align {
		var style string
		if j < len(t.Styles) {
			style = t.Styles[j]
		}
		switch {
		case strings.Contains(style, "text-center"):
			align[j] = ":---:"
		case strings.Contains(style, "text-right"):
			align[j] = "---:"
		default:
			align[j] = "---"
		}
	}
	lines = append(lines, "| "+strings.Join(align, " | ")+" |")
	for _, r := range t.Rows {
		lines = append(lines, row(r, cols))
	}

	parts := []string{}
	if t.Caption != "" {
		parts = append(parts, Style{}.Strong(t.Caption))
	}
	parts = append(parts, strings.Join(lines, "\n"))
	return Style{}.Join(append(parts, t.Footnotes...))
}

func row(cells []string, cols int) string {
	out := make([]string, cols)
	for j := range out {
		if j < len(cells) {
			out[j] = encoding.EscapeMarkdownCell(cells[j])
		}
	}
	return strings.TrimRight("| "+strings.Join(out, " | "), " ") + " |"
}

func (s Style) Quote(lines []string, by string) string {
	body := s.Join(lines)
	if by != "" {
		body = s.Join([]string{body, "-- " + by})
	}
	return text.Prefix(body, "> ")
}

func (s Style) Aside(_ base.AsideKind, title string, body []string) string {
	return text.Prefix(s.Join(append([]string{s.Strong(title)}, body...)), "> ")
}

func (Style) Rule() string { return "---" }

func (Style) Strong(s string) string {
	if s == "" {
		return ""
	}
	return "**" + s + "**"
}

func (Style) Emphasis(s string) string {
	if s == "" {
		return ""
	}
	return "_" + s + "_"
}

var brackets = strings.NewReplacer("[", `\[`, "]", `\]`)

func (Style) Link(label, href string) string {
	if label == "" {
		return "<" + href + ">"
	}
	return "[" + brackets.Replace(label) + "](" + href + ")"
}

func (Style) Image(src, alt, title string) string {
	out := "![" + encoding.EscapeMarkdown(alt) + "](" + src
	if title != "" {
		out += ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
	}
	return out + ")"
}
