// Package text renders entries and markup as plain text.
package text

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/FocuswithJustin/Compendium/core/dice"
	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/markup"
	"github.com/FocuswithJustin/Compendium/internal/formats"
	"github.com/FocuswithJustin/Compendium/internal/formats/base"
)

// Manifest returns the format manifest for registration.
func Manifest() *formats.Manifest {
	return &formats.Manifest{
		ID:          "text",
		Version:     "1.0.0",
		MediaType:   "text/plain; charset=utf-8",
		Extension:   ".txt",
		Description: "Plain text with aligned tables",
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

// New returns a plain text format.
func New(opts formats.Options) base.Format {
	return base.New(Style{}, Tags{}, opts.MaxDepth)
}

// Tags are the default tag semantics, with damage rolls shown with their
// average as in stat blocks: "7 (2d6)".
type Tags struct {
	markup.Defaults
}

func (t Tags) RenderDamage(r markup.Renderer, args []string) (string, error) {
	if len(args) == 1 {
		if s, ok := WithAverage(args[0]); ok {
			return s, nil
		}
	}
	return t.Defaults.RenderDamage(r, args)
}

// WithAverage formats a dice expression as "average (expression)". It
// reports false when s is not a dice expression.
func WithAverage(s string) (string, bool) {
	expr, err := dice.Parse(s)
	if err != nil || !expr.HasDice() {
		return "", false
	}
	return fmt.Sprintf("%d (%s)", expr.Average(), strings.TrimSpace(s)), true
}

// Style writes plain text. Headings of the first two levels are underlined.
type Style struct{}

var _ base.Style = Style{}

func (Style) Escape(s string) string { return s }

func (Style) Heading(level int, title string, _ entry.Meta) string {
	switch level {
	case 1:
		return title + "\n" + strings.Repeat("=", uniseg.StringWidth(title))
	case 2:
		return title + "\n" + strings.Repeat("-", uniseg.StringWidth(title))
	}
	return title
}

func (Style) Paragraph(s string) string { return s }

func (Style) Join(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

func (Style) List(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		lines = append(lines, "- "+Indent(item, "  ", false))
	}
	return strings.Join(lines, "\n")
}

func (Style) Table(t base.Table) string {
	cols := t.Columns()
	widths := make([]int, cols)
	rows := t.Rows
	if len(t.Header) > 0 {
		rows = append([][]string{t.Header}, rows...)
	}
	flat := make([][]string, len(rows))
	for i, row := range rows {
		flat[i] = make([]string, len(row))
		for j, cell := range row {
			flat[i][j] = strings.Join(strings.Fields(cell), " ")
			widths[j] = max(widths[j], uniseg.StringWidth(flat[i][j]))
		}
	}

	var lines []string
	if t.Caption != "" {
		lines = append(lines, t.Caption)
	}
	for i, row := range flat {
		lines = append(lines, tableLine(row, widths, t.Styles))
		if i == 0 && len(t.Header) > 0 {
			rule := make([]string, cols)
			for j, w := range widths {
				rule[j] = strings.Repeat("-", w)
			}
			lines = append(lines, strings.Join(rule, "  "))
		}
	}
	lines = append(lines, t.Footnotes...)
	return strings.Join(lines, "\n")
}

func tableLine(row []string, widths []int, styles []string) string {
	cells := make([]string, len(widths))
	for j := range widths {
		var cell string
		if j < len(row) {
			cell = row[j]
		}
		var style string
		if j < len(styles) {
			style = styles[j]
		}
		cells[j] = Pad(cell, widths[j], style)
	}
	return strings.TrimRight(strings.Join(cells, "  "), " ")
}

// Pad pads s to width display columns. A style containing "text-right" or
// "text-center" aligns accordingly.
func Pad(s string, width int, style string) string {
	gap := width - uniseg.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch {
	case strings.Contains(style, "text-right"):
		return strings.Repeat(" ", gap) + s
	case strings.Contains(style, "text-center"):
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	}
	return s + strings.Repeat(" ", gap)
}

func (Style) Quote(lines []string, by string) string {
	out := Indent(strings.Join(lines, "\n"), "  ", true)
	if by != "" {
		out += "\n  - " + by
	}
	return out
}

func (s Style) Aside(_ base.AsideKind, title string, body []string) string {
	return Prefix(s.Join(append([]string{title}, body...)), "| ")
}

func (Style) Rule() string { return "* * *" }

func (Style) Strong(s string) string { return s }

func (Style) Emphasis(s string) string { return s }

func (Style) Link(text, href string) string {
	if text == "" || text == href {
		return href
	}
	return text + " <" + href + ">"
}

func (Style) Image(src, alt, title string) string {
	label := alt
	if label == "" {
		label = title
	}
	if label == "" {
		label = src
	}
	return "[Image: " + label + "]"
}

// Indent indents every line of s after the first, or every line when first
// is set. Blank lines stay blank.
func Indent(s, indent string, first bool) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" || (i == 0 && !first) {
			continue
		}
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}

// Prefix puts prefix before every line of s. Blank lines get the prefix
// without trailing space.
func Prefix(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = strings.TrimRight(prefix, " ")
			continue
		}
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
