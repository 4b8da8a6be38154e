// Package base provides the entry rendering shared by the output formats.
//
// Entries implements every entry hook in terms of a small Style, so a format
// supplies only its primitives (headings, paragraphs, lists, tables) and its
// markup tag hooks. A format embeds Entries to override individual hooks.
package base

import (
	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/markup"
)

// AsideKind classifies boxed content.
type AsideKind string

const (
	AsideInset     AsideKind = "inset"
	AsideReadaloud AsideKind = "readaloud"
	AsideVariant   AsideKind = "variant"
	AsideHomebrew  AsideKind = "homebrew"
	AsideFlow      AsideKind = "flow"
)

// Table is a table whose cells are already rendered.
type Table struct {
	Meta      entry.Meta
	Caption   string
	Header    []string
	Styles    []string
	Rows      [][]string
	Footnotes []string
	Striped   bool
}

// Columns returns the widest row length, header included.
func (t Table) Columns() int {
	n := len(t.Header)
	for _, row := range t.Rows {
		n = max(n, len(row))
	}
	return n
}

// Style writes the primitives of one output format. Arguments are already
// rendered output, except for Escape, which receives source text.
type Style interface {
	// Escape prepares source text for markup rendering.
	Escape(s string) string
	Heading(level int, title string, m entry.Meta) string
	Paragraph(s string) string
	// Join lays out block-level parts, skipping empty ones.
	Join(parts []string) string
	List(items []string) string
	Table(t Table) string
	Quote(lines []string, by string) string
	Aside(kind AsideKind, title string, body []string) string
	Rule() string
	Strong(s string) string
	Emphasis(s string) string
	Link(text, href string) string
	Image(src, alt, title string) string
}

// Format adapts a Style, a markup renderer and an entry renderer to
// formats.Format.
type Format struct {
	Style   Style
	Markup  markup.Renderer
	Entries entry.Renderer
}

// RenderMarkup renders marked-up text.
func (f Format) RenderMarkup(text string) (string, error) {
	return f.Markup.Render(f.Style.Escape(text))
}

// RenderEntry renders an entry tree.
func (f Format) RenderEntry(e entry.Entry) (string, error) {
	return f.Entries.Render(e)
}

// New builds a Format whose entry hooks are plain Entries.
func New(style Style, tags markup.StringRenderer, maxDepth int) Format {
	m := markup.NewRenderer(tags, markup.WithMaxDepth(maxDepth))
	return Format{
		Style:   style,
		Markup:  m,
		Entries: entry.NewRenderer(Entries{Style: style, Markup: m}, entry.WithMaxDepth(maxDepth)),
	}
}
