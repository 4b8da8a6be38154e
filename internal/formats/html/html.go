// Package html renders entries and markup as XHTML fragments.
//
// Source text is escaped before markup rendering, so tag hooks receive
// arguments that are already safe as element content. Output is well formed
// XML: void elements are self closed and only the five XML entities appear.
package html

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

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
		ID:          "html",
		Version:     "1.0.0",
		MediaType:   "text/html; charset=utf-8",
		Extension:   ".html",
		Description: "XHTML fragment with heading anchors",
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

// New returns an HTML format.
func New(opts formats.Options) base.Format {
	return base.NewWith(Style{}, Tags{}, opts.MaxDepth, func(b base.Entries) entry.EntryRenderer {
		return Entries{Entries: b}
	})
}

// quotes escapes the quote characters left by EscapeHTML, for attribute
// values built from already escaped text.
var quotes = strings.NewReplacer(`"`, "&quot;", "'", "&#39;")

func element(name, body string) string {
	if body == "" {
		return ""
	}
	return "<" + name + ">" + body + "</" + name + ">"
}

func span(class, body string) string {
	return `<span class="` + class + `">` + body + "</span>"
}

// Tags render formatting tags as inline elements.
type Tags struct {
	text.Tags
}

func inline(name string, s string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return element(name, s), nil
}

func (t Tags) RenderBold(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderBold(r, args)
	return inline("b", s, err)
}

func (t Tags) RenderItalic(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderItalic(r, args)
	return inline("i", s, err)
}

func (t Tags) RenderStrikethrough(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderStrikethrough(r, args)
	return inline("s", s, err)
}

func (t Tags) RenderUnderline(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderUnderline(r, args)
	return inline("u", s, err)
}

func (t Tags) RenderHighlight(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderHighlight(r, args)
	return inline("mark", s, err)
}

func (t Tags) RenderNote(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderNote(r, args)
	if err != nil {
		return "", err
	}
	return span("note", s), nil
}

// RenderColor renders {@color text|hex}.
func (t Tags) RenderColor(r markup.Renderer, args []string) (string, error) {
	if err := markup.CheckArgCount(markup.Exactly(2), args); err != nil {
		return "", err
	}
	s, err := r.Render(args[0])
	if err != nil {
		return "", err
	}
	color := strings.TrimPrefix(args[1], "#")
	return `<span style="color: #` + quotes.Replace(color) + `">` + s + "</span>", nil
}

func (t Tags) RenderAttack(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderAttack(r, args)
	return inline("i", s+":", err)
}

func (Tags) RenderH(markup.Renderer, []string) (string, error) {
	return "<i>Hit:</i> ", nil
}

// RenderLink renders {@link text|url}. A lone argument is both.
func (t Tags) RenderLink(r markup.Renderer, args []string) (string, error) {
	if err := markup.CheckArgCount(markup.Between(1, 2), args); err != nil {
		return "", err
	}
	href := args[len(args)-1]
	label, err := r.Render(args[0])
	if err != nil {
		return "", err
	}
	if !safeHref(href) {
		return label, nil
	}
	return `<a href="` + quotes.Replace(href) + `">` + label + "</a>", nil
}

// safeHref reports whether href is relative or uses a scheme a reader can
// follow without running script. Browsers ignore whitespace and control
// characters inside a scheme, so they are dropped before the check.
func safeHref(href string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, href)
	i := strings.IndexAny(cleaned, ":/?#")
	if i < 0 || cleaned[i] != ':' {
		return true
	}
	switch strings.ToLower(cleaned[:i]) {
	case "http", "https", "mailto":
		return true
	}
	return false
}

func (t Tags) RenderDice(r markup.Renderer, args []string) (string, error) {
	s, err := t.Defaults.RenderDice(r, args)
	if err != nil {
		return "", err
	}
	return span("roller", s), nil
}

func (t Tags) RenderDamage(r markup.Renderer, args []string) (string, error) {
	s, err := t.Tags.RenderDamage(r, args)
	if err != nil {
		return "", err
	}
	return span("roller", s), nil
}

// headingSpace namespaces generated heading ids.
var headingSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:compendium:heading"))

// HeadingID returns the anchor for a heading: m.ID when set, otherwise the
// slug of the name followed by a short hash of source and name, so equal
// names from different sources get distinct anchors.
func HeadingID(title string, m entry.Meta) string {
	if m.ID != "" {
		return m.ID
	}
	name := m.Name
	if name == "" {
		name = title
	}
	plain, err := markup.Strip(name)
	if err != nil {
		plain = name
	}
	hash := uuid.NewSHA1(headingSpace, []byte(m.Source+"/"+plain)).String()[:8]
	slug := encoding.Slug(plain)
	if slug == "" {
		return "h-" + hash
	}
	return slug + "-" + hash
}

// dataAttributes renders the "rd-" data of m as data- attributes.
func dataAttributes(m entry.Meta) string {
	attrs := m.RDataAttributes()
	var sb strings.Builder
	for _, k := range entry.SortedKeys(attrs) {
		name := encoding.Slug(k)
		if name == "" {
			continue
		}
		fmt.Fprintf(&sb, ` data-%s="%s"`, name, encoding.EscapeHTMLAttr(attrs[k]))
	}
	return sb.String()
}

// Style writes XHTML elements.
type Style struct{}

var _ base.Style = Style{}

func (Style) Escape(s string) string { return encoding.EscapeHTML(s) }

func (Style) Heading(level int, title string, m entry.Meta) string {
	return fmt.Sprintf(`<h%d id="%s"%s>%s</h%d>`,
		level, encoding.EscapeHTMLAttr(HeadingID(title, m)), dataAttributes(m), title, level)
}

func (Style) Paragraph(s string) string { return element("p", s) }

func (Style) Join(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func (Style) List(items []string) string {
	var sb strings.Builder
	sb.WriteString("<ul>\n")
	for _, item := range items {
		if item != "" {
			sb.WriteString("<li>" + item + "</li>\n")
		}
	}
	sb.WriteString("</ul>")
	return sb.String()
}

func classAttr(style string) string {
	if style == "" {
		return ""
	}
	return ` class="` + encoding.EscapeHTMLAttr(style) + `"`
}

func (Style) Table(t base.Table) string {
	cols := t.Columns()
	var sb strings.Builder
	sb.WriteString("<table")
	if t.Striped {
		sb.WriteString(` class="striped"`)
	}
	sb.WriteString(dataAttributes(t.Meta) + ">\n")
	if t.Caption != "" {
		sb.WriteString("<caption>" + t.Caption + "</caption>\n")
	}
	writeRow := func(cells []string, cell string) {
		sb.WriteString("<tr>")
		for j := range cols {
			var style, body string
			if j < len(t.Styles) {
				style = t.Styles[j]
			}
			if j < len(cells) {
				body = cells[j]
			}
			sb.WriteString("<" + cell + classAttr(style) + ">" + body + "</" + cell + ">")
		}
		sb.WriteString("</tr>\n")
	}
	if len(t.Header) > 0 {
		sb.WriteString("<thead>\n")
		writeRow(t.Header, "th")
		sb.WriteString("</thead>\n")
	}
	sb.WriteString("<tbody>\n")
	for _, row := range t.Rows {
		writeRow(row, "td")
	}
	sb.WriteString("</tbody>\n")
	if len(t.Footnotes) > 0 {
		sb.WriteString("<tfoot>\n")
		for _, fn := range t.Footnotes {
			fmt.Fprintf(&sb, `<tr><td colspan="%d">%s</td></tr>`+"\n", max(cols, 1), fn)
		}
		sb.WriteString("</tfoot>\n")
	}
	sb.WriteString("</table>")
	return sb.String()
}

func (s Style) Quote(lines []string, by string) string {
	parts := make([]string, 0, len(lines)+1)
	for _, l := range lines {
		parts = append(parts, s.Paragraph(l))
	}
	parts = append(parts, element("footer", by))
	return "<blockquote>\n" + s.Join(parts) + "\n</blockquote>"
}

func (s Style) Aside(kind base.AsideKind, title string, body []string) string {
	parts := append([]string{element("header", title)}, body...)
	return `<aside class="` + string(kind) + `">` + "\n" + s.Join(parts) + "\n</aside>"
}

func (Style) Rule() string { return "<hr/>" }

func (Style) Strong(s string) string { return element("b", s) }

func (Style) Emphasis(s string) string { return element("i", s) }

func (Style) Link(label, href string) string {
	if label == "" {
		label = encoding.EscapeHTML(href)
	}
	if !safeHref(href) {
		return label
	}
	return `<a href="` + encoding.EscapeHTMLAttr(href) + `">` + label + "</a>"
}

func (Style) Image(src, alt, title string) string {
	out := `<img src="` + encoding.EscapeHTMLAttr(src) + `" alt="` + quotes.Replace(alt) + `"`
	if title != "" {
		out += ` title="` + quotes.Replace(title) + `"`
	}
	return out + "/>"
}

// Entries wraps sections in section elements and images in figures.
type Entries struct {
	base.Entries
}

func (b Entries) RenderSection(r entry.Renderer, e *entry.Section) (string, error) {
	body, err := b.Entries.RenderSection(r, e)
	if err != nil {
		return "", err
	}
	return "<section" + dataAttributes(e.Meta) + ">\n" + body + "\n</section>", nil
}

func (b Entries) RenderImage(_ entry.Renderer, e *entry.Image) (string, error) {
	alt := e.AltText
	if alt == "" {
		alt = e.Title
	}
	var sb strings.Builder
	sb.WriteString(`<img src="` + encoding.EscapeHTMLAttr(e.Href.Location()) + `" alt="` + encoding.EscapeHTMLAttr(alt) + `"`)
	if e.Width != nil {
		fmt.Fprintf(&sb, ` width="%d"`, *e.Width)
	}
	if e.Height != nil {
		fmt.Fprintf(&sb, ` height="%d"`, *e.Height)
	}
	sb.WriteString("/>")
	if e.Title == "" {
		return sb.String(), nil
	}
	title, err := b.Text(e.Title)
	if err != nil {
		return "", err
	}
	return "<figure>" + sb.String() + "<figcaption>" + title + "</figcaption></figure>", nil
}
