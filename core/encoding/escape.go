// Package encoding provides the escaping and slug helpers shared by the
// output formats.
package encoding

import (
	"bytes"
	"encoding/xml"
	"strings"
	"unicode"
)

// EscapeXML escapes special characters for XML content, quotes included.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var htmlText = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var htmlAttr = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")

// EscapeHTML escapes text content: & < >
func EscapeHTML(s string) string {
	return htmlText.Replace(s)
}

// EscapeHTMLAttr escapes a value for a quoted attribute: & < > " '
func EscapeHTMLAttr(s string) string {
	return htmlAttr.Replace(s)
}

var markdownSpecial = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", `\<`, "|", `\|`,
)

// EscapeMarkdown escapes characters that would start inline Markdown
// formatting. A leading "#" or ">" is escaped so the text cannot become a
// heading or a quote.
func EscapeMarkdown(s string) string {
	s = markdownSpecial.Replace(s)
	if strings.HasPrefix(s, "#") || strings.HasPrefix(s, ">") {
		s = `\` + s
	}
	return s
}

// EscapeMarkdownCell prepares rendered Markdown for a pipe table cell:
// unescaped pipes are escaped and newlines fold to <br>.
func EscapeMarkdownCell(s string) string {
	var sb strings.Builder
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s):
			sb.WriteByte(c)
			sb.WriteByte(s[i+1])
			i++
		case c == '|':
			sb.WriteString(`\|`)
		case c == '\n':
			sb.WriteString("<br>")
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Slug lowercases s and joins its letters and digits with hyphens, e.g.
// "At Higher Levels" -> "at-higher-levels".
func Slug(s string) string {
	var sb strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pending = false
			sb.WriteRune(r)
			continue
		}
		pending = true
	}
	return sb.String()
}
