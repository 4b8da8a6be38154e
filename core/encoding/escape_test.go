package encoding

import "testing"

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "Hello World", "Hello World"},
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry"},
		{"quotes", `He said "hello"`, "He said &#34;hello&#34;"},
		{"apostrophe", "it's", "it&#39;s"},
		{"unicode", "日本語 & émoji 🎉", "日本語 &amp; émoji 🎉"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeXML(tt.input); got != tt.want {
				t.Errorf("EscapeXML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		input string
		text  string
		attr  string
	}{
		{"", "", ""},
		{"Tom & Jerry", "Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"<script>", "&lt;script&gt;", "&lt;script&gt;"},
		{`say "hi"`, `say "hi"`, "say &quot;hi&quot;"},
		{"it's", "it's", "it&#39;s"},
		{"&amp;", "&amp;amp;", "&amp;amp;"},
	}

	for _, tt := range tests {
		if got := EscapeHTML(tt.input); got != tt.text {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.input, got, tt.text)
		}
		if got := EscapeHTMLAttr(tt.input); got != tt.attr {
			t.Errorf("EscapeHTMLAttr(%q) = %q, want %q", tt.input, got, tt.attr)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"*bold*", `\*bold\*`},
		{"snake_case", `snake\_case`},
		{"[link](x)", `\[link\](x)`},
		{"# not a heading", `\# not a heading`},
		{"> not a quote", `\> not a quote`},
		{"a # b", "a # b"},
		{`back\slash`, `back\\slash`},
		{"a|b", `a\|b`},
	}

	for _, tt := range tests {
		if got := EscapeMarkdown(tt.input); got != tt.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEscapeMarkdownCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"one\r\ntwo\nthree", "one<br>two<br>three"},
		{"a|b", `a\|b`},
		{`a\|b`, `a\|b`},
		{"**bold**", "**bold**"},
	}

	for _, tt := range tests {
		if got := EscapeMarkdownCell(tt.input); got != tt.want {
			t.Errorf("EscapeMarkdownCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"At Higher Levels", "at-higher-levels"},
		{"  Chapter 1: The Unicorn & the Hags ", "chapter-1-the-unicorn-the-hags"},
		{"Élan Vital", "élan-vital"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slug(tt.input); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
