package markup

import (
	"strings"
	"testing"
)

// FuzzRenderPlainText checks that text without "{@" renders to itself.
func FuzzRenderPlainText(f *testing.F) {
	f.Add("plain text")
	f.Add("a}b|c")
	f.Add("{not a tag}")
	f.Add("")
	f.Add("unicode: dragon’s breath — 2d6")
	f.Add("{{x}}||")

	f.Fuzz(func(t *testing.T, input string) {
		if strings.Contains(input, "{@") {
			t.Skip()
		}
		got, err := Strip(input)
		if err != nil {
			// A "{" at the very end matches no token.
			if strings.HasSuffix(input, "{") {
				return
			}
			t.Fatalf("Strip(%q) error = %v", input, err)
		}
		if got != input {
			t.Errorf("Strip(%q) = %q", input, got)
		}
	})
}

// FuzzLex checks that lexing never panics and that lexemes are slices of
// the input in order.
func FuzzLex(f *testing.F) {
	f.Add("The {@class |fighter|phb||{@b eldritch knight}|||phb|} is a third-caster")
	f.Add("{@b {@i x}|y}")
	f.Add("{@")
	f.Add("{@}")
	f.Add("{@x a|}")
	f.Add("trailing {")

	f.Fuzz(func(t *testing.T, input string) {
		prev := -1
		textEnd := -1
		for lx, err := range Lex(input) {
			if err != nil {
				return
			}
			if lx.Offset <= prev {
				t.Fatalf("lexeme at %d does not follow %d", lx.Offset, prev)
			}
			if textEnd >= 0 && lx.Offset != textEnd {
				t.Fatalf("lexeme at %d, text ended at %d", lx.Offset, textEnd)
			}
			prev, textEnd = lx.Offset, -1
			switch lx.Kind {
			case LexemeText:
				if lx.Text == "" || !strings.HasPrefix(input[lx.Offset:], lx.Text) {
					t.Fatalf("text %q is not the input at %d", lx.Text, lx.Offset)
				}
				textEnd = lx.Offset + len(lx.Text)
			case LexemeTag:
				if !strings.HasPrefix(input[lx.Offset:], "{@"+lx.Name) {
					t.Fatalf("tag %q does not start at %d", lx.Name, lx.Offset)
				}
			}
		}
		if textEnd >= 0 && textEnd != len(input) {
			t.Errorf("final text ends at %d of %d bytes", textEnd, len(input))
		}
	})
}
