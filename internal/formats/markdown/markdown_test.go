package markdown

import (
	"testing"

	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/internal/formats"
)

func TestRegistered(t *testing.T) {
	f, err := formats.New("markdown", formats.Options{})
	if err != nil {
		t.Fatalf("formats.New(markdown) error = %v", err)
	}
	got, err := f.RenderMarkup("{@b x}")
	if err != nil || got != "**x**" {
		t.Errorf("RenderMarkup() = %q, %v", got, err)
	}
}

func TestRenderMarkup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{@b bold} {@i it} {@s gone}", "**bold** _it_ ~~gone~~"},
		{"{@link site|https://x.io} {@link https://y.io}", "[site](https://x.io) <https://y.io>"},
		{"{@atk mw} {@h}5 damage", "_Melee Weapon Attack:_ _Hit:_ 5 damage"},
		{"{@b {@i both}}", "**_both_**"},
		{"{@damage 2d6} fire", "7 (2d6) fire"},
	}
	f := New(formats.Options{})
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

func TestRenderEntry(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "section",
			doc:  `{"type":"section","name":"Traps","entries":["Watch your {@b step}.",{"type":"entries","name":"Pits","entries":["Fall."]}]}`,
			want: "# Traps\n\nWatch your **step**.\n\n## Pits\n\nFall.",
		},
		{
			name: "table",
			doc: `{"type":"table","caption":"Pits","colLabels":["d6","Result"],"colStyles":["col-2 text-center","col-10"],` +
				`"rows":[["1","Pit"],["2-3","a|b"]]}`,
			want: "**Pits**\n\n| d6 | Result |\n| :---: | --- |\n| 1 | Pit |\n| 2-3 | a\\|b |",
		},
		{
			name: "quote",
			doc:  `{"type":"quote","entries":["Line one","Line two"],"by":"Elminster","from":"Tales"}`,
			want: "> Line one\n>\n> Line two\n>\n> -- Elminster, _Tales_",
		},
		{
			name: "inset",
			doc:  `{"type":"inset","name":"Note","entries":["Body."]}`,
			want: "> **Note**\n>\n> Body.",
		},
		{
			name: "attack",
			doc:  `{"type":"attack","attackType":"MW","attackEntries":["{@hit 5} to hit"],"hitEntries":["{@damage 1d6+3} slashing"]}`,
			want: "_Melee Weapon Attack:_ +5 to hit _Hit:_ 6 (1d6+3) slashing",
		},
		{
			name: "image",
			doc:  `{"type":"image","href":{"type":"external","url":"https://x.io/a.png"},"title":"Map"}`,
			want: `![Map](https://x.io/a.png "Map")`,
		},
		{
			name: "spellcasting",
			doc:  `{"type":"spellcasting","name":"Spellcasting","will":["{@spell light}"]}`,
			want: "**Spellcasting**\n\n- _At will:_ light",
		},
		{
			name: "link",
			doc:  `{"type":"link","text":"Rules [SRD]","href":{"type":"internal","path":"rules.html","hash":"srd"}}`,
			want: `[Rules \[SRD\]](rules.html#srd)`,
		},
		{name: "list", doc: `{"type":"list","items":["One","Two"]}`, want: "- One\n- Two"},
		{name: "hr", doc: `{"type":"hr"}`, want: "---"},
	}
	f := New(formats.Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := entry.Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got, err := f.RenderEntry(e)
			if err != nil {
				t.Fatalf("RenderEntry() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderEntry() = %q, want %q", got, tt.want)
			}
		})
	}
}
