package html

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/xml"
	"github.com/FocuswithJustin/Compendium/internal/formats"
)

func render(t *testing.T, doc string) string {
	t.Helper()
	e, err := entry.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, err := New(formats.Options{}).RenderEntry(e)
	if err != nil {
		t.Fatalf("RenderEntry() error = %v", err)
	}
	return got
}

func TestHeadingID(t *testing.T) {
	if got := HeadingID("Traps", entry.Meta{ID: "custom"}); got != "custom" {
		t.Errorf("HeadingID() with id = %q, want %q", got, "custom")
	}
	a := HeadingID("Traps", entry.Meta{Name: "Traps", Source: "DMG"})
	b := HeadingID("Traps", entry.Meta{Name: "Traps", Source: "XGE"})
	if a == b {
		t.Errorf("HeadingID() = %q for both sources", a)
	}
	if !strings.HasPrefix(a, "traps-") || len(a) != len("traps-")+8 {
		t.Errorf("HeadingID() = %q, want traps- and 8 hex digits", a)
	}
	if again := HeadingID("Traps", entry.Meta{Name: "Traps", Source: "DMG"}); again != a {
		t.Errorf("HeadingID() not stable: %q then %q", a, again)
	}
	if got := HeadingID("{@b Bold} Title", entry.Meta{}); !strings.HasPrefix(got, "bold-title-") {
		t.Errorf("HeadingID() = %q, want tags stripped", got)
	}
	if got := HeadingID("!!", entry.Meta{}); !strings.HasPrefix(got, "h-") {
		t.Errorf("HeadingID() = %q, want h- prefix", got)
	}
}

func TestRenderMarkup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{@b a & b}", "<b>a &amp; b</b>"},
		{"<script>", "&lt;script&gt;"},
		{"{@link site|https://x.io/?a=1&b=2}", `<a href="https://x.io/?a=1&amp;b=2">site</a>`},
		{"{@link x|javascript:alert(1)}", "x"},
		{"{@link x|JavaScript:alert(1)}", "x"},
		{"{@link x| java\tscript:alert(1)}", "x"},
		{"{@link x|data:text/html,hi}", "x"},
		{"{@link mail|mailto:dm@example.com}", `<a href="mailto:dm@example.com">mail</a>`},
		{"{@link rules|/rules.html#srd}", `<a href="/rules.html#srd">rules</a>`},
		{"{@link top|#top}", `<a href="#top">top</a>`},
		{"{@link q|?page=2:3}", `<a href="?page=2:3">q</a>`},
		{"{@color red text|#ff0000}", `<span style="color: #ff0000">red text</span>`},
		{"{@i {@s x}}", "<i><s>x</s></i>"},
		{"{@damage 2d6}", `<span class="roller">7 (2d6)</span>`},
		{"{@atk rw}", "<i>Ranged Weapon Attack:</i>"},
		{"{@note a note}", `<span class="note">a note</span>`},
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
		{name: "hr", doc: `{"type":"hr"}`, want: "<hr/>"},
		{name: "list", doc: `{"type":"list","items":["One","Two"]}`, want: "<ul>\n<li>One</li>\n<li>Two</li>\n</ul>"},
		{
			name: "image",
			doc:  `{"type":"image","href":{"type":"internal","path":"a.png"},"title":"Map","width":200}`,
			want: `<figure><img src="a.png" alt="Map" width="200"/><figcaption>Map</figcaption></figure>`,
		},
		{
			name: "untitled image",
			doc:  `{"type":"image","href":{"type":"external","url":"https://x.io/a.png"},"altText":"A \"map\""}`,
			want: `<img src="https://x.io/a.png" alt="A &quot;map&quot;"/>`,
		},
		{
			name: "quote",
			doc:  `{"type":"quote","entries":["Hi & bye"],"by":"Elminster"}`,
			want: "<blockquote>\n<p>Hi &amp; bye</p>\n<footer>Elminster</footer>\n</blockquote>",
		},
		{
			name: "inset",
			doc:  `{"type":"inset","name":"Note","entries":["Body."]}`,
			want: "<aside class=\"inset\">\n<header>Note</header>\n<p>Body.</p>\n</aside>",
		},
		{
			name: "link",
			doc:  `{"type":"link","text":"SRD","href":{"type":"internal","path":"rules.html","hash":"srd"}}`,
			want: `<a href="rules.html#srd">SRD</a>`,
		},
		{
			name: "link with script url",
			doc:  `{"type":"link","text":"SRD","href":{"type":"external","url":"javascript:alert(1)"}}`,
			want: "SRD",
		},
		{
			name: "table",
			doc:  `{"type":"table","colLabels":["d6","Result"],"colStyles":["col-2 text-center",""],"rows":[["1","Pit"]],"footnotes":["See DMG."]}`,
			want: "<table class=\"striped\">\n<thead>\n<tr><th class=\"col-2 text-center\">d6</th><th>Result</th></tr>\n</thead>\n" +
				"<tbody>\n<tr><td class=\"col-2 text-center\">1</td><td>Pit</td></tr>\n</tbody>\n" +
				"<tfoot>\n<tr><td colspan=\"2\">See DMG.</td></tr>\n</tfoot>\n</table>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.doc); got != tt.want {
				t.Errorf("RenderEntry() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderEntryDataAttributes(t *testing.T) {
	got := render(t, `{"type":"entries","name":"Roll","data":{"rd-roll":"d6","other":1},"entries":["x"]}`)
	if !strings.Contains(got, ` data-roll="d6">Roll</h1>`) {
		t.Errorf("RenderEntry() = %q, want data-roll attribute", got)
	}
	if strings.Contains(got, "data-other") {
		t.Errorf("RenderEntry() = %q, want only rd- keys", got)
	}
}

func TestRenderEntryWellFormed(t *testing.T) {
	doc := `{"type":"section","name":"Traps & Hazards","source":"DMG","entries":[
		"Beware the {@b <dark>} & {@i light}.",
		{"type":"entries","name":"Pits","entries":[
			{"type":"table","caption":"Depth","colLabels":["d6","Depth"],"rows":[["1-3","10 ft."],["4-6","20 ft."]]},
			{"type":"list","items":["Spikes",{"type":"item","name":"Lid.","entry":"Hidden."}]}
		]},
		{"type":"inset","name":"Tip","entries":["Search first."]},
		{"type":"quote","entries":["Mind the gap."],"by":"A guide"},
		{"type":"gallery","images":[{"type":"image","href":{"type":"internal","path":"pit.png"},"title":"Pit","height":120}]},
		{"type":"spellcasting","name":"Spellcasting","will":["{@spell light}"]},
		{"type":"hr"}
	]}`
	out := render(t, doc)

	if res := xml.ValidateFragment(out); !res.Valid {
		t.Fatalf("ValidateFragment() errors = %v\n%s", res.Errors, out)
	}
	d, err := xml.ParseFragment(out)
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	headings := d.Headings()
	if len(headings) != 2 {
		t.Fatalf("Headings() = %+v, want 2", headings)
	}
	if headings[0].Level != 1 || headings[0].Text != "Traps & Hazards" || !strings.HasPrefix(headings[0].ID, "traps-hazards-") {
		t.Errorf("Headings()[0] = %+v", headings[0])
	}
	if headings[1].Level != 2 || headings[1].Text != "Pits" {
		t.Errorf("Headings()[1] = %+v", headings[1])
	}
	if n, err := d.Count("count(//section)"); err != nil || n != 1 {
		t.Errorf("Count(section) = %d, %v", n, err)
	}
	if n, err := d.Count("count(//figure/figcaption)"); err != nil || n != 1 {
		t.Errorf("Count(figcaption) = %d, %v", n, err)
	}
}
