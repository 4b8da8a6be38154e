package base

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/markup"
)

// Entries renders every entry kind through Style. Strings go through Markup
// after Style.Escape.
type Entries struct {
	Style  Style
	Markup markup.Renderer
}

var _ entry.EntryRenderer = Entries{}

// NewWith builds a Format whose entry hooks come from hooks, which usually
// embeds the Entries it is given.
func NewWith(style Style, tags markup.StringRenderer, maxDepth int, hooks func(Entries) entry.EntryRenderer) Format {
	m := markup.NewRenderer(tags, markup.WithMaxDepth(maxDepth))
	e := Entries{Style: style, Markup: m}
	return Format{
		Style:   style,
		Markup:  m,
		Entries: entry.NewRenderer(hooks(e), entry.WithMaxDepth(maxDepth)),
	}
}

// Text renders marked-up source text.
func (b Entries) Text(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return b.Markup.Render(b.Style.Escape(s))
}

// Level returns the heading level for a titled block rendered by r.
func Level(r entry.Renderer) int {
	return min(max(r.Depth(), 1), 6)
}

// Body renders es as blocks. Bare strings and integers become paragraphs.
func (b Entries) Body(r entry.Renderer, es []entry.Entry) ([]string, error) {
	out := make([]string, 0, len(es))
	for _, e := range es {
		s, err := r.Render(e)
		if err != nil {
			return nil, err
		}
		if e.Form() != entry.FormBlock && s != "" {
			s = b.Style.Paragraph(s)
		}
		out = append(out, s)
	}
	return out, nil
}

// Inline renders es on one line separated by spaces.
func (b Entries) Inline(r entry.Renderer, es []entry.Entry) (string, error) {
	parts, err := r.RenderEach(es)
	if err != nil {
		return "", err
	}
	return joinNonEmpty(parts, " "), nil
}

func (b Entries) titled(r entry.Renderer, name string, m entry.Meta, es []entry.Entry) (string, error) {
	parts, err := b.Body(r, es)
	if err != nil {
		return "", err
	}
	if name != "" {
		title, err := b.Text(name)
		if err != nil {
			return "", err
		}
		parts = append([]string{b.Style.Heading(Level(r), title, m)}, parts...)
	}
	return b.Style.Join(parts), nil
}

func (b Entries) aside(r entry.Renderer, kind AsideKind, name string, es []entry.Entry, extra ...string) (string, error) {
	title, err := b.Text(name)
	if err != nil {
		return "", err
	}
	parts, err := b.Body(r, es)
	if err != nil {
		return "", err
	}
	return b.Style.Aside(kind, title, append(parts, extra...)), nil
}

// labelled renders "Label. inline body", as used by items and actions.
func (b Entries) labelled(r entry.Renderer, name string, es []entry.Entry) (string, error) {
	label, err := b.Text(name)
	if err != nil {
		return "", err
	}
	body, err := b.Inline(r, es)
	if err != nil {
		return "", err
	}
	if label == "" {
		return body, nil
	}
	return joinNonEmpty([]string{b.Style.Strong(label), body}, " "), nil
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func (b Entries) RenderString(_ entry.Renderer, s string) (string, error) {
	return b.Text(s)
}

func (b Entries) RenderInteger(_ entry.Renderer, n int64) (string, error) {
	return strconv.FormatInt(n, 10), nil
}

func (b Entries) RenderSection(r entry.Renderer, e *entry.Section) (string, error) {
	return b.titled(r, e.Name, e.Meta, e.Entries)
}

func (b Entries) RenderEntries(r entry.Renderer, e *entry.Entries) (string, error) {
	return b.titled(r, e.Name, e.Meta, e.Entries)
}

func (b Entries) RenderHomebrew(r entry.Renderer, e *entry.Homebrew) (string, error) {
	parts, err := b.Body(r, e.Entries)
	if err != nil {
		return "", err
	}
	if e.MovedTo != nil {
		moved, err := b.Body(r, []entry.Entry{*e.MovedTo})
		if err != nil {
			return "", err
		}
		parts = append(parts, moved...)
	}
	if len(e.OldEntries) > 0 {
		old, err := b.Body(r, e.OldEntries)
		if err != nil {
			return "", err
		}
		label := "Replaces:"
		if len(parts) == 0 {
			label = "Removed:"
		}
		parts = append(parts, b.Style.Paragraph(b.Style.Emphasis(label)))
		parts = append(parts, old...)
	}
	return b.Style.Aside(AsideHomebrew, "Homebrew", parts), nil
}

func (b Entries) RenderQuote(r entry.Renderer, e *entry.Quote) (string, error) {
	lines, err := r.RenderEach(e.Entries)
	if err != nil {
		return "", err
	}
	by, err := b.Text(e.By)
	if err != nil {
		return "", err
	}
	from, err := b.Text(e.From)
	if err != nil {
		return "", err
	}
	if from != "" {
		by = joinNonEmpty([]string{by, b.Style.Emphasis(from)}, ", ")
	}
	return b.Style.Quote(lines, by), nil
}

func (b Entries) RenderInline(r entry.Renderer, e *entry.Inline) (string, error) {
	parts, err := r.RenderEach(e.Entries)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, ""), nil
}

func (b Entries) RenderInlineBlock(r entry.Renderer, e *entry.InlineBlock) (string, error) {
	parts, err := r.RenderEach(e.Entries)
	if err != nil {
		return "", err
	}
	return b.Style.Paragraph(strings.Join(parts, "")), nil
}

func (b Entries) RenderOptions(r entry.Renderer, e *entry.Options) (string, error) {
	items, err := r.RenderEach(e.Entries)
	if err != nil {
		return "", err
	}
	list := b.Style.List(items)
	if e.Count == nil {
		return list, nil
	}
	choose := b.Style.Paragraph(b.Style.Emphasis(fmt.Sprintf("Choose %d:", *e.Count)))
	return b.Style.Join([]string{choose, list}), nil
}

func (b Entries) RenderTable(r entry.Renderer, e *entry.Table) (string, error) {
	t := Table{
		Meta:    e.Meta,
		Styles:  e.ColStyles,
		Striped: e.IsStriped == nil || *e.IsStriped,
	}
	var err error
	if t.Caption, err = b.Text(e.Caption); err != nil {
		return "", err
	}
	for _, label := range e.ColLabels {
		s, err := b.Text(label)
		if err != nil {
			return "", err
		}
		t.Header = append(t.Header, s)
	}
	for i, row := range e.Rows {
		cells, err := r.RenderEach(row.Cols())
		if err != nil {
			return "", err
		}
		if i < len(e.RowLabels) {
			label, err := b.Text(e.RowLabels[i])
			if err != nil {
				return "", err
			}
			cells = append([]string{label}, cells...)
		}
		t.Rows = append(t.Rows, cells)
	}
	if t.Footnotes, err = r.RenderEach(e.Footnotes); err != nil {
		return "", err
	}
	intro, err := b.Body(r, e.Intro)
	if err != nil {
		return "", err
	}
	outro, err := b.Body(r, e.Outro)
	if err != nil {
		return "", err
	}
	parts := append(intro, b.Style.Table(t))
	return b.Style.Join(append(parts, outro...)), nil
}

func (b Entries) RenderTableGroup(r entry.Renderer, e *entry.TableGroup) (string, error) {
	parts, err := r.RenderEach(e.Tables)
	if err != nil {
		return "", err
	}
	return b.Style.Join(parts), nil
}

func (b Entries) RenderTableRow(r entry.Renderer, e *entry.TableRow) (string, error) {
	cells, err := r.RenderEach(e.Row)
	if err != nil {
		return "", err
	}
	return strings.Join(cells, " | "), nil
}

func (b Entries) RenderTableCell(r entry.Renderer, e *entry.TableCell) (string, error) {
	if e.Entry != nil {
		return r.Render(*e.Entry)
	}
	return e.Roll.String(), nil
}

func (b Entries) RenderList(r entry.Renderer, e *entry.List) (string, error) {
	items, err := r.RenderEach(e.Items)
	if err != nil {
		return "", err
	}
	return b.Style.List(items), nil
}

func (b Entries) RenderBonus(_ entry.Renderer, e *entry.Bonus) (string, error) {
	return fmt.Sprintf("%+d", e.Value), nil
}

func (b Entries) RenderBonusSpeed(_ entry.Renderer, e *entry.BonusSpeed) (string, error) {
	return fmt.Sprintf("%+d ft.", e.Value), nil
}

func (b Entries) RenderDice(_ entry.Renderer, e *entry.Dice) (string, error) {
	parts := make([]string, len(e.ToRoll))
	for i, roll := range e.ToRoll {
		parts[i] = roll.String()
	}
	return strings.Join(parts, "+"), nil
}

func abilities(attrs []entry.AbilityAttribute) string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.FullName()
	}
	return strings.Join(names, " or ")
}

func (b Entries) RenderAbilityDC(_ entry.Renderer, e *entry.AbilityDC) (string, error) {
	name, err := b.Text(e.Name)
	if err != nil {
		return "", err
	}
	return b.Style.Paragraph(b.Style.Strong(name+" save DC") +
		" = 8 + your proficiency bonus + your " + abilities(e.Attributes) + " modifier"), nil
}

func (b Entries) RenderAbilityAttackMod(_ entry.Renderer, e *entry.AbilityAttackMod) (string, error) {
	name, err := b.Text(e.Name)
	if err != nil {
		return "", err
	}
	return b.Style.Paragraph(b.Style.Strong(name+" attack modifier") +
		" = your proficiency bonus + your " + abilities(e.Attributes) + " modifier"), nil
}

func (b Entries) RenderAbilityGeneric(_ entry.Renderer, e *entry.AbilityGeneric) (string, error) {
	text, err := b.Text(e.Text)
	if err != nil {
		return "", err
	}
	if e.Name == "" {
		return b.Style.Paragraph(text), nil
	}
	name, err := b.Text(e.Name)
	if err != nil {
		return "", err
	}
	return b.Style.Paragraph(b.Style.Strong(name) + " = " + text), nil
}

// Href returns the target of a link: the URL of an external link, or the
// path and hash of an internal one.
func Href(h entry.LinkHref) string {
	if h.Type == entry.HrefExternal {
		return h.URL
	}
	if h.Hash == "" {
		return h.Path
	}
	return h.Path + "#" + h.Hash
}

func (b Entries) RenderLink(_ entry.Renderer, e *entry.Link) (string, error) {
	return b.Style.Link(b.Style.Escape(e.Text), Href(e.Href)), nil
}

func (b Entries) RenderOptFeature(r entry.Renderer, e *entry.OptFeature) (string, error) {
	title, err := b.Text(e.Name)
	if err != nil {
		return "", err
	}
	parts := []string{b.Style.Heading(Level(r), title, e.Metadata())}
	if e.Prerequisite != "" {
		pre, err := b.Text(e.Prerequisite)
		if err != nil {
			return "", err
		}
		parts = append(parts, b.Style.Paragraph(b.Style.Emphasis("Prerequisite: "+pre)))
	}
	body, err := b.Body(r, e.Entries)
	if err != nil {
		return "", err
	}
	return b.Style.Join(append(parts, body...)), nil
}

func (b Entries) RenderInset(r entry.Renderer, e *entry.Inset) (string, error) {
	return b.aside(r, AsideInset, e.Name, e.Entries)
}

func (b Entries) RenderInsetReadaloud(r entry.Renderer, e *entry.InsetReadaloud) (string, error) {
	return b.aside(r, AsideReadaloud, e.Name, e.Entries)
}

func (b Entries) RenderVariant(r entry.Renderer, e *entry.Variant) (string, error) {
	var extra []string
	if src := e.VariantSource; src != nil {
		note := fmt.Sprintf("Source: %s, page %d", b.Style.Escape(src.Source), src.Page)
		extra = append(extra, b.Style.Paragraph(b.Style.Emphasis(note)))
	}
	return b.aside(r, AsideVariant, "Variant: "+e.Name, e.Entries, extra...)
}

func (b Entries) RenderVariantInner(r entry.Renderer, e *entry.VariantInner) (string, error) {
	return b.titled(r, e.Name, e.Metadata(), e.Entries)
}

func (b Entries) RenderVariantSub(r entry.Renderer, e *entry.VariantSub) (string, error) {
	return b.titled(r, e.Name, e.Metadata(), e.Entries)
}

func (b Entries) RenderItem(r entry.Renderer, e *entry.Item) (string, error) {
	return b.labelled(r, e.Name, e.Body())
}

func (b Entries) RenderItemSub(r entry.Renderer, e *entry.ItemSub) (string, error) {
	if e.Entry == nil {
		return b.labelled(r, e.Name, nil)
	}
	return b.labelled(r, e.Name, []entry.Entry{*e.Entry})
}

func (b Entries) RenderItemSpell(r entry.Renderer, e *entry.ItemSpell) (string, error) {
	if e.Entry == nil {
		return b.labelled(r, e.Name, nil)
	}
	return b.labelled(r, e.Name, []entry.Entry{*e.Entry})
}

func (b Entries) RenderImage(_ entry.Renderer, e *entry.Image) (string, error) {
	alt := e.AltText
	if alt == "" {
		alt = e.Title
	}
	return b.Style.Image(e.Href.Location(), b.Style.Escape(alt), b.Style.Escape(e.Title)), nil
}

func (b Entries) RenderGallery(r entry.Renderer, e *entry.Gallery) (string, error) {
	parts := make([]string, 0, len(e.Images))
	for i := range e.Images {
		s, err := r.Hooks().RenderImage(r, &e.Images[i])
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return b.Style.Join(parts), nil
}

func (b Entries) RenderActions(r entry.Renderer, e *entry.Actions) (string, error) {
	line, err := b.labelled(r, e.Name, e.Entries)
	if err != nil {
		return "", err
	}
	return b.Style.Paragraph(line), nil
}

func (b Entries) RenderAttack(r entry.Renderer, e *entry.Attack) (string, error) {
	label := "Melee Weapon Attack:"
	if e.AttackType == entry.AttackRanged {
		label = "Ranged Weapon Attack:"
	}
	attack, err := b.Inline(r, e.AttackEntries)
	if err != nil {
		return "", err
	}
	hit, err := b.Inline(r, e.HitEntries)
	if err != nil {
		return "", err
	}
	return b.Style.Paragraph(joinNonEmpty([]string{
		b.Style.Emphasis(label), attack, b.Style.Emphasis("Hit:"), hit,
	}, " ")), nil
}

func (b Entries) RenderFlowchart(r entry.Renderer, e *entry.Flowchart) (string, error) {
	parts, err := r.RenderEach(e.Blocks)
	if err != nil {
		return "", err
	}
	return b.Style.Join(parts), nil
}

func (b Entries) RenderFlowBlock(r entry.Renderer, e *entry.FlowBlock) (string, error) {
	return b.aside(r, AsideFlow, e.Name, e.Entries)
}

// Amounts substitutes "{=amountN}" placeholders with the ingredient's
// amounts.
func Amounts(e *entry.Ingredient, s string) string {
	if len(e.Amounts) == 0 {
		return s
	}
	pairs := make([]string, 0, 2*len(e.Amounts))
	for _, k := range entry.SortedKeys(e.Amounts) {
		pairs = append(pairs, "{="+k+"}", e.Amounts[k].String())
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

func (b Entries) RenderIngredient(r entry.Renderer, e *entry.Ingredient) (string, error) {
	if e.Entry == nil {
		return "", nil
	}
	if s, ok := e.Entry.Text(); ok {
		return b.Text(Amounts(e, s))
	}
	return r.Render(*e.Entry)
}

// record renders the name and source of an embedded data record.
func (b Entries) record(e entry.Block) (string, error) {
	raw := entry.Payload(e)
	name := gjson.GetBytes(raw, "name").String()
	if name == "" {
		return b.Style.Paragraph(b.Style.Emphasis(string(e.Type()))), nil
	}
	label, err := b.Text(name)
	if err != nil {
		return "", err
	}
	label = b.Style.Strong(label)
	if src := gjson.GetBytes(raw, "source").String(); src != "" {
		label += " (" + b.Style.Escape(src) + ")"
	}
	return b.Style.Paragraph(label), nil
}

func (b Entries) RenderDataCreature(_ entry.Renderer, e *entry.DataCreature) (string, error) {
	return b.record(e)
}

func (b Entries) RenderDataSpell(_ entry.Renderer, e *entry.DataSpell) (string, error) {
	return b.record(e)
}

func (b Entries) RenderDataTrapHazard(_ entry.Renderer, e *entry.DataTrapHazard) (string, error) {
	return b.record(e)
}

func (b Entries) RenderDataObject(_ entry.Renderer, e *entry.DataObject) (string, error) {
	return b.record(e)
}

func (b Entries) RenderDataItem(_ entry.Renderer, e *entry.DataItem) (string, error) {
	return b.record(e)
}

// RefName returns the display name of a "name|class|source|..." reference.
func RefName(ref string) string {
	name, _, _ := strings.Cut(ref, "|")
	return name
}

func (b Entries) reference(name string) (string, error) {
	return b.Style.Paragraph(b.Style.Emphasis(b.Style.Escape(name))), nil
}

func (b Entries) RenderRefClassFeature(_ entry.Renderer, e *entry.RefClassFeature) (string, error) {
	return b.reference(RefName(e.ClassFeature))
}

func (b Entries) RenderRefSubclassFeature(_ entry.Renderer, e *entry.RefSubclassFeature) (string, error) {
	return b.reference(RefName(e.SubclassFeature))
}

func (b Entries) RenderRefOptionalFeature(_ entry.Renderer, e *entry.RefOptionalFeature) (string, error) {
	if e.Name != "" {
		return b.reference(e.Name)
	}
	return b.reference(RefName(e.OptionalFeature))
}

func (b Entries) RenderHr(entry.Renderer, *entry.Hr) (string, error) {
	return b.Style.Rule(), nil
}
