package entry

import (
	"strings"

	"github.com/FocuswithJustin/Compendium/core/errors"
)

// EntryRenderer renders an entry tree. There is one hook per block kind plus
// one for each leaf form. Hooks receive the Renderer driving the pass and
// use it to render children, so nested content goes back through the full
// hook set.
type EntryRenderer interface {
	RenderString(r Renderer, s string) (string, error)
	RenderInteger(r Renderer, n int64) (string, error)
	RenderSection(r Renderer, b *Section) (string, error)
	RenderEntries(r Renderer, b *Entries) (string, error)
	RenderHomebrew(r Renderer, b *Homebrew) (string, error)
	RenderQuote(r Renderer, b *Quote) (string, error)
	RenderInline(r Renderer, b *Inline) (string, error)
	RenderInlineBlock(r Renderer, b *InlineBlock) (string, error)
	RenderOptions(r Renderer, b *Options) (string, error)
	RenderTable(r Renderer, b *Table) (string, error)
	RenderTableGroup(r Renderer, b *TableGroup) (string, error)
	RenderTableRow(r Renderer, b *TableRow) (string, error)
	RenderTableCell(r Renderer, b *TableCell) (string, error)
	RenderList(r Renderer, b *List) (string, error)
	RenderBonus(r Renderer, b *Bonus) (string, error)
	RenderBonusSpeed(r Renderer, b *BonusSpeed) (string, error)
	RenderDice(r Renderer, b *Dice) (string, error)
	RenderAbilityDC(r Renderer, b *AbilityDC) (string, error)
	RenderAbilityAttackMod(r Renderer, b *AbilityAttackMod) (string, error)
	RenderAbilityGeneric(r Renderer, b *AbilityGeneric) (string, error)
	RenderLink(r Renderer, b *Link) (string, error)
	RenderOptFeature(r Renderer, b *OptFeature) (string, error)
	RenderInset(r Renderer, b *Inset) (string, error)
	RenderInsetReadaloud(r Renderer, b *InsetReadaloud) (string, error)
	RenderVariant(r Renderer, b *Variant) (string, error)
	RenderVariantInner(r Renderer, b *VariantInner) (string, error)
	RenderVariantSub(r Renderer, b *VariantSub) (string, error)
	RenderItem(r Renderer, b *Item) (string, error)
	RenderItemSub(r Renderer, b *ItemSub) (string, error)
	RenderItemSpell(r Renderer, b *ItemSpell) (string, error)
	RenderImage(r Renderer, b *Image) (string, error)
	RenderGallery(r Renderer, b *Gallery) (string, error)
	RenderActions(r Renderer, b *Actions) (string, error)
	RenderAttack(r Renderer, b *Attack) (string, error)
	RenderFlowchart(r Renderer, b *Flowchart) (string, error)
	RenderFlowBlock(r Renderer, b *FlowBlock) (string, error)
	RenderIngredient(r Renderer, b *Ingredient) (string, error)
	RenderDataCreature(r Renderer, b *DataCreature) (string, error)
	RenderDataSpell(r Renderer, b *DataSpell) (string, error)
	RenderDataTrapHazard(r Renderer, b *DataTrapHazard) (string, error)
	RenderDataObject(r Renderer, b *DataObject) (string, error)
	RenderDataItem(r Renderer, b *DataItem) (string, error)
	RenderRefClassFeature(r Renderer, b *RefClassFeature) (string, error)
	RenderRefSubclassFeature(r Renderer, b *RefSubclassFeature) (string, error)
	RenderRefOptionalFeature(r Renderer, b *RefOptionalFeature) (string, error)
	RenderHr(r Renderer, b *Hr) (string, error)
	RenderSpellcasting(r Renderer, b *Spellcasting) (string, error)
}

// DefaultMaxDepth bounds tree depth when no WithMaxDepth option is given.
const DefaultMaxDepth = 64

// Renderer drives an EntryRenderer over an entry tree. Like the markup
// renderer it is a small value and nested calls work on copies.
type Renderer struct {
	hooks    EntryRenderer
	depth    int
	maxDepth int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMaxDepth limits tree depth. Values below one are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// NewRenderer returns a Renderer dispatching to hooks.
func NewRenderer(hooks EntryRenderer, opts ...Option) Renderer {
	r := Renderer{hooks: hooks, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Hooks returns the hook set the renderer dispatches to.
func (r Renderer) Hooks() EntryRenderer { return r.hooks }

// Depth reports how many entries enclose the one being rendered.
func (r Renderer) Depth() int { return r.depth }

// Render dispatches e to the hook for its form or block kind.
func (r Renderer) Render(e Entry) (string, error) {
	if r.depth >= r.maxDepth {
		return "", errors.NewLimit("entry depth", r.maxDepth)
	}
	inner := r
	inner.depth++

	switch e.form {
	case FormBlock:
		if e.block == nil {
			return "", errors.NewValidation("entry", "block entry has no block")
		}
		return e.block.accept(inner)
	case FormInteger:
		return r.hooks.RenderInteger(inner, e.num)
	default:
		return r.hooks.RenderString(inner, e.text)
	}
}

// RenderEach renders each entry in order and stops at the first error.
func (r Renderer) RenderEach(es []Entry) ([]string, error) {
	out := make([]string, 0, len(es))
	for _, e := range es {
		s, err := r.Render(e)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// RenderJoined renders es and joins the results with sep.
func (r Renderer) RenderJoined(es []Entry, sep string) (string, error) {
	parts, err := r.RenderEach(es)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, sep), nil
}

// Render renders e with hooks.
func Render(e Entry, hooks EntryRenderer, opts ...Option) (string, error) {
	return NewRenderer(hooks, opts...).Render(e)
}

func (b *Section) accept(r Renderer) (string, error) { return r.hooks.RenderSection(r, b) }
func (b *Entries) accept(r Renderer) (string, error) { return r.hooks.RenderEntries(r, b) }
func (b *Homebrew) accept(r Renderer) (string, error) { return r.hooks.RenderHomebrew(r, b) }
func (b *Quote) accept(r Renderer) (string, error) { return r.hooks.RenderQuote(r, b) }
func (b *Inline) accept(r Renderer) (string, error) { return r.hooks.RenderInline(r, b) }
func (b *InlineBlock) accept(r Renderer) (string, error) { return r.hooks.RenderInlineBlock(r, b) }
func (b *Options) accept(r Renderer) (string, error) { return r.hooks.RenderOptions(r, b) }
func (b *Table) accept(r Renderer) (string, error) { return r.hooks.RenderTable(r, b) }
func (b *TableGroup) accept(r Renderer) (string, error) { return r.hooks.RenderTableGroup(r, b) }
func (b *TableRow) accept(r Renderer) (string, error) { return r.hooks.RenderTableRow(r, b) }
func (b *TableCell) accept(r Renderer) (string, error) { return r.hooks.RenderTableCell(r, b) }
func (b *List) accept(r Renderer) (string, error) { return r.hooks.RenderList(r, b) }
func (b *Bonus) accept(r Renderer) (string, error) { return r.hooks.RenderBonus(r, b) }
func (b *BonusSpeed) accept(r Renderer) (string, error) { return r.hooks.RenderBonusSpeed(r, b) }
func (b *Dice) accept(r Renderer) (string, error) { return r.hooks.RenderDice(r, b) }
func (b *AbilityDC) accept(r Renderer) (string, error) { return r.hooks.RenderAbilityDC(r, b) }
func (b *AbilityAttackMod) accept(r Renderer) (string, error) { return r.hooks.RenderAbilityAttackMod(r, b) }
func (b *AbilityGeneric) accept(r Renderer) (string, error) { return r.hooks.RenderAbilityGeneric(r, b) }
func (b *Link) accept(r Renderer) (string, error) { return r.hooks.RenderLink(r, b) }
func (b *OptFeature) accept(r Renderer) (string, error) { return r.hooks.RenderOptFeature(r, b) }
func (b *Inset) accept(r Renderer) (string, error) { return r.hooks.RenderInset(r, b) }
func (b *InsetReadaloud) accept(r Renderer) (string, error) { return r.hooks.RenderInsetReadaloud(r, b) }
func (b *Variant) accept(r Renderer) (string, error) { return r.hooks.RenderVariant(r, b) }
func (b *VariantInner) accept(r Renderer) (string, error) { return r.hooks.RenderVariantInner(r, b) }
func (b *VariantSub) accept(r Renderer) (string, error) { return r.hooks.RenderVariantSub(r, b) }
func (b *Item) accept(r Renderer) (string, error) { return r.hooks.RenderItem(r, b) }
func (b *ItemSub) accept(r Renderer) (string, error) { return r.hooks.RenderItemSub(r, b) }
func (b *ItemSpell) accept(r Renderer) (string, error) { return r.hooks.RenderItemSpell(r, b) }
func (b *Image) accept(r Renderer) (string, error) { return r.hooks.RenderImage(r, b) }
func (b *Gallery) accept(r Renderer) (string, error) { return r.hooks.RenderGallery(r, b) }
func (b *Actions) accept(r Renderer) (string, error) { return r.hooks.RenderActions(r, b) }
func (b *Attack) accept(r Renderer) (string, error) { return r.hooks.RenderAttack(r, b) }
func (b *Flowchart) accept(r Renderer) (string, error) { return r.hooks.RenderFlowchart(r, b) }
func (b *FlowBlock) accept(r Renderer) (string, error) { return r.hooks.RenderFlowBlock(r, b) }
func (b *Ingredient) accept(r Renderer) (string, error) { return r.hooks.RenderIngredient(r, b) }
func (b *DataCreature) accept(r Renderer) (string, error) { return r.hooks.RenderDataCreature(r, b) }
func (b *DataSpell) accept(r Renderer) (string, error) { return r.hooks.RenderDataSpell(r, b) }
func (b *DataTrapHazard) accept(r Renderer) (string, error) { return r.hooks.RenderDataTrapHazard(r, b) }
func (b *DataObject) accept(r Renderer) (string, error) { return r.hooks.RenderDataObject(r, b) }
func (b *DataItem) accept(r Renderer) (string, error) { return r.hooks.RenderDataItem(r, b) }
func (b *RefClassFeature) accept(r Renderer) (string, error) { return r.hooks.RenderRefClassFeature(r, b) }
func (b *RefSubclassFeature) accept(r Renderer) (string, error) { return r.hooks.RenderRefSubclassFeature(r, b) }
func (b *RefOptionalFeature) accept(r Renderer) (string, error) { return r.hooks.RenderRefOptionalFeature(r, b) }
func (b *Hr) accept(r Renderer) (string, error) { return r.hooks.RenderHr(r, b) }
func (b *Spellcasting) accept(r Renderer) (string, error) { return r.hooks.RenderSpellcasting(r, b) }

// Unimplemented is an EntryRenderer whose every hook fails with
// *errors.NotImplementedError named after the block type. Formats embed it
// and override what they support.
type Unimplemented struct{}

var _ EntryRenderer = Unimplemented{}

func (Unimplemented) RenderString(Renderer, string) (string, error) {
	return "", errors.NewNotImplemented("string")
}

func (Unimplemented) RenderInteger(Renderer, int64) (string, error) {
	return "", errors.NewNotImplemented("integer")
}

func (Unimplemented) RenderSection(Renderer, *Section) (string, error) {
	return "", errors.NewNotImplemented(string(TypeSection))
}

func (Unimplemented) RenderEntries(Renderer, *Entries) (string, error) {
	return "", errors.NewNotImplemented(string(TypeEntries))
}

func (Unimplemented) RenderHomebrew(Renderer, *Homebrew) (string, error) {
	return "", errors.NewNotImplemented(string(TypeHomebrew))
}

func (Unimplemented) RenderQuote(Renderer, *Quote) (string, error) {
	return "", errors.NewNotImplemented(string(TypeQuote))
}

func (Unimplemented) RenderInline(Renderer, *Inline) (string, error) {
	return "", errors.NewNotImplemented(string(TypeInline))
}

func (Unimplemented) RenderInlineBlock(Renderer, *InlineBlock) (string, error) {
	return "", errors.NewNotImplemented(string(TypeInlineBlock))
}

func (Unimplemented) RenderOptions(Renderer, *Options) (string, error) {
	return "", errors.NewNotImplemented(string(TypeOptions))
}

func (Unimplemented) RenderTable(Renderer, *Table) (string, error) {
	return "", errors.NewNotImplemented(string(TypeTable))
}

func (Unimplemented) RenderTableGroup(Renderer, *TableGroup) (string, error) {
	return "", errors.NewNotImplemented(string(TypeTableGroup))
}

func (Unimplemented) RenderTableRow(Renderer, *TableRow) (string, error) {
	return "", errors.NewNotImplemented(string(TypeTableRow))
}

func (Unimplemented) RenderTableCell(Renderer, *TableCell) (string, error) {
	return "", errors.NewNotImplemented(string(TypeTableCell))
}

func (Unimplemented) RenderList(Renderer, *List) (string, error) {
	return "", errors.NewNotImplemented(string(TypeList))
}

func (Unimplemented) RenderBonus(Renderer, *Bonus) (string, error) {
	return "", errors.NewNotImplemented(string(TypeBonus))
}

func (Unimplemented) RenderBonusSpeed(Renderer, *BonusSpeed) (string, error) {
	return "", errors.NewNotImplemented(string(TypeBonusSpeed))
}

func (Unimplemented) RenderDice(Renderer, *Dice) (string, error) {
	return "", errors.NewNotImplemented(string(TypeDice))
}

func (Unimplemented) RenderAbilityDC(Renderer, *AbilityDC) (string, error) {
	return "", errors.NewNotImplemented(string(TypeAbilityDC))
}

func (Unimplemented) RenderAbilityAttackMod(Renderer, *AbilityAttackMod) (string, error) {
	return "", errors.NewNotImplemented(string(TypeAbilityAttackMod))
}

func (Unimplemented) RenderAbilityGeneric(Renderer, *AbilityGeneric) (string, error) {
	return "", errors.NewNotImplemented(string(TypeAbilityGeneric))
}

func (Unimplemented) RenderLink(Renderer, *Link) (string, error) {
	return "", errors.NewNotImplemented(string(TypeLink))
}

func (Unimplemented) RenderOptFeature(Renderer, *OptFeature) (string, error) {
	return "", errors.NewNotImplemented(string(TypeOptFeature))
}

func (Unimplemented) RenderInset(Renderer, *Inset) (string, error) {
	return "", errors.NewNotImplemented(string(TypeInset))
}

func (Unimplemented) RenderInsetReadaloud(Renderer, *InsetReadaloud) (string, error) {
	return "", errors.NewNotImplemented(string(TypeInsetReadaloud))
}

func (Unimplemented) RenderVariant(Renderer, *Variant) (string, error) {
	return "", errors.NewNotImplemented(string(TypeVariant))
}

func (Unimplemented) RenderVariantInner(Renderer, *VariantInner) (string, error) {
	return "", errors.NewNotImplemented(string(TypeVariantInner))
}

func (Unimplemented) RenderVariantSub(Renderer, *VariantSub) (string, error) {
	return "", errors.NewNotImplemented(string(TypeVariantSub))
}

func (Unimplemented) RenderItem(Renderer, *Item) (string, error) {
	return "", errors.NewNotImplemented(string(TypeItem))
}

func (Unimplemented) RenderItemSub(Renderer, *ItemSub) (string, error) {
	return "", errors.NewNotImplemented(string(TypeItemSub))
}

func (Unimplemented) RenderItemSpell(Renderer, *ItemSpell) (string, error) {
	return "", errors.NewNotImplemented(string(TypeItemSpell))
}

func (Unimplemented) RenderImage(Renderer, *Image) (string, error) {
	return "", errors.NewNotImplemented(string(TypeImage))
}

func (Unimplemented) RenderGallery(Renderer, *Gallery) (string, error) {
	return "", errors.NewNotImplemented(string(TypeGallery))
}

func (Unimplemented) RenderActions(Renderer, *Actions) (string, error) {
	return "", errors.NewNotImplemented(string(TypeActions))
}

func (Unimplemented) RenderAttack(Renderer, *Attack) (string, error) {
	return "", errors.NewNotImplemented(string(TypeAttack))
}

func (Unimplemented) RenderFlowchart(Renderer, *Flowchart) (string, error) {
	return "", errors.NewNotImplemented(string(TypeFlowchart))
}

func (Unimplemented) RenderFlowBlock(Renderer, *FlowBlock) (string, error) {
	return "", errors.NewNotImplemented(string(TypeFlowBlock))
}

func (Unimplemented) RenderIngredient(Renderer, *Ingredient) (string, error) {
	return "", errors.NewNotImplemented(string(TypeIngredient))
}

func (Unimplemented) RenderDataCreature(Renderer, *DataCreature) (string, error) {
	return "", errors.NewNotImplemented(string(TypeDataCreature))
}

func (Unimplemented) RenderDataSpell(Renderer, *DataSpell) (string, error) {
	return "", errors.NewNotImplemented(string(TypeDataSpell))
}

func (Unimplemented) RenderDataTrapHazard(Renderer, *DataTrapHazard) (string, error) {
	return "", errors.NewNotImplemented(string(TypeDataTrapHazard))
}

func (Unimplemented) RenderDataObject(Renderer, *DataObject) (string, error) {
	return "", errors.NewNotImplemented(string(TypeDataObject))
}

func (Unimplemented) RenderDataItem(Renderer, *DataItem) (string, error) {
	return "", errors.NewNotImplemented(string(TypeDataItem))
}

func (Unimplemented) RenderRefClassFeature(Renderer, *RefClassFeature) (string, error) {
	return "", errors.NewNotImplemented(string(TypeRefClassFeature))
}

func (Unimplemented) RenderRefSubclassFeature(Renderer, *RefSubclassFeature) (string, error) {
	return "", errors.NewNotImplemented(string(TypeRefSubclassFeature))
}

func (Unimplemented) RenderRefOptionalFeature(Renderer, *RefOptionalFeature) (string, error) {
	return "", errors.NewNotImplemented(string(TypeRefOptionalFeature))
}

func (Unimplemented) RenderHr(Renderer, *Hr) (string, error) {
	return "", errors.NewNotImplemented(string(TypeHr))
}

func (Unimplemented) RenderSpellcasting(Renderer, *Spellcasting) (string, error) {
	return "", errors.NewNotImplemented(string(TypeSpellcasting))
}
