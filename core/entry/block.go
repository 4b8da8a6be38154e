package entry

import (
	"sort"
)

// BlockType is the JSON "type" discriminant of a block.
type BlockType string

const (
	TypeSection            BlockType = "section"
	TypeEntries            BlockType = "entries"
	TypeHomebrew           BlockType = "homebrew"
	TypeQuote              BlockType = "quote"
	TypeInline             BlockType = "inline"
	TypeInlineBlock        BlockType = "inlineBlock"
	TypeOptions            BlockType = "options"
	TypeTable              BlockType = "table"
	TypeTableGroup         BlockType = "tableGroup"
	TypeTableRow           BlockType = "row"
	TypeTableCell          BlockType = "cell"
	TypeList               BlockType = "list"
	TypeBonus              BlockType = "bonus"
	TypeBonusSpeed         BlockType = "bonusSpeed"
	TypeDice               BlockType = "dice"
	TypeAbilityDC          BlockType = "abilityDc"
	TypeAbilityAttackMod   BlockType = "abilityAttackMod"
	TypeAbilityGeneric     BlockType = "abilityGeneric"
	TypeLink               BlockType = "link"
	TypeOptFeature         BlockType = "optfeature"
	TypeInset              BlockType = "inset"
	TypeInsetReadaloud     BlockType = "insetReadaloud"
	TypeVariant            BlockType = "variant"
	TypeVariantInner       BlockType = "variantInner"
	TypeVariantSub         BlockType = "variantSub"
	TypeItem               BlockType = "item"
	TypeItemSub            BlockType = "itemSub"
	TypeItemSpell          BlockType = "itemSpell"
	TypeImage              BlockType = "image"
	TypeGallery            BlockType = "gallery"
	TypeActions            BlockType = "actions"
	TypeAttack             BlockType = "attack"
	TypeFlowchart          BlockType = "flowchart"
	TypeFlowBlock          BlockType = "flowBlock"
	TypeIngredient         BlockType = "ingredient"
	TypeDataCreature       BlockType = "dataCreature"
	TypeDataSpell          BlockType = "dataSpell"
	TypeDataTrapHazard     BlockType = "dataTrapHazard"
	TypeDataObject         BlockType = "dataObject"
	TypeDataItem           BlockType = "dataItem"
	TypeRefClassFeature    BlockType = "refClassFeature"
	TypeRefSubclassFeature BlockType = "refSubclassFeature"
	TypeRefOptionalFeature BlockType = "refOptionalfeature"
	TypeHr                 BlockType = "hr"
	TypeSpellcasting       BlockType = "spellcasting"
)

// Block is one of the closed set of structured entry kinds. The set is
// sealed: only types in this package implement it.
type Block interface {
	// Type returns the JSON discriminant.
	Type() BlockType
	// Metadata returns the common name/source/page fields. Reference kinds
	// and Hr carry none.
	Metadata() Meta

	accept(r Renderer) (string, error)
}

var blockFactories = map[BlockType]func() Block{
	TypeSection:            func() Block { return new(Section) },
	TypeEntries:            func() Block { return new(Entries) },
	TypeHomebrew:           func() Block { return new(Homebrew) },
	TypeQuote:              func() Block { return new(Quote) },
	TypeInline:             func() Block { return new(Inline) },
	TypeInlineBlock:        func() Block { return new(InlineBlock) },
	TypeOptions:            func() Block { return new(Options) },
	TypeTable:              func() Block { return new(Table) },
	TypeTableGroup:         func() Block { return new(TableGroup) },
	TypeTableRow:           func() Block { return new(TableRow) },
	TypeTableCell:          func() Block { return new(TableCell) },
	TypeList:               func() Block { return new(List) },
	TypeBonus:              func() Block { return new(Bonus) },
	TypeBonusSpeed:         func() Block { return new(BonusSpeed) },
	TypeDice:               func() Block { return new(Dice) },
	TypeAbilityDC:          func() Block { return new(AbilityDC) },
	TypeAbilityAttackMod:   func() Block { return new(AbilityAttackMod) },
	TypeAbilityGeneric:     func() Block { return new(AbilityGeneric) },
	TypeLink:               func() Block { return new(Link) },
	TypeOptFeature:         func() Block { return new(OptFeature) },
	TypeInset:              func() Block { return new(Inset) },
	TypeInsetReadaloud:     func() Block { return new(InsetReadaloud) },
	TypeVariant:            func() Block { return new(Variant) },
	TypeVariantInner:       func() Block { return new(VariantInner) },
	TypeVariantSub:         func() Block { return new(VariantSub) },
	TypeItem:               func() Block { return new(Item) },
	TypeItemSub:            func() Block { return new(ItemSub) },
	TypeItemSpell:          func() Block { return new(ItemSpell) },
	TypeImage:              func() Block { return new(Image) },
	TypeGallery:            func() Block { return new(Gallery) },
	TypeActions:            func() Block { return new(Actions) },
	TypeAttack:             func() Block { return new(Attack) },
	TypeFlowchart:          func() Block { return new(Flowchart) },
	TypeFlowBlock:          func() Block { return new(FlowBlock) },
	TypeIngredient:         func() Block { return new(Ingredient) },
	TypeDataCreature:       func() Block { return new(DataCreature) },
	TypeDataSpell:          func() Block { return new(DataSpell) },
	TypeDataTrapHazard:     func() Block { return new(DataTrapHazard) },
	TypeDataObject:         func() Block { return new(DataObject) },
	TypeDataItem:           func() Block { return new(DataItem) },
	TypeRefClassFeature:    func() Block { return new(RefClassFeature) },
	TypeRefSubclassFeature: func() Block { return new(RefSubclassFeature) },
	TypeRefOptionalFeature: func() Block { return new(RefOptionalFeature) },
	TypeHr:                 func() Block { return new(Hr) },
	TypeSpellcasting:       func() Block { return new(Spellcasting) },
}

// BlockTypes returns every block discriminant in sorted order.
func BlockTypes() []BlockType {
	out := make([]BlockType, 0, len(blockFactories))
	for t := range blockFactories {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Known reports whether t names a block kind.
func (t BlockType) Known() bool {
	_, ok := blockFactories[t]
	return ok
}

func (*Section) Type() BlockType { return TypeSection }
func (*Entries) Type() BlockType { return TypeEntries }
func (*Homebrew) Type() BlockType { return TypeHomebrew }
func (*Quote) Type() BlockType { return TypeQuote }
func (*Inline) Type() BlockType { return TypeInline }
func (*InlineBlock) Type() BlockType { return TypeInlineBlock }
func (*Options) Type() BlockType { return TypeOptions }
func (*Table) Type() BlockType { return TypeTable }
func (*TableGroup) Type() BlockType { return TypeTableGroup }
func (*TableRow) Type() BlockType { return TypeTableRow }
func (*TableCell) Type() BlockType { return TypeTableCell }
func (*List) Type() BlockType { return TypeList }
func (*Bonus) Type() BlockType { return TypeBonus }
func (*BonusSpeed) Type() BlockType { return TypeBonusSpeed }
func (*Dice) Type() BlockType { return TypeDice }
func (*AbilityDC) Type() BlockType { return TypeAbilityDC }
func (*AbilityAttackMod) Type() BlockType { return TypeAbilityAttackMod }
func (*AbilityGeneric) Type() BlockType { return TypeAbilityGeneric }
func (*Link) Type() BlockType { return TypeLink }
func (*OptFeature) Type() BlockType { return TypeOptFeature }
func (*Inset) Type() BlockType { return TypeInset }
func (*InsetReadaloud) Type() BlockType { return TypeInsetReadaloud }
func (*Variant) Type() BlockType { return TypeVariant }
func (*VariantInner) Type() BlockType { return TypeVariantInner }
func (*VariantSub) Type() BlockType { return TypeVariantSub }
func (*Item) Type() BlockType { return TypeItem }
func (*ItemSub) Type() BlockType { return TypeItemSub }
func (*ItemSpell) Type() BlockType { return TypeItemSpell }
func (*Image) Type() BlockType { return TypeImage }
func (*Gallery) Type() BlockType { return TypeGallery }
func (*Actions) Type() BlockType { return TypeActions }
func (*Attack) Type() BlockType { return TypeAttack }
func (*Flowchart) Type() BlockType { return TypeFlowchart }
func (*FlowBlock) Type() BlockType { return TypeFlowBlock }
func (*Ingredient) Type() BlockType { return TypeIngredient }
func (*DataCreature) Type() BlockType { return TypeDataCreature }
func (*DataSpell) Type() BlockType { return TypeDataSpell }
func (*DataTrapHazard) Type() BlockType { return TypeDataTrapHazard }
func (*DataObject) Type() BlockType { return TypeDataObject }
func (*DataItem) Type() BlockType { return TypeDataItem }
func (*RefClassFeature) Type() BlockType { return TypeRefClassFeature }
func (*RefSubclassFeature) Type() BlockType { return TypeRefSubclassFeature }
func (*RefOptionalFeature) Type() BlockType { return TypeRefOptionalFeature }
func (*Hr) Type() BlockType { return TypeHr }
func (*Spellcasting) Type() BlockType { return TypeSpellcasting }
