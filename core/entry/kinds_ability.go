package entry

import (
	"fmt"
)

// Bonus is a signed numeric bonus such as +1.
type Bonus struct {
	Meta
	Value int64 `json:"value"`
}

// BonusSpeed is a speed bonus in feet.
type BonusSpeed struct {
	Meta
	Value int64 `json:"value"`
}

type Dice struct {
	Meta
	ToRoll   []DiceRoll `json:"toRoll,omitzero"`
	Rollable *bool      `json:"rollable,omitempty"`
}

// DiceRoll is one NdF group of a Dice entry.
type DiceRoll struct {
	Number       uint16 `json:"number"`
	Faces        uint16 `json:"faces"`
	Modifier     *int16 `json:"modifier,omitempty"`
	HideModifier *bool  `json:"hideModifier,omitempty"`
}

// String formats the group as "2d6", "2d6+3" or "2d6-1". A hidden modifier
// is left out.
func (d DiceRoll) String() string {
	s := fmt.Sprintf("%dd%d", d.Number, d.Faces)
	if d.Modifier == nil || *d.Modifier == 0 || (d.HideModifier != nil && *d.HideModifier) {
		return s
	}
	return fmt.Sprintf("%s%+d", s, *d.Modifier)
}

// AbilityAttribute names an ability score, or the creature's spellcasting
// ability.
type AbilityAttribute string

const (
	Strength            AbilityAttribute = "str"
	Dexterity           AbilityAttribute = "dex"
	Constitution        AbilityAttribute = "con"
	Intelligence        AbilityAttribute = "int"
	Wisdom              AbilityAttribute = "wis"
	Charisma            AbilityAttribute = "cha"
	SpellcastingAbility AbilityAttribute = "spellcasting"
)

var abilityNames = map[AbilityAttribute]string{
	Strength:            "Strength",
	Dexterity:           "Dexterity",
	Constitution:        "Constitution",
	Intelligence:        "Intelligence",
	Wisdom:              "Wisdom",
	Charisma:            "Charisma",
	SpellcastingAbility: "spellcasting ability",
}

// FullName returns the display name, e.g. "Intelligence".
func (a AbilityAttribute) FullName() string {
	if n, ok := abilityNames[a]; ok {
		return n
	}
	return string(a)
}

// IsAbility reports whether a is one of the six ability scores.
func (a AbilityAttribute) IsAbility() bool {
	_, ok := abilityNames[a]
	return ok && a != SpellcastingAbility
}

func (a *AbilityAttribute) UnmarshalText(text []byte) error {
	v := AbilityAttribute(text)
	if _, ok := abilityNames[v]; !ok {
		return fmt.Errorf("unknown ability attribute %q", text)
	}
	*a = v
	return nil
}

// AbilityDC is a save DC computed from abilities, e.g. "Spell Save DC".
type AbilityDC struct {
	Meta
	Name       string             `json:"name"`
	Attributes []AbilityAttribute `json:"attributes"`
}

func (b *AbilityDC) Metadata() Meta { return withName(b.Meta, b.Name) }

type AbilityAttackMod struct {
	Meta
	Name       string             `json:"name"`
	Attributes []AbilityAttribute `json:"attributes"`
}

func (b *AbilityAttackMod) Metadata() Meta { return withName(b.Meta, b.Name) }

// AbilityGeneric is a free-form ability formula.
type AbilityGeneric struct {
	Meta
	Text       string             `json:"text"`
	Attributes []AbilityAttribute `json:"attributes,omitzero"`
}
