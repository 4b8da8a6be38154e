package entry

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Spellcasting is a creature's spellcasting trait or action.
//
// Spells are grouped by frequency (at will, per rest, per day, per week) or
// by slot level under Spells, keyed "0" through "9". Frequency maps are keyed
// by uses with an optional "e" suffix meaning "each", e.g. "1e".
type Spellcasting struct {
	Meta
	Name          string                 `json:"name"`
	HeaderEntries []Entry                `json:"headerEntries,omitzero"`
	Constant      []SpellRef             `json:"constant,omitzero"`
	Will          []SpellRef             `json:"will,omitzero"`
	Ritual        []SpellRef             `json:"ritual,omitzero"`
	Rest          map[string][]SpellRef  `json:"rest,omitzero"`
	Daily         map[string][]SpellRef  `json:"daily,omitzero"`
	Weekly        map[string][]SpellRef  `json:"weekly,omitzero"`
	Spells        map[string]SpellLevel  `json:"spells,omitzero"`
	Hidden        []SpellcastingProperty `json:"hidden,omitzero"`
	FooterEntries []Entry                `json:"footerEntries,omitzero"`
	Ability       AbilityAttribute       `json:"ability,omitempty"`
	Display       DisplayAs              `json:"displayAs,omitempty"`
}

func (b *Spellcasting) Metadata() Meta { return withName(b.Meta, b.Name) }

// DisplayAs returns where the block is shown, defaulting to DisplayTrait.
func (b *Spellcasting) DisplayAs() DisplayAs {
	if b.Display == "" {
		return DisplayTrait
	}
	return b.Display
}

// IsHidden reports whether p is listed in Hidden.
func (b *Spellcasting) IsHidden(p SpellcastingProperty) bool {
	for _, h := range b.Hidden {
		if h == p {
			return true
		}
	}
	return false
}

type DisplayAs string

const (
	DisplayTrait  DisplayAs = "trait"
	DisplayAction DisplayAs = "action"
)

// SpellcastingProperty names one of the spell groups of a Spellcasting
// block. Listing a property in Hidden keeps it out of rendered output.
type SpellcastingProperty string

const (
	PropConstant SpellcastingProperty = "constant"
	PropWill     SpellcastingProperty = "will"
	PropRest     SpellcastingProperty = "rest"
	PropDaily    SpellcastingProperty = "daily"
	PropWeekly   SpellcastingProperty = "weekly"
	PropRitual   SpellcastingProperty = "ritual"
	PropSpells   SpellcastingProperty = "spells"
)

// SpellLevel lists the spells of one slot level.
type SpellLevel struct {
	Lower  *int64   `json:"lower,omitempty"`
	Slots  *int64   `json:"slots,omitempty"`
	Spells []string `json:"spells"`
}

// SpellRef is a spell in a frequency list: either plain marked-up text, or
// an object with a hidden flag when Hidden is non-nil.
type SpellRef struct {
	Entry  string
	Hidden *bool
}

type spellRefObject struct {
	Entry  string `json:"entry"`
	Hidden bool   `json:"hidden"`
}

func (s SpellRef) MarshalJSON() ([]byte, error) {
	if s.Hidden == nil {
		return json.Marshal(s.Entry)
	}
	return json.Marshal(spellRefObject{Entry: s.Entry, Hidden: *s.Hidden})
}

func (s *SpellRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj spellRefObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*s = SpellRef{Entry: obj.Entry, Hidden: &obj.Hidden}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("spell must be a string or object: %w", err)
	}
	*s = SpellRef{Entry: text}
	return nil
}

// SpellRefs wraps plain spell strings.
func SpellRefs(ss ...string) []SpellRef {
	out := make([]SpellRef, len(ss))
	for i, s := range ss {
		out[i] = SpellRef{Entry: s}
	}
	return out
}
