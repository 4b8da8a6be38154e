package entry

import (
	"fmt"
)

// Section is a top-level chapter heading.
type Section struct {
	Meta
	Alias   []string `json:"alias,omitzero"`
	Entries []Entry  `json:"entries"`
}

// Entries is a titled or untitled group of child entries. Nesting depth of
// Entries blocks determines heading level in most renderers.
type Entries struct {
	Meta
	Alias   []string `json:"alias,omitzero"`
	Entries []Entry  `json:"entries"`
}

// Homebrew marks content added, replaced or removed by homebrew.
type Homebrew struct {
	Meta
	Entries    []Entry `json:"entries,omitzero"`
	MovedTo    *Entry  `json:"movedTo,omitempty"`
	OldEntries []Entry `json:"oldEntries,omitzero"`
}

type Quote struct {
	Meta
	Entries   []Entry `json:"entries"`
	By        string  `json:"by,omitempty"`
	From      string  `json:"from,omitempty"`
	SkipMarks *bool   `json:"skipMarks,omitempty"`
}

// Inline renders its entries without separators.
type Inline struct {
	Meta
	Entries []Entry `json:"entries"`
}

// InlineBlock is Inline rendered as its own block.
type InlineBlock struct {
	Meta
	Entries []Entry `json:"entries"`
}

// Options lists choices. Count is how many may be chosen as permanent
// features; it is absent for transient choices.
type Options struct {
	Meta
	Count   *int64  `json:"count,omitempty"`
	Style   string  `json:"style,omitempty"`
	Entries []Entry `json:"entries"`
}

// Inset is a sidebar.
type Inset struct {
	Meta
	Entries []Entry `json:"entries"`
	Style   string  `json:"style,omitempty"`
}

// InsetReadaloud is a sidebar meant to be read aloud to players.
type InsetReadaloud struct {
	Meta
	Entries []Entry `json:"entries"`
	Style   string  `json:"style,omitempty"`
}

type VariantSource struct {
	Source string `json:"source"`
	Page   int64  `json:"page"`
}

// Variant is an optional rule or alternate version of surrounding content.
type Variant struct {
	Meta
	Name          string         `json:"name"`
	Entries       []Entry        `json:"entries"`
	VariantSource *VariantSource `json:"variantSource,omitempty"`
}

func (b *Variant) Metadata() Meta { return withName(b.Meta, b.Name) }

type VariantInner struct {
	Meta
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

func (b *VariantInner) Metadata() Meta { return withName(b.Meta, b.Name) }

type VariantSub struct {
	Meta
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

func (b *VariantSub) Metadata() Meta { return withName(b.Meta, b.Name) }

// OptFeature is an optional class feature with an optional prerequisite.
type OptFeature struct {
	Meta
	Name         string  `json:"name"`
	Prerequisite string  `json:"prerequisite,omitempty"`
	Entries      []Entry `json:"entries,omitzero"`
}

func (b *OptFeature) Metadata() Meta { return withName(b.Meta, b.Name) }

// Actions is a named creature action.
type Actions struct {
	Meta
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

func (b *Actions) Metadata() Meta { return withName(b.Meta, b.Name) }

// AttackType is MW (melee weapon) or RW (ranged weapon).
type AttackType string

const (
	AttackMelee  AttackType = "MW"
	AttackRanged AttackType = "RW"
)

type Attack struct {
	Meta
	AttackType    AttackType `json:"attackType"`
	AttackEntries []Entry    `json:"attackEntries"`
	HitEntries    []Entry    `json:"hitEntries"`
}

func (b *Attack) validate() error {
	switch b.AttackType {
	case AttackMelee, AttackRanged:
		return nil
	}
	return fmt.Errorf("attackType %q is not MW or RW", b.AttackType)
}

// Flowchart holds a sequence of block entries, usually FlowBlocks.
type Flowchart struct {
	Meta
	Blocks []Entry `json:"blocks"`
}

func (b *Flowchart) validate() error {
	for i, e := range b.Blocks {
		if e.Form() != FormBlock {
			return fmt.Errorf("blocks[%d] is a %s, want an object", i, e.Form())
		}
	}
	return nil
}

type FlowBlock struct {
	Meta
	Entries []Entry `json:"entries,omitzero"`
}

// Hr is a horizontal rule. It carries no fields.
type Hr struct{}

func (*Hr) Metadata() Meta { return Meta{} }

func withName(m Meta, name string) Meta {
	m.Name = name
	return m
}
