package entry

import (
	"github.com/FocuswithJustin/Compendium/core/errors"
)

// SkipChildren may be returned by a WalkFunc to skip the children of the
// current entry.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for each entry with its depth, starting at 0.
type WalkFunc func(e Entry, depth int) error

// Walk visits e and its descendants depth first, in document order. Trees
// deeper than DefaultMaxDepth fail with *errors.LimitError.
func Walk(e Entry, fn WalkFunc) error {
	return walk(e, 0, fn)
}

func walk(e Entry, depth int, fn WalkFunc) error {
	if depth >= DefaultMaxDepth {
		return errors.NewLimit("entry depth", DefaultMaxDepth)
	}
	if err := fn(e, depth); err != nil {
		if err == SkipChildren {
			return nil
		}
		return err
	}
	b, ok := e.Block()
	if !ok || b == nil {
		return nil
	}
	for _, c := range Children(b) {
		if err := walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the nested entries of b in document order. Table cells
// and single boxed entries are included; opaque payloads are not.
func Children(b Block) []Entry {
	switch b := b.(type) {
	case *Section:
		return b.Entries
	case *Entries:
		return b.Entries
	case *Homebrew:
		out := append([]Entry(nil), b.Entries...)
		if b.MovedTo != nil {
			out = append(out, *b.MovedTo)
		}
		return append(out, b.OldEntries...)
	case *Quote:
		return b.Entries
	case *Inline:
		return b.Entries
	case *InlineBlock:
		return b.Entries
	case *Options:
		return b.Entries
	case *Table:
		out := append([]Entry(nil), b.Intro...)
		for _, row := range b.Rows {
			if row.Row != nil {
				out = append(out, *row.Row)
			} else {
				out = append(out, row.Cells...)
			}
		}
		out = append(out, b.Outro...)
		return append(out, b.Footnotes...)
	case *TableGroup:
		return b.Tables
	case *TableRow:
		return b.Row
	case *TableCell:
		return optional(b.Entry)
	case *List:
		return b.Items
	case *OptFeature:
		return b.Entries
	case *Inset:
		return b.Entries
	case *InsetReadaloud:
		return b.Entries
	case *Variant:
		return b.Entries
	case *VariantInner:
		return b.Entries
	case *VariantSub:
		return b.Entries
	case *Item:
		return b.Body()
	case *ItemSub:
		return optional(b.Entry)
	case *ItemSpell:
		return optional(b.Entry)
	case *Actions:
		return b.Entries
	case *Attack:
		return append(append([]Entry(nil), b.AttackEntries...), b.HitEntries...)
	case *Flowchart:
		return b.Blocks
	case *FlowBlock:
		return b.Entries
	case *Ingredient:
		return optional(b.Entry)
	case *Spellcasting:
		return append(append([]Entry(nil), b.HeaderEntries...), b.FooterEntries...)
	}
	return nil
}

func optional(e *Entry) []Entry {
	if e == nil {
		return nil
	}
	return []Entry{*e}
}
