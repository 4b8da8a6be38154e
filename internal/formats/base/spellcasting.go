package base

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/Compendium/core/entry"
)

// Ordinal formats n as "1st", "2nd", "3rd", "4th" and so on.
func Ordinal(n int64) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.FormatInt(n, 10) + suffix
}

// FrequencyLabel labels a per-period spell group keyed like "2" or "1e",
// e.g. "2/day" or "1/day each".
func FrequencyLabel(key, period string) string {
	n, each := strings.CutSuffix(key, "e")
	label := n + "/" + period
	if each {
		label += " each"
	}
	return label
}

// LevelLabel labels a slot level group, e.g. "Cantrips (at will)",
// "3rd level (2 slots)" or "1st-5th level (1 slot)".
func LevelLabel(key string, l entry.SpellLevel) string {
	level, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return key
	}
	if level == 0 {
		return "Cantrips (at will)"
	}
	label := Ordinal(level) + " level"
	if l.Lower != nil && *l.Lower != level {
		label = Ordinal(*l.Lower) + "-" + label
	}
	if l.Slots != nil {
		unit := "slots"
		if *l.Slots == 1 {
			unit = "slot"
		}
		label += fmt.Sprintf(" (%d %s)", *l.Slots, unit)
	}
	return label
}

func (b Entries) spellLine(label string, refs []entry.SpellRef) (string, error) {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Hidden != nil && *ref.Hidden {
			continue
		}
		s, err := b.Text(ref.Entry)
		if err != nil {
			return "", err
		}
		names = append(names, s)
	}
	if len(names) == 0 {
		return "", nil
	}
	return b.Style.Emphasis(label+":") + " " + strings.Join(names, ", "), nil
}

func (b Entries) frequency(lines []string, groups map[string][]entry.SpellRef, period string) ([]string, error) {
	keys := entry.SortedKeys(groups)
	slices.Reverse(keys)
	for _, k := range keys {
		line, err := b.spellLine(FrequencyLabel(k, period), groups[k])
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// SpellLines lists the visible spell groups of e, one line per group:
// constant, at will, per rest, per day, per week, slot levels, rituals.
func (b Entries) SpellLines(e *entry.Spellcasting) ([]string, error) {
	var lines []string
	add := func(prop entry.SpellcastingProperty, label string, refs []entry.SpellRef) error {
		if e.IsHidden(prop) {
			return nil
		}
		line, err := b.spellLine(label, refs)
		lines = append(lines, line)
		return err
	}
	if err := add(entry.PropConstant, "Constant", e.Constant); err != nil {
		return nil, err
	}
	if err := add(entry.PropWill, "At will", e.Will); err != nil {
		return nil, err
	}
	var err error
	for _, g := range []struct {
		prop   entry.SpellcastingProperty
		groups map[string][]entry.SpellRef
		period string
	}{
		{entry.PropRest, e.Rest, "rest"},
		{entry.PropDaily, e.Daily, "day"},
		{entry.PropWeekly, e.Weekly, "week"},
	} {
		if e.IsHidden(g.prop) {
			continue
		}
		if lines, err = b.frequency(lines, g.groups, g.period); err != nil {
			return nil, err
		}
	}
	if !e.IsHidden(entry.PropSpells) {
		for _, k := range entry.SortedKeys(e.Spells) {
			level := e.Spells[k]
			if err := add(entry.PropSpells, LevelLabel(k, level), entry.SpellRefs(level.Spells...)); err != nil {
				return nil, err
			}
		}
	}
	if err := add(entry.PropRitual, "Rituals", e.Ritual); err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return kept, nil
}

func (b Entries) RenderSpellcasting(r entry.Renderer, e *entry.Spellcasting) (string, error) {
	name, err := b.Text(e.Name)
	if err != nil {
		return "", err
	}
	header, err := b.Body(r, e.HeaderEntries)
	if err != nil {
		return "", err
	}
	lines, err := b.SpellLines(e)
	if err != nil {
		return "", err
	}
	footer, err := b.Body(r, e.FooterEntries)
	if err != nil {
		return "", err
	}

	parts := []string{}
	if name != "" {
		parts = append(parts, b.Style.Paragraph(b.Style.Strong(name)))
	}
	parts = append(parts, header...)
	if len(lines) > 0 {
		parts = append(parts, b.Style.List(lines))
	}
	return b.Style.Join(append(parts, footer...)), nil
}
