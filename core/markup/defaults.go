package markup

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults renders every tag to plain text: formatting is dropped and
// references collapse to their display text.
//
// Embed Defaults in a struct and override the hooks a format needs. Because
// nested arguments are rendered through the driving Renderer, an overridden
// RenderItalic is honoured inside the default RenderBold.
type Defaults struct {
	Unimplemented
}

var _ StringRenderer = Defaults{}

// first renders the first argument.
func first(r Renderer, args []string) (string, error) {
	if err := CheckArgCount(AtLeast(1), args); err != nil {
		return "", err
	}
	return r.Render(args[0])
}

// nthOrFirst renders the nth argument (1-based) when present, otherwise the
// first. Reference tags put their display text in a late position.
func nthOrFirst(r Renderer, args []string, n int) (string, error) {
	if err := CheckArgCount(AtLeast(1), args); err != nil {
		return "", err
	}
	if len(args) >= n {
		return r.Render(args[n-1])
	}
	return r.Render(args[0])
}

func (Defaults) RenderBold(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderItalic(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderStrikethrough(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderUnderline(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderNote(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderColor(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderHighlight(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderHelp(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderComic(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderComicH1(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderComicH2(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderComicH3(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderComicH4(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderComicNote(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderScaleDice(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderScaleDamage(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderFilter(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderLink(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderFiveETools(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderFootnote(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderSkill(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderSense(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderLoader(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderBook(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderAdventure(r Renderer, args []string) (string, error) {
	return first(r, args)
}

func (Defaults) RenderSpell(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderItem(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderClass(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderCreature(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderCondition(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderBackground(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderRace(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderOptionalFeature(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderReward(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderFeat(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderPsionic(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderObject(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderCultBoon(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderTrapHazard(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderVariantRule(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderTable(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderVehicle(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderVehicleUpgrade(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderAction(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderLanguage(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderCharOption(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderRecipe(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 3)
}

func (Defaults) RenderDeity(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 4)
}

func (Defaults) RenderClassFeature(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 6)
}

func (Defaults) RenderSubclassFeature(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 8)
}

// RenderDice renders the display text when given, otherwise the expression.
func (Defaults) RenderDice(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 2)
}

func (Defaults) RenderDamage(r Renderer, args []string) (string, error) {
	return nthOrFirst(r, args, 2)
}

func (Defaults) RenderH(Renderer, []string) (string, error) {
	return "Hit: ", nil
}

func (Defaults) RenderHitYourSpellAttack(Renderer, []string) (string, error) {
	return "your spell attack modifier", nil
}

func (Defaults) RenderDC(r Renderer, args []string) (string, error) {
	text, err := first(r, args)
	if err != nil {
		return "", err
	}
	return "DC " + text, nil
}

func (Defaults) RenderD20(r Renderer, args []string) (string, error) {
	return hitBonus(r, args)
}

func (Defaults) RenderHit(r Renderer, args []string) (string, error) {
	return hitBonus(r, args)
}

// hitBonus renders display text when given, otherwise a signed modifier.
func hitBonus(r Renderer, args []string) (string, error) {
	if err := CheckArgCount(AtLeast(1), args); err != nil {
		return "", err
	}
	if len(args) >= 2 {
		return r.Render(args[1])
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return "", &ArgFormatError{Message: "Could not parse argument as an integer."}
	}
	return fmt.Sprintf("%+d", n), nil
}

// RenderChance appends a percent sign to the raw chance unless display text
// is given.
func (Defaults) RenderChance(r Renderer, args []string) (string, error) {
	if err := CheckArgCount(AtLeast(1), args); err != nil {
		return "", err
	}
	if len(args) >= 2 {
		return r.Render(args[1])
	}
	return args[0] + "%", nil
}

// RenderRecharge renders the recharge roll, which defaults to 6.
func (Defaults) RenderRecharge(_ Renderer, args []string) (string, error) {
	if err := CheckArgCount(Between(0, 1), args); err != nil {
		return "", err
	}
	n := uint64(6)
	if len(args) == 1 {
		var err error
		if n, err = strconv.ParseUint(strings.TrimPrefix(args[0], "+"), 10, 8); err != nil {
			return "", &ArgFormatError{Message: "Could not parse argument as an integer."}
		}
	}
	if n == 6 {
		return "(Recharge 6)", nil
	}
	return fmt.Sprintf("(Recharge %d-6)", n), nil
}

// RenderHomebrew describes an addition, replacement or removal made by
// homebrew content. The first argument is the new text, the second the old.
func (Defaults) RenderHomebrew(r Renderer, args []string) (string, error) {
	if err := CheckArgCount(Between(1, 2), args); err != nil {
		return "", err
	}
	newText, err := r.Render(args[0])
	if err != nil {
		return "", err
	}
	var oldText string
	if len(args) == 2 {
		if oldText, err = r.Render(args[1]); err != nil {
			return "", err
		}
	}

	switch {
	case newText == "" && oldText == "":
		return "", &ArgFormatError{Message: "Homebrew tag had neither old nor new text."}
	case oldText == "":
		return newText + " [this is a homebrew addition]", nil
	case newText == "":
		return "[the following text has been removed as part of a homebrew: " + oldText + "]", nil
	default:
		return newText + " [this is a homebrew addition, replacing the following: " + oldText + "]", nil
	}
}

// RenderArea renders an area reference. The third argument holds flags:
// x for the compact form, u for a capitalised prefix.
func (Defaults) RenderArea(r Renderer, args []string) (string, error) {
	compact, err := first(r, args)
	if err != nil {
		return "", err
	}
	var flags string
	if len(args) > 2 {
		flags = args[2]
	}
	switch {
	case strings.ContainsRune(flags, 'x'):
		return compact, nil
	case strings.ContainsRune(flags, 'u'):
		return "Area " + compact, nil
	default:
		return "area " + compact, nil
	}
}

var (
	attackModes = []struct {
		code  rune
		label string
	}{{'m', "Melee "}, {'r', "Ranged "}, {'g', "Magical "}, {'a', "Area "}}
	attackKinds = []struct {
		code  rune
		label string
	}{{'w', "Weapon "}, {'s', "Spell "}}
)

// RenderAttack expands attack codes such as "mw,rs" into
// "Melee Weapon or Ranged Spell Attack". Letters shared between groups are
// kept only in the last group that uses them, so "ms,rs" reads
// "Melee or Ranged Spell Attack".
func (Defaults) RenderAttack(_ Renderer, args []string) (string, error) {
	if err := CheckArgCount(Exactly(1), args); err != nil {
		return "", err
	}

	var groups []string
	for _, g := range strings.Split(strings.ToLower(args[0]), ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}

	if len(groups) > 1 {
		seen := make(map[rune]bool)
		for i := len(groups) - 1; i >= 0; i-- {
			var sb strings.Builder
			for _, c := range groups[i] {
				if !seen[c] {
					seen[c] = true
					sb.WriteRune(c)
				}
			}
			groups[i] = sb.String()
		}
	}

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		var sb strings.Builder
		for _, m := range attackModes {
			if strings.ContainsRune(g, m.code) {
				sb.WriteString(m.label)
				break
			}
		}
		for _, k := range attackKinds {
			if strings.ContainsRune(g, k.code) {
				sb.WriteString(k.label)
				break
			}
		}
		if sb.Len() > 0 {
			parts = append(parts, sb.String())
		}
	}
	return strings.Join(parts, "or ") + "Attack", nil
}
