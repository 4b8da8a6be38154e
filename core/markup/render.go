package markup

import (
	"strings"

	"github.com/FocuswithJustin/Compendium/core/errors"
)

// StringRenderer supplies one hook per tag kind. Hooks receive the Renderer
// driving the current pass and should call r.Render on any argument that may
// contain nested tags, so overrides on the outer hook set stay in effect.
//
// Embed Defaults for the baseline plain-text semantics, or Unimplemented to
// start from nothing.
type StringRenderer interface {
	RenderBold(r Renderer, args []string) (string, error)
	RenderItalic(r Renderer, args []string) (string, error)
	RenderStrikethrough(r Renderer, args []string) (string, error)
	RenderUnderline(r Renderer, args []string) (string, error)
	RenderNote(r Renderer, args []string) (string, error)
	RenderAttack(r Renderer, args []string) (string, error)
	RenderH(r Renderer, args []string) (string, error)
	RenderColor(r Renderer, args []string) (string, error)
	RenderHighlight(r Renderer, args []string) (string, error)
	RenderHelp(r Renderer, args []string) (string, error)
	RenderComic(r Renderer, args []string) (string, error)
	RenderComicH1(r Renderer, args []string) (string, error)
	RenderComicH2(r Renderer, args []string) (string, error)
	RenderComicH3(r Renderer, args []string) (string, error)
	RenderComicH4(r Renderer, args []string) (string, error)
	RenderComicNote(r Renderer, args []string) (string, error)
	RenderDC(r Renderer, args []string) (string, error)
	RenderDice(r Renderer, args []string) (string, error)
	RenderDamage(r Renderer, args []string) (string, error)
	RenderD20(r Renderer, args []string) (string, error)
	RenderHit(r Renderer, args []string) (string, error)
	RenderChance(r Renderer, args []string) (string, error)
	RenderRecharge(r Renderer, args []string) (string, error)
	RenderHitYourSpellAttack(r Renderer, args []string) (string, error)
	RenderScaleDice(r Renderer, args []string) (string, error)
	RenderScaleDamage(r Renderer, args []string) (string, error)
	RenderFilter(r Renderer, args []string) (string, error)
	RenderLink(r Renderer, args []string) (string, error)
	RenderFiveETools(r Renderer, args []string) (string, error)
	RenderFootnote(r Renderer, args []string) (string, error)
	RenderHomebrew(r Renderer, args []string) (string, error)
	RenderSkill(r Renderer, args []string) (string, error)
	RenderSense(r Renderer, args []string) (string, error)
	RenderArea(r Renderer, args []string) (string, error)
	RenderLoader(r Renderer, args []string) (string, error)
	RenderBook(r Renderer, args []string) (string, error)
	RenderAdventure(r Renderer, args []string) (string, error)
	RenderDeity(r Renderer, args []string) (string, error)
	RenderClassFeature(r Renderer, args []string) (string, error)
	RenderSubclassFeature(r Renderer, args []string) (string, error)
	RenderSpell(r Renderer, args []string) (string, error)
	RenderItem(r Renderer, args []string) (string, error)
	RenderClass(r Renderer, args []string) (string, error)
	RenderCreature(r Renderer, args []string) (string, error)
	RenderCondition(r Renderer, args []string) (string, error)
	RenderBackground(r Renderer, args []string) (string, error)
	RenderRace(r Renderer, args []string) (string, error)
	RenderOptionalFeature(r Renderer, args []string) (string, error)
	RenderReward(r Renderer, args []string) (string, error)
	RenderFeat(r Renderer, args []string) (string, error)
	RenderPsionic(r Renderer, args []string) (string, error)
	RenderObject(r Renderer, args []string) (string, error)
	RenderCultBoon(r Renderer, args []string) (string, error)
	RenderTrapHazard(r Renderer, args []string) (string, error)
	RenderVariantRule(r Renderer, args []string) (string, error)
	RenderTable(r Renderer, args []string) (string, error)
	RenderVehicle(r Renderer, args []string) (string, error)
	RenderVehicleUpgrade(r Renderer, args []string) (string, error)
	RenderAction(r Renderer, args []string) (string, error)
	RenderLanguage(r Renderer, args []string) (string, error)
	RenderCharOption(r Renderer, args []string) (string, error)
	RenderRecipe(r Renderer, args []string) (string, error)
}

// DefaultMaxDepth bounds tag nesting when no WithMaxDepth option is given.
const DefaultMaxDepth = 64

// Renderer drives a StringRenderer over marked-up text. It is a small value;
// nested calls work on copies, so one Renderer may be shared between
// goroutines as long as its hooks are.
type Renderer struct {
	hooks    StringRenderer
	depth    int
	maxDepth int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMaxDepth limits how deeply tags may nest before rendering fails with
// an *errors.LimitError. Values below one are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// NewRenderer returns a Renderer dispatching to hooks.
func NewRenderer(hooks StringRenderer, opts ...Option) Renderer {
	r := Renderer{hooks: hooks, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Hooks returns the hook set the renderer dispatches to.
func (r Renderer) Hooks() StringRenderer { return r.hooks }

// Depth reports how many tags enclose the text currently being rendered.
func (r Renderer) Depth() int { return r.depth }

// Render lexes text, passes plain runs through unchanged and dispatches each
// tag to its hook. The first error aborts the render.
func (r Renderer) Render(text string) (string, error) {
	if r.depth >= r.maxDepth {
		return "", errors.NewLimit("markup depth", r.maxDepth)
	}
	inner := r
	inner.depth++

	var sb strings.Builder
	sb.Grow(len(text))
	for lx, err := range Lex(text) {
		if err != nil {
			return "", err
		}
		if lx.Kind == LexemeText {
			sb.WriteString(lx.Text)
			continue
		}
		tag, err := NewTag(lx.Name, lx.Args)
		if err != nil {
			return "", err
		}
		out, err := inner.RenderTag(tag)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

// Render renders text with hooks.
func Render(text string, hooks StringRenderer, opts ...Option) (string, error) {
	return NewRenderer(hooks, opts...).Render(text)
}

// Strip renders text with the default hooks, leaving plain prose suitable
// for search indexes and terminal output.
func Strip(text string) (string, error) {
	return Render(text, Defaults{})
}

// RenderTag calls the hook for tag.Name.
func (r Renderer) RenderTag(tag Tag) (string, error) {
	h, args := r.hooks, tag.Args
	switch tag.Name {
	case Bold:
		return h.RenderBold(r, args)
	case Italic:
		return h.RenderItalic(r, args)
	case Strikethrough:
		return h.RenderStrikethrough(r, args)
	case Underline:
		return h.RenderUnderline(r, args)
	case Note:
		return h.RenderNote(r, args)
	case Attack:
		return h.RenderAttack(r, args)
	case H:
		return h.RenderH(r, args)
	case Color:
		return h.RenderColor(r, args)
	case Highlight:
		return h.RenderHighlight(r, args)
	case Help:
		return h.RenderHelp(r, args)
	case Comic:
		return h.RenderComic(r, args)
	case ComicH1:
		return h.RenderComicH1(r, args)
	case ComicH2:
		return h.RenderComicH2(r, args)
	case ComicH3:
		return h.RenderComicH3(r, args)
	case ComicH4:
		return h.RenderComicH4(r, args)
	case ComicNote:
		return h.RenderComicNote(r, args)
	case DC:
		return h.RenderDC(r, args)
	case Dice:
		return h.RenderDice(r, args)
	case Damage:
		return h.RenderDamage(r, args)
	case D20:
		return h.RenderD20(r, args)
	case Hit:
		return h.RenderHit(r, args)
	case Chance:
		return h.RenderChance(r, args)
	case Recharge:
		return h.RenderRecharge(r, args)
	case HitYourSpellAttack:
		return h.RenderHitYourSpellAttack(r, args)
	case ScaleDice:
		return h.RenderScaleDice(r, args)
	case ScaleDamage:
		return h.RenderScaleDamage(r, args)
	case Filter:
		return h.RenderFilter(r, args)
	case Link:
		return h.RenderLink(r, args)
	case FiveETools:
		return h.RenderFiveETools(r, args)
	case Footnote:
		return h.RenderFootnote(r, args)
	case Homebrew:
		return h.RenderHomebrew(r, args)
	case Skill:
		return h.RenderSkill(r, args)
	case Sense:
		return h.RenderSense(r, args)
	case Area:
		return h.RenderArea(r, args)
	case Loader:
		return h.RenderLoader(r, args)
	case Book:
		return h.RenderBook(r, args)
	case Adventure:
		return h.RenderAdventure(r, args)
	case Deity:
		return h.RenderDeity(r, args)
	case ClassFeature:
		return h.RenderClassFeature(r, args)
	case SubclassFeature:
		return h.RenderSubclassFeature(r, args)
	case Spell:
		return h.RenderSpell(r, args)
	case Item:
		return h.RenderItem(r, args)
	case Class:
		return h.RenderClass(r, args)
	case Creature:
		return h.RenderCreature(r, args)
	case ConditionDiseaseStatus:
		return h.RenderCondition(r, args)
	case Background:
		return h.RenderBackground(r, args)
	case Race:
		return h.RenderRace(r, args)
	case OptionalFeature:
		return h.RenderOptionalFeature(r, args)
	case Reward:
		return h.RenderReward(r, args)
	case Feat:
		return h.RenderFeat(r, args)
	case Psionic:
		return h.RenderPsionic(r, args)
	case Object:
		return h.RenderObject(r, args)
	case CultBoon:
		return h.RenderCultBoon(r, args)
	case TrapHazard:
		return h.RenderTrapHazard(r, args)
	case VariantRule:
		return h.RenderVariantRule(r, args)
	case Table:
		return h.RenderTable(r, args)
	case Vehicle:
		return h.RenderVehicle(r, args)
	case VehicleUpgrade:
		return h.RenderVehicleUpgrade(r, args)
	case Action:
		return h.RenderAction(r, args)
	case Language:
		return h.RenderLanguage(r, args)
	case CharOption:
		return h.RenderCharOption(r, args)
	case Recipe:
		return h.RenderRecipe(r, args)
	}
	return "", &TagError{Name: tag.Name.String()}
}

// Unimplemented is a StringRenderer whose every hook fails with
// *errors.NotImplementedError. Embed it to get compile-time coverage of new
// tag kinds while only overriding the hooks a format cares about.
type Unimplemented struct{}

var _ StringRenderer = Unimplemented{}

func notImplemented(method string) (string, error) {
	return "", errors.NewNotImplemented(method)
}

func (Unimplemented) RenderBold(Renderer, []string) (string, error) {
	return notImplemented("RenderBold")
}

func (Unimplemented) RenderItalic(Renderer, []string) (string, error) {
	return notImplemented("RenderItalic")
}

func (Unimplemented) RenderStrikethrough(Renderer, []string) (string, error) {
	return notImplemented("RenderStrikethrough")
}

func (Unimplemented) RenderUnderline(Renderer, []string) (string, error) {
	return notImplemented("RenderUnderline")
}

func (Unimplemented) RenderNote(Renderer, []string) (string, error) {
	return notImplemented("RenderNote")
}

func (Unimplemented) RenderAttack(Renderer, []string) (string, error) {
	return notImplemented("RenderAttack")
}

func (Unimplemented) RenderH(Renderer, []string) (string, error) {
	return notImplemented("RenderH")
}

func (Unimplemented) RenderColor(Renderer, []string) (string, error) {
	return notImplemented("RenderColor")
}

func (Unimplemented) RenderHighlight(Renderer, []string) (string, error) {
	return notImplemented("RenderHighlight")
}

func (Unimplemented) RenderHelp(Renderer, []string) (string, error) {
	return notImplemented("RenderHelp")
}

func (Unimplemented) RenderComic(Renderer, []string) (string, error) {
	return notImplemented("RenderComic")
}

func (Unimplemented) RenderComicH1(Renderer, []string) (string, error) {
	return notImplemented("RenderComicH1")
}

func (Unimplemented) RenderComicH2(Renderer, []string) (string, error) {
	return notImplemented("RenderComicH2")
}

func (Unimplemented) RenderComicH3(Renderer, []string) (string, error) {
	return notImplemented("RenderComicH3")
}

func (Unimplemented) RenderComicH4(Renderer, []string) (string, error) {
	return notImplemented("RenderComicH4")
}

func (Unimplemented) RenderComicNote(Renderer, []string) (string, error) {
	return notImplemented("RenderComicNote")
}

func (Unimplemented) RenderDC(Renderer, []string) (string, error) {
	return notImplemented("RenderDC")
}

func (Unimplemented) RenderDice(Renderer, []string) (string, error) {
	return notImplemented("RenderDice")
}

func (Unimplemented) RenderDamage(Renderer, []string) (string, error) {
	return notImplemented("RenderDamage")
}

func (Unimplemented) RenderD20(Renderer, []string) (string, error) {
	return notImplemented("RenderD20")
}

func (Unimplemented) RenderHit(Renderer, []string) (string, error) {
	return notImplemented("RenderHit")
}

func (Unimplemented) RenderChance(Renderer, []string) (string, error) {
	return notImplemented("RenderChance")
}

func (Unimplemented) RenderRecharge(Renderer, []string) (string, error) {
	return notImplemented("RenderRecharge")
}

func (Unimplemented) RenderHitYourSpellAttack(Renderer, []string) (string, error) {
	return notImplemented("RenderHitYourSpellAttack")
}

func (Unimplemented) RenderScaleDice(Renderer, []string) (string, error) {
	return notImplemented("RenderScaleDice")
}

func (Unimplemented) RenderScaleDamage(Renderer, []string) (string, error) {
	return notImplemented("RenderScaleDamage")
}

func (Unimplemented) RenderFilter(Renderer, []string) (string, error) {
	return notImplemented("RenderFilter")
}

func (Unimplemented) RenderLink(Renderer, []string) (string, error) {
	return notImplemented("RenderLink")
}

func (Unimplemented) RenderFiveETools(Renderer, []string) (string, error) {
	return notImplemented("RenderFiveETools")
}

func (Unimplemented) RenderFootnote(Renderer, []string) (string, error) {
	return notImplemented("RenderFootnote")
}

func (Unimplemented) RenderHomebrew(Renderer, []string) (string, error) {
	return notImplemented("RenderHomebrew")
}

func (Unimplemented) RenderSkill(Renderer, []string) (string, error) {
	return notImplemented("RenderSkill")
}

func (Unimplemented) RenderSense(Renderer, []string) (string, error) {
	return notImplemented("RenderSense")
}

func (Unimplemented) RenderArea(Renderer, []string) (string, error) {
	return notImplemented("RenderArea")
}

func (Unimplemented) RenderLoader(Renderer, []string) (string, error) {
	return notImplemented("RenderLoader")
}

func (Unimplemented) RenderBook(Renderer, []string) (string, error) {
	return notImplemented("RenderBook")
}

func (Unimplemented) RenderAdventure(Renderer, []string) (string, error) {
	return notImplemented("RenderAdventure")
}

func (Unimplemented) RenderDeity(Renderer, []string) (string, error) {
	return notImplemented("RenderDeity")
}

func (Unimplemented) RenderClassFeature(Renderer, []string) (string, error) {
	return notImplemented("RenderClassFeature")
}

func (Unimplemented) RenderSubclassFeature(Renderer, []string) (string, error) {
	return notImplemented("RenderSubclassFeature")
}

func (Unimplemented) RenderSpell(Renderer, []string) (string, error) {
	return notImplemented("RenderSpell")
}

func (Unimplemented) RenderItem(Renderer, []string) (string, error) {
	return notImplemented("RenderItem")
}

func (Unimplemented) RenderClass(Renderer, []string) (string, error) {
	return notImplemented("RenderClass")
}

func (Unimplemented) RenderCreature(Renderer, []string) (string, error) {
	return notImplemented("RenderCreature")
}

func (Unimplemented) RenderCondition(Renderer, []string) (string, error) {
	return notImplemented("RenderCondition")
}

func (Unimplemented) RenderBackground(Renderer, []string) (string, error) {
	return notImplemented("RenderBackground")
}

func (Unimplemented) RenderRace(Renderer, []string) (string, error) {
	return notImplemented("RenderRace")
}

func (Unimplemented) RenderOptionalFeature(Renderer, []string) (string, error) {
	return notImplemented("RenderOptionalFeature")
}

func (Unimplemented) RenderReward(Renderer, []string) (string, error) {
	return notImplemented("RenderReward")
}

func (Unimplemented) RenderFeat(Renderer, []string) (string, error) {
	return notImplemented("RenderFeat")
}

func (Unimplemented) RenderPsionic(Renderer, []string) (string, error) {
	return notImplemented("RenderPsionic")
}

func (Unimplemented) RenderObject(Renderer, []string) (string, error) {
	return notImplemented("RenderObject")
}

func (Unimplemented) RenderCultBoon(Renderer, []string) (string, error) {
	return notImplemented("RenderCultBoon")
}

func (Unimplemented) RenderTrapHazard(Renderer, []string) (string, error) {
	return notImplemented("RenderTrapHazard")
}

func (Unimplemented) RenderVariantRule(Renderer, []string) (string, error) {
	return notImplemented("RenderVariantRule")
}

func (Unimplemented) RenderTable(Renderer, []string) (string, error) {
	return notImplemented("RenderTable")
}

func (Unimplemented) RenderVehicle(Renderer, []string) (string, error) {
	return notImplemented("RenderVehicle")
}

func (Unimplemented) RenderVehicleUpgrade(Renderer, []string) (string, error) {
	return notImplemented("RenderVehicleUpgrade")
}

func (Unimplemented) RenderAction(Renderer, []string) (string, error) {
	return notImplemented("RenderAction")
}

func (Unimplemented) RenderLanguage(Renderer, []string) (string, error) {
	return notImplemented("RenderLanguage")
}

func (Unimplemented) RenderCharOption(Renderer, []string) (string, error) {
	return notImplemented("RenderCharOption")
}

func (Unimplemented) RenderRecipe(Renderer, []string) (string, error) {
	return notImplemented("RenderRecipe")
}
