package script

import "github.com/FocuswithJustin/Compendium/core/markup"

// Each hook runs the script's function for its tag when one is defined and
// falls back to the plain text rendering otherwise.

func (t Tags) RenderBold(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Bold, r, args, t.Tags.RenderBold)
}

func (t Tags) RenderItalic(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Italic, r, args, t.Tags.RenderItalic)
}

func (t Tags) RenderStrikethrough(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Strikethrough, r, args, t.Tags.RenderStrikethrough)
}

func (t Tags) RenderUnderline(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Underline, r, args, t.Tags.RenderUnderline)
}

func (t Tags) RenderNote(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Note, r, args, t.Tags.RenderNote)
}

func (t Tags) RenderAttack(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Attack, r, args, t.Tags.RenderAttack)
}

func (t Tags) RenderH(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.H, r, args, t.Tags.RenderH)
}

func (t Tags) RenderColor(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Color, r, args, t.Tags.RenderColor)
}

func (t Tags) RenderHighlight(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Highlight, r, args, t.Tags.RenderHighlight)
}

func (t Tags) RenderHelp(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Help, r, args, t.Tags.RenderHelp)
}

func (t Tags) RenderComic(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Comic, r, args, t.Tags.RenderComic)
}

func (t Tags) RenderComicH1(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.ComicH1, r, args, t.Tags.RenderComicH1)
}

func (t Tags) RenderComicH2(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.ComicH2, r, args, t.Tags.RenderComicH2)
}

func (t Tags) RenderComicH3(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.ComicH3, r, args, t.Tags.RenderComicH3)
}

func (t Tags) RenderComicH4(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.ComicH4, r, args, t.Tags.RenderComicH4)
}

func (t Tags) RenderComicNote(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.ComicNote, r, args, t.Tags.RenderComicNote)
}

func (t Tags) RenderDC(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.DC, r, args, t.Tags.RenderDC)
}

func (t Tags) RenderDice(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Dice, r, args, t.Tags.RenderDice)
}

func (t Tags) RenderDamage(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Damage, r, args, t.Tags.RenderDamage)
}

func (t Tags) RenderD20(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.D20, r, args, t.Tags.RenderD20)
}

func (t Tags) RenderHit(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Hit, r, args, t.Tags.RenderHit)
}

func (t Tags) RenderChance(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Chance, r, args, t.Tags.RenderChance)
}

func (t Tags) RenderRecharge(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Recharge, r, args, t.Tags.RenderRecharge)
}

func (t Tags) RenderHitYourSpellAttack(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.HitYourSpellAttack, r, args, t.Tags.RenderHitYourSpellAttack)
}

func (t Tags) RenderScaleDice(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.ScaleDice, r, args, t.Tags.RenderScaleDice)
}

func (t Tags) RenderScaleDamage(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.ScaleDamage, r, args, t.Tags.RenderScaleDamage)
}

func (t Tags) RenderFilter(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Filter, r, args, t.Tags.RenderFilter)
}

func (t Tags) RenderLink(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Link, r, args, t.Tags.RenderLink)
}

func (t Tags) RenderFiveETools(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.FiveETools, r, args, t.Tags.RenderFiveETools)
}

func (t Tags) RenderFootnote(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Footnote, r, args, t.Tags.RenderFootnote)
}

func (t Tags) RenderHomebrew(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Homebrew, r, args, t.Tags.RenderHomebrew)
}

func (t Tags) RenderSkill(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Skill, r, args, t.Tags.RenderSkill)
}

func (t Tags) RenderSense(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Sense, r, args, t.Tags.RenderSense)
}

func (t Tags) RenderArea(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Area, r, args, t.Tags.RenderArea)
}

func (t Tags) RenderLoader(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Loader, r, args, t.Tags.RenderLoader)
}

func (t Tags) RenderBook(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Book, r, args, t.Tags.RenderBook)
}

func (t Tags) RenderAdventure(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Adventure, r, args, t.Tags.RenderAdventure)
}

func (t Tags) RenderDeity(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Deity, r, args, t.Tags.RenderDeity)
}

func (t Tags) RenderClassFeature(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.ClassFeature, r, args, t.Tags.RenderClassFeature)
}

func (t Tags) RenderSubclassFeature(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.SubclassFeature, r, args, t.Tags.RenderSubclassFeature)
}

func (t Tags) RenderSpell(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Spell, r, args, t.Tags.RenderSpell)
}

func (t Tags) RenderItem(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Item, r, args, t.Tags.RenderItem)
}

func (t Tags) RenderClass(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Class, r, args, t.Tags.RenderClass)
}

func (t Tags) RenderCreature(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Creature, r, args, t.Tags.RenderCreature)
}

func (t Tags) RenderCondition(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.ConditionDiseaseStatus, r, args, t.Tags.RenderCondition)
}

func (t Tags) RenderBackground(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Background, r, args, t.Tags.RenderBackground)
}

func (t Tags) RenderRace(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Race, r, args, t.Tags.RenderRace)
}

func (t Tags) RenderOptionalFeature(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.OptionalFeature, r, args, t.Tags.RenderOptionalFeature)
}

func (t Tags) RenderReward(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Reward, r, args, t.Tags.RenderReward)
}

func (t Tags) RenderFeat(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Feat, r, args, t.Tags.RenderFeat)
}

func (t Tags) RenderPsionic(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Psionic, r, args, t.Tags.RenderPsionic)
}

func (t Tags) RenderObject(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Object, r, args, t.Tags.RenderObject)
}

func (t Tags) RenderCultBoon(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.CultBoon, r, args, t.Tags.RenderCultBoon)
}

func (t Tags) RenderTrapHazard(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.TrapHazard, r, args, t.Tags.RenderTrapHazard)
}

func (t Tags) RenderVariantRule(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.VariantRule, r, args, t.Tags.RenderVariantRule)
}

func (t Tags) RenderTable(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Table, r, args, t.Tags.RenderTable)
}

func (t Tags) RenderVehicle(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Vehicle, r, args, t.Tags.RenderVehicle)
}

func (t Tags) RenderVehicleUpgrade(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.VehicleUpgrade, r, args, t.Tags.RenderVehicleUpgrade)
}

func (t Tags) RenderAction(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Action, r, args, t.Tags.RenderAction)
}

func (t Tags) RenderLanguage(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Language, r, args, t.Tags.RenderLanguage)
}

func (t Tags) RenderCharOption(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.CharOption, r, args, t.Tags.RenderCharOption)
}

func (t Tags) RenderRecipe(r markup.Renderer, args []string) (string, error) {
	return t.hook(markup.Recipe, r, args, t.Tags.RenderRecipe)
}
