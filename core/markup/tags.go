package markup

import (
	"fmt"
)

// TagName is the closed set of tag kinds the renderer dispatches on.
// Several spellings may resolve to the same kind.
type TagName int

const (
	Bold TagName = iota
	Italic
	Strikethrough
	Underline
	Note
	Attack
	H
	Color
	Highlight
	Help
	Comic
	ComicH1
	ComicH2
	ComicH3
	ComicH4
	ComicNote
	DC
	Dice
	Damage
	D20
	Hit
	Chance
	Recharge
	HitYourSpellAttack
	ScaleDice
	ScaleDamage
	Filter
	Link
	FiveETools
	Footnote
	Homebrew
	Skill
	Sense
	Area
	Loader
	Book
	Adventure
	Deity
	ClassFeature
	SubclassFeature
	Spell
	Item
	Class
	Creature
	ConditionDiseaseStatus
	Background
	Race
	OptionalFeature
	Reward
	Feat
	Psionic
	Object
	CultBoon
	TrapHazard
	VariantRule
	Table
	Vehicle
	VehicleUpgrade
	Action
	Language
	CharOption
	Recipe

	numTagNames
)

// tagAliases lists every accepted spelling per kind. The first alias is the
// canonical one returned by String.
var tagAliases = [numTagNames][]string{
	Bold:                   {"bold", "b"},
	Italic:                 {"italic", "i"},
	Strikethrough:          {"strike", "s"},
	Underline:              {"underline", "u"},
	Note:                   {"note"},
	Attack:                 {"atk"},
	H:                      {"h"},
	Color:                  {"color"},
	Highlight:              {"highlight"},
	Help:                   {"help"},
	Comic:                  {"comic"},
	ComicH1:                {"comicH1"},
	ComicH2:                {"comicH2"},
	ComicH3:                {"comicH3"},
	ComicH4:                {"comicH4"},
	ComicNote:              {"comicNote"},
	DC:                     {"dc"},
	Dice:                   {"dice"},
	Damage:                 {"damage"},
	D20:                    {"d20"},
	Hit:                    {"hit"},
	Chance:                 {"chance"},
	Recharge:               {"recharge"},
	HitYourSpellAttack:     {"hitYourSpellAttack"},
	ScaleDice:              {"scaledice"},
	ScaleDamage:            {"scaledamage"},
	Filter:                 {"filter"},
	Link:                   {"link"},
	FiveETools:             {"5etools"},
	Footnote:               {"footnote"},
	Homebrew:               {"homebrew"},
	Skill:                  {"skill"},
	Sense:                  {"sense"},
	Area:                   {"area"},
	Loader:                 {"loader"},
	Book:                   {"book"},
	Adventure:              {"adventure"},
	Deity:                  {"deity"},
	ClassFeature:           {"classFeature"},
	SubclassFeature:        {"subclassFeature"},
	Spell:                  {"spell"},
	Item:                   {"item"},
	Class:                  {"class"},
	Creature:               {"creature"},
	ConditionDiseaseStatus: {"condition", "disease", "status"},
	Background:             {"background"},
	Race:                   {"race"},
	OptionalFeature:        {"optfeature"},
	Reward:                 {"reward"},
	Feat:                   {"feat"},
	Psionic:                {"psionic"},
	Object:                 {"object"},
	CultBoon:               {"cult", "boon"},
	TrapHazard:             {"trap", "hazard"},
	VariantRule:            {"variantrule"},
	Table:                  {"table"},
	Vehicle:                {"vehicle"},
	VehicleUpgrade:         {"vehupgrade"},
	Action:                 {"action"},
	Language:               {"language"},
	CharOption:             {"charoption"},
	Recipe:                 {"recipe"},
}

var tagsByAlias = func() map[string]TagName {
	m := make(map[string]TagName, 70)
	for name, aliases := range tagAliases {
		for _, alias := range aliases {
			m[alias] = TagName(name)
		}
	}
	return m
}()

// ParseTagName resolves a spelling to its kind. Lookup is case-sensitive.
func ParseTagName(s string) (TagName, error) {
	if name, ok := tagsByAlias[s]; ok {
		return name, nil
	}
	return 0, &TagError{Name: s}
}

// TagNames returns every kind in declaration order.
func TagNames() []TagName {
	out := make([]TagName, numTagNames)
	for i := range out {
		out[i] = TagName(i)
	}
	return out
}

// Aliases returns the accepted spellings of n.
func (n TagName) Aliases() []string {
	if n < 0 || n >= numTagNames {
		return nil
	}
	return append([]string(nil), tagAliases[n]...)
}

func (n TagName) String() string {
	if n < 0 || n >= numTagNames {
		return fmt.Sprintf("TagName(%d)", int(n))
	}
	return tagAliases[n][0]
}

func (n TagName) MarshalText() ([]byte, error) {
	if n < 0 || n >= numTagNames {
		return nil, fmt.Errorf("invalid tag name %d", int(n))
	}
	return []byte(n.String()), nil
}

func (n *TagName) UnmarshalText(text []byte) error {
	parsed, err := ParseTagName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Tag is a resolved tag with its raw arguments.
type Tag struct {
	Name TagName
	Args []string
}

// NewTag resolves name and pairs it with args.
func NewTag(name string, args []string) (Tag, error) {
	n, err := ParseTagName(name)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Name: n, Args: args}, nil
}
