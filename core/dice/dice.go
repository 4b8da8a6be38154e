// Package dice parses dice expressions such as "2d6+3" or "1d8 + 1d6 - 1".
package dice

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/Compendium/core/errors"
)

// Bounds on a single term. Larger values are rejected rather than risking
// overflow in Min and Max.
const (
	MaxCount = 1000
	MaxFaces = 10000
)

// Term is one signed part of an expression: NdF when Faces is non-zero,
// otherwise the constant Count.
type Term struct {
	Negative bool
	Count    int
	Faces    int
}

// IsConstant reports whether the term has no dice.
func (t Term) IsConstant() bool { return t.Faces == 0 }

func (t Term) sign() int {
	if t.Negative {
		return -1
	}
	return 1
}

func (t Term) String() string {
	if t.IsConstant() {
		return strconv.Itoa(t.Count)
	}
	return fmt.Sprintf("%dd%d", t.Count, t.Faces)
}

// Expr is a sum of terms.
type Expr struct {
	Terms []Term
}

//nolint:govet // participle grammar tags are not standard struct tags
type exprGrammar struct {
	First *termGrammar `@@`
	Rest  []*opTerm    `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type opTerm struct {
	Op   string       `@Op`
	Term *termGrammar `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type termGrammar struct {
	Count *int `@Int?`
	Faces *int `( D @Int )?`
}

var diceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "D", Pattern: `[dD]`},
	{Name: "Op", Pattern: `[-+]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var diceParser = participle.MustBuild[exprGrammar](
	participle.Lexer(diceLexer),
	participle.Elide("Whitespace"),
)

// Parse reads an expression. A missing die count means one die, so "d20" is
// "1d20".
func Parse(s string) (Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Expr{}, errors.NewParse("dice", "", "empty expression")
	}
	parsed, err := diceParser.ParseString("", s)
	if err != nil {
		return Expr{}, &errors.ParseError{Format: "dice", Message: fmt.Sprintf("invalid expression %q", s), Err: err}
	}

	var expr Expr
	add := func(negative bool, g *termGrammar) error {
		t, err := g.term(negative)
		if err != nil {
			return err
		}
		expr.Terms = append(expr.Terms, t)
		return nil
	}
	if err := add(false, parsed.First); err != nil {
		return Expr{}, err
	}
	for _, r := range parsed.Rest {
		if err := add(r.Op == "-", r.Term); err != nil {
			return Expr{}, err
		}
	}
	return expr, nil
}

func (g *termGrammar) term(negative bool) (Term, error) {
	if g == nil || (g.Count == nil && g.Faces == nil) {
		return Term{}, errors.NewParse("dice", "", "missing term")
	}
	t := Term{Negative: negative, Count: 1}
	if g.Count != nil {
		t.Count = *g.Count
	}
	if g.Faces == nil {
		return t, nil
	}
	t.Faces = *g.Faces
	switch {
	case t.Faces < 1:
		return Term{}, errors.NewValidation("faces", "a die needs at least one face")
	case t.Faces > MaxFaces:
		return Term{}, errors.NewLimit("dice faces", MaxFaces)
	case t.Count > MaxCount:
		return Term{}, errors.NewLimit("dice count", MaxCount)
	}
	return t, nil
}

// MustParse is Parse for expressions known to be valid.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

// String formats the expression in canonical form, e.g. "2d6 + 3".
func (e Expr) String() string {
	var sb strings.Builder
	for i, t := range e.Terms {
		switch {
		case i == 0 && t.Negative:
			sb.WriteString("-")
		case i > 0 && t.Negative:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

// Min returns the lowest possible total.
func (e Expr) Min() int {
	total := 0
	for _, t := range e.Terms {
		lo, hi := t.Count, t.Count*t.Faces
		if t.IsConstant() {
			hi = t.Count
		}
		if t.Negative {
			total -= hi
		} else {
			total += lo
		}
	}
	return total
}

// Max returns the highest possible total.
func (e Expr) Max() int {
	total := 0
	for _, t := range e.Terms {
		lo, hi := t.Count, t.Count*t.Faces
		if t.IsConstant() {
			hi = t.Count
		}
		if t.Negative {
			total -= lo
		} else {
			total += hi
		}
	}
	return total
}

// Mean returns the expected total.
func (e Expr) Mean() float64 {
	total := 0.0
	for _, t := range e.Terms {
		v := float64(t.Count)
		if !t.IsConstant() {
			v *= float64(t.Faces+1) / 2
		}
		total += float64(t.sign()) * v
	}
	return total
}

// Average returns Mean rounded down, the way stat blocks print damage.
func (e Expr) Average() int {
	return int(math.Floor(e.Mean()))
}

// HasDice reports whether any term rolls dice.
func (e Expr) HasDice() bool {
	for _, t := range e.Terms {
		if !t.IsConstant() {
			return true
		}
	}
	return false
}

// Roll evaluates the expression with rng.
func (e Expr) Roll(rng *rand.Rand) int {
	total := 0
	for _, t := range e.Terms {
		v := t.Count
		if !t.IsConstant() {
			v = 0
			for range t.Count {
				v += rng.IntN(t.Faces) + 1
			}
		}
		total += t.sign() * v
	}
	return total
}
