// Package markup implements the inline tag language used in rulebook text.
//
// A tag has the form {@name arg0|arg1|...}. Tags nest: an argument may itself
// contain tags, which are kept verbatim so that the renderer can recurse into
// them. The lexer only splits the top level of each tag.
package markup

import (
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/Compendium/core/errors"
)

// markupLexer splits input into the four raw token kinds. Rules are tried
// in order, so "{@" wins over a text run starting with "{".
var markupLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "TagOpen", Pattern: `\{@`},
	{Name: "TagClose", Pattern: `\}`},
	{Name: "ArgSeparator", Pattern: `\|`},
	{Name: "Text", Pattern: `(\{[^@]|[^{}|])+`},
})

var (
	tokTagOpen      = markupLexer.Symbols()["TagOpen"]
	tokTagClose     = markupLexer.Symbols()["TagClose"]
	tokArgSeparator = markupLexer.Symbols()["ArgSeparator"]
	tokText         = markupLexer.Symbols()["Text"]
)

// LexemeKind distinguishes plain text from tags.
type LexemeKind int

const (
	LexemeText LexemeKind = iota
	LexemeTag
)

func (k LexemeKind) String() string {
	if k == LexemeTag {
		return "tag"
	}
	return "text"
}

func (k LexemeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Lexeme is one top-level unit of marked-up text. Every string field is a
// slice of the lexed input.
type Lexeme struct {
	Kind   LexemeKind `json:"kind"`
	Text   string     `json:"text,omitempty"`
	Name   string     `json:"name,omitempty"`
	Args   []string   `json:"args,omitzero"`
	Offset int        `json:"offset"`
}

// Lexer produces lexemes on demand. It is not safe for concurrent use.
type Lexer struct {
	input  string
	tokens lexer.Lexer
	peeked *lexer.Token
	err    error
}

// NewLexer returns a Lexer over input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	// LexString on a simple definition only fails for invalid rule sets.
	tokens, err := markupLexer.LexString("", input)
	if err != nil {
		l.err = err
	}
	l.tokens = tokens
	return l
}

// Next returns the next lexeme, or io.EOF once the input is exhausted.
// After any other error the lexer stays failed.
func (l *Lexer) Next() (Lexeme, error) {
	if l.err != nil {
		return Lexeme{}, l.err
	}
	lx, err := l.next()
	if err != nil {
		l.err = err
	}
	return lx, err
}

func (l *Lexer) next() (Lexeme, error) {
	tok, err := l.token()
	if err != nil {
		return Lexeme{}, err
	}
	switch tok.Type {
	case lexer.EOF:
		return Lexeme{}, io.EOF
	case tokTagOpen:
		return l.tag(tok.Pos.Offset)
	default:
		return l.text(tok.Pos.Offset)
	}
}

func (l *Lexer) tag(start int) (Lexeme, error) {
	head, err := l.token()
	if err != nil {
		return Lexeme{}, err
	}
	switch head.Type {
	case tokText:
	case lexer.EOF:
		return Lexeme{}, &LexError{Kind: UnclosedTag, Offset: start}
	default:
		return Lexeme{}, &LexError{Kind: NoTagName, Offset: start}
	}

	name, _, spaced := strings.Cut(head.Value, " ")
	depth := 1
	last := head.Pos.Offset + len(name) + 1
	if !spaced && strings.HasPrefix(l.input[last-1:], "{@") {
		// A nested tag directly after the name starts the first argument.
		last--
	}
	var args []string

	var end int
	for end == 0 {
		tok, err := l.token()
		if err != nil {
			return Lexeme{}, err
		}
		switch tok.Type {
		case lexer.EOF:
			return Lexeme{}, &LexError{Kind: UnclosedTag, Offset: start}
		case tokTagOpen:
			depth++
		case tokTagClose:
			depth--
			if depth == 0 {
				end = tok.Pos.Offset + len(tok.Value)
			}
		case tokArgSeparator:
			if depth != 1 {
				continue
			}
			if last >= tok.Pos.Offset {
				args = append(args, "")
			} else {
				args = append(args, l.input[last:tok.Pos.Offset])
			}
			last = tok.Pos.Offset + len(tok.Value)
		}
	}

	if last >= end {
		if len(args) > 0 {
			args = append(args, "")
		}
	} else {
		args = append(args, l.input[last:end-1])
	}

	return Lexeme{Kind: LexemeTag, Name: name, Args: args, Offset: start}, nil
}

func (l *Lexer) text(start int) (Lexeme, error) {
	end := len(l.input)
	for {
		tok, err := l.peek()
		if err != nil {
			return Lexeme{}, err
		}
		if tok.Type == lexer.EOF {
			break
		}
		if tok.Type == tokTagOpen {
			end = tok.Pos.Offset
			break
		}
		l.peeked = nil
	}
	return Lexeme{Kind: LexemeText, Text: l.input[start:end], Offset: start}, nil
}

func (l *Lexer) token() (lexer.Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	tok, err := l.tokens.Next()
	if err != nil {
		return lexer.Token{}, l.unexpected(err)
	}
	return tok, nil
}

func (l *Lexer) peek() (lexer.Token, error) {
	if l.peeked == nil {
		tok, err := l.tokens.Next()
		if err != nil {
			return lexer.Token{}, l.unexpected(err)
		}
		l.peeked = &tok
	}
	return *l.peeked, nil
}

// unexpected converts a tokenizer failure into a LexError pointing at the
// first character no rule could match.
func (l *Lexer) unexpected(err error) error {
	var lerr *lexer.Error
	if !errors.As(err, &lerr) {
		return err
	}
	offset := lerr.Pos.Offset
	token := ""
	if offset < len(l.input) {
		_, size := utf8.DecodeRuneInString(l.input[offset:])
		token = l.input[offset : offset+size]
	}
	return &LexError{Kind: UnexpectedToken, Offset: offset, Token: token}
}

// Lex returns a lazy sequence of lexemes. The sequence stops after the first
// error, which is yielded with a zero Lexeme.
func Lex(input string) iter.Seq2[Lexeme, error] {
	return func(yield func(Lexeme, error) bool) {
		l := NewLexer(input)
		for {
			lx, err := l.Next()
			if err == io.EOF {
				return
			}
			if !yield(lx, err) || err != nil {
				return
			}
		}
	}
}

// Tokenize lexes the whole input eagerly.
func Tokenize(input string) ([]Lexeme, error) {
	var out []Lexeme
	for lx, err := range Lex(input) {
		if err != nil {
			return nil, err
		}
		out = append(out, lx)
	}
	return out, nil
}
