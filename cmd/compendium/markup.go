package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/FocuswithJustin/Compendium/core/markup"
)

// MarkupGroup contains inline markup operations.
type MarkupGroup struct {
	Render   MarkupRenderCmd   `cmd:"" help:"Render marked-up text"`
	Tokenize MarkupTokenizeCmd `cmd:"" help:"Print the top-level lexemes of marked-up text as JSON"`
	Tags     MarkupTagsCmd     `cmd:"" help:"List tag names and their aliases"`
}

// readText returns text, or standard input when text is "-".
func (g *Globals) readText(text string) (string, error) {
	if text != "-" {
		return text, nil
	}
	data, err := io.ReadAll(g.In)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// MarkupRenderCmd renders marked-up text.
type MarkupRenderCmd struct {
	Text   string `arg:"" help:"Text to render, or - for standard input"`
	Format string `help:"Output format" short:"f" default:"text" enum:"${formats}"`
}

func (c *MarkupRenderCmd) Run(g *Globals) error {
	text, err := g.readText(c.Text)
	if err != nil {
		return err
	}
	svc, _, err := g.service("")
	if err != nil {
		return err
	}
	defer svc.Close()
	res, err := svc.Markup(bgContext(), c.Format, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.Out, res.Output)
	return nil
}

// MarkupTokenizeCmd prints lexemes.
type MarkupTokenizeCmd struct {
	Text string `arg:"" help:"Text to tokenize, or - for standard input"`
}

func (c *MarkupTokenizeCmd) Run(g *Globals) error {
	text, err := g.readText(c.Text)
	if err != nil {
		return err
	}
	lexemes, err := markup.Tokenize(text)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(g.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(lexemes)
}

// MarkupTagsCmd lists tag names.
type MarkupTagsCmd struct {
	Plain bool `help:"Print one tag per line without a table"`
}

func (c *MarkupTagsCmd) Run(g *Globals) error {
	names := markup.TagNames()
	if c.Plain {
		for _, n := range names {
			fmt.Fprintln(g.Out, strings.Join(n.Aliases(), " "))
		}
		return nil
	}
	r := lipgloss.NewRenderer(g.Out)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("TAG", "ALIASES")
	for _, n := range names {
		tbl.Row(n.String(), strings.Join(n.Aliases()[1:], ", "))
	}
	fmt.Fprintln(g.Out, tbl.Render())
	return nil
}
