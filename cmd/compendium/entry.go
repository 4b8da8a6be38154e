package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/xml"
	"github.com/FocuswithJustin/Compendium/internal/source"
)

// EntryGroup contains entry document operations.
type EntryGroup struct {
	Render  EntryRenderCmd  `cmd:"" help:"Render an entry document"`
	Check   EntryCheckCmd   `cmd:"" help:"Check that a document survives decoding unchanged"`
	Outline EntryOutlineCmd `cmd:"" help:"Print the heading outline of a document"`
	Kinds   EntryKindsCmd   `cmd:"" help:"Count the entry kinds used in a document"`
}

// loadDocument reads path and narrows it to the gjson path sel.
func loadDocument(path, sel string) (source.Document, error) {
	doc, err := source.ReadFile(path)
	if err != nil {
		return source.Document{}, err
	}
	return doc.Select(sel)
}

func loadEntries(path, sel string) ([]entry.Entry, error) {
	doc, err := loadDocument(path, sel)
	if err != nil {
		return nil, err
	}
	return doc.Entries()
}

// EntryRenderCmd renders every entry of a document.
type EntryRenderCmd struct {
	File    string `arg:"" help:"Document path (JSON or YAML, optionally compressed, or bundle#member)"`
	Format  string `help:"Output format" short:"f" default:"text" enum:"${formats}"`
	Path    string `help:"gjson path selecting a sub-document" short:"p"`
	CacheDB string `help:"SQLite render cache" default:"${cache_db}"`
}

func (c *EntryRenderCmd) Run(g *Globals) error {
	entries, err := loadEntries(c.File, c.Path)
	if err != nil {
		return err
	}
	svc, st, err := g.service(c.CacheDB)
	if err != nil {
		return err
	}
	defer svc.Close()
	if st != nil {
		defer st.Close()
	}
	outputs := make([]string, 0, len(entries))
	for _, e := range entries {
		res, err := svc.Entry(bgContext(), c.Format, e)
		if err != nil {
			return err
		}
		outputs = append(outputs, res.Output)
	}
	fmt.Fprintln(g.Out, strings.Join(outputs, "\n\n"))
	return nil
}

// EntryCheckCmd reports values lost or altered by decoding.
type EntryCheckCmd struct {
	File string `arg:"" help:"Document path"`
	Path string `help:"gjson path selecting a sub-document" short:"p"`
}

func (c *EntryCheckCmd) Run(g *Globals) error {
	doc, err := loadDocument(c.File, c.Path)
	if err != nil {
		return err
	}
	mismatches, err := doc.Check()
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		fmt.Fprintln(g.Out, m)
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%s: %d mismatches", doc.Name, len(mismatches))
	}
	fmt.Fprintf(g.Out, "%s: ok\n", doc.Name)
	return nil
}

// EntryOutlineCmd prints the headings of a document's HTML rendering.
type EntryOutlineCmd struct {
	File string `arg:"" help:"Document path"`
	Path string `help:"gjson path selecting a sub-document" short:"p"`
}

func (c *EntryOutlineCmd) Run(g *Globals) error {
	entries, err := loadEntries(c.File, c.Path)
	if err != nil {
		return err
	}
	svc, _, err := g.service("")
	if err != nil {
		return err
	}
	defer svc.Close()
	for _, e := range entries {
		res, err := svc.Entry(bgContext(), "html", e)
		if err != nil {
			return err
		}
		doc, err := xml.ParseFragment(res.Output)
		if err != nil {
			return err
		}
		for _, h := range doc.Headings() {
			fmt.Fprintf(g.Out, "%s%s #%s\n", strings.Repeat("  ", h.Level-1), h.Text, h.ID)
		}
	}
	return nil
}

// EntryKindsCmd counts entry kinds.
type EntryKindsCmd struct {
	File string `arg:"" help:"Document path"`
	Path string `help:"gjson path selecting a sub-document" short:"p"`
}

func (c *EntryKindsCmd) Run(g *Globals) error {
	entries, err := loadEntries(c.File, c.Path)
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, e := range entries {
		err := entry.Walk(e, func(e entry.Entry, _ int) error {
			if b, ok := e.Block(); ok {
				counts[string(b.Type())]++
			} else {
				counts[e.Form().String()]++
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(g.Out, "%-16s %d\n", k, counts[k])
	}
	return nil
}
