package main

import (
	"context"
	"fmt"

	"github.com/FocuswithJustin/Compendium/internal/formats"
)

func bgContext() context.Context { return context.Background() }

// FormatsCmd lists output formats.
type FormatsCmd struct{}

func (c *FormatsCmd) Run(g *Globals) error {
	for _, m := range formats.List() {
		fmt.Fprintf(g.Out, "%-10s %-8s %-28s %s\n", m.ID, m.Version, m.MediaType, m.Description)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.Out, "compendium version %s\n", version)
	return nil
}
