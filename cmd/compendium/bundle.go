package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/internal/archive"
	"github.com/FocuswithJustin/Compendium/internal/formats"
	"github.com/FocuswithJustin/Compendium/internal/render"
	"github.com/FocuswithJustin/Compendium/internal/source"
	"github.com/FocuswithJustin/Compendium/internal/validation"
)

// BundleGroup contains document bundle operations.
type BundleGroup struct {
	Create BundleCreateCmd `cmd:"" help:"Bundle the documents of a directory"`
	List   BundleListCmd   `cmd:"" help:"List the documents in a bundle"`
	Render BundleRenderCmd `cmd:"" help:"Render every document in a bundle into a directory"`
}

var documentSuffixes = []string{".json", ".yaml", ".yml", ".xz", ".gz"}

func isDocument(name string) bool {
	for _, s := range documentSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// BundleCreateCmd writes a bundle.
type BundleCreateCmd struct {
	Dir string `arg:"" help:"Directory of documents" type:"existingdir"`
	Out string `help:"Bundle path (.tar.xz, .tar.gz or .tgz)" short:"o" required:""`
}

func (c *BundleCreateCmd) Run(g *Globals) error {
	files, err := archive.CollectDir(c.Dir, isDocument)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents in %s", c.Dir)
	}
	root := filepath.Base(filepath.Clean(c.Dir))
	if err := archive.WriteBundle(c.Out, root, files); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "wrote %d documents to %s\n", len(files), c.Out)
	return nil
}

// BundleListCmd lists bundle members.
type BundleListCmd struct {
	Bundle string `arg:"" help:"Bundle path" type:"existingfile"`
}

func (c *BundleListCmd) Run(g *Globals) error {
	names, err := archive.List(c.Bundle)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(g.Out, n)
	}
	return nil
}

// BundleRenderCmd renders a bundle's documents in parallel.
type BundleRenderCmd struct {
	Bundle  string `arg:"" help:"Bundle path" type:"existingfile"`
	Format  string `help:"Output format" short:"f" default:"html" enum:"${formats}"`
	Out     string `help:"Output directory" short:"o" required:""`
	Workers int    `help:"Parallel renders (0 = default)" default:"0"`
	CacheDB string `help:"SQLite render cache" default:"${cache_db}"`
}

func (c *BundleRenderCmd) Run(g *Globals) error {
	reg, err := formats.Get(c.Format)
	if err != nil {
		return err
	}
	var jobs []render.Job
	err = archive.Walk(c.Bundle, func(name string, r io.Reader) (bool, error) {
		if !isDocument(name) {
			return false, nil
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return true, err
		}
		jobs = append(jobs, render.Job{
			Name: name,
			Load: func() ([]entry.Entry, error) {
				doc, err := source.Read(name, bytes.NewReader(data))
				if err != nil {
					return nil, err
				}
				return doc.Entries()
			},
		})
		return false, nil
	})
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

	failed := 0
	for _, res := range svc.RenderAll(bgContext(), c.Format, jobs, c.Workers) {
		if res.Err == nil {
			res.Err = writeOutput(c.Out, res.Name, reg.Manifest.Extension, res.Output)
		}
		if res.Err != nil {
			failed++
			fmt.Fprintf(g.Out, "%s: %v\n", res.Name, res.Err)
			continue
		}
		fmt.Fprintf(g.Out, "%s: ok\n", res.Name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(jobs))
	}
	return nil
}

// writeOutput writes output for the bundle member name under dir, with the
// document suffixes replaced by ext.
func writeOutput(dir, name, ext, output string) error {
	if err := validation.ValidateMember(name); err != nil {
		return err
	}
	base := name
	if c := validation.CompressionFromName(base); c != validation.CompressionNone {
		base = base[:len(base)-len(c.Suffix())]
	}
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ext
	path := filepath.Join(dir, filepath.FromSlash(base))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(output+"\n"), 0o644)
}
