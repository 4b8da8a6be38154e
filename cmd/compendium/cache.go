package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/FocuswithJustin/Compendium/core/sqlite"
)

// CacheGroup contains persistent cache maintenance.
type CacheGroup struct {
	Stats CacheStatsCmd `cmd:"" help:"Count stored renderings per format"`
	Prune CachePruneCmd `cmd:"" help:"Delete stored renderings older than a given age"`
}

var errNoCacheDB = errors.New("no cache database: set --cache-db or COMPENDIUM_CACHE_DB")

// CacheStatsCmd counts stored renderings.
type CacheStatsCmd struct {
	CacheDB string `help:"SQLite render cache" default:"${cache_db}"`
	Driver  bool   `help:"Also print the SQLite driver in use"`
}

func (c *CacheStatsCmd) Run(g *Globals) error {
	if c.CacheDB == "" {
		return errNoCacheDB
	}
	svc, st, err := g.service(c.CacheDB)
	if err != nil {
		return err
	}
	defer svc.Close()
	defer st.Close()
	counts, err := st.Counts(bgContext())
	if err != nil {
		return err
	}
	formats := make([]string, 0, len(counts))
	var total int64
	for f, n := range counts {
		formats = append(formats, f)
		total += n
	}
	sort.Strings(formats)
	if c.Driver {
		info := sqlite.GetInfo()
		fmt.Fprintf(g.Out, "%-10s %s (%s)\n", "driver", info.Package, info.DriverType)
	}
	for _, f := range formats {
		fmt.Fprintf(g.Out, "%-10s %d\n", f, counts[f])
	}
	fmt.Fprintf(g.Out, "%-10s %d\n", "total", total)
	return nil
}

// CachePruneCmd removes old renderings.
type CachePruneCmd struct {
	CacheDB   string        `help:"SQLite render cache" default:"${cache_db}"`
	OlderThan time.Duration `help:"Minimum age of removed renderings" default:"168h"`
}

func (c *CachePruneCmd) Run(g *Globals) error {
	if c.CacheDB == "" {
		return errNoCacheDB
	}
	svc, st, err := g.service(c.CacheDB)
	if err != nil {
		return err
	}
	defer svc.Close()
	defer st.Close()
	n, err := svc.Prune(bgContext(), c.OlderThan)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "pruned %d renderings\n", n)
	return nil
}
