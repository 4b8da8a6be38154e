// Command compendium renders rulebook markup and entry documents.
//
// Flags default to COMPENDIUM_* environment variables, so a deployment can
// configure the CLI and the API server the same way.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Compendium/core/cache"
	"github.com/FocuswithJustin/Compendium/internal/config"
	"github.com/FocuswithJustin/Compendium/internal/formats"
	"github.com/FocuswithJustin/Compendium/internal/logging"
	"github.com/FocuswithJustin/Compendium/internal/render"
	"github.com/FocuswithJustin/Compendium/internal/store"

	_ "github.com/FocuswithJustin/Compendium/internal/formats/all"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string `help:"Log level" default:"${log_level}" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log format" default:"${log_format}" enum:"json,text"`
	MaxDepth  int    `help:"Maximum nesting depth of markup and entries" default:"${max_depth}"`
	Script    string `help:"Lua script with tag hooks for the script format"`

	Config config.Config `kong:"-"`
	Out    io.Writer     `kong:"-"`
	In     io.Reader     `kong:"-"`
}

// CLI defines the command-line interface for compendium.
type CLI struct {
	Globals

	Markup  MarkupGroup `cmd:"" help:"Inline markup operations (render, tokenize, tags)"`
	Entry   EntryGroup  `cmd:"" help:"Entry document operations (render, check, outline, kinds)"`
	Bundle  BundleGroup `cmd:"" help:"Document bundle operations"`
	Cache   CacheGroup  `cmd:"" help:"Persistent render cache maintenance"`
	Formats FormatsCmd  `cmd:"" help:"List output formats"`
	Serve   ServeCmd    `cmd:"" help:"Start the render API server"`
	Version VersionCmd  `cmd:"" help:"Print version information"`
}

// vars exposes the environment configuration as kong defaults.
func vars(cfg config.Config) kong.Vars {
	return kong.Vars{
		"log_level":  cfg.LogLevel,
		"log_format": cfg.LogFormat,
		"max_depth":  strconv.Itoa(cfg.MaxDepth),
		"cache_db":   cfg.CacheDB,
		"cache_size": strconv.Itoa(cfg.CacheSize),
		"port":       strconv.Itoa(cfg.Port),
		"rate_limit": strconv.Itoa(cfg.RateLimit),
		"formats":    strings.Join(formats.IDs(), ","),
	}
}

// service builds a render service. A non-empty cacheDB backs it with the
// persistent store, which the caller must close.
func (g *Globals) service(cacheDB string) (*render.Service, *store.Store, error) {
	opts := render.Options{
		MaxDepth: g.MaxDepth,
		Cache: cache.Config{
			MaxSize: g.Config.CacheSize,
			TTL:     g.Config.CacheTTL,
		},
	}
	if g.Script != "" {
		src, err := os.ReadFile(g.Script)
		if err != nil {
			return nil, nil, fmt.Errorf("read script: %w", err)
		}
		opts.Script = string(src)
	}
	var st *store.Store
	if cacheDB != "" {
		var err error
		st, err = store.Open(bgContext(), cacheDB)
		if err != nil {
			return nil, nil, err
		}
		opts.Store = st
	}
	return render.New(opts), st, nil
}

func (g *Globals) initLogging() {
	level, _ := logging.ParseLevel(g.LogLevel)
	format, _ := logging.ParseFormat(g.LogFormat)
	logging.InitLogger(level, format)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "compendium:", err)
		os.Exit(2)
	}
	cli := CLI{Globals: Globals{Config: cfg, Out: os.Stdout, In: os.Stdin}}
	ctx := kong.Parse(&cli,
		kong.Name("compendium"),
		kong.Description("Render rulebook markup and entry documents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		vars(cfg),
	)
	cli.initLogging()
	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
