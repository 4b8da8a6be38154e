// Package render is the rendering service shared by the CLI and the API. It
// looks formats up in the registry, caches output in memory and optionally
// in a SQLite store, and logs each render.
package render

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/FocuswithJustin/Compendium/core/cache"
	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/errors"
	"github.com/FocuswithJustin/Compendium/internal/formats"
	"github.com/FocuswithJustin/Compendium/internal/logging"
	"github.com/FocuswithJustin/Compendium/internal/store"
)

// Kinds of render input.
const (
	KindMarkup = "markup"
	KindEntry  = "entry"
)

// Where a result came from.
const (
	SourceRender = "render"
	SourceMemory = "memory"
	SourceStore  = "store"
)

// Options configures a Service.
type Options struct {
	// MaxDepth is passed to every format. Zero keeps the format defaults.
	MaxDepth int
	// Script is the Lua source for the script format.
	Script string
	// Cache configures the in-memory cache. MaxSize 0 disables it.
	Cache cache.Config
	// Store, when set, backs the memory cache. The Service does not close it.
	Store *store.Store
}

// Result is one rendering.
type Result struct {
	Format string `json:"format"`
	Kind   string `json:"kind"`
	Output string `json:"output"`
	Source string `json:"source"`
	Key    string `json:"key"`
}

// Cached reports whether the output was served without rendering.
func (r Result) Cached() bool { return r.Source != SourceRender }

// Service renders through registered formats. It is safe for concurrent use.
type Service struct {
	opts  Options
	cache *cache.RenderCache
	store *store.Store

	mu        sync.Mutex
	instances map[string]formats.Format
}

// New creates a Service.
func New(opts Options) *Service {
	s := &Service{
		opts:      opts,
		store:     opts.Store,
		instances: make(map[string]formats.Format),
	}
	if opts.Cache.MaxSize > 0 {
		s.cache = cache.NewRenderCache(opts.Cache)
	}
	return s
}

// Formats lists the registered formats.
func (s *Service) Formats() []*formats.Manifest {
	return formats.List()
}

// Markup renders marked-up text in format.
func (s *Service) Markup(ctx context.Context, format, text string) (Result, error) {
	return s.render(ctx, format, KindMarkup, text, func(f formats.Format) (string, error) {
		return f.RenderMarkup(text)
	})
}

// Entry renders an entry tree in format.
func (s *Service) Entry(ctx context.Context, format string, e entry.Entry) (Result, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return Result{}, errors.Wrap(err, "encode entry")
	}
	return s.render(ctx, format, KindEntry, string(data), func(f formats.Format) (string, error) {
		return f.RenderEntry(e)
	})
}

// EntryJSON decodes data as an entry and renders it in format.
func (s *Service) EntryJSON(ctx context.Context, format string, data []byte) (Result, error) {
	e, err := entry.Parse(data)
	if err != nil {
		if !errors.Is(err, errors.ErrInvalidInput) {
			err = &errors.ParseError{Format: "json", Message: err.Error(), Err: err}
		}
		return Result{}, err
	}
	return s.Entry(ctx, format, e)
}

func (s *Service) key(format, kind, input string) cache.Key {
	return cache.NewKey(format, kind, strconv.Itoa(s.opts.MaxDepth), s.opts.Script, input)
}

func (s *Service) render(ctx context.Context, format, kind, input string, do func(formats.Format) (string, error)) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	key := s.key(format, kind, input)
	res := Result{Format: format, Kind: kind, Key: key.String()}

	if s.cache != nil {
		if out, ok := s.cache.Get(key); ok {
			res.Output, res.Source = out, SourceMemory
			logging.RenderEvent(ctx, format, kind, len(out), 0, "source", res.Source)
			return res, nil
		}
	}
	if s.store != nil {
		out, ok, err := s.store.Get(ctx, key)
		if err != nil {
			return Result{}, err
		}
		if ok {
			if s.cache != nil {
				s.cache.Put(key, out)
			}
			res.Output, res.Source = out, SourceStore
			logging.RenderEvent(ctx, format, kind, len(out), 0, "source", res.Source)
			return res, nil
		}
	}

	f, err := s.instance(format)
	if err != nil {
		return Result{}, err
	}
	start := time.Now()
	out, err := do(f)
	if err != nil {
		logging.RenderError(ctx, format, kind, err)
		return Result{}, err
	}

	if s.cache != nil {
		s.cache.Put(key, out)
	}
	if s.store != nil {
		if err := s.store.Put(ctx, key, format, out); err != nil {
			return Result{}, err
		}
	}
	res.Output, res.Source = out, SourceRender
	logging.RenderEvent(ctx, format, kind, len(out), time.Since(start), "source", res.Source)
	return res, nil
}

// instance returns the shared Format for id, building it on first use.
// Formats render without shared mutable state, and the script format locks
// its own Lua state, so one instance serves concurrent renders.
func (s *Service) instance(format string) (formats.Format, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.instances[format]; ok {
		return f, nil
	}
	f, err := formats.New(format, formats.Options{MaxDepth: s.opts.MaxDepth, Script: s.opts.Script})
	if err != nil {
		return nil, err
	}
	s.instances[format] = f
	return f, nil
}

// Stats returns memory cache statistics.
func (s *Service) Stats() cache.Stats {
	if s.cache == nil {
		return cache.Stats{}
	}
	return s.cache.Stats()
}

// Prune drops stored renderings older than age.
func (s *Service) Prune(ctx context.Context, age time.Duration) (int64, error) {
	if s.store == nil {
		return 0, nil
	}
	n, err := s.store.Prune(ctx, time.Now().Add(-age))
	if err != nil {
		return 0, err
	}
	logging.CacheEvent("prune", "removed", n)
	return n, nil
}

// Close releases format instances that hold resources.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, f := range s.instances {
		if c, ok := f.(interface{ Close() }); ok {
			c.Close()
		}
		delete(s.instances, id)
	}
	if s.cache != nil {
		s.cache.Clear()
	}
}
