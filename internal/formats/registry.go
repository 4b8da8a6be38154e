// Package formats keeps the registry of output formats.
//
// Each format package registers itself from init. Import
// internal/formats/all to link every bundled format into a binary.
package formats

import (
	"sort"
	"sync"

	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/errors"
)

// Manifest describes a registered format.
type Manifest struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	MediaType   string `json:"media_type"`
	Extension   string `json:"extension"`
	Description string `json:"description"`
}

// Options configures a format instance.
type Options struct {
	// MaxDepth bounds markup and entry nesting. Zero keeps the defaults.
	MaxDepth int
	// Script is Lua source for the script format.
	Script string
}

// Format renders marked-up text and entry trees in one output style. An
// instance is not safe for concurrent use unless its package says so.
type Format interface {
	RenderMarkup(text string) (string, error)
	RenderEntry(e entry.Entry) (string, error)
}

// Registration pairs a manifest with a constructor.
type Registration struct {
	Manifest *Manifest
	New      func(opts Options) (Format, error)
}

var (
	mu       sync.RWMutex
	registry = make(map[string]*Registration)
)

// Register adds r to the registry, replacing any format with the same ID.
func Register(r *Registration) {
	if r == nil || r.Manifest == nil || r.Manifest.ID == "" || r.New == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[r.Manifest.ID] = r
}

// Get returns the registration for id.
func Get(id string) (*Registration, error) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registry[id]
	if !ok {
		return nil, errors.NewNotFound("format", id)
	}
	return r, nil
}

// New creates an instance of the format registered as id.
func New(id string, opts Options) (Format, error) {
	r, err := Get(id)
	if err != nil {
		return nil, err
	}
	return r.New(opts)
}

// Has reports whether a format is registered as id.
func Has(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[id]
	return ok
}

// List returns the manifests of all registered formats sorted by ID.
func List() []*Manifest {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]*Manifest, 0, len(registry))
	for _, r := range registry {
		out = append(out, r.Manifest)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns the registered format IDs in order.
func IDs() []string {
	ms := List()
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.ID
	}
	return ids
}

// Clear empties the registry (for testing).
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]*Registration)
}
