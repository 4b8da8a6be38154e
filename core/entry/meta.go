package entry

import (
	"encoding/json"
	"sort"
	"strings"
)

// Meta holds the fields most blocks share. It is flattened into the block's
// JSON object and every field is omitted when empty.
type Meta struct {
	Name   string `json:"name,omitempty"`
	Source string `json:"source,omitempty"`
	// Data is opaque caller data. Keys prefixed "rd-" become data-
	// attributes in HTML output.
	Data json.RawMessage `json:"data,omitempty"`
	// Page may be negative in source data.
	Page *int64 `json:"page,omitempty"`
	ID   string `json:"id,omitempty"`
}

// Metadata returns m. Kinds embedding Meta get it promoted.
func (m Meta) Metadata() Meta { return m }

// RDataAttributes returns the "rd-" keys of Data with the prefix removed,
// mapped to their raw JSON values rendered as text. Non-object data yields
// nil.
func (m Meta) RDataAttributes() map[string]string {
	if len(m.Data) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(m.Data, &obj); err != nil {
		return nil
	}
	var out map[string]string
	for k, v := range obj {
		name, ok := strings.CutPrefix(k, "rd-")
		if !ok || name == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[name] = s
		} else {
			out[name] = string(v)
		}
	}
	return out
}

// SortedKeys returns the keys of m in order. Renderers use it to emit
// map-shaped fields deterministically.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Int64 returns a pointer to n, for optional numeric fields.
func Int64(n int64) *int64 { return &n }

// Bool returns a pointer to v, for optional flags.
func Bool(v bool) *bool { return &v }
