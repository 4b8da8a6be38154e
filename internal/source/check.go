package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/FocuswithJustin/Compendium/core/errors"
)

// Mismatch is one place where an entry does not survive decoding and
// re-encoding unchanged. Path is a gjson path into the document.
type Mismatch struct {
	Path string `json:"path"`
	Want string `json:"want"`
	Got  string `json:"got"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: want %s, got %s", m.Path, m.Want, m.Got)
}

// Check decodes every entry of d, encodes it again and reports each value
// that changed. Unknown keys dropped by decoding show up as mismatches.
func (d Document) Check() ([]Mismatch, error) {
	entries, err := d.Entries()
	if err != nil {
		return nil, err
	}
	root := gjson.ParseBytes(d.JSON)
	originals := []gjson.Result{root}
	prefix := func(int) string { return "" }
	if root.IsArray() {
		originals = root.Array()
		prefix = func(i int) string { return strconv.Itoa(i) }
	}

	var out []Mismatch
	for i, e := range entries {
		encoded, err := json.Marshal(e)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s entry %d", d.Name, i)
		}
		want, err := decodeNumbers([]byte(originals[i].Raw))
		if err != nil {
			return nil, err
		}
		got, err := decodeNumbers(encoded)
		if err != nil {
			return nil, err
		}
		out = diff(prefix(i), want, got, out)
	}
	return out, nil
}

func decodeNumbers(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &errors.ParseError{Format: "JSON", Message: err.Error(), Err: err}
	}
	return v, nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func diff(path string, want, got any, out []Mismatch) []Mismatch {
	switch w := want.(type) {
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok {
			break
		}
		keys := make([]string, 0, len(w)+len(g))
		for k := range w {
			keys = append(keys, k)
		}
		for k := range g {
			if _, ok := w[k]; !ok {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = diff(join(path, k), w[k], g[k], out)
		}
		return out
	case []any:
		g, ok := got.([]any)
		if !ok || len(g) != len(w) {
			break
		}
		for i := range w {
			out = diff(join(path, strconv.Itoa(i)), w[i], g[i], out)
		}
		return out
	case json.Number:
		if g, ok := got.(json.Number); ok {
			wf, _ := w.Float64()
			gf, _ := g.Float64()
			if wf == gf {
				return out
			}
		}
	default:
		if want == got {
			return out
		}
	}
	return append(out, Mismatch{Path: path, Want: show(want), Got: show(got)})
}

func show(v any) string {
	if v == nil {
		return "(missing)"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
