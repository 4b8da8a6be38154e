// Package source loads entry documents from disk.
//
// Documents are JSON or YAML, optionally compressed with xz or gzip, or a
// member of a document bundle written as "bundle.tar.xz#path/in/bundle.json".
// A gjson path can select a sub-document, e.g. "spell.0.entries".
package source

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/errors"
	"github.com/FocuswithJustin/Compendium/internal/archive"
	"github.com/FocuswithJustin/Compendium/internal/validation"
)

// MaxDocumentSize bounds the decompressed size of a single document.
const MaxDocumentSize = 64 << 20

// Document is a loaded source document, always held as JSON.
type Document struct {
	Name string
	JSON []byte
}

// ReadFile loads the document at path. A "#member" suffix on a bundle path
// selects a file inside the bundle.
func ReadFile(path string) (Document, error) {
	if bundle, member, ok := strings.Cut(path, "#"); ok && archive.IsBundle(bundle) {
		if err := validation.ValidateMember(member); err != nil {
			return Document{}, err
		}
		content, err := archive.ReadFile(bundle, member)
		if err != nil {
			return Document{}, errors.NewIO("read", path, err)
		}
		return Read(member, bytes.NewReader(content))
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, errors.NewIO("open", path, err)
	}
	defer f.Close()
	return Read(filepath.Base(path), f)
}

// Read decodes a document named name from r. Compression is detected from
// the content and must agree with a compression suffix on the name; syntax
// follows the remaining suffix, e.g. "spells.yaml.xz".
func Read(name string, r io.Reader) (Document, error) {
	br := bufio.NewReader(r)
	c, err := validation.CheckCompression(br, name)
	if err != nil {
		return Document{}, err
	}
	r = br
	base := name
	if validation.CompressionFromName(name) == c {
		base = name[:len(name)-len(c.Suffix())]
	}
	switch c {
	case validation.CompressionXZ:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return Document{}, &errors.ParseError{Format: "xz", Path: name, Message: err.Error(), Err: err}
		}
		r = xzr
	case validation.CompressionGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return Document{}, &errors.ParseError{Format: "gzip", Path: name, Message: err.Error(), Err: err}
		}
		defer gzr.Close()
		r = gzr
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return Document{}, errors.NewIO("read", name, err)
	}
	if len(data) > MaxDocumentSize {
		return Document{}, errors.NewLimit("document size", MaxDocumentSize)
	}

	switch ext := strings.ToLower(filepath.Ext(base)); ext {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return Document{}, &errors.ParseError{Format: "YAML", Path: name, Message: err.Error(), Err: err}
		}
	case ".json", "":
		if !gjson.ValidBytes(data) {
			return Document{}, errors.NewParse("JSON", name, "invalid JSON")
		}
	default:
		return Document{}, errors.NewUnsupported("document format "+ext, "want .json or .yaml")
	}
	return Document{Name: name, JSON: data}, nil
}

// FromJSON wraps raw JSON as a document.
func FromJSON(name string, data []byte) (Document, error) {
	if !gjson.ValidBytes(data) {
		return Document{}, errors.NewParse("JSON", name, "invalid JSON")
	}
	return Document{Name: name, JSON: data}, nil
}

// Select returns the sub-document at a gjson path. An empty path returns d.
func (d Document) Select(path string) (Document, error) {
	if path == "" {
		return d, nil
	}
	res := gjson.GetBytes(d.JSON, path)
	if !res.Exists() {
		return Document{}, errors.NewNotFound("path", path)
	}
	return Document{Name: d.Name + "#" + path, JSON: []byte(res.Raw)}, nil
}

// Entries decodes the document as entries: an array yields its elements,
// anything else a single entry.
func (d Document) Entries() ([]entry.Entry, error) {
	if gjson.ParseBytes(d.JSON).IsArray() {
		es, err := entry.ParseList(d.JSON)
		if err != nil {
			return nil, errors.Wrapf(err, "decode %s", d.Name)
		}
		return es, nil
	}
	e, err := entry.Parse(d.JSON)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", d.Name)
	}
	return []entry.Entry{e}, nil
}

// Keys lists the top-level keys of an object document, in document order.
func (d Document) Keys() []string {
	var keys []string
	gjson.ParseBytes(d.JSON).ForEach(func(key, _ gjson.Result) bool {
		if key.Type == gjson.String {
			keys = append(keys, key.Str)
		}
		return true
	})
	return keys
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	v, err := stringKeys(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// stringKeys converts YAML maps with non-string keys, such as spell levels
// written as bare integers, into JSON-compatible maps.
func stringKeys(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			c, err := stringKeys(child)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			c, err := stringKeys(child)
			if err != nil {
				return nil, err
			}
			switch k.(type) {
			case string, int, int64, uint64, float64, bool:
				out[fmt.Sprint(k)] = c
			default:
				return nil, fmt.Errorf("unsupported map key %v", k)
			}
		}
		return out, nil
	case []any:
		for i, child := range t {
			c, err := stringKeys(child)
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
		return t, nil
	}
	return v, nil
}
