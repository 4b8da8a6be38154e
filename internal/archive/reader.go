// Package archive reads and writes document bundles: compressed tar archives
// of entry documents in .tar.gz or .tar.xz form.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// Reader wraps a tar.Reader with automatic decompression handling.
type Reader struct {
	*tar.Reader
	file         *os.File
	decompressor io.Closer
}

// IsBundle reports whether path names a supported bundle.
func IsBundle(path string) bool {
	return strings.HasSuffix(path, ".tar.xz") || strings.HasSuffix(path, ".tar.gz") || strings.HasSuffix(path, ".tgz")
}

// NewReader opens the bundle at path, picking the decompressor from the
// file suffix.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}

	var reader io.Reader
	var decompressor io.Closer

	switch {
	case strings.HasSuffix(path, ".tar.xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		reader = xzr
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		reader = gzr
		decompressor = gzr
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported bundle format: %s", path)
	}

	return &Reader{
		Reader:       tar.NewReader(reader),
		file:         f,
		decompressor: decompressor,
	}, nil
}

// Close closes the reader and any underlying decompressor. It is safe to
// call more than once.
func (r *Reader) Close() error {
	var first error
	if r.decompressor != nil {
		first = r.decompressor.Close()
		r.decompressor = nil
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil && first == nil {
			first = err
		}
		r.file = nil
	}
	return first
}

// Visitor is called for each regular file of a bundle. Return true to stop.
type Visitor func(name string, content io.Reader) (stop bool, err error)

// Iterate calls visit for every regular file, in archive order. Names have
// any single leading directory removed, so "srd/spells.json" is reported as
// "spells.json".
func (r *Reader) Iterate(visit Visitor) error {
	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		stop, err := visit(trimRoot(header.Name), r)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

func trimRoot(name string) string {
	name = strings.TrimPrefix(name, "./")
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Walk opens the bundle at path and iterates its files.
func Walk(path string, visit Visitor) error {
	r, err := NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Iterate(visit)
}

// ReadFile returns the content of the named file in the bundle.
func ReadFile(bundlePath, name string) ([]byte, error) {
	content, _, err := FindFile(bundlePath, func(n string) bool { return n == name })
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return content, nil
}

// FindFile returns the first file whose name satisfies match.
func FindFile(bundlePath string, match func(name string) bool) ([]byte, string, error) {
	var content []byte
	var found string
	err := Walk(bundlePath, func(name string, r io.Reader) (bool, error) {
		if !match(name) {
			return false, nil
		}
		var err error
		content, err = io.ReadAll(r)
		found = name
		return true, err
	})
	if err != nil {
		return nil, "", err
	}
	if content == nil {
		return nil, "", fmt.Errorf("no matching file in bundle")
	}
	return content, found, nil
}

// List returns the names of the regular files in the bundle.
func List(bundlePath string) ([]string, error) {
	var names []string
	err := Walk(bundlePath, func(name string, _ io.Reader) (bool, error) {
		names = append(names, name)
		return false, nil
	})
	return names, err
}
