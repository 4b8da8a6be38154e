package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/Compendium/internal/validation"
)

// File is one document to write into a bundle.
type File struct {
	Name    string
	Content []byte
}

// epoch is the fixed modification time of bundle members, so identical
// inputs produce identical bundles.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// WriteBundle writes files under a root directory named root to dst. The
// compression follows the suffix of dst. Files are sorted by name.
func WriteBundle(dst, root string, files []File) (err error) {
	if !IsBundle(dst) {
		return fmt.Errorf("unsupported bundle format: %s", dst)
	}
	for _, f := range files {
		if err := validation.ValidateMember(filepath.ToSlash(f.Name)); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create bundle: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	var cw io.WriteCloser
	if strings.HasSuffix(dst, ".tar.xz") {
		if cw, err = xz.NewWriter(out); err != nil {
			return fmt.Errorf("xz writer: %w", err)
		}
	} else {
		cw = gzip.NewWriter(out)
	}

	sorted := append([]File(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	tw := tar.NewWriter(cw)
	for _, f := range sorted {
		header := &tar.Header{
			Name:     root + "/" + filepath.ToSlash(f.Name),
			Mode:     0o644,
			Size:     int64(len(f.Content)),
			ModTime:  epoch,
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("write header %s: %w", f.Name, err)
		}
		if _, err := tw.Write(f.Content); err != nil {
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	return cw.Close()
}

// CollectDir reads every file under dir whose name satisfies keep, with
// names relative to dir.
func CollectDir(dir string, keep func(name string) bool) ([]File, error) {
	var files []File
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if keep != nil && !keep(rel) {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, File{Name: filepath.ToSlash(rel), Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", dir, err)
	}
	return files, nil
}
