// Package validation checks untrusted document names and content before
// they are decoded.
package validation

import (
	"bufio"
	"bytes"
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/Compendium/core/errors"
)

// MaxNameLength bounds the length of a bundle member name.
const MaxNameLength = 1024

// Validation failures. Each also matches errors.ErrInvalidInput.
var (
	ErrEmptyName        = fmt.Errorf("empty name: %w", errors.ErrInvalidInput)
	ErrNameTooLong      = fmt.Errorf("name too long: %w", errors.ErrInvalidInput)
	ErrInvalidCharacter = fmt.Errorf("invalid character in name: %w", errors.ErrInvalidInput)
	ErrPathTraversal    = fmt.Errorf("path traversal detected: %w", errors.ErrInvalidInput)
)

// ValidateMember checks a slash-separated bundle member name. Members are
// relative, stay below the bundle root and contain no control characters.
func ValidateMember(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%q: %w", name[:32]+"...", ErrNameTooLong)
	}
	for _, r := range name {
		if r == '\\' || unicode.IsControl(r) {
			return fmt.Errorf("%q: %w", name, ErrInvalidCharacter)
		}
	}
	if strings.HasPrefix(name, "/") {
		return fmt.Errorf("%q: absolute name: %w", name, ErrPathTraversal)
	}
	clean := path.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%q: %w", name, ErrPathTraversal)
	}
	return nil
}

// Compression is a stream compression detected from magic bytes.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionXZ   Compression = "xz"
	CompressionGzip Compression = "gzip"
)

var magicBytes = []struct {
	c     Compression
	magic []byte
}{
	{CompressionXZ, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{CompressionGzip, []byte{0x1f, 0x8b}},
}

// Suffix returns the file name suffix of c.
func (c Compression) Suffix() string {
	switch c {
	case CompressionXZ:
		return ".xz"
	case CompressionGzip:
		return ".gz"
	}
	return ""
}

// CompressionFromName returns the compression a file name claims.
func CompressionFromName(name string) Compression {
	lower := strings.ToLower(name)
	for _, sig := range magicBytes {
		if strings.HasSuffix(lower, sig.c.Suffix()) {
			return sig.c
		}
	}
	return CompressionNone
}

// DetectCompression identifies the compression of a stream from its first
// bytes.
func DetectCompression(header []byte) Compression {
	for _, sig := range magicBytes {
		if bytes.HasPrefix(header, sig.magic) {
			return sig.c
		}
	}
	return CompressionNone
}

// CheckCompression peeks at r and returns the stream's compression. A name
// that claims a compression the content does not have is an error; an
// unlabelled compressed stream is reported as compressed.
func CheckCompression(r *bufio.Reader, name string) (Compression, error) {
	// Short streams yield fewer bytes; read errors surface on the next read.
	header, _ := r.Peek(6)
	got := DetectCompression(header)
	claimed := CompressionFromName(name)
	if claimed != CompressionNone && claimed != got {
		what := string(got)
		if got == CompressionNone {
			what = "uncompressed"
		}
		return got, errors.NewParse(string(claimed), name, "content is "+what)
	}
	return got, nil
}
