package validation

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"

	apperrors "github.com/FocuswithJustin/Compendium/core/errors"
)

func TestValidateMember(t *testing.T) {
	tests := []struct {
		name    string
		member  string
		wantErr error
	}{
		{"simple", "spells.json", nil},
		{"nested", "books/dmg.json", nil},
		{"inner dots", "books/../dmg.json", nil},
		{"empty", "", ErrEmptyName},
		{"parent", "../etc/passwd", ErrPathTraversal},
		{"hidden parent", "books/../../x.json", ErrPathTraversal},
		{"absolute", "/etc/passwd", ErrPathTraversal},
		{"backslash", `books\dmg.json`, ErrInvalidCharacter},
		{"null byte", "a\x00.json", ErrInvalidCharacter},
		{"too long", strings.Repeat("a", MaxNameLength+1), ErrNameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMember(tt.member)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMember(%q) error = %v", tt.member, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMember(%q) error = %v, want %v", tt.member, err, tt.wantErr)
			}
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("ValidateMember(%q) error = %v, want ErrInvalidInput", tt.member, err)
			}
		})
	}
}

func compressed(t *testing.T, c Compression) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch c {
	case CompressionXZ:
		w, err := xz.NewWriter(&buf)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte("{}"))
		w.Close()
	case CompressionGzip:
		w := gzip.NewWriter(&buf)
		w.Write([]byte("{}"))
		w.Close()
	default:
		buf.WriteString("{}")
	}
	return buf.Bytes()
}

func TestCheckCompression(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content Compression
		want    Compression
		wantErr bool
	}{
		{"plain", "a.json", CompressionNone, CompressionNone, false},
		{"xz", "a.json.xz", CompressionXZ, CompressionXZ, false},
		{"gzip", "a.json.GZ", CompressionGzip, CompressionGzip, false},
		{"unlabelled xz", "a.json", CompressionXZ, CompressionXZ, false},
		{"claims xz", "a.json.xz", CompressionNone, CompressionNone, true},
		{"claims gzip", "a.json.gz", CompressionXZ, CompressionXZ, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(bytes.NewReader(compressed(t, tt.content)))
			got, err := CheckCompression(r, tt.file)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckCompression() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("CheckCompression() error = %v, want ErrInvalidInput", err)
			}
			if got != tt.want {
				t.Errorf("CheckCompression() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckCompressionEmpty(t *testing.T) {
	got, err := CheckCompression(bufio.NewReader(strings.NewReader("")), "a.json")
	if err != nil || got != CompressionNone {
		t.Errorf("CheckCompression(empty) = %q, %v", got, err)
	}
}
