package cache

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Key identifies a rendering by the BLAKE3 hash of its inputs.
type Key [32]byte

// NewKey hashes parts in order. Each part is length-prefixed so that
// ("ab", "c") and ("a", "bc") differ.
func NewKey(parts ...string) Key {
	h := blake3.New()
	var n [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(n[:], uint64(len(p)))
		_, _ = h.Write(n[:])
		_, _ = h.Write([]byte(p))
	}
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// String returns the lowercase hex form.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// ParseKey reads a key from its hex form.
func ParseKey(s string) (Key, bool) {
	var k Key
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(k) {
		return Key{}, false
	}
	copy(k[:], b)
	return k, true
}

// IsZero reports whether k is the zero key.
func (k Key) IsZero() bool {
	return k == Key{}
}
