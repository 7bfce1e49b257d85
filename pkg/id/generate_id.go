package id

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Derive32 returns the deterministic 32-hex record key for a seed tuple,
// e.g. Derive32("vault", admin, mint). Seeds are delimited so that
// ("ab", "c") and ("a", "bc") never collide.
func Derive32(kind string, seeds ...string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	for _, s := range seeds {
		h.Write([]byte{0})
		h.Write([]byte(s))
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}
