// Package hash wraps cespare/xxhash/v2 for the module's two hash-keyed
// lookups: the public ID() helper (kept from mebo's metric-name hashing) and
// Signature(), which folds an ordered sequence of strings into a single
// 64-bit key used to memoize a bind.Plan across repeated (Element,
// RecordShape) pairs (see bind/cache.go).
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Signature folds an ordered sequence of strings into a single xxHash64 key.
// Order matters: Signature("a", "b") != Signature("b", "a"). A 0x1 separator
// byte is written between parts so that Signature("ab", "c") and
// Signature("a", "bc") never collide on the naive concatenation alone.
func Signature(parts ...string) uint64 {
	d := xxhash.New()
	sep := []byte{0x1}
	for i, p := range parts {
		if i > 0 {
			_, _ = d.Write(sep)
		}
		_, _ = d.WriteString(p)
	}

	return d.Sum64()
}
