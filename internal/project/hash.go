package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Sum hashes raw bytes.
func Sum(data []byte) Digest {
	return sha256.Sum256(data)
}

// Combine строит общий хеш: H( first || d1 || d2 ... ).
// Порядок deps должен быть детерминированным.
func Combine(first Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// String returns the lower-case hex form.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d was never set.
func (d Digest) IsZero() bool {
	return d == Digest{}
}
