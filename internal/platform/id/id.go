package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers. An id is assigned once and never
// reused, even after the record it names is permanently deleted.
type Generator interface {
	New() string
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
