package app

import (
	"crypto/rand"
	"encoding/hex"
)

// newID produces a prefixed random hex identifier, e.g. "lst-4f3a…".
// Isolated here so the ID strategy can evolve independently.
func newID(prefix string) (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return prefix + "-" + hex.EncodeToString(b), nil
}
