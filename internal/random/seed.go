// Package random provides seed generation for dice rollers.
//
// It uses crypto/rand to generate high-entropy seeds suitable for
// initializing the pseudo-random source behind a roller.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// SeedSource records where a roller seed came from.
type SeedSource string

const (
	// SeedSourceConfigured marks a seed supplied by configuration.
	SeedSourceConfigured SeedSource = "configured"
	// SeedSourceCrypto marks a seed drawn from crypto/rand.
	SeedSourceCrypto SeedSource = "crypto"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns configured when it is non-zero, otherwise a fresh
// crypto seed. Zero is reserved to mean "pick one for me".
func ResolveSeed(configured int64) (int64, SeedSource, error) {
	if configured != 0 {
		return configured, SeedSourceConfigured, nil
	}
	seed, err := NewSeed()
	if err != nil {
		return 0, "", err
	}
	return seed, SeedSourceCrypto, nil
}
