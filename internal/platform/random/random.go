// Package random provides seed generation and seeded sources for puzzle
// generation.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Seeder yields seeds for new session random sources.
type Seeder interface {
	NewSeed() (int64, error)
}

// CryptoSeeder draws seeds from crypto/rand.
type CryptoSeeder struct{}

func (CryptoSeeder) NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// FixedSeeder always returns the same seed. Used for replays and previews.
type FixedSeeder int64

func (s FixedSeeder) NewSeed() (int64, error) { return int64(s), nil }

// New returns a deterministic generator for seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}
