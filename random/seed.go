package random

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/pkg/errors"
)

// SeedSource provides the single integer the generator is seeded with
type SeedSource interface {
	Seed() (uint64, error)
}

// EntropySeed reads the seed from the operating system entropy pool.
// It plays the part of a floating analog input sampled once at boot.
type EntropySeed struct{}

// Seed returns eight bytes of OS entropy as an integer
func (EntropySeed) Seed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "[EntropySeed.Seed] failed to read entropy")
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// FixedSeed always returns the same value, for reproducible runs
type FixedSeed uint64

// Seed returns the fixed value
func (s FixedSeed) Seed() (uint64, error) {
	return uint64(s), nil
}
