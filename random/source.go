package random

import (
	"encoding/binary"
	"math/rand/v2"
)

// ByteSource fills a buffer with pseudo-random bytes
type ByteSource interface {
	FillBytes(buf []byte)
}

// Generator is a seeded PCG byte source
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator that always yields the same bytes for the same seed
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// FillBytes fills buf eight bytes at a time, little endian
func (g *Generator) FillBytes(buf []byte) {
	var word [8]byte
	for len(buf) > 0 {
		binary.LittleEndian.PutUint64(word[:], g.rng.Uint64())
		buf = buf[copy(buf, word[:]):]
	}
}
