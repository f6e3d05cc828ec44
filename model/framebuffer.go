package model

import (
	"crypto/md5"
	"fmt"
	"math/bits"

	"github.com/sheikhrachel/oled-gol/random"
)

const (
	// Width is the number of cell columns, one per display pixel
	Width = 128
	// Height is the number of cell rows
	Height = 64
	// BufferSize is the packed size of a frame, eight cells per byte
	BufferSize = Width * Height / 8
)

// Wraparound lookups need three distinct cells per axis.
const (
	_ uint = Width - 3
	_ uint = Height - 3
)

// Framebuffer is the packed grid.
//
// Cell (x, y) lives in byte x + (y/8)*Width at bit y%8, least significant bit first:
// each byte is a column of eight vertically stacked cells, which is the page layout
// monochrome OLED controllers expect.
type Framebuffer [BufferSize]byte

// index returns the byte index and mask of a cell
func index(x, y int) (int, byte) {
	return x + (y/8)*Width, 1 << (y % 8)
}

// Get returns whether the cell at (x, y) is alive. Coordinates must already be in range.
func (fb *Framebuffer) Get(x, y int) bool {
	i, mask := index(x, y)
	return fb[i]&mask != 0
}

// Toggle flips the cell at (x, y). Coordinates must already be in range.
func (fb *Framebuffer) Toggle(x, y int) {
	i, mask := index(x, y)
	fb[i] ^= mask
}

// FillRandom overwrites every cell with random bits from src
func (fb *Framebuffer) FillRandom(src random.ByteSource) {
	src.FillBytes(fb[:])
}

// Clear kills every cell
func (fb *Framebuffer) Clear() {
	*fb = Framebuffer{}
}

// Bytes returns the packed buffer backing fb
func (fb *Framebuffer) Bytes() []byte {
	return fb[:]
}

// Population returns the number of living cells
func (fb *Framebuffer) Population() (count int) {
	for _, b := range fb {
		count += bits.OnesCount8(b)
	}
	return
}

// Hash returns an MD5 digest of the packed buffer
func (fb *Framebuffer) Hash() string {
	return fmt.Sprintf("%x", md5.Sum(fb[:]))
}
