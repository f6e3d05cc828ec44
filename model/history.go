package model

// historySize is how many recent generations are remembered for cycle detection
const historySize = 5

// History remembers the hashes of recent generations
type History struct {
	hashes []string
}

// Update records fb as the newest generation
func (h *History) Update(fb *Framebuffer) {
	h.hashes = append(h.hashes, fb.Hash())
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether the newest generation repeats one of the two before it,
// i.e. the grid is a still life or a period-2 oscillator
func (h *History) IsStagnant() bool {
	n := len(h.hashes)
	if n < 3 {
		return false
	}
	latest := h.hashes[n-1]
	return h.hashes[n-2] == latest || h.hashes[n-3] == latest
}

// Reset forgets all recorded generations
func (h *History) Reset() {
	h.hashes = nil
}
