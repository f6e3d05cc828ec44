package model

import (
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/oled-gol/rules"
)

const pages = Height / 8

// Neighbors counts the living cells among the eight toroidal neighbors of (x, y)
func Neighbors(fb *Framebuffer, x, y int) int {
	var (
		left  = (x + Width - 1) % Width
		right = (x + 1) % Width
		up    = (y + Height - 1) % Height
		down  = (y + 1) % Height
		count int
	)

	for _, c := range [8][2]int{
		{left, up}, {x, up}, {right, up},
		{left, y}, {right, y},
		{left, down}, {x, down}, {right, down},
	} {
		if fb.Get(c[0], c[1]) {
			count++
		}
	}
	return count
}

// stepRows writes generation changes for rows [startRow, endRow) into next, reading only current
func stepRows(current, next *Framebuffer, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := range Width {
			if rules.Flips(Neighbors(current, x, y), current.Get(x, y)) {
				next.Toggle(x, y)
			}
		}
	}
}

// Step computes the generation after current into next.
// next starts as a copy of current and only the cells that change are toggled.
// current and next must not be the same framebuffer.
func Step(current, next *Framebuffer) {
	*next = *current
	stepRows(current, next, 0, Height)
}

// StepParallel is Step split over workers. Bands are whole 8-row pages, so no two
// workers ever write the same byte of next.
func StepParallel(current, next *Framebuffer, workers int) {
	if workers <= 1 {
		Step(current, next)
		return
	}
	*next = *current

	var (
		eg             errgroup.Group
		pagesPerWorker = (pages + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startPage = i * pagesPerWorker
			endPage   = min(startPage+pagesPerWorker, pages)
		)
		if startPage >= pages {
			break
		}

		eg.Go(func() error {
			stepRows(current, next, startPage*8, endPage*8)
			return nil
		})
	}

	// Workers never fail; Wait is the join.
	_ = eg.Wait()
}

// Stepper owns the two framebuffers of a running simulation
type Stepper struct {
	current    *Framebuffer
	next       *Framebuffer
	workers    int
	generation int
}

// NewStepper creates a stepper whose first generation is a copy of seed
func NewStepper(seed *Framebuffer, workers int) *Stepper {
	current := *seed
	return &Stepper{
		current: &current,
		next:    new(Framebuffer),
		workers: workers,
	}
}

// Step advances one generation and swaps the buffers
func (s *Stepper) Step() {
	StepParallel(s.current, s.next, s.workers)
	s.current, s.next = s.next, s.current
	s.generation++
}

// Current returns the latest generation. It is only valid until the next Step.
func (s *Stepper) Current() *Framebuffer {
	return s.current
}

// Generation returns how many steps have run since the last seed
func (s *Stepper) Generation() int {
	return s.generation
}

// Reseed replaces the current generation and resets the counter
func (s *Stepper) Reseed(seed *Framebuffer) {
	*s.current = *seed
	s.generation = 0
}
