package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Pattern is a set of live cell offsets relative to a placement origin
type Pattern [][2]int

var patterns = map[string]Pattern{
	"glider":  {{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	"blinker": {{0, 0}, {1, 0}, {2, 0}},
	"block":   {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	"beacon":  {{0, 0}, {1, 0}, {0, 1}, {3, 2}, {2, 3}, {3, 3}},
}

// ErrUnknownPattern is returned by LookupPattern for names it does not know
var ErrUnknownPattern = errors.New("model: unknown pattern")

// LookupPattern returns the named pattern
func LookupPattern(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "[LookupPattern] %q", name)
	}
	return p, nil
}

// PatternNames lists the known pattern names in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Place brings the pattern's cells to life with its origin at (startX, startY), wrapping at the edges
func (p Pattern) Place(fb *Framebuffer, startX, startY int) {
	for _, c := range p {
		x := ((startX+c[0])%Width + Width) % Width
		y := ((startY+c[1])%Height + Height) % Height
		if !fb.Get(x, y) {
			fb.Toggle(x, y)
		}
	}
}
