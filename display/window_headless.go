//go:build headless

package display

import (
	"github.com/sheikhrachel/oled-gol/utils"
)

// headlessWindow stands in for the window sink in builds without a graphics stack
type headlessWindow struct{}

// NewWindow returns a sink that always fails with ErrUnavailable
func NewWindow(utils.WindowConfig) Sink {
	return headlessWindow{}
}

func (headlessWindow) Init() error       { return ErrUnavailable }
func (headlessWindow) Clear() error      { return ErrUnavailable }
func (headlessWindow) Draw([]byte) error { return ErrUnavailable }
func (headlessWindow) Close() error      { return nil }
