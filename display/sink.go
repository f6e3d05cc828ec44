// Package display holds the render sinks a packed framebuffer can be drawn to.
//
// Every sink accepts exactly model.BufferSize bytes in the framebuffer's page layout.
// Sinks are not retried: any error they return ends the simulation.
package display

import (
	"os"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/oled-gol/model"
	"github.com/sheikhrachel/oled-gol/utils"
)

var (
	// ErrBufferSize is returned by Draw for a buffer that is not one packed frame
	ErrBufferSize = errors.New("display: buffer is not one packed frame")

	// ErrClosed is returned when drawing to a sink whose output has gone away
	ErrClosed = errors.New("display: sink closed")

	// ErrUnavailable is returned by sinks that were not compiled into this build
	ErrUnavailable = errors.New("display: sink unavailable in this build")

	// ErrUnknownSink is returned by Open for names it does not know
	ErrUnknownSink = errors.New("display: unknown sink")
)

// Sink accepts packed monochrome frames
type Sink interface {
	// Init prepares the output once before anything is drawn
	Init() error
	// Clear blanks the output
	Clear() error
	// Draw shows one packed frame
	Draw(buf []byte) error
	// Close releases the output
	Close() error
}

// DoneNotifier is implemented by sinks the user can close from their side, such as a window
type DoneNotifier interface {
	Done() <-chan struct{}
}

// MainLooper is implemented by sinks whose event loop must own the main goroutine.
// RunMain blocks until the sink is closed; the simulation has to run elsewhere meanwhile.
type MainLooper interface {
	RunMain() error
}

// Names lists the sinks Open understands
func Names() []string {
	return []string{"terminal", "tui", "window", "ssd1306", "memory"}
}

// Open builds the named sink
func Open(name string, cfg utils.Config) (Sink, error) {
	switch name {
	case "terminal":
		return NewTerminal(os.Stdout), nil
	case "tui":
		return NewTUI(os.Stdin, os.Stdout), nil
	case "window":
		return NewWindow(cfg.Window), nil
	case "ssd1306":
		return NewSSD1306(cfg.I2C.Bus), nil
	case "memory":
		return NewMemory(), nil
	}
	return nil, errors.Wrapf(ErrUnknownSink, "[Open] %q", name)
}

// checkSize rejects buffers that are not exactly one frame
func checkSize(buf []byte) error {
	if len(buf) != model.BufferSize {
		return errors.Wrapf(ErrBufferSize, "got %d bytes, want %d", len(buf), model.BufferSize)
	}
	return nil
}

// unpack copies a checked buffer into a framebuffer
func unpack(buf []byte) *model.Framebuffer {
	fb := new(model.Framebuffer)
	copy(fb[:], buf)
	return fb
}
