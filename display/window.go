//go:build !headless

package display

import (
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/oled-gol/model"
	"github.com/sheikhrachel/oled-gol/utils"
)

// Window shows frames in a desktop window scaled up from the panel resolution
type Window struct {
	cfg       utils.WindowConfig
	mu        sync.Mutex
	pixels    []byte // RGBA
	firstDraw chan struct{}
	drawOnce  sync.Once
	closing   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
	started   atomic.Bool
	err       error
}

// NewWindow creates a window sink
func NewWindow(cfg utils.WindowConfig) Sink {
	return &Window{
		cfg:       cfg,
		pixels:    make([]byte, model.Width*model.Height*4),
		firstDraw: make(chan struct{}),
		closing:   make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// windowGame adapts Window to ebiten.Game
type windowGame struct {
	w *Window
}

func (g *windowGame) Update() error {
	select {
	case <-g.w.closing:
		return ebiten.Termination
	default:
		return nil
	}
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.w.mu.Lock()
	screen.WritePixels(g.w.pixels)
	g.w.mu.Unlock()
	g.w.drawOnce.Do(func() { close(g.w.firstDraw) })
}

func (g *windowGame) Layout(_, _ int) (int, int) {
	return model.Width, model.Height
}

// RunMain runs the ebiten loop until the window is closed. Ebiten needs the main goroutine,
// so the caller runs the simulation elsewhere and calls RunMain from main.
func (w *Window) RunMain() error {
	w.started.Store(true)
	defer close(w.done)

	select {
	case <-w.closing:
		return nil
	default:
	}

	ebiten.SetWindowSize(model.Width*w.cfg.Scale, model.Height*w.cfg.Scale)
	ebiten.SetWindowTitle(w.cfg.Title)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(&windowGame{w: w}); err != nil {
		w.err = errors.Wrap(err, "[Window] ebiten failed")
		return w.err
	}
	return nil
}

// Init waits until RunMain has drawn the window once
func (w *Window) Init() error {
	select {
	case <-w.firstDraw:
		return nil
	case <-w.done:
		if w.err != nil {
			return errors.Wrap(w.err, "[Window.Init]")
		}
		return errors.Wrap(ErrClosed, "[Window.Init] window closed before first frame")
	}
}

// Clear paints the window black
func (w *Window) Clear() error {
	return w.paint(new(model.Framebuffer))
}

// Draw converts the packed frame to RGBA for the next ebiten draw
func (w *Window) Draw(buf []byte) error {
	if err := checkSize(buf); err != nil {
		return err
	}
	return w.paint(unpack(buf))
}

func (w *Window) paint(fb *model.Framebuffer) error {
	select {
	case <-w.done:
		if w.err != nil {
			return w.err
		}
		return ErrClosed
	default:
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for y := range model.Height {
		for x := range model.Width {
			var v byte
			if fb.Get(x, y) {
				v = 0xff
			}
			i := (y*model.Width + x) * 4
			w.pixels[i], w.pixels[i+1], w.pixels[i+2], w.pixels[i+3] = v, v, v, 0xff
		}
	}
	return nil
}

// Done is closed when the window goes away
func (w *Window) Done() <-chan struct{} {
	return w.done
}

// Close asks ebiten to terminate and waits for it. A window whose RunMain has not started
// never opens.
func (w *Window) Close() error {
	w.closeOnce.Do(func() { close(w.closing) })
	if w.started.Load() {
		<-w.done
	}
	return nil
}
