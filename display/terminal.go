package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

const (
	clearScreen = "\033[2J\033[H"
	cursorHome  = "\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Terminal draws frames as braille art on a writer, usually stdout
type Terminal struct {
	out    io.Writer
	frame  lipgloss.Style
	footer lipgloss.Style
}

// NewTerminal creates a terminal sink writing to out
func NewTerminal(out io.Writer) *Terminal {
	r := lipgloss.NewRenderer(out)
	return &Terminal{
		out: out,
		frame: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")),
		footer: r.NewStyle().
			Foreground(lipgloss.Color("#666688")),
	}
}

// Init hides the cursor
func (t *Terminal) Init() error {
	if _, err := io.WriteString(t.out, hideCursor); err != nil {
		return errors.Wrap(err, "[Terminal.Init] failed to write")
	}
	return nil
}

// Clear wipes the screen
func (t *Terminal) Clear() error {
	if _, err := io.WriteString(t.out, clearScreen); err != nil {
		return errors.Wrap(err, "[Terminal.Clear] failed to write")
	}
	return nil
}

// Draw repaints the frame in place
func (t *Terminal) Draw(buf []byte) error {
	if err := checkSize(buf); err != nil {
		return err
	}
	fb := unpack(buf)

	_, err := fmt.Fprintf(t.out, "%s%s\n%s\n",
		cursorHome,
		t.frame.Render(renderBraille(fb)),
		t.footer.Render(fmt.Sprintf("population %d", fb.Population())),
	)
	if err != nil {
		return errors.Wrap(err, "[Terminal.Draw] failed to write")
	}
	return nil
}

// Close restores the cursor
func (t *Terminal) Close() error {
	if _, err := io.WriteString(t.out, showCursor); err != nil {
		return errors.Wrap(err, "[Terminal.Close] failed to write")
	}
	return nil
}
