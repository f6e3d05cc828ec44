package display

import (
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/oled-gol/model"
)

var (
	tuiTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	tuiPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466"))

	tuiHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

// frameMsg carries one packed frame into the bubbletea program
type frameMsg []byte

// tuiModel is the bubbletea model behind the TUI sink
type tuiModel struct {
	frame      string
	population int
	frames     int
}

func newTUIModel() tuiModel {
	return tuiModel{frame: renderBraille(new(model.Framebuffer))}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		fb := unpack(msg)
		m.frame = renderBraille(fb)
		m.population = fb.Population()
		m.frames++
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		tuiTitle.Render("game of life"),
		tuiPanel.Render(m.frame),
		tuiHint.Render(fmt.Sprintf("frame %d · population %d · q to quit", m.frames, m.population)),
	)
}

// TUI runs a bubbletea program and feeds it frames
type TUI struct {
	in      io.Reader
	out     io.Writer
	program *tea.Program
	done    chan struct{}
	once    sync.Once
	err     error
}

// NewTUI creates a TUI sink reading keys from in and drawing to out
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out, done: make(chan struct{})}
}

// Init starts the bubbletea program in the background
func (t *TUI) Init() error {
	t.program = tea.NewProgram(newTUIModel(),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithAltScreen(),
	)
	go func() {
		defer close(t.done)
		if _, err := t.program.Run(); err != nil {
			t.err = errors.Wrap(err, "[TUI] program failed")
		}
	}()
	return nil
}

// Clear shows an empty grid
func (t *TUI) Clear() error {
	return t.send(make([]byte, model.BufferSize))
}

// Draw hands a copy of the frame to the program
func (t *TUI) Draw(buf []byte) error {
	if err := checkSize(buf); err != nil {
		return err
	}
	frame := make([]byte, len(buf))
	copy(frame, buf)
	return t.send(frame)
}

func (t *TUI) send(frame frameMsg) error {
	if t.program == nil {
		return errors.Wrap(ErrClosed, "[TUI] not initialized")
	}
	select {
	case <-t.done:
		if t.err != nil {
			return t.err
		}
		return ErrClosed
	default:
	}
	t.program.Send(frame)
	return nil
}

// Done is closed once the user quits the program
func (t *TUI) Done() <-chan struct{} {
	return t.done
}

// Close stops the program and waits for it to restore the terminal
func (t *TUI) Close() error {
	t.once.Do(func() {
		if t.program != nil {
			t.program.Quit()
			<-t.done
		}
	})
	return nil
}
