package display

import "github.com/pkg/errors"

// Memory keeps every drawn frame. It backs headless benchmarks and tests.
type Memory struct {
	Calls  []string
	Frames [][]byte

	// Injected failures
	InitErr   error
	ClearErr  error
	DrawErr   error
	FailAfter int // Draw fails with DrawErr once this many frames were accepted, if DrawErr is set

	// KeepFrames limits retained frames; 0 keeps them all
	KeepFrames int

	accepted int
}

// NewMemory creates an empty memory sink
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Init() error {
	m.Calls = append(m.Calls, "init")
	return m.InitErr
}

func (m *Memory) Clear() error {
	m.Calls = append(m.Calls, "clear")
	return m.ClearErr
}

func (m *Memory) Draw(buf []byte) error {
	m.Calls = append(m.Calls, "draw")
	if err := checkSize(buf); err != nil {
		return err
	}
	if m.DrawErr != nil && m.accepted >= m.FailAfter {
		return errors.Wrap(m.DrawErr, "[Memory.Draw]")
	}

	frame := make([]byte, len(buf))
	copy(frame, buf)
	m.Frames = append(m.Frames, frame)
	m.accepted++
	if m.KeepFrames > 0 && len(m.Frames) > m.KeepFrames {
		m.Frames = m.Frames[1:]
	}
	return nil
}

func (m *Memory) Close() error {
	m.Calls = append(m.Calls, "close")
	return nil
}

// Accepted returns how many frames were drawn successfully
func (m *Memory) Accepted() int {
	return m.accepted
}

// Last returns the most recent frame, or nil
func (m *Memory) Last() []byte {
	if len(m.Frames) == 0 {
		return nil
	}
	return m.Frames[len(m.Frames)-1]
}
