package display

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/sheikhrachel/oled-gol/model"
)

// SSD1306 drives a 128x64 SSD1306 OLED over I²C.
// The panel's page layout is the framebuffer's layout, so frames are written as is.
type SSD1306 struct {
	busName string
	bus     i2c.BusCloser
	dev     *ssd1306.Dev
	blank   [model.BufferSize]byte
}

// NewSSD1306 creates a sink on the named I²C bus; an empty name picks the first one
func NewSSD1306(busName string) *SSD1306 {
	return &SSD1306{busName: busName}
}

// Init loads the host drivers, opens the bus and initializes the panel
func (s *SSD1306) Init() error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "[SSD1306.Init] failed to load host drivers")
	}

	bus, err := i2creg.Open(s.busName)
	if err != nil {
		return errors.Wrapf(err, "[SSD1306.Init] failed to open i2c bus %q", s.busName)
	}

	opts := ssd1306.DefaultOpts
	opts.W, opts.H = model.Width, model.Height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		_ = bus.Close()
		return errors.Wrap(err, "[SSD1306.Init] display not responding")
	}

	s.bus, s.dev = bus, dev
	return nil
}

// Clear blanks the panel
func (s *SSD1306) Clear() error {
	return s.write(s.blank[:], "[SSD1306.Clear]")
}

// Draw sends one frame to the panel
func (s *SSD1306) Draw(buf []byte) error {
	if err := checkSize(buf); err != nil {
		return err
	}
	return s.write(buf, "[SSD1306.Draw]")
}

func (s *SSD1306) write(buf []byte, tag string) error {
	if s.dev == nil {
		return errors.Wrap(ErrClosed, tag)
	}
	if _, err := s.dev.Write(buf); err != nil {
		return errors.Wrapf(err, "%s bus write failed", tag)
	}
	return nil
}

// Close turns the panel off and releases the bus
func (s *SSD1306) Close() error {
	if s.dev == nil {
		return nil
	}
	err := s.dev.Halt()
	if cerr := s.bus.Close(); err == nil {
		err = cerr
	}
	s.dev, s.bus = nil, nil
	return errors.Wrap(err, "[SSD1306.Close]")
}
