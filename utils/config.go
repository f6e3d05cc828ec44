package utils

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation
var ErrInvalidConfig = errors.New("utils: invalid configuration")

// Config holds the runtime configuration. Grid dimensions are compile-time constants in model.
type Config struct {
	Sink               string        `yaml:"sink"`
	FrameDelay         time.Duration `yaml:"frame_delay"`
	Seed               uint64        `yaml:"seed"` // 0 means read a seed from entropy
	Pattern            string        `yaml:"pattern"`
	Workers            int           `yaml:"workers"`
	MaxGenerations     int           `yaml:"max_generations"` // 0 runs until interrupted
	ReseedOnStagnation bool          `yaml:"reseed_on_stagnation"`
	LogEvery           int           `yaml:"log_every"`
	Window             WindowConfig  `yaml:"window"`
	I2C                I2CConfig     `yaml:"i2c"`
}

// WindowConfig configures the desktop window sink
type WindowConfig struct {
	Scale int    `yaml:"scale"`
	Title string `yaml:"title"`
}

// I2CConfig configures the SSD1306 sink
type I2CConfig struct {
	Bus string `yaml:"bus"` // empty picks the first registered bus
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Sink:       "terminal",
		FrameDelay: 10 * time.Millisecond,
		Pattern:    "random",
		Workers:    1,
		LogEvery:   100,
		Window: WindowConfig{
			Scale: 6,
			Title: "oled-gol",
		},
	}
}

// LoadConfig loads configuration from a YAML file over the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}

	return config, nil
}

// Validate rejects values the simulation cannot run with
func (c Config) Validate() error {
	switch {
	case c.Sink == "":
		return errors.Wrap(ErrInvalidConfig, "sink must be set")
	case c.FrameDelay < 0:
		return errors.Wrapf(ErrInvalidConfig, "frame_delay %v is negative", c.FrameDelay)
	case c.Workers < 1:
		return errors.Wrapf(ErrInvalidConfig, "workers %d must be at least 1", c.Workers)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_generations %d is negative", c.MaxGenerations)
	case c.LogEvery < 0:
		return errors.Wrapf(ErrInvalidConfig, "log_every %d is negative", c.LogEvery)
	case c.Window.Scale < 1:
		return errors.Wrapf(ErrInvalidConfig, "window.scale %d must be at least 1", c.Window.Scale)
	}
	return nil
}
