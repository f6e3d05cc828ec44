// Package engine runs the simulation loop: seed, draw, then step and draw forever.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/oled-gol/display"
	"github.com/sheikhrachel/oled-gol/model"
	"github.com/sheikhrachel/oled-gol/random"
	"github.com/sheikhrachel/oled-gol/utils"
)

// RandomPattern is the pattern name that seeds the grid with random bits
const RandomPattern = "random"

// Runner drives one simulation onto one sink
type Runner struct {
	cfg    utils.Config
	sink   display.Sink
	seeds  random.SeedSource
	delay  Delay
	logger *slog.Logger
	stats  *utils.Stats
	seed   model.Framebuffer // scratch for generation zero, copied into the stepper
}

// Option customizes a Runner
type Option func(*Runner)

// WithDelay replaces the inter-frame delay
func WithDelay(d Delay) Option {
	return func(r *Runner) { r.delay = d }
}

// WithLogger replaces the default logger
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a runner
func New(cfg utils.Config, sink display.Sink, seeds random.SeedSource, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		sink:   sink,
		seeds:  seeds,
		delay:  TimerDelay{},
		logger: slog.Default(),
		stats:  utils.NewStats(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stats returns the statistics of the current or last run
func (r *Runner) Stats() *utils.Stats {
	return r.stats
}

// Run seeds the grid and steps it until ctx ends or MaxGenerations is reached.
// Any sink failure is returned immediately; there is no retry and no skipped frame.
// Cancellation is a clean stop and returns nil.
func (r *Runner) Run(ctx context.Context) (err error) {
	seed, err := r.seeds.Seed()
	if err != nil {
		return errors.Wrap(err, "[Run] failed to acquire seed")
	}
	gen := random.NewGenerator(seed)

	initial, err := r.seedGrid(gen, r.cfg.Pattern)
	if err != nil {
		return err
	}

	if err = r.sink.Init(); err != nil {
		return errors.Wrap(err, "[Run] display init failed")
	}
	defer func() {
		if cerr := r.sink.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "[Run] display close failed")
		}
	}()

	if err = r.sink.Clear(); err != nil {
		return errors.Wrap(err, "[Run] display clear failed")
	}

	stepper := model.NewStepper(initial, r.cfg.Workers)
	if err = r.sink.Draw(stepper.Current().Bytes()); err != nil {
		return errors.Wrap(err, "[Run] failed to draw initial generation")
	}

	r.stats = utils.NewStats()
	r.logger.Info("simulation started",
		"seed", seed,
		"pattern", r.cfg.Pattern,
		"population", initial.Population(),
		"workers", r.cfg.Workers,
	)

	var (
		history       model.History
		lastFrameTime = time.Now()
	)
	history.Update(stepper.Current())

	for generation := 1; r.cfg.MaxGenerations == 0 || generation <= r.cfg.MaxGenerations; generation++ {
		if ctx.Err() != nil {
			break
		}

		stepper.Step()
		current := stepper.Current()
		if err = r.sink.Draw(current.Bytes()); err != nil {
			return errors.Wrapf(err, "[Run] draw failed at generation %d", generation)
		}

		population := current.Population()
		r.stats.Update(generation, population, time.Since(lastFrameTime))
		lastFrameTime = time.Now()
		history.Update(current)

		if r.cfg.ReseedOnStagnation && (population == 0 || history.IsStagnant()) {
			if err = r.reseed(stepper, gen, &history, generation); err != nil {
				return err
			}
		}

		if r.cfg.LogEvery > 0 && generation%r.cfg.LogEvery == 0 {
			r.logger.Info("generation",
				"n", generation,
				"population", population,
				"avg_population", r.stats.AveragePopulation,
				"gen_per_sec", r.stats.GenerationsPerSecond,
			)
		}

		if r.delay.Wait(ctx, r.cfg.FrameDelay) != nil {
			break
		}
	}

	r.logger.Info("simulation stopped",
		"generations", r.stats.TotalGenerations,
		"runtime", r.stats.Runtime().Round(time.Millisecond),
		"reseeds", r.stats.Reseeds,
	)
	return nil
}

// seedGrid builds a generation zero from the named pattern into the runner's scratch buffer
func (r *Runner) seedGrid(gen *random.Generator, pattern string) (*model.Framebuffer, error) {
	r.seed.Clear()
	if pattern == "" || pattern == RandomPattern {
		r.seed.FillRandom(gen)
		return &r.seed, nil
	}

	p, err := model.LookupPattern(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "[Run] bad initial pattern")
	}
	p.Place(&r.seed, model.Width/2-1, model.Height/2-1)
	return &r.seed, nil
}

// reseed replaces a dead or cycling grid with fresh random bits and draws it
func (r *Runner) reseed(stepper *model.Stepper, gen *random.Generator, history *model.History, generation int) error {
	fb, err := r.seedGrid(gen, RandomPattern)
	if err != nil {
		return err
	}
	stepper.Reseed(fb)
	history.Reset()
	history.Update(stepper.Current())
	r.stats.Reseeds++

	if err = r.sink.Draw(stepper.Current().Bytes()); err != nil {
		return errors.Wrapf(err, "[Run] failed to draw reseeded grid at generation %d", generation)
	}

	r.logger.Info("reseeded stagnant grid", "generation", generation, "population", fb.Population())
	return nil
}
