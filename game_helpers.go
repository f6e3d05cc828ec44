package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/oled-gol/display"
	"github.com/sheikhrachel/oled-gol/engine"
	"github.com/sheikhrachel/oled-gol/model"
	"github.com/sheikhrachel/oled-gol/random"
	"github.com/sheikhrachel/oled-gol/utils"
)

// loadConfig reads the config file if one was given and applies explicitly set flags over it
func loadConfig(cmd *cobra.Command) (utils.Config, error) {
	config := utils.DefaultConfig()
	if configFile != "" {
		var err error
		if config, err = utils.LoadConfig(configFile); err != nil {
			return config, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("sink") {
		config.Sink = sinkName
	}
	if flags.Changed("delay") {
		config.FrameDelay = frameDelay
	}
	if flags.Changed("seed") {
		config.Seed = seed
	}
	if flags.Changed("pattern") {
		config.Pattern = pattern
	}
	if flags.Changed("workers") {
		config.Workers = workers
	}
	if flags.Changed("generations") {
		config.MaxGenerations = generations
	}
	if flags.Changed("reseed") {
		config.ReseedOnStagnation = reseed
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "[loadConfig]")
	}
	if err := checkChoices(config); err != nil {
		return config, errors.Wrap(err, "[loadConfig]")
	}
	return config, nil
}

// patternChoices lists every accepted initial pattern
func patternChoices() []string {
	return append([]string{engine.RandomPattern}, model.PatternNames()...)
}

// checkChoices rejects sink and pattern names nothing can build
func checkChoices(config utils.Config) error {
	if !slices.Contains(display.Names(), config.Sink) {
		return errors.Wrapf(utils.ErrInvalidConfig, "sink %q is not one of %s",
			config.Sink, strings.Join(display.Names(), ", "))
	}
	if !slices.Contains(patternChoices(), config.Pattern) {
		return errors.Wrapf(utils.ErrInvalidConfig, "pattern %q is not one of %s",
			config.Pattern, strings.Join(patternChoices(), ", "))
	}
	return nil
}

// newLogger logs to stderr. Sinks that paint the terminal only get warnings unless verbose is set.
func newLogger(sink string) *slog.Logger {
	level := slog.LevelInfo
	if sink == "terminal" || sink == "tui" {
		level = slog.LevelWarn
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// seedSource picks a fixed seed when one is configured
func seedSource(config utils.Config) random.SeedSource {
	if config.Seed != 0 {
		return random.FixedSeed(config.Seed)
	}
	return random.EntropySeed{}
}

// runSimulation drives the configured sink until interrupted or the sink goes away
func runSimulation(cmd *cobra.Command, _ []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(config.Sink)
	slog.SetDefault(logger)

	sink, err := display.Open(config.Sink, config)
	if err != nil {
		logger.Error("cannot open display", "sink", config.Sink, "err", err)
		return err
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if notifier, ok := sink.(display.DoneNotifier); ok {
		go func() {
			select {
			case <-notifier.Done():
				logger.Debug("display closed by user")
				stop()
			case <-ctx.Done():
			}
		}()
	}

	runner := engine.New(config, sink, seedSource(config), engine.WithLogger(logger))
	if looper, ok := sink.(display.MainLooper); ok {
		err = runBesideMainLoop(ctx, runner, sink, looper)
	} else {
		err = runner.Run(ctx)
	}
	if err != nil {
		logger.Error("simulation halted", "err", err)
		return err
	}
	return nil
}

// runBesideMainLoop gives the main goroutine to the sink's event loop and runs the simulation
// on another goroutine. Closing the sink when the simulation ends releases the loop.
func runBesideMainLoop(ctx context.Context, runner *engine.Runner, sink display.Sink, looper display.MainLooper) error {
	errc := make(chan error, 1)
	go func() {
		err := runner.Run(ctx)
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "[runBesideMainLoop] display close failed")
		}
		errc <- err
	}()

	loopErr := looper.RunMain()
	if err := <-errc; err != nil {
		return err
	}
	return errors.Wrap(loopErr, "[runBesideMainLoop] display loop failed")
}

// runBenchmark steps the grid into a memory sink as fast as possible
func runBenchmark(cmd *cobra.Command, _ []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	config.Sink = "memory"
	config.FrameDelay = 0
	config.MaxGenerations = benchGens
	config.LogEvery = 0

	sink := display.NewMemory()
	sink.KeepFrames = 1

	runner := engine.New(config, sink, seedSource(config), engine.WithLogger(newLogger(config.Sink)))
	if err = runner.Run(cmd.Context()); err != nil {
		return err
	}

	displayBenchmark(runner.Stats(), config)
	return nil
}

// displayBenchmark prints throughput and a population plot
func displayBenchmark(stats *utils.Stats, config utils.Config) {
	fmt.Printf("Generations: %d | Workers: %d | Runtime: %v\n",
		stats.TotalGenerations, config.Workers, stats.Runtime().Round(time.Millisecond))
	fmt.Printf("Performance: %.1f gen/sec | Final population: %d | Avg Pop: %.1f | Reseeds: %d\n",
		stats.OverallRate(), stats.Population, stats.AveragePopulation, stats.Reseeds)

	if len(stats.PopulationHistory) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(stats.PopulationHistory,
			asciigraph.Height(12),
			asciigraph.Width(72),
			asciigraph.Caption("population"),
		))
	}
}
