package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sheikhrachel/oled-gol/display"
)

var (
	configFile  string
	sinkName    string
	frameDelay  time.Duration
	seed        uint64
	pattern     string
	workers     int
	generations int
	benchGens   int
	reseed      bool
	verbose     bool
)

// main registers the run and bench commands and exits non-zero when a command fails
func main() {
	rootCmd := &cobra.Command{
		Use:          "oled-gol",
		Short:        "Conway's Game of Life on a 128x64 monochrome display",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 reads one from entropy)")
	rootCmd.PersistentFlags().StringVar(&pattern, "pattern", "random", "initial pattern ("+strings.Join(patternChoices(), ", ")+")")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "goroutines per generation")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation on a display sink",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&sinkName, "sink", "terminal", "display sink ("+strings.Join(display.Names(), ", ")+")")
	runCmd.Flags().DurationVar(&frameDelay, "delay", 10*time.Millisecond, "delay between generations")
	runCmd.Flags().IntVar(&generations, "generations", 0, "stop after this many generations (0 runs until interrupted)")
	runCmd.Flags().BoolVar(&reseed, "reseed", false, "reseed the grid when it dies or stagnates")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "step the simulation headless and report throughput",
		Args:  cobra.NoArgs,
		RunE:  runBenchmark,
	}
	benchCmd.Flags().IntVar(&benchGens, "generations", 1000, "generations to run")

	rootCmd.AddCommand(runCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
