package engine_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sheikhrachel/oled-gol/display"
	"github.com/sheikhrachel/oled-gol/engine"
	"github.com/sheikhrachel/oled-gol/model"
	"github.com/sheikhrachel/oled-gol/random"
	"github.com/sheikhrachel/oled-gol/utils"
)

// recordingDelay returns immediately and remembers every requested wait
type recordingDelay struct {
	waits  []time.Duration
	cancel context.CancelFunc
	after  int
}

func (d *recordingDelay) Wait(ctx context.Context, wait time.Duration) error {
	d.waits = append(d.waits, wait)
	if d.cancel != nil && len(d.waits) >= d.after {
		d.cancel()
	}
	return ctx.Err()
}

type failingSeed struct{}

func (failingSeed) Seed() (uint64, error) {
	return 0, errors.New("adc not ready")
}

var _ = Describe("Runner", func() {
	var (
		cfg   utils.Config
		sink  *display.Memory
		delay *recordingDelay
		quiet *slog.Logger
	)

	BeforeEach(func() {
		cfg = utils.DefaultConfig()
		cfg.Sink = "memory"
		cfg.MaxGenerations = 5
		cfg.FrameDelay = 10 * time.Millisecond
		sink = display.NewMemory()
		delay = &recordingDelay{}
		quiet = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	run := func(ctx context.Context, seeds random.SeedSource) (*engine.Runner, error) {
		r := engine.New(cfg, sink, seeds, engine.WithDelay(delay), engine.WithLogger(quiet))
		return r, r.Run(ctx)
	}

	It("seeds, draws and steps in order", func() {
		_, err := run(context.Background(), random.FixedSeed(42))
		Expect(err).NotTo(HaveOccurred())

		Expect(sink.Calls).To(Equal([]string{
			"init", "clear", "draw", "draw", "draw", "draw", "draw", "draw", "close",
		}))
		Expect(delay.waits).To(HaveLen(5))
		Expect(delay.waits).To(HaveEach(10 * time.Millisecond))
	})

	It("draws the seeded grid first and one generation per frame after", func() {
		_, err := run(context.Background(), random.FixedSeed(42))
		Expect(err).NotTo(HaveOccurred())

		var expected model.Framebuffer
		expected.FillRandom(random.NewGenerator(42))
		Expect(sink.Frames[0]).To(Equal(expected.Bytes()))

		for i := 1; i < len(sink.Frames); i++ {
			var current, next model.Framebuffer
			copy(current[:], sink.Frames[i-1])
			model.Step(&current, &next)
			Expect(sink.Frames[i]).To(Equal(next.Bytes()), "frame %d", i)
		}
	})

	It("starts from a named pattern", func() {
		cfg.Pattern = "blinker"
		cfg.MaxGenerations = 4

		_, err := run(context.Background(), random.FixedSeed(1))
		Expect(err).NotTo(HaveOccurred())

		Expect(sink.Frames).To(HaveLen(5))
		Expect(sink.Frames[0]).To(Equal(sink.Frames[2]))
		Expect(sink.Frames[1]).To(Equal(sink.Frames[3]))
		Expect(sink.Frames[0]).NotTo(Equal(sink.Frames[1]))
	})

	It("rejects an unknown pattern before touching the display", func() {
		cfg.Pattern = "spaceship"

		_, err := run(context.Background(), random.FixedSeed(1))
		Expect(errors.Is(err, model.ErrUnknownPattern)).To(BeTrue())
		Expect(sink.Calls).To(BeEmpty())
	})

	It("fails when no seed can be read", func() {
		_, err := run(context.Background(), failingSeed{})
		Expect(err).To(MatchError(ContainSubstring("adc not ready")))
		Expect(sink.Calls).To(BeEmpty())
	})

	It("halts when the display does not initialize", func() {
		sink.InitErr = errors.New("no ack")

		_, err := run(context.Background(), random.FixedSeed(1))
		Expect(err).To(MatchError(ContainSubstring("display init failed")))
		Expect(sink.Calls).To(Equal([]string{"init"}))
	})

	It("halts when the display does not clear", func() {
		sink.ClearErr = errors.New("no ack")

		_, err := run(context.Background(), random.FixedSeed(1))
		Expect(err).To(MatchError(ContainSubstring("display clear failed")))
		Expect(sink.Calls).To(Equal([]string{"init", "clear", "close"}))
	})

	It("halts on the first failed draw without skipping frames", func() {
		boom := errors.New("bus fault")
		sink.DrawErr = boom
		sink.FailAfter = 3
		cfg.MaxGenerations = 0

		_, err := run(context.Background(), random.FixedSeed(1))
		Expect(errors.Is(err, boom)).To(BeTrue())
		Expect(err).To(MatchError(ContainSubstring("generation 3")))
		Expect(sink.Accepted()).To(Equal(3))
		Expect(delay.waits).To(HaveLen(2))
		Expect(sink.Calls[len(sink.Calls)-1]).To(Equal("close"))
	})

	It("stops cleanly when the context is canceled", func() {
		cfg.MaxGenerations = 0
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		delay.cancel = cancel
		delay.after = 7

		r, err := run(ctx, random.FixedSeed(9))
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Accepted()).To(Equal(8))
		Expect(r.Stats().TotalGenerations).To(Equal(7))
	})

	It("tracks statistics", func() {
		cfg.MaxGenerations = 12

		r, err := run(context.Background(), random.FixedSeed(3))
		Expect(err).NotTo(HaveOccurred())

		var last model.Framebuffer
		copy(last[:], sink.Last())
		Expect(r.Stats().TotalGenerations).To(Equal(12))
		Expect(r.Stats().Population).To(Equal(last.Population()))
		Expect(r.Stats().PopulationHistory).To(HaveLen(12))
	})

	Context("with reseeding on stagnation", func() {
		BeforeEach(func() {
			cfg.ReseedOnStagnation = true
			cfg.Pattern = "block"
			cfg.MaxGenerations = 6
		})

		It("replaces a still life with a random grid", func() {
			r, err := run(context.Background(), random.FixedSeed(5))
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Stats().Reseeds).To(BeNumerically(">=", 1))

			var last model.Framebuffer
			copy(last[:], sink.Last())
			Expect(last.Population()).To(BeNumerically(">", 4))
		})

		It("draws every reseeded grid before stepping it", func() {
			_, err := run(context.Background(), random.FixedSeed(5))
			Expect(err).NotTo(HaveOccurred())

			// The block pattern draws nothing from the generator, so reseeds are its fills in order.
			fills := random.NewGenerator(5)
			reseeds := 0
			for i := 1; i < len(sink.Frames); i++ {
				var previous, stepped model.Framebuffer
				copy(previous[:], sink.Frames[i-1])
				model.Step(&previous, &stepped)
				if bytes.Equal(sink.Frames[i], stepped.Bytes()) {
					continue
				}

				var fill model.Framebuffer
				fill.FillRandom(fills)
				Expect(sink.Frames[i]).To(Equal(fill.Bytes()), "frame %d is neither a step nor a reseed", i)
				reseeds++
			}

			Expect(reseeds).To(Equal(1))
			Expect(sink.Frames[3]).NotTo(Equal(sink.Frames[2]))
			Expect(sink.Frames).To(HaveLen(cfg.MaxGenerations + 2))
		})

		It("halts when the reseeded grid cannot be drawn", func() {
			boom := errors.New("bus fault")
			sink.DrawErr = boom
			sink.FailAfter = 3

			_, err := run(context.Background(), random.FixedSeed(5))
			Expect(errors.Is(err, boom)).To(BeTrue())
			Expect(err).To(MatchError(ContainSubstring("reseeded grid")))
		})

		It("leaves a still life alone when disabled", func() {
			cfg.ReseedOnStagnation = false

			r, err := run(context.Background(), random.FixedSeed(5))
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Stats().Reseeds).To(BeZero())
			Expect(sink.Frames[len(sink.Frames)-1]).To(Equal(sink.Frames[0]))
		})
	})

	It("splits work over several workers with the same result", func() {
		_, err := run(context.Background(), random.FixedSeed(77))
		Expect(err).NotTo(HaveOccurred())
		sequential := sink.Last()

		cfg.Workers = 4
		sink = display.NewMemory()
		_, err = run(context.Background(), random.FixedSeed(77))
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Last()).To(Equal(sequential))
	})
})

var _ = Describe("TimerDelay", func() {
	It("waits for the duration", func() {
		start := time.Now()
		Expect(engine.TimerDelay{}.Wait(context.Background(), 20*time.Millisecond)).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically(">=", 20*time.Millisecond))
	})

	It("returns early on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(engine.TimerDelay{}.Wait(ctx, time.Hour)).To(MatchError(context.Canceled))
	})
})
