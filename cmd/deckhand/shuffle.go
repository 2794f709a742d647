package main

import (
	"fmt"

	"github.com/lox/deckhand/cmd/deckhand/shared"
	"github.com/lox/deckhand/internal/simulator"
)

// ShuffleCmd measures where the bottom card of a freshly built pile
// lands after one shuffle, over many seeded trials.
type ShuffleCmd struct {
	Trials   int    `kong:"default='10000',help='Number of trials'"`
	DeckSize int    `kong:"default='52',help='Draw pile size before each trial'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Workers  int    `kong:"default='0',help='Parallel workers (0 for all CPUs)'"`
	Scenario string `kong:"help='Scenario file to load (overrides the trial flags)'"`
	Name     string `kong:"default='default',help='Scenario name within the file'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *ShuffleCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg := simulator.Config{
		Trials:   c.Trials,
		DeckSize: c.DeckSize,
		Workers:  c.Workers,
		Logger:   logger,
	}
	if err := applyScenario(&cfg, c.Scenario, c.Name); err != nil {
		return err
	}
	applySeed(&cfg, c.Seed, logger)

	ctx := shared.SetupSignalHandler(logger)
	report, err := simulator.New(cfg).RunShuffle(ctx)
	if err != nil {
		return err
	}

	stats := report.Positions
	low, high := stats.ConfidenceInterval95()
	fmt.Printf("Shuffle: %d trials, deck size %d (%.2fs)\n",
		report.Trials, report.DeckSize, report.Elapsed.Seconds())
	fmt.Printf("  final position of bottom card: mean=%.3f (uniform %.3f) 95%% CI [%.3f, %.3f]\n",
		stats.Mean(), stats.ExpectedMean(), low, high)
	fmt.Printf("  chi2=%.2f df=%d median=%.1f p10=%.1f p90=%.1f\n",
		stats.ChiSquare(), stats.Slots-1, stats.Median(),
		stats.Percentile(0.1), stats.Percentile(0.9))
	return nil
}
