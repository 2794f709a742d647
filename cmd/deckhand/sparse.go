package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/deckhand/cmd/deckhand/shared"
	"github.com/lox/deckhand/internal/scenario"
	"github.com/lox/deckhand/internal/simulator"
)

// SparseCmd measures how uniformly PutSparse spreads a batch across
// the insertion points of each bucket.
type SparseCmd struct {
	Trials   int    `kong:"default='10000',help='Number of trials'"`
	DeckSize int    `kong:"default='52',help='Draw pile size before each trial'"`
	Batch    int    `kong:"default='3',help='Elements inserted per trial'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Workers  int    `kong:"default='0',help='Parallel workers (0 for all CPUs)'"`
	Scenario string `kong:"help='Scenario file to load (overrides the trial flags)'"`
	Name     string `kong:"default='default',help='Scenario name within the file'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *SparseCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg := simulator.Config{
		Trials:   c.Trials,
		DeckSize: c.DeckSize,
		Batch:    c.Batch,
		Workers:  c.Workers,
		Logger:   logger,
	}
	if err := applyScenario(&cfg, c.Scenario, c.Name); err != nil {
		return err
	}
	applySeed(&cfg, c.Seed, logger)

	ctx := shared.SetupSignalHandler(logger)
	report, err := simulator.New(cfg).RunSparse(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Sparse insertion: %d trials, deck size %d, batch %d (%.2fs)\n",
		report.Trials, report.DeckSize, report.Batch, report.Elapsed.Seconds())
	for i, stats := range report.Buckets {
		low, high := stats.ConfidenceInterval95()
		fmt.Printf("  bucket %d: slots=%d mean=%.3f (uniform %.3f) 95%% CI [%.3f, %.3f] chi2=%.2f df=%d\n",
			i, stats.Slots, stats.Mean(), stats.ExpectedMean(), low, high,
			stats.ChiSquare(), stats.Slots-1)
	}
	return nil
}

// applyScenario overrides the trial settings from a named scenario in
// an HCL file, when one was given.
func applyScenario(cfg *simulator.Config, path, name string) error {
	if path == "" {
		return nil
	}

	f, err := scenario.Load(path)
	if err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid scenario file %s: %w", path, err)
	}

	s := f.Get(name)
	if s == nil {
		return fmt.Errorf("scenario %q not found in %s", name, path)
	}

	cfg.Trials = s.Trials
	cfg.DeckSize = s.DeckSize
	cfg.Batch = s.Batch
	cfg.Seed = s.Seed
	cfg.Workers = s.Workers
	return nil
}

// applySeed fills in the RNG seed: an explicit flag wins, otherwise a
// scenario-provided seed, otherwise the wall clock.
func applySeed(cfg *simulator.Config, flag *int64, logger *log.Logger) {
	switch {
	case flag != nil:
		cfg.Seed = *flag
		logger.Info("using deterministic seed", "seed", cfg.Seed)
	case cfg.Seed != 0:
		logger.Info("using scenario seed", "seed", cfg.Seed)
	default:
		cfg.Seed = time.Now().UnixNano()
		logger.Info("using random seed", "seed", cfg.Seed)
	}
}
