// Package simulator runs batches of seeded deck trials to measure how
// evenly the randomized operations (sparse insertion, shuffling)
// spread items across their possible positions.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/deckhand/deck"
	"github.com/lox/deckhand/internal/randutil"
	"github.com/lox/deckhand/internal/statistics"
)

// Config holds configuration for running deck trials
type Config struct {
	Trials   int          // number of independent trials
	DeckSize int          // draw pile size before each trial
	Batch    int          // elements inserted per sparse trial
	Seed     int64        // base seed; trial i uses Seed+i
	Workers  int          // parallel workers (0 = NumCPU)
	Logger   *log.Logger  // nil discards output
	Clock    quartz.Clock // nil uses the real clock
}

// Simulator runs deck operation trials
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{
		config: config,
		logger: config.Logger.WithPrefix("simulator"),
	}
}

// SparseReport aggregates sparse-insertion trials: one Statistics per
// bucket, since bucket sizes (and so their insertion-point counts) can
// differ by one.
type SparseReport struct {
	Trials   int
	DeckSize int
	Batch    int
	Elapsed  time.Duration
	Buckets  []*statistics.Statistics
}

// ShuffleReport aggregates shuffle trials: the final position of the
// tracked bottom item, over DeckSize slots.
type ShuffleReport struct {
	Trials    int
	DeckSize  int
	Elapsed   time.Duration
	Positions *statistics.Statistics
}

// RunSparse executes sparse-insertion trials and returns per-bucket
// insertion-point distributions.
func (s *Simulator) RunSparse(ctx context.Context) (*SparseReport, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.config.Batch <= 0 {
		return nil, fmt.Errorf("batch must be positive, got %d", s.config.Batch)
	}

	s.logger.Info("running sparse insertion trials",
		"trials", s.config.Trials,
		"deck_size", s.config.DeckSize,
		"batch", s.config.Batch,
		"workers", s.config.Workers,
		"seed", s.config.Seed)

	start := s.config.Clock.Now()
	results := make(chan []*statistics.Statistics, s.config.Workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.config.Workers; w++ {
		first, last := trialRange(s.config.Trials, s.config.Workers, w)
		g.Go(func() error {
			local := make([]*statistics.Statistics, s.config.Batch)
			for i := range local {
				local[i] = &statistics.Statistics{}
			}
			for trial := first; trial < last; trial++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				s.sparseTrial(s.config.Seed+int64(trial), local)
			}
			results <- local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	buckets := make([]*statistics.Statistics, s.config.Batch)
	for i := range buckets {
		buckets[i] = &statistics.Statistics{}
	}
	for local := range results {
		for i, stats := range local {
			if err := buckets[i].Merge(stats); err != nil {
				return nil, fmt.Errorf("merging bucket %d: %w", i, err)
			}
		}
	}
	for i, stats := range buckets {
		if err := stats.Validate(); err != nil {
			return nil, fmt.Errorf("bucket %d statistics validation failed: %w", i, err)
		}
	}

	elapsed := s.config.Clock.Since(start)
	s.logger.Info("sparse insertion trials complete",
		"trials", s.config.Trials,
		"elapsed", elapsed)

	return &SparseReport{
		Trials:   s.config.Trials,
		DeckSize: s.config.DeckSize,
		Batch:    s.config.Batch,
		Elapsed:  elapsed,
		Buckets:  buckets,
	}, nil
}

// sparseTrial runs one seeded insertion and records, per bucket, the
// offset the new element landed at.
func (s *Simulator) sparseTrial(seed int64, buckets []*statistics.Statistics) {
	d := deck.New[int](randutil.New(seed))
	for i := 0; i < s.config.DeckSize; i++ {
		d.PutTop(i)
	}

	// Markers are values outside the 0..DeckSize-1 range so they can be
	// told apart from the originals afterwards.
	markers := make([]int, s.config.Batch)
	for i := range markers {
		markers[i] = s.config.DeckSize + i
	}
	d.PutSparse(markers)

	// Walk the result pile bucket by bucket. Bucket i holds its original
	// span plus exactly one marker, so its segment is span size + 1 wide.
	out := d.SeeDraw()
	size, carry := s.config.DeckSize/s.config.Batch, s.config.DeckSize%s.config.Batch
	pos := 0
	for i := range buckets {
		width := size
		if i < carry {
			width++
		}
		segment := out[pos : pos+width+1]
		for offset, v := range segment {
			if v >= s.config.DeckSize {
				buckets[i].Add(statistics.TrialResult{
					Seed:   seed,
					Offset: offset,
					Slots:  width + 1,
				})
				break
			}
		}
		pos += width + 1
	}
}

// RunShuffle executes shuffle trials, tracking where the original
// bottom item lands after one shuffle.
func (s *Simulator) RunShuffle(ctx context.Context) (*ShuffleReport, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.config.DeckSize <= 0 {
		return nil, fmt.Errorf("deck size must be positive, got %d", s.config.DeckSize)
	}

	s.logger.Info("running shuffle trials",
		"trials", s.config.Trials,
		"deck_size", s.config.DeckSize,
		"workers", s.config.Workers,
		"seed", s.config.Seed)

	start := s.config.Clock.Now()
	results := make(chan *statistics.Statistics, s.config.Workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.config.Workers; w++ {
		first, last := trialRange(s.config.Trials, s.config.Workers, w)
		g.Go(func() error {
			local := &statistics.Statistics{}
			for trial := first; trial < last; trial++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				local.Add(s.shuffleTrial(s.config.Seed + int64(trial)))
			}
			results <- local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	positions := &statistics.Statistics{}
	for local := range results {
		if err := positions.Merge(local); err != nil {
			return nil, fmt.Errorf("merging shuffle results: %w", err)
		}
	}
	if err := positions.Validate(); err != nil {
		return nil, fmt.Errorf("shuffle statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	s.logger.Info("shuffle trials complete",
		"trials", s.config.Trials,
		"elapsed", elapsed)

	return &ShuffleReport{
		Trials:    s.config.Trials,
		DeckSize:  s.config.DeckSize,
		Elapsed:   elapsed,
		Positions: positions,
	}, nil
}

func (s *Simulator) shuffleTrial(seed int64) statistics.TrialResult {
	d := deck.New[int](randutil.New(seed))
	for i := 0; i < s.config.DeckSize; i++ {
		d.PutTop(i)
	}
	d.ShuffleDraw()

	result := statistics.TrialResult{Seed: seed, Slots: s.config.DeckSize}
	for pos, v := range d.SeeDraw() {
		if v == 0 {
			result.Offset = pos
			break
		}
	}
	return result
}

func (s *Simulator) validate() error {
	if s.config.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", s.config.Trials)
	}
	if s.config.DeckSize < 0 {
		return fmt.Errorf("deck size must be non-negative, got %d", s.config.DeckSize)
	}
	return nil
}

// trialRange splits trials across workers, giving earlier workers the
// remainder first.
func trialRange(trials, workers, worker int) (first, last int) {
	size, carry := trials/workers, trials%workers
	first = worker*size + min(worker, carry)
	last = first + size
	if worker < carry {
		last++
	}
	return first, last
}
