package statistics

import (
	"fmt"
	"math"
	"sort"
)

// TrialResult represents one observed outcome of a randomized deck
// operation: an insertion point chosen within a bucket, or the final
// position a tracked item landed at after a shuffle.
type TrialResult struct {
	Seed   int64 // RNG seed for this trial (for replay)
	Offset int   // observed outcome, in [0, Slots)
	Slots  int   // number of equally likely outcomes for this trial
}

// Statistics aggregates trial outcomes for a fixed number of slots and
// exposes the summary measures used to judge uniformity.
type Statistics struct {
	Trials int
	Slots  int
	Counts []int // observations per offset

	SumOffset  float64
	SumOffset2 float64   // sum of squares for variance calculation
	Values     []float64 // all offsets, for median/percentile calculation
}

// Add incorporates a new trial result. The first result fixes the slot
// count; Validate reports any later mismatch.
func (s *Statistics) Add(result TrialResult) {
	if s.Slots == 0 {
		s.Slots = result.Slots
		s.Counts = make([]int, result.Slots)
	}

	s.Trials++
	v := float64(result.Offset)
	s.SumOffset += v
	s.SumOffset2 += v * v
	s.Values = append(s.Values, v)

	if result.Offset >= 0 && result.Offset < len(s.Counts) {
		s.Counts[result.Offset]++
	}
}

// Merge folds another aggregate into this one. Both sides must have
// been collected over the same slot count.
func (s *Statistics) Merge(other *Statistics) error {
	if other.Trials == 0 {
		return nil
	}
	if s.Slots == 0 {
		s.Slots = other.Slots
		s.Counts = make([]int, other.Slots)
	}
	if other.Slots != s.Slots {
		return fmt.Errorf("slot count mismatch: %d vs %d", other.Slots, s.Slots)
	}

	s.Trials += other.Trials
	s.SumOffset += other.SumOffset
	s.SumOffset2 += other.SumOffset2
	s.Values = append(s.Values, other.Values...)
	for i, c := range other.Counts {
		s.Counts[i] += c
	}
	return nil
}

// Mean returns the arithmetic mean of the observed offsets.
func (s *Statistics) Mean() float64 {
	if s.Trials == 0 {
		return 0
	}
	return s.SumOffset / float64(s.Trials)
}

// ExpectedMean returns the mean a perfectly uniform source would
// produce: the midpoint of [0, Slots-1].
func (s *Statistics) ExpectedMean() float64 {
	if s.Slots == 0 {
		return 0
	}
	return float64(s.Slots-1) / 2
}

// Variance returns the sample variance of the observed offsets.
func (s *Statistics) Variance() float64 {
	if s.Trials < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumOffset2 - float64(s.Trials)*mean*mean) / float64(s.Trials-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Trials == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Trials))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ChiSquare returns the chi-square statistic of the observed counts
// against the uniform expectation. Slots-1 degrees of freedom.
func (s *Statistics) ChiSquare() float64 {
	if s.Trials == 0 || s.Slots == 0 {
		return 0
	}
	expected := float64(s.Trials) / float64(s.Slots)
	var sum float64
	for _, c := range s.Counts {
		diff := float64(c) - expected
		sum += diff * diff / expected
	}
	return sum
}

// Median returns the median observed offset.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// linearly interpolated.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the collected data.
func (s *Statistics) Validate() error {
	if s.Trials <= 0 {
		return fmt.Errorf("invalid trials count: %d", s.Trials)
	}
	if s.Slots <= 0 {
		return fmt.Errorf("invalid slots count: %d", s.Slots)
	}
	if len(s.Counts) != s.Slots {
		return fmt.Errorf("counts length (%d) does not match slots (%d)", len(s.Counts), s.Slots)
	}
	if len(s.Values) != s.Trials {
		return fmt.Errorf("values array length (%d) does not match trials count (%d)",
			len(s.Values), s.Trials)
	}

	total := 0
	for _, c := range s.Counts {
		total += c
	}
	if total != s.Trials {
		return fmt.Errorf("counts total (%d) does not match trials count (%d): offsets out of range",
			total, s.Trials)
	}
	return nil
}
