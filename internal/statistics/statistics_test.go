package statistics

import (
	"math"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for empty stats, got %f", stats.StdDev())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.ChiSquare() != 0 {
		t.Errorf("Expected chi-square of 0 for empty stats, got %f", stats.ChiSquare())
	}
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(TrialResult{Seed: 12345, Offset: 2, Slots: 5})

	if stats.Trials != 1 {
		t.Errorf("Expected 1 trial, got %d", stats.Trials)
	}
	if stats.Slots != 5 {
		t.Errorf("Expected 5 slots, got %d", stats.Slots)
	}
	if stats.Mean() != 2.0 {
		t.Errorf("Expected mean of 2.0, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Median() != 2.0 {
		t.Errorf("Expected median of 2.0, got %f", stats.Median())
	}
	if stats.Counts[2] != 1 {
		t.Errorf("Expected count of 1 at offset 2, got %d", stats.Counts[2])
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	// Offsets 0, 1, 2, 3 once each over 4 slots
	for offset := 0; offset < 4; offset++ {
		stats.Add(TrialResult{Offset: offset, Slots: 4})
	}

	expectedMean := 1.5
	if math.Abs(stats.Mean()-expectedMean) > 1e-9 {
		t.Errorf("Expected mean of %f, got %f", expectedMean, stats.Mean())
	}
	if stats.ExpectedMean() != 1.5 {
		t.Errorf("Expected uniform mean of 1.5, got %f", stats.ExpectedMean())
	}
	if stats.Median() != 1.5 {
		t.Errorf("Expected median of 1.5, got %f", stats.Median())
	}

	// A perfectly flat histogram has zero chi-square
	if stats.ChiSquare() != 0 {
		t.Errorf("Expected chi-square of 0 for flat counts, got %f", stats.ChiSquare())
	}

	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got error: %v", err)
	}
}

func TestStatistics_ChiSquare_Skewed(t *testing.T) {
	stats := &Statistics{}

	// All mass on one offset out of four: chi-square = sum over slots of
	// (obs-exp)^2/exp with exp=1 -> (4-1)^2/1 + 3*(0-1)^2/1 = 12
	for i := 0; i < 4; i++ {
		stats.Add(TrialResult{Offset: 0, Slots: 4})
	}

	if math.Abs(stats.ChiSquare()-12.0) > 1e-9 {
		t.Errorf("Expected chi-square of 12.0, got %f", stats.ChiSquare())
	}
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}

	// Values with known sample variance: [1, 3, 5] -> 4.0
	for _, offset := range []int{1, 3, 5} {
		stats.Add(TrialResult{Offset: offset, Slots: 6})
	}

	if math.Abs(stats.Variance()-4.0) > 1e-9 {
		t.Errorf("Expected variance of 4.0, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-2.0) > 1e-9 {
		t.Errorf("Expected stddev of 2.0, got %f", stats.StdDev())
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, offset := range []int{0, 1, 2, 3, 4} {
		stats.Add(TrialResult{Offset: offset, Slots: 5})
	}

	low, high := stats.ConfidenceInterval95()
	mean := stats.Mean()

	// CI should be symmetric around the mean
	if math.Abs((low+high)/2-mean) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f, Mean: %f", low, high, mean)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for offset := 1; offset <= 5; offset++ {
		stats.Add(TrialResult{Offset: offset, Slots: 6})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}

	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	b := &Statistics{}
	a.Add(TrialResult{Offset: 0, Slots: 3})
	a.Add(TrialResult{Offset: 1, Slots: 3})
	b.Add(TrialResult{Offset: 2, Slots: 3})

	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if a.Trials != 3 {
		t.Errorf("Expected 3 trials after merge, got %d", a.Trials)
	}
	for i, want := range []int{1, 1, 1} {
		if a.Counts[i] != want {
			t.Errorf("Expected count %d at offset %d, got %d", want, i, a.Counts[i])
		}
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected valid stats after merge, got error: %v", err)
	}
}

func TestStatistics_Merge_SlotMismatch(t *testing.T) {
	a := &Statistics{}
	b := &Statistics{}
	a.Add(TrialResult{Offset: 0, Slots: 3})
	b.Add(TrialResult{Offset: 0, Slots: 4})

	if err := a.Merge(b); err == nil {
		t.Error("Expected merge to fail with slot count mismatch")
	}
}

func TestStatistics_Merge_IntoEmpty(t *testing.T) {
	a := &Statistics{}
	b := &Statistics{}
	b.Add(TrialResult{Offset: 1, Slots: 2})

	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge into empty failed: %v", err)
	}
	if a.Trials != 1 || a.Slots != 2 {
		t.Errorf("Expected 1 trial over 2 slots, got %d over %d", a.Trials, a.Slots)
	}
}

func TestStatistics_Validate_NoTrials(t *testing.T) {
	stats := &Statistics{}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation to fail with no trials")
	}
}

func TestStatistics_Validate_OffsetOutOfRange(t *testing.T) {
	stats := &Statistics{}
	stats.Add(TrialResult{Offset: 0, Slots: 2})
	stats.Add(TrialResult{Offset: 5, Slots: 2}) // out of range, not counted

	err := stats.Validate()
	if err == nil {
		t.Error("Expected validation to fail with out-of-range offset")
	}
}
