package utils

import (
	"testing"
	"time"
)

func TestStatsUpdate(t *testing.T) {
	s := NewStats()

	s.Update(1, 100, 10*time.Millisecond)
	if s.AveragePopulation != 100 {
		t.Errorf("first sample should seed the average, got %f", s.AveragePopulation)
	}
	if s.GenerationsPerSecond < 99 || s.GenerationsPerSecond > 101 {
		t.Errorf("expected ~100 gen/sec, got %f", s.GenerationsPerSecond)
	}

	s.Update(2, 200, 0)
	if s.AveragePopulation != 110 {
		t.Errorf("expected moving average 110, got %f", s.AveragePopulation)
	}
	if s.TotalGenerations != 2 || s.Population != 200 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestStatsHistoryBounded(t *testing.T) {
	s := NewStats()
	for i := range maxPopulationHistory + 10 {
		s.Update(i+1, i, time.Millisecond)
	}

	if len(s.PopulationHistory) != maxPopulationHistory {
		t.Fatalf("expected %d samples, got %d", maxPopulationHistory, len(s.PopulationHistory))
	}
	if s.PopulationHistory[0] != 10 {
		t.Errorf("oldest samples should be dropped first, got %f", s.PopulationHistory[0])
	}
}
