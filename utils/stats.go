package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Population           int
	StartTime            time.Time
	Reseeds              int
	PopulationHistory    []float64
}

// maxPopulationHistory bounds the samples kept for plotting
const maxPopulationHistory = 512

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one generation that took duration to compute and render
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	s.Population = population
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.TotalGenerations <= 1 && s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}

	s.PopulationHistory = append(s.PopulationHistory, float64(population))
	if len(s.PopulationHistory) > maxPopulationHistory {
		s.PopulationHistory = s.PopulationHistory[1:]
	}
}

// Runtime returns the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}

// OverallRate returns generations per second averaged over the whole run
func (s *Stats) OverallRate() float64 {
	elapsed := s.Runtime().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.TotalGenerations) / elapsed
}
