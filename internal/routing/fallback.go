package routing

import (
	"math"

	"gofo-dispatch/internal/domain"
)

// Estimator produces travel-time guesses from straight-line distance when
// the route provider is down. Minutes scale linearly with distance in
// coordinate degrees on top of a fixed base.
type Estimator struct {
	MinutesPerDegree float64
	BaseMinutes      int
	DefaultMinutes   int
}

// NewEstimator creates an Estimator with the given tuning.
func NewEstimator(minutesPerDegree float64, baseMinutes, defaultMinutes int) *Estimator {
	return &Estimator{
		MinutesPerDegree: minutesPerDegree,
		BaseMinutes:      baseMinutes,
		DefaultMinutes:   defaultMinutes,
	}
}

// Estimate returns whole minutes for the straight line between two points.
func (e *Estimator) Estimate(from, to domain.Coordinate) int {
	return int(math.Round(from.DistanceTo(to)*e.MinutesPerDegree)) + e.BaseMinutes
}

// Default returns the flat estimate used when no geometry is trustworthy.
func (e *Estimator) Default() int {
	return e.DefaultMinutes
}
