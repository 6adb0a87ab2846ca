package world

import "math"

// ResourceStat is a bounded decaying scalar (hydration, nutrition).
// Every mutator clamps into [Min, Max]; the value is never NaN or infinite.
type ResourceStat struct {
	Current float64
	Min     float64
	Max     float64
}

// NewResourceStat creates a stat at its maximum (the "fail open" default).
func NewResourceStat(max float64) ResourceStat {
	return ResourceStat{Current: max, Min: 0, Max: max}
}

// Add raises the level, clamped to Max. Returns the delta actually applied.
func (s *ResourceStat) Add(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	prev := s.Current
	s.Current = math.Min(s.Current+amount, s.Max)
	if s.Current < s.Min {
		s.Current = s.Min
	}
	return s.Current - prev
}

// Subtract lowers the level, clamped to Min. Returns the amount actually removed.
// A negative amount flows through as a gain, matching Add.
func (s *ResourceStat) Subtract(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	prev := s.Current
	s.Current = math.Max(s.Current-amount, s.Min)
	if s.Current > s.Max {
		s.Current = s.Max
	}
	return prev - s.Current
}

// SetLevel clamps the value into range. Non-finite input resets to Max
// rather than zero so a corrupted save never spawns a player into damage.
func (s *ResourceStat) SetLevel(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		s.Current = s.Max
		return
	}
	s.Current = math.Max(s.Min, math.Min(s.Max, v))
}

// Percentage returns Current/Max in [0,1].
func (s *ResourceStat) Percentage() float64 {
	if s.Max <= 0 {
		return 0
	}
	return s.Current / s.Max
}
