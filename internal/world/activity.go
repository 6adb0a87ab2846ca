package world

import (
	"math"
	"time"
)

const (
	// Horizontal displacement below this per tick is treated as jitter.
	moveThreshold = 0.05
	// Rising edge must exceed this vertical velocity to count as a jump.
	jumpVelThreshold = 0.1
	// A single jump spans several airborne ticks; ignore re-detections
	// inside this window.
	jumpDebounce = 500 * time.Millisecond
)

// ActivityTracker accumulates a player's movement and jumps between decay
// intervals. Mutated every tick from the game loop; reset once per interval
// by the survival system after both stats have consumed the snapshot.
type ActivityTracker struct {
	LastX, LastZ     float64
	DistanceTraveled float64
	JumpCount        int
	WasOnGround      bool
	LastJumpAt       time.Time

	initialized bool
}

// Observe folds one tick of player motion into the counters.
// Vertical movement is ignored for distance; only the X/Z plane counts.
func (a *ActivityTracker) Observe(x, z float64, onGround bool, velY float64, now time.Time) {
	if !a.initialized {
		a.LastX, a.LastZ = x, z
		a.WasOnGround = onGround
		a.initialized = true
		return
	}

	dx := x - a.LastX
	dz := z - a.LastZ
	dist := math.Sqrt(dx*dx + dz*dz)
	if dist > moveThreshold {
		a.DistanceTraveled += dist
	}
	a.LastX, a.LastZ = x, z

	// Jump: ground→air transition with upward velocity, debounced.
	if a.WasOnGround && !onGround && velY > jumpVelThreshold {
		if now.Sub(a.LastJumpAt) > jumpDebounce {
			a.JumpCount++
			a.LastJumpAt = now
		}
	}
	a.WasOnGround = onGround
}

// Snapshot returns the accumulated counters without resetting them.
func (a *ActivityTracker) Snapshot() (distance float64, jumps int) {
	return a.DistanceTraveled, a.JumpCount
}

// Reset zeroes the counters. Called exactly once per decay interval.
func (a *ActivityTracker) Reset() {
	a.DistanceTraveled = 0
	a.JumpCount = 0
}
