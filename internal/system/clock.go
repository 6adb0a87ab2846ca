package system

import (
	"time"

	coresys "github.com/emberwild/server/internal/core/system"
	"github.com/emberwild/server/internal/world"
)

// ClockSystem advances the world's day/night cycle and weather.
// Runs in the post-update phase.
type ClockSystem struct {
	world *world.State
}

func NewClockSystem(ws *world.State) *ClockSystem {
	return &ClockSystem{world: ws}
}

func (s *ClockSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ClockSystem) Update(_ time.Duration) {
	s.world.AdvanceClock()
}
