package system

import (
	"time"

	coresys "github.com/emberwild/server/internal/core/system"
	"github.com/emberwild/server/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem expires timed-out ground drops at tick end.
// Runs in the cleanup phase.
type CleanupSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewCleanupSystem(ws *world.State, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: ws, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	expired := s.world.TickGroundItems()
	for _, drop := range expired {
		s.log.Debug("ground drop expired",
			zap.String("item", drop.ItemID),
			zap.Int("count", drop.Count),
		)
	}
}
