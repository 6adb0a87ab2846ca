package system

import (
	"time"

	"github.com/emberwild/server/internal/config"
	coresys "github.com/emberwild/server/internal/core/system"
	"github.com/emberwild/server/internal/handler"
	"github.com/emberwild/server/internal/world"
	"go.uber.org/zap"
)

// CraftSystem advances every player's craft queue one step per tick and
// delivers finished jobs. Runs in the update phase.
type CraftSystem struct {
	world     *world.State
	deps      *handler.Deps
	cfg       config.CraftingConfig
	log       *zap.Logger
	tickCount int
}

func NewCraftSystem(ws *world.State, deps *handler.Deps, cfg config.CraftingConfig, log *zap.Logger) *CraftSystem {
	return &CraftSystem{world: ws, deps: deps, cfg: cfg, log: log}
}

func (s *CraftSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *CraftSystem) Update(_ time.Duration) {
	s.tickCount++
	syncTick := s.cfg.QueueSyncInterval > 0 && s.tickCount%s.cfg.QueueSyncInterval == 0

	s.world.AllPlayers(func(p *world.PlayerInfo) {
		// At most one delivery per player per tick; the next job starts
		// running and finishes on a later tick.
		if job := p.Queue.TickHead(); job != nil {
			handler.DeliverJob(p, job, s.deps)
			handler.SendQueueSync(p)
			s.log.Debug("craft delivered",
				zap.String("name", p.Name),
				zap.String("recipe", job.RecipeID),
			)
			return
		}
		// Progress push so client bars track without spamming every tick
		if syncTick && p.Queue.Len() > 0 {
			handler.SendQueueSync(p)
		}
	})
}
