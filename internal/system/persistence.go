package system

import (
	"context"
	"time"

	coresys "github.com/emberwild/server/internal/core/system"
	"github.com/emberwild/server/internal/persist"
	"github.com/emberwild/server/internal/world"
	"go.uber.org/zap"
)

// PersistenceSystem periodically auto-saves online players' character
// data and inventory. Runs in the persist phase.
type PersistenceSystem struct {
	world     *world.State
	charRepo  *persist.CharacterRepo
	itemRepo  *persist.ItemRepo
	log       *zap.Logger
	tickCount int
	interval  int // auto-save every N ticks
}

func NewPersistenceSystem(ws *world.State, charRepo *persist.CharacterRepo, itemRepo *persist.ItemRepo, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	return &PersistenceSystem{
		world:    ws,
		charRepo: charRepo,
		itemRepo: itemRepo,
		log:      log,
		interval: intervalTicks,
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.savePlayers(true)
}

// SaveAllPlayers persists all online players immediately, ignoring dirty
// flags. Called on graceful shutdown.
func (s *PersistenceSystem) SaveAllPlayers() {
	s.savePlayers(false)
}

// savePlayers persists player data. If dirtyOnly is true, only players
// with a set Dirty flag are saved, and the flag is reset afterwards.
func (s *PersistenceSystem) savePlayers(dirtyOnly bool) {
	count := 0
	s.world.AllPlayers(func(p *world.PlayerInfo) {
		if dirtyOnly && !p.Dirty {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		row := &persist.CharacterRow{
			ID:        p.CharID,
			X:         p.X,
			Y:         p.Y,
			Z:         p.Z,
			HP:        p.HP,
			Hydration: p.Hydration.Current,
			Nutrition: p.Nutrition.Current,
		}
		if err := s.charRepo.SaveCharacter(ctx, row); err != nil {
			s.log.Error("autosave character failed", zap.String("name", p.Name), zap.Error(err))
			return
		}
		if err := s.itemRepo.SaveInventory(ctx, p.CharID, p.Inv); err != nil {
			s.log.Error("autosave inventory failed", zap.String("name", p.Name), zap.Error(err))
			return
		}
		p.Dirty = false
		count++
	})
	if count > 0 {
		s.log.Debug("autosaved players", zap.Int("count", count))
	}
}
