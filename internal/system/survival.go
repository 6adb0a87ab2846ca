package system

import (
	"time"

	"github.com/emberwild/server/internal/config"
	coresys "github.com/emberwild/server/internal/core/system"
	"github.com/emberwild/server/internal/handler"
	"github.com/emberwild/server/internal/net/packet"
	"github.com/emberwild/server/internal/scripting"
	"github.com/emberwild/server/internal/world"
	"go.uber.org/zap"
)

// regenIntervalTicks is how often passive health regen pulses (4 seconds).
const regenIntervalTicks = 80

// SurvivalSystem applies hydration and nutrition decay, depletion damage,
// passive health regen, and periodic stat syncs. Runs in the update phase.
//
// Both stats decay from ONE activity snapshot per interval: the tracker is
// read and reset exactly once, so hydration and nutrition always see the
// same distance and jump counts.
type SurvivalSystem struct {
	world     *world.State
	lua       *scripting.Engine
	cfg       config.SurvivalConfig
	log       *zap.Logger
	tickCount int
}

func NewSurvivalSystem(ws *world.State, lua *scripting.Engine, cfg config.SurvivalConfig, log *zap.Logger) *SurvivalSystem {
	return &SurvivalSystem{world: ws, lua: lua, cfg: cfg, log: log}
}

func (s *SurvivalSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SurvivalSystem) Update(_ time.Duration) {
	s.tickCount++

	if s.cfg.DecayIntervalTicks > 0 && s.tickCount%s.cfg.DecayIntervalTicks == 0 {
		s.world.AllPlayers(func(p *world.PlayerInfo) {
			s.applyDecay(p)
		})
	}

	if s.tickCount%regenIntervalTicks == 0 {
		s.world.AllPlayers(func(p *world.PlayerInfo) {
			s.tickRegen(p)
		})
	}

	// Heartbeat sync keeps client bars honest even when nothing changed.
	if s.cfg.SyncIntervalTicks > 0 && s.tickCount%s.cfg.SyncIntervalTicks == 0 {
		s.world.AllPlayers(func(p *world.PlayerInfo) {
			handler.SendStatSync(p)
		})
	}
}

// ApplyDecay runs one decay interval for a player. Exported for tests.
func (s *SurvivalSystem) ApplyDecay(p *world.PlayerInfo) {
	s.applyDecay(p)
}

func (s *SurvivalSystem) applyDecay(p *world.PlayerInfo) {
	if p.Dead {
		p.Activity.Reset()
		return
	}

	distance, jumps := p.Activity.Snapshot()
	p.Activity.Reset()

	res := s.lua.CalcSurvivalDecay(scripting.DecayContext{
		Distance:  distance,
		Jumps:     jumps,
		Sunlight:  p.CanSeeSky,
		InWater:   p.InWater,
		Raining:   s.world.Raining,
		IsDaytime: s.world.IsDay(),
	})

	hydrationBefore := p.Hydration.Current
	nutritionBefore := p.Nutrition.Current
	p.Hydration.Subtract(res.Hydration)
	p.Nutrition.Subtract(res.Nutrition)
	p.Dirty = true

	s.log.Debug("survival decay",
		zap.String("name", p.Name),
		zap.Float64("distance", distance),
		zap.Int("jumps", jumps),
		zap.Float64("hydration", p.Hydration.Current),
		zap.Float64("nutrition", p.Nutrition.Current),
	)

	// Warn once when a stat crosses into the low band
	low := s.cfg.LowThreshold
	if hydrationBefore > low && p.Hydration.Current <= low {
		handler.SendSystemMessage(p, "You feel parched. Find something to drink.")
		s.log.Info("hydration low", zap.String("name", p.Name), zap.Float64("level", p.Hydration.Current))
	}
	if nutritionBefore > low && p.Nutrition.Current <= low {
		handler.SendSystemMessage(p, "Your stomach growls. Find something to eat.")
		s.log.Info("nutrition low", zap.String("name", p.Name), zap.Float64("level", p.Nutrition.Current))
	}

	// Depleted stats chip away at health, one hit per interval per stat
	damage := 0.0
	if p.Hydration.Current <= p.Hydration.Min {
		damage += s.cfg.DepletionDamage
		handler.SendSystemMessage(p, "You are dying of thirst!")
	}
	if p.Nutrition.Current <= p.Nutrition.Min {
		damage += s.cfg.DepletionDamage
		handler.SendSystemMessage(p, "You are starving!")
	}
	if damage > 0 {
		if p.ApplyDamage(damage) {
			s.onDeath(p)
		}
		handler.SendHPUpdate(p)
	}

	handler.SendStatSync(p)
}

func (s *SurvivalSystem) tickRegen(p *world.PlayerInfo) {
	if !p.Alive() || p.HP >= p.MaxHP {
		return
	}
	// Regen only on a well-fed, hydrated body
	if p.Nutrition.Current < s.cfg.RegenNutrition || p.Hydration.Current <= p.Hydration.Min {
		return
	}
	p.HP++
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	p.Dirty = true
	handler.SendHPUpdate(p)
}

func (s *SurvivalSystem) onDeath(p *world.PlayerInfo) {
	s.log.Info("player died of exposure", zap.String("name", p.Name))
	handler.SendSystemMessage(p, "You died.")
	if p.Session != nil {
		w := packet.NewWriterWithOpcode(packet.S_OPCODE_DEATH)
		w.WriteD(p.CharID)
		p.Session.Send(w.Bytes())
	}
}
