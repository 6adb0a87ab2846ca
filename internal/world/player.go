package world

import (
	"github.com/emberwild/server/internal/net"
)

// PlayerInfo holds in-memory data for a player currently in-world.
// Accessed only from the game loop goroutine — no locks needed.
type PlayerInfo struct {
	SessionID uint64
	Session   *net.Session
	CharID    int32 // DB ID, used as entity ID in packets
	Name      string

	X, Y, Z  float64
	VelY     float64 // vertical velocity from the last movement packet
	OnGround bool

	// Environment flags reported with movement, used by survival decay
	InWater   bool // head submerged
	CanSeeSky bool // no block between player and sky

	HP    float64
	MaxHP float64

	Hydration ResourceStat
	Nutrition ResourceStat
	Activity  ActivityTracker

	Queue *CraftQueue
	Inv   *Inventory

	Dead bool // true when HP <= 0, waiting for respawn

	// Dirty flag for batch persistence. Set when any persisted state changes
	// (position, HP, stats, inventory). PersistenceSystem only saves dirty
	// players and resets this flag after each successful save.
	Dirty bool
}

// Alive reports whether the player can act and take damage.
func (p *PlayerInfo) Alive() bool {
	return !p.Dead && p.HP > 0
}

// ApplyDamage reduces HP and flips Dead when it reaches zero.
// Returns true when this damage killed the player.
func (p *PlayerInfo) ApplyDamage(amount float64) bool {
	if p.Dead || amount <= 0 {
		return false
	}
	p.HP -= amount
	p.Dirty = true
	if p.HP <= 0 {
		p.HP = 0
		p.Dead = true
		return true
	}
	return false
}

// Respawn resets the player after death: full HP, full survival stats,
// fresh activity counters. Position is left to the caller.
func (p *PlayerInfo) Respawn() {
	p.Dead = false
	p.HP = p.MaxHP
	p.Hydration.SetLevel(p.Hydration.Max)
	p.Nutrition.SetLevel(p.Nutrition.Max)
	p.Activity.Reset()
	p.Dirty = true
}
