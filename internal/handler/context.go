package handler

import (
	"github.com/emberwild/server/internal/config"
	"github.com/emberwild/server/internal/data"
	"github.com/emberwild/server/internal/net"
	"github.com/emberwild/server/internal/net/packet"
	"github.com/emberwild/server/internal/persist"
	"github.com/emberwild/server/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all packet handlers.
type Deps struct {
	AccountRepo *persist.AccountRepo
	CharRepo    *persist.CharacterRepo
	ItemRepo    *persist.ItemRepo
	Config      *config.Config
	Log         *zap.Logger
	World       *world.State
	Items       *data.ItemTable
	Recipes     *data.RecipeTable
}

// RegisterAll registers all packet handlers into the registry.
func RegisterAll(reg *packet.Registry, deps *Deps) {
	// Handshake phase
	reg.Register(packet.C_OPCODE_VERSION,
		[]packet.SessionState{packet.StateHandshake},
		func(sess any, r *packet.Reader) {
			HandleVersion(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_LOGIN,
		[]packet.SessionState{packet.StateHandshake},
		func(sess any, r *packet.Reader) {
			HandleLogin(sess.(*net.Session), r, deps)
		},
	)

	// Authenticated phase
	reg.Register(packet.C_OPCODE_ENTER_WORLD,
		[]packet.SessionState{packet.StateAuthenticated},
		func(sess any, r *packet.Reader) {
			HandleEnterWorld(sess.(*net.Session), r, deps)
		},
	)

	// In-world
	inWorld := []packet.SessionState{packet.StateInWorld}

	reg.Register(packet.C_OPCODE_MOVE, inWorld,
		func(sess any, r *packet.Reader) {
			HandleMove(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_USE_ITEM, inWorld,
		func(sess any, r *packet.Reader) {
			HandleUseItem(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_PICKUP, inWorld,
		func(sess any, r *packet.Reader) {
			HandlePickup(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_CRAFT_START, inWorld,
		func(sess any, r *packet.Reader) {
			HandleCraftStart(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_CRAFT_CANCEL, inWorld,
		func(sess any, r *packet.Reader) {
			HandleCraftCancel(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_CRAFT_CLEAR, inWorld,
		func(sess any, r *packet.Reader) {
			HandleCraftClear(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_RESPAWN, inWorld,
		func(sess any, r *packet.Reader) {
			HandleRespawn(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_ALIVE,
		[]packet.SessionState{packet.StateAuthenticated, packet.StateInWorld},
		func(sess any, r *packet.Reader) {
			HandleAlive(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_QUIT,
		[]packet.SessionState{packet.StateAuthenticated, packet.StateInWorld},
		func(sess any, r *packet.Reader) {
			HandleQuit(sess.(*net.Session), r, deps)
		},
	)
}
