package handler

import (
	"github.com/emberwild/server/internal/net"
	"github.com/emberwild/server/internal/net/packet"
	"github.com/emberwild/server/internal/world"
)

// HandleRespawn processes C_RESPAWN: a dead player returns to spawn with
// full HP and full survival stats.
func HandleRespawn(sess *net.Session, r *packet.Reader, deps *Deps) {
	p := deps.World.GetBySession(sess.ID)
	if p == nil || !p.Dead {
		return
	}

	p.Respawn()
	p.X, p.Y, p.Z = spawnX, spawnY, spawnZ

	sendRespawn(p)
	SendStatSync(p)
	SendHPUpdate(p)
}

func sendRespawn(p *world.PlayerInfo) {
	if p.Session == nil {
		return
	}
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_RESPAWN)
	w.WriteF(p.X)
	w.WriteF(p.Y)
	w.WriteF(p.Z)
	p.Session.Send(w.Bytes())
}
