package handler

import (
	"math"
	"time"

	"github.com/emberwild/server/internal/net"
	"github.com/emberwild/server/internal/net/packet"
	"go.uber.org/zap"
)

const (
	moveFlagOnGround  = 1 << 0
	moveFlagInWater   = 1 << 1
	moveFlagCanSeeSky = 1 << 2
)

// maxMovePerPacket rejects absurd position jumps from a tampered client.
const maxMovePerPacket = 100.0

// HandleMove processes C_MOVE: absolute position plus vertical velocity
// and environment flags. The server trusts client position within a
// sanity bound; the activity tracker feeds survival decay.
func HandleMove(sess *net.Session, r *packet.Reader, deps *Deps) {
	x := r.ReadF()
	y := r.ReadF()
	z := r.ReadF()
	velY := r.ReadF()
	flags := r.ReadC()

	p := deps.World.GetBySession(sess.ID)
	if p == nil || p.Dead {
		return
	}

	if math.IsNaN(x) || math.IsInf(x, 0) ||
		math.IsNaN(y) || math.IsInf(y, 0) ||
		math.IsNaN(z) || math.IsInf(z, 0) {
		return
	}
	dx, dz := x-p.X, z-p.Z
	if dx*dx+dz*dz > maxMovePerPacket*maxMovePerPacket {
		deps.Log.Warn("rejecting oversized move", zap.String("name", p.Name))
		return
	}

	onGround := flags&moveFlagOnGround != 0

	p.X, p.Y, p.Z = x, y, z
	p.VelY = velY
	p.OnGround = onGround
	p.InWater = flags&moveFlagInWater != 0
	p.CanSeeSky = flags&moveFlagCanSeeSky != 0

	p.Activity.Observe(x, z, onGround, velY, time.Now())
	p.Dirty = true
}
