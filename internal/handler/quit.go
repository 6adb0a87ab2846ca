package handler

import (
	"context"
	"time"

	"github.com/emberwild/server/internal/net"
	"github.com/emberwild/server/internal/net/packet"
	"github.com/emberwild/server/internal/persist"
	"github.com/emberwild/server/internal/world"
	"go.uber.org/zap"
)

// HandleAlive processes C_ALIVE keepalives. No reply needed; the read
// itself resets the connection's idle timer.
func HandleAlive(sess *net.Session, r *packet.Reader, deps *Deps) {
}

// HandleQuit processes C_QUIT: a clean logout request.
func HandleQuit(sess *net.Session, r *packet.Reader, deps *Deps) {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_DISCONNECT)
	sess.Send(w.Bytes())
	sess.FlushOutput()
	sess.Close()
	// InputSystem sees the closed session next tick and runs the full
	// disconnect path via Disconnect.
}

// Disconnect tears down a session's in-world state: refunds unfinished
// craft jobs, saves the character, and marks the account offline. Safe to
// call for sessions that never entered the world.
func Disconnect(sess *net.Session, deps *Deps) {
	p := deps.World.RemovePlayer(sess.ID)
	if p != nil {
		// Queued work does not survive logout; give the materials back
		// so the save below includes them.
		for _, job := range p.Queue.Clear() {
			RefundJob(p, job, deps)
		}
		savePlayer(p, deps)
		deps.Log.Info("left world", zap.String("name", p.Name), zap.Uint64("session", sess.ID))
	}

	if sess.AccountName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := deps.AccountRepo.SetOnline(ctx, sess.AccountName, false); err != nil {
			deps.Log.Error("set offline failed", zap.String("account", sess.AccountName), zap.Error(err))
		}
	}
}

func savePlayer(p *world.PlayerInfo, deps *Deps) {
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
	if err := deps.CharRepo.SaveCharacter(ctx, row); err != nil {
		deps.Log.Error("character save failed", zap.String("name", p.Name), zap.Error(err))
		return
	}
	if err := deps.ItemRepo.SaveInventory(ctx, p.CharID, p.Inv); err != nil {
		deps.Log.Error("inventory save failed", zap.String("name", p.Name), zap.Error(err))
		return
	}
	p.Dirty = false
}
