package handler

import (
	"github.com/emberwild/server/internal/net/packet"
	"github.com/emberwild/server/internal/world"
)

// SendSystemMessage pushes a chat-line message to the player.
// Nil-safe: players without a live session (tests) are skipped.
func SendSystemMessage(p *world.PlayerInfo, msg string) {
	if p == nil || p.Session == nil {
		return
	}
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_SYSTEM_MESSAGE)
	w.WriteS(msg)
	p.Session.Send(w.Bytes())
}

// SendStatSync pushes current hydration/nutrition levels to the client.
func SendStatSync(p *world.PlayerInfo) {
	if p == nil || p.Session == nil {
		return
	}
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_STAT_SYNC)
	w.WriteF(p.Hydration.Current)
	w.WriteF(p.Hydration.Max)
	w.WriteF(p.Nutrition.Current)
	w.WriteF(p.Nutrition.Max)
	p.Session.Send(w.Bytes())
}

// SendHPUpdate pushes current HP to the client.
func SendHPUpdate(p *world.PlayerInfo) {
	if p == nil || p.Session == nil {
		return
	}
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_HP_UPDATE)
	w.WriteF(p.HP)
	w.WriteF(p.MaxHP)
	p.Session.Send(w.Bytes())
}

// SendAddItem announces a stack added to (or merged into) the inventory.
func SendAddItem(p *world.PlayerInfo, stack *world.ItemStack) {
	if p == nil || p.Session == nil || stack == nil {
		return
	}
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_ADD_ITEM)
	w.WriteQ(stack.ObjectID)
	w.WriteS(stack.ItemID)
	w.WriteS(stack.Name)
	w.WriteD(int32(stack.Count))
	p.Session.Send(w.Bytes())
}

// SendRemoveItem announces count removed from an item; count of 0 means
// the stack is gone.
func SendRemoveItem(p *world.PlayerInfo, itemID string, remaining int) {
	if p == nil || p.Session == nil {
		return
	}
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_REMOVE_ITEM)
	w.WriteS(itemID)
	w.WriteD(int32(remaining))
	p.Session.Send(w.Bytes())
}

// SendQueueSync pushes the full craft queue: one entry per job with its
// recipe, progress, and pause flag. Head-first order.
func SendQueueSync(p *world.PlayerInfo) {
	if p == nil || p.Session == nil || p.Queue == nil {
		return
	}
	now := p.Queue.Now()
	jobs := p.Queue.Jobs()
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_QUEUE_SYNC)
	w.WriteC(byte(len(jobs)))
	for _, job := range jobs {
		w.WriteS(job.RecipeID)
		w.WriteF(job.Progress(now))
		if job.Paused() {
			w.WriteC(1)
		} else {
			w.WriteC(0)
		}
	}
	p.Session.Send(w.Bytes())
}
