package handler

import (
	"fmt"

	"github.com/emberwild/server/internal/net"
	"github.com/emberwild/server/internal/net/packet"
	"github.com/emberwild/server/internal/world"
)

// HandleUseItem processes C_USE_ITEM: [object_id int64]. Food and drink
// restore survival stats and consume one unit.
func HandleUseItem(sess *net.Session, r *packet.Reader, deps *Deps) {
	objectID := r.ReadQ()
	p := deps.World.GetBySession(sess.ID)
	if p == nil || p.Dead {
		return
	}

	stack := p.Inv.FindByObjectID(objectID)
	if stack == nil {
		return
	}
	tmpl := deps.Items.Get(stack.ItemID)
	if tmpl == nil || !tmpl.Consumable() {
		return
	}

	UseConsumable(p, tmpl.ItemID, deps)
}

// UseConsumable applies one unit of a food or drink item.
func UseConsumable(p *world.PlayerInfo, itemID string, deps *Deps) bool {
	tmpl := deps.Items.Get(itemID)
	if tmpl == nil || !tmpl.Consumable() {
		return false
	}
	if p.Inv.Remove(itemID, 1) != 1 {
		return false
	}

	if tmpl.RestoreHydration > 0 {
		p.Hydration.Add(tmpl.RestoreHydration)
	}
	if tmpl.RestoreNutrition > 0 {
		p.Nutrition.Add(tmpl.RestoreNutrition)
	}
	p.Dirty = true

	SendRemoveItem(p, itemID, p.Inv.CountItem(itemID))
	SendStatSync(p)
	SendSystemMessage(p, fmt.Sprintf("You consume the %s.", tmpl.Name))
	return true
}

// HandlePickup processes C_PICKUP: [ground_item_id int64].
func HandlePickup(sess *net.Session, r *packet.Reader, deps *Deps) {
	dropID := r.ReadQ()
	p := deps.World.GetBySession(sess.ID)
	if p == nil || p.Dead {
		return
	}
	PickupItem(p, dropID, deps)
}

// PickupItem moves a ground drop into the player's inventory. Returns false
// when the drop is gone or the inventory cannot take it.
func PickupItem(p *world.PlayerInfo, dropID int64, deps *Deps) bool {
	drop := deps.World.GetGroundItem(dropID)
	if drop == nil {
		return false
	}
	if p.Inv.IsFull() && p.Inv.FindByItemID(drop.ItemID) == nil {
		SendSystemMessage(p, "Your inventory is full.")
		return false
	}

	deps.World.RemoveGroundItem(dropID)
	stack := world.ItemStack{
		ObjectID: world.NextItemObjID(),
		ItemID:   drop.ItemID,
		Name:     drop.Name,
		Count:    drop.Count,
	}
	if tmpl := deps.Items.Get(drop.ItemID); tmpl != nil {
		stack.Stackable = tmpl.Stackable
	}
	added, ok := p.Inv.Add(stack)
	if !ok {
		// Non-stackable race with the check above; put it back.
		deps.World.AddGroundItem(drop)
		SendSystemMessage(p, "Your inventory is full.")
		return false
	}
	SendAddItem(p, added)
	p.Dirty = true
	return true
}
