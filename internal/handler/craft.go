package handler

import (
	"fmt"

	"github.com/emberwild/server/internal/net"
	"github.com/emberwild/server/internal/net/packet"
	"github.com/emberwild/server/internal/world"
	"go.uber.org/zap"
)

// groundDropTTLTicks is how long an overflow drop survives (5 minutes).
const groundDropTTLTicks = 6000

// HandleCraftStart processes C_CRAFT_START: [recipe_id\0].
func HandleCraftStart(sess *net.Session, r *packet.Reader, deps *Deps) {
	recipeID := r.ReadS()
	p := deps.World.GetBySession(sess.ID)
	if p == nil || p.Dead {
		return
	}
	StartCraft(p, recipeID, deps)
}

// HandleCraftCancel processes C_CRAFT_CANCEL: [queue index byte].
func HandleCraftCancel(sess *net.Session, r *packet.Reader, deps *Deps) {
	index := int(r.ReadC())
	p := deps.World.GetBySession(sess.ID)
	if p == nil {
		return
	}
	CancelCraft(p, index, deps)
}

// HandleCraftClear processes C_CRAFT_CLEAR.
func HandleCraftClear(sess *net.Session, r *packet.Reader, deps *Deps) {
	p := deps.World.GetBySession(sess.ID)
	if p == nil {
		return
	}
	ClearQueue(p, deps)
}

// StartCraft runs the craft-start protocol: capacity check BEFORE
// affordability, consume materials only after both pass, and refund
// defensively if the enqueue still fails. Returns true when a job was
// queued.
func StartCraft(p *world.PlayerInfo, recipeID string, deps *Deps) bool {
	recipe := deps.Recipes.Get(recipeID)
	if recipe == nil {
		deps.Log.Warn("unknown recipe requested", zap.String("recipe", recipeID), zap.String("name", p.Name))
		SendSystemMessage(p, "Unknown recipe.")
		return false
	}

	if !p.Queue.CanEnqueue() {
		SendSystemMessage(p, "Crafting queue is full.")
		return false
	}

	if !p.Inv.CanAfford(recipe.Ingredients) {
		SendSystemMessage(p, "Insufficient materials.")
		return false
	}

	if !p.Inv.Consume(recipe.Ingredients) {
		SendSystemMessage(p, "Insufficient materials.")
		return false
	}

	result := world.ItemStack{
		ItemID: recipe.ResultItem,
		Count:  recipe.ResultCount,
	}
	if tmpl := deps.Items.Get(recipe.ResultItem); tmpl != nil {
		result.Name = tmpl.Name
		result.Stackable = tmpl.Stackable
	}

	job := world.NewCraftJob(recipe.RecipeID, p.CharID, result, recipe.Ingredients, recipe.DurationTicks, p.Queue.Now())
	if !p.Queue.Enqueue(job) {
		// Materials are already gone; give them back rather than eat them.
		RefundJob(p, job, deps)
		SendSystemMessage(p, "Crafting queue is full.")
		return false
	}

	for itemID := range recipe.Ingredients {
		SendRemoveItem(p, itemID, p.Inv.CountItem(itemID))
	}
	SendSystemMessage(p, fmt.Sprintf("Crafting started: %s", recipe.DisplayName))
	SendQueueSync(p)
	p.Dirty = true
	return true
}

// CancelCraft removes the job at index, refunding its materials unless it
// had already finished. Returns true when a job was removed.
func CancelCraft(p *world.PlayerInfo, index int, deps *Deps) bool {
	job, refundable := p.Queue.Cancel(index)
	if job == nil {
		return false
	}
	if refundable {
		RefundJob(p, job, deps)
		SendSystemMessage(p, "Crafting cancelled, materials returned.")
	} else {
		// Finished but not yet delivered: the result is forfeit.
		SendSystemMessage(p, "Crafting cancelled.")
	}
	SendQueueSync(p)
	p.Dirty = true
	return true
}

// ClearQueue cancels every queued job, refunding all unfinished ones.
func ClearQueue(p *world.PlayerInfo, deps *Deps) {
	refund := p.Queue.Clear()
	for _, job := range refund {
		RefundJob(p, job, deps)
	}
	if len(refund) > 0 {
		SendSystemMessage(p, "Crafting queue cleared, materials returned.")
	}
	SendQueueSync(p)
	p.Dirty = true
}

// DeliverJob hands a completed job's result to the player. An empty result
// snapshot falls back to the recipe's current result so a data reload
// between enqueue and completion still delivers something.
func DeliverJob(p *world.PlayerInfo, job *world.CraftJob, deps *Deps) {
	result := job.Result
	if result.IsEmpty() {
		if recipe := deps.Recipes.Get(job.RecipeID); recipe != nil {
			result = world.ItemStack{
				ItemID: recipe.ResultItem,
				Count:  recipe.ResultCount,
			}
			if tmpl := deps.Items.Get(recipe.ResultItem); tmpl != nil {
				result.Name = tmpl.Name
				result.Stackable = tmpl.Stackable
			}
		}
	}
	if result.IsEmpty() {
		deps.Log.Warn("completed job has no result", zap.String("recipe", job.RecipeID))
		return
	}

	GiveOrDrop(p, result, deps)
	SendSystemMessage(p, fmt.Sprintf("Crafting complete: %s x%d", result.Name, result.Count))
	p.Dirty = true
}

// RefundJob returns a job's consumed ingredients to the player.
func RefundJob(p *world.PlayerInfo, job *world.CraftJob, deps *Deps) {
	for itemID, count := range job.Ingredients {
		stack := world.ItemStack{ItemID: itemID, Count: count}
		if tmpl := deps.Items.Get(itemID); tmpl != nil {
			stack.Name = tmpl.Name
			stack.Stackable = tmpl.Stackable
		}
		GiveOrDrop(p, stack, deps)
	}
	p.Dirty = true
}

// GiveOrDrop adds a stack to the inventory, or drops it at the player's
// feet when the inventory is full.
func GiveOrDrop(p *world.PlayerInfo, stack world.ItemStack, deps *Deps) {
	if stack.ObjectID == 0 {
		stack.ObjectID = world.NextItemObjID()
	}
	added, ok := p.Inv.Add(stack)
	if ok {
		SendAddItem(p, added)
		return
	}

	drop := &world.GroundItem{
		ID:      world.NextGroundItemID(),
		ItemID:  stack.ItemID,
		Name:    stack.Name,
		Count:   stack.Count,
		X:       p.X,
		Y:       p.Y,
		Z:       p.Z,
		OwnerID: p.CharID,
		TTL:     groundDropTTLTicks,
	}
	deps.World.AddGroundItem(drop)
	sendGroundDrop(p, drop)
	SendSystemMessage(p, fmt.Sprintf("Inventory full, %s dropped at your feet.", stack.Name))
}

func sendGroundDrop(p *world.PlayerInfo, drop *world.GroundItem) {
	if p == nil || p.Session == nil {
		return
	}
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_GROUND_DROP)
	w.WriteQ(drop.ID)
	w.WriteS(drop.ItemID)
	w.WriteS(drop.Name)
	w.WriteD(int32(drop.Count))
	w.WriteF(drop.X)
	w.WriteF(drop.Y)
	w.WriteF(drop.Z)
	p.Session.Send(w.Bytes())
}
