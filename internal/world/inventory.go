package world

import "sync/atomic"

// MaxInventorySize is the slot capacity of a player inventory.
const MaxInventorySize = 36

// itemObjIDCounter generates unique item instance IDs.
// Starts high to avoid collision with character IDs.
var itemObjIDCounter atomic.Int64

func init() {
	itemObjIDCounter.Store(500_000_000)
}

// NextItemObjID returns a unique object ID for an item instance.
func NextItemObjID() int64 {
	return itemObjIDCounter.Add(1)
}

// ItemStack is a quantity of one item type. A copy is safe to hand around;
// the inventory owns its own instances.
type ItemStack struct {
	ObjectID  int64 // unique per instance inside an inventory
	ItemID    string
	Name      string
	Count     int
	Stackable bool
}

// IsEmpty reports whether the stack carries nothing deliverable.
func (s ItemStack) IsEmpty() bool {
	return s.ItemID == "" || s.Count <= 0
}

// Inventory holds a player's in-memory item list.
// Accessed only from the game loop goroutine.
type Inventory struct {
	Items []*ItemStack
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		Items: make([]*ItemStack, 0, 16),
	}
}

// FindByItemID returns the first stack matching the item type.
func (inv *Inventory) FindByItemID(itemID string) *ItemStack {
	for _, it := range inv.Items {
		if it.ItemID == itemID {
			return it
		}
	}
	return nil
}

// FindByObjectID returns the stack with the given object ID.
func (inv *Inventory) FindByObjectID(objectID int64) *ItemStack {
	for _, it := range inv.Items {
		if it.ObjectID == objectID {
			return it
		}
	}
	return nil
}

// Size returns the number of slots used.
func (inv *Inventory) Size() int {
	return len(inv.Items)
}

// IsFull returns true if the inventory is at slot capacity.
func (inv *Inventory) IsFull() bool {
	return len(inv.Items) >= MaxInventorySize
}

// CountItem returns the total count of an item type across all stacks.
func (inv *Inventory) CountItem(itemID string) int {
	total := 0
	for _, it := range inv.Items {
		if it.ItemID == itemID {
			total += it.Count
		}
	}
	return total
}

// Add inserts a stack, merging into an existing stack for stackable items.
// Returns false when no slot is free; the caller decides what to do with
// the rejected stack (craft delivery drops it to the ground).
// Does NOT send packets — caller is responsible.
func (inv *Inventory) Add(stack ItemStack) (*ItemStack, bool) {
	if stack.IsEmpty() {
		return nil, false
	}
	if stack.Stackable {
		if existing := inv.FindByItemID(stack.ItemID); existing != nil {
			existing.Count += stack.Count
			return existing, true
		}
	}
	if inv.IsFull() {
		return nil, false
	}
	it := &ItemStack{
		ObjectID:  NextItemObjID(),
		ItemID:    stack.ItemID,
		Name:      stack.Name,
		Count:     stack.Count,
		Stackable: stack.Stackable,
	}
	inv.Items = append(inv.Items, it)
	return it, true
}

// Remove takes count units of an item type, drawing from multiple stacks if
// needed. Returns the amount actually removed (< count when short).
func (inv *Inventory) Remove(itemID string, count int) int {
	removed := 0
	for removed < count {
		idx := -1
		for i, it := range inv.Items {
			if it.ItemID == itemID {
				idx = i
				break
			}
		}
		if idx == -1 {
			break
		}
		it := inv.Items[idx]
		take := count - removed
		if take >= it.Count {
			removed += it.Count
			inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
		} else {
			it.Count -= take
			removed += take
		}
	}
	return removed
}

// CanAfford reports whether every ingredient count is present.
func (inv *Inventory) CanAfford(ingredients map[string]int) bool {
	for itemID, need := range ingredients {
		if inv.CountItem(itemID) < need {
			return false
		}
	}
	return true
}

// Consume removes exactly the given ingredient counts. The caller must have
// verified affordability first; a short removal here is a consistency bug,
// reported via the returned flag.
func (inv *Inventory) Consume(ingredients map[string]int) bool {
	ok := true
	for itemID, need := range ingredients {
		if inv.Remove(itemID, need) < need {
			ok = false
		}
	}
	return ok
}
