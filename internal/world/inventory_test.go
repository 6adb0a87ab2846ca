package world

import "testing"

func stack(itemID string, count int, stackable bool) ItemStack {
	return ItemStack{ItemID: itemID, Name: itemID, Count: count, Stackable: stackable}
}

func TestInventoryStackableMerge(t *testing.T) {
	inv := NewInventory()

	first, ok := inv.Add(stack("oak_log", 5, true))
	if !ok {
		t.Fatal("first add rejected")
	}
	second, ok := inv.Add(stack("oak_log", 3, true))
	if !ok {
		t.Fatal("merge add rejected")
	}
	if first != second {
		t.Fatal("stackable add created a second stack")
	}
	if inv.Size() != 1 || inv.CountItem("oak_log") != 8 {
		t.Fatalf("size=%d count=%d, want 1/8", inv.Size(), inv.CountItem("oak_log"))
	}
}

func TestInventoryUnstackableSeparateSlots(t *testing.T) {
	inv := NewInventory()

	a, _ := inv.Add(stack("iron_axe", 1, false))
	b, _ := inv.Add(stack("iron_axe", 1, false))
	if a == b {
		t.Fatal("unstackable items merged")
	}
	if inv.Size() != 2 {
		t.Fatalf("size = %d, want 2", inv.Size())
	}
	if a.ObjectID == b.ObjectID {
		t.Fatal("duplicate object IDs")
	}
}

func TestInventorySlotCapacity(t *testing.T) {
	inv := NewInventory()

	for i := 0; i < MaxInventorySize; i++ {
		if _, ok := inv.Add(stack("iron_axe", 1, false)); !ok {
			t.Fatalf("add %d rejected below capacity", i)
		}
	}
	if !inv.IsFull() {
		t.Fatal("IsFull false at capacity")
	}
	if _, ok := inv.Add(stack("torch", 1, false)); ok {
		t.Fatal("add accepted into full inventory")
	}

	// A stackable merge still works at slot capacity.
	inv2 := NewInventory()
	inv2.Add(stack("oak_log", 1, true))
	for i := 0; i < MaxInventorySize-1; i++ {
		inv2.Add(stack("iron_axe", 1, false))
	}
	if _, ok := inv2.Add(stack("oak_log", 4, true)); !ok {
		t.Fatal("merge rejected at slot capacity")
	}
	if inv2.CountItem("oak_log") != 5 {
		t.Fatalf("merged count = %d, want 5", inv2.CountItem("oak_log"))
	}
}

func TestInventoryRemoveAcrossStacks(t *testing.T) {
	inv := NewInventory()

	// Unstackable entries still count toward the same item type.
	inv.Add(stack("flint", 2, false))
	inv.Add(stack("flint", 3, false))

	if got := inv.Remove("flint", 4); got != 4 {
		t.Fatalf("removed %d, want 4", got)
	}
	if inv.CountItem("flint") != 1 {
		t.Fatalf("remaining = %d, want 1", inv.CountItem("flint"))
	}
	if got := inv.Remove("flint", 10); got != 1 {
		t.Fatalf("short removal returned %d, want 1", got)
	}
	if inv.Size() != 0 {
		t.Fatalf("size = %d after draining, want 0", inv.Size())
	}
}

func TestInventoryAffordAndConsume(t *testing.T) {
	inv := NewInventory()
	inv.Add(stack("iron_ingot", 3, true))
	inv.Add(stack("stick", 2, true))

	need := map[string]int{"iron_ingot": 3, "stick": 2}
	if !inv.CanAfford(need) {
		t.Fatal("CanAfford false with exact materials")
	}
	if !inv.Consume(need) {
		t.Fatal("Consume failed with exact materials")
	}
	if inv.Size() != 0 {
		t.Fatalf("size = %d after consume, want 0", inv.Size())
	}

	inv.Add(stack("iron_ingot", 2, true))
	if inv.CanAfford(need) {
		t.Fatal("CanAfford true while short")
	}
}

func TestInventoryAddEmptyRejected(t *testing.T) {
	inv := NewInventory()
	if _, ok := inv.Add(ItemStack{}); ok {
		t.Fatal("empty stack accepted")
	}
	if _, ok := inv.Add(stack("oak_log", 0, true)); ok {
		t.Fatal("zero-count stack accepted")
	}
}
