package handler

import (
	"testing"
	"time"

	"github.com/emberwild/server/internal/config"
	"github.com/emberwild/server/internal/data"
	"github.com/emberwild/server/internal/world"
	"go.uber.org/zap"
)

func testDeps(t *testing.T) *Deps {
	t.Helper()
	items, err := data.LoadItemTable("../../data/yaml/item_list.yaml")
	if err != nil {
		t.Fatalf("load items: %v", err)
	}
	recipes, err := data.LoadRecipeTable("../../data/yaml/recipe_list.yaml", items)
	if err != nil {
		t.Fatalf("load recipes: %v", err)
	}
	return &Deps{
		Config:  config.Defaults(),
		Log:     zap.NewNop(),
		World:   world.NewState(),
		Items:   items,
		Recipes: recipes,
	}
}

// testPlayer builds an in-world player with no session; the send helpers
// all tolerate a nil session.
func testPlayer(deps *Deps, clk func() time.Time) *world.PlayerInfo {
	p := &world.PlayerInfo{
		SessionID: 1,
		CharID:    100,
		Name:      "tester",
		HP:        20,
		MaxHP:     20,
		Hydration: world.NewResourceStat(100),
		Nutrition: world.NewResourceStat(100),
		Queue:     world.NewCraftQueue(deps.Config.Crafting.QueueCapacity),
		Inv:       world.NewInventory(),
	}
	p.Queue.SetClock(clk)
	deps.World.AddPlayer(p)
	return p
}

func give(p *world.PlayerInfo, itemID string, count int, deps *Deps) {
	stack := world.ItemStack{ItemID: itemID, Count: count}
	if tmpl := deps.Items.Get(itemID); tmpl != nil {
		stack.Name = tmpl.Name
		stack.Stackable = tmpl.Stackable
	}
	p.Inv.Add(stack)
}

type tickClock struct {
	t time.Time
}

func (c *tickClock) now() time.Time { return c.t }

func (c *tickClock) advance(ticks int64) {
	c.t = c.t.Add(time.Duration(ticks) * world.MillisPerTick * time.Millisecond)
}

func TestStartCraftConsumesAndDelivers(t *testing.T) {
	deps := testDeps(t)
	clk := &tickClock{t: time.Unix(1_700_000_000, 0)}
	p := testPlayer(deps, clk.now)
	give(p, "wheat", 3, deps)

	if !StartCraft(p, "bread", deps) {
		t.Fatal("StartCraft failed with sufficient materials")
	}
	// Materials are debited immediately, long before delivery.
	if got := p.Inv.CountItem("wheat"); got != 0 {
		t.Fatalf("wheat after start = %d, want 0", got)
	}
	if p.Queue.Len() != 1 {
		t.Fatalf("queue len = %d, want 1", p.Queue.Len())
	}

	// bread takes 100 ticks (5 seconds); not a tick sooner.
	clk.advance(99)
	if done := p.Queue.TickHead(); done != nil {
		t.Fatal("job completed early")
	}
	clk.advance(1)
	done := p.Queue.TickHead()
	if done == nil {
		t.Fatal("job not completed at full duration")
	}

	DeliverJob(p, done, deps)
	if got := p.Inv.CountItem("bread"); got != 1 {
		t.Fatalf("bread after delivery = %d, want 1", got)
	}
	if p.Queue.Len() != 0 {
		t.Fatalf("queue len = %d after delivery, want 0", p.Queue.Len())
	}
}

func TestStartCraftInsufficientMaterials(t *testing.T) {
	deps := testDeps(t)
	clk := &tickClock{t: time.Unix(1_700_000_000, 0)}
	p := testPlayer(deps, clk.now)
	give(p, "wheat", 2, deps)

	if StartCraft(p, "bread", deps) {
		t.Fatal("StartCraft succeeded while short on wheat")
	}
	if got := p.Inv.CountItem("wheat"); got != 2 {
		t.Fatalf("wheat after rejection = %d, want 2", got)
	}
	if p.Queue.Len() != 0 {
		t.Fatalf("queue len = %d, want 0", p.Queue.Len())
	}
}

func TestStartCraftUnknownRecipe(t *testing.T) {
	deps := testDeps(t)
	clk := &tickClock{t: time.Unix(1_700_000_000, 0)}
	p := testPlayer(deps, clk.now)

	if StartCraft(p, "philosopher_stone", deps) {
		t.Fatal("StartCraft accepted an unknown recipe")
	}
}

func TestStartCraftQueueFullLeavesInventoryUntouched(t *testing.T) {
	deps := testDeps(t)
	clk := &tickClock{t: time.Unix(1_700_000_000, 0)}
	p := testPlayer(deps, clk.now)

	capacity := deps.Config.Crafting.QueueCapacity
	give(p, "wheat", 3*(capacity+1), deps)

	for i := 0; i < capacity; i++ {
		if !StartCraft(p, "bread", deps) {
			t.Fatalf("enqueue %d rejected below capacity", i)
		}
	}
	before := p.Inv.CountItem("wheat")

	if StartCraft(p, "bread", deps) {
		t.Fatal("StartCraft accepted past capacity")
	}
	if got := p.Inv.CountItem("wheat"); got != before {
		t.Fatalf("wheat changed on rejected start: %d -> %d", before, got)
	}
	if p.Queue.Len() != capacity {
		t.Fatalf("queue len = %d, want %d", p.Queue.Len(), capacity)
	}
}

func TestCancelCraftRefundsAndResumesNext(t *testing.T) {
	deps := testDeps(t)
	clk := &tickClock{t: time.Unix(1_700_000_000, 0)}
	p := testPlayer(deps, clk.now)
	give(p, "wheat", 9, deps)

	for i := 0; i < 3; i++ {
		StartCraft(p, "bread", deps)
	}
	if got := p.Inv.CountItem("wheat"); got != 0 {
		t.Fatalf("wheat after three starts = %d, want 0", got)
	}

	// Cancel the head at 50% progress.
	clk.advance(50)
	if !CancelCraft(p, 0, deps) {
		t.Fatal("cancel failed")
	}
	if got := p.Inv.CountItem("wheat"); got != 3 {
		t.Fatalf("wheat after refund = %d, want 3", got)
	}
	if p.Queue.Len() != 2 {
		t.Fatalf("queue len = %d, want 2", p.Queue.Len())
	}
	if p.Queue.Jobs()[0].Paused() {
		t.Fatal("next job did not resume after head cancel")
	}

	// The promoted job starts from zero progress.
	clk.advance(100)
	if done := p.Queue.TickHead(); done == nil {
		t.Fatal("promoted job did not complete in its full duration")
	}
}

func TestCancelCraftFinishedJobForfeitsResult(t *testing.T) {
	deps := testDeps(t)
	clk := &tickClock{t: time.Unix(1_700_000_000, 0)}
	p := testPlayer(deps, clk.now)
	give(p, "wheat", 3, deps)

	StartCraft(p, "bread", deps)
	clk.advance(100)

	// Completed but not yet delivered by the tick system.
	if !CancelCraft(p, 0, deps) {
		t.Fatal("cancel failed")
	}
	if got := p.Inv.CountItem("wheat"); got != 0 {
		t.Fatalf("finished job refunded wheat: %d", got)
	}
	if got := p.Inv.CountItem("bread"); got != 0 {
		t.Fatalf("cancelled job delivered bread: %d", got)
	}
}

func TestClearQueueRefundsEverything(t *testing.T) {
	deps := testDeps(t)
	clk := &tickClock{t: time.Unix(1_700_000_000, 0)}
	p := testPlayer(deps, clk.now)
	give(p, "wheat", 6, deps)
	give(p, "string", 3, deps)

	StartCraft(p, "bread", deps)
	StartCraft(p, "rope", deps)
	StartCraft(p, "bread", deps)

	ClearQueue(p, deps)
	if p.Queue.Len() != 0 {
		t.Fatalf("queue len = %d after clear, want 0", p.Queue.Len())
	}
	if got := p.Inv.CountItem("wheat"); got != 6 {
		t.Fatalf("wheat after clear = %d, want 6", got)
	}
	if got := p.Inv.CountItem("string"); got != 3 {
		t.Fatalf("string after clear = %d, want 3", got)
	}
}

func TestDeliverJobFallsBackToCatalog(t *testing.T) {
	deps := testDeps(t)
	clk := &tickClock{t: time.Unix(1_700_000_000, 0)}
	p := testPlayer(deps, clk.now)

	// A job persisted before a data reload may carry no result snapshot.
	job := world.NewCraftJob("bread", p.CharID, world.ItemStack{}, nil, 0, clk.now())
	DeliverJob(p, job, deps)
	if got := p.Inv.CountItem("bread"); got != 1 {
		t.Fatalf("fallback delivery gave %d bread, want 1", got)
	}
}

func TestGiveOrDropOverflowsToGround(t *testing.T) {
	deps := testDeps(t)
	clk := &tickClock{t: time.Unix(1_700_000_000, 0)}
	p := testPlayer(deps, clk.now)
	p.X, p.Y, p.Z = 10, 64, -5

	for i := 0; i < world.MaxInventorySize; i++ {
		give(p, "iron_axe", 1, deps)
	}

	lastID := world.NextGroundItemID()
	GiveOrDrop(p, world.ItemStack{ItemID: "torch", Name: "Torch", Count: 4}, deps)
	if p.Inv.CountItem("torch") != 0 {
		t.Fatal("torch added to a full inventory")
	}

	drop := deps.World.GetGroundItem(lastID + 1)
	if drop == nil || drop.ItemID != "torch" {
		t.Fatalf("overflow item not dropped to the ground: %+v", drop)
	}
	if drop.X != p.X || drop.Z != p.Z {
		t.Fatal("drop not at the player's feet")
	}
	if drop.Count != 4 || drop.OwnerID != p.CharID {
		t.Fatalf("drop = %+v", drop)
	}
}
