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

const (
	spawnX = 0.0
	spawnY = 64.0
	spawnZ = 0.0

	defaultMaxHP   = 20.0
	defaultMaxStat = 100.0
)

// HandleEnterWorld processes C_ENTER_WORLD: loads (or creates) the
// account's character, builds the in-memory player, and sends the
// initial state snapshot.
func HandleEnterWorld(sess *net.Session, r *packet.Reader, deps *Deps) {
	charName := r.ReadS()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	row, err := deps.CharRepo.LoadByAccount(ctx, sess.AccountName)
	if err != nil {
		deps.Log.Error("character load failed", zap.String("account", sess.AccountName), zap.Error(err))
		sess.Close()
		return
	}
	if row == nil {
		row = &persist.CharacterRow{
			AccountName: sess.AccountName,
			Name:        charName,
			X:           spawnX,
			Y:           spawnY,
			Z:           spawnZ,
			HP:          defaultMaxHP,
			MaxHP:       defaultMaxHP,
			Hydration:   defaultMaxStat,
			Nutrition:   defaultMaxStat,
		}
		if row.Name == "" {
			row.Name = sess.AccountName
		}
		taken, err := deps.CharRepo.NameExists(ctx, row.Name)
		if err != nil {
			deps.Log.Error("name check failed", zap.String("name", row.Name), zap.Error(err))
			sess.Close()
			return
		}
		if taken {
			deps.Log.Warn("character name taken", zap.String("name", row.Name))
			sess.Close()
			return
		}
		if err := deps.CharRepo.Create(ctx, row); err != nil {
			deps.Log.Error("character create failed", zap.String("account", sess.AccountName), zap.Error(err))
			sess.Close()
			return
		}
		deps.Log.Info("character created", zap.String("name", row.Name), zap.Int32("id", row.ID))
	}

	if deps.World.GetByCharID(row.ID) != nil {
		deps.Log.Warn("character already in world", zap.String("name", row.Name))
		sess.Close()
		return
	}

	p := &world.PlayerInfo{
		SessionID: sess.ID,
		Session:   sess,
		CharID:    row.ID,
		Name:      row.Name,
		X:         row.X,
		Y:         row.Y,
		Z:         row.Z,
		OnGround:  true,
		HP:        row.HP,
		MaxHP:     row.MaxHP,
		Hydration: world.NewResourceStat(defaultMaxStat),
		Nutrition: world.NewResourceStat(defaultMaxStat),
		Queue:     world.NewCraftQueue(deps.Config.Crafting.QueueCapacity),
		Inv:       world.NewInventory(),
	}
	// Fail open on load: a corrupted (NaN/Inf) or non-positive stored
	// value comes back as a full stat rather than an instantly lethal zero.
	p.Hydration.SetLevel(row.Hydration)
	p.Nutrition.SetLevel(row.Nutrition)
	if p.Hydration.Current <= 0 {
		p.Hydration.SetLevel(p.Hydration.Max)
	}
	if p.Nutrition.Current <= 0 {
		p.Nutrition.SetLevel(p.Nutrition.Max)
	}
	if p.HP <= 0 {
		p.HP = p.MaxHP
	}

	items, err := deps.ItemRepo.LoadByCharID(ctx, row.ID)
	if err != nil {
		deps.Log.Error("inventory load failed", zap.String("name", row.Name), zap.Error(err))
		sess.Close()
		return
	}
	for _, it := range items {
		tmpl := deps.Items.Get(it.ItemID)
		if tmpl == nil {
			deps.Log.Warn("dropping unknown stored item", zap.String("item", it.ItemID))
			continue
		}
		p.Inv.Add(world.ItemStack{
			ObjectID:  world.NextItemObjID(),
			ItemID:    tmpl.ItemID,
			Name:      tmpl.Name,
			Count:     int(it.Count),
			Stackable: tmpl.Stackable,
		})
	}

	deps.World.AddPlayer(p)
	sess.CharName = p.Name
	sess.SetState(packet.StateInWorld)

	sendEnterWorld(sess, p)
	for _, stack := range p.Inv.Items {
		SendAddItem(p, stack)
	}
	SendStatSync(p)
	SendHPUpdate(p)
	SendQueueSync(p)

	// Arrival warning when a stat is already in the low band
	if p.Hydration.Current <= deps.Config.Survival.LowThreshold {
		SendSystemMessage(p, "You feel parched. Find something to drink.")
	}
	if p.Nutrition.Current <= deps.Config.Survival.LowThreshold {
		SendSystemMessage(p, "Your stomach growls. Find something to eat.")
	}

	deps.Log.Info("entered world",
		zap.String("name", p.Name),
		zap.Int32("char", p.CharID),
		zap.Uint64("session", sess.ID),
	)
}

func sendEnterWorld(sess *net.Session, p *world.PlayerInfo) {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_ENTER_WORLD)
	w.WriteD(p.CharID)
	w.WriteS(p.Name)
	w.WriteF(p.X)
	w.WriteF(p.Y)
	w.WriteF(p.Z)
	sess.Send(w.Bytes())
}
