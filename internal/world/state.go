package world

import (
	"math/rand"
	"strings"
	"sync/atomic"
)

// DayLengthTicks is one full day/night cycle. Daytime is the first half.
const DayLengthTicks = 24000

// groundItemIDCounter generates unique object IDs for ground drops.
// Starts at 700_000_000 to avoid collision with char and inventory IDs.
var groundItemIDCounter atomic.Int64

func init() {
	groundItemIDCounter.Store(700_000_000)
}

// NextGroundItemID returns a unique object ID for a ground drop.
func NextGroundItemID() int64 {
	return groundItemIDCounter.Add(1)
}

// GroundItem is a dropped stack players can pick up. Not persisted —
// exists only in memory and expires after TTL ticks.
type GroundItem struct {
	ID      int64
	ItemID  string
	Name    string
	Count   int
	X, Y, Z float64
	OwnerID int32 // CharID of dropper (0 = anyone can pick up)
	TTL     int   // ticks remaining until auto-delete (0 = permanent)
}

// State is the authoritative in-memory world. Accessed only from the game
// loop goroutine — no locks needed.
type State struct {
	bySession map[uint64]*PlayerInfo // SessionID → PlayerInfo
	byCharID  map[int32]*PlayerInfo  // CharID → PlayerInfo
	byName    map[string]*PlayerInfo // lowercased name → PlayerInfo

	groundItems map[int64]*GroundItem

	// World clock & weather (game loop only)
	TimeOfDay int64 // tick within the current day cycle
	Raining   bool
	rainTicks int // ticks until the weather rolls again
}

func NewState() *State {
	return &State{
		bySession:   make(map[uint64]*PlayerInfo),
		byCharID:    make(map[int32]*PlayerInfo),
		byName:      make(map[string]*PlayerInfo),
		groundItems: make(map[int64]*GroundItem),
	}
}

// AddPlayer registers a player into all lookup maps.
func (s *State) AddPlayer(p *PlayerInfo) {
	s.bySession[p.SessionID] = p
	s.byCharID[p.CharID] = p
	s.byName[strings.ToLower(p.Name)] = p
}

// RemovePlayer removes a player from all maps and returns it (nil if absent).
func (s *State) RemovePlayer(sessionID uint64) *PlayerInfo {
	p := s.bySession[sessionID]
	if p == nil {
		return nil
	}
	delete(s.bySession, sessionID)
	delete(s.byCharID, p.CharID)
	delete(s.byName, strings.ToLower(p.Name))
	return p
}

func (s *State) GetBySession(sessionID uint64) *PlayerInfo {
	return s.bySession[sessionID]
}

func (s *State) GetByCharID(charID int32) *PlayerInfo {
	return s.byCharID[charID]
}

func (s *State) GetByName(name string) *PlayerInfo {
	return s.byName[strings.ToLower(name)]
}

func (s *State) PlayerCount() int {
	return len(s.bySession)
}

// AllPlayers iterates every in-world player. fn must not add or remove
// players during iteration.
func (s *State) AllPlayers(fn func(*PlayerInfo)) {
	for _, p := range s.bySession {
		fn(p)
	}
}

// AddGroundItem places a dropped stack into the world.
func (s *State) AddGroundItem(item *GroundItem) {
	s.groundItems[item.ID] = item
}

// RemoveGroundItem deletes a ground drop and returns it (nil if absent).
func (s *State) RemoveGroundItem(id int64) *GroundItem {
	item := s.groundItems[id]
	if item == nil {
		return nil
	}
	delete(s.groundItems, id)
	return item
}

func (s *State) GetGroundItem(id int64) *GroundItem {
	return s.groundItems[id]
}

// TickGroundItems decrements TTLs and returns the drops that expired
// this tick (already removed from the world).
func (s *State) TickGroundItems() []*GroundItem {
	var expired []*GroundItem
	for id, item := range s.groundItems {
		if item.TTL <= 0 {
			continue
		}
		item.TTL--
		if item.TTL == 0 {
			delete(s.groundItems, id)
			expired = append(expired, item)
		}
	}
	return expired
}

// AdvanceClock moves the world clock forward one tick and occasionally
// rerolls the weather. Rain stays rare (~20%) so sun exposure dominates.
func (s *State) AdvanceClock() {
	s.TimeOfDay = (s.TimeOfDay + 1) % DayLengthTicks
	if s.rainTicks > 0 {
		s.rainTicks--
		return
	}
	s.Raining = rand.Intn(10) < 2
	s.rainTicks = 6000 + rand.Intn(6000)
}

// IsDay reports whether the world clock is in the daytime half.
func (s *State) IsDay() bool {
	return s.TimeOfDay < DayLengthTicks/2
}
