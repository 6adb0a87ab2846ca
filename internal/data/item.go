package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ItemInfo is a static item template from data/yaml/item_list.yaml.
type ItemInfo struct {
	ItemID    string
	Name      string
	Stackable bool

	// Consumable effects; zero means the item is not a food/drink.
	RestoreHydration float64
	RestoreNutrition float64
}

// Consumable reports whether using the item restores a survival stat.
func (i *ItemInfo) Consumable() bool {
	return i.RestoreHydration > 0 || i.RestoreNutrition > 0
}

// ItemTable holds all item templates indexed by ItemID.
type ItemTable struct {
	items map[string]*ItemInfo
}

// Get returns an item by ID, or nil if not found.
func (t *ItemTable) Get(itemID string) *ItemInfo {
	return t.items[itemID]
}

// Count returns total loaded items.
func (t *ItemTable) Count() int {
	return len(t.items)
}

type itemEntry struct {
	ItemID           string  `yaml:"item_id"`
	Name             string  `yaml:"name"`
	Stackable        bool    `yaml:"stackable"`
	RestoreHydration float64 `yaml:"restore_hydration"`
	RestoreNutrition float64 `yaml:"restore_nutrition"`
}

type itemListFile struct {
	Items []itemEntry `yaml:"items"`
}

// LoadItemTable loads the item YAML file into a lookup table.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	t := &ItemTable{items: make(map[string]*ItemInfo, len(f.Items))}
	for i := range f.Items {
		e := &f.Items[i]
		if e.ItemID == "" {
			return nil, fmt.Errorf("item entry %d: missing item_id", i)
		}
		t.items[e.ItemID] = &ItemInfo{
			ItemID:           e.ItemID,
			Name:             e.Name,
			Stackable:        e.Stackable,
			RestoreHydration: e.RestoreHydration,
			RestoreNutrition: e.RestoreNutrition,
		}
	}
	return t, nil
}
