package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCraftTicks is the craft duration when a recipe omits duration_ticks.
const DefaultCraftTicks = 100

// Recipe is a static crafting recipe from data/yaml/recipe_list.yaml.
type Recipe struct {
	RecipeID      string
	Category      string
	DisplayName   string
	ResultItem    string
	ResultCount   int
	Ingredients   map[string]int // item ID → required count
	DurationTicks int64
}

// RecipeTable holds all recipes indexed by RecipeID, plus a per-category
// index preserving file order for client listing.
type RecipeTable struct {
	recipes    map[string]*Recipe
	byCategory map[string][]*Recipe
}

// Get returns a recipe by ID, or nil if not found.
func (t *RecipeTable) Get(recipeID string) *Recipe {
	return t.recipes[recipeID]
}

// ByCategory returns the recipes in a category, in file order.
func (t *RecipeTable) ByCategory(category string) []*Recipe {
	return t.byCategory[category]
}

// Count returns total loaded recipes.
func (t *RecipeTable) Count() int {
	return len(t.recipes)
}

type recipeEntry struct {
	RecipeID      string         `yaml:"recipe_id"`
	Category      string         `yaml:"category"`
	DisplayName   string         `yaml:"display_name"`
	ResultItem    string         `yaml:"result_item"`
	ResultCount   int            `yaml:"result_count"`
	Ingredients   map[string]int `yaml:"ingredients"`
	DurationTicks int64          `yaml:"duration_ticks"`
}

type recipeListFile struct {
	Recipes []recipeEntry `yaml:"recipes"`
}

// LoadRecipeTable loads the recipe YAML file. Result items must exist in
// the item table; a dangling reference fails the load.
func LoadRecipeTable(path string, items *ItemTable) (*RecipeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	var f recipeListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse recipes: %w", err)
	}
	t := &RecipeTable{
		recipes:    make(map[string]*Recipe, len(f.Recipes)),
		byCategory: make(map[string][]*Recipe),
	}
	for i := range f.Recipes {
		e := &f.Recipes[i]
		if e.RecipeID == "" {
			return nil, fmt.Errorf("recipe entry %d: missing recipe_id", i)
		}
		if items.Get(e.ResultItem) == nil {
			return nil, fmt.Errorf("recipe %s: unknown result item %q", e.RecipeID, e.ResultItem)
		}
		for ing := range e.Ingredients {
			if items.Get(ing) == nil {
				return nil, fmt.Errorf("recipe %s: unknown ingredient %q", e.RecipeID, ing)
			}
		}
		r := &Recipe{
			RecipeID:      e.RecipeID,
			Category:      e.Category,
			DisplayName:   e.DisplayName,
			ResultItem:    e.ResultItem,
			ResultCount:   e.ResultCount,
			Ingredients:   e.Ingredients,
			DurationTicks: e.DurationTicks,
		}
		if r.ResultCount <= 0 {
			r.ResultCount = 1
		}
		if r.DurationTicks <= 0 {
			r.DurationTicks = DefaultCraftTicks
		}
		t.recipes[r.RecipeID] = r
		t.byCategory[r.Category] = append(t.byCategory[r.Category], r)
	}
	return t, nil
}
