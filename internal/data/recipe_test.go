package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testItemsYAML = `items:
  - item_id: oak_log
    name: Oak Log
    stackable: true
  - item_id: oak_plank
    name: Oak Plank
    stackable: true
  - item_id: berry
    name: Berry
    stackable: true
    restore_hydration: 5
    restore_nutrition: 2
  - item_id: iron_axe
    name: Iron Axe
`

const testRecipesYAML = `recipes:
  - recipe_id: oak_plank_x4
    category: materials
    display_name: Oak Planks
    result_item: oak_plank
    result_count: 4
    ingredients:
      oak_log: 1
    duration_ticks: 40
  - recipe_id: iron_axe
    category: tools
    display_name: Iron Axe
    result_item: iron_axe
    ingredients:
      oak_plank: 3
  - recipe_id: plank_recycle
    category: materials
    display_name: Recycled Planks
    result_item: oak_plank
    ingredients:
      oak_plank: 2
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadTestTables(t *testing.T) (*ItemTable, *RecipeTable) {
	t.Helper()
	items, err := LoadItemTable(writeTemp(t, "items.yaml", testItemsYAML))
	if err != nil {
		t.Fatalf("load items: %v", err)
	}
	recipes, err := LoadRecipeTable(writeTemp(t, "recipes.yaml", testRecipesYAML), items)
	if err != nil {
		t.Fatalf("load recipes: %v", err)
	}
	return items, recipes
}

func TestLoadItemTable(t *testing.T) {
	items, _ := loadTestTables(t)

	if items.Count() != 4 {
		t.Fatalf("count = %d, want 4", items.Count())
	}
	berry := items.Get("berry")
	if berry == nil || !berry.Consumable() {
		t.Fatalf("berry = %+v, want consumable", berry)
	}
	if berry.RestoreHydration != 5 || berry.RestoreNutrition != 2 {
		t.Fatalf("berry restores = %v/%v", berry.RestoreHydration, berry.RestoreNutrition)
	}
	axe := items.Get("iron_axe")
	if axe == nil || axe.Consumable() || axe.Stackable {
		t.Fatalf("iron_axe = %+v", axe)
	}
	if items.Get("no_such_item") != nil {
		t.Fatal("unknown item returned non-nil")
	}
}

func TestLoadItemTableMissingID(t *testing.T) {
	path := writeTemp(t, "items.yaml", "items:\n  - name: Nameless\n")
	if _, err := LoadItemTable(path); err == nil {
		t.Fatal("entry without item_id accepted")
	}
}

func TestLoadRecipeTable(t *testing.T) {
	_, recipes := loadTestTables(t)

	if recipes.Count() != 3 {
		t.Fatalf("count = %d, want 3", recipes.Count())
	}
	planks := recipes.Get("oak_plank_x4")
	if planks == nil {
		t.Fatal("oak_plank_x4 missing")
	}
	if planks.ResultCount != 4 || planks.DurationTicks != 40 {
		t.Fatalf("oak_plank_x4 = %+v", planks)
	}
	if planks.Ingredients["oak_log"] != 1 {
		t.Fatalf("ingredients = %v", planks.Ingredients)
	}
}

func TestLoadRecipeTableDefaults(t *testing.T) {
	_, recipes := loadTestTables(t)

	// iron_axe omits result_count and duration_ticks.
	axe := recipes.Get("iron_axe")
	if axe.ResultCount != 1 {
		t.Fatalf("default result count = %d, want 1", axe.ResultCount)
	}
	if axe.DurationTicks != DefaultCraftTicks {
		t.Fatalf("default duration = %d, want %d", axe.DurationTicks, DefaultCraftTicks)
	}
}

func TestLoadRecipeTableByCategory(t *testing.T) {
	_, recipes := loadTestTables(t)

	materials := recipes.ByCategory("materials")
	if len(materials) != 2 {
		t.Fatalf("materials = %d recipes, want 2", len(materials))
	}
	// File order is preserved within a category.
	if materials[0].RecipeID != "oak_plank_x4" || materials[1].RecipeID != "plank_recycle" {
		t.Fatalf("order = %s, %s", materials[0].RecipeID, materials[1].RecipeID)
	}
	if len(recipes.ByCategory("gear")) != 0 {
		t.Fatal("empty category returned recipes")
	}
}

func TestLoadRecipeTableDanglingResult(t *testing.T) {
	items, err := LoadItemTable(writeTemp(t, "items.yaml", testItemsYAML))
	if err != nil {
		t.Fatal(err)
	}
	bad := `recipes:
  - recipe_id: ghost
    category: materials
    result_item: ectoplasm
`
	_, err = LoadRecipeTable(writeTemp(t, "recipes.yaml", bad), items)
	if err == nil || !strings.Contains(err.Error(), "ectoplasm") {
		t.Fatalf("err = %v, want unknown result item", err)
	}
}

func TestLoadRecipeTableDanglingIngredient(t *testing.T) {
	items, err := LoadItemTable(writeTemp(t, "items.yaml", testItemsYAML))
	if err != nil {
		t.Fatal(err)
	}
	bad := `recipes:
  - recipe_id: cursed_plank
    category: materials
    result_item: oak_plank
    ingredients:
      ectoplasm: 1
`
	_, err = LoadRecipeTable(writeTemp(t, "recipes.yaml", bad), items)
	if err == nil || !strings.Contains(err.Error(), "ectoplasm") {
		t.Fatalf("err = %v, want unknown ingredient", err)
	}
}

func TestShippedDataLoads(t *testing.T) {
	items, err := LoadItemTable("../../data/yaml/item_list.yaml")
	if err != nil {
		t.Fatalf("shipped items: %v", err)
	}
	recipes, err := LoadRecipeTable("../../data/yaml/recipe_list.yaml", items)
	if err != nil {
		t.Fatalf("shipped recipes: %v", err)
	}
	if items.Count() == 0 || recipes.Count() == 0 {
		t.Fatal("shipped data tables empty")
	}
}
