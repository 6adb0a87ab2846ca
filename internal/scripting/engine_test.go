package scripting

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFallbackDecay(t *testing.T) {
	cases := []struct {
		name      string
		ctx       DecayContext
		hydration float64
		nutrition float64
	}{
		{
			name:      "idle indoors",
			ctx:       DecayContext{},
			hydration: 0.8,
			nutrition: 0.8,
		},
		{
			name:      "idle in sunlight",
			ctx:       DecayContext{Sunlight: true, IsDaytime: true},
			hydration: 1.2,
			nutrition: 1.2,
		},
		{
			name:      "sunlight cancelled by rain",
			ctx:       DecayContext{Sunlight: true, IsDaytime: true, Raining: true},
			hydration: 0.8,
			nutrition: 0.8,
		},
		{
			name:      "sky exposure at night",
			ctx:       DecayContext{Sunlight: true},
			hydration: 0.8,
			nutrition: 0.8,
		},
		{
			name:      "idle in water",
			ctx:       DecayContext{InWater: true},
			hydration: 0.5,
			nutrition: 0.8,
		},
		{
			name:      "moderate travel",
			ctx:       DecayContext{Distance: 100},
			hydration: 1.3,
			nutrition: 1.3,
		},
		{
			name:      "travel capped",
			ctx:       DecayContext{Distance: 100000},
			hydration: 2.8,
			nutrition: 2.8,
		},
		{
			name:      "jumps",
			ctx:       DecayContext{Jumps: 10},
			hydration: 1.0,
			nutrition: 1.0,
		},
		{
			name:      "jumps capped",
			ctx:       DecayContext{Jumps: 500},
			hydration: 1.8,
			nutrition: 1.8,
		},
		{
			name:      "everything at once",
			ctx:       DecayContext{Distance: 400, Jumps: 50, Sunlight: true, IsDaytime: true, InWater: true},
			hydration: 3.9,
			nutrition: 4.2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FallbackDecay(tc.ctx)
			if !near(got.Hydration, tc.hydration) {
				t.Errorf("hydration = %v, want %v", got.Hydration, tc.hydration)
			}
			if !near(got.Nutrition, tc.nutrition) {
				t.Errorf("nutrition = %v, want %v", got.Nutrition, tc.nutrition)
			}
		})
	}
}

// The shipped Lua script and the built-in formula must agree: operators can
// edit the script, but a missing script silently falls back, and the two
// paths drifting apart would change game balance on a config mistake.
func TestLuaMatchesFallback(t *testing.T) {
	eng, err := NewEngine("../../scripts", zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer eng.Close()

	cases := []DecayContext{
		{},
		{Sunlight: true, IsDaytime: true},
		{Sunlight: true, IsDaytime: true, Raining: true},
		{InWater: true},
		{Distance: 100},
		{Distance: 100000},
		{Jumps: 10},
		{Jumps: 500},
		{Distance: 250, Jumps: 7, Sunlight: true, IsDaytime: true},
		{Distance: 400, Jumps: 50, Sunlight: true, IsDaytime: true, InWater: true},
	}

	for _, ctx := range cases {
		lua := eng.CalcSurvivalDecay(ctx)
		ref := FallbackDecay(ctx)
		if !near(lua.Hydration, ref.Hydration) || !near(lua.Nutrition, ref.Nutrition) {
			t.Errorf("ctx %+v: lua %+v != fallback %+v", ctx, lua, ref)
		}
	}
}

func TestMissingScriptFallsBack(t *testing.T) {
	eng, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer eng.Close()

	got := eng.CalcSurvivalDecay(DecayContext{Sunlight: true, IsDaytime: true})
	want := FallbackDecay(DecayContext{Sunlight: true, IsDaytime: true})
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestBrokenScriptFallsBack(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "survival")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	script := "function calc_survival_decay(ctx)\n  error(\"boom\")\nend\n"
	if err := os.WriteFile(filepath.Join(sub, "decay.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	eng, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer eng.Close()

	got := eng.CalcSurvivalDecay(DecayContext{InWater: true})
	want := FallbackDecay(DecayContext{InWater: true})
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestScriptOverridesFormula(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "survival")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	script := "function calc_survival_decay(ctx)\n  return { hydration = 7.5, nutrition = 2.5 }\nend\n"
	if err := os.WriteFile(filepath.Join(sub, "decay.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	eng, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer eng.Close()

	got := eng.CalcSurvivalDecay(DecayContext{})
	if got.Hydration != 7.5 || got.Nutrition != 2.5 {
		t.Fatalf("script result ignored: %+v", got)
	}
}
