package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable game formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"survival", "craft", "world"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DecayContext holds pre-packed activity and environment data for one
// decay interval.
type DecayContext struct {
	Distance  float64 // blocks moved this interval
	Jumps     int
	Sunlight  bool // exposed to open sky
	InWater   bool // head submerged
	Raining   bool
	IsDaytime bool
}

// DecayResult is the amount each survival stat loses this interval.
type DecayResult struct {
	Hydration float64
	Nutrition float64
}

// CalcSurvivalDecay calls Lua calc_survival_decay(ctx). Falls back to the
// built-in formula when the script is missing or errors.
func (e *Engine) CalcSurvivalDecay(ctx DecayContext) DecayResult {
	fn := e.vm.GetGlobal("calc_survival_decay")
	if fn == lua.LNil {
		return FallbackDecay(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("distance", lua.LNumber(ctx.Distance))
	t.RawSetString("jumps", lua.LNumber(ctx.Jumps))
	t.RawSetString("sunlight", lua.LBool(ctx.Sunlight))
	t.RawSetString("in_water", lua.LBool(ctx.InWater))
	t.RawSetString("raining", lua.LBool(ctx.Raining))
	t.RawSetString("is_daytime", lua.LBool(ctx.IsDaytime))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_survival_decay error", zap.Error(err))
		return FallbackDecay(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua calc_survival_decay returned non-table")
		return FallbackDecay(ctx)
	}

	return DecayResult{
		Hydration: float64(lua.LVAsNumber(rt.RawGetString("hydration"))),
		Nutrition: float64(lua.LVAsNumber(rt.RawGetString("nutrition"))),
	}
}

// FallbackDecay is the built-in decay formula, kept in exact agreement
// with scripts/survival/decay.lua.
func FallbackDecay(ctx DecayContext) DecayResult {
	base := 0.8

	move := ctx.Distance / 100.0 * 0.5
	if move > 2.0 {
		move = 2.0
	}

	jump := float64(ctx.Jumps) / 10.0 * 0.2
	if jump > 1.0 {
		jump = 1.0
	}

	decay := base + move + jump
	if ctx.Sunlight && ctx.IsDaytime && !ctx.Raining {
		decay += 0.4
	}

	// Being in water slows hydration loss only; base 0.8 keeps the
	// total positive (floor is 0.5 for an idle player in water).
	hydration := decay
	if ctx.InWater {
		hydration -= 0.3
	}

	return DecayResult{Hydration: hydration, Nutrition: decay}
}
