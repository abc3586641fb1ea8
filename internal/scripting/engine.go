package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the spawn policy script.
// Single-goroutine access only: the spawner system runs alone in its phase.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads the policy script at path.
func NewEngine(path string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	if err := vm.DoFile(path); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load policy script %s: %w", path, err)
	}
	log.Debug("loaded lua script", zap.String("file", path))
	return &Engine{vm: vm, log: log}, nil
}

func (e *Engine) Close() { e.vm.Close() }

// SpawnContext holds pre-packed simulation state for the spawn policy.
type SpawnContext struct {
	Tick         uint64
	Alive        int
	Target       int
	SpawnedSoFar int
}

// SpawnDecision is returned by the Lua spawn_policy function.
type SpawnDecision struct {
	Count  int
	Bundle string
}

// SpawnPolicy calls the Lua spawn_policy function. On script failure it
// falls back to spawning nothing.
func (e *Engine) SpawnPolicy(ctx SpawnContext) SpawnDecision {
	fn := e.vm.GetGlobal("spawn_policy")
	if fn == lua.LNil {
		e.log.Error("lua function spawn_policy not found")
		return SpawnDecision{}
	}

	t := e.vm.NewTable()
	t.RawSetString("tick", lua.LNumber(ctx.Tick))
	t.RawSetString("alive", lua.LNumber(ctx.Alive))
	t.RawSetString("target", lua.LNumber(ctx.Target))
	t.RawSetString("spawned", lua.LNumber(ctx.SpawnedSoFar))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua spawn_policy error", zap.Error(err))
		return SpawnDecision{}
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua spawn_policy returned non-table")
		return SpawnDecision{}
	}
	return SpawnDecision{
		Count:  int(lua.LVAsNumber(rt.RawGetString("count"))),
		Bundle: lua.LVAsString(rt.RawGetString("bundle")),
	}
}
