package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tessera-ecs/tessera/internal/component"
	"github.com/tessera-ecs/tessera/internal/core/event"
	"github.com/tessera-ecs/tessera/internal/core/param"
	coresys "github.com/tessera-ecs/tessera/internal/core/system"
	"github.com/tessera-ecs/tessera/internal/data"
	"github.com/tessera-ecs/tessera/internal/scripting"
)

// NewSpawner asks the Lua policy each tick how many entities to create and
// queues the spawns as deferred commands. It tracks its own totals in a
// Local, reads the live entity count from the entity registry, and needs no
// component access at all, so it batches with everything.
func NewSpawner(engine *scripting.Engine, table *data.SpawnTable, target int, bus *event.Bus, log *zap.Logger) *coresys.System {
	type stats struct {
		spawned uint64
	}
	ents := param.NewEntitiesRef()
	cmds := param.NewCommands()
	local := param.NewLocal[stats]()
	tick := param.NewChangeTick()
	root := param.NewGroup(ents, cmds, local, tick)
	return coresys.New("spawner", coresys.PhasePreUpdate, root, func() {
		s := local.Get()
		decision := engine.SpawnPolicy(scripting.SpawnContext{
			Tick:         uint64(tick.ThisRun()),
			Alive:        ents.Entities().Len(),
			Target:       target,
			SpawnedSoFar: int(s.spawned),
		})
		if decision.Count <= 0 {
			return
		}
		def, ok := table.Bundle(decision.Bundle)
		if !ok {
			log.Warn("spawn policy chose unknown bundle", zap.String("bundle", decision.Bundle))
			return
		}
		entry := entryFor(table, decision.Bundle)
		for i := 0; i < decision.Count; i++ {
			comps, err := BuildComponents(def, entry)
			if err != nil {
				log.Error("build spawn components", zap.Error(err))
				return
			}
			cmds.Spawn(comps...)
			event.Emit(bus, event.Spawned{Bundle: def.Name})
		}
		s.spawned += uint64(decision.Count)
	})
}

// entryFor picks the first spawn entry for a bundle, or zero defaults.
func entryFor(table *data.SpawnTable, bundle string) data.SpawnEntry {
	for _, e := range table.Spawns() {
		if e.Bundle == bundle {
			return e
		}
	}
	return data.SpawnEntry{Bundle: bundle}
}

// BuildComponents instantiates a bundle's component list with values from a
// spawn entry.
func BuildComponents(def data.BundleDef, entry data.SpawnEntry) ([]any, error) {
	comps := make([]any, 0, len(def.Components))
	for _, name := range def.Components {
		switch name {
		case "Position":
			comps = append(comps, &component.Position{X: entry.X, Y: entry.Y})
		case "Velocity":
			comps = append(comps, &component.Velocity{DX: entry.DX, DY: entry.DY})
		case "Lifetime":
			comps = append(comps, &component.Lifetime{Remaining: entry.Lifetime})
		case "Health":
			comps = append(comps, &component.Health{Current: 100, Max: 100})
		case "Hostile":
			comps = append(comps, &component.Hostile{})
		case "Friendly":
			comps = append(comps, &component.Friendly{})
		case "Frozen":
			comps = append(comps, &component.Frozen{})
		default:
			return nil, fmt.Errorf("unknown component %q in bundle %q", name, def.Name)
		}
	}
	return comps, nil
}
