package system

import (
	"github.com/tessera-ecs/tessera/internal/component"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
	"github.com/tessera-ecs/tessera/internal/core/event"
	"github.com/tessera-ecs/tessera/internal/core/param"
	coresys "github.com/tessera-ecs/tessera/internal/core/system"
)

// NewDecay ages every entity with a lifetime and queues the expired ones for
// despawn. The despawns are deferred commands, so readers of the dying
// entities' data may still run concurrently this tick; the rows disappear at
// the phase boundary.
func NewDecay(bus *event.Bus) *coresys.System {
	q := param.NewQuery(param.Write[component.Lifetime]())
	cmds := param.NewCommands()
	root := param.NewGroup(q, cmds)
	return coresys.New("decay", coresys.PhaseUpdate, root, func() {
		for c := q.Iter(); c.Next(); {
			life := ecs.GetMut[component.Lifetime](c)
			life.Age++
			if life.Remaining == 0 {
				continue // immortal
			}
			life.Remaining--
			if life.Remaining == 0 {
				cmds.Despawn(c.Entity())
				event.Emit(bus, event.Expired{EntityID: c.Entity(), Age: life.Age})
			}
		}
	})
}
