package system

import (
	"github.com/tessera-ecs/tessera/internal/component"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
	"github.com/tessera-ecs/tessera/internal/core/param"
	coresys "github.com/tessera-ecs/tessera/internal/core/system"
)

// NewMovement integrates velocity into position for every mobile entity.
// Frozen entities are filtered out archetypally, so a system that writes
// positions of frozen entities can run alongside this one.
func NewMovement() *coresys.System {
	q := param.NewQuery(
		param.Write[component.Position](),
		param.Read[component.Velocity](),
		param.Without[component.Frozen](),
	)
	return coresys.New("movement", coresys.PhaseUpdate, q, func() {
		for c := q.Iter(); c.Next(); {
			vel := ecs.Get[component.Velocity](c)
			pos := ecs.GetMut[component.Position](c)
			pos.X += vel.DX
			pos.Y += vel.DY
		}
	})
}
