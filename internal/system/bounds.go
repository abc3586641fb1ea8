package system

import (
	"github.com/tessera-ecs/tessera/internal/component"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
	"github.com/tessera-ecs/tessera/internal/core/param"
	coresys "github.com/tessera-ecs/tessera/internal/core/system"
)

// NewBounds reflects entities off the edges of a square arena. The measuring
// pass reads positions while the correcting pass writes positions and
// velocities; the two queries conflict, so they live in a Set and run one at
// a time within the system.
func NewBounds(half float64) *coresys.System {
	measure := param.NewQuery(param.Read[component.Position]())
	correct := param.NewQuery(
		param.Write[component.Position](),
		param.Write[component.Velocity](),
	)
	set := param.NewSet(measure, correct)
	return coresys.New("bounds", coresys.PhasePostUpdate, set, func() {
		escaped := false
		param.UseAs(set, 0, func(q *param.Query) {
			for c := q.Iter(); c.Next(); {
				pos := ecs.Get[component.Position](c)
				if pos.X < -half || pos.X > half || pos.Y < -half || pos.Y > half {
					escaped = true
					break
				}
			}
		})
		if !escaped {
			return
		}
		param.UseAs(set, 1, func(q *param.Query) {
			for c := q.Iter(); c.Next(); {
				pos := ecs.GetMut[component.Position](c)
				vel := ecs.GetMut[component.Velocity](c)
				if pos.X < -half {
					pos.X, vel.DX = -half, -vel.DX
				} else if pos.X > half {
					pos.X, vel.DX = half, -vel.DX
				}
				if pos.Y < -half {
					pos.Y, vel.DY = -half, -vel.DY
				} else if pos.Y > half {
					pos.Y, vel.DY = half, -vel.DY
				}
			}
		})
	})
}
