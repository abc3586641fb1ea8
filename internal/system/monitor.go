package system

import (
	"go.uber.org/zap"

	"github.com/tessera-ecs/tessera/internal/component"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
	"github.com/tessera-ecs/tessera/internal/core/param"
	coresys "github.com/tessera-ecs/tessera/internal/core/system"
)

// NewMonitor logs how many hostile entities moved since its previous run,
// using per-row change ticks. It is fully read-only and batches with every
// other reader.
func NewMonitor(log *zap.Logger) *coresys.System {
	q := param.NewQuery(
		param.Read[component.Position](),
		param.With[component.Hostile](),
	)
	tick := param.NewChangeTick()
	name := param.NewSystemName()
	root := param.NewGroup(q, tick, name)
	return coresys.New("monitor", coresys.PhaseLast, root, func() {
		total, moved := 0, 0
		for c := q.Iter(); c.Next(); {
			total++
			if ecs.ChangedTick[component.Position](c).NewerThan(tick.LastRun()) {
				moved++
			}
		}
		log.Debug("hostiles observed",
			zap.String("system", name.Name()),
			zap.Int("total", total),
			zap.Int("moved", moved),
		)
	})
}
