package system

import (
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
	"github.com/tessera-ecs/tessera/internal/core/param"
)

// Runner executes systems in phase order each tick. Within a phase it forms
// greedy batches of systems whose storage-location access is pairwise
// compatible and runs each batch on a worker group. Phase boundaries are
// synchronization points: every system of the finished phase has its
// deferred work applied, in registration order, before the next phase runs.
//
// Access declarations can grow between ticks as new archetypes appear. The
// runner re-syncs every system and re-forms batches from the current
// declarations at the start of each phase, so growth only ever shrinks
// concurrency, never admits a race.
type Runner struct {
	world   *ecs.World
	log     *zap.Logger
	workers int
	systems []*System
	sorted  bool
}

func NewRunner(world *ecs.World, log *zap.Logger, workers int) *Runner {
	return &Runner{
		world:   world,
		log:     log,
		workers: workers,
		systems: make([]*System, 0, 16),
	}
}

// Register adds a system and registers its parameter tree. A parameter tree
// whose declarations conflict with each other panics here, at registration,
// with the offending parameter and components named.
func (r *Runner) Register(s *System) {
	s.meta = param.NewMeta(s.name)
	s.root.Register(r.world, s.meta)
	s.seen = r.world.Archetypes().Len()
	r.systems = append(r.systems, s)
	r.sorted = false
	r.log.Debug("system registered",
		zap.String("system", s.name),
		zap.Int("phase", int(s.phase)),
		zap.Int("reads", len(s.meta.LocationAccess().Reads())),
		zap.Int("writes", len(s.meta.LocationAccess().Writes())),
		zap.Bool("read_only", s.ReadOnly()),
	)
}

// Tick advances the change tick and runs every registered system once.
func (r *Runner) Tick() {
	r.ensureSorted()
	tick := r.world.AdvanceTick()
	for lo := 0; lo < len(r.systems); {
		hi := lo
		for hi < len(r.systems) && r.systems[hi].phase == r.systems[lo].phase {
			hi++
		}
		r.runPhase(r.systems[lo:hi], tick)
		lo = hi
	}
}

func (r *Runner) runPhase(phase []*System, tick access.Tick) {
	for _, s := range phase {
		r.syncArchetypes(s)
	}
	for _, batch := range r.batches(phase) {
		r.runBatch(batch, tick)
	}
	// Synchronization point: flush deferred work in registration order.
	for _, s := range phase {
		s.root.Apply(s.meta, r.world)
	}
}

// syncArchetypes feeds archetypes created since the system's last sync into
// its parameter tree, growing the declared access before any batching.
func (r *Runner) syncArchetypes(s *System) {
	for ; s.seen < r.world.Archetypes().Len(); s.seen++ {
		s.root.NewArchetype(r.world.Archetypes().Get(ecs.ArchetypeID(s.seen)), s.meta)
	}
}

// batches greedily groups systems whose location access is compatible with
// everything already in the batch.
func (r *Runner) batches(phase []*System) [][]*System {
	var out [][]*System
	taken := make([]bool, len(phase))
	for i := range phase {
		if taken[i] {
			continue
		}
		taken[i] = true
		batch := []*System{phase[i]}
		union := phase[i].meta.LocationAccess().Clone()
		for j := i + 1; j < len(phase); j++ {
			if taken[j] {
				continue
			}
			acc := phase[j].meta.LocationAccess()
			if union.Compatible(acc) {
				taken[j] = true
				batch = append(batch, phase[j])
				union.Extend(acc)
			}
		}
		out = append(out, batch)
	}
	return out
}

func (r *Runner) runBatch(batch []*System, tick access.Tick) {
	if len(batch) == 1 {
		r.runSystem(batch[0], tick)
		return
	}
	var g errgroup.Group
	if r.workers > 0 {
		g.SetLimit(r.workers)
	}
	for _, s := range batch {
		s := s
		g.Go(func() error {
			r.runSystem(s, tick)
			return nil
		})
	}
	g.Wait()
}

func (r *Runner) runSystem(s *System, tick access.Tick) {
	cell := r.world.CellFor(s.meta.LocationAccess())
	s.root.Load(cell, s.meta, tick)
	s.fn()
	s.meta.SetLastRun(tick)
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].phase < r.systems[j].phase
		})
		r.sorted = true
	}
}
