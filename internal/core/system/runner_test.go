package system

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tessera-ecs/tessera/internal/core/ecs"
	"github.com/tessera-ecs/tessera/internal/core/param"
)

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }
type tagA struct{}
type tagB struct{}

func newTestRunner(w *ecs.World) *Runner {
	return NewRunner(w, zap.NewNop(), 4)
}

func TestSystemsRunInPhaseOrder(t *testing.T) {
	w := ecs.NewWorld()
	r := newTestRunner(w)

	var order []string
	note := func(name string, phase Phase) *System {
		return New(name, phase, param.Marker{}, func() {
			order = append(order, name)
		})
	}
	r.Register(note("late", PhaseLast))
	r.Register(note("early", PhaseFirst))
	r.Register(note("mid", PhaseUpdate))

	r.Tick()
	assert.Equal(t, []string{"early", "mid", "late"}, order)
}

func TestRegisterPanicsOnConflictingParams(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{})
	r := newTestRunner(w)

	root := param.NewGroup(
		param.NewQuery(param.Write[position]()),
		param.NewQuery(param.Read[position]()),
	)
	assert.Panics(t, func() {
		r.Register(New("clash", PhaseUpdate, root, func() {}))
	})
}

func TestDeferredSpawnsVisibleNextPhase(t *testing.T) {
	w := ecs.NewWorld()
	r := newTestRunner(w)

	cmds := param.NewCommands()
	r.Register(New("producer", PhasePreUpdate, cmds, func() {
		cmds.Spawn(&position{X: 1})
	}))

	count := 0
	q := param.NewQuery(param.Read[position]())
	r.Register(New("consumer", PhaseUpdate, q, func() {
		count = 0
		for c := q.Iter(); c.Next(); {
			count++
		}
	}))

	r.Tick()
	assert.Equal(t, 1, count)
	r.Tick()
	assert.Equal(t, 2, count)
}

func TestDeferredDespawnAppliedAtPhaseBoundary(t *testing.T) {
	w := ecs.NewWorld()
	id := w.Spawn(&position{})
	r := newTestRunner(w)

	cmds := param.NewCommands()
	ents := param.NewEntitiesRef()
	root := param.NewGroup(cmds, ents)
	aliveDuringRun := -1
	r.Register(New("reaper", PhaseUpdate, root, func() {
		cmds.Despawn(id)
		aliveDuringRun = ents.Entities().Len()
	}))

	r.Tick()
	assert.Equal(t, 1, aliveDuringRun)
	assert.Equal(t, 0, w.Pool().Len())
}

func TestChangeDetectionAcrossRuns(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{}, &velocity{DX: 1})
	r := newTestRunner(w)

	ticked := false
	mover := param.NewQuery(param.Write[position](), param.Read[velocity]())
	r.Register(New("mover", PhaseUpdate, mover, func() {
		if ticked {
			return // write only on the first tick
		}
		ticked = true
		for c := mover.Iter(); c.Next(); {
			ecs.GetMut[position](c).X += ecs.Get[velocity](c).DX
		}
	}))

	changed := 0
	watcher := param.NewQuery(param.Read[position]())
	tick := param.NewChangeTick()
	root := param.NewGroup(watcher, tick)
	r.Register(New("watcher", PhaseLast, root, func() {
		changed = 0
		for c := watcher.Iter(); c.Next(); {
			if ecs.ChangedTick[position](c).NewerThan(tick.LastRun()) {
				changed++
			}
		}
	}))

	r.Tick()
	assert.Equal(t, 1, changed, "first run sees the fresh write")
	r.Tick()
	assert.Equal(t, 0, changed, "second run sees nothing newer")
}

func TestCompatibleSystemsShareABatch(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{}, &velocity{})
	r := newTestRunner(w)

	var ran atomic.Int32
	reader := func(name string) *System {
		q := param.NewQuery(param.Read[position]())
		return New(name, PhaseUpdate, q, func() {
			for c := q.Iter(); c.Next(); {
			}
			ran.Add(1)
		})
	}
	r.Register(reader("r1"))
	r.Register(reader("r2"))
	r.Register(reader("r3"))

	b := r.batches(r.systems)
	require.Len(t, b, 1)
	assert.Len(t, b[0], 3)

	r.Tick()
	assert.Equal(t, int32(3), ran.Load())
}

func TestConflictingSystemsSplitIntoBatches(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{})
	r := newTestRunner(w)

	r.Register(New("w1", PhaseUpdate, param.NewQuery(param.Write[position]()), func() {}))
	r.Register(New("w2", PhaseUpdate, param.NewQuery(param.Write[position]()), func() {}))

	b := r.batches(r.systems)
	assert.Len(t, b, 2)
}

func TestDisjointMarkersEndToEnd(t *testing.T) {
	w := ecs.NewWorld()
	r := newTestRunner(w)

	// registered before any matching archetype exists
	qa := param.NewQuery(param.Write[position](), param.With[tagA]())
	qb := param.NewQuery(param.Write[position](), param.With[tagB]())
	r.Register(New("move_a", PhaseUpdate, qa, func() {
		for c := qa.Iter(); c.Next(); {
			ecs.GetMut[position](c).X += 1
		}
	}))
	r.Register(New("move_b", PhaseUpdate, qb, func() {
		for c := qb.Iter(); c.Next(); {
			ecs.GetMut[position](c).X += 10
		}
	}))

	a := w.Spawn(&position{}, &tagA{})
	b := w.Spawn(&position{}, &tagB{})

	r.Tick()

	// the archetypes are disjoint, so the writers still share a batch
	batches := r.batches(r.systems)
	assert.Len(t, batches, 1)

	pa, _ := ecs.ComponentOf[position](w, a)
	pb, _ := ecs.ComponentOf[position](w, b)
	assert.Equal(t, 1.0, pa.X)
	assert.Equal(t, 10.0, pb.X)
}

func TestLateOverlapSerializesWriters(t *testing.T) {
	w := ecs.NewWorld()
	r := newTestRunner(w)

	qa := param.NewQuery(param.Write[position](), param.With[tagA]())
	qb := param.NewQuery(param.Write[position](), param.With[tagB]())
	r.Register(New("move_a", PhaseUpdate, qa, func() {
		for c := qa.Iter(); c.Next(); {
			ecs.GetMut[position](c).X += 1
		}
	}))
	r.Register(New("move_b", PhaseUpdate, qb, func() {
		for c := qb.Iter(); c.Next(); {
			ecs.GetMut[position](c).X += 10
		}
	}))

	// one entity carries both markers: the queries now overlap on its row
	id := w.Spawn(&position{}, &tagA{}, &tagB{})
	r.Tick()

	batches := r.batches(r.systems)
	assert.Len(t, batches, 2)

	p, _ := ecs.ComponentOf[position](w, id)
	assert.Equal(t, 11.0, p.X)
}

func TestManyTicksStayConsistent(t *testing.T) {
	w := ecs.NewWorld()
	for i := 0; i < 100; i++ {
		w.Spawn(&position{}, &velocity{DX: 1})
	}
	r := newTestRunner(w)

	mover := param.NewQuery(param.Write[position](), param.Read[velocity]())
	r.Register(New("mover", PhaseUpdate, mover, func() {
		for c := mover.Iter(); c.Next(); {
			ecs.GetMut[position](c).X += ecs.Get[velocity](c).DX
		}
	}))

	sum := 0.0
	obs := param.NewQuery(param.Read[position]())
	r.Register(New("observer", PhaseUpdate, obs, func() {
		sum = 0
		for c := obs.Iter(); c.Next(); {
			sum += ecs.Get[position](c).X
		}
	}))

	for i := 0; i < 50; i++ {
		r.Tick()
	}
	// mover and observer conflict, so mover always completes first
	assert.Equal(t, 5000.0, sum)
}
