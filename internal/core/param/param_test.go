package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }
type tagA struct{}
type tagB struct{}

// registerAll registers params in order against one fresh system meta.
func registerAll(t *testing.T, w *ecs.World, params ...Param) *Meta {
	t.Helper()
	meta := NewMeta("test_system")
	for _, p := range params {
		p.Register(w, meta)
	}
	return meta
}

// loadAll builds a cell from the meta's declaration and loads every param.
func loadAll(w *ecs.World, meta *Meta, tick access.Tick, params ...Param) {
	cell := w.CellFor(meta.LocationAccess())
	for _, p := range params {
		p.Load(cell, meta, tick)
	}
}

func TestWriteWriteConflictPanics(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{})

	q1 := NewQuery(Write[position]())
	q2 := NewQuery(Write[position]())

	meta := NewMeta("mover")
	q1.Register(w, meta)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		msg := r.(string)
		assert.Contains(t, msg, "position")
		assert.Contains(t, msg, "mover")
	}()
	q2.Register(w, meta)
}

func TestWriteReadConflictPanics(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{})

	meta := NewMeta("sys")
	NewQuery(Write[position]()).Register(w, meta)
	assert.Panics(t, func() {
		NewQuery(Read[position]()).Register(w, meta)
	})
}

func TestReadersCoexist(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{}, &velocity{})

	registerAll(t, w,
		NewQuery(Read[position]()),
		NewQuery(Read[position](), Read[velocity]()),
	)
}

func TestDisjointFiltersCoexist(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{}, &tagA{})
	w.Spawn(&position{}, &tagB{})

	registerAll(t, w,
		NewQuery(Write[position](), With[tagA]()),
		NewQuery(Write[position](), With[tagB]()),
	)
}

func TestWithWithoutDisjointCoexist(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{}, &tagA{})
	w.Spawn(&position{})

	registerAll(t, w,
		NewQuery(Write[position](), With[tagA]()),
		NewQuery(Write[position](), Without[tagA]()),
	)
}

func TestWorldRefOnlyPairsWithAccessless(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{})

	// commands declare nothing, so the pair is fine
	registerAll(t, w, NewWorldRef(), NewCommands())

	meta := NewMeta("sys")
	NewWorldRef().Register(w, meta)
	assert.Panics(t, func() {
		NewQuery(Read[position]()).Register(w, meta)
	})

	meta2 := NewMeta("sys2")
	NewQuery(Read[position]()).Register(w, meta2)
	assert.Panics(t, func() {
		NewWorldRef().Register(w, meta2)
	})
}

func TestWorldRefLoads(t *testing.T) {
	w := ecs.NewWorld()
	ref := NewWorldRef()
	meta := registerAll(t, w, ref)
	loadAll(w, meta, 1, ref)
	assert.Equal(t, w, ref.World())
}

func TestSetAllowsInternalConflict(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{}, &velocity{})

	reader := NewQuery(Read[position]())
	writer := NewQuery(Write[position]())
	set := NewSet(reader, writer)

	meta := registerAll(t, w, set)

	// the set's outward declaration carries the union
	assert.False(t, meta.LocationAccess().IsEmpty())

	loadAll(w, meta, 1, set)
	UseAs(set, 1, func(q *Query) {
		c := q.Iter()
		require.True(t, c.Next())
		ecs.GetMut[position](c).X = 5
	})
	UseAs(set, 0, func(q *Query) {
		c := q.Iter()
		require.True(t, c.Next())
		assert.Equal(t, 5.0, ecs.Get[position](c).X)
	})
}

func TestSetMemberStillConflictsOutside(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{})

	meta := NewMeta("sys")
	NewQuery(Write[position]()).Register(w, meta)
	assert.Panics(t, func() {
		NewSet(
			NewQuery(Read[position]()),
			NewQuery(Read[velocity]()),
		).Register(w, meta)
	})
}

func TestSetNestedUsePanics(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{})

	set := NewSet(NewQuery(Read[position]()), NewQuery(Write[position]()))
	meta := registerAll(t, w, set)
	loadAll(w, meta, 1, set)

	assert.Panics(t, func() {
		set.Use(0, func(Param) {
			set.Use(1, func(Param) {})
		})
	})

	// the borrow is released after a completed Use
	set.Use(0, func(Param) {})
	set.Use(1, func(Param) {})
}

func TestSetSizeBounds(t *testing.T) {
	q := func() Param { return NewQuery(Read[position]()) }
	assert.Panics(t, func() { NewSet(q()) })
	assert.NotPanics(t, func() { NewSet(q(), q()) })
	assert.Panics(t, func() {
		NewSet(q(), q(), q(), q(), q(), q(), q(), q(), q())
	})
}

func TestLocalIsPerInstance(t *testing.T) {
	w := ecs.NewWorld()

	a := NewLocal[int]()
	b := NewLocal[int]()
	registerAll(t, w, a)
	registerAll(t, w, b)

	*a.Get() = 7
	assert.Equal(t, 7, *a.Get())
	assert.Equal(t, 0, *b.Get())
}

func TestLocalSeed(t *testing.T) {
	w := ecs.NewWorld()
	ecs.RegisterComponent[position](w)

	l := NewLocalWith(func(w *ecs.World) int {
		return w.Components().Len()
	})
	registerAll(t, w, l)
	assert.Equal(t, 1, *l.Get())
}

func TestCommandsDeferUntilApply(t *testing.T) {
	w := ecs.NewWorld()
	cmds := NewCommands()
	meta := registerAll(t, w, cmds)
	loadAll(w, meta, 1, cmds)

	cmds.Spawn(&position{X: 3})
	assert.Equal(t, 0, w.Pool().Len())
	assert.Equal(t, 1, cmds.Pending())

	cmds.Apply(meta, w)
	assert.Equal(t, 1, w.Pool().Len())
	assert.Equal(t, 0, cmds.Pending())

	// a second apply with an empty queue is a no-op
	cmds.Apply(meta, w)
	assert.Equal(t, 1, w.Pool().Len())
}

func TestCommandsRunInOrder(t *testing.T) {
	w := ecs.NewWorld()
	id := w.Spawn(&position{})

	cmds := NewCommands()
	cmds.Insert(id, &velocity{DX: 2})
	Remove[velocity](cmds, id)
	cmds.Apply(NewMeta("sys"), w)

	_, ok := ecs.ComponentOf[velocity](w, id)
	assert.False(t, ok)
}

func TestDeferredWrapsAnyBuffer(t *testing.T) {
	w := ecs.NewWorld()
	buf := &CommandQueue{}
	d := NewDeferred(buf)
	meta := registerAll(t, w, d)
	loadAll(w, meta, 1, d)

	d.Get().Spawn(&position{})
	assert.Equal(t, 0, w.Pool().Len())
	d.Apply(meta, w)
	assert.Equal(t, 1, w.Pool().Len())
	assert.False(t, d.ReadOnly())
}

func TestChangeTickWindow(t *testing.T) {
	w := ecs.NewWorld()
	tick := NewChangeTick()
	meta := registerAll(t, w, tick)
	meta.SetLastRun(4)

	loadAll(w, meta, 9, tick)
	assert.Equal(t, access.Tick(4), tick.LastRun())
	assert.Equal(t, access.Tick(9), tick.ThisRun())
}

func TestSystemNameReportsOwner(t *testing.T) {
	w := ecs.NewWorld()
	name := NewSystemName()
	meta := NewMeta("observer")
	name.Register(w, meta)
	assert.Equal(t, "observer", name.Name())
}

func TestRegistriesLoadViews(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{})

	ents := NewEntitiesRef()
	archs := NewArchetypesRef()
	comps := NewComponentsRef()
	bundles := NewBundlesRef()
	group := NewGroup(ents, archs, comps, bundles)

	meta := registerAll(t, w, group)
	assert.True(t, meta.LocationAccess().IsEmpty())
	loadAll(w, meta, 1, group)

	assert.Equal(t, 1, ents.Entities().Len())
	assert.Equal(t, 1, archs.Archetypes().Len())
	assert.Equal(t, 1, comps.Components().Len())
	assert.Equal(t, 0, bundles.Bundles().Len())
}

func TestGroupAggregatesReadOnly(t *testing.T) {
	ro := NewGroup(NewLocal[int](), NewEntitiesRef())
	assert.True(t, ro.ReadOnly())

	rw := NewGroup(NewLocal[int](), NewCommands())
	assert.False(t, rw.ReadOnly())
}

func TestGroupSizeBound(t *testing.T) {
	members := make([]Param, 17)
	for i := range members {
		members[i] = Marker{}
	}
	assert.Panics(t, func() { NewGroup(members...) })
	assert.NotPanics(t, func() { NewGroup() })
}

func TestGroupMembersConflictAsSiblings(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{})

	meta := NewMeta("sys")
	assert.Panics(t, func() {
		NewGroup(
			NewQuery(Write[position]()),
			NewQuery(Read[position]()),
		).Register(w, meta)
	})
}

func TestStaticDelegates(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{X: 2})

	s := NewStatic(NewQuery(Read[position]()))
	meta := registerAll(t, w, s)
	loadAll(w, meta, 1, s)

	assert.True(t, s.ReadOnly())
	c := s.Unwrap().Iter()
	require.True(t, c.Next())
	assert.Equal(t, 2.0, ecs.Get[position](c).X)
}

func TestQueryConflictOnlyWhereArchetypesOverlap(t *testing.T) {
	w := ecs.NewWorld()
	w.Spawn(&position{}, &tagA{})

	// no archetype holds both position and tagB yet, so a writer behind
	// With(tagB) declares nothing and cannot conflict
	registerAll(t, w,
		NewQuery(Write[position](), With[tagA]()),
		NewQuery(Write[position](), With[tagB]()),
	)
}
