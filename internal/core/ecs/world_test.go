package ecs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }
type tag struct{}
type other struct{}

func TestSpawnAndFetch(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(&position{X: 1, Y: 2}, &velocity{DX: 3})

	pos, ok := ComponentOf[position](w, id)
	require.True(t, ok)
	assert.Equal(t, 1.0, pos.X)

	vel, ok := ComponentOf[velocity](w, id)
	require.True(t, ok)
	assert.Equal(t, 3.0, vel.DX)

	_, ok = ComponentOf[tag](w, id)
	assert.False(t, ok)
}

func TestSpawnGroupsByComponentSet(t *testing.T) {
	w := NewWorld()
	w.Spawn(&position{})
	w.Spawn(&position{})
	w.Spawn(&position{}, &velocity{})

	// one archetype for {position}, one for {position, velocity}
	assert.Equal(t, 2, w.Archetypes().Len())
}

func TestSpawnRejectsNonPointer(t *testing.T) {
	w := NewWorld()
	assert.Panics(t, func() { w.Spawn(position{}) })
}

func TestSpawnRejectsDuplicateComponent(t *testing.T) {
	w := NewWorld()
	assert.Panics(t, func() { w.Spawn(&position{}, &position{X: 9}) })
}

func TestDespawnReleasesRow(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(&position{X: 1})
	b := w.Spawn(&position{X: 2})

	require.True(t, w.Despawn(a))
	assert.False(t, w.Despawn(a))

	// b survived the swap-remove and is still reachable
	pos, ok := ComponentOf[position](w, b)
	require.True(t, ok)
	assert.Equal(t, 2.0, pos.X)
	assert.Equal(t, 1, w.Pool().Len())
}

func TestInsertMovesToWiderArchetype(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(&position{X: 4})
	require.True(t, w.Insert(id, &velocity{DX: 7}))

	pos, ok := ComponentOf[position](w, id)
	require.True(t, ok)
	assert.Equal(t, 4.0, pos.X)
	vel, ok := ComponentOf[velocity](w, id)
	require.True(t, ok)
	assert.Equal(t, 7.0, vel.DX)
}

func TestInsertExistingReplacesInPlace(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(&position{X: 4})
	archetypes := w.Archetypes().Len()

	require.True(t, w.Insert(id, &position{X: 8}))
	assert.Equal(t, archetypes, w.Archetypes().Len())

	pos, _ := ComponentOf[position](w, id)
	assert.Equal(t, 8.0, pos.X)
}

func TestRemoveNarrowsArchetype(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(&position{X: 1}, &velocity{DX: 2})

	require.True(t, Remove[velocity](w, id))
	_, ok := ComponentOf[velocity](w, id)
	assert.False(t, ok)
	pos, ok := ComponentOf[position](w, id)
	require.True(t, ok)
	assert.Equal(t, 1.0, pos.X)

	assert.False(t, Remove[velocity](w, id))
}

func TestChangeTickStampsSpawnsAndInserts(t *testing.T) {
	w := NewWorld()
	w.AdvanceTick()
	id := w.Spawn(&position{})
	spawnTick := w.ChangeTick()

	w.AdvanceTick()
	w.Insert(id, &position{X: 1})

	loc, ok := w.locations[id]
	require.True(t, ok)
	cid, _ := w.components.lookup(reflect.TypeOf((*position)(nil)).Elem())
	col := w.archetypes.Get(loc.arch).columns[cid]
	assert.True(t, col.changed[loc.row].NewerThan(spawnTick))
}

func TestEntityIDReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(&position{})
	w.Despawn(a)
	b := w.Spawn(&position{})

	assert.NotEqual(t, a, b)
	assert.False(t, w.Pool().Alive(a))
	assert.True(t, w.Pool().Alive(b))
}

func TestBundleRegistry(t *testing.T) {
	w := NewWorld()
	pid := RegisterComponent[position](w)
	vid := RegisterComponent[velocity](w)

	id := w.Bundles().Register("mover", []ComponentID{pid, vid})
	got, ok := w.Bundles().Get("mover")
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, []ComponentID{pid, vid}, got.Components)

	// re-register replaces under the same name
	w.Bundles().Register("mover", []ComponentID{pid})
	got, _ = w.Bundles().Get("mover")
	assert.Equal(t, []ComponentID{pid}, got.Components)
	assert.Equal(t, 1, w.Bundles().Len())
}
