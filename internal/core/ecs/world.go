package ecs

import (
	"fmt"
	"reflect"

	"github.com/tessera-ecs/tessera/internal/core/access"
)

type location struct {
	arch ArchetypeID
	row  int
}

// World is the shared store: all component data, organized into archetypes,
// plus the entity pool, the component and bundle registries, and the global
// change tick.
//
// World itself is not safe for concurrent mutation. Concurrent access is
// mediated by the parameter layer: systems declare what they touch, the
// runner only overlaps systems with disjoint write sets, and each system
// reaches the world through a Cell scoped to its declaration.
type World struct {
	pool       *EntityPool
	components *Components
	archetypes *Archetypes
	bundles    *Bundles
	locations  map[EntityID]location
	changeTick access.Tick
}

func NewWorld() *World {
	return &World{
		pool:       NewEntityPool(),
		components: newComponents(),
		archetypes: newArchetypes(),
		bundles:    newBundles(),
		locations:  make(map[EntityID]location, 256),
	}
}

func (w *World) Pool() *EntityPool       { return w.pool }
func (w *World) Components() *Components { return w.components }
func (w *World) Archetypes() *Archetypes { return w.archetypes }
func (w *World) Bundles() *Bundles       { return w.bundles }

// ChangeTick returns the current value of the global change counter.
func (w *World) ChangeTick() access.Tick { return w.changeTick }

// AdvanceTick moves the global change counter forward one run cycle.
func (w *World) AdvanceTick() access.Tick {
	w.changeTick++
	return w.changeTick
}

// Spawn creates an entity from pointer components (*T), placing it in the
// archetype matching the exact component set. Passing a non-pointer or the
// same component type twice is a programmer error and panics.
func (w *World) Spawn(comps ...any) EntityID {
	ids := make([]ComponentID, len(comps))
	for i, comp := range comps {
		ids[i] = w.componentIDOf(comp)
		for j := 0; j < i; j++ {
			if ids[j] == ids[i] {
				panic(fmt.Sprintf("duplicate component %s in spawn", w.components.Name(ids[i])))
			}
		}
	}
	arch, _ := w.archetypes.getOrCreate(ids)
	id := w.pool.Create()
	row := len(arch.entities)
	arch.entities = append(arch.entities, id)
	for i, comp := range comps {
		col := arch.columns[ids[i]]
		col.values = append(col.values, comp)
		col.changed = append(col.changed, w.changeTick)
	}
	w.locations[id] = location{arch: arch.id, row: row}
	return id
}

// Despawn removes an entity and all its component data.
func (w *World) Despawn(id EntityID) bool {
	loc, ok := w.locations[id]
	if !ok {
		return false
	}
	w.removeRow(w.archetypes.Get(loc.arch), loc.row)
	delete(w.locations, id)
	w.pool.Destroy(id)
	return true
}

// Insert adds a pointer component to an entity, moving it to the widened
// archetype. If the entity already has the component, the value is replaced
// in place.
func (w *World) Insert(id EntityID, comp any) bool {
	loc, ok := w.locations[id]
	if !ok {
		return false
	}
	cid := w.componentIDOf(comp)
	arch := w.archetypes.Get(loc.arch)
	if col, ok := arch.columns[cid]; ok {
		col.values[loc.row] = comp
		col.changed[loc.row] = w.changeTick
		return true
	}
	ids := append(append([]ComponentID(nil), arch.componentIDs...), cid)
	w.moveEntity(id, arch, loc.row, ids, comp, cid)
	return true
}

// Remove strips component type T from an entity, moving it to the narrowed
// archetype.
func Remove[T any](w *World, id EntityID) bool {
	cid, ok := w.components.lookup(reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return false
	}
	return w.removeByID(id, cid)
}

func (w *World) removeByID(id EntityID, cid ComponentID) bool {
	loc, ok := w.locations[id]
	if !ok {
		return false
	}
	arch := w.archetypes.Get(loc.arch)
	if !arch.Contains(cid) {
		return false
	}
	ids := make([]ComponentID, 0, len(arch.componentIDs)-1)
	for _, c := range arch.componentIDs {
		if c != cid {
			ids = append(ids, c)
		}
	}
	w.moveEntity(id, arch, loc.row, ids, nil, -1)
	return true
}

// ComponentOf fetches an entity's component of type T, or false if absent.
func ComponentOf[T any](w *World, id EntityID) (*T, bool) {
	cid, ok := w.components.lookup(reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return nil, false
	}
	loc, ok := w.locations[id]
	if !ok {
		return nil, false
	}
	col, ok := w.archetypes.Get(loc.arch).columns[cid]
	if !ok {
		return nil, false
	}
	return col.values[loc.row].(*T), true
}

// moveEntity transplants an entity's row into the archetype with component
// set ids, carrying values over and seeding added (if any) at the current
// tick, then releases the old row.
func (w *World) moveEntity(id EntityID, from *Archetype, row int, ids []ComponentID, added any, addedID ComponentID) {
	to, _ := w.archetypes.getOrCreate(ids)
	newRow := len(to.entities)
	to.entities = append(to.entities, id)
	for _, cid := range ids {
		col := to.columns[cid]
		if cid == addedID {
			col.values = append(col.values, added)
			col.changed = append(col.changed, w.changeTick)
			continue
		}
		src := from.columns[cid]
		col.values = append(col.values, src.values[row])
		col.changed = append(col.changed, src.changed[row])
	}
	w.removeRow(from, row)
	w.locations[id] = location{arch: to.id, row: newRow}
}

// removeRow swap-removes one row from an archetype, fixing up the location
// of the entity that got swapped into its place.
func (w *World) removeRow(arch *Archetype, row int) {
	last := len(arch.entities) - 1
	moved := arch.entities[last]
	arch.entities[row] = moved
	arch.entities = arch.entities[:last]
	for _, col := range arch.columns {
		col.swapRemove(row)
	}
	if row != last {
		w.locations[moved] = location{arch: arch.id, row: row}
	}
}

// ComponentIDOf registers (if needed) and returns the id behind a pointer
// component value.
func (w *World) ComponentIDOf(comp any) ComponentID {
	return w.componentIDOf(comp)
}

func (w *World) componentIDOf(comp any) ComponentID {
	t := reflect.TypeOf(comp)
	if t == nil || t.Kind() != reflect.Pointer {
		panic(fmt.Sprintf("component must be a pointer, got %T", comp))
	}
	return w.components.register(t.Elem())
}
