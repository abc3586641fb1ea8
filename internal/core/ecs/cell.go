package ecs

import (
	"fmt"

	"github.com/tessera-ecs/tessera/internal/core/access"
)

// Cell is a scoped capability to the world, granted for the duration of one
// system invocation. The grants must cover at least the access the holder
// registered; the runner constructs each Cell directly from the system's
// accumulated declaration, so the two always agree. Mutable column access
// still asserts coverage so a violated contract fails loudly instead of
// racing silently.
//
// A Cell must not be retained across invocations.
type Cell struct {
	world  *World
	grants *access.Access
}

// CellFor grants scoped access to the world. grants is an archetype-component
// (storage location) declaration.
func (w *World) CellFor(grants *access.Access) Cell {
	return Cell{world: w, grants: grants}
}

// World exposes the whole store. Requires a read-all grant.
func (c Cell) World() *World {
	if !c.grants.ReadsAll() {
		panic("whole-world access requires a read-all grant")
	}
	return c.world
}

// Structural registries carry no component data and need no grant.

func (c Cell) Entities() EntitiesView     { return EntitiesView{pool: c.world.pool} }
func (c Cell) Archetypes() ArchetypesView { return ArchetypesView{archetypes: c.world.archetypes} }
func (c Cell) Components() ComponentsView { return ComponentsView{comps: c.world.components} }
func (c Cell) Bundles() BundlesView       { return BundlesView{bundles: c.world.bundles} }

// readColumn returns a column for reading, asserting the grant covers it.
func (c Cell) readColumn(arch *Archetype, cid ComponentID) *column {
	loc := arch.archComponents[cid]
	if !c.grants.HasRead(int(loc)) {
		panic(fmt.Sprintf("read of %s not covered by granted access", c.world.components.Name(cid)))
	}
	return arch.columns[cid]
}

// writeColumn returns a column for writing, asserting the grant covers it.
func (c Cell) writeColumn(arch *Archetype, cid ComponentID) *column {
	loc := arch.archComponents[cid]
	if !c.grants.HasWrite(int(loc)) {
		panic(fmt.Sprintf("write of %s not covered by granted access", c.world.components.Name(cid)))
	}
	return arch.columns[cid]
}
