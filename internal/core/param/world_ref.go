package param

import (
	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

// WorldRef grants read access to the entire world, including archetypes that
// do not exist yet. It registers a universal read marker, so it can only ever
// share a system with parameters that declare no data access at all.
type WorldRef struct {
	cell ecs.Cell
}

func NewWorldRef() *WorldRef {
	return &WorldRef{}
}

func (r *WorldRef) Register(w *ecs.World, meta *Meta) {
	var candidate access.Access
	candidate.MarkReadAll()
	assertCompatible(meta, &candidate, "&World", w)
	meta.LocationAccess().Extend(&candidate)

	var f access.FilteredAccess
	f.Access.MarkReadAll()
	meta.ComponentAccess().Add(&f)
}

func (r *WorldRef) NewArchetype(a *ecs.Archetype, meta *Meta) {}

func (r *WorldRef) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {
	r.cell = cell
}

func (r *WorldRef) Apply(meta *Meta, w *ecs.World) {}

func (r *WorldRef) ReadOnly() bool { return true }

// World returns the store for direct inspection.
func (r *WorldRef) World() *ecs.World { return r.cell.World() }
