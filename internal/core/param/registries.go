package param

import (
	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

// Structural registry parameters. These expose world metadata that carries
// no component data: the entity pool, the archetype list, the component
// registry, and the bundle registry. They declare no access and compose
// with everything, including whole-world parameters.

// EntitiesRef reads entity liveness and counts.
type EntitiesRef struct {
	view ecs.EntitiesView
}

func NewEntitiesRef() *EntitiesRef { return &EntitiesRef{} }

func (r *EntitiesRef) Register(w *ecs.World, meta *Meta)               {}
func (r *EntitiesRef) NewArchetype(a *ecs.Archetype, meta *Meta)       {}
func (r *EntitiesRef) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {
	r.view = cell.Entities()
}
func (r *EntitiesRef) Apply(meta *Meta, w *ecs.World) {}
func (r *EntitiesRef) ReadOnly() bool                 { return true }

func (r *EntitiesRef) Entities() ecs.EntitiesView { return r.view }

// ArchetypesRef reads the archetype list.
type ArchetypesRef struct {
	view ecs.ArchetypesView
}

func NewArchetypesRef() *ArchetypesRef { return &ArchetypesRef{} }

func (r *ArchetypesRef) Register(w *ecs.World, meta *Meta)               {}
func (r *ArchetypesRef) NewArchetype(a *ecs.Archetype, meta *Meta)       {}
func (r *ArchetypesRef) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {
	r.view = cell.Archetypes()
}
func (r *ArchetypesRef) Apply(meta *Meta, w *ecs.World) {}
func (r *ArchetypesRef) ReadOnly() bool                 { return true }

func (r *ArchetypesRef) Archetypes() ecs.ArchetypesView { return r.view }

// ComponentsRef reads the component registry.
type ComponentsRef struct {
	view ecs.ComponentsView
}

func NewComponentsRef() *ComponentsRef { return &ComponentsRef{} }

func (r *ComponentsRef) Register(w *ecs.World, meta *Meta)               {}
func (r *ComponentsRef) NewArchetype(a *ecs.Archetype, meta *Meta)       {}
func (r *ComponentsRef) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {
	r.view = cell.Components()
}
func (r *ComponentsRef) Apply(meta *Meta, w *ecs.World) {}
func (r *ComponentsRef) ReadOnly() bool                 { return true }

func (r *ComponentsRef) Components() ecs.ComponentsView { return r.view }

// BundlesRef reads the bundle registry.
type BundlesRef struct {
	view ecs.BundlesView
}

func NewBundlesRef() *BundlesRef { return &BundlesRef{} }

func (r *BundlesRef) Register(w *ecs.World, meta *Meta)               {}
func (r *BundlesRef) NewArchetype(a *ecs.Archetype, meta *Meta)       {}
func (r *BundlesRef) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {
	r.view = cell.Bundles()
}
func (r *BundlesRef) Apply(meta *Meta, w *ecs.World) {}
func (r *BundlesRef) ReadOnly() bool                 { return true }

func (r *BundlesRef) Bundles() ecs.BundlesView { return r.view }
