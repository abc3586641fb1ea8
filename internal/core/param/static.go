package param

import (
	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

// Static wraps a parameter without changing its behavior. It exists for
// generic helpers that accept "some parameter" as a type argument and need a
// uniform wrapper to hand back; every phase delegates to the inner value.
type Static[P Param] struct {
	inner P
}

func NewStatic[P Param](inner P) *Static[P] {
	return &Static[P]{inner: inner}
}

func (s *Static[P]) Register(w *ecs.World, meta *Meta) {
	s.inner.Register(w, meta)
}

func (s *Static[P]) NewArchetype(a *ecs.Archetype, meta *Meta) {
	s.inner.NewArchetype(a, meta)
}

func (s *Static[P]) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {
	s.inner.Load(cell, meta, tick)
}

func (s *Static[P]) Apply(meta *Meta, w *ecs.World) {
	s.inner.Apply(meta, w)
}

func (s *Static[P]) ReadOnly() bool { return s.inner.ReadOnly() }

// Unwrap returns the wrapped parameter.
func (s *Static[P]) Unwrap() P { return s.inner }
