package param

import (
	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

// Local holds a value private to one system, surviving across its runs.
// Two systems using the same value type still get independent storage,
// because each system owns its parameter instances. Locals declare no world
// access and never conflict with anything.
type Local[T any] struct {
	value T
	seed  func(w *ecs.World) T
}

func NewLocal[T any]() *Local[T] {
	return &Local[T]{}
}

// NewLocalWith seeds the value from the world once, at registration.
func NewLocalWith[T any](seed func(w *ecs.World) T) *Local[T] {
	return &Local[T]{seed: seed}
}

func (l *Local[T]) Register(w *ecs.World, meta *Meta) {
	if l.seed != nil {
		l.value = l.seed(w)
	}
}

func (l *Local[T]) NewArchetype(a *ecs.Archetype, meta *Meta)       {}
func (l *Local[T]) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {}
func (l *Local[T]) Apply(meta *Meta, w *ecs.World)                  {}
func (l *Local[T]) ReadOnly() bool                                  { return true }

// Get returns the stored value for reading and writing.
func (l *Local[T]) Get() *T { return &l.value }
