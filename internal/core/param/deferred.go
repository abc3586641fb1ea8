package param

import (
	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

// Buffer is deferred work accumulated during a run and flushed into the
// world at a synchronization point. Flush must leave the buffer empty, so a
// second flush with nothing queued is a no-op.
type Buffer interface {
	Flush(w *ecs.World)
}

// Deferred wraps any Buffer as a system parameter. Writes go into the buffer
// during the run and reach the world only when the runner applies the system
// at the next synchronization point, so a deferring system may overlap
// readers of the data it is about to change.
type Deferred[B Buffer] struct {
	buf B
}

func NewDeferred[B Buffer](buf B) *Deferred[B] {
	return &Deferred[B]{buf: buf}
}

func (d *Deferred[B]) Register(w *ecs.World, meta *Meta)              {}
func (d *Deferred[B]) NewArchetype(a *ecs.Archetype, meta *Meta)      {}
func (d *Deferred[B]) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {}

func (d *Deferred[B]) Apply(meta *Meta, w *ecs.World) {
	d.buf.Flush(w)
}

// ReadOnly is false: the deferred mutations do land eventually.
func (d *Deferred[B]) ReadOnly() bool { return false }

// Get returns the wrapped buffer for queuing work.
func (d *Deferred[B]) Get() B { return d.buf }
