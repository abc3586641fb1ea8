package param

import (
	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

// CommandQueue buffers structural changes: spawns, despawns, component
// inserts and removals. It satisfies Buffer, so it can ride behind Deferred,
// but most systems use the Commands parameter instead.
type CommandQueue struct {
	ops []func(w *ecs.World)
}

// Queue appends an arbitrary deferred operation.
func (q *CommandQueue) Queue(op func(w *ecs.World)) {
	q.ops = append(q.ops, op)
}

// Spawn queues creation of an entity from pointer components.
func (q *CommandQueue) Spawn(comps ...any) {
	q.Queue(func(w *ecs.World) { w.Spawn(comps...) })
}

// Despawn queues removal of an entity. Despawning an already dead entity at
// flush time is a silent no-op.
func (q *CommandQueue) Despawn(id ecs.EntityID) {
	q.Queue(func(w *ecs.World) { w.Despawn(id) })
}

// Insert queues adding or replacing one pointer component on an entity.
func (q *CommandQueue) Insert(id ecs.EntityID, comp any) {
	q.Queue(func(w *ecs.World) { w.Insert(id, comp) })
}

// QueueRemove queues stripping component T from an entity.
func QueueRemove[T any](q *CommandQueue, id ecs.EntityID) {
	q.Queue(func(w *ecs.World) { ecs.Remove[T](w, id) })
}

// Len reports how many operations are pending.
func (q *CommandQueue) Len() int { return len(q.ops) }

// Flush runs the queued operations in order and empties the queue.
func (q *CommandQueue) Flush(w *ecs.World) {
	ops := q.ops
	q.ops = nil
	for _, op := range ops {
		op(w)
	}
}

// Commands is the structural-change parameter: a command queue flushed at
// the next synchronization point. It declares no access of its own, so any
// number of systems can hold Commands concurrently.
type Commands struct {
	queue CommandQueue
}

func NewCommands() *Commands {
	return &Commands{}
}

func (c *Commands) Register(w *ecs.World, meta *Meta)               {}
func (c *Commands) NewArchetype(a *ecs.Archetype, meta *Meta)       {}
func (c *Commands) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {}

func (c *Commands) Apply(meta *Meta, w *ecs.World) {
	c.queue.Flush(w)
}

func (c *Commands) ReadOnly() bool { return false }

func (c *Commands) Spawn(comps ...any)                  { c.queue.Spawn(comps...) }
func (c *Commands) Despawn(id ecs.EntityID)             { c.queue.Despawn(id) }
func (c *Commands) Insert(id ecs.EntityID, comp any)    { c.queue.Insert(id, comp) }
func (c *Commands) Queue(op func(w *ecs.World))         { c.queue.Queue(op) }
func (c *Commands) Pending() int                        { return c.queue.Len() }

// Remove queues stripping component T from an entity via a Commands param.
func Remove[T any](c *Commands, id ecs.EntityID) {
	QueueRemove[T](&c.queue, id)
}
