package param

import (
	"reflect"

	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

// Read declares an immutable fetch of component T.
func Read[T any]() ecs.Term { return ecs.Term{Type: reflect.TypeOf((*T)(nil)).Elem(), Kind: ecs.TermRead} }

// Write declares a mutable fetch of component T.
func Write[T any]() ecs.Term { return ecs.Term{Type: reflect.TypeOf((*T)(nil)).Elem(), Kind: ecs.TermWrite} }

// With restricts the query to entities that have T, without fetching it.
func With[T any]() ecs.Term { return ecs.Term{Type: reflect.TypeOf((*T)(nil)).Elem(), Kind: ecs.TermWith} }

// Without restricts the query to entities that do not have T.
func Without[T any]() ecs.Term { return ecs.Term{Type: reflect.TypeOf((*T)(nil)).Elem(), Kind: ecs.TermWithout} }

// Query iterates entities matching a set of fetch and filter terms. Access is
// declared per matched storage location, so two queries writing the same
// component type coexist on one system when their filters keep them on
// disjoint archetypes.
type Query struct {
	terms []ecs.Term
	state *ecs.QueryState
	cell  ecs.Cell
	tick  access.Tick
}

func NewQuery(terms ...ecs.Term) *Query {
	return &Query{terms: terms}
}

func (q *Query) Register(w *ecs.World, meta *Meta) {
	q.state = ecs.NewQueryState(w, q.terms)
	assertCompatible(meta, q.state.LocationAccess(), q.state.Desc(), w)
	meta.LocationAccess().Extend(q.state.LocationAccess())
	meta.ComponentAccess().Add(q.state.Filtered().Clone())
}

// NewArchetype grows the declaration if the archetype matches. Growth never
// re-runs the conflict check; by the time an archetype appears the owning
// system is already registered, and the scheduler consults the extended
// declaration before the next run.
func (q *Query) NewArchetype(a *ecs.Archetype, meta *Meta) {
	if q.state.NewArchetype(a) {
		meta.LocationAccess().Extend(q.state.LocationAccess())
	}
}

func (q *Query) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {
	q.cell = cell
	q.tick = tick
}

func (q *Query) Apply(meta *Meta, w *ecs.World) {}

func (q *Query) ReadOnly() bool {
	for _, t := range q.terms {
		if t.Kind == ecs.TermWrite {
			return false
		}
	}
	return true
}

// Iter returns a fresh cursor over the matched entities. Valid only within
// the invocation whose Load produced the underlying cell.
func (q *Query) Iter() *ecs.Cursor {
	return q.state.Cursor(q.cell, q.tick)
}

// Single returns the cursor positioned on the only matching entity. Panics
// unless exactly one entity matches.
func (q *Query) Single() *ecs.Cursor {
	c := q.state.Cursor(q.cell, q.tick)
	if !c.Next() {
		panic("query matched no entities, expected exactly one")
	}
	probe := *c
	if probe.Next() {
		panic("query matched multiple entities, expected exactly one")
	}
	return c
}

// Count returns the number of entities currently matched.
func (q *Query) Count() int {
	n := 0
	for c := q.state.Cursor(q.cell, q.tick); c.Next(); {
		n++
	}
	return n
}
