package ecs

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tessera-ecs/tessera/internal/core/access"
)

// TermKind distinguishes the roles a component type can play in a query.
type TermKind int

const (
	TermRead    TermKind = iota // fetch &T
	TermWrite                   // fetch &mut T
	TermWith                    // archetypal filter: entity must have T
	TermWithout                 // archetypal filter: entity must not have T
)

// Term is one unresolved piece of a query declaration. Component ids are
// resolved against a world when the owning parameter registers.
type Term struct {
	Type reflect.Type
	Kind TermKind
}

type queryTerm struct {
	id    ComponentID
	typ   reflect.Type
	write bool
}

// QueryState is the resolved, per-system state of one query: its fetch terms
// and filters, the component-level access they imply, the matched archetypes
// seen so far, and the storage-location access accumulated from them.
type QueryState struct {
	terms    []queryTerm
	with     []ComponentID
	without  []ComponentID
	filtered access.FilteredAccess
	archAcc  access.Access
	matched  []*Archetype
	seen     int
	desc     string
}

// NewQueryState resolves terms against the world and scans every existing
// archetype for matches.
func NewQueryState(w *World, terms []Term) *QueryState {
	s := &QueryState{}
	var parts []string
	for _, t := range terms {
		id := w.components.register(t.Type)
		switch t.Kind {
		case TermRead:
			s.terms = append(s.terms, queryTerm{id: id, typ: t.Type})
			s.filtered.Access.AddRead(int(id))
			s.filtered.AddWith(int(id))
			parts = append(parts, t.Type.Name())
		case TermWrite:
			s.terms = append(s.terms, queryTerm{id: id, typ: t.Type, write: true})
			s.filtered.Access.AddWrite(int(id))
			s.filtered.AddWith(int(id))
			parts = append(parts, "mut "+t.Type.Name())
		case TermWith:
			s.with = append(s.with, id)
			s.filtered.AddWith(int(id))
			parts = append(parts, "With("+t.Type.Name()+")")
		case TermWithout:
			s.without = append(s.without, id)
			s.filtered.AddWithout(int(id))
			parts = append(parts, "Without("+t.Type.Name()+")")
		default:
			panic(fmt.Sprintf("unknown query term kind %d", t.Kind))
		}
	}
	s.desc = "Query<" + strings.Join(parts, ", ") + ">"
	s.UpdateArchetypes(w)
	return s
}

// Filtered returns the component-level declaration with its filter scope.
func (s *QueryState) Filtered() *access.FilteredAccess { return &s.filtered }

// LocationAccess returns the storage-location declaration accumulated from
// every matched archetype so far.
func (s *QueryState) LocationAccess() *access.Access { return &s.archAcc }

// ReadOnly reports whether the query fetches nothing mutably.
func (s *QueryState) ReadOnly() bool {
	for _, t := range s.terms {
		if t.write {
			return false
		}
	}
	return true
}

func (s *QueryState) Desc() string { return s.desc }

func (s *QueryState) matches(a *Archetype) bool {
	for _, t := range s.terms {
		if !a.Contains(t.id) {
			return false
		}
	}
	for _, id := range s.with {
		if !a.Contains(id) {
			return false
		}
	}
	for _, id := range s.without {
		if a.Contains(id) {
			return false
		}
	}
	return true
}

// NewArchetype examines one archetype and, on a match, records it and
// extends the storage-location declaration with its term columns. Returns
// whether the archetype matched.
func (s *QueryState) NewArchetype(a *Archetype) bool {
	if !s.matches(a) {
		return false
	}
	s.matched = append(s.matched, a)
	for _, t := range s.terms {
		loc := a.archComponents[t.id]
		if t.write {
			s.archAcc.AddWrite(int(loc))
		} else {
			s.archAcc.AddRead(int(loc))
		}
	}
	return true
}

// UpdateArchetypes catches up on archetypes created since the last call.
func (s *QueryState) UpdateArchetypes(w *World) {
	for ; s.seen < w.archetypes.Len(); s.seen++ {
		s.NewArchetype(w.archetypes.Get(ArchetypeID(s.seen)))
	}
}

// Cursor walks every entity matched by a query, one invocation at a time.
// It is valid only for the system invocation whose Cell produced it.
type Cursor struct {
	cell    Cell
	state   *QueryState
	tick    access.Tick
	archIdx int
	row     int
	arch    *Archetype
}

// Cursor builds an iteration cursor over the matched archetypes. tick is the
// run's current change tick, stamped on rows written through GetMut.
func (s *QueryState) Cursor(cell Cell, tick access.Tick) *Cursor {
	return &Cursor{cell: cell, state: s, tick: tick, archIdx: -1, row: -1}
}

func (c *Cursor) Next() bool {
	for {
		if c.arch != nil && c.row+1 < c.arch.Len() {
			c.row++
			return true
		}
		c.archIdx++
		if c.archIdx >= len(c.state.matched) {
			return false
		}
		c.arch = c.state.matched[c.archIdx]
		c.row = -1
	}
}

// Entity returns the id at the cursor's current row.
func (c *Cursor) Entity() EntityID { return c.arch.entityAt(c.row) }

// Get reads the current row's component of type T.
func Get[T any](c *Cursor) T {
	cid := c.mustID(reflect.TypeOf((*T)(nil)).Elem())
	col := c.cell.readColumn(c.arch, cid)
	return *col.values[c.row].(*T)
}

// GetMut returns the current row's component of type T for mutation,
// stamping the row's change marker with the run's tick.
func GetMut[T any](c *Cursor) *T {
	cid := c.mustID(reflect.TypeOf((*T)(nil)).Elem())
	col := c.cell.writeColumn(c.arch, cid)
	col.changed[c.row] = c.tick
	return col.values[c.row].(*T)
}

// ChangedTick reports when the current row's component of type T was last
// written.
func ChangedTick[T any](c *Cursor) access.Tick {
	cid := c.mustID(reflect.TypeOf((*T)(nil)).Elem())
	col := c.cell.readColumn(c.arch, cid)
	return col.changed[c.row]
}

func (c *Cursor) mustID(t reflect.Type) ComponentID {
	id, ok := c.cell.world.components.lookup(t)
	if !ok {
		panic(fmt.Sprintf("component %s not registered", t.Name()))
	}
	return id
}
