package param

import (
	"fmt"

	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

const (
	minSetMembers = 2
	maxSetMembers = 8
)

// Set holds between two and eight parameters that are allowed to conflict
// with each other, on the condition that only one is usable at a time. Each
// member registers against a clone of the system's accumulator, so a member
// still panics if it conflicts with a parameter outside the set, while the
// set's outward declaration is the union of every member's access.
type Set struct {
	members []Param
	cell    ecs.Cell
	meta    *Meta
	tick    access.Tick
	active  int
}

func NewSet(members ...Param) *Set {
	if len(members) < minSetMembers || len(members) > maxSetMembers {
		panic(fmt.Sprintf("parameter set holds %d members, allowed range is %d to %d",
			len(members), minSetMembers, maxSetMembers))
	}
	return &Set{members: members, active: -1}
}

func (s *Set) Register(w *ecs.World, meta *Meta) {
	scratches := make([]*Meta, len(s.members))
	for i, m := range s.members {
		scratch := meta.clone()
		m.Register(w, scratch)
		scratches[i] = scratch
	}
	for _, scratch := range scratches {
		meta.absorb(scratch)
	}
}

func (s *Set) NewArchetype(a *ecs.Archetype, meta *Meta) {
	for _, m := range s.members {
		m.NewArchetype(a, meta)
	}
}

// Load stashes the invocation context. Members are loaded lazily, one at a
// time, inside Use.
func (s *Set) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {
	s.cell = cell
	s.meta = meta
	s.tick = tick
	s.active = -1
}

func (s *Set) Apply(meta *Meta, w *ecs.World) {
	for _, m := range s.members {
		m.Apply(meta, w)
	}
}

func (s *Set) ReadOnly() bool {
	for _, m := range s.members {
		if !m.ReadOnly() {
			return false
		}
	}
	return true
}

func (s *Set) Len() int { return len(s.members) }

// Use borrows member i for the duration of fn. Borrowing while another
// member is still borrowed panics: two live members could alias the same
// data mutably.
func (s *Set) Use(i int, fn func(p Param)) {
	if s.active >= 0 {
		panic(fmt.Sprintf("set member %d is still in use, release it before taking member %d", s.active, i))
	}
	s.active = i
	defer func() { s.active = -1 }()
	m := s.members[i]
	m.Load(s.cell, s.meta, s.tick)
	fn(m)
}

// UseAs is Use with the member asserted to its concrete type.
func UseAs[P Param](s *Set, i int, fn func(p P)) {
	s.Use(i, func(p Param) {
		fn(p.(P))
	})
}
