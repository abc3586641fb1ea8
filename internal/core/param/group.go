package param

import (
	"fmt"

	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

const maxGroupMembers = 16

// Group composes up to sixteen parameters into one. Every lifecycle phase
// threads through the members in declaration order against the same meta, so
// members conflict with each other exactly as they would as siblings on the
// system itself. An empty group is valid and inert.
type Group struct {
	members []Param
}

func NewGroup(members ...Param) *Group {
	if len(members) > maxGroupMembers {
		panic(fmt.Sprintf("parameter group holds %d members, maximum is %d", len(members), maxGroupMembers))
	}
	return &Group{members: members}
}

func (g *Group) Register(w *ecs.World, meta *Meta) {
	for _, m := range g.members {
		m.Register(w, meta)
	}
}

func (g *Group) NewArchetype(a *ecs.Archetype, meta *Meta) {
	for _, m := range g.members {
		m.NewArchetype(a, meta)
	}
}

func (g *Group) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {
	for _, m := range g.members {
		m.Load(cell, meta, tick)
	}
}

func (g *Group) Apply(meta *Meta, w *ecs.World) {
	for _, m := range g.members {
		m.Apply(meta, w)
	}
}

func (g *Group) ReadOnly() bool {
	for _, m := range g.members {
		if !m.ReadOnly() {
			return false
		}
	}
	return true
}
