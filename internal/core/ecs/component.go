package ecs

import (
	"fmt"
	"reflect"
	"sort"
)

// ComponentID is a dense identifier for one component type within a world.
// Assigned on first registration, stable for the world's lifetime.
type ComponentID int

type componentInfo struct {
	id   ComponentID
	name string
	typ  reflect.Type
}

// Components maps component types to their dense ids. Component values are
// always handled as pointers (*T); registration is keyed on T.
type Components struct {
	byType map[reflect.Type]ComponentID
	infos  []componentInfo
}

func newComponents() *Components {
	return &Components{byType: make(map[reflect.Type]ComponentID, 32)}
}

// register assigns an id on first sight and returns the existing one after.
func (c *Components) register(t reflect.Type) ComponentID {
	if id, ok := c.byType[t]; ok {
		return id
	}
	id := ComponentID(len(c.infos))
	c.byType[t] = id
	c.infos = append(c.infos, componentInfo{id: id, name: t.Name(), typ: t})
	return id
}

func (c *Components) lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := c.byType[t]
	return id, ok
}

func (c *Components) Name(id ComponentID) string {
	if int(id) >= len(c.infos) {
		return fmt.Sprintf("Component(%d)", int(id))
	}
	return c.infos[id].name
}

func (c *Components) Len() int { return len(c.infos) }

// componentType returns the registered Go type behind an id.
func (c *Components) componentType(id ComponentID) reflect.Type {
	return c.infos[id].typ
}

// RegisterComponent assigns (or returns) the dense id for component type T.
func RegisterComponent[T any](w *World) ComponentID {
	return w.components.register(reflect.TypeOf((*T)(nil)).Elem())
}

// ComponentsView is the read-only window handed to systems that declare
// structural metadata access.
type ComponentsView struct {
	comps *Components
}

func (v ComponentsView) Name(id ComponentID) string { return v.comps.Name(id) }
func (v ComponentsView) Len() int                   { return v.comps.Len() }

func (v ComponentsView) IDOf(t reflect.Type) (ComponentID, bool) {
	return v.comps.lookup(t)
}

// componentKey builds the canonical archetype key for a component set.
func componentKey(ids []ComponentID) string {
	sorted := make([]ComponentID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	key := make([]byte, 0, len(sorted)*3)
	for _, id := range sorted {
		key = append(key, byte(id), byte(id>>8), ',')
	}
	return string(key)
}
