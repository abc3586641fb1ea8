package ecs

import "github.com/tessera-ecs/tessera/internal/core/access"

// ArchetypeID is a dense identifier for one archetype (storage shard).
type ArchetypeID int

// ArchetypeComponentID identifies one (archetype, component) pairing, the
// finest grain at which a data race can occur. Two systems writing the same
// component type in disjoint archetypes hold disjoint sets of these.
type ArchetypeComponentID int

// column holds one component's data for every entity in an archetype, row
// aligned with the archetype's entity list. Values are *T pointers; changed
// records the tick of the last write per row.
type column struct {
	values  []any
	changed []access.Tick
}

func (c *column) swapRemove(row int) {
	last := len(c.values) - 1
	c.values[row] = c.values[last]
	c.values = c.values[:last]
	c.changed[row] = c.changed[last]
	c.changed = c.changed[:last]
}

// Archetype is a storage shard: all entities sharing one exact component set.
type Archetype struct {
	id             ArchetypeID
	componentIDs   []ComponentID
	columns        map[ComponentID]*column
	archComponents map[ComponentID]ArchetypeComponentID
	entities       []EntityID
}

func (a *Archetype) ID() ArchetypeID { return a.id }
func (a *Archetype) Len() int        { return len(a.entities) }

// ComponentIDs returns the archetype's component set. Callers must not
// mutate the returned slice.
func (a *Archetype) ComponentIDs() []ComponentID { return a.componentIDs }

func (a *Archetype) Contains(id ComponentID) bool {
	_, ok := a.columns[id]
	return ok
}

// LocationOf returns the storage-location id for one of this archetype's
// components.
func (a *Archetype) LocationOf(id ComponentID) (ArchetypeComponentID, bool) {
	loc, ok := a.archComponents[id]
	return loc, ok
}

func (a *Archetype) entityAt(row int) EntityID { return a.entities[row] }

// Archetypes owns every archetype in a world and assigns storage-location
// ids densely as new (archetype, component) pairings appear.
type Archetypes struct {
	list         []*Archetype
	byKey        map[string]ArchetypeID
	locationComp []ComponentID // reverse index: location id -> component id
}

func newArchetypes() *Archetypes {
	return &Archetypes{byKey: make(map[string]ArchetypeID, 16)}
}

func (s *Archetypes) Len() int                  { return len(s.list) }
func (s *Archetypes) Get(id ArchetypeID) *Archetype { return s.list[id] }

// ComponentOfLocation maps a storage-location id back to its component id,
// used for naming components in conflict diagnostics.
func (s *Archetypes) ComponentOfLocation(loc ArchetypeComponentID) (ComponentID, bool) {
	if int(loc) >= len(s.locationComp) {
		return 0, false
	}
	return s.locationComp[loc], true
}

// getOrCreate returns the archetype for an exact component set, creating it
// and minting storage-location ids on first sight. The second result is true
// when a new archetype was created.
func (s *Archetypes) getOrCreate(ids []ComponentID) (*Archetype, bool) {
	key := componentKey(ids)
	if id, ok := s.byKey[key]; ok {
		return s.list[id], false
	}
	a := &Archetype{
		id:             ArchetypeID(len(s.list)),
		componentIDs:   append([]ComponentID(nil), ids...),
		columns:        make(map[ComponentID]*column, len(ids)),
		archComponents: make(map[ComponentID]ArchetypeComponentID, len(ids)),
	}
	for _, cid := range ids {
		a.columns[cid] = &column{}
		a.archComponents[cid] = ArchetypeComponentID(len(s.locationComp))
		s.locationComp = append(s.locationComp, cid)
	}
	s.byKey[key] = a.id
	s.list = append(s.list, a)
	return a, true
}

// ArchetypesView is the read-only window handed to systems that declare
// structural metadata access.
type ArchetypesView struct {
	archetypes *Archetypes
}

func (v ArchetypesView) Len() int                  { return v.archetypes.Len() }
func (v ArchetypesView) Get(id ArchetypeID) *Archetype { return v.archetypes.Get(id) }
