package param

import "github.com/tessera-ecs/tessera/internal/core/access"

// Meta accumulates everything a system declares at registration time: its
// display name, the component-level access set (with filter scope, used for
// diagnostics), the storage-location access (used for the conflict check and
// for scheduling), and the tick of the system's previous run.
//
// A Meta belongs to exactly one system. It is mutated during registration
// and around each run, never concurrently.
type Meta struct {
	name       string
	components access.FilteredAccessSet
	locations  access.Access
	lastRun    access.Tick
}

func NewMeta(name string) *Meta {
	return &Meta{name: name}
}

func (m *Meta) Name() string { return m.name }

// LastRun returns the change tick recorded after the system's previous run.
func (m *Meta) LastRun() access.Tick { return m.lastRun }

// SetLastRun records the tick of a completed run.
func (m *Meta) SetLastRun(t access.Tick) { m.lastRun = t }

// ComponentAccess is the coarse, filter-scoped declaration over component ids.
func (m *Meta) ComponentAccess() *access.FilteredAccessSet { return &m.components }

// LocationAccess is the precise declaration over storage-location ids. The
// runner schedules concurrency from this set.
func (m *Meta) LocationAccess() *access.Access { return &m.locations }

// clone deep-copies the accumulator. Param sets register members against a
// clone so member-vs-member conflicts stay invisible while conflicts against
// the rest of the system still surface.
func (m *Meta) clone() *Meta {
	return &Meta{
		name:       m.name,
		components: *m.components.Clone(),
		locations:  *m.locations.Clone(),
		lastRun:    m.lastRun,
	}
}

// absorb unions another accumulator's declarations into this one.
func (m *Meta) absorb(other *Meta) {
	m.components.Extend(&other.components)
	m.locations.Extend(&other.locations)
}
