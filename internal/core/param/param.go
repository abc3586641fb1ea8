// Package param implements system parameters: the declarations a system
// makes about the world data it touches, the registration-time conflict
// check over those declarations, and the per-invocation materialization of
// each parameter's value.
//
// Every parameter kind follows the same four-phase lifecycle. Register runs
// once when the owning system is added and records the parameter's access;
// NewArchetype runs whenever storage grows so archetype-dependent parameters
// can extend their declaration; Load runs before each invocation to
// materialize the value behind a scoped Cell; Apply runs at synchronization
// points to flush deferred work into the world.
package param

import (
	"fmt"
	"strings"

	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

// Param is the contract every system parameter implements. A parameter value
// carries its own state, so one instance must not be shared between systems.
type Param interface {
	// Register records the parameter's access in meta and resolves any
	// internal state against the world. Declaring access that conflicts
	// with what meta already holds is a programmer error and panics.
	Register(w *ecs.World, meta *Meta)

	// NewArchetype extends the declaration for one newly created archetype.
	// Kinds whose access does not depend on storage layout ignore it.
	NewArchetype(a *ecs.Archetype, meta *Meta)

	// Load materializes the parameter for one invocation. The cell's grants
	// are built from meta, so they cover exactly what Register declared.
	Load(cell ecs.Cell, meta *Meta, tick access.Tick)

	// Apply flushes deferred work into the world. Called only at
	// synchronization points, with exclusive access.
	Apply(meta *Meta, w *ecs.World)

	// ReadOnly reports whether the parameter never writes component data
	// and defers no mutations.
	ReadOnly() bool
}

// assertCompatible panics if candidate collides with the storage-location
// access meta has already accumulated. desc names the offending parameter in
// the message.
func assertCompatible(meta *Meta, candidate *access.Access, desc string, w *ecs.World) {
	held := meta.LocationAccess()
	if held.Compatible(candidate) {
		return
	}
	subject := describeLocations(w, held.Conflicts(candidate))
	if subject == "" {
		subject = "previously declared data"
	}
	panic(fmt.Sprintf(
		"%s in system %s accesses %s in a way that conflicts with a previous parameter. "+
			"Narrow the queries with Without filters so they cannot match the same entity, "+
			"or wrap the conflicting parameters in a Set and use one at a time",
		desc, meta.Name(), subject))
}

// describeLocations maps storage-location ids back to component names for an
// error message, deduplicating components that appear in several archetypes.
func describeLocations(w *ecs.World, locs []int) string {
	var names []string
	seen := make(map[ecs.ComponentID]bool, len(locs))
	for _, loc := range locs {
		cid, ok := w.Archetypes().ComponentOfLocation(ecs.ArchetypeComponentID(loc))
		if !ok || seen[cid] {
			continue
		}
		seen[cid] = true
		names = append(names, w.Components().Name(cid))
	}
	return strings.Join(names, ", ")
}
