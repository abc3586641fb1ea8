package param

import (
	"github.com/tessera-ecs/tessera/internal/core/access"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
)

// ChangeTick exposes the change-detection window of the current run: the
// tick of the system's previous run and the tick of this one. A component
// row changed since LastRun is new from this system's point of view.
type ChangeTick struct {
	lastRun access.Tick
	thisRun access.Tick
}

func NewChangeTick() *ChangeTick { return &ChangeTick{} }

func (t *ChangeTick) Register(w *ecs.World, meta *Meta)         {}
func (t *ChangeTick) NewArchetype(a *ecs.Archetype, meta *Meta) {}

func (t *ChangeTick) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {
	t.lastRun = meta.LastRun()
	t.thisRun = tick
}

func (t *ChangeTick) Apply(meta *Meta, w *ecs.World) {}
func (t *ChangeTick) ReadOnly() bool                 { return true }

func (t *ChangeTick) LastRun() access.Tick { return t.lastRun }
func (t *ChangeTick) ThisRun() access.Tick { return t.thisRun }

// SystemName exposes the owning system's registered name, mostly for log
// lines emitted from shared helpers.
type SystemName struct {
	name string
}

func NewSystemName() *SystemName { return &SystemName{} }

func (s *SystemName) Register(w *ecs.World, meta *Meta) {
	s.name = meta.Name()
}

func (s *SystemName) NewArchetype(a *ecs.Archetype, meta *Meta)       {}
func (s *SystemName) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {}
func (s *SystemName) Apply(meta *Meta, w *ecs.World)                  {}
func (s *SystemName) ReadOnly() bool                                  { return true }

func (s *SystemName) Name() string { return s.name }

// Marker is the inert parameter: no access, no state, no effect. Useful as a
// placeholder member in a Group whose shape must stay fixed.
type Marker struct{}

func (Marker) Register(w *ecs.World, meta *Meta)                {}
func (Marker) NewArchetype(a *ecs.Archetype, meta *Meta)        {}
func (Marker) Load(cell ecs.Cell, meta *Meta, tick access.Tick) {}
func (Marker) Apply(meta *Meta, w *ecs.World)                   {}
func (Marker) ReadOnly() bool                                   { return true }
