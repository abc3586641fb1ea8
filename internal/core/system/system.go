package system

import (
	"github.com/tessera-ecs/tessera/internal/core/param"
)

// Phase defines execution ordering within a single tick. Systems in the same
// phase may run concurrently when their declared access permits; a phase
// boundary is a synchronization point where deferred work is applied.
type Phase int

const (
	PhaseFirst      Phase = iota // 0: tick bookkeeping, timers
	PhasePreUpdate               // 1: intake, spawning policies
	PhaseUpdate                  // 2: simulation logic
	PhasePostUpdate              // 3: derived state, reactions
	PhaseLast                    // 4: cleanup, despawns
)

// System pairs a parameter tree with the function that runs against it. The
// function takes no arguments; it closes over its parameter instances and
// reads them after each Load.
type System struct {
	name  string
	phase Phase
	root  param.Param
	fn    func()
	meta  *param.Meta
	seen  int
}

func New(name string, phase Phase, root param.Param, fn func()) *System {
	return &System{name: name, phase: phase, root: root, fn: fn}
}

func (s *System) Name() string      { return s.name }
func (s *System) Phase() Phase      { return s.phase }
func (s *System) Meta() *param.Meta { return s.meta }

// ReadOnly reports whether every parameter in the tree is read-only.
func (s *System) ReadOnly() bool { return s.root.ReadOnly() }
