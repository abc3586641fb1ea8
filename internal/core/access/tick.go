package access

// Tick is the world's monotonic change counter. The world advances it once
// per run cycle; a component row stores the Tick at which it was last
// written, and each system records the Tick of its previous run.
type Tick uint64

// NewerThan reports whether a change recorded at t happened after lastRun.
func (t Tick) NewerThan(lastRun Tick) bool {
	return t > lastRun
}
