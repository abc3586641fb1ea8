package component

// Position is an entity's location on the simulation plane.
type Position struct {
	X, Y float64
}

// Velocity is per-tick displacement.
type Velocity struct {
	DX, DY float64
}

// Lifetime counts down in ticks; at zero the entity is despawned.
type Lifetime struct {
	Remaining uint64
	Age       uint64
}

// Health is a simple damage pool.
type Health struct {
	Current int
	Max     int
}
