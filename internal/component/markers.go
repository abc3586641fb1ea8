package component

// Faction markers. Zero-sized, used as archetypal filters so systems can
// declare disjoint slices of otherwise identical entities.

type Hostile struct{}

type Friendly struct{}

// Frozen marks an entity excluded from movement.
type Frozen struct{}
