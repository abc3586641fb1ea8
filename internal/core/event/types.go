package event

import "github.com/tessera-ecs/tessera/internal/core/ecs"

// Spawned is emitted when a spawner creates an entity.
type Spawned struct {
	Bundle string
}

// Expired is emitted when an entity's lifetime runs out and it is queued for
// despawn.
type Expired struct {
	EntityID ecs.EntityID
	Age      uint64
}
