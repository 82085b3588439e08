// Package game is the runtime world for the shooter demo: a tick-loop
// engine whose loop goroutine is the "game thread", the scene actors living
// in it, and the gameplay that consumes the MCP asset bridge.
package game

import (
	"mcp-shooter/internal/game/geom"
)

// Actor kinds as they appear in snapshots and logs.
const (
	ActorKindMesh       = "mesh"
	ActorKindPlayerShip = "player_ship"
	ActorKindEnemyShip  = "enemy_ship"
	ActorKindProjectile = "projectile"
)

// Actor is a scene object spawned into the world. Fields are mutated only on
// the game thread; snapshots copy them out for other goroutines.
type Actor struct {
	ID       uint64       `json:"id"`
	Label    string       `json:"label"`
	Kind     string       `json:"kind"`
	Location geom.Vector3 `json:"location"`
	Rotation geom.Rotator `json:"rotation"`
	Scale    geom.Vector3 `json:"scale"`

	// MeshName is the short name of the visual asset bound to this actor,
	// empty until a mesh is assigned.
	MeshName  string `json:"meshName,omitempty"`
	AssetPath string `json:"assetPath,omitempty"`
}

// SetMesh binds a static mesh to the actor.
func (a *Actor) SetMesh(name, assetPath string) {
	a.MeshName = name
	a.AssetPath = assetPath
}

// SetLabel renames the actor.
func (a *Actor) SetLabel(label string) {
	a.Label = label
}

// ActorSnapshot is an immutable copy of actor state for the API and the
// websocket feed.
type ActorSnapshot struct {
	ID       uint64       `json:"id"`
	Label    string       `json:"label"`
	Kind     string       `json:"kind"`
	Location geom.Vector3 `json:"location"`
	Rotation geom.Rotator `json:"rotation"`
	Scale    geom.Vector3 `json:"scale"`
	MeshName string       `json:"meshName,omitempty"`
}

// toSnapshot copies the actor state.
func (a *Actor) toSnapshot() ActorSnapshot {
	return ActorSnapshot{
		ID:       a.ID,
		Label:    a.Label,
		Kind:     a.Kind,
		Location: a.Location,
		Rotation: a.Rotation,
		Scale:    a.Scale,
		MeshName: a.MeshName,
	}
}
