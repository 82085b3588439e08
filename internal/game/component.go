package game

import (
	"log"

	"mcp-shooter/internal/assets"
	"mcp-shooter/internal/game/geom"
)

// MCPComponent is the gameplay-facing facade over the asset bridge. Actors
// that need authored content talk to this instead of the manager directly.
type MCPComponent struct {
	manager *assets.Manager
	world   *World

	serverAvailable bool
}

// NewMCPComponent creates a component bound to the shared manager and world.
func NewMCPComponent(manager *assets.Manager, world *World) *MCPComponent {
	return &MCPComponent{
		manager: manager,
		world:   world,
	}
}

// BeginPlay probes the MCP server once at gameplay start. The result is
// advisory; gameplay proceeds either way.
func (c *MCPComponent) BeginPlay() {
	c.manager.CheckServerConnection(func(ok bool, message string) {
		c.serverAvailable = ok
		if ok {
			log.Printf("✅ MCP: %s", message)
		} else {
			log.Printf("⚠️ MCP: %s", message)
		}
	})
}

// ServerAvailable reports the outcome of the last connection probe.
func (c *MCPComponent) ServerAvailable() bool {
	return c.serverAvailable
}

// LoadAsset checks whether the asset at path is resident and completes cont
// with the outcome. It never triggers an import; use the manager for that.
func (c *MCPComponent) LoadAsset(path string, cont func(ok bool)) {
	asset := c.manager.Registry().Find(path)
	if asset == nil {
		log.Printf("❌ Asset not resident: %s", path)
		cont(false)
		return
	}
	cont(true)
}

// SpawnAssetActor places the resident asset at path and returns the spawned
// actor, or nil when the asset is missing or the spawn fails. Game thread
// only; callers elsewhere go through the manager's scheduled placement.
func (c *MCPComponent) SpawnAssetActor(path string, location geom.Vector3, rotation geom.Rotator, scale geom.Vector3) *Actor {
	asset := c.manager.Registry().Find(path)
	if asset == nil {
		log.Printf("❌ Asset not resident: %s", path)
		return nil
	}

	actor, err := c.world.SpawnFromAsset(asset, location, rotation, scale, "")
	if err != nil {
		log.Printf("❌ Failed to spawn %s: %v", path, err)
		return nil
	}
	return actor
}

// SpawnCustomBlenderAsset would ask the authoring service to generate a
// model of the given type and spawn it once imported. The rotation applies
// at spawn time and never travels in the command payload. Server-side
// generation is not available yet; the payload is assembled for parity with
// the wire contract and the continuation completes with nil.
func (c *MCPComponent) SpawnCustomBlenderAsset(modelType string, location geom.Vector3, rotation geom.Rotator, scale geom.Vector3, cont func(actor *Actor)) {
	params := map[string]interface{}{
		"model_type": modelType,
		"location":   []float64{location.X, location.Y, location.Z},
		"scale":      []float64{scale.X, scale.Y, scale.Z},
	}
	_ = params

	log.Printf("⚠️ Custom asset generation not available, cannot spawn %s", modelType)
	cont(nil)
}
