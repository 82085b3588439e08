// Package assets owns the bridge between the MCP authoring service and the
// running game: the process-wide asset manager, the asset registry, and the
// placement of imported assets into the world.
package assets

import (
	"sort"
	"strings"
	"sync"
)

// Kind tags what a content path resolves to. Placement dispatches on it in
// one place (the world's spawn-from-asset entry point).
type Kind int

const (
	// KindStaticMesh is a plain mesh asset; placement spawns a mesh actor.
	KindStaticMesh Kind = iota
	// KindBlueprint is an actor template; placement spawns its archetype.
	KindBlueprint
)

// String returns the kind name for logs.
func (k Kind) String() string {
	switch k {
	case KindStaticMesh:
		return "static_mesh"
	case KindBlueprint:
		return "blueprint"
	default:
		return "unknown"
	}
}

// Asset is a content object addressed by a content path, conventionally
// "/Game/<subdir>/<Name>".
type Asset struct {
	Name       string // Engine-side short name, e.g. "PlayerShip"
	Path       string // Content path, e.g. "/Game/BlenderAssets/PlayerShip"
	Kind       Kind
	SourceFile string // Authoring-side file the asset was imported from
	Archetype  string // Blueprint only: id of the actor template to spawn
}

// Registry is the engine-provided index of known assets, queryable by path
// prefix. It may be read from any goroutine.
type Registry struct {
	mu     sync.RWMutex
	byPath map[string]*Asset
}

// NewRegistry creates an empty asset registry.
func NewRegistry() *Registry {
	return &Registry{
		byPath: make(map[string]*Asset),
	}
}

// Register adds or replaces the asset at its content path.
func (r *Registry) Register(asset *Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPath[asset.Path] = asset
}

// Find resolves a content path to an asset, or nil if not resident.
func (r *Registry) Find(path string) *Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byPath[path]
}

// FindUnder returns all assets whose content path sits under prefix,
// recursively, sorted by path for deterministic output.
func (r *Registry) FindUnder(prefix string) []*Asset {
	prefix = strings.TrimSuffix(prefix, "/")

	r.mu.RLock()
	found := make([]*Asset, 0)
	for path, asset := range r.byPath {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			found = append(found, asset)
		}
	}
	r.mu.RUnlock()

	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
	return found
}

// Len returns the number of registered assets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byPath)
}
