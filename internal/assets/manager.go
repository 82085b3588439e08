package assets

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"mcp-shooter/internal/config"
	"mcp-shooter/internal/game/geom"
	"mcp-shooter/internal/mcp"
)

// ImportResult is the domain-level outcome of an asset import.
type ImportResult struct {
	Success      bool   `json:"success"`
	AssetPath    string `json:"assetPath"`
	AssetName    string `json:"assetName"`
	ErrorMessage string `json:"errorMessage"`
}

// World is the slice of the engine the asset manager needs for placement.
// The concrete implementation lives in the game package; taking an interface
// here keeps placement testable without a running tick loop.
type World interface {
	// OnGameThread reports whether the caller runs on the engine loop.
	OnGameThread() bool
	// Post schedules a task for the next tick of the engine loop.
	Post(task func())
	// SpawnAsset places an asset instance into the world. Game thread only.
	SpawnAsset(asset *Asset, location geom.Vector3, rotation geom.Rotator, scale geom.Vector3, label string) error
}

// ClassReference identifies a game-mode class by its content path.
type ClassReference interface {
	ClassPath() string
}

// CommandObserver is notified when an MCP operation completes, with the
// command name and its outcome. Runs on the transport goroutines.
type CommandObserver func(command string, ok bool)

// Manager is the process-wide owner of the MCP command client. It loads the
// endpoint configuration once, mediates asset imports, and performs the
// engine-side placement of imported assets.
//
// Obtain the shared instance with Get on the main thread at boot; tests
// construct their own with New and an injected transport.
type Manager struct {
	client      *mcp.Client
	registry    *Registry
	world       World
	observer    CommandObserver
	initialized bool
}

var (
	instance     *Manager
	instanceOnce sync.Once
)

// Get returns the process-wide manager, constructing and initializing it on
// first call. First access must happen on the main thread at boot; the
// manager lives until process teardown.
func Get() *Manager {
	instanceOnce.Do(func() {
		instance = New(mcp.NewClient(), NewRegistry())
		instance.Initialize()
	})
	return instance
}

// New creates an uninitialized manager around the given client and registry.
func New(client *mcp.Client, registry *Registry) *Manager {
	return &Manager{
		client:   client,
		registry: registry,
	}
}

// Initialize reads the MCP settings document from the conventional path.
// It is idempotent: calls after the first return true without side effects.
func (m *Manager) Initialize() bool {
	return m.InitializeFrom(config.MCPSettingsPath())
}

// InitializeFrom is Initialize with an explicit settings path, for tests and
// embedders. A missing or malformed document is non-fatal; the client keeps
// its default URL.
func (m *Manager) InitializeFrom(settingsPath string) bool {
	if m.initialized {
		return true
	}

	settings := config.LoadMCPSettings(settingsPath)
	m.client.SetServerURL(settings.ServerURL())

	m.initialized = true
	return true
}

// BindWorld attaches the running world for placement operations. Called once
// at boot, before any placement.
func (m *Manager) BindWorld(world World) {
	m.world = world
}

// SetCommandObserver installs the outcome observer. Called once at boot,
// before any MCP traffic.
func (m *Manager) SetCommandObserver(observer CommandObserver) {
	m.observer = observer
}

func (m *Manager) observe(command string, ok bool) {
	if m.observer != nil {
		m.observer(command, ok)
	}
}

// Client exposes the command client for operations the manager does not
// wrap, e.g. arbitrary authoring commands.
func (m *Manager) Client() *mcp.Client {
	return m.client
}

// Registry exposes the asset registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// CheckServerConnection probes the MCP server health endpoint.
func (m *Manager) CheckServerConnection(cont func(ok bool, message string)) {
	m.client.CheckConnection(func(ok bool, message string) {
		m.observe("status", ok)
		cont(ok, message)
	})
}

// ImportBlenderModel asks the MCP server to import the model at modelPath as
// an engine asset under destinationPath, registers the result, and completes
// cont with the composed ImportResult. The registry lookup after a
// successful import is observational only; an empty listing does not fail
// the operation.
func (m *Manager) ImportBlenderModel(modelPath, destinationPath string, cont func(ImportResult)) {
	m.client.ImportAsset(modelPath, destinationPath, func(ok bool, assetName string) {
		m.observe("import_asset", ok)

		var result ImportResult
		result.Success = ok

		if !ok {
			result.ErrorMessage = fmt.Sprintf("asset import failed: %s", modelPath)
			log.Printf("❌ %s", result.ErrorMessage)
			cont(result)
			return
		}

		result.AssetName = assetName
		result.AssetPath = destinationPath + "/" + assetName

		asset := &Asset{
			Name:       assetName,
			Path:       result.AssetPath,
			Kind:       kindForName(assetName),
			SourceFile: modelPath,
		}
		if asset.Kind == KindBlueprint {
			asset.Archetype = strings.TrimPrefix(assetName, "BP_")
		}
		m.registry.Register(asset)

		under := m.registry.FindUnder(destinationPath)
		log.Printf("✅ Imported Blender model '%s' as %s (%d assets under %s)",
			modelPath, result.AssetPath, len(under), destinationPath)

		cont(result)
	})
}

// PlaceAssetInLevel spawns the asset at assetPath into the world at the
// given transform, optionally labeling the actor. Calls from off the game
// thread are re-posted to it and report true ("scheduled"). On the game
// thread the return value reports whether the spawn succeeded.
func (m *Manager) PlaceAssetInLevel(assetPath string, location geom.Vector3, rotation geom.Rotator, scale geom.Vector3, actorName string) bool {
	if m.world == nil {
		log.Printf("❌ Cannot place %s: no world is bound", assetPath)
		return false
	}

	if !m.world.OnGameThread() {
		m.world.Post(func() {
			m.PlaceAssetInLevel(assetPath, location, rotation, scale, actorName)
		})
		return true
	}

	asset := m.registry.Find(assetPath)
	if asset == nil {
		log.Printf("❌ Could not load asset: %s", assetPath)
		return false
	}

	if err := m.world.SpawnAsset(asset, location, rotation, scale, actorName); err != nil {
		log.Printf("❌ Failed to place %s: %v", assetPath, err)
		return false
	}

	log.Printf("🧱 Placed asset '%s' in level", assetPath)
	return true
}

// SetGameMode resolves the class path from the reference and asks the MCP
// server to switch to it. The return value reports only whether the class
// reference was valid; the server-side outcome is logged when it arrives.
func (m *Manager) SetGameMode(gameModeClass ClassReference) bool {
	if gameModeClass == nil || gameModeClass.ClassPath() == "" {
		log.Printf("❌ Invalid game mode class")
		return false
	}

	m.client.SetGameMode(gameModeClass.ClassPath(), func(ok bool) {
		m.observe("set_game_mode", ok)
		if ok {
			log.Printf("✅ Game mode set")
		} else {
			log.Printf("❌ Failed to set game mode")
		}
	})

	return true
}

// SaveLevel asks the MCP server to persist the current level.
func (m *Manager) SaveLevel(cont func(ok bool)) {
	m.client.SaveLevel(func(ok bool) {
		m.observe("save_level", ok)
		cont(ok)
	})
}

// kindForName infers the asset kind from the engine-side short name. The
// authoring pipeline names actor templates with a BP_ prefix; everything
// else it exports is a static mesh.
func kindForName(name string) Kind {
	if strings.HasPrefix(name, "BP_") {
		return KindBlueprint
	}
	return KindStaticMesh
}
