package api

import (
	"net/http"

	"mcp-shooter/internal/assets"
	"mcp-shooter/internal/game"
	"mcp-shooter/internal/game/geom"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// GameInterface is the slice of the game mode the API layer calls. Keeping
// it an interface enables mocking without a running tick loop.
type GameInterface interface {
	Stats() game.GameStats
	StartGame()
}

// InputInterface receives player intents from the API layer. In production
// this is the player controller, the single write path into the player ship.
type InputInterface interface {
	Apply(input game.InputState)
}

// WorldInterface exposes read-only world state for API responses.
type WorldInterface interface {
	SnapshotActors() []game.ActorSnapshot
	ActorCount() int
	TickRate() int
}

// BridgeInterface is the slice of the asset manager the API layer calls.
type BridgeInterface interface {
	CheckServerConnection(cont func(ok bool, message string))
	ImportBlenderModel(modelPath, destinationPath string, cont func(assets.ImportResult))
	PlaceAssetInLevel(assetPath string, location geom.Vector3, rotation geom.Rotator, scale geom.Vector3, actorName string) bool
	SaveLevel(cont func(ok bool))
}

// RouterConfig contains all dependencies needed to construct the HTTP
// router. Designed for dependency injection and testability.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Game:   mockGame,
//	    Input:  controller,
//	    World:  world,
//	    Bridge: manager,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000,
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Game is the running game mode (required).
	Game GameInterface

	// Input is the player input sink (required).
	Input InputInterface

	// World is the actor store (required).
	World WorldInterface

	// Bridge is the MCP asset manager (required).
	Bridge BridgeInterface

	// RateLimiter is an optional pre-configured rate limiter. If nil, one
	// is created from RateLimitConfig (or the defaults).
	RateLimiter *IPRateLimiter

	// RateLimitConfig is used only when RateLimiter is nil.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins overrides the default allowed origins.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware.
	DisableLogging bool
}

type routerHandlers struct {
	game   GameInterface
	input  InputInterface
	world  WorldInterface
	bridge BridgeInterface
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// This function is pure: no goroutines, no listeners, no background
// workers. Safe to use with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting before CORS to reject early
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{
		game:   cfg.Game,
		input:  cfg.Input,
		world:  cfg.World,
		bridge: cfg.Bridge,
	}

	r.Route("/api", func(r chi.Router) {
		// Game state
		r.Get("/state", h.handleGetState)
		r.Get("/stats", h.handleGetStats)

		// MCP bridge
		r.Get("/mcp/status", h.handleMCPStatus)
		r.Post("/assets/import", h.handleAssetImport)
		r.Post("/assets/place", h.handleAssetPlace)
		r.Post("/level/save", h.handleLevelSave)

		// Game control
		r.Post("/game/start", h.handleGameStart)
		r.Post("/game/input", h.handleGameInput)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"service": "mcp-shooter",
			"status":  "running",
		})
	})

	return r
}
