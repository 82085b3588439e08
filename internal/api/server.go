// Package api is the HTTP surface of the service: the JSON control API, the
// WebSocket state feed, rate limiting, and the localhost debug server.
package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server combines the HTTP router with the WebSocket hub.
type Server struct {
	gameMode    GameInterface
	world       WorldInterface
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer creates an API server with production defaults.
//
// Background workers do not start until Start is called, so the server can
// be constructed in tests without goroutines or listeners. For plain HTTP
// tests, use NewRouter directly.
func NewServer(gameMode GameInterface, input InputInterface, world WorldInterface, bridge BridgeInterface) *Server {
	s := &Server{
		gameMode: gameMode,
		world:    world,
		wsHub:    NewWebSocketHub(),
	}

	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)

	s.router = NewRouter(RouterConfig{
		Game:        gameMode,
		Input:       input,
		World:       world,
		Bridge:      bridge,
		RateLimiter: s.rateLimiter,
	})

	// WebSocket route needs the hub instance, so it sits outside NewRouter
	s.router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.wsHub.HandleWebSocket(w, r)
	})

	return s
}

// Start launches the background workers and serves HTTP on addr. This is
// the only method that starts goroutines or opens listeners.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	s.wsHub.StartBroadcastLoop(s.gameMode, s.world)

	log.Printf("🌐 API server starting on %s", addr)

	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop shuts down background workers.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
