package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"mcp-shooter/internal/assets"
	"mcp-shooter/internal/game"
	"mcp-shooter/internal/game/geom"
)

type stubGame struct {
	mu      sync.Mutex
	stats   game.GameStats
	started bool
	inputs  []game.InputState
}

func (s *stubGame) Stats() game.GameStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *stubGame) StartGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
}

// Apply makes stubGame double as the input sink, standing in for the
// player controller.
func (s *stubGame) Apply(in game.InputState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = append(s.inputs, in)
}

type stubWorld struct {
	snaps []game.ActorSnapshot
}

func (s *stubWorld) SnapshotActors() []game.ActorSnapshot { return s.snaps }
func (s *stubWorld) ActorCount() int                      { return len(s.snaps) }
func (s *stubWorld) TickRate() int                        { return 30 }

type stubBridge struct {
	connected    bool
	importResult assets.ImportResult
	placeResult  bool
	saveResult   bool

	mu     sync.Mutex
	placed []string
}

func (s *stubBridge) CheckServerConnection(cont func(ok bool, message string)) {
	go func() {
		if s.connected {
			cont(true, "connected to MCP server")
		} else {
			cont(false, "could not connect to MCP server")
		}
	}()
}

func (s *stubBridge) ImportBlenderModel(modelPath, destinationPath string, cont func(assets.ImportResult)) {
	go cont(s.importResult)
}

func (s *stubBridge) PlaceAssetInLevel(assetPath string, location geom.Vector3, rotation geom.Rotator, scale geom.Vector3, actorName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placed = append(s.placed, assetPath)
	return s.placeResult
}

func (s *stubBridge) SaveLevel(cont func(ok bool)) {
	go cont(s.saveResult)
}

func testConfig(g *stubGame, w WorldInterface, b BridgeInterface) RouterConfig {
	return RouterConfig{
		Game:   g,
		Input:  g,
		World:  w,
		Bridge: b,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
			CleanupInterval:   DefaultRateLimitConfig.CleanupInterval,
		},
		DisableLogging: true,
	}
}

func newTestServer(t *testing.T, g *stubGame, w WorldInterface, b BridgeInterface) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewRouter(testConfig(g, w, b)))
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestGetState(t *testing.T) {
	world := &stubWorld{snaps: []game.ActorSnapshot{
		{ID: 1, Kind: game.ActorKindPlayerShip, Label: "PlayerShip"},
		{ID: 2, Kind: game.ActorKindEnemyShip},
	}}
	g := &stubGame{stats: game.GameStats{Score: 300, Started: true}}
	ts := newTestServer(t, g, world, &stubBridge{})

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if got := body["actorCount"].(float64); got != 2 {
		t.Errorf("actorCount = %g, want 2", got)
	}
	actors := body["actors"].([]interface{})
	if len(actors) != 2 {
		t.Errorf("actors = %d entries, want 2", len(actors))
	}
	stats := body["stats"].(map[string]interface{})
	if stats["score"].(float64) != 300 {
		t.Errorf("stats.score = %v, want 300", stats["score"])
	}
}

func TestGameStart(t *testing.T) {
	g := &stubGame{}
	ts := newTestServer(t, g, &stubWorld{}, &stubBridge{})

	resp := postJSON(t, ts.URL+"/api/game/start", map[string]string{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.started {
		t.Error("StartGame was not called")
	}
}

func TestGameInput(t *testing.T) {
	g := &stubGame{}
	ts := newTestServer(t, g, &stubWorld{}, &stubBridge{})

	resp := postJSON(t, ts.URL+"/api/game/input", game.InputState{MoveX: 1, MoveY: -0.5, Firing: true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.inputs) != 1 {
		t.Fatalf("received %d inputs, want 1", len(g.inputs))
	}
	in := g.inputs[0]
	if in.MoveX != 1 || in.MoveY != -0.5 || !in.Firing {
		t.Errorf("input = %+v", in)
	}
}

func TestMCPStatus(t *testing.T) {
	ts := newTestServer(t, &stubGame{}, &stubWorld{}, &stubBridge{connected: true})

	resp, err := http.Get(ts.URL + "/api/mcp/status")
	if err != nil {
		t.Fatal(err)
	}
	body := decodeBody(t, resp)
	if body["connected"] != true {
		t.Errorf("connected = %v, want true", body["connected"])
	}
}

func TestAssetImport(t *testing.T) {
	bridge := &stubBridge{importResult: assets.ImportResult{
		Success:   true,
		AssetName: "PlayerShip",
		AssetPath: "/Game/BlenderAssets/PlayerShip",
	}}
	ts := newTestServer(t, &stubGame{}, &stubWorld{}, bridge)

	resp := postJSON(t, ts.URL+"/api/assets/import", map[string]string{
		"modelPath":   "assets/player_ship.blend",
		"destination": "/Game/BlenderAssets",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["assetPath"] != "/Game/BlenderAssets/PlayerShip" {
		t.Errorf("assetPath = %v", body["assetPath"])
	}
}

func TestAssetImportFailure(t *testing.T) {
	bridge := &stubBridge{importResult: assets.ImportResult{
		Success:      false,
		ErrorMessage: "asset import failed: assets/broken.blend",
	}}
	ts := newTestServer(t, &stubGame{}, &stubWorld{}, bridge)

	resp := postJSON(t, ts.URL+"/api/assets/import", map[string]string{
		"modelPath":   "assets/broken.blend",
		"destination": "/Game/BlenderAssets",
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAssetImportValidation(t *testing.T) {
	ts := newTestServer(t, &stubGame{}, &stubWorld{}, &stubBridge{})

	resp := postJSON(t, ts.URL+"/api/assets/import", map[string]string{"modelPath": "x.blend"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAssetPlace(t *testing.T) {
	bridge := &stubBridge{placeResult: true}
	ts := newTestServer(t, &stubGame{}, &stubWorld{}, bridge)

	resp := postJSON(t, ts.URL+"/api/assets/place", map[string]interface{}{
		"assetPath": "/Game/BlenderAssets/Rock",
		"location":  map[string]float64{"x": 100, "y": 200},
		"name":      "Rock1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["scheduled"] != true {
		t.Errorf("scheduled = %v, want true", body["scheduled"])
	}

	bridge.mu.Lock()
	defer bridge.mu.Unlock()
	if len(bridge.placed) != 1 || bridge.placed[0] != "/Game/BlenderAssets/Rock" {
		t.Errorf("placed = %v", bridge.placed)
	}
}

func TestAssetPlaceRejected(t *testing.T) {
	ts := newTestServer(t, &stubGame{}, &stubWorld{}, &stubBridge{placeResult: false})

	resp := postJSON(t, ts.URL+"/api/assets/place", map[string]interface{}{
		"assetPath": "/Game/Nope",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLevelSave(t *testing.T) {
	ts := newTestServer(t, &stubGame{}, &stubWorld{}, &stubBridge{saveResult: true})

	resp := postJSON(t, ts.URL+"/api/level/save", map[string]string{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := testConfig(&stubGame{}, &stubWorld{}, &stubBridge{})
	cfg.RateLimitConfig = &RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		CleanupInterval:   DefaultRateLimitConfig.CleanupInterval,
	}
	ts := httptest.NewServer(NewRouter(cfg))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first request status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", resp.StatusCode)
	}
}
