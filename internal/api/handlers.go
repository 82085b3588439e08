package api

import (
	"encoding/json"
	"net/http"
	"time"

	"mcp-shooter/internal/assets"
	"mcp-shooter/internal/game"
	"mcp-shooter/internal/game/geom"
)

// bridgeWait caps how long a handler blocks on an MCP continuation. The
// transport's own timeout is shorter, so this only guards against a
// continuation that never fires.
const bridgeWait = 15 * time.Second

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"actors":     h.world.SnapshotActors(),
		"actorCount": h.world.ActorCount(),
		"stats":      h.game.Stats(),
	})
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.game.Stats()
	UpdateScore(stats.Score)
	UpdateActorCount(h.world.ActorCount())

	writeJSON(w, map[string]interface{}{
		"game":       stats,
		"actorCount": h.world.ActorCount(),
		"tickRate":   h.world.TickRate(),
	})
}

func (h *routerHandlers) handleMCPStatus(w http.ResponseWriter, r *http.Request) {
	type probe struct {
		ok      bool
		message string
	}
	done := make(chan probe, 1)

	h.bridge.CheckServerConnection(func(ok bool, message string) {
		done <- probe{ok: ok, message: message}
	})

	select {
	case res := <-done:
		writeJSON(w, map[string]interface{}{
			"connected": res.ok,
			"message":   res.message,
		})
	case <-time.After(bridgeWait):
		writeError(w, "MCP status probe timed out", http.StatusGatewayTimeout)
	}
}

func (h *routerHandlers) handleAssetImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ModelPath   string `json:"modelPath"`
		Destination string `json:"destination"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.ModelPath == "" || req.Destination == "" {
		writeError(w, "modelPath and destination are required", http.StatusBadRequest)
		return
	}

	done := make(chan assets.ImportResult, 1)
	h.bridge.ImportBlenderModel(req.ModelPath, req.Destination, func(result assets.ImportResult) {
		done <- result
	})

	select {
	case result := <-done:
		status := http.StatusOK
		if !result.Success {
			status = http.StatusBadGateway
		}
		writeJSONStatus(w, result, status)
	case <-time.After(bridgeWait):
		writeError(w, "Asset import timed out", http.StatusGatewayTimeout)
	}
}

func (h *routerHandlers) handleAssetPlace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssetPath string        `json:"assetPath"`
		Location  geom.Vector3  `json:"location"`
		Rotation  geom.Rotator  `json:"rotation"`
		Scale     *geom.Vector3 `json:"scale"`
		Name      string        `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.AssetPath == "" {
		writeError(w, "assetPath is required", http.StatusBadRequest)
		return
	}

	scale := geom.UnitScale
	if req.Scale != nil {
		scale = *req.Scale
	}

	// Handlers run off the game thread, so a true here means "scheduled"
	scheduled := h.bridge.PlaceAssetInLevel(req.AssetPath, req.Location, req.Rotation, scale, req.Name)
	if !scheduled {
		writeError(w, "Asset placement rejected", http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, map[string]interface{}{
		"scheduled": true,
		"assetPath": req.AssetPath,
	})
}

func (h *routerHandlers) handleLevelSave(w http.ResponseWriter, r *http.Request) {
	done := make(chan bool, 1)
	h.bridge.SaveLevel(func(ok bool) {
		done <- ok
	})

	select {
	case ok := <-done:
		if !ok {
			writeError(w, "Level save failed", http.StatusBadGateway)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true})
	case <-time.After(bridgeWait):
		writeError(w, "Level save timed out", http.StatusGatewayTimeout)
	}
}

func (h *routerHandlers) handleGameStart(w http.ResponseWriter, r *http.Request) {
	h.game.StartGame()
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Game starting",
	})
}

func (h *routerHandlers) handleGameInput(w http.ResponseWriter, r *http.Request) {
	var req game.InputState

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	h.input.Apply(req)
	writeJSON(w, map[string]interface{}{"success": true})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
