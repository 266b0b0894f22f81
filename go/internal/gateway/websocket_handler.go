package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket upgrade requests from widgets
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{connectionManager: cm}
}

// HandleConnection upgrades the request. An optional game_id query parameter
// limits the stream to one game.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	gameID := 0
	if raw := r.URL.Query().Get("game_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			http.Error(w, "invalid game_id", http.StatusBadRequest)
			return
		}
		gameID = id
	}

	// the upgrader has already replied on failure
	if err := h.connectionManager.UpgradeConnection(w, r, gameID); err != nil {
		log.Error().Err(err).Int("game_id", gameID).Msg("failed to upgrade WebSocket connection")
	}
}

// HandleConnectionStats returns statistics about open connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connectionManager.Stats()); err != nil {
		log.Error().Err(err).Msg("failed to encode connection stats")
	}
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/live-activities/ws", h.HandleConnection)
	mux.HandleFunc("GET /v1/live-activities/ws/stats", h.HandleConnectionStats)
}
