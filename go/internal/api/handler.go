package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/livescores/go/internal/liveactivity"
	"github.com/mcdev12/livescores/go/internal/models"
)

// Tracker is the part of liveactivity.Service the API exposes
type Tracker interface {
	IsTrackingGame(gameID int) bool
	TrackedGames() []liveactivity.TrackedGame
	StartTracking(ctx context.Context, game *models.Game) (liveactivity.TrackedGame, error)
	StopTracking(ctx context.Context, gameID int) bool
}

// Handler serves the tracked-games API used by the UI layer
type Handler struct {
	tracker Tracker
	fetcher liveactivity.GameFetcher
	limit   func(http.Handler) http.Handler
}

func NewHandler(tracker Tracker, fetcher liveactivity.GameFetcher) *Handler {
	return &Handler{tracker: tracker, fetcher: fetcher}
}

// SetRateLimit guards the routes that start or stop activities. Must be called
// before RegisterRoutes.
func (h *Handler) SetRateLimit(limit func(http.Handler) http.Handler) {
	h.limit = limit
}

// RegisterRoutes registers the tracked-games routes with an HTTP mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/tracked-games", h.listTrackedGames)
	mux.Handle("POST /v1/tracked-games", h.limited(h.startTracking))
	mux.HandleFunc("GET /v1/tracked-games/{gameId}", h.getTrackingStatus)
	mux.Handle("DELETE /v1/tracked-games/{gameId}", h.limited(h.stopTracking))
}

func (h *Handler) limited(fn http.HandlerFunc) http.Handler {
	if h.limit == nil {
		return fn
	}
	return h.limit(fn)
}

type startTrackingRequest struct {
	Sport  string `json:"sport"`
	GameID int    `json:"game_id"`
}

type trackingStatus struct {
	GameID   int  `json:"game_id"`
	Tracking bool `json:"tracking"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) listTrackedGames(w http.ResponseWriter, r *http.Request) {
	games := h.tracker.TrackedGames()
	if games == nil {
		games = []liveactivity.TrackedGame{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *Handler) getTrackingStatus(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseGameID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trackingStatus{GameID: gameID, Tracking: h.tracker.IsTrackingGame(gameID)})
}

func (h *Handler) startTracking(w http.ResponseWriter, r *http.Request) {
	var req startTrackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sport, err := models.ParseSport(req.Sport)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.GameID <= 0 {
		writeError(w, http.StatusBadRequest, "game_id must be positive")
		return
	}

	game, err := h.fetcher.FetchGame(r.Context(), sport, req.GameID)
	if err != nil {
		log.Error().Err(err).Int("game_id", req.GameID).Str("sport", sport.String()).Msg("failed to fetch game to track")
		writeError(w, http.StatusBadGateway, "failed to fetch game")
		return
	}

	tracked, err := h.tracker.StartTracking(r.Context(), game)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, liveactivity.ErrServiceClosed) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, tracked)
}

func (h *Handler) stopTracking(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseGameID(w, r)
	if !ok {
		return
	}
	if !h.tracker.StopTracking(r.Context(), gameID) {
		writeError(w, http.StatusNotFound, "game is not tracked")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseGameID(w http.ResponseWriter, r *http.Request) (int, bool) {
	gameID, err := strconv.Atoi(r.PathValue("gameId"))
	if err != nil || gameID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return 0, false
	}
	return gameID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
