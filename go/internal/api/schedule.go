package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/livescores/go/internal/models"
	"github.com/mcdev12/livescores/go/internal/schedule"
)

// ScheduleHandler serves the browsing routes: the all-sports day, league
// schedules, team pages, live counts and favorites
type ScheduleHandler struct {
	svc   *schedule.Service
	limit func(http.Handler) http.Handler
}

func NewScheduleHandler(svc *schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// SetRateLimit guards the routes that change favorites. Must be called before
// RegisterRoutes.
func (h *ScheduleHandler) SetRateLimit(limit func(http.Handler) http.Handler) {
	h.limit = limit
}

func (h *ScheduleHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/games", h.dayGames)
	mux.HandleFunc("GET /v1/leagues/live", h.liveLeagues)
	mux.HandleFunc("GET /v1/sports/{sport}/schedule", h.leagueSchedule)
	mux.HandleFunc("GET /v1/sports/{sport}/conferences", h.conferences)
	mux.HandleFunc("GET /v1/sports/{sport}/games", h.games)
	mux.HandleFunc("GET /v1/sports/{sport}/teams/{teamId}/schedule", h.teamSchedule)
	mux.HandleFunc("GET /v1/sports/{sport}/teams/{teamId}/standing", h.teamStanding)

	mux.HandleFunc("GET /v1/favorites", h.listFavorites)
	mux.Handle("POST /v1/favorites", h.limited(h.addFavorite))
	mux.Handle("DELETE /v1/favorites/{sport}/{teamId}", h.limited(h.removeFavorite))
	mux.HandleFunc("GET /v1/favorites/games", h.favoriteGames)
}

func (h *ScheduleHandler) limited(fn http.HandlerFunc) http.Handler {
	if h.limit == nil {
		return fn
	}
	return h.limit(fn)
}

func (h *ScheduleHandler) dayGames(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.svc.Today()
	}
	games, err := h.svc.DayGames(r.Context(), date)
	if errors.Is(err, schedule.ErrInvalidDate) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if err != nil {
		upstreamError(w, err, "failed to fetch games")
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *ScheduleHandler) liveLeagues(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.LiveLeagues(r.Context())
	if err != nil {
		upstreamError(w, err, "failed to fetch live leagues")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *ScheduleHandler) leagueSchedule(w http.ResponseWriter, r *http.Request) {
	sport, ok := parseSport(w, r)
	if !ok {
		return
	}
	sched, err := h.svc.Schedule(r.Context(), sport, r.URL.Query().Get("conference"))
	if err != nil {
		upstreamError(w, err, "failed to fetch schedule")
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (h *ScheduleHandler) conferences(w http.ResponseWriter, r *http.Request) {
	sport, ok := parseSport(w, r)
	if !ok {
		return
	}
	conferences, err := h.svc.Conferences(r.Context(), sport)
	if err != nil {
		upstreamError(w, err, "failed to fetch conferences")
		return
	}
	writeJSON(w, http.StatusOK, conferences)
}

func (h *ScheduleHandler) games(w http.ResponseWriter, r *http.Request) {
	sport, ok := parseSport(w, r)
	if !ok {
		return
	}

	var ids []int
	if raw := r.URL.Query().Get("ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || id <= 0 {
				writeError(w, http.StatusBadRequest, "ids must be a comma separated list of game ids")
				return
			}
			ids = append(ids, id)
		}
	}

	games, err := h.svc.Games(r.Context(), sport, ids)
	if err != nil {
		upstreamError(w, err, "failed to fetch games")
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *ScheduleHandler) teamSchedule(w http.ResponseWriter, r *http.Request) {
	sport, teamID, ok := parseTeam(w, r)
	if !ok {
		return
	}
	games, err := h.svc.TeamSchedule(r.Context(), sport, teamID)
	if err != nil {
		upstreamError(w, err, "failed to fetch team schedule")
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *ScheduleHandler) teamStanding(w http.ResponseWriter, r *http.Request) {
	sport, teamID, ok := parseTeam(w, r)
	if !ok {
		return
	}
	standing, err := h.svc.TeamStanding(r.Context(), sport, teamID)
	if err != nil {
		upstreamError(w, err, "failed to fetch standing")
		return
	}
	if standing == nil {
		writeError(w, http.StatusNotFound, "no standing for team")
		return
	}
	writeJSON(w, http.StatusOK, standing)
}

func (h *ScheduleHandler) listFavorites(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.Favorites().List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list favorite teams")
		writeError(w, http.StatusInternalServerError, "failed to read favorites")
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *ScheduleHandler) addFavorite(w http.ResponseWriter, r *http.Request) {
	var team models.FavoriteTeam
	if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sport, err := models.ParseSport(team.Sport.String())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if team.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id must be positive")
		return
	}
	team.Sport = sport

	added, err := h.svc.Favorites().Add(r.Context(), team)
	if err != nil {
		log.Error().Err(err).Int("team_id", team.ID).Msg("failed to add favorite team")
		writeError(w, http.StatusInternalServerError, "failed to save favorite")
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, team)
}

func (h *ScheduleHandler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	sport, teamID, ok := parseTeam(w, r)
	if !ok {
		return
	}
	removed, err := h.svc.Favorites().Remove(r.Context(), sport, teamID)
	if err != nil {
		log.Error().Err(err).Int("team_id", teamID).Msg("failed to remove favorite team")
		writeError(w, http.StatusInternalServerError, "failed to save favorites")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "team is not a favorite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScheduleHandler) favoriteGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.FavoriteGames(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to build favorite games")
		writeError(w, http.StatusInternalServerError, "failed to read favorites")
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func parseSport(w http.ResponseWriter, r *http.Request) (models.Sport, bool) {
	sport, err := models.ParseSport(r.PathValue("sport"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return sport, true
}

func parseTeam(w http.ResponseWriter, r *http.Request) (models.Sport, int, bool) {
	sport, ok := parseSport(w, r)
	if !ok {
		return "", 0, false
	}
	teamID, err := strconv.Atoi(r.PathValue("teamId"))
	if err != nil || teamID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return "", 0, false
	}
	return sport, teamID, true
}

func upstreamError(w http.ResponseWriter, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	writeError(w, http.StatusBadGateway, msg)
}
