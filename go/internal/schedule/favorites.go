package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/livescores/go/internal/kvstore"
	"github.com/mcdev12/livescores/go/internal/models"
)

// FavoritesStorageKey holds the favorite teams as a JSON array
const FavoritesStorageKey = "favorite_teams"

// FavoritesStore keeps the followed teams in a kvstore.Store. A team is
// identified by its league and id.
type FavoritesStore struct {
	kv kvstore.Store
	mu sync.Mutex
}

func NewFavoritesStore(kv kvstore.Store) *FavoritesStore {
	return &FavoritesStore{kv: kv}
}

// List returns the favorite teams in the order they were added. Unparsable
// data yields an empty list.
func (f *FavoritesStore) List(ctx context.Context) ([]models.FavoriteTeam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(ctx)
}

// Add appends team. It reports false when the team is already a favorite.
func (f *FavoritesStore) Add(ctx context.Context, team models.FavoriteTeam) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	teams, err := f.load(ctx)
	if err != nil {
		return false, err
	}
	if slices.ContainsFunc(teams, sameTeam(team.Sport, team.ID)) {
		return false, nil
	}
	return true, f.save(ctx, append(teams, team))
}

// Remove drops a team. It reports false when the team was not a favorite.
func (f *FavoritesStore) Remove(ctx context.Context, sport models.Sport, teamID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	teams, err := f.load(ctx)
	if err != nil {
		return false, err
	}
	kept := slices.DeleteFunc(teams, sameTeam(sport, teamID))
	if len(kept) == len(teams) {
		return false, nil
	}
	return true, f.save(ctx, kept)
}

func (f *FavoritesStore) load(ctx context.Context) ([]models.FavoriteTeam, error) {
	raw, ok, err := f.kv.GetString(ctx, FavoritesStorageKey)
	if err != nil {
		return nil, fmt.Errorf("read favorite teams: %w", err)
	}
	teams := []models.FavoriteTeam{}
	if !ok || raw == "" {
		return teams, nil
	}
	if err := json.Unmarshal([]byte(raw), &teams); err != nil {
		log.Warn().Err(err).Msg("stored favorite teams are corrupt, starting empty")
		return []models.FavoriteTeam{}, nil
	}
	return teams, nil
}

func (f *FavoritesStore) save(ctx context.Context, teams []models.FavoriteTeam) error {
	data, err := json.Marshal(teams)
	if err != nil {
		return fmt.Errorf("marshal favorite teams: %w", err)
	}
	if err := f.kv.Set(ctx, FavoritesStorageKey, string(data)); err != nil {
		return fmt.Errorf("persist favorite teams: %w", err)
	}
	return nil
}

func sameTeam(sport models.Sport, id int) func(models.FavoriteTeam) bool {
	return func(t models.FavoriteTeam) bool {
		return t.Sport == sport && t.ID == id
	}
}
