package liveactivity

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/livescores/go/internal/kvstore"
	"github.com/mcdev12/livescores/go/internal/models"
)

// Storage keys. The legacy keys held a single tracked game before the app
// supported several at once.
const (
	ActivitiesStorageKey = "live_activities"

	legacyActivityIDKey = "live_activity_id"
	legacyGameIDKey     = "live_activity_game_id"
	legacySportKey      = "live_activity_sport"
)

// RegistryStore loads and persists the Registry through a kvstore.Store.
type RegistryStore struct {
	kv kvstore.Store
}

func NewRegistryStore(kv kvstore.Store) *RegistryStore {
	return &RegistryStore{kv: kv}
}

// Load reads the persisted registry, migrating the legacy single-game format
// when present. Missing or unparsable data yields an empty Registry.
func (s *RegistryStore) Load(ctx context.Context) Registry {
	if migrated, ok := s.migrateLegacy(ctx); ok {
		return migrated
	}

	raw, ok, err := s.kv.GetString(ctx, ActivitiesStorageKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read tracked games, starting empty")
		return Registry{}
	}
	if !ok || raw == "" {
		return Registry{}
	}

	var games []TrackedGame
	if err := json.Unmarshal([]byte(raw), &games); err != nil {
		log.Warn().Err(err).Msg("stored tracked games are corrupt, starting empty")
		return Registry{}
	}

	reg := dedupe(games)
	if reg == nil {
		return Registry{}
	}
	return reg
}

// Persist overwrites the stored collection with reg.
func (s *RegistryStore) Persist(ctx context.Context, reg Registry) error {
	if reg == nil {
		reg = Registry{}
	}
	data, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("marshal tracked games: %w", err)
	}
	if err := s.kv.Set(ctx, ActivitiesStorageKey, string(data)); err != nil {
		return fmt.Errorf("persist tracked games: %w", err)
	}
	return nil
}

// migrateLegacy converts the three legacy scalar keys into a one-element
// registry, persists it and deletes the legacy keys. Only one game could be
// tracked under the old format.
func (s *RegistryStore) migrateLegacy(ctx context.Context) (Registry, bool) {
	activityID, okActivity := s.getString(ctx, legacyActivityIDKey)
	rawGameID, okGame := s.getString(ctx, legacyGameIDKey)
	sport, okSport := s.getString(ctx, legacySportKey)
	if !okActivity || !okGame || !okSport {
		return nil, false
	}

	gameID, err := strconv.Atoi(rawGameID)
	if err != nil {
		log.Warn().
			Str("game_id", rawGameID).
			Msg("legacy live activity has an invalid game id, discarding it")
		s.removeLegacyKeys(ctx)
		return nil, false
	}

	migrated := Registry{{
		GameID:     gameID,
		Sport:      models.Sport(sport),
		ActivityID: activityID,
	}}
	if err := s.Persist(ctx, migrated); err != nil {
		// keep the legacy keys so the next start can retry
		log.Error().Err(err).Msg("failed to persist migrated live activity")
		return migrated, true
	}
	s.removeLegacyKeys(ctx)

	log.Info().
		Int("game_id", gameID).
		Str("activity_id", activityID).
		Msg("migrated legacy live activity")
	return migrated, true
}

func (s *RegistryStore) removeLegacyKeys(ctx context.Context) {
	for _, key := range []string{legacyActivityIDKey, legacyGameIDKey, legacySportKey} {
		if err := s.kv.Remove(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to remove legacy key")
		}
	}
}

func (s *RegistryStore) getString(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.kv.GetString(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read key")
		return "", false
	}
	return v, ok && v != ""
}
