package liveactivity

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/livescores/go/internal/kvstore"
	"github.com/mcdev12/livescores/go/internal/models"
)

func TestRegistryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewRegistryStore(kvstore.NewMemoryStore())

	reg := Registry{
		{GameID: 1, Sport: models.SportNFL, ActivityID: "X"},
		{GameID: 2, Sport: models.SportNCAAB, ActivityID: "Y"},
	}
	require.NoError(t, store.Persist(ctx, reg))

	loaded := store.Load(ctx)
	if diff := cmp.Diff(reg, loaded); diff != "" {
		t.Errorf("loaded registry mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryStore_PersistFormat(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	store := NewRegistryStore(kv)

	require.NoError(t, store.Persist(ctx, Registry{{GameID: 1, Sport: models.SportNFL, ActivityID: "X"}}))
	raw, ok, err := kv.GetString(ctx, ActivitiesStorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"gameId":1,"sport":"nfl","activityId":"X"}]`, raw)

	require.NoError(t, store.Persist(ctx, nil))
	raw, _, _ = kv.GetString(ctx, ActivitiesStorageKey)
	assert.Equal(t, `[]`, raw)
}

func TestRegistryStore_LoadEmpty(t *testing.T) {
	reg := NewRegistryStore(kvstore.NewMemoryStore()).Load(context.Background())
	assert.NotNil(t, reg)
	assert.Zero(t, reg.Len())
}

func TestRegistryStore_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, ActivitiesStorageKey, `{"not":"an array"`))

	reg := NewRegistryStore(kv).Load(ctx)
	assert.Zero(t, reg.Len())
}

func TestRegistryStore_LoadCollapsesDuplicates(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, ActivitiesStorageKey,
		`[{"gameId":1,"sport":"nfl","activityId":"A"},{"gameId":1,"sport":"nfl","activityId":"B"}]`))

	reg := NewRegistryStore(kv).Load(ctx)
	require.Equal(t, 1, reg.Len())
	assert.Equal(t, "A", reg[0].ActivityID)
}

func TestRegistryStore_MigratesLegacyKeys(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, "live_activity_id", "legacy-activity"))
	require.NoError(t, kv.Set(ctx, "live_activity_game_id", "4242"))
	require.NoError(t, kv.Set(ctx, "live_activity_sport", "ncaaf"))

	store := NewRegistryStore(kv)
	reg := store.Load(ctx)

	want := Registry{{GameID: 4242, Sport: models.SportNCAAF, ActivityID: "legacy-activity"}}
	assert.True(t, want.Equal(reg))

	for _, key := range []string{"live_activity_id", "live_activity_game_id", "live_activity_sport"} {
		_, ok, err := kv.GetString(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "legacy key %s should be deleted", key)
	}

	// a second load reads the migrated collection
	assert.True(t, want.Equal(store.Load(ctx)))
}

func TestRegistryStore_PartialLegacyKeysIgnored(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, "live_activity_id", "legacy-activity"))
	require.NoError(t, kv.Set(ctx, "live_activity_game_id", "4242"))
	require.NoError(t, kv.Set(ctx, ActivitiesStorageKey, `[{"gameId":9,"sport":"nfl","activityId":"N"}]`))

	reg := NewRegistryStore(kv).Load(ctx)
	require.Equal(t, 1, reg.Len())
	assert.Equal(t, 9, reg[0].GameID)

	_, ok, _ := kv.GetString(ctx, "live_activity_id")
	assert.True(t, ok)
}

func TestRegistryStore_InvalidLegacyGameID(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, "live_activity_id", "legacy-activity"))
	require.NoError(t, kv.Set(ctx, "live_activity_game_id", "not-a-number"))
	require.NoError(t, kv.Set(ctx, "live_activity_sport", "nfl"))

	reg := NewRegistryStore(kv).Load(ctx)
	assert.Zero(t, reg.Len())

	_, ok, _ := kv.GetString(ctx, "live_activity_game_id")
	assert.False(t, ok)
}
