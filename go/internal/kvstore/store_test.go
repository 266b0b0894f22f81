package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.GetString(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "live_activities", `[{"gameId":1}]`))
	v, ok, err := s.GetString(ctx, "live_activities")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"gameId":1}]`, v)

	require.NoError(t, s.Set(ctx, "live_activities", `[]`))
	v, _, err = s.GetString(ctx, "live_activities")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Remove(ctx, "live_activities"))
	_, ok, err = s.GetString(ctx, "live_activities")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx, "never-set"))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestBadgerStore(t *testing.T) {
	s, err := OpenBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestBadgerStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenBadgerStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = OpenBadgerStore(dir)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.GetString(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s := newRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "livescores:")
	defer s.Close()
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), "prefixed", "1"))
	assert.True(t, mr.Exists("livescores:prefixed"))
}

func TestNewRedisStore_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := New(context.Background(), Config{Backend: BackendRedis, Redis: RedisConfig{Addr: mr.Addr()}})
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestNew(t *testing.T) {
	s, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(context.Background(), Config{BadgerPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &BadgerStore{}, s)
	require.NoError(t, s.Close())

	_, err = New(context.Background(), Config{Backend: "etcd"})
	require.Error(t, err)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "livescores.db")

	s, err := OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))
	require.NoError(t, s.Close())

	reopened, err := New(ctx, Config{Backend: BackendSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.GetString(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}
