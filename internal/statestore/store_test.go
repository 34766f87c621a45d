package statestore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	err := mr.Start()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s := NewStore(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestKeyPatterns(t *testing.T) {
	assert.Equal(t, "burrow:workspace:ws-1:keymap", KeyMapKey("ws-1"))
	assert.Equal(t, "burrow:workspace:ws-1:lock", LockKey("ws-1"))
}

func TestLoadMissingYieldsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	m, err := s.Load(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Empty(t, m.Roles)
	assert.Empty(t, m.Categories)
	assert.Empty(t, m.Channels)
	assert.NotNil(t, m.Roles)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	m := NewKeyMap()
	m.Roles["mods"] = "role-1"
	m.Categories["info"] = "cat-1"
	m.Channels["welcome"] = "chan-1"
	require.NoError(t, s.Save(ctx, "ws-1", m))

	loaded, err := s.Load(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "role-1", loaded.Roles["mods"])
	assert.Equal(t, "cat-1", loaded.Categories["info"])
	assert.Equal(t, "chan-1", loaded.Channels["welcome"])
}

func TestSaveIsFullReplacement(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := NewKeyMap()
	first.Roles["mods"] = "role-1"
	require.NoError(t, s.Save(ctx, "ws-1", first))

	second := NewKeyMap()
	second.Channels["welcome"] = "chan-1"
	require.NoError(t, s.Save(ctx, "ws-1", second))

	loaded, err := s.Load(ctx, "ws-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Roles)
	assert.Equal(t, "chan-1", loaded.Channels["welcome"])
}

func TestLoadCorruptDocumentFails(t *testing.T) {
	s, mr := newTestStore(t)

	mr.Set(KeyMapKey("ws-1"), "{not json")

	_, err := s.Load(context.Background(), "ws-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt key map")
}

func TestLoadNormalizesNilMaps(t *testing.T) {
	s, mr := newTestStore(t)

	// A hand-written document may omit sections entirely.
	mr.Set(KeyMapKey("ws-1"), `{"roles":{"mods":"role-1"}}`)

	m, err := s.Load(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "role-1", m.Roles["mods"])
	assert.NotNil(t, m.Categories)
	assert.NotNil(t, m.Channels)
}

func TestWorkspaceIsolation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	m := NewKeyMap()
	m.Roles["mods"] = "role-1"
	require.NoError(t, s.Save(ctx, "ws-1", m))

	other, err := s.Load(ctx, "ws-2")
	require.NoError(t, err)
	assert.Empty(t, other.Roles)
}

func TestMergeLaterWins(t *testing.T) {
	base := NewKeyMap()
	base.Roles["mods"] = "role-old"
	base.Channels["welcome"] = "chan-old"

	update := NewKeyMap()
	update.Roles["mods"] = "role-new"
	update.Categories["info"] = "cat-1"

	base.Merge(update)
	assert.Equal(t, "role-new", base.Roles["mods"])
	assert.Equal(t, "cat-1", base.Categories["info"])
	assert.Equal(t, "chan-old", base.Channels["welcome"])
}

func TestLock(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	t.Run("acquire then conflict", func(t *testing.T) {
		require.NoError(t, s.AcquireLock(ctx, "ws-1"))
		err := s.AcquireLock(ctx, "ws-1")
		assert.ErrorIs(t, err, ErrLockHeld)
	})

	t.Run("release frees the lock", func(t *testing.T) {
		require.NoError(t, s.ReleaseLock(ctx, "ws-1"))
		require.NoError(t, s.AcquireLock(ctx, "ws-1"))
		require.NoError(t, s.ReleaseLock(ctx, "ws-1"))
	})

	t.Run("expires after TTL", func(t *testing.T) {
		require.NoError(t, s.AcquireLock(ctx, "ws-1"))
		mr.FastForward(LockTTL)
		require.NoError(t, s.AcquireLock(ctx, "ws-1"))
	})

	t.Run("locks are per workspace", func(t *testing.T) {
		require.NoError(t, s.AcquireLock(ctx, "ws-other"))
	})
}

func TestPing(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
