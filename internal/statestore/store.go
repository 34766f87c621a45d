// Package statestore persists the mapping from blueprint-declared logical
// keys to remote-assigned resource identifiers, keyed by workspace. The
// store is pure storage: it never talks to the remote platform.
//
// The key map is the only durable record tying logical keys to remote
// identities. Losing it makes previously built resources unaddressable by
// key; they still exist remotely, findable only by name.
package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockTTL bounds how long a workspace build lock can be held before it
// expires on its own. A build that outlives this is assumed crashed.
const LockTTL = 10 * time.Minute

// ErrLockHeld is returned when another build already holds the workspace
// lock.
var ErrLockHeld = errors.New("workspace is locked by another build")

// KeyMap holds a workspace's three key→id mappings.
type KeyMap struct {
	Roles      map[string]string `json:"roles"`
	Categories map[string]string `json:"categories"`
	Channels   map[string]string `json:"channels"`
}

// NewKeyMap returns an empty key map with all mappings allocated.
func NewKeyMap() *KeyMap {
	return &KeyMap{
		Roles:      make(map[string]string),
		Categories: make(map[string]string),
		Channels:   make(map[string]string),
	}
}

// Merge copies other's entries into m. Same-named keys are overwritten, so
// a later build run's keys win over earlier ones.
func (m *KeyMap) Merge(other *KeyMap) {
	for k, v := range other.Roles {
		m.Roles[k] = v
	}
	for k, v := range other.Categories {
		m.Categories[k] = v
	}
	for k, v := range other.Channels {
		m.Channels[k] = v
	}
}

// Store provides workspace-scoped key map persistence backed by Redis.
// The store is safe for concurrent use from multiple goroutines.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a store using the given Redis connection options.
func NewStore(opts *redis.Options) *Store {
	return &Store{rdb: redis.NewClient(opts)}
}

// Close closes the Redis connection. Implements io.Closer.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for fail-fast startup checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Load reads a workspace's key map. A missing document yields an empty key
// map; a document that fails to parse is a fatal error and is never
// auto-repaired.
func (s *Store) Load(ctx context.Context, workspaceID string) (*KeyMap, error) {
	data, err := s.rdb.Get(ctx, KeyMapKey(workspaceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewKeyMap(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key map: %w", err)
	}

	var m KeyMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("corrupt key map for workspace %s: %w", workspaceID, err)
	}
	if m.Roles == nil {
		m.Roles = make(map[string]string)
	}
	if m.Categories == nil {
		m.Categories = make(map[string]string)
	}
	if m.Channels == nil {
		m.Channels = make(map[string]string)
	}
	return &m, nil
}

// Save writes a workspace's key map as a full, valid replacement of the
// prior document. There are no partial writes: the document is marshaled
// completely before the single SET.
func (s *Store) Save(ctx context.Context, workspaceID string, m *KeyMap) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to serialize key map: %w", err)
	}
	if err := s.rdb.Set(ctx, KeyMapKey(workspaceID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key map: %w", err)
	}
	return nil
}

// AcquireLock takes the workspace's advisory build lock. Returns ErrLockHeld
// if another build holds it. The lock expires after LockTTL as crash
// protection.
func (s *Store) AcquireLock(ctx context.Context, workspaceID string) error {
	ok, err := s.rdb.SetNX(ctx, LockKey(workspaceID), "1", LockTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire workspace lock: %w", err)
	}
	if !ok {
		return ErrLockHeld
	}
	return nil
}

// ReleaseLock drops the workspace's advisory build lock.
func (s *Store) ReleaseLock(ctx context.Context, workspaceID string) error {
	if err := s.rdb.Del(ctx, LockKey(workspaceID)).Err(); err != nil {
		return fmt.Errorf("failed to release workspace lock: %w", err)
	}
	return nil
}
