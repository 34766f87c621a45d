package statestore

import "fmt"

// Redis key pattern helpers
//
// All keys are namespaced by workspace id so that many workspaces can share
// one Redis server without interference.
//
// Key pattern: burrow:workspace:{workspace_id}:{entity}

// KeyMapKey returns the Redis key holding a workspace's key map document.
// Pattern: burrow:workspace:{workspace_id}:keymap
func KeyMapKey(workspaceID string) string {
	return fmt.Sprintf("burrow:workspace:%s:keymap", workspaceID)
}

// LockKey returns the Redis key for a workspace's advisory build lock.
// Pattern: burrow:workspace:{workspace_id}:lock
func LockKey(workspaceID string) string {
	return fmt.Sprintf("burrow:workspace:%s:lock", workspaceID)
}
