// Package editor applies discrete imperative edit actions against the live
// resource tree. Unlike the build engine, which addresses resources by
// stable blueprint keys, edits resolve their targets by current display
// name: they originate from ad-hoc human intent after the tree may have
// been hand-modified, so the engine re-resolves current reality instead of
// trusting the state store.
package editor

import "fmt"

// Kind enumerates the closed set of edit action kinds. The engine matches
// kinds exhaustively, so adding a kind is a compile-surfaced exercise:
// every switch over Kind has an explicit default producing an unknown
// outcome.
type Kind string

const (
	KindRecolorRole    Kind = "recolor_role"
	KindRenameRole     Kind = "rename_role"
	KindRenameChannel  Kind = "rename_channel"
	KindRenameCategory Kind = "rename_category"
	KindCreateChannel  Kind = "create_channel"
	KindLockChannel    Kind = "lock_channel"
	KindUnlockChannel  Kind = "unlock_channel"
	KindSetSlowmode    Kind = "set_slowmode"
)

// Action is one discrete mutation. Target always carries the resource's
// current display name; the remaining fields are read only by the kinds
// that need them and ignored otherwise.
type Action struct {
	Kind     Kind   `json:"kind"`
	Target   string `json:"target"`             // Current display name of the role/channel/category
	NewName  string `json:"newName,omitempty"`  // rename_* kinds
	Color    string `json:"color,omitempty"`    // recolor_role: "#rrggbb"
	Category string `json:"category,omitempty"` // create_channel: parent category name
	Seconds  int    `json:"seconds,omitempty"`  // set_slowmode: clamped to >= 0
}

// OutcomeState is the terminal state of one action. Every action is
// attempted exactly once; there is no retry.
type OutcomeState string

const (
	// OutcomeApplied means the mutation succeeded.
	OutcomeApplied OutcomeState = "applied"

	// OutcomeNotFound means the named target did not resolve.
	OutcomeNotFound OutcomeState = "not_found"

	// OutcomeGuarded means the hierarchy guard refused the mutation
	// before any remote call: the target role sits at or above the acting
	// identity's highest role.
	OutcomeGuarded OutcomeState = "guarded"

	// OutcomeFailed means the mutation call failed.
	OutcomeFailed OutcomeState = "failed"

	// OutcomeUnknown means the action kind is not recognized.
	OutcomeUnknown OutcomeState = "unknown"
)

// Outcome records what happened to one action.
type Outcome struct {
	Action Action
	State  OutcomeState
	Detail string
}

// Line renders the outcome as one glyph-prefixed summary line.
func (o Outcome) Line() string {
	switch o.State {
	case OutcomeApplied:
		return fmt.Sprintf("✓ %s", o.Detail)
	case OutcomeGuarded:
		return fmt.Sprintf("✗ %s: role %q is too high in the hierarchy", o.Action.Kind, o.Action.Target)
	case OutcomeNotFound:
		return fmt.Sprintf("✗ %s: %q not found", o.Action.Kind, o.Action.Target)
	case OutcomeFailed:
		return fmt.Sprintf("✗ %s: %s", o.Action.Kind, o.Detail)
	default:
		return fmt.Sprintf("✗ unknown action %q", string(o.Action.Kind))
	}
}
