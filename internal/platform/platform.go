// Package platform defines the consumed interface over the remote
// collaboration platform: role and channel CRUD, permission override edits,
// message sends, and lookup over live resources. The engine never
// reimplements platform behavior; it only orders and checks calls.
package platform

import (
	"context"

	"github.com/lodgeworks/burrow/internal/perms"
)

// ChannelKind is the remote channel type. Categories are channels of kind
// category on the wire, mirroring the platform's model.
type ChannelKind string

const (
	ChannelKindText     ChannelKind = "text"
	ChannelKindVoice    ChannelKind = "voice"
	ChannelKindCategory ChannelKind = "category"
)

// MessageCapable reports whether a channel of this kind accepts messages.
func (k ChannelKind) MessageCapable() bool {
	return k == ChannelKindText
}

// Role is a remote role as reported by the platform.
type Role struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Color       int               `json:"color"`
	Position    int               `json:"position"`
	Permissions perms.Permissions `json:"permissions,string"`
	Hoist       bool              `json:"hoist"`
	Mentionable bool              `json:"mentionable"`
}

// Channel is a remote channel (or category) as reported by the platform.
type Channel struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Kind            ChannelKind `json:"kind"`
	ParentID        string      `json:"parent_id,omitempty"`
	Topic           string      `json:"topic,omitempty"`
	SlowmodeSeconds int         `json:"slowmode_seconds,omitempty"`
	Position        int         `json:"position"`
}

// CreateRoleParams carries the fields for a role creation.
type CreateRoleParams struct {
	Name        string            `json:"name"`
	Color       int               `json:"color,omitempty"`
	Permissions perms.Permissions `json:"permissions,string"`
	Hoist       bool              `json:"hoist,omitempty"`
	Mentionable bool              `json:"mentionable,omitempty"`
}

// RolePatch carries a partial role update. Nil fields are left unchanged.
type RolePatch struct {
	Name  *string `json:"name,omitempty"`
	Color *int    `json:"color,omitempty"`
}

// RoleMove assigns one role to an absolute hierarchy position. Moves are
// pushed as a single batched reposition request.
type RoleMove struct {
	RoleID   string `json:"id"`
	Position int    `json:"position"`
}

// CreateChannelParams carries the fields for a channel or category creation.
type CreateChannelParams struct {
	Name            string           `json:"name"`
	Kind            ChannelKind      `json:"kind"`
	ParentID        string           `json:"parent_id,omitempty"`
	Topic           string           `json:"topic,omitempty"`
	SlowmodeSeconds int              `json:"slowmode_seconds,omitempty"`
	Overrides       []perms.Override `json:"permission_overrides,omitempty"`
}

// ChannelPatch carries a partial channel update. Nil fields are left
// unchanged.
type ChannelPatch struct {
	Name            *string `json:"name,omitempty"`
	Topic           *string `json:"topic,omitempty"`
	SlowmodeSeconds *int    `json:"slowmode_seconds,omitempty"`
}

// Message is an outbound message, either plain text or an embed.
type Message struct {
	Content string `json:"content,omitempty"`
	Embed   *Embed `json:"embed,omitempty"`
}

// Embed is a rich message body.
type Embed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Color       int    `json:"color,omitempty"`
}

// Client is the consumed remote platform API. Implementations must be safe
// for sequential use from a single goroutine; the engines never issue
// concurrent calls.
type Client interface {
	// CreateRole creates a role and returns it with its assigned id.
	CreateRole(ctx context.Context, workspaceID string, p CreateRoleParams) (*Role, error)

	// UpdateRole applies a partial update to a role.
	UpdateRole(ctx context.Context, workspaceID, roleID string, patch RolePatch) (*Role, error)

	// RepositionRoles pushes a single batched role reposition request.
	RepositionRoles(ctx context.Context, workspaceID string, moves []RoleMove) error

	// CreateChannel creates a channel or category (kind category) and
	// returns it with its assigned id.
	CreateChannel(ctx context.Context, workspaceID string, p CreateChannelParams) (*Channel, error)

	// UpdateChannel applies a partial update to a channel or category.
	UpdateChannel(ctx context.Context, channelID string, patch ChannelPatch) (*Channel, error)

	// SetOverride writes a permission override on a channel for a role id
	// (the workspace id doubles as the implicit everyone role id).
	SetOverride(ctx context.Context, channelID string, ov perms.Override) error

	// SendMessage posts a message into a channel.
	SendMessage(ctx context.Context, channelID string, msg Message) error

	// Roles lists the workspace's roles.
	Roles(ctx context.Context, workspaceID string) ([]Role, error)

	// Channels lists the workspace's channels and categories.
	Channels(ctx context.Context, workspaceID string) ([]Channel, error)

	// OwnHighestRolePosition returns the hierarchy position of the acting
	// identity's highest role, used for permission-hierarchy guards.
	OwnHighestRolePosition(ctx context.Context, workspaceID string) (int, error)
}

// EveryoneRoleID returns the implicit everyone role id for a workspace. The
// platform reuses the workspace id for it.
func EveryoneRoleID(workspaceID string) string {
	return workspaceID
}
