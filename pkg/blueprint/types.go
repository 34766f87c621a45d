// Package blueprint defines the declarative specification consumed by the
// build engine. A blueprint describes the desired shape of a workspace:
// roles with permission packs, categories containing channels, per-resource
// permission overrides, and starter messages.
//
// Every spec carries a logical key. Keys are the only stable cross-reference
// between specs: a MessageSpec points at a channel by key, an OverrideSpec
// points at a role by key. Remote platform identifiers never appear in a
// blueprint; the key→id mapping is recorded in the state store at build time.
package blueprint

// Blueprint is the top-level declarative specification for one workspace.
type Blueprint struct {
	Name       string         `json:"name" yaml:"name"`
	Locale     string         `json:"locale,omitempty" yaml:"locale,omitempty"`
	Theme      string         `json:"theme,omitempty" yaml:"theme,omitempty"`
	Roles      []RoleSpec     `json:"roles" yaml:"roles"`
	Categories []CategorySpec `json:"categories" yaml:"categories"`
	Messages   []MessageSpec  `json:"messages" yaml:"messages"`
}

// RoleSpec declares a single role. Roles are realized exactly once per build
// run and are never deleted by the engine.
type RoleSpec struct {
	Key         string `json:"key" yaml:"key"`                   // Stable logical id, unique among roles
	Name        string `json:"name" yaml:"name"`                 // Display name
	Color       string `json:"color,omitempty" yaml:"color,omitempty"` // Hex color, e.g. "#5865f2"
	PermPack    string `json:"permPack,omitempty" yaml:"permPack,omitempty"` // Named permission bundle
	Hoist       bool   `json:"hoist,omitempty" yaml:"hoist,omitempty"`
	Mentionable bool   `json:"mentionable,omitempty" yaml:"mentionable,omitempty"`
}

// CategorySpec declares a grouping container for channels. Overrides apply to
// the category itself; channels are always created under their enclosing
// category (no orphan channels).
type CategorySpec struct {
	Key       string         `json:"key" yaml:"key"`
	Name      string         `json:"name" yaml:"name"`
	Channels  []ChannelSpec  `json:"channels" yaml:"channels"`
	Overrides []OverrideSpec `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// ChannelKind distinguishes message-capable channels from voice channels.
type ChannelKind string

const (
	ChannelKindText  ChannelKind = "text"
	ChannelKindVoice ChannelKind = "voice"
)

// ChannelSpec declares a channel nested under a category. Names are passed
// through the normalizer before creation, so free-form display names are
// acceptable here.
type ChannelSpec struct {
	Key             string         `json:"key" yaml:"key"`
	Name            string         `json:"name" yaml:"name"`
	Kind            ChannelKind    `json:"kind,omitempty" yaml:"kind,omitempty"` // Defaults to text
	Topic           string         `json:"topic,omitempty" yaml:"topic,omitempty"`
	SlowmodeSeconds int            `json:"slowmodeSeconds,omitempty" yaml:"slowmodeSeconds,omitempty"`
	Overrides       []OverrideSpec `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// OverrideSpec declares a permission override on a category or channel.
// The target is either the implicit everyone group or a declared role key;
// declaring both is a validation error. Allow and Deny carry textual
// permission flag names resolved through the fixed flag table.
type OverrideSpec struct {
	Everyone bool     `json:"everyone,omitempty" yaml:"everyone,omitempty"`
	RoleKey  string   `json:"roleKey,omitempty" yaml:"roleKey,omitempty"`
	Allow    []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	Deny     []string `json:"deny,omitempty" yaml:"deny,omitempty"`
}

// MessageKind selects between a plain text message and an embed.
type MessageKind string

const (
	MessageKindText  MessageKind = "text"
	MessageKindEmbed MessageKind = "embed"
)

// MessageSpec declares a starter message posted into a channel after the
// tree is built. A channelKey that does not resolve through the state store
// is skipped silently rather than failing the build.
type MessageSpec struct {
	ChannelKey string      `json:"channelKey" yaml:"channelKey"`
	Kind       MessageKind `json:"kind,omitempty" yaml:"kind,omitempty"` // Defaults to text
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"` // Embed title
	Content    string      `json:"content" yaml:"content"`
	Color      string      `json:"color,omitempty" yaml:"color,omitempty"` // Embed accent color
}
