// Package perms maps named permission packs to the platform's native
// permission flag sets and resolves per-resource override declarations into
// concrete override records.
package perms

import "strings"

// Permissions is a bit set over the platform's permission flags.
type Permissions uint64

// Platform permission flags. Bit positions follow the remote platform's
// permission model.
const (
	KickMembers        Permissions = 1 << 1
	BanMembers         Permissions = 1 << 2
	Administrator      Permissions = 1 << 3
	ManageChannels     Permissions = 1 << 4
	AddReactions       Permissions = 1 << 6
	ViewChannel        Permissions = 1 << 10
	SendMessages       Permissions = 1 << 11
	ManageMessages     Permissions = 1 << 13
	EmbedLinks         Permissions = 1 << 14
	AttachFiles        Permissions = 1 << 15
	ReadMessageHistory Permissions = 1 << 16
	MentionEveryone    Permissions = 1 << 17
	Connect            Permissions = 1 << 20
	Speak              Permissions = 1 << 21
	MuteMembers        Permissions = 1 << 22
	ManageRoles        Permissions = 1 << 28
	ManageWebhooks     Permissions = 1 << 29
	ModerateMembers    Permissions = 1 << 40
)

// flagsByName is the fixed table mapping textual flag names to bits.
// Override resolution drops names missing from this table rather than
// failing the whole override.
var flagsByName = map[string]Permissions{
	"kick_members":         KickMembers,
	"ban_members":          BanMembers,
	"administrator":        Administrator,
	"manage_channels":      ManageChannels,
	"add_reactions":        AddReactions,
	"view_channel":         ViewChannel,
	"send_messages":        SendMessages,
	"manage_messages":      ManageMessages,
	"embed_links":          EmbedLinks,
	"attach_files":         AttachFiles,
	"read_message_history": ReadMessageHistory,
	"mention_everyone":     MentionEveryone,
	"connect":              Connect,
	"speak":                Speak,
	"mute_members":         MuteMembers,
	"manage_roles":         ManageRoles,
	"manage_webhooks":      ManageWebhooks,
	"moderate_members":     ModerateMembers,
}

// Flag resolves a single textual flag name. Returns (0, false) for names
// missing from the fixed table.
func Flag(name string) (Permissions, bool) {
	p, ok := flagsByName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// FlagSet resolves a list of textual flag names into a combined bit set,
// silently dropping unrecognized names.
func FlagSet(names []string) Permissions {
	var set Permissions
	for _, name := range names {
		if p, ok := Flag(name); ok {
			set |= p
		}
	}
	return set
}

// Permission pack names. Packs are a closed enumeration; anything else
// resolves to the empty set.
const (
	PackAdmin    = "admin"
	PackMod      = "mod"
	PackHelper   = "helper"
	PackMember   = "member"
	PackReadonly = "readonly"
)

var packs = map[string]Permissions{
	PackAdmin: Administrator,
	PackMod: KickMembers | BanMembers | ModerateMembers | ManageMessages |
		ManageChannels | MuteMembers | ViewChannel | SendMessages |
		ReadMessageHistory | EmbedLinks | AttachFiles,
	PackHelper: ManageMessages | ModerateMembers | ViewChannel |
		SendMessages | ReadMessageHistory,
	PackMember: ViewChannel | SendMessages | ReadMessageHistory |
		AddReactions | EmbedLinks | AttachFiles | Connect | Speak,
	PackReadonly: ViewChannel | ReadMessageHistory,
}

// Pack resolves a named permission pack to its flag set. Unknown pack names
// resolve to the empty set: an unrecognized pack must never silently grant
// elevated access.
func Pack(name string) Permissions {
	return packs[strings.ToLower(strings.TrimSpace(name))]
}
