package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBlueprint() *Blueprint {
	bp := &Blueprint{
		Name: "Book Club",
		Roles: []RoleSpec{
			{Key: "mods", Name: "Mods", Color: "#5865f2", PermPack: "mod"},
		},
		Categories: []CategorySpec{
			{
				Key:  "info",
				Name: "Info",
				Channels: []ChannelSpec{
					{Key: "welcome", Name: "Welcome Area!"},
				},
				Overrides: []OverrideSpec{
					{Everyone: true, Deny: []string{"send_messages"}},
				},
			},
		},
		Messages: []MessageSpec{
			{ChannelKey: "welcome", Content: "Hello!"},
		},
	}
	bp.ApplyDefaults()
	return bp
}

func TestValidateAccepts(t *testing.T) {
	require.NoError(t, validBlueprint().Validate())
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Blueprint)
	}{
		{"empty name", func(b *Blueprint) { b.Name = "" }},
		{"role without key", func(b *Blueprint) { b.Roles[0].Key = "" }},
		{"bad role color", func(b *Blueprint) { b.Roles[0].Color = "blue" }},
		{"duplicate role keys", func(b *Blueprint) {
			b.Roles = append(b.Roles, RoleSpec{Key: "mods", Name: "Mods Again"})
		}},
		{"duplicate channel keys across categories", func(b *Blueprint) {
			b.Categories = append(b.Categories, CategorySpec{
				Key:      "lounge",
				Name:     "Lounge",
				Channels: []ChannelSpec{{Key: "welcome", Name: "welcome-two", Kind: ChannelKindText}},
			})
		}},
		{"negative slowmode", func(b *Blueprint) { b.Categories[0].Channels[0].SlowmodeSeconds = -5 }},
		{"override with both targets", func(b *Blueprint) {
			b.Categories[0].Overrides[0] = OverrideSpec{Everyone: true, RoleKey: "mods"}
		}},
		{"override with no target", func(b *Blueprint) {
			b.Categories[0].Overrides[0] = OverrideSpec{Allow: []string{"view_channel"}}
		}},
		{"message without content", func(b *Blueprint) { b.Messages[0].Content = "" }},
		{"unknown channel kind", func(b *Blueprint) { b.Categories[0].Channels[0].Kind = "forum" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bp := validBlueprint()
			tc.mutate(bp)
			assert.Error(t, bp.Validate())
		})
	}
}

func TestDecodeJSONDefaults(t *testing.T) {
	bp, err := DecodeJSON([]byte(`{"name":"Minimal"}`))
	require.NoError(t, err)

	// Missing collections default to empty, not nil.
	assert.NotNil(t, bp.Roles)
	assert.NotNil(t, bp.Categories)
	assert.NotNil(t, bp.Messages)
	assert.Empty(t, bp.Roles)
}

func TestDecodeJSONKindDefaults(t *testing.T) {
	bp, err := DecodeJSON([]byte(`{
		"name": "Defaults",
		"categories": [{"key":"c1","name":"Info","channels":[{"key":"ch1","name":"general"}]}],
		"messages": [{"channelKey":"ch1","content":"hi"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, ChannelKindText, bp.Categories[0].Channels[0].Kind)
	assert.Equal(t, MessageKindText, bp.Messages[0].Kind)
	assert.Zero(t, bp.Categories[0].Channels[0].SlowmodeSeconds)
}

func TestDecodeJSONRejectsMalformed(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"name": 12}`))
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	bp, err := DecodeYAML([]byte(`
name: Book Club
roles:
  - key: mods
    name: Mods
    permPack: mod
categories:
  - key: info
    name: Info
    channels:
      - key: welcome
        name: Welcome Area!
`))
	require.NoError(t, err)
	assert.Equal(t, "Book Club", bp.Name)
	assert.Equal(t, "mods", bp.Roles[0].Key)
	assert.Equal(t, ChannelKindText, bp.Categories[0].Channels[0].Kind)
}
