package blueprint

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// hexColorPattern matches "#rrggbb" hex color strings.
var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks the whole blueprint: per-spec field rules plus the
// cross-spec invariants (key uniqueness within each collection, no override
// targeting both everyone and a role key).
func (b *Blueprint) Validate() error {
	if err := validation.ValidateStruct(b,
		validation.Field(&b.Name, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return err
	}

	roleKeys := make(map[string]bool, len(b.Roles))
	for i := range b.Roles {
		role := &b.Roles[i]
		if err := role.Validate(); err != nil {
			return fmt.Errorf("role %q: %w", role.Key, err)
		}
		if roleKeys[role.Key] {
			return fmt.Errorf("duplicate role key %q", role.Key)
		}
		roleKeys[role.Key] = true
	}

	categoryKeys := make(map[string]bool, len(b.Categories))
	channelKeys := make(map[string]bool)
	for i := range b.Categories {
		cat := &b.Categories[i]
		if err := cat.Validate(); err != nil {
			return fmt.Errorf("category %q: %w", cat.Key, err)
		}
		if categoryKeys[cat.Key] {
			return fmt.Errorf("duplicate category key %q", cat.Key)
		}
		categoryKeys[cat.Key] = true

		for j := range cat.Channels {
			ch := &cat.Channels[j]
			if channelKeys[ch.Key] {
				return fmt.Errorf("duplicate channel key %q", ch.Key)
			}
			channelKeys[ch.Key] = true
		}
	}

	for i := range b.Messages {
		if err := b.Messages[i].Validate(); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}

	return nil
}

// Validate checks a single role spec.
func (r *RoleSpec) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Key, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Color, validation.Match(hexColorPattern)),
	)
}

// Validate checks a category spec and everything nested under it.
func (c *CategorySpec) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Key, validation.Required),
		validation.Field(&c.Name, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return err
	}
	for i := range c.Overrides {
		if err := c.Overrides[i].Validate(); err != nil {
			return fmt.Errorf("override %d: %w", i, err)
		}
	}
	for i := range c.Channels {
		ch := &c.Channels[i]
		if err := ch.Validate(); err != nil {
			return fmt.Errorf("channel %q: %w", ch.Key, err)
		}
	}
	return nil
}

// Validate checks a channel spec.
func (c *ChannelSpec) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Key, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.SlowmodeSeconds, validation.Min(0)),
	); err != nil {
		return err
	}
	switch c.Kind {
	case ChannelKindText, ChannelKindVoice:
	default:
		return fmt.Errorf("unknown channel kind: %q", c.Kind)
	}
	for i := range c.Overrides {
		if err := c.Overrides[i].Validate(); err != nil {
			return fmt.Errorf("override %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks an override spec. The everyone target and a role key are
// mutually exclusive, and at least the target side must be declared.
func (o *OverrideSpec) Validate() error {
	if o.Everyone && o.RoleKey != "" {
		return fmt.Errorf("override targets both everyone and role key %q", o.RoleKey)
	}
	if !o.Everyone && o.RoleKey == "" {
		return fmt.Errorf("override has no target")
	}
	return nil
}

// Validate checks a message spec.
func (m *MessageSpec) Validate() error {
	if err := validation.ValidateStruct(m,
		validation.Field(&m.ChannelKey, validation.Required),
		validation.Field(&m.Content, validation.Required),
		validation.Field(&m.Color, validation.Match(hexColorPattern)),
	); err != nil {
		return err
	}
	switch m.Kind {
	case MessageKindText, MessageKindEmbed:
		return nil
	default:
		return fmt.Errorf("unknown message kind: %q", m.Kind)
	}
}
