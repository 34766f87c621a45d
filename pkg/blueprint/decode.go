package blueprint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeJSON parses a blueprint from JSON, applies defaults and validates it.
func DecodeJSON(data []byte) (*Blueprint, error) {
	var bp Blueprint
	if err := json.Unmarshal(data, &bp); err != nil {
		return nil, fmt.Errorf("failed to parse blueprint JSON: %w", err)
	}
	bp.ApplyDefaults()
	if err := bp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid blueprint: %w", err)
	}
	return &bp, nil
}

// DecodeYAML parses a blueprint from YAML, applies defaults and validates it.
func DecodeYAML(data []byte) (*Blueprint, error) {
	var bp Blueprint
	if err := yaml.Unmarshal(data, &bp); err != nil {
		return nil, fmt.Errorf("failed to parse blueprint YAML: %w", err)
	}
	bp.ApplyDefaults()
	if err := bp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid blueprint: %w", err)
	}
	return &bp, nil
}

// LoadFile reads a blueprint from disk, choosing the decoder by extension.
// ".yml" and ".yaml" are parsed as YAML; everything else as JSON.
func LoadFile(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return DecodeYAML(data)
	default:
		return DecodeJSON(data)
	}
}

// ApplyDefaults fills the documented per-field defaults: missing collections
// become empty slices, missing kinds become text. Boolean flags and slow-mode
// already zero-value to their defaults (false, 0).
func (b *Blueprint) ApplyDefaults() {
	if b.Roles == nil {
		b.Roles = []RoleSpec{}
	}
	if b.Categories == nil {
		b.Categories = []CategorySpec{}
	}
	if b.Messages == nil {
		b.Messages = []MessageSpec{}
	}
	for i := range b.Categories {
		cat := &b.Categories[i]
		if cat.Channels == nil {
			cat.Channels = []ChannelSpec{}
		}
		for j := range cat.Channels {
			if cat.Channels[j].Kind == "" {
				cat.Channels[j].Kind = ChannelKindText
			}
		}
	}
	for i := range b.Messages {
		if b.Messages[i].Kind == "" {
			b.Messages[i].Kind = MessageKindText
		}
	}
}
