package editor

import (
	"encoding/json"
	"fmt"
)

// DecodeActions parses edit actions from JSON. Both a bare array and a
// document with a top-level "actions" array are accepted; the latter is
// what the text-generation collaborator produces.
func DecodeActions(data []byte) ([]Action, error) {
	var doc struct {
		Actions []Action `json:"actions"`
	}
	if err := json.Unmarshal(data, &doc); err == nil && doc.Actions != nil {
		return doc.Actions, nil
	}

	var actions []Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("failed to parse actions JSON: %w", err)
	}
	return actions, nil
}
