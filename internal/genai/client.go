// Package genai is the client for the external text-generation collaborator.
// It turns a natural-language prompt plus a fixed schema instruction into a
// blueprint or an action list, extracting the first balanced JSON object
// from whatever text the service returns.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lodgeworks/burrow/internal/editor"
	"github.com/lodgeworks/burrow/pkg/blueprint"
)

// blueprintInstruction pins the exact blueprint JSON schema the generator
// must produce. Field names and enumerations here must stay in sync with
// pkg/blueprint.
const blueprintInstruction = `You design chat workspace layouts. Reply with a single JSON object and nothing else, following this schema exactly:
{
  "name": string,
  "locale": string (BCP 47 tag, e.g. "en-US"),
  "theme": string,
  "roles": [{"key": string, "name": string, "color": "#rrggbb", "permPack": "admin"|"mod"|"helper"|"member"|"readonly", "hoist": bool, "mentionable": bool}],
  "categories": [{"key": string, "name": string,
    "channels": [{"key": string, "name": string, "kind": "text"|"voice", "topic": string, "slowmodeSeconds": int, "overrides": [...]}],
    "overrides": [{"everyone": bool, "roleKey": string, "allow": [string], "deny": [string]}]}],
  "messages": [{"channelKey": string, "kind": "text"|"embed", "title": string, "content": string, "color": "#rrggbb"}]
}
Every "key" must be unique within its collection. Omit "roles", "categories" or "messages" when empty; omitted booleans default to false and omitted slowmodeSeconds to 0. Allow/deny lists use snake_case permission flag names such as "view_channel", "send_messages", "manage_messages".`

// actionsInstruction pins the edit-action JSON schema.
const actionsInstruction = `You translate workspace edit requests into actions. Reply with a single JSON object and nothing else:
{"actions": [{"kind": string, "target": string, "newName": string, "color": "#rrggbb", "category": string, "seconds": int}]}
Valid kinds: "recolor_role", "rename_role", "rename_channel", "rename_category", "create_channel", "lock_channel", "unlock_channel", "set_slowmode".
"target" is always the resource's current display name. Include only the fields a kind needs.`

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
}

// NewClient creates a generation client.
func NewClient(baseURL, apiKey, model string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("generator base URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("generator model cannot be empty")
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, model: model, httpc: &http.Client{}}, nil
}

// GenerateBlueprint asks the generator for a blueprint matching the prompt.
// Extraction or schema failure surfaces as an error, never as a silently
// empty blueprint.
func (c *Client) GenerateBlueprint(ctx context.Context, prompt string) (*blueprint.Blueprint, error) {
	text, err := c.complete(ctx, blueprintInstruction, prompt)
	if err != nil {
		return nil, err
	}
	span, err := ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("blueprint generation failed: %w", err)
	}
	bp, err := blueprint.DecodeJSON([]byte(span))
	if err != nil {
		return nil, fmt.Errorf("blueprint generation failed: %w", err)
	}
	return bp, nil
}

// GenerateActions asks the generator for edit actions matching the prompt.
func (c *Client) GenerateActions(ctx context.Context, prompt string) ([]editor.Action, error) {
	text, err := c.complete(ctx, actionsInstruction, prompt)
	if err != nil {
		return nil, err
	}
	span, err := ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("action generation failed: %w", err)
	}
	actions, err := editor.DecodeActions([]byte(span))
	if err != nil {
		return nil, fmt.Errorf("action generation failed: %w", err)
	}
	return actions, nil
}

// complete issues one chat completion exchange and returns the raw reply
// text.
func (c *Client) complete(ctx context.Context, system, prompt string) (string, error) {
	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": prompt},
		},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("generation service returned HTTP %d: %s", resp.StatusCode, body)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("generation service returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
