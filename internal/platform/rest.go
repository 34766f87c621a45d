package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/lodgeworks/burrow/internal/perms"
)

// REST implements Client over the platform's HTTP API. Timeouts are
// delegated to the transport's defaults; the engines impose none of their
// own. Each request carries a generated request id for audit correlation.
type REST struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewREST creates a REST client for the given API base URL and bot token.
func NewREST(baseURL, token string) (*REST, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("platform base URL cannot be empty")
	}
	if token == "" {
		return nil, fmt.Errorf("platform token cannot be empty")
	}
	return &REST{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{},
	}, nil
}

// APIError is a non-2xx response from the platform.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform API error (HTTP %d): %s", e.Status, e.Message)
}

// do issues one request-response exchange. The body, if any, is sent as
// JSON; the response, if out is non-nil, is decoded as JSON.
func (r *REST) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+r.token)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(data)
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// CreateRole creates a role in the workspace.
func (r *REST) CreateRole(ctx context.Context, workspaceID string, p CreateRoleParams) (*Role, error) {
	var role Role
	path := fmt.Sprintf("/workspaces/%s/roles", workspaceID)
	if err := r.do(ctx, http.MethodPost, path, p, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole applies a partial update to a role.
func (r *REST) UpdateRole(ctx context.Context, workspaceID, roleID string, patch RolePatch) (*Role, error) {
	var role Role
	path := fmt.Sprintf("/workspaces/%s/roles/%s", workspaceID, roleID)
	if err := r.do(ctx, http.MethodPatch, path, patch, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// RepositionRoles pushes a batched role reposition request.
func (r *REST) RepositionRoles(ctx context.Context, workspaceID string, moves []RoleMove) error {
	path := fmt.Sprintf("/workspaces/%s/roles/positions", workspaceID)
	return r.do(ctx, http.MethodPatch, path, moves, nil)
}

// CreateChannel creates a channel or category in the workspace.
func (r *REST) CreateChannel(ctx context.Context, workspaceID string, p CreateChannelParams) (*Channel, error) {
	var ch Channel
	path := fmt.Sprintf("/workspaces/%s/channels", workspaceID)
	if err := r.do(ctx, http.MethodPost, path, p, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// UpdateChannel applies a partial update to a channel or category.
func (r *REST) UpdateChannel(ctx context.Context, channelID string, patch ChannelPatch) (*Channel, error) {
	var ch Channel
	path := fmt.Sprintf("/channels/%s", channelID)
	if err := r.do(ctx, http.MethodPatch, path, patch, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// SetOverride writes a permission override on a channel.
func (r *REST) SetOverride(ctx context.Context, channelID string, ov perms.Override) error {
	path := fmt.Sprintf("/channels/%s/overrides/%s", channelID, ov.RoleID)
	body := struct {
		Allow perms.Permissions `json:"allow,string"`
		Deny  perms.Permissions `json:"deny,string"`
	}{Allow: ov.Allow, Deny: ov.Deny}
	return r.do(ctx, http.MethodPut, path, body, nil)
}

// SendMessage posts a message into a channel.
func (r *REST) SendMessage(ctx context.Context, channelID string, msg Message) error {
	path := fmt.Sprintf("/channels/%s/messages", channelID)
	return r.do(ctx, http.MethodPost, path, msg, nil)
}

// Roles lists the workspace's roles.
func (r *REST) Roles(ctx context.Context, workspaceID string) ([]Role, error) {
	var roles []Role
	path := fmt.Sprintf("/workspaces/%s/roles", workspaceID)
	if err := r.do(ctx, http.MethodGet, path, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Channels lists the workspace's channels and categories.
func (r *REST) Channels(ctx context.Context, workspaceID string) ([]Channel, error) {
	var channels []Channel
	path := fmt.Sprintf("/workspaces/%s/channels", workspaceID)
	if err := r.do(ctx, http.MethodGet, path, nil, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// OwnHighestRolePosition returns the acting identity's highest role
// position in the workspace.
func (r *REST) OwnHighestRolePosition(ctx context.Context, workspaceID string) (int, error) {
	var me struct {
		HighestRolePosition int `json:"highest_role_position"`
	}
	path := fmt.Sprintf("/workspaces/%s/members/@me", workspaceID)
	if err := r.do(ctx, http.MethodGet, path, nil, &me); err != nil {
		return 0, err
	}
	return me.HighestRolePosition, nil
}

var _ Client = (*REST)(nil)
