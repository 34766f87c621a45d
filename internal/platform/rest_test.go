package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodgeworks/burrow/internal/perms"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	ReqID  string
	Body   []byte
}

// newAPIServer records every request and replies with the canned response.
func newAPIServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			ReqID:  r.Header.Get("X-Request-ID"),
			Body:   body,
		})
		w.WriteHeader(status)
		fmt.Fprint(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestNewRESTValidation(t *testing.T) {
	_, err := NewREST("", "token")
	assert.Error(t, err)

	_, err = NewREST("http://localhost", "")
	assert.Error(t, err)

	c, err := NewREST("http://localhost", "token")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestCreateRole(t *testing.T) {
	srv, reqs := newAPIServer(t, http.StatusOK, `{"id":"role-1","name":"Mods","position":3,"permissions":"8192"}`)
	c, err := NewREST(srv.URL, "tok-123")
	require.NoError(t, err)

	role, err := c.CreateRole(context.Background(), "ws-1", CreateRoleParams{
		Name:        "Mods",
		Color:       0x5865f2,
		Permissions: perms.ManageMessages,
	})
	require.NoError(t, err)
	assert.Equal(t, "role-1", role.ID)
	assert.Equal(t, 3, role.Position)
	assert.Equal(t, perms.ManageMessages, role.Permissions)

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/workspaces/ws-1/roles", got.Path)
	assert.Equal(t, "Bot tok-123", got.Auth)
	assert.NotEmpty(t, got.ReqID)

	// Permission bits travel as a decimal string.
	var wire map[string]any
	require.NoError(t, json.Unmarshal(got.Body, &wire))
	assert.Equal(t, "Mods", wire["name"])
	assert.Equal(t, "8192", wire["permissions"])
}

func TestUpdateRolePatchOmitsNilFields(t *testing.T) {
	srv, reqs := newAPIServer(t, http.StatusOK, `{"id":"role-1","name":"Guides"}`)
	c, err := NewREST(srv.URL, "tok")
	require.NoError(t, err)

	name := "Guides"
	_, err = c.UpdateRole(context.Background(), "ws-1", "role-1", RolePatch{Name: &name})
	require.NoError(t, err)

	got := (*reqs)[0]
	assert.Equal(t, http.MethodPatch, got.Method)
	assert.Equal(t, "/workspaces/ws-1/roles/role-1", got.Path)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(got.Body, &wire))
	assert.Equal(t, "Guides", wire["name"])
	assert.NotContains(t, wire, "color")
}

func TestRepositionRoles(t *testing.T) {
	srv, reqs := newAPIServer(t, http.StatusNoContent, "")
	c, err := NewREST(srv.URL, "tok")
	require.NoError(t, err)

	err = c.RepositionRoles(context.Background(), "ws-1", []RoleMove{
		{RoleID: "role-1", Position: 9},
		{RoleID: "role-2", Position: 8},
	})
	require.NoError(t, err)

	got := (*reqs)[0]
	assert.Equal(t, http.MethodPatch, got.Method)
	assert.Equal(t, "/workspaces/ws-1/roles/positions", got.Path)
	assert.JSONEq(t, `[{"id":"role-1","position":9},{"id":"role-2","position":8}]`, string(got.Body))
}

func TestCreateChannelWithOverrides(t *testing.T) {
	srv, reqs := newAPIServer(t, http.StatusOK, `{"id":"chan-1","name":"welcome-area","kind":"text","parent_id":"cat-1"}`)
	c, err := NewREST(srv.URL, "tok")
	require.NoError(t, err)

	ch, err := c.CreateChannel(context.Background(), "ws-1", CreateChannelParams{
		Name:     "welcome-area",
		Kind:     ChannelKindText,
		ParentID: "cat-1",
		Overrides: []perms.Override{
			{RoleID: "ws-1", Deny: perms.SendMessages},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "chan-1", ch.ID)
	assert.Equal(t, ChannelKindText, ch.Kind)

	got := (*reqs)[0]
	assert.Equal(t, "/workspaces/ws-1/channels", got.Path)

	var wire struct {
		Overrides []struct {
			RoleID string `json:"role_id"`
			Allow  string `json:"allow"`
			Deny   string `json:"deny"`
		} `json:"permission_overrides"`
	}
	require.NoError(t, json.Unmarshal(got.Body, &wire))
	require.Len(t, wire.Overrides, 1)
	assert.Equal(t, "ws-1", wire.Overrides[0].RoleID)
	assert.Equal(t, "0", wire.Overrides[0].Allow)
	assert.NotEqual(t, "0", wire.Overrides[0].Deny)
}

func TestSetOverride(t *testing.T) {
	srv, reqs := newAPIServer(t, http.StatusNoContent, "")
	c, err := NewREST(srv.URL, "tok")
	require.NoError(t, err)

	err = c.SetOverride(context.Background(), "chan-1", perms.Override{
		RoleID: "ws-1",
		Deny:   perms.SendMessages,
	})
	require.NoError(t, err)

	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, "/channels/chan-1/overrides/ws-1", got.Path)
}

func TestSendMessage(t *testing.T) {
	srv, reqs := newAPIServer(t, http.StatusOK, `{}`)
	c, err := NewREST(srv.URL, "tok")
	require.NoError(t, err)

	err = c.SendMessage(context.Background(), "chan-1", Message{Content: "Hello!"})
	require.NoError(t, err)

	got := (*reqs)[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/channels/chan-1/messages", got.Path)
	assert.JSONEq(t, `{"content":"Hello!"}`, string(got.Body))
}

func TestOwnHighestRolePosition(t *testing.T) {
	srv, reqs := newAPIServer(t, http.StatusOK, `{"highest_role_position":7}`)
	c, err := NewREST(srv.URL, "tok")
	require.NoError(t, err)

	pos, err := c.OwnHighestRolePosition(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Equal(t, 7, pos)
	assert.Equal(t, "/workspaces/ws-1/members/@me", (*reqs)[0].Path)
}

func TestAPIError(t *testing.T) {
	t.Run("message from body", func(t *testing.T) {
		srv, _ := newAPIServer(t, http.StatusForbidden, `{"message":"missing permission"}`)
		c, err := NewREST(srv.URL, "tok")
		require.NoError(t, err)

		_, err = c.Roles(context.Background(), "ws-1")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
		assert.Equal(t, "missing permission", apiErr.Message)
	})

	t.Run("non-JSON body falls back to raw text", func(t *testing.T) {
		srv, _ := newAPIServer(t, http.StatusBadGateway, "upstream down")
		c, err := NewREST(srv.URL, "tok")
		require.NoError(t, err)

		_, err = c.Channels(context.Background(), "ws-1")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "upstream down", apiErr.Message)
	})
}

func TestChannelKindMessageCapable(t *testing.T) {
	assert.True(t, ChannelKindText.MessageCapable())
	assert.False(t, ChannelKindVoice.MessageCapable())
	assert.False(t, ChannelKindCategory.MessageCapable())
}

func TestEveryoneRoleID(t *testing.T) {
	assert.Equal(t, "ws-1", EveryoneRoleID("ws-1"))
}
