// Package testutil provides shared test doubles, most importantly an
// in-memory fake of the remote platform that records calls in order.
package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/lodgeworks/burrow/internal/perms"
	"github.com/lodgeworks/burrow/internal/platform"
)

// Call is one recorded platform invocation: the method name plus the most
// identifying argument (role/channel name or id).
type Call struct {
	Method string
	Arg    string
}

// FakePlatform is an in-memory platform.Client. Created resources get
// deterministic ids (role-1, chan-1, cat-1, ...). Errors can be injected
// per method, or per method and argument with a "Method:arg" key.
type FakePlatform struct {
	Calls        []Call
	Errs         map[string]error
	Highest      int // acting identity's highest role position
	LiveRoles    []platform.Role
	LiveChannels []platform.Channel

	// Sent maps channel id to the messages posted into it.
	Sent map[string][]platform.Message

	// Overrides maps channel id to the overrides written on it.
	Overrides map[string][]perms.Override

	nextRole    int
	nextChannel int
	nextCat     int
}

// NewFakePlatform returns a fake with a generously high acting identity.
func NewFakePlatform() *FakePlatform {
	return &FakePlatform{
		Errs:      make(map[string]error),
		Highest:   100,
		Sent:      make(map[string][]platform.Message),
		Overrides: make(map[string][]perms.Override),
	}
}

// FailOn injects an error for a method ("CreateRole") or a method+argument
// pair ("CreateRole:Mods").
func (f *FakePlatform) FailOn(key string, err error) {
	f.Errs[key] = err
}

// CallNames returns the ordered method names of all recorded calls.
func (f *FakePlatform) CallNames() []string {
	names := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		names[i] = c.Method
	}
	return names
}

// MutationCalls counts the recorded calls that mutate remote state,
// ignoring pure lookups.
func (f *FakePlatform) MutationCalls() int {
	n := 0
	for _, c := range f.Calls {
		switch c.Method {
		case "Roles", "Channels", "OwnHighestRolePosition":
		default:
			n++
		}
	}
	return n
}

func (f *FakePlatform) record(method, arg string) error {
	f.Calls = append(f.Calls, Call{Method: method, Arg: arg})
	if err, ok := f.Errs[method+":"+arg]; ok {
		return err
	}
	if err, ok := f.Errs[method]; ok {
		return err
	}
	return nil
}

func (f *FakePlatform) CreateRole(ctx context.Context, workspaceID string, p platform.CreateRoleParams) (*platform.Role, error) {
	if err := f.record("CreateRole", p.Name); err != nil {
		return nil, err
	}
	f.nextRole++
	role := platform.Role{
		ID:          fmt.Sprintf("role-%d", f.nextRole),
		Name:        p.Name,
		Color:       p.Color,
		Position:    f.nextRole,
		Permissions: p.Permissions,
		Hoist:       p.Hoist,
		Mentionable: p.Mentionable,
	}
	f.LiveRoles = append(f.LiveRoles, role)
	return &role, nil
}

func (f *FakePlatform) UpdateRole(ctx context.Context, workspaceID, roleID string, patch platform.RolePatch) (*platform.Role, error) {
	if err := f.record("UpdateRole", roleID); err != nil {
		return nil, err
	}
	for i := range f.LiveRoles {
		if f.LiveRoles[i].ID == roleID {
			if patch.Name != nil {
				f.LiveRoles[i].Name = *patch.Name
			}
			if patch.Color != nil {
				f.LiveRoles[i].Color = *patch.Color
			}
			role := f.LiveRoles[i]
			return &role, nil
		}
	}
	return nil, fmt.Errorf("fake: role %s does not exist", roleID)
}

func (f *FakePlatform) RepositionRoles(ctx context.Context, workspaceID string, moves []platform.RoleMove) error {
	ids := make([]string, len(moves))
	for i, m := range moves {
		ids[i] = m.RoleID
	}
	if err := f.record("RepositionRoles", strings.Join(ids, ",")); err != nil {
		return err
	}
	for _, m := range moves {
		for i := range f.LiveRoles {
			if f.LiveRoles[i].ID == m.RoleID {
				f.LiveRoles[i].Position = m.Position
			}
		}
	}
	return nil
}

func (f *FakePlatform) CreateChannel(ctx context.Context, workspaceID string, p platform.CreateChannelParams) (*platform.Channel, error) {
	if err := f.record("CreateChannel", p.Name); err != nil {
		return nil, err
	}
	var id string
	if p.Kind == platform.ChannelKindCategory {
		f.nextCat++
		id = fmt.Sprintf("cat-%d", f.nextCat)
	} else {
		f.nextChannel++
		id = fmt.Sprintf("chan-%d", f.nextChannel)
	}
	ch := platform.Channel{
		ID:              id,
		Name:            p.Name,
		Kind:            p.Kind,
		ParentID:        p.ParentID,
		Topic:           p.Topic,
		SlowmodeSeconds: p.SlowmodeSeconds,
	}
	f.LiveChannels = append(f.LiveChannels, ch)
	if len(p.Overrides) > 0 {
		f.Overrides[id] = append(f.Overrides[id], p.Overrides...)
	}
	return &ch, nil
}

func (f *FakePlatform) UpdateChannel(ctx context.Context, channelID string, patch platform.ChannelPatch) (*platform.Channel, error) {
	if err := f.record("UpdateChannel", channelID); err != nil {
		return nil, err
	}
	for i := range f.LiveChannels {
		if f.LiveChannels[i].ID == channelID {
			if patch.Name != nil {
				f.LiveChannels[i].Name = *patch.Name
			}
			if patch.Topic != nil {
				f.LiveChannels[i].Topic = *patch.Topic
			}
			if patch.SlowmodeSeconds != nil {
				f.LiveChannels[i].SlowmodeSeconds = *patch.SlowmodeSeconds
			}
			ch := f.LiveChannels[i]
			return &ch, nil
		}
	}
	return nil, fmt.Errorf("fake: channel %s does not exist", channelID)
}

func (f *FakePlatform) SetOverride(ctx context.Context, channelID string, ov perms.Override) error {
	if err := f.record("SetOverride", channelID); err != nil {
		return err
	}
	f.Overrides[channelID] = append(f.Overrides[channelID], ov)
	return nil
}

func (f *FakePlatform) SendMessage(ctx context.Context, channelID string, msg platform.Message) error {
	if err := f.record("SendMessage", channelID); err != nil {
		return err
	}
	f.Sent[channelID] = append(f.Sent[channelID], msg)
	return nil
}

func (f *FakePlatform) Roles(ctx context.Context, workspaceID string) ([]platform.Role, error) {
	if err := f.record("Roles", workspaceID); err != nil {
		return nil, err
	}
	out := make([]platform.Role, len(f.LiveRoles))
	copy(out, f.LiveRoles)
	return out, nil
}

func (f *FakePlatform) Channels(ctx context.Context, workspaceID string) ([]platform.Channel, error) {
	if err := f.record("Channels", workspaceID); err != nil {
		return nil, err
	}
	out := make([]platform.Channel, len(f.LiveChannels))
	copy(out, f.LiveChannels)
	return out, nil
}

func (f *FakePlatform) OwnHighestRolePosition(ctx context.Context, workspaceID string) (int, error) {
	if err := f.record("OwnHighestRolePosition", workspaceID); err != nil {
		return 0, err
	}
	return f.Highest, nil
}

var _ platform.Client = (*FakePlatform)(nil)
