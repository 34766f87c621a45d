package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lodgeworks/burrow/internal/normalize"
	"github.com/lodgeworks/burrow/internal/perms"
	"github.com/lodgeworks/burrow/internal/platform"
)

// Engine applies edit actions against the live resource tree. Actions are
// processed strictly in order, each one independently: a failure in one
// never prevents the next from running.
type Engine struct {
	platform platform.Client
	log      zerolog.Logger
}

// NewEngine creates an edit engine.
func NewEngine(p platform.Client, log zerolog.Logger) *Engine {
	return &Engine{platform: p, log: log}
}

// ApplyAll applies every action and returns one outcome per action, in
// order. Errors are converted into per-action outcomes and never propagate.
func (e *Engine) ApplyAll(ctx context.Context, workspaceID string, actions []Action) []Outcome {
	outcomes := make([]Outcome, 0, len(actions))
	for _, action := range actions {
		outcome := e.apply(ctx, workspaceID, action)
		e.log.Debug().Str("kind", string(action.Kind)).Str("target", action.Target).
			Str("state", string(outcome.State)).Msg("edit action applied")
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// apply executes a single action: resolve the named target against the live
// tree, run the hierarchy guard for role mutations, then mutate.
func (e *Engine) apply(ctx context.Context, workspaceID string, action Action) Outcome {
	switch action.Kind {
	case KindRecolorRole:
		return e.mutateRole(ctx, workspaceID, action, platform.RolePatch{Color: intPtr(parseColor(action.Color))},
			fmt.Sprintf("role %s recolored to %s", action.Target, action.Color))

	case KindRenameRole:
		return e.mutateRole(ctx, workspaceID, action, platform.RolePatch{Name: &action.NewName},
			fmt.Sprintf("role %s renamed to %s", action.Target, action.NewName))

	case KindRenameChannel:
		name := normalize.Channel(action.NewName)
		return e.mutateChannel(ctx, workspaceID, action, false, platform.ChannelPatch{Name: &name},
			fmt.Sprintf("channel %s renamed to %s", action.Target, name))

	case KindRenameCategory:
		return e.mutateChannel(ctx, workspaceID, action, true, platform.ChannelPatch{Name: &action.NewName},
			fmt.Sprintf("category %s renamed to %s", action.Target, action.NewName))

	case KindCreateChannel:
		return e.createChannel(ctx, workspaceID, action)

	case KindLockChannel:
		return e.setEveryoneOverride(ctx, workspaceID, action, perms.Override{
			RoleID: platform.EveryoneRoleID(workspaceID),
			Deny:   perms.SendMessages,
		}, fmt.Sprintf("channel %s locked", action.Target))

	case KindUnlockChannel:
		return e.setEveryoneOverride(ctx, workspaceID, action, perms.Override{
			RoleID: platform.EveryoneRoleID(workspaceID),
			Allow:  perms.SendMessages,
		}, fmt.Sprintf("channel %s unlocked", action.Target))

	case KindSetSlowmode:
		seconds := action.Seconds
		if seconds < 0 {
			seconds = 0
		}
		return e.mutateChannel(ctx, workspaceID, action, false, platform.ChannelPatch{SlowmodeSeconds: &seconds},
			fmt.Sprintf("slowmode on %s set to %ds", action.Target, seconds))

	default:
		return Outcome{Action: action, State: OutcomeUnknown}
	}
}

// mutateRole resolves a role by name, runs the hierarchy guard, then
// applies the patch. The guard refuses roles at or above the acting
// identity's highest role without issuing the mutation call: the platform
// would reject it anyway, and refusing locally gives a clearer message.
func (e *Engine) mutateRole(ctx context.Context, workspaceID string, action Action, patch platform.RolePatch, applied string) Outcome {
	role, err := e.findRole(ctx, workspaceID, action.Target)
	if err != nil {
		return Outcome{Action: action, State: OutcomeFailed, Detail: err.Error()}
	}
	if role == nil {
		return Outcome{Action: action, State: OutcomeNotFound}
	}

	highest, err := e.platform.OwnHighestRolePosition(ctx, workspaceID)
	if err != nil {
		return Outcome{Action: action, State: OutcomeFailed, Detail: err.Error()}
	}
	if role.Position >= highest {
		return Outcome{Action: action, State: OutcomeGuarded}
	}

	if _, err := e.platform.UpdateRole(ctx, workspaceID, role.ID, patch); err != nil {
		return Outcome{Action: action, State: OutcomeFailed, Detail: err.Error()}
	}
	return Outcome{Action: action, State: OutcomeApplied, Detail: applied}
}

// mutateChannel resolves a channel (or category) by name and applies the
// patch.
func (e *Engine) mutateChannel(ctx context.Context, workspaceID string, action Action, category bool, patch platform.ChannelPatch, applied string) Outcome {
	ch, err := e.findChannel(ctx, workspaceID, action.Target, category)
	if err != nil {
		return Outcome{Action: action, State: OutcomeFailed, Detail: err.Error()}
	}
	if ch == nil {
		return Outcome{Action: action, State: OutcomeNotFound}
	}

	if _, err := e.platform.UpdateChannel(ctx, ch.ID, patch); err != nil {
		return Outcome{Action: action, State: OutcomeFailed, Detail: err.Error()}
	}
	return Outcome{Action: action, State: OutcomeApplied, Detail: applied}
}

// createChannel creates a text channel under the named category.
func (e *Engine) createChannel(ctx context.Context, workspaceID string, action Action) Outcome {
	parent, err := e.findChannel(ctx, workspaceID, action.Category, true)
	if err != nil {
		return Outcome{Action: action, State: OutcomeFailed, Detail: err.Error()}
	}
	if parent == nil {
		return Outcome{
			Action: Action{Kind: action.Kind, Target: action.Category},
			State:  OutcomeNotFound,
		}
	}

	name := normalize.Channel(action.Target)
	created, err := e.platform.CreateChannel(ctx, workspaceID, platform.CreateChannelParams{
		Name:     name,
		Kind:     platform.ChannelKindText,
		ParentID: parent.ID,
	})
	if err != nil {
		return Outcome{Action: action, State: OutcomeFailed, Detail: err.Error()}
	}
	return Outcome{Action: action, State: OutcomeApplied,
		Detail: fmt.Sprintf("channel #%s created in %s", created.Name, action.Category)}
}

// setEveryoneOverride resolves a channel by name and writes an override on
// the implicit everyone target.
func (e *Engine) setEveryoneOverride(ctx context.Context, workspaceID string, action Action, ov perms.Override, applied string) Outcome {
	ch, err := e.findChannel(ctx, workspaceID, action.Target, false)
	if err != nil {
		return Outcome{Action: action, State: OutcomeFailed, Detail: err.Error()}
	}
	if ch == nil {
		return Outcome{Action: action, State: OutcomeNotFound}
	}

	if err := e.platform.SetOverride(ctx, ch.ID, ov); err != nil {
		return Outcome{Action: action, State: OutcomeFailed, Detail: err.Error()}
	}
	return Outcome{Action: action, State: OutcomeApplied, Detail: applied}
}

// findRole resolves a role by exact case-insensitive display name against
// the live tree. Returns (nil, nil) when no role matches.
func (e *Engine) findRole(ctx context.Context, workspaceID, name string) (*platform.Role, error) {
	roles, err := e.platform.Roles(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	for i := range roles {
		if strings.EqualFold(roles[i].Name, name) {
			return &roles[i], nil
		}
	}
	return nil, nil
}

// findChannel resolves a channel or category by exact case-insensitive
// name. With category true only categories match; otherwise only
// non-category channels match. Returns (nil, nil) when nothing matches.
func (e *Engine) findChannel(ctx context.Context, workspaceID, name string, category bool) (*platform.Channel, error) {
	channels, err := e.platform.Channels(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	for i := range channels {
		isCategory := channels[i].Kind == platform.ChannelKindCategory
		if isCategory != category {
			continue
		}
		if strings.EqualFold(channels[i].Name, name) {
			return &channels[i], nil
		}
	}
	return nil, nil
}

func intPtr(v int) *int { return &v }
