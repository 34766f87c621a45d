// Package builder turns a validated blueprint into an ordered sequence of
// remote platform mutations: roles, best-effort role positioning,
// categories with resolved overrides, channels, then starter messages.
// Results are recorded in the state store as the build progresses.
package builder

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lodgeworks/burrow/internal/normalize"
	"github.com/lodgeworks/burrow/internal/perms"
	"github.com/lodgeworks/burrow/internal/platform"
	"github.com/lodgeworks/burrow/internal/statestore"
	"github.com/lodgeworks/burrow/pkg/blueprint"
)

// StepStatus classifies one build step's outcome for the summary.
type StepStatus string

const (
	// StepOK indicates the step's remote mutation succeeded.
	StepOK StepStatus = "ok"

	// StepSkipped indicates the step was not attempted: the logical key
	// already resolved from a prior run, or a message target did not
	// resolve.
	StepSkipped StepStatus = "skipped"

	// StepWarned indicates a non-fatal failure (role repositioning).
	StepWarned StepStatus = "warned"
)

// Step is one line of build progress.
type Step struct {
	Status StepStatus
	Text   string
}

// Result reports what a build run did. Keys holds only the mappings
// recorded by this run; the state store holds the merged document.
type Result struct {
	Keys  *statestore.KeyMap
	Steps []Step
}

func (r *Result) step(status StepStatus, format string, a ...any) {
	r.Steps = append(r.Steps, Step{Status: status, Text: fmt.Sprintf(format, a...)})
}

// Engine is the blueprint build engine. It processes one build at a time;
// the workspace advisory lock serializes concurrent invocations.
type Engine struct {
	platform platform.Client
	store    *statestore.Store
	log      zerolog.Logger
}

// NewEngine creates a build engine.
func NewEngine(p platform.Client, s *statestore.Store, log zerolog.Logger) *Engine {
	return &Engine{platform: p, store: s, log: log}
}

// Build applies the blueprint to the workspace in strict declaration order.
//
// The run is idempotent against the state store: any role, category or
// channel whose key already resolves from a prior run is skipped rather
// than recreated. The key map is persisted incrementally (after the role
// phase and after each category), so a mid-build failure leaves the store
// reflecting progress up to the failure. The first fatal remote error
// aborts the remaining steps; role repositioning alone is non-fatal.
//
// The returned Result carries whatever steps completed, even on error.
func (e *Engine) Build(ctx context.Context, workspaceID string, bp *blueprint.Blueprint) (*Result, error) {
	if err := e.store.AcquireLock(ctx, workspaceID); err != nil {
		return nil, err
	}
	defer func() {
		if err := e.store.ReleaseLock(ctx, workspaceID); err != nil {
			e.log.Warn().Err(err).Str("workspace", workspaceID).Msg("failed to release build lock")
		}
	}()

	state, err := e.store.Load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	result := &Result{Keys: statestore.NewKeyMap()}
	e.log.Info().Str("workspace", workspaceID).Str("blueprint", bp.Name).
		Int("roles", len(bp.Roles)).Int("categories", len(bp.Categories)).
		Msg("starting build")

	// Phase 1: roles in declared order.
	created, err := e.buildRoles(ctx, workspaceID, bp, state, result)
	if err != nil {
		e.persist(ctx, workspaceID, state)
		return result, err
	}
	e.persist(ctx, workspaceID, state)

	// Phase 2: best-effort hierarchy positioning. Cosmetic, never fatal.
	e.positionRoles(ctx, workspaceID, bp, state, created, result)

	// Phase 3: categories and their channels, in declared order.
	kindByID := make(map[string]platform.ChannelKind)
	for i := range bp.Categories {
		if err := e.buildCategory(ctx, workspaceID, &bp.Categories[i], state, kindByID, result); err != nil {
			e.persist(ctx, workspaceID, state)
			return result, err
		}
		e.persist(ctx, workspaceID, state)
	}

	// Phase 4: starter messages.
	if err := e.sendMessages(ctx, workspaceID, bp, state, kindByID, result); err != nil {
		return result, err
	}

	// Phase 5: final persistence of the merged key map.
	if err := e.store.Save(ctx, workspaceID, state); err != nil {
		return result, err
	}

	e.log.Info().Str("workspace", workspaceID).Int("steps", len(result.Steps)).Msg("build complete")
	return result, nil
}

// buildRoles creates the declared roles, recording key→id as it goes.
// Returns the set of role keys created by this run (not skipped), which is
// what the positioning phase may move.
func (e *Engine) buildRoles(ctx context.Context, workspaceID string, bp *blueprint.Blueprint, state *statestore.KeyMap, result *Result) (map[string]bool, error) {
	created := make(map[string]bool, len(bp.Roles))
	for i := range bp.Roles {
		spec := &bp.Roles[i]
		// Skip keys that resolved from a prior run. A key repeated within
		// this blueprint is created again and overwrites the mapping, so
		// the key map keeps the most recent creation only.
		_, dup := result.Keys.Roles[spec.Key]
		if id, ok := state.Roles[spec.Key]; ok && !dup {
			result.Keys.Roles[spec.Key] = id
			result.step(StepSkipped, "role %s already exists (key %s)", spec.Name, spec.Key)
			continue
		}

		role, err := e.platform.CreateRole(ctx, workspaceID, platform.CreateRoleParams{
			Name:        spec.Name,
			Color:       parseColor(spec.Color),
			Permissions: perms.Pack(spec.PermPack),
			Hoist:       spec.Hoist,
			Mentionable: spec.Mentionable,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create role %q: %w", spec.Name, err)
		}

		state.Roles[spec.Key] = role.ID
		result.Keys.Roles[spec.Key] = role.ID
		created[spec.Key] = true
		result.step(StepOK, "role %s created", spec.Name)
		e.log.Debug().Str("key", spec.Key).Str("id", role.ID).Msg("role created")
	}
	return created, nil
}

// positionRoles computes a descending position ladder starting just below
// the acting identity's highest role and pushes one batched reposition
// request. Any failure here is logged and ignored.
func (e *Engine) positionRoles(ctx context.Context, workspaceID string, bp *blueprint.Blueprint, state *statestore.KeyMap, created map[string]bool, result *Result) {
	if len(created) == 0 {
		return
	}

	highest, err := e.platform.OwnHighestRolePosition(ctx, workspaceID)
	if err != nil {
		e.log.Warn().Err(err).Msg("role positioning skipped: cannot determine own highest role")
		result.step(StepWarned, "role positioning skipped: %v", err)
		return
	}

	moves := make([]platform.RoleMove, 0, len(created))
	next := highest - 1
	for i := range bp.Roles {
		key := bp.Roles[i].Key
		if !created[key] || next < 1 {
			continue
		}
		moves = append(moves, platform.RoleMove{RoleID: state.Roles[key], Position: next})
		next--
	}

	if err := e.platform.RepositionRoles(ctx, workspaceID, moves); err != nil {
		e.log.Warn().Err(err).Msg("role positioning failed")
		result.step(StepWarned, "role positioning failed: %v", err)
		return
	}
	result.step(StepOK, "%d roles positioned", len(moves))
}

// buildCategory creates one category with its resolved overrides, then its
// channels in declared order.
func (e *Engine) buildCategory(ctx context.Context, workspaceID string, spec *blueprint.CategorySpec, state *statestore.KeyMap, kindByID map[string]platform.ChannelKind, result *Result) error {
	everyoneID := platform.EveryoneRoleID(workspaceID)

	_, dup := result.Keys.Categories[spec.Key]
	categoryID, ok := state.Categories[spec.Key]
	if ok && !dup {
		result.Keys.Categories[spec.Key] = categoryID
		result.step(StepSkipped, "category %s already exists (key %s)", spec.Name, spec.Key)
	} else {
		cat, err := e.platform.CreateChannel(ctx, workspaceID, platform.CreateChannelParams{
			Name:      spec.Name,
			Kind:      platform.ChannelKindCategory,
			Overrides: perms.ResolveOverrides(spec.Overrides, state.Roles, everyoneID),
		})
		if err != nil {
			return fmt.Errorf("failed to create category %q: %w", spec.Name, err)
		}
		categoryID = cat.ID
		state.Categories[spec.Key] = categoryID
		result.Keys.Categories[spec.Key] = categoryID
		result.step(StepOK, "category %s created", spec.Name)
		e.log.Debug().Str("key", spec.Key).Str("id", categoryID).Msg("category created")
	}

	for i := range spec.Channels {
		ch := &spec.Channels[i]
		_, chDup := result.Keys.Channels[ch.Key]
		if id, ok := state.Channels[ch.Key]; ok && !chDup {
			result.Keys.Channels[ch.Key] = id
			result.step(StepSkipped, "channel %s already exists (key %s)", ch.Name, ch.Key)
			continue
		}

		name := normalize.Channel(ch.Name)
		createdCh, err := e.platform.CreateChannel(ctx, workspaceID, platform.CreateChannelParams{
			Name:            name,
			Kind:            platform.ChannelKind(ch.Kind),
			ParentID:        categoryID,
			Topic:           ch.Topic,
			SlowmodeSeconds: ch.SlowmodeSeconds,
			Overrides:       perms.ResolveOverrides(ch.Overrides, state.Roles, everyoneID),
		})
		if err != nil {
			return fmt.Errorf("failed to create channel %q: %w", name, err)
		}

		state.Channels[ch.Key] = createdCh.ID
		result.Keys.Channels[ch.Key] = createdCh.ID
		kindByID[createdCh.ID] = createdCh.Kind
		result.step(StepOK, "channel #%s created", name)
		e.log.Debug().Str("key", ch.Key).Str("id", createdCh.ID).Msg("channel created")
	}
	return nil
}

// sendMessages posts the starter messages. A channelKey that does not
// resolve, or that resolves to a non-message-capable channel, is skipped
// silently; a failed send is fatal.
func (e *Engine) sendMessages(ctx context.Context, workspaceID string, bp *blueprint.Blueprint, state *statestore.KeyMap, kindByID map[string]platform.ChannelKind, result *Result) error {
	var live map[string]platform.ChannelKind

	for i := range bp.Messages {
		spec := &bp.Messages[i]
		channelID, ok := state.Channels[spec.ChannelKey]
		if !ok {
			result.step(StepSkipped, "message skipped: channel key %s not found", spec.ChannelKey)
			continue
		}

		kind, known := kindByID[channelID]
		if !known {
			// Channel from a prior run: consult the live tree once.
			if live == nil {
				channels, err := e.platform.Channels(ctx, workspaceID)
				if err != nil {
					return fmt.Errorf("failed to list channels: %w", err)
				}
				live = make(map[string]platform.ChannelKind, len(channels))
				for _, c := range channels {
					live[c.ID] = c.Kind
				}
			}
			kind, known = live[channelID]
		}
		if !known || !kind.MessageCapable() {
			result.step(StepSkipped, "message skipped: channel key %s is not message-capable", spec.ChannelKey)
			continue
		}

		if err := e.platform.SendMessage(ctx, channelID, buildMessage(spec)); err != nil {
			return fmt.Errorf("failed to send message to channel key %q: %w", spec.ChannelKey, err)
		}
		result.step(StepOK, "message posted to channel key %s", spec.ChannelKey)
	}
	return nil
}

// persist writes the merged key map, logging rather than masking any error:
// the caller is usually already unwinding a more important failure.
func (e *Engine) persist(ctx context.Context, workspaceID string, state *statestore.KeyMap) {
	if err := e.store.Save(ctx, workspaceID, state); err != nil {
		e.log.Error().Err(err).Str("workspace", workspaceID).Msg("failed to persist key map")
	}
}

func buildMessage(spec *blueprint.MessageSpec) platform.Message {
	if spec.Kind == blueprint.MessageKindEmbed {
		return platform.Message{Embed: &platform.Embed{
			Title:       spec.Title,
			Description: spec.Content,
			Color:       parseColor(spec.Color),
		}}
	}
	return platform.Message{Content: spec.Content}
}

// parseColor converts "#rrggbb" to its integer value. Malformed input is
// caught by blueprint validation; anything unparsable here maps to 0.
func parseColor(hex string) int {
	trimmed := strings.TrimPrefix(hex, "#")
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}
