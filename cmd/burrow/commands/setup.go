package commands

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lodgeworks/burrow/internal/config"
	"github.com/lodgeworks/burrow/internal/platform"
	"github.com/lodgeworks/burrow/internal/statestore"
)

// env holds the wired collaborators every subcommand needs.
type env struct {
	cfg       *config.Config
	workspace string
	store     *statestore.Store
	platform  platform.Client
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
}

// setupStore loads configuration, resolves the target workspace and wires
// the state store. The workspace flag wins over the config default; one of
// the two must be set.
func setupStore(workspaceFlag string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	workspace := workspaceFlag
	if workspace == "" {
		workspace = cfg.Workspace
	}
	if workspace == "" {
		return nil, fmt.Errorf("no workspace specified: pass --workspace or set one in %s", configPath)
	}

	store := statestore.NewStore(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return &env{cfg: cfg, workspace: workspace, store: store}, nil
}

// setup additionally wires the platform client, which needs the bot token.
func setup(workspaceFlag string) (*env, error) {
	e, err := setupStore(workspaceFlag)
	if err != nil {
		return nil, err
	}

	token, err := e.cfg.Platform.Token()
	if err != nil {
		e.close()
		return nil, err
	}

	rest, err := platform.NewREST(e.cfg.Platform.BaseURL, token)
	if err != nil {
		e.close()
		return nil, err
	}
	e.platform = rest
	return e, nil
}
