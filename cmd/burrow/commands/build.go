package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodgeworks/burrow/internal/builder"
	"github.com/lodgeworks/burrow/internal/genai"
	"github.com/lodgeworks/burrow/internal/logging"
	"github.com/lodgeworks/burrow/internal/printer"
	"github.com/lodgeworks/burrow/internal/statestore"
	"github.com/lodgeworks/burrow/pkg/blueprint"
)

var (
	buildWorkspace string
	buildFile      string
	buildPrompt    string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a workspace tree from a blueprint",
	Long: `Build roles, categories, channels and starter messages from a
declarative blueprint, recording logical key → remote id mappings in the
state store.

The blueprint comes from a file (JSON or YAML) or is synthesized from a
natural-language prompt by the configured generation service. Re-running
a build skips resources whose keys already resolve, so a failed build can
be resumed.

Examples:
  # Build from a blueprint file
  burrow build --workspace 1201 --file community.yml

  # Generate the blueprint from a prompt
  burrow build --workspace 1201 --prompt "a cozy book club server"`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildWorkspace, "workspace", "w", "", "Target workspace id")
	buildCmd.Flags().StringVarP(&buildFile, "file", "f", "", "Blueprint file (JSON or YAML)")
	buildCmd.Flags().StringVarP(&buildPrompt, "prompt", "p", "", "Generate the blueprint from this prompt")
	buildCmd.MarkFlagsMutuallyExclusive("file", "prompt")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if buildFile == "" && buildPrompt == "" {
		return printer.Error(
			"no blueprint source provided",
			"A build needs either a blueprint file or a generation prompt.",
			[]string{
				"Build from a file:\n  burrow build --workspace <id> --file blueprint.yml",
				"Generate from a prompt:\n  burrow build --workspace <id> --prompt \"describe the workspace\"",
			},
		)
	}

	e, err := setup(buildWorkspace)
	if err != nil {
		return err
	}
	defer e.close()

	bp, err := loadBlueprint(ctx, e)
	if err != nil {
		return err
	}

	log := logging.New("builder")
	engine := builder.NewEngine(e.platform, e.store, log)

	printer.Step("Building %q in workspace %s...\n", bp.Name, e.workspace)
	result, buildErr := engine.Build(ctx, e.workspace, bp)

	if result != nil {
		printer.Println(renderSteps(result.Steps))
	}

	if buildErr != nil {
		if errors.Is(buildErr, statestore.ErrLockHeld) {
			return printer.Error(
				"workspace is locked",
				fmt.Sprintf("Another build is running for workspace %s.", e.workspace),
				[]string{"Wait for it to finish, then retry. Stale locks expire on their own."},
			)
		}
		return printer.Error(
			"build failed",
			fmt.Sprintf("%v\n\nResources created before the failure are kept, and their keys are recorded.", buildErr),
			[]string{"Fix the cause and re-run the same build; completed keys are skipped."},
		)
	}

	printer.Success("Build complete: %d roles, %d categories, %d channels recorded\n",
		len(result.Keys.Roles), len(result.Keys.Categories), len(result.Keys.Channels))
	return nil
}

// loadBlueprint reads the blueprint from the file flag or synthesizes it
// from the prompt flag.
func loadBlueprint(ctx context.Context, e *env) (*blueprint.Blueprint, error) {
	if buildFile != "" {
		return blueprint.LoadFile(buildFile)
	}

	if !e.cfg.Generator.Enabled() {
		return nil, printer.Error(
			"no generation service configured",
			"Building from a prompt needs a generator section in the configuration.",
			[]string{"Add generator.base_url and generator.model to burrow.yml, or build from a file instead."},
		)
	}

	gen, err := genai.NewClient(e.cfg.Generator.BaseURL, e.cfg.Generator.APIKey(), e.cfg.Generator.Model)
	if err != nil {
		return nil, err
	}
	printer.Step("Generating blueprint from prompt...\n")
	return gen.GenerateBlueprint(ctx, buildPrompt)
}

// renderSteps turns build steps into the bounded glyph summary.
func renderSteps(steps []builder.Step) string {
	var summary printer.Summary
	for _, s := range steps {
		switch s.Status {
		case builder.StepOK:
			summary.Ok(s.Text)
		case builder.StepSkipped:
			summary.Skip(s.Text)
		case builder.StepWarned:
			summary.Warn(s.Text)
		}
	}
	return summary.Render()
}
