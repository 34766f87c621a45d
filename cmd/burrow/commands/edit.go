package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lodgeworks/burrow/internal/editor"
	"github.com/lodgeworks/burrow/internal/genai"
	"github.com/lodgeworks/burrow/internal/logging"
	"github.com/lodgeworks/burrow/internal/printer"
)

var (
	editWorkspace string
	editFile      string
	editPrompt    string
)

var editCmd = &cobra.Command{
	Use:   "edit [command ...]",
	Short: "Apply discrete edit actions to the live workspace",
	Long: `Apply edit actions against the live resource tree. Each action is
independent: one failure never stops the rest, and the result is one
outcome line per action.

Actions come from a JSON file, from constrained text commands given as
arguments, or are synthesized from a natural-language prompt by the
configured generation service. Targets are addressed by current display
name, not by blueprint key.

Examples:
  # Constrained text commands
  burrow edit --workspace 1201 "lock channel general" "set slowmode in help to 30"

  # Actions file
  burrow edit --workspace 1201 --file actions.json

  # Free-form prompt through the generator
  burrow edit --workspace 1201 --prompt "make the mod role orange and rename lounge to cafe"`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editWorkspace, "workspace", "w", "", "Target workspace id")
	editCmd.Flags().StringVarP(&editFile, "file", "f", "", "Edit actions file (JSON)")
	editCmd.Flags().StringVarP(&editPrompt, "prompt", "p", "", "Generate the actions from this prompt")
	editCmd.MarkFlagsMutuallyExclusive("file", "prompt")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := setup(editWorkspace)
	if err != nil {
		return err
	}
	defer e.close()

	actions, err := loadActions(ctx, e, args)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		return printer.Error(
			"no edit actions provided",
			"An edit needs actions from --file, --prompt, or text commands as arguments.",
			[]string{"Example:\n  burrow edit --workspace <id> \"lock channel general\""},
		)
	}

	log := logging.New("editor")
	engine := editor.NewEngine(e.platform, log)

	outcomes := engine.ApplyAll(ctx, e.workspace, actions)

	var summary printer.Summary
	applied := 0
	for _, o := range outcomes {
		summary.Line(o.Line())
		if o.State == editor.OutcomeApplied {
			applied++
		}
	}
	printer.Println(summary.Render())
	printer.Info("%d of %d actions applied\n", applied, len(outcomes))
	return nil
}

// loadActions collects actions from whichever source was given. Argument
// text goes through the constrained command grammar.
func loadActions(ctx context.Context, e *env, args []string) ([]editor.Action, error) {
	switch {
	case editFile != "":
		data, err := os.ReadFile(editFile)
		if err != nil {
			return nil, err
		}
		return editor.DecodeActions(data)

	case editPrompt != "":
		if !e.cfg.Generator.Enabled() {
			return nil, printer.Error(
				"no generation service configured",
				"Editing from a prompt needs a generator section in the configuration.",
				[]string{"Add generator.base_url and generator.model to burrow.yml, or pass text commands directly."},
			)
		}
		gen, err := genai.NewClient(e.cfg.Generator.BaseURL, e.cfg.Generator.APIKey(), e.cfg.Generator.Model)
		if err != nil {
			return nil, err
		}
		printer.Step("Generating edit actions from prompt...\n")
		return gen.GenerateActions(ctx, editPrompt)

	default:
		return editor.ParseCommands(strings.Join(args, "\n")), nil
	}
}
