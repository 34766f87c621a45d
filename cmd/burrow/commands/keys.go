package commands

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lodgeworks/burrow/internal/printer"
)

var (
	keysWorkspace string
	keysJSON      bool
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the stored key map for a workspace",
	Long: `Show the logical key → remote id mappings recorded by previous builds.

The key map is the only durable record tying blueprint keys to remote
resources; resources missing from it can only be addressed by name.`,
	RunE: runKeys,
}

func init() {
	keysCmd.Flags().StringVarP(&keysWorkspace, "workspace", "w", "", "Target workspace id")
	keysCmd.Flags().BoolVar(&keysJSON, "json", false, "Print the raw key map document as JSON")
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// The keys command never touches the platform, so no token is needed.
	e, err := setupStore(keysWorkspace)
	if err != nil {
		return err
	}
	defer e.close()

	keys, err := e.store.Load(ctx, e.workspace)
	if err != nil {
		return err
	}

	if keysJSON {
		data, err := json.MarshalIndent(keys, "", "  ")
		if err != nil {
			return err
		}
		printer.Println(string(data))
		return nil
	}

	total := len(keys.Roles) + len(keys.Categories) + len(keys.Channels)
	if total == 0 {
		printer.Info("No keys recorded for workspace %s\n", e.workspace)
		return nil
	}

	printer.Info("Key map for workspace %s:\n\n", e.workspace)
	printSection("roles", keys.Roles)
	printSection("categories", keys.Categories)
	printSection("channels", keys.Channels)
	printer.Info("\n%d keys recorded\n", total)
	return nil
}

func printSection(title string, mapping map[string]string) {
	if len(mapping) == 0 {
		return
	}
	printer.Info("%s:\n", title)
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printer.Info("  %-24s %s\n", k, mapping[k])
	}
}
