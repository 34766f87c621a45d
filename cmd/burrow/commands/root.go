package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// configPath is shared by all subcommands.
var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "burrow",
	Short: "Burrow - declarative chat workspace provisioning",
	Long: `Burrow provisions and edits permissioned workspace trees on a remote
chat platform: roles, categories, channels, permission overrides and
starter messages.

Builds are driven by a declarative blueprint (file or generated from a
prompt) and recorded in a Redis-backed key map, so re-running a build
picks up where a failed run stopped. Edits are discrete, independently
applied actions addressed by current display name.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "burrow.yml", "Path to the burrow configuration file")
}
