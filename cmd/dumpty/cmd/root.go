package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dumpty",
	Short: "Install and manage AI agent artifact packages",
	Long: `Dumpty installs packages of AI agent artifacts (prompts, rules,
instructions, chat modes) into the agent directories of a project.

Packages declare their artifacts per agent in a dumpty.package.yaml
manifest. Installed packages are pinned in a dumpty.lock file so they
can be updated or removed later.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dumpty %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
