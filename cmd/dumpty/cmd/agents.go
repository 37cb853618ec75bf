package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dasiths/PromptyDumpty/internal/core/agent"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List known agents and whether they are configured here",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := resolveProjectRoot(cmd)
		if err != nil {
			return err
		}

		for _, ag := range agent.Default().All() {
			marker := "[ ]"
			if ag.IsConfigured(projectRoot) {
				marker = "[x]"
			}
			fmt.Fprintf(os.Stdout, "%s %s (%s) -> %s\n", marker, ag.DisplayName(), ag.Name(), ag.Directory())
		}
		return nil
	},
}

func init() {
	agentsCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	rootCmd.AddCommand(agentsCmd)
}
