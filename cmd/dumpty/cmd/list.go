package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dasiths/PromptyDumpty/internal/core"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := resolveProjectRoot(cmd)
		if err != nil {
			return err
		}

		lf, err := core.ReadLockFile(projectRoot)
		if err != nil {
			return err
		}
		if lf == nil || len(lf.Packages) == 0 {
			fmt.Fprintln(os.Stdout, "No packages installed.")
			return nil
		}

		for _, p := range lf.Packages {
			fmt.Fprintf(os.Stdout, "%s v%s\n", p.Name, p.Version)
			fmt.Fprintf(os.Stdout, "  Source: %s (%s)\n", p.Source, p.SourceType)
			fmt.Fprintf(os.Stdout, "  Agents: %s\n", joinStrings(p.InstalledFor))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	rootCmd.AddCommand(listCmd)
}
