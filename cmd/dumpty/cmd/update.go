package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dasiths/PromptyDumpty/internal/core"
	"github.com/dasiths/PromptyDumpty/internal/core/agent"
)

var updateCmd = &cobra.Command{
	Use:   "update [package]",
	Short: "Update installed package(s) to a newer version",
	Long: `Update one or all installed packages by re-resolving their source.

Version tags at the source are compared as semantic versions; without
--version the highest tag wins. Sources without version tags (local
directories, untagged repositories) cannot be updated this way.

Either a package name or --all is required.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := resolveProjectRoot(cmd)
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")
		requested, _ := cmd.Flags().GetString("version")

		if len(args) == 0 && !all {
			return fmt.Errorf("specify a package name or use --all\n\nUsage:\n  dumpty update <package>\n  dumpty update --all")
		}
		if all && requested != "" {
			return fmt.Errorf("--version requires a single package name")
		}

		lf, err := core.ReadLockFile(projectRoot)
		if err != nil {
			return err
		}
		if lf == nil || len(lf.Packages) == 0 {
			fmt.Fprintln(os.Stdout, "No packages installed.")
			return nil
		}

		var names []string
		if all {
			for _, p := range lf.Packages {
				names = append(names, p.Name)
			}
		} else {
			names = []string{args[0]}
		}

		u := core.NewUpdater(projectRoot, agent.Default())
		var failed int
		for _, name := range names {
			res, err := u.Update(cmd.Context(), name, requested)
			if err != nil {
				if errors.Is(err, core.ErrNotInstalled) {
					return fmt.Errorf("package %q is not installed", name)
				}
				if !all {
					return err
				}
				fmt.Fprintf(os.Stderr, "Error: %s: %v\n", name, err)
				failed++
				continue
			}

			switch res.Status {
			case core.StatusUpdated:
				fmt.Fprintf(os.Stdout, "Update available for %s: v%s -> v%s\n", res.Name, res.From, res.To)
				fmt.Fprintf(os.Stdout, "Updated to v%s\n", res.To)
			case core.StatusUpToDate:
				fmt.Fprintf(os.Stdout, "%s: Already up to date (v%s)\n", res.Name, res.From)
			case core.StatusNoTags:
				fmt.Fprintf(os.Stdout, "%s: No version tags found\n", res.Name)
			case core.StatusVersionNotFound:
				fmt.Fprintf(os.Stdout, "%s: version %s not found\n", res.Name, requested)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d package(s) failed to update", failed)
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	updateCmd.Flags().Bool("all", false, "Update every package in the lock file")
	updateCmd.Flags().String("version", "", "Update to a specific version tag instead of the latest")
	rootCmd.AddCommand(updateCmd)
}
