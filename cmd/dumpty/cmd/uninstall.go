package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dasiths/PromptyDumpty/internal/core"
	"github.com/dasiths/PromptyDumpty/internal/core/agent"
	"github.com/dasiths/PromptyDumpty/internal/tui"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <package>",
	Short: "Remove an installed package",
	Long: `Remove a package from the project: its artifact files under every
agent it was installed for, the agent configuration entries its install
added, and its lock file entry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := resolveProjectRoot(cmd)
		if err != nil {
			return err
		}
		name := args[0]

		lf, err := core.ReadLockFile(projectRoot)
		if err != nil {
			return err
		}
		var entry *core.InstalledPackage
		if lf != nil {
			entry, _ = lf.Package(name)
		}
		if entry == nil {
			return fmt.Errorf("package %q is not installed", name)
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			ok, err := tui.Confirm(fmt.Sprintf("Remove %s v%s?", entry.Name, entry.Version))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(os.Stdout, "Aborted.")
				return nil
			}
		}

		reg := agent.Default()
		installer := core.NewInstaller(projectRoot)
		for _, agName := range entry.InstalledFor {
			ag, ok := reg.Get(agName)
			if !ok {
				fmt.Fprintf(os.Stderr, "Warning: unknown agent %q in lock file, skipping\n", agName)
				continue
			}
			if err := installer.UninstallPackage(ag, name); err != nil {
				return fmt.Errorf("uninstalling from %s: %w", agName, err)
			}
		}

		if err := core.RemoveLockEntry(projectRoot, name); err != nil {
			return fmt.Errorf("updating lock file: %w", err)
		}

		fmt.Fprintf(os.Stdout, "Removed %s\n", name)
		return nil
	},
}

func init() {
	uninstallCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	uninstallCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(uninstallCmd)
}
