package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/dasiths/PromptyDumpty/internal/core"
)

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show details for an installed package",
	Args:  cobra.ExactArgs(1),
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

		md := infoMarkdown(entry)

		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			fmt.Fprint(os.Stdout, md)
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			// Terminal detection can fail; fall back to raw markdown.
			fmt.Fprint(os.Stdout, md)
			return nil
		}
		rendered, err := r.Render(md)
		if err != nil {
			fmt.Fprint(os.Stdout, md)
			return nil
		}
		fmt.Fprint(os.Stdout, rendered)
		return nil
	},
}

// infoMarkdown formats a lock entry as a markdown summary.
func infoMarkdown(p *core.InstalledPackage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s v%s\n\n", p.Name, p.Version)
	fmt.Fprintf(&b, "- **Source:** %s (%s)\n", p.Source, p.SourceType)
	if p.Resolved != "" {
		fmt.Fprintf(&b, "- **Resolved:** %s\n", p.Resolved)
	}
	fmt.Fprintf(&b, "- **Installed:** %s\n", p.InstalledAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "- **Agents:** %s\n", joinStrings(p.InstalledFor))
	fmt.Fprintf(&b, "- **Manifest checksum:** %s\n", p.ManifestChecksum)

	for _, agName := range p.InstalledFor {
		files := p.Files[agName]
		if len(files) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## Files for %s\n\n", agName)
		for _, f := range files {
			fmt.Fprintf(&b, "- `%s` (%s)\n", f.Installed, f.Checksum)
		}
	}
	return b.String()
}

func init() {
	infoCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	infoCmd.Flags().Bool("plain", false, "Print raw markdown without terminal rendering")
	rootCmd.AddCommand(infoCmd)
}
