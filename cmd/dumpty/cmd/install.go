package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dasiths/PromptyDumpty/internal/core"
	"github.com/dasiths/PromptyDumpty/internal/core/agent"
	"github.com/dasiths/PromptyDumpty/internal/tui"
)

var installCmd = &cobra.Command{
	Use:   "install <source>",
	Short: "Install a package from a git repository or local path",
	Long: `Install a package of agent artifacts from a source.

Sources can be:
  https://github.com/owner/repo          Git repository (default branch)
  https://github.com/owner/repo@v1.2.0   Git repository at a version tag
  git@host:owner/repo.git                SSH clone URL
  ./local/path                           Local directory

The package's dumpty.package.yaml manifest declares artifacts per agent.
By default artifacts are installed for every agent that is both declared
in the manifest and detected in the project. Use --agents to choose
explicitly, or --pick for an interactive selection.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := resolveProjectRoot(cmd)
		if err != nil {
			return err
		}

		ref, err := core.ParseSourceRef(args[0])
		if err != nil {
			return fmt.Errorf("invalid source: %w", err)
		}

		src := core.OpenSource(ref)
		pkgDir, resolved, cleanup, err := src.Download(cmd.Context(), ref.Version)
		if err != nil {
			return err
		}
		defer cleanup()

		m, checksum, err := core.LoadManifest(pkgDir)
		if err != nil {
			return err
		}

		reg := agent.Default()
		targets, err := selectAgents(cmd, reg, m, projectRoot)
		if err != nil {
			return err
		}

		version := strings.TrimPrefix(ref.Version, "v")
		if version == "" {
			version = m.Version
		}

		installer := core.NewInstaller(projectRoot)
		entry := core.InstalledPackage{
			Name:             m.Name,
			Version:          version,
			Source:           ref.URL,
			SourceType:       ref.Kind,
			Resolved:         resolved,
			InstalledAt:      time.Now().UTC(),
			InstalledFor:     agentNames(targets),
			Files:            make(map[string][]core.InstalledFile),
			ManifestChecksum: checksum,
		}

		for _, ag := range targets {
			files, err := installer.InstallPackage(m.ArtifactFiles(ag.Name(), pkgDir), ag, m.Name)
			if err != nil {
				return fmt.Errorf("installing for %s: %w", ag.Name(), err)
			}
			entry.Files[ag.Name()] = files
		}

		if err := core.AddOrUpdateLockEntry(projectRoot, entry); err != nil {
			return fmt.Errorf("updating lock file: %w", err)
		}

		displays := make([]string, 0, len(targets))
		for _, ag := range targets {
			displays = append(displays, ag.DisplayName())
		}
		fmt.Fprintf(os.Stdout, "Installed %s v%s\n", m.Name, version)
		fmt.Fprintf(os.Stdout, "  Agents: %s\n", joinStrings(displays))
		return nil
	},
}

// selectAgents decides which agents to install for: the --agents flag wins,
// then --pick, then every manifest agent detected in the project.
func selectAgents(cmd *cobra.Command, reg *agent.Registry, m *core.Manifest, projectRoot string) ([]agent.Agent, error) {
	manifestAgents := m.AgentNames()
	if len(manifestAgents) == 0 {
		return nil, fmt.Errorf("package %s declares no agent artifacts", m.Name)
	}

	if flag, _ := cmd.Flags().GetString("agents"); flag != "" {
		agents, err := resolveAgents(reg, flag)
		if err != nil {
			return nil, err
		}
		for _, ag := range agents {
			if _, ok := m.Agents[ag.Name()]; !ok {
				return nil, fmt.Errorf("package %s declares no artifacts for agent %q (declares: %s)",
					m.Name, ag.Name(), joinStrings(manifestAgents))
			}
		}
		return agents, nil
	}

	if pick, _ := cmd.Flags().GetBool("pick"); pick {
		var choices []tui.AgentChoice
		for _, name := range manifestAgents {
			ag, ok := reg.Get(name)
			if !ok {
				continue
			}
			choices = append(choices, tui.AgentChoice{
				Name:        ag.Name(),
				DisplayName: ag.DisplayName(),
				Configured:  ag.IsConfigured(projectRoot),
			})
		}
		names, err := tui.PickAgents("Install "+m.Name+" for:", choices)
		if err != nil {
			return nil, err
		}
		return resolveAgents(reg, joinStrings(names))
	}

	var detected []agent.Agent
	for _, name := range manifestAgents {
		ag, ok := reg.Get(name)
		if !ok {
			continue
		}
		if ag.IsConfigured(projectRoot) {
			detected = append(detected, ag)
		}
	}
	if len(detected) == 0 {
		return nil, fmt.Errorf("no configured agents found for %s (declares: %s); use --agents or --pick",
			m.Name, joinStrings(manifestAgents))
	}
	return detected, nil
}

func init() {
	installCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	installCmd.Flags().String("agents", "", "Comma-separated agent names to install for (e.g. copilot,claude)")
	installCmd.Flags().Bool("pick", false, "Pick agents interactively")
	rootCmd.AddCommand(installCmd)
}
