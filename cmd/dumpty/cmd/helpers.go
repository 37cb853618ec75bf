package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dasiths/PromptyDumpty/internal/core/agent"
)

// joinStrings concatenates string slices with ", " separator.
func joinStrings(ss []string) string {
	return strings.Join(ss, ", ")
}

// resolveProjectRoot resolves the --dir flag or falls back to cwd.
func resolveProjectRoot(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// resolveAgents parses a comma-separated agent name list against the
// registry.
func resolveAgents(reg *agent.Registry, flag string) ([]agent.Agent, error) {
	var agents []agent.Agent
	for _, name := range strings.Split(flag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ag, ok := reg.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown agent %q (known: %s)", name, joinStrings(reg.Names()))
		}
		agents = append(agents, ag)
	}
	if len(agents) == 0 {
		return nil, fmt.Errorf("no agents specified")
	}
	return agents, nil
}

// agentNames extracts machine names from a list of agents.
func agentNames(agents []agent.Agent) []string {
	names := make([]string, 0, len(agents))
	for _, ag := range agents {
		names = append(names, ag.Name())
	}
	return names
}
