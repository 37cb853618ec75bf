package agent

import (
	"path/filepath"
	"strings"
)

// vscodeSettingsPath is the workspace settings file Copilot reads its
// file-location maps from.
const vscodeSettingsPath = ".vscode/settings.json"

// copilotLocationKeys maps an on-disk group folder to the VS Code settings
// key that advertises directories of that kind to Copilot.
var copilotLocationKeys = map[string]string{
	"prompts":      "chat.promptFilesLocations",
	"instructions": "chat.instructionsFilesLocations",
	"chatmodes":    "chat.modeFilesLocations",
}

// Copilot integrates with GitHub Copilot. Artifacts land under .github;
// install directories are additionally advertised to VS Code through the
// chat.*FilesLocations maps in .vscode/settings.json so Copilot picks the
// files up without manual configuration.
type Copilot struct {
	Base
}

// NewCopilot creates the GitHub Copilot agent.
func NewCopilot() *Copilot {
	return &Copilot{NewBase(
		"copilot",
		"GitHub Copilot",
		".github",
		[]string{"prompts", "instructions", "chat-modes"},
		map[string]string{"chat-modes": "chatmodes"},
	)}
}

// PostInstall records every install directory in the matching VS Code
// location map. Re-adding a directory that is already present is a no-op.
func (c *Copilot) PostInstall(ctx HookContext) error {
	return c.updateSettings(ctx, true)
}

// PostUninstall removes the directories added by PostInstall.
func (c *Copilot) PostUninstall(ctx HookContext) error {
	return c.updateSettings(ctx, false)
}

func (c *Copilot) updateSettings(ctx HookContext, add bool) error {
	if len(ctx.InstallDirs) == 0 {
		return nil
	}

	path := filepath.Join(ctx.ProjectRoot, filepath.FromSlash(vscodeSettingsPath))
	root := readJSONC(path)

	for _, dir := range ctx.InstallDirs {
		rel := projectRelative(ctx.ProjectRoot, dir)
		key := c.locationKey(rel)
		if add {
			if err := jsoncSet(root, key, rel, "true"); err != nil {
				return err
			}
		} else {
			if err := jsoncRemove(root, key, rel); err != nil {
				return err
			}
		}
	}

	return writeJSONC(path, root)
}

// locationKey picks the settings map for an install directory from the
// group folder it sits under (.github/<folder>/<package>). Flat installs
// count as instruction locations.
func (c *Copilot) locationKey(relDir string) string {
	parts := strings.Split(relDir, "/")
	if len(parts) >= 3 {
		if key, ok := copilotLocationKeys[parts[1]]; ok {
			return key
		}
	}
	return copilotLocationKeys["instructions"]
}
