package agent

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// continueConfigPath is Continue's project-level configuration file.
const continueConfigPath = ".continue/config.json"

// Continue integrates with the Continue extension. Its rules group is
// remapped to project_rules on disk to keep packaged rules apart from the
// user's own .continue/rules folder. Hooks maintain a promptPaths object
// in .continue/config.json listing every install directory.
type Continue struct {
	Base
}

// NewContinue creates the Continue agent.
func NewContinue() *Continue {
	return &Continue{NewBase(
		"continue",
		"Continue",
		".continue",
		[]string{"prompts", "rules"},
		map[string]string{"rules": "project_rules"},
	)}
}

func (c *Continue) PostInstall(ctx HookContext) error {
	return c.updateConfig(ctx, true)
}

func (c *Continue) PostUninstall(ctx HookContext) error {
	return c.updateConfig(ctx, false)
}

// updateConfig adds or removes install directories in the promptPaths
// mapping. A missing or malformed config file starts over as empty; the
// result is always valid JSON.
func (c *Continue) updateConfig(ctx HookContext, add bool) error {
	if len(ctx.InstallDirs) == 0 {
		return nil
	}

	path := filepath.Join(ctx.ProjectRoot, filepath.FromSlash(continueConfigPath))
	content := "{}"
	if data, err := os.ReadFile(path); err == nil && gjson.ValidBytes(data) {
		content = string(data)
	}

	var err error
	for _, dir := range ctx.InstallDirs {
		rel := projectRelative(ctx.ProjectRoot, dir)
		keyPath := "promptPaths." + gjsonPathEscape(rel)
		if add {
			content, err = sjson.Set(content, keyPath, true)
		} else if gjson.Get(content, keyPath).Exists() {
			content, err = sjson.Delete(content, keyPath)
		}
		if err != nil {
			return err
		}
	}

	return writeFileAtomic(path, []byte(content))
}

// gjsonPathEscape escapes path separator characters in a literal map key.
func gjsonPathEscape(key string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`)
	return replacer.Replace(key)
}
