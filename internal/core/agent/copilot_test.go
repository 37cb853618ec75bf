package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func copilotCtx(root string) HookContext {
	return HookContext{
		ProjectRoot: root,
		Package:     "my-pkg",
		InstallDirs: []string{
			filepath.Join(root, ".github", "prompts", "my-pkg"),
			filepath.Join(root, ".github", "my-pkg"),
		},
		Files: []string{".github/prompts/my-pkg/a.md", ".github/my-pkg/b.md"},
	}
}

func readSettings(t *testing.T, root string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, ".vscode", "settings.json"))
	if err != nil {
		t.Fatalf("reading settings.json: %v", err)
	}
	return string(data)
}

func TestCopilot_PostInstallWritesLocations(t *testing.T) {
	root := t.TempDir()
	ag := NewCopilot()

	if err := ag.PostInstall(copilotCtx(root)); err != nil {
		t.Fatalf("PostInstall error: %v", err)
	}

	content := readSettings(t, root)
	prompts := gjson.Get(content, `chat\.promptFilesLocations.\.github/prompts/my-pkg`)
	if !prompts.Exists() || !prompts.Bool() {
		t.Errorf("prompt location missing from settings: %s", content)
	}
	// Flat install dirs are advertised as instruction locations.
	instr := gjson.Get(content, `chat\.instructionsFilesLocations.\.github/my-pkg`)
	if !instr.Exists() {
		t.Errorf("flat install dir missing from instruction locations: %s", content)
	}
}

func TestCopilot_PostInstallIsIdempotent(t *testing.T) {
	root := t.TempDir()
	ag := NewCopilot()
	ctx := copilotCtx(root)

	if err := ag.PostInstall(ctx); err != nil {
		t.Fatalf("first PostInstall error: %v", err)
	}
	first := readSettings(t, root)

	if err := ag.PostInstall(ctx); err != nil {
		t.Fatalf("second PostInstall error: %v", err)
	}
	second := readSettings(t, root)

	if first != second {
		t.Errorf("settings changed on re-install:\nfirst:  %s\nsecond: %s", first, second)
	}
	if n := strings.Count(second, ".github/prompts/my-pkg"); n != 1 {
		t.Errorf("install dir recorded %d times, want 1", n)
	}
}

func TestCopilot_PostUninstallRemovesLocations(t *testing.T) {
	root := t.TempDir()
	ag := NewCopilot()
	ctx := copilotCtx(root)

	if err := ag.PostInstall(ctx); err != nil {
		t.Fatalf("PostInstall error: %v", err)
	}
	if err := ag.PostUninstall(ctx); err != nil {
		t.Fatalf("PostUninstall error: %v", err)
	}

	content := readSettings(t, root)
	if strings.Contains(content, "my-pkg") {
		t.Errorf("settings still reference the package after uninstall: %s", content)
	}
}

func TestCopilot_PreservesCommentsAndUnrelatedKeys(t *testing.T) {
	root := t.TempDir()
	settingsDir := filepath.Join(root, ".vscode")
	if err := os.MkdirAll(settingsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	existing := "{\n\t// keep me\n\t\"editor.tabSize\": 4\n}\n"
	if err := os.WriteFile(filepath.Join(settingsDir, "settings.json"), []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	ag := NewCopilot()
	if err := ag.PostInstall(copilotCtx(root)); err != nil {
		t.Fatalf("PostInstall error: %v", err)
	}

	content := readSettings(t, root)
	if !strings.Contains(content, "// keep me") {
		t.Errorf("comment was dropped: %s", content)
	}
	if !strings.Contains(content, "editor.tabSize") {
		t.Errorf("unrelated key was dropped: %s", content)
	}
}

func TestCopilot_MalformedSettingsTreatedAsEmpty(t *testing.T) {
	root := t.TempDir()
	settingsDir := filepath.Join(root, ".vscode")
	if err := os.MkdirAll(settingsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(settingsDir, "settings.json"), []byte("{{{{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	ag := NewCopilot()
	if err := ag.PostInstall(copilotCtx(root)); err != nil {
		t.Fatalf("PostInstall error: %v", err)
	}

	content := readSettings(t, root)
	if !gjson.Valid(content) {
		t.Errorf("settings not rewritten as well-formed JSON: %s", content)
	}
	if !strings.Contains(content, ".github/prompts/my-pkg") {
		t.Errorf("install dir missing after recovery: %s", content)
	}
}

func TestCopilot_UninstallWithNoSettingsFile(t *testing.T) {
	root := t.TempDir()
	ag := NewCopilot()

	// Missing optional state must not fail the hook.
	if err := ag.PostUninstall(copilotCtx(root)); err != nil {
		t.Fatalf("PostUninstall error: %v", err)
	}
}
