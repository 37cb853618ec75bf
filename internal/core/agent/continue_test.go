package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func continueCtx(root string) HookContext {
	return HookContext{
		ProjectRoot: root,
		Package:     "my-pkg",
		InstallDirs: []string{
			filepath.Join(root, ".continue", "prompts", "my-pkg"),
			filepath.Join(root, ".continue", "project_rules", "my-pkg"),
		},
	}
}

func readContinueConfig(t *testing.T, root string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, ".continue", "config.json"))
	if err != nil {
		t.Fatalf("reading config.json: %v", err)
	}
	return string(data)
}

func TestContinue_PostInstallAddsPromptPaths(t *testing.T) {
	root := t.TempDir()
	ag := NewContinue()

	if err := ag.PostInstall(continueCtx(root)); err != nil {
		t.Fatalf("PostInstall error: %v", err)
	}

	content := readContinueConfig(t, root)
	if !gjson.Get(content, `promptPaths.\.continue/prompts/my-pkg`).Bool() {
		t.Errorf("prompt path missing: %s", content)
	}
	if !gjson.Get(content, `promptPaths.\.continue/project_rules/my-pkg`).Bool() {
		t.Errorf("project_rules path missing: %s", content)
	}
}

func TestContinue_AddRemoveRoundTrip(t *testing.T) {
	root := t.TempDir()
	ag := NewContinue()
	ctx := continueCtx(root)

	// Seed an unrelated key to prove read-modify-write behavior.
	if err := os.MkdirAll(filepath.Join(root, ".continue"), 0o755); err != nil {
		t.Fatal(err)
	}
	seed := `{"models":[{"title":"gpt"}]}`
	if err := os.WriteFile(filepath.Join(root, ".continue", "config.json"), []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ag.PostInstall(ctx); err != nil {
		t.Fatalf("PostInstall error: %v", err)
	}
	if err := ag.PostUninstall(ctx); err != nil {
		t.Fatalf("PostUninstall error: %v", err)
	}

	content := readContinueConfig(t, root)
	if gjson.Get(content, `promptPaths.\.continue/prompts/my-pkg`).Exists() {
		t.Errorf("prompt path still present after uninstall: %s", content)
	}
	if !gjson.Get(content, "models").Exists() {
		t.Errorf("unrelated key dropped: %s", content)
	}
}

func TestContinue_MalformedConfigTreatedAsEmpty(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".continue"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".continue", "config.json"), []byte("oops["), 0o644); err != nil {
		t.Fatal(err)
	}

	ag := NewContinue()
	if err := ag.PostInstall(continueCtx(root)); err != nil {
		t.Fatalf("PostInstall error: %v", err)
	}

	content := readContinueConfig(t, root)
	if !gjson.Valid(content) {
		t.Errorf("config not rewritten as valid JSON: %s", content)
	}
}
