package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `name: demo-pkg
version: 1.2.0
description: Demo prompts for testing
author: acme
agents:
  copilot:
    artifacts:
      - name: greeting
        file: prompts/hello.md
        installed_path: hello.prompt.md
        group: prompts
      - file: docs/notes.md
        installed_path: NOTES.md
  claude:
    artifacts:
      - file: prompts/hello.md
        installed_path: hello.md
        group: commands
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadManifest(t *testing.T) {
	dir := writeManifest(t, sampleManifest)

	m, sum, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Name != "demo-pkg" || m.Version != "1.2.0" {
		t.Errorf("manifest = %+v", m)
	}
	if !strings.HasPrefix(sum, "sha256:") {
		t.Errorf("checksum = %q, want sha256: prefix", sum)
	}

	want := []string{"claude", "copilot"}
	got := m.AgentNames()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("AgentNames = %v, want %v", got, want)
	}

	files := m.ArtifactFiles("copilot", dir)
	if len(files) != 2 {
		t.Fatalf("ArtifactFiles = %d entries, want 2", len(files))
	}
	if files[0].Source != filepath.Join(dir, "prompts", "hello.md") {
		t.Errorf("source = %q", files[0].Source)
	}
	if files[0].Declared != "prompts/hello.md" {
		t.Errorf("declared = %q", files[0].Declared)
	}
	if files[0].InstalledPath != "hello.prompt.md" || files[0].Group != "prompts" {
		t.Errorf("artifact = %+v", files[0])
	}
	if files[1].Group != "" {
		t.Errorf("flat artifact has group %q", files[1].Group)
	}

	if got := m.ArtifactFiles("cursor", dir); got != nil {
		t.Errorf("ArtifactFiles for undeclared agent = %v, want nil", got)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing name", "version: 1.0.0\n", "missing package name"},
		{"missing version", "name: x\n", "missing package version"},
		{
			"missing file",
			"name: x\nversion: 1.0.0\nagents:\n  copilot:\n    artifacts:\n      - installed_path: a.md\n",
			"missing file",
		},
		{
			"missing installed_path",
			"name: x\nversion: 1.0.0\nagents:\n  copilot:\n    artifacts:\n      - file: a.md\n",
			"missing installed_path",
		},
		{"not yaml", "{{{\n", "parsing package manifest"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeManifest(t, tc.content)
			_, _, err := LoadManifest(dir)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, _, err := LoadManifest(t.TempDir()); err == nil {
		t.Error("expected error for a directory without a manifest")
	}
}
