package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest is the parsed dumpty.package.yaml describing a package and the
// artifacts it installs per agent.
type Manifest struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	License     string `yaml:"license,omitempty"`

	Agents map[string]AgentArtifacts `yaml:"agents"`
}

// AgentArtifacts lists the artifacts declared for one agent.
type AgentArtifacts struct {
	Artifacts []Artifact `yaml:"artifacts"`
}

// Artifact is one manifest entry: a source file inside the package and
// where it installs, optionally under an artifact group.
type Artifact struct {
	Name          string `yaml:"name,omitempty"`
	Description   string `yaml:"description,omitempty"`
	File          string `yaml:"file"`
	InstalledPath string `yaml:"installed_path"`
	Group         string `yaml:"group,omitempty"`
}

// LoadManifest parses the manifest in pkgDir and returns it together with
// the sha256 checksum of its raw bytes.
func LoadManifest(pkgDir string) (*Manifest, string, error) {
	path := filepath.Join(pkgDir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading package manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, "", fmt.Errorf("parsing package manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, "", fmt.Errorf("invalid package manifest: %w", err)
	}

	return &m, checksumBytes(data), nil
}

func (m *Manifest) validate() error {
	if m.Name == "" {
		return fmt.Errorf("missing package name")
	}
	if m.Version == "" {
		return fmt.Errorf("missing package version")
	}
	for agentName, aa := range m.Agents {
		for i, a := range aa.Artifacts {
			if a.File == "" {
				return fmt.Errorf("agent %s artifact %d: missing file", agentName, i)
			}
			if a.InstalledPath == "" {
				return fmt.Errorf("agent %s artifact %d: missing installed_path", agentName, i)
			}
		}
	}
	return nil
}

// AgentNames returns the agents the manifest declares artifacts for,
// sorted.
func (m *Manifest) AgentNames() []string {
	names := make([]string, 0, len(m.Agents))
	for name := range m.Agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ArtifactFiles returns the installer inputs for one agent, with sources
// resolved against the package directory.
func (m *Manifest) ArtifactFiles(agentName, pkgDir string) []ArtifactFile {
	aa, ok := m.Agents[agentName]
	if !ok {
		return nil
	}
	files := make([]ArtifactFile, 0, len(aa.Artifacts))
	for _, a := range aa.Artifacts {
		files = append(files, ArtifactFile{
			Source:        filepath.Join(pkgDir, filepath.FromSlash(a.File)),
			Declared:      a.File,
			InstalledPath: a.InstalledPath,
			Group:         a.Group,
		})
	}
	return files
}
