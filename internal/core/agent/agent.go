// Package agent defines the agent capability contract for dumpty.
//
// An Agent represents an AI coding assistant (Claude, GitHub Copilot,
// Cursor, ...). Each agent knows its own directory layout, how to detect
// itself in a project, and how to keep its auxiliary configuration in sync
// when packages are installed or removed. Agents are stateless adapters;
// all mutable state lives on disk.
package agent

import (
	"os"
	"path/filepath"
)

// HookContext carries the arguments passed to every lifecycle hook.
//
// InstallDirs holds the distinct package directories touched by the
// operation (one per artifact group in use, or a single flat directory).
// Files are paths relative to ProjectRoot; a file outside the project root
// appears as an absolute path.
type HookContext struct {
	ProjectRoot string
	Package     string
	InstallDirs []string
	Files       []string
}

// Agent defines how an AI coding assistant integrates with dumpty.
type Agent interface {
	// Identity
	Name() string        // machine name: "copilot", "claude"
	DisplayName() string // human name: "GitHub Copilot"
	Directory() string   // default directory, relative to the project root

	// Detection
	IsConfigured(projectRoot string) bool
	GetDirectory(projectRoot string) string

	// Artifact groups
	SupportedGroups() []string
	ValidateGroup(group string) bool
	GroupFolder(group string) string

	// Lifecycle hooks. PreInstall and PreUninstall run strictly before any
	// file mutation; PostInstall and PostUninstall run strictly after all
	// mutations in the call completed. Hooks must tolerate missing optional
	// state (absent config files) and may fail only on real I/O errors.
	PreInstall(ctx HookContext) error
	PostInstall(ctx HookContext) error
	PreUninstall(ctx HookContext) error
	PostUninstall(ctx HookContext) error
}

// Base supplies default behavior for concrete agents: directory resolution
// under the project root, identity group-folder mapping and no-op hooks.
// Concrete agents embed it and override what they need.
type Base struct {
	name        string
	displayName string
	directory   string
	groups      []string          // supported artifact groups; empty = flat layout only
	groupDirs   map[string]string // group name -> on-disk folder name override
}

// NewBase constructs the embeddable defaults for an agent. groupDirs remaps
// a logical group name to a different on-disk folder; groups absent from it
// map to themselves.
func NewBase(name, displayName, directory string, groups []string, groupDirs map[string]string) Base {
	return Base{
		name:        name,
		displayName: displayName,
		directory:   directory,
		groups:      groups,
		groupDirs:   groupDirs,
	}
}

func (b Base) Name() string        { return b.name }
func (b Base) DisplayName() string { return b.displayName }
func (b Base) Directory() string   { return b.directory }

// IsConfigured reports whether the agent's directory exists in the project.
// A regular file with the same name does not count.
func (b Base) IsConfigured(projectRoot string) bool {
	info, err := os.Stat(filepath.Join(projectRoot, b.directory))
	return err == nil && info.IsDir()
}

// GetDirectory returns the agent's directory under the project root.
func (b Base) GetDirectory(projectRoot string) string {
	return filepath.Join(projectRoot, b.directory)
}

// SupportedGroups returns the artifact groups this agent accepts. An empty
// result means the agent only supports the flat layout.
func (b Base) SupportedGroups() []string {
	return append([]string(nil), b.groups...)
}

// ValidateGroup reports whether group is one of the supported groups.
func (b Base) ValidateGroup(group string) bool {
	for _, g := range b.groups {
		if g == group {
			return true
		}
	}
	return false
}

// GroupFolder maps a group name to its on-disk folder name.
func (b Base) GroupFolder(group string) string {
	if folder, ok := b.groupDirs[group]; ok {
		return folder
	}
	return group
}

func (b Base) PreInstall(HookContext) error    { return nil }
func (b Base) PostInstall(HookContext) error   { return nil }
func (b Base) PreUninstall(HookContext) error  { return nil }
func (b Base) PostUninstall(HookContext) error { return nil }
