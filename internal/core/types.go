// Package core implements dumpty's install/uninstall/update orchestration.
// It has zero UI dependencies and is independently testable.
package core

import "time"

const (
	// LockFileName is the lockfile dumpty maintains at the project root.
	LockFileName = "dumpty.lock"
	// ManifestFileName is the package descriptor at a package's root.
	ManifestFileName = "dumpty.package.yaml"

	currentLockVersion = 1
)

// LockFile pins every installed package for a project.
type LockFile struct {
	LockVersion int                `json:"lockVersion"`
	Packages    []InstalledPackage `json:"packages"`
}

// Package returns the entry with the given name.
func (lf *LockFile) Package(name string) (*InstalledPackage, bool) {
	for i := range lf.Packages {
		if lf.Packages[i].Name == name {
			return &lf.Packages[i], true
		}
	}
	return nil, false
}

// InstalledPackage is a single lockfile entry: everything needed to
// reverse or replay an installation.
type InstalledPackage struct {
	Name             string                     `json:"name"`
	Version          string                     `json:"version"`
	Source           string                     `json:"source"`
	SourceType       string                     `json:"sourceType"`
	Resolved         string                     `json:"resolved,omitempty"`
	InstalledAt      time.Time                  `json:"installedAt"`
	InstalledFor     []string                   `json:"installedFor"`
	Files            map[string][]InstalledFile `json:"files"`
	ManifestChecksum string                     `json:"manifestChecksum"`
}

// InstalledFile records one copied artifact.
type InstalledFile struct {
	Source    string `json:"source"`    // source path as declared in the manifest
	Installed string `json:"installed"` // installed path relative to the project root
	Checksum  string `json:"checksum"`  // sha256:<hex> of the installed content
}

// ArtifactFile is one installable file: where its bytes come from, the
// manifest-declared source path it is recorded under, and where it lands
// inside the package directory.
type ArtifactFile struct {
	Source        string // path to the source file on disk
	Declared      string // source path as written in the manifest
	InstalledPath string // destination relative to the package directory
	Group         string // optional artifact group
}

// SourceRef identifies where a package comes from and which version to
// fetch.
type SourceRef struct {
	Kind    string // "git" or "local"
	URL     string // clone URL, or directory path for local sources
	Version string // requested tag; empty means default branch / latest
}
