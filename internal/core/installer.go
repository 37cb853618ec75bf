package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dasiths/PromptyDumpty/internal/core/agent"
)

// Installer performs the filesystem side of package installs and
// uninstalls within one project root. It borrows agents from the registry
// and artifact lists from the caller; the only thing it owns is the
// sequence of writes it performs during a single call.
type Installer struct {
	projectRoot string
}

// NewInstaller creates an Installer rooted at projectRoot.
func NewInstaller(projectRoot string) *Installer {
	return &Installer{projectRoot: projectRoot}
}

// ProjectRoot returns the project root this installer operates on.
func (i *Installer) ProjectRoot() string { return i.projectRoot }

// InstallFile copies one artifact into place, creating parent directories,
// and returns the absolute destination plus the checksum of the installed
// content. Existing destinations are overwritten, which is what makes
// re-running a failed install safe.
func (i *Installer) InstallFile(source string, ag agent.Agent, pkg, installedPath, group string) (string, string, error) {
	dest, err := ResolveDestination(ag, i.projectRoot, pkg, installedPath, group)
	if err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", "", fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	if err := copyFile(source, dest); err != nil {
		return "", "", fmt.Errorf("copying %s to %s: %w", source, dest, err)
	}

	sum, err := Checksum(dest)
	if err != nil {
		return "", "", fmt.Errorf("checksumming %s: %w", dest, err)
	}
	return dest, sum, nil
}

// InstallPackage installs a batch of artifacts for one agent, wrapping the
// copies in the agent's pre/post install hooks. Every destination is
// resolved before the pre-install hook runs, so a malformed manifest
// aborts the batch before any write. On a mid-batch copy failure the
// already-installed files are left in place, the post-install hook is not
// called, and the returned slice reports what succeeded.
func (i *Installer) InstallPackage(files []ArtifactFile, ag agent.Agent, pkg string) ([]InstalledFile, error) {
	dirs, err := InstallDirs(ag, i.projectRoot, pkg, files)
	if err != nil {
		return nil, err
	}

	planned := make([]string, 0, len(files))
	for _, f := range files {
		dest, err := ResolveDestination(ag, i.projectRoot, pkg, f.InstalledPath, f.Group)
		if err != nil {
			return nil, err
		}
		planned = append(planned, relToRoot(i.projectRoot, dest))
	}

	ctx := agent.HookContext{
		ProjectRoot: i.projectRoot,
		Package:     pkg,
		InstallDirs: dirs,
		Files:       planned,
	}
	if err := ag.PreInstall(ctx); err != nil {
		return nil, fmt.Errorf("pre-install hook for %s: %w", ag.Name(), err)
	}

	installed := make([]InstalledFile, 0, len(files))
	for idx, f := range files {
		dest, sum, err := i.InstallFile(f.Source, ag, pkg, f.InstalledPath, f.Group)
		if err != nil {
			return installed, fmt.Errorf("installing file %d of %d (%s): %w", idx+1, len(files), f.InstalledPath, err)
		}
		installed = append(installed, InstalledFile{
			Source:    f.Declared,
			Installed: relToRoot(i.projectRoot, dest),
			Checksum:  sum,
		})
	}

	if err := ag.PostInstall(ctx); err != nil {
		return installed, fmt.Errorf("post-install hook for %s: %w", ag.Name(), err)
	}
	return installed, nil
}

// UninstallPackage removes every directory the package occupies under one
// agent (the flat directory plus one per supported group), calling the
// uninstall hooks around the deletion. The file list handed to the hooks
// is derived from what is actually on disk, not from the lockfile. A
// package that is not installed is a no-op success.
func (i *Installer) UninstallPackage(ag agent.Agent, pkg string) error {
	agentDir := ag.GetDirectory(i.projectRoot)

	candidates := []string{filepath.Join(agentDir, pkg)}
	for _, g := range ag.SupportedGroups() {
		candidates = append(candidates, filepath.Join(agentDir, ag.GroupFolder(g), pkg))
	}

	var dirs []string
	for _, d := range candidates {
		if dirExists(d) {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return nil
	}

	var files []string
	for _, d := range dirs {
		err := filepath.WalkDir(d, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			files = append(files, relToRoot(i.projectRoot, path))
			return nil
		})
		if err != nil {
			return fmt.Errorf("listing %s: %w", d, err)
		}
	}

	ctx := agent.HookContext{
		ProjectRoot: i.projectRoot,
		Package:     pkg,
		InstallDirs: dirs,
		Files:       files,
	}

	// Pre-uninstall must complete while the files still exist; hooks may
	// read them before deletion.
	if err := ag.PreUninstall(ctx); err != nil {
		return fmt.Errorf("pre-uninstall hook for %s: %w", ag.Name(), err)
	}

	for _, d := range dirs {
		if err := os.RemoveAll(d); err != nil {
			return fmt.Errorf("removing %s: %w", d, err)
		}
		cleanupEmptyDir(filepath.Dir(d))
	}

	if err := ag.PostUninstall(ctx); err != nil {
		return fmt.Errorf("post-uninstall hook for %s: %w", ag.Name(), err)
	}
	return nil
}
