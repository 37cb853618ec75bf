package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dasiths/PromptyDumpty/internal/core/agent"
)

var (
	// ErrPathEscape is returned when a manifest-declared installed path
	// would resolve outside the package directory.
	ErrPathEscape = errors.New("installed path escapes the package directory")
	// ErrUnsupportedGroup is returned for a group the agent does not support.
	ErrUnsupportedGroup = errors.New("unsupported artifact group")
)

// PackageDir computes the directory a package's artifacts land in for one
// agent: <agentDir>[/<groupFolder>]/<package>.
func PackageDir(ag agent.Agent, projectRoot, pkg, group string) (string, error) {
	agentDir := ag.GetDirectory(projectRoot)
	if group == "" {
		return filepath.Join(agentDir, pkg), nil
	}
	if !ag.ValidateGroup(group) {
		return "", fmt.Errorf("%w: %q for agent %s", ErrUnsupportedGroup, group, ag.Name())
	}
	return filepath.Join(agentDir, ag.GroupFolder(group), pkg), nil
}

// ResolveDestination computes the absolute destination for one artifact.
// Paths that are absolute, empty, or traverse out of the package directory
// are rejected before anything is written.
func ResolveDestination(ag agent.Agent, projectRoot, pkg, installedPath, group string) (string, error) {
	pkgDir, err := PackageDir(ag, projectRoot, pkg, group)
	if err != nil {
		return "", err
	}
	if installedPath == "" {
		return "", fmt.Errorf("%w: empty installed path", ErrPathEscape)
	}
	if filepath.IsAbs(installedPath) {
		return "", fmt.Errorf("%w: %q is absolute", ErrPathEscape, installedPath)
	}

	dest := filepath.Join(pkgDir, filepath.FromSlash(installedPath))
	if dest == pkgDir || !strings.HasPrefix(dest, pkgDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathEscape, installedPath)
	}
	return dest, nil
}

// InstallDirs returns the distinct package directories a batch of
// artifacts touches, in first-use order. An empty batch yields the flat
// package directory.
func InstallDirs(ag agent.Agent, projectRoot, pkg string, files []ArtifactFile) ([]string, error) {
	if len(files) == 0 {
		dir, err := PackageDir(ag, projectRoot, pkg, "")
		if err != nil {
			return nil, err
		}
		return []string{dir}, nil
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, f := range files {
		dir, err := PackageDir(ag, projectRoot, pkg, f.Group)
		if err != nil {
			return nil, err
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}
