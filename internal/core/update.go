package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver"

	"github.com/dasiths/PromptyDumpty/internal/core/agent"
)

// ErrNotInstalled is returned when an update targets a package the
// lockfile does not record.
var ErrNotInstalled = errors.New("package not installed")

// UpdateStatus classifies the outcome of one package update.
type UpdateStatus string

const (
	// StatusUpdated means a newer version was installed.
	StatusUpdated UpdateStatus = "updated"
	// StatusUpToDate means the installed version already matches the target.
	StatusUpToDate UpdateStatus = "up-to-date"
	// StatusNoTags means the source publishes no semver tags to update to.
	StatusNoTags UpdateStatus = "no-tags"
	// StatusVersionNotFound means the explicitly requested version does not
	// exist at the source.
	StatusVersionNotFound UpdateStatus = "version-not-found"
)

// UpdateResult reports what happened to one package.
type UpdateResult struct {
	Name   string
	From   string
	To     string
	Status UpdateStatus
}

// Updater re-resolves installed packages against their recorded sources.
// OpenSource is injectable so tests can substitute a fake transport.
type Updater struct {
	ProjectRoot string
	Registry    *agent.Registry
	OpenSource  func(*SourceRef) PackageSource
}

// NewUpdater creates an Updater using the real source transports.
func NewUpdater(projectRoot string, reg *agent.Registry) *Updater {
	return &Updater{
		ProjectRoot: projectRoot,
		Registry:    reg,
		OpenSource:  OpenSource,
	}
}

// SelectVersion picks the version to install from a list of tag refs.
// Tags that do not parse as semver are ignored. With no requested version
// the highest tag wins; with one, it must exist exactly.
func SelectVersion(tags []string, requested string) (string, UpdateStatus) {
	var versions semver.Collection
	for _, t := range tags {
		name := strings.TrimPrefix(t, "refs/tags/")
		v, err := semver.NewVersion(name)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return "", StatusNoTags
	}

	if requested != "" {
		want, err := semver.NewVersion(requested)
		if err != nil {
			return "", StatusVersionNotFound
		}
		for _, v := range versions {
			if v.Equal(want) {
				return v.String(), StatusUpdated
			}
		}
		return "", StatusVersionNotFound
	}

	sort.Sort(versions)
	return versions[len(versions)-1].String(), StatusUpdated
}

// Update re-resolves one installed package. A nil error with a
// non-Updated status means nothing was mutated and the caller decides how
// to report it.
func (u *Updater) Update(ctx context.Context, name, requested string) (*UpdateResult, error) {
	lf, err := ReadLockFile(u.ProjectRoot)
	if err != nil {
		return nil, err
	}
	var entry *InstalledPackage
	if lf != nil {
		entry, _ = lf.Package(name)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}

	result := &UpdateResult{Name: name, From: entry.Version}

	src := u.OpenSource(&SourceRef{Kind: entry.SourceType, URL: entry.Source})
	tags, err := src.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing versions for %s: %w", name, err)
	}

	target, status := SelectVersion(tags, requested)
	if status != StatusUpdated {
		result.Status = status
		return result, nil
	}
	if target == strings.TrimPrefix(entry.Version, "v") {
		result.Status = StatusUpToDate
		return result, nil
	}
	result.To = target

	// Download by the raw tag name, which may carry a v prefix the parsed
	// version dropped.
	tagName := target
	for _, t := range tags {
		tn := strings.TrimPrefix(t, "refs/tags/")
		if v, err := semver.NewVersion(tn); err == nil && v.String() == target {
			tagName = tn
			break
		}
	}

	dir, resolved, cleanup, err := src.Download(ctx, tagName)
	if err != nil {
		return nil, fmt.Errorf("downloading %s@%s: %w", name, tagName, err)
	}
	defer cleanup()

	m, checksum, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	inst := NewInstaller(u.ProjectRoot)
	updated := InstalledPackage{
		Name:             entry.Name,
		Version:          target,
		Source:           entry.Source,
		SourceType:       entry.SourceType,
		Resolved:         resolved,
		InstalledAt:      time.Now().UTC(),
		InstalledFor:     entry.InstalledFor,
		Files:            make(map[string][]InstalledFile),
		ManifestChecksum: checksum,
	}

	for _, agName := range entry.InstalledFor {
		ag, ok := u.Registry.Get(agName)
		if !ok {
			return nil, fmt.Errorf("unknown agent %q recorded for %s", agName, name)
		}
		if err := inst.UninstallPackage(ag, name); err != nil {
			return nil, err
		}
		files, err := inst.InstallPackage(m.ArtifactFiles(agName, dir), ag, name)
		if err != nil {
			return nil, err
		}
		updated.Files[agName] = files
	}

	if err := AddOrUpdateLockEntry(u.ProjectRoot, updated); err != nil {
		return nil, err
	}

	result.Status = StatusUpdated
	return result, nil
}
