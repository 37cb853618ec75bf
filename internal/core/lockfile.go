package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LockFilePath returns the full path to the lockfile in the given project
// root.
func LockFilePath(dir string) string {
	return filepath.Join(dir, LockFileName)
}

// ReadLockFile reads and parses the lockfile from the given project root.
// Returns nil, nil if the file does not exist.
func ReadLockFile(dir string) (*LockFile, error) {
	data, err := os.ReadFile(LockFilePath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading lock file: %w", err)
	}

	var lf LockFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lock file: %w", err)
	}
	return &lf, nil
}

// WriteLockFile writes the lockfile atomically. Packages are sorted by
// name for deterministic output.
func WriteLockFile(dir string, lf *LockFile) error {
	sort.Slice(lf.Packages, func(i, j int) bool {
		return lf.Packages[i].Name < lf.Packages[j].Name
	})
	if lf.LockVersion == 0 {
		lf.LockVersion = currentLockVersion
	}

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}
	data = append(data, '\n')

	return writeFileAtomic(LockFilePath(dir), data)
}

// AddOrUpdateLockEntry upserts a package entry by name, creating the
// lockfile if it does not exist. An update replaces the entry wholesale.
func AddOrUpdateLockEntry(dir string, entry InstalledPackage) error {
	lf, err := ReadLockFile(dir)
	if err != nil {
		return err
	}
	if lf == nil {
		lf = &LockFile{LockVersion: currentLockVersion}
	}

	found := false
	for i := range lf.Packages {
		if lf.Packages[i].Name == entry.Name {
			lf.Packages[i] = entry
			found = true
			break
		}
	}
	if !found {
		lf.Packages = append(lf.Packages, entry)
	}

	return WriteLockFile(dir, lf)
}

// RemoveLockEntry removes a package entry by name. No-op if the lockfile
// does not exist or the package is not recorded.
func RemoveLockEntry(dir string, name string) error {
	lf, err := ReadLockFile(dir)
	if err != nil {
		return err
	}
	if lf == nil {
		return nil
	}

	filtered := lf.Packages[:0]
	for _, p := range lf.Packages {
		if p.Name != name {
			filtered = append(filtered, p)
		}
	}
	lf.Packages = filtered

	return WriteLockFile(dir, lf)
}
