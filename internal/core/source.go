package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// PackageSource fetches package content for one source reference.
// Implementations are an opaque provider of a local directory; the
// orchestration layer never sees transport details.
type PackageSource interface {
	// Download materializes the requested version (a tag name, or empty
	// for the default) in a local directory. resolved identifies the exact
	// revision fetched. cleanup is non-nil on success and removes any
	// temporary state.
	Download(ctx context.Context, version string) (dir string, resolved string, cleanup func(), err error)

	// Tags lists the version tags available at the source as full ref
	// names (refs/tags/v1.2.3). Sources without versioning return nil.
	Tags(ctx context.Context) ([]string, error)
}

// ParseSourceRef parses a CLI source argument. Supported forms:
//
//	https://github.com/owner/repo[@v1.2.3]
//	git@host:owner/repo.git[@v1.2.3]
//	./local/dir, ../local/dir or /abs/dir
func ParseSourceRef(input string) (*SourceRef, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty package source")
	}

	if isLocalPath(input) {
		abs, err := filepath.Abs(input)
		if err != nil {
			return nil, fmt.Errorf("resolving local source %q: %w", input, err)
		}
		return &SourceRef{Kind: "local", URL: abs}, nil
	}

	url, version := splitVersion(input)
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") &&
		!strings.HasPrefix(url, "git@") && !strings.HasPrefix(url, "ssh://") {
		return nil, fmt.Errorf("unrecognized package source %q", input)
	}
	return &SourceRef{Kind: "git", URL: url, Version: version}, nil
}

// isLocalPath reports whether the source names a directory on disk rather
// than a remote.
func isLocalPath(input string) bool {
	return strings.HasPrefix(input, "./") ||
		strings.HasPrefix(input, "../") ||
		strings.HasPrefix(input, "/") ||
		strings.HasPrefix(input, "~") ||
		input == "." || input == ".."
}

// splitVersion splits a trailing @version suffix off a URL. Only an @
// after the last path segment counts, so SSH user@host forms survive.
func splitVersion(input string) (string, string) {
	at := strings.LastIndex(input, "@")
	if at <= strings.LastIndex(input, "/") {
		return input, ""
	}
	// git@host:owner/repo has its @ before the colon.
	if colon := strings.Index(input, ":"); colon > at {
		return input, ""
	}
	return input[:at], input[at+1:]
}

// OpenSource returns the PackageSource for a reference.
func OpenSource(ref *SourceRef) PackageSource {
	if ref.Kind == "local" {
		return &localSource{path: ref.URL}
	}
	return &gitSource{url: ref.URL}
}

// localSource serves a package straight from a directory on disk. Local
// trees are unversioned: Download ignores the version and Tags is empty.
type localSource struct {
	path string
}

func (s *localSource) Download(ctx context.Context, version string) (string, string, func(), error) {
	if !dirExists(s.path) {
		return "", "", nil, fmt.Errorf("local source %s is not a directory", s.path)
	}
	return s.path, "", func() {}, nil
}

func (s *localSource) Tags(ctx context.Context) ([]string, error) {
	return nil, nil
}
