package core

import (
	"context"
	"path/filepath"
	"testing"
)

func TestParseSourceRef(t *testing.T) {
	cases := []struct {
		in      string
		kind    string
		url     string
		version string
	}{
		{"https://github.com/acme/pkg", "git", "https://github.com/acme/pkg", ""},
		{"https://github.com/acme/pkg@v1.2.3", "git", "https://github.com/acme/pkg", "v1.2.3"},
		{"git@github.com:acme/pkg.git", "git", "git@github.com:acme/pkg.git", ""},
		{"git@github.com:acme/pkg.git@v2.0.0", "git", "git@github.com:acme/pkg.git", "v2.0.0"},
		{"ssh://git@github.com/acme/pkg", "git", "ssh://git@github.com/acme/pkg", ""},
	}
	for _, tc := range cases {
		ref, err := ParseSourceRef(tc.in)
		if err != nil {
			t.Errorf("ParseSourceRef(%q): %v", tc.in, err)
			continue
		}
		if ref.Kind != tc.kind || ref.URL != tc.url || ref.Version != tc.version {
			t.Errorf("ParseSourceRef(%q) = %+v, want kind=%q url=%q version=%q",
				tc.in, ref, tc.kind, tc.url, tc.version)
		}
	}
}

func TestParseSourceRefLocal(t *testing.T) {
	for _, in := range []string{"./pkg", "../pkg", "."} {
		ref, err := ParseSourceRef(in)
		if err != nil {
			t.Fatalf("ParseSourceRef(%q): %v", in, err)
		}
		if ref.Kind != "local" {
			t.Errorf("ParseSourceRef(%q).Kind = %q, want local", in, ref.Kind)
		}
		if !filepath.IsAbs(ref.URL) {
			t.Errorf("ParseSourceRef(%q).URL = %q, want absolute", in, ref.URL)
		}
	}
}

func TestParseSourceRefRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "ftp://example.com/pkg", "just-a-name"} {
		if _, err := ParseSourceRef(in); err == nil {
			t.Errorf("ParseSourceRef(%q) succeeded, want error", in)
		}
	}
}

func TestLocalSource(t *testing.T) {
	dir := t.TempDir()
	src := OpenSource(&SourceRef{Kind: "local", URL: dir})

	got, resolved, cleanup, err := src.Download(context.Background(), "")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer cleanup()
	if got != dir {
		t.Errorf("dir = %q, want %q", got, dir)
	}
	if resolved != "" {
		t.Errorf("resolved = %q, want empty for local sources", resolved)
	}

	tags, err := src.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if tags != nil {
		t.Errorf("tags = %v, want nil", tags)
	}
}

func TestLocalSourceMissingDir(t *testing.T) {
	src := OpenSource(&SourceRef{Kind: "local", URL: filepath.Join(t.TempDir(), "nope")})
	if _, _, _, err := src.Download(context.Background(), ""); err == nil {
		t.Error("expected error for a missing local directory")
	}
}
