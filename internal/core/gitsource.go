package core

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
)

// gitSource fetches packages by cloning a git repository. Each Download is
// a fresh shallow-ish clone into a temporary directory; the cleanup
// callback removes it.
type gitSource struct {
	url string
}

func (s *gitSource) Download(ctx context.Context, version string) (string, string, func(), error) {
	dir, err := os.MkdirTemp("", "dumpty-clone-*")
	if err != nil {
		return "", "", nil, fmt.Errorf("creating temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:  s.url,
		Tags: git.AllTags,
	})
	if err != nil {
		cleanup()
		return "", "", nil, fmt.Errorf("cloning %s: %w", s.url, err)
	}

	if version != "" {
		wt, err := repo.Worktree()
		if err != nil {
			cleanup()
			return "", "", nil, fmt.Errorf("opening worktree: %w", err)
		}
		err = wt.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewTagReferenceName(version),
		})
		if err != nil {
			cleanup()
			return "", "", nil, fmt.Errorf("checking out %s: %w", version, err)
		}
	}

	head, err := repo.Head()
	if err != nil {
		cleanup()
		return "", "", nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	return dir, head.Hash().String(), cleanup, nil
}

// Tags lists the remote's tags without cloning, as full ref names.
func (s *gitSource) Tags(ctx context.Context) ([]string, error) {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{s.url},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing tags for %s: %w", s.url, err)
	}

	var tags []string
	for _, ref := range refs {
		if ref.Name().IsTag() {
			tags = append(tags, ref.Name().String())
		}
	}
	return tags, nil
}
