package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no repository encloses the directory.
var ErrNotRepository = errors.New("not inside a git repository")

// Revision identifies the checked-out state of the source repository.
type Revision struct {
	Commit string // full commit hash; empty for a repository without commits
	Branch string // short branch name; empty when HEAD is detached
	Dirty  bool   // working tree has uncommitted changes
}

// Short returns the abbreviated commit hash with a "-dirty" suffix when the
// working tree has changes.
func (r Revision) Short() string {
	c := r.Commit
	if len(c) > 12 {
		c = c[:12]
	}
	if r.Dirty {
		c += "-dirty"
	}
	return c
}

// HeadRevision returns the revision of the repository enclosing dir.
func HeadRevision(dir string) (Revision, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Revision{}, ErrNotRepository
	}
	if err != nil {
		return Revision{}, fmt.Errorf("open repository: %w", err)
	}

	var rev Revision
	ref, err := repo.Head()
	if err != nil {
		// A freshly initialised repository has no HEAD commit yet.
		return rev, nil
	}
	rev.Commit = ref.Hash().String()
	if ref.Name().IsBranch() {
		rev.Branch = ref.Name().Short()
	}

	wt, err := repo.Worktree()
	if err != nil {
		return rev, nil
	}
	status, err := wt.Status()
	if err != nil {
		return rev, fmt.Errorf("worktree status: %w", err)
	}
	rev.Dirty = !status.IsClean()
	return rev, nil
}
