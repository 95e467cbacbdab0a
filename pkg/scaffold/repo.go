package scaffold

import (
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// InitRepository creates a git repository in dir, stages every file and
// records a single "Initial Commit". Any VCS failure is wrapped as GitError
// and is fatal to the run.
func InitRepository(dir, authorName, authorEmail string) error {
	if authorName == "" {
		authorName = "pymaker"
	}
	if authorEmail == "" {
		authorEmail = "pymaker@localhost"
	}

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return &GitError{Err: err}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return &GitError{Err: err}
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return &GitError{Err: err}
	}

	_, err = wt.Commit("Initial Commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return &GitError{Err: err}
	}
	return nil
}
