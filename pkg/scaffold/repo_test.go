package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
)

func TestInitRepository(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"README.md":      "# hello\n",
		"main.py":        "print('hi')\n",
		"pkg/__init__.py": "",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := InitRepository(dir, "Grace Hopper", "grace@example.com"); err != nil {
		t.Fatalf("InitRepository() error = %v", err)
	}

	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("PlainOpen() error = %v", err)
	}

	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("CommitObject() error = %v", err)
	}
	if commit.Message != "Initial Commit" {
		t.Errorf("commit message = %q, want Initial Commit", commit.Message)
	}
	if commit.Author.Name != "Grace Hopper" {
		t.Errorf("commit author = %q", commit.Author.Name)
	}
	if commit.NumParents() != 0 {
		t.Errorf("expected exactly one root commit, got %d parents", commit.NumParents())
	}

	// every generated file is part of the commit
	tree, err := commit.Tree()
	if err != nil {
		t.Fatal(err)
	}
	for name := range files {
		if _, err := tree.File(name); err != nil {
			t.Errorf("file %s not in initial commit: %v", name, err)
		}
	}

	// the worktree is clean after the initial commit
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	status, err := wt.Status()
	if err != nil {
		t.Fatal(err)
	}
	if !status.IsClean() {
		t.Errorf("worktree dirty after initial commit: %v", status)
	}
}

func TestInitRepositoryOnMissingDir(t *testing.T) {
	err := InitRepository(filepath.Join(t.TempDir(), "nope"), "a", "b")
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
	if ExitCodeFor(err) != ExitGitError {
		t.Errorf("exit code = %d, want %d", ExitCodeFor(err), ExitGitError)
	}
}
