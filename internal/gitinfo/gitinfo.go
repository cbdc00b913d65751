// Package gitinfo resolves chapter modification times from git history.
// Outside a repository it falls back to plain file modification times, so
// it can stand in anywhere a book.ModTimer is expected.
package gitinfo

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/bookbinder/internal/book"
)

// Times is a book.ModTimer backed by the repository containing root.
type Times struct {
	repo *git.Repository
	fs   book.FileModTimer
}

// New opens the repository enclosing root, if any. A missing repository is
// not an error; every lookup then uses the file system.
func New(root string) *Times {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		slog.Debug("No git repository found, using file modification times", "root", root, "error", err)
		return &Times{}
	}
	return &Times{repo: repo}
}

// ModTime returns the committer time of the most recent commit touching
// path, or the file's modification time when the path is untracked, dirty
// lookups fail, or there is no repository.
func (t *Times) ModTime(path string) (time.Time, error) {
	if t.repo != nil {
		if ts, ok := t.commitTime(path); ok {
			return ts, nil
		}
	}
	return t.fs.ModTime(path)
}

func (t *Times) commitTime(path string) (time.Time, bool) {
	wt, err := t.repo.Worktree()
	if err != nil {
		return time.Time{}, false
	}
	rel, err := filepath.Rel(wt.Filesystem.Root(), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return time.Time{}, false
	}
	rel = filepath.ToSlash(rel)

	iter, err := t.repo.Log(&git.LogOptions{
		FileName: &rel,
		Order:    git.LogOrderCommitterTime,
	})
	if err != nil {
		return time.Time{}, false
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		return time.Time{}, false
	}
	return commit.Committer.When.UTC(), true
}
