// Package gitops keeps the storage directory under git so every saved
// snapshot can be recovered from history.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const gitignore = "*.tmp\n.env\n"

// Init initializes a git repository at dir and writes a .gitignore that
// skips in-flight temporary files.
func Init(dir string) error {
	if out, err := git(dir, nil, "init", "-q"); err != nil {
		return fmt.Errorf("git init: %s: %w", out, err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}

// IsRepo reports whether dir has its own git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Commit stages everything in dir and commits it as the given author.
// It returns the short hash, or "" when there was nothing to commit.
func Commit(dir, message, authorName, authorEmail string) (string, error) {
	if out, err := git(dir, nil, "add", "-A"); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	status, err := git(dir, nil, "status", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("git status: %s: %w", status, err)
	}
	if strings.TrimSpace(status) == "" {
		return "", nil
	}

	identity := []string{
		"GIT_AUTHOR_NAME=" + authorName,
		"GIT_AUTHOR_EMAIL=" + authorEmail,
		"GIT_COMMITTER_NAME=" + authorName,
		"GIT_COMMITTER_EMAIL=" + authorEmail,
	}
	if out, err := git(dir, identity, "commit", "-q", "-m", message); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	rev, err := git(dir, nil, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %s: %w", rev, err)
	}
	return strings.TrimSpace(rev), nil
}

func git(dir string, env []string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
