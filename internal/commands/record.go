package commands

import (
	"strings"
	"time"

	"github.com/KyussCaesar/pfr/internal/gitops"
	"github.com/KyussCaesar/pfr/internal/history"
	"github.com/KyussCaesar/pfr/internal/log"
)

// change describes a mutation that has already been written to disk.
type change struct {
	command  string
	snapshot string
	name     string
	details  string
}

func (c change) message() string {
	parts := []string{c.command + ":"}
	for _, p := range []string{c.snapshot, c.name, c.details} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// record appends c to history.csv and commits the storage directory when
// those are enabled. The mutation has already succeeded at this point, so
// failures here are logged and not returned.
func (a *app) record(c change) {
	if a.cfg.History.Enabled {
		err := history.Append(a.root, history.Entry{
			Timestamp: time.Now().UTC(),
			Command:   c.command,
			Snapshot:  c.snapshot,
			Name:      c.name,
			Details:   c.details,
		})
		if err != nil {
			a.logger.WithComponent(log.ComponentHistory).Warn("failed to append history", log.FieldError, err)
		}
	}

	if !a.cfg.Git.AutoCommit {
		return
	}
	gitLog := a.logger.WithComponent(log.ComponentGit)
	if !gitops.IsRepo(a.root) {
		gitLog.Warn("auto_commit is set but the storage directory is not a git repository", log.FieldRoot, a.root)
		return
	}
	hash, err := gitops.Commit(a.root, c.message(), a.cfg.Git.AuthorName, a.cfg.Git.AuthorEmail)
	if err != nil {
		gitLog.Warn("failed to commit", log.FieldError, err)
		return
	}
	if hash != "" {
		gitLog.Debug("committed", log.FieldCommit, hash)
	}
}
