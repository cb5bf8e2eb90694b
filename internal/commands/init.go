package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KyussCaesar/pfr/internal/config"
	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/gitops"
	"github.com/KyussCaesar/pfr/internal/store"
)

func newInitCommand(a *app) *cobra.Command {
	var withGit bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the storage directory and reset the current ledger to empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), a, withGit)
		},
	}

	cmd.Flags().BoolVar(&withGit, "git", false, "keep the storage directory in git and commit every change")

	return cmd
}

func runInit(out io.Writer, a *app, withGit bool) error {
	if err := a.store.Initialize(); err != nil {
		return err
	}

	// Write config.yaml on first init; later inits only flip auto_commit on.
	cfgPath := filepath.Join(a.root, config.FileName)
	_, statErr := os.Stat(cfgPath)
	if errors.Is(statErr, fs.ErrNotExist) || withGit {
		if withGit {
			a.cfg.Git.AutoCommit = true
		}
		if err := config.Save(cfgPath, a.cfg); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrIO, err)
		}
	}

	if withGit && !gitops.IsRepo(a.root) {
		if err := gitops.Init(a.root); err != nil {
			return err
		}
	}

	a.record(change{command: "init", snapshot: store.Current})
	fmt.Fprintf(out, "Initialized empty ledger in %s\n", a.root)
	return nil
}
