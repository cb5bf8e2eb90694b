package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/KyussCaesar/pfr/internal/buildinfo"
	"github.com/KyussCaesar/pfr/internal/config"
	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/ledger"
	"github.com/KyussCaesar/pfr/internal/log"
	"github.com/KyussCaesar/pfr/internal/money"
	"github.com/KyussCaesar/pfr/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "pfr",
		Short:   "Personal finance reporter",
		Long:    "pfr records recurring income and expenses and reports what they add up to each month.",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dirFlag, "dir", "", "storage directory (default $PFR_HOME or ~/.pfr)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(
		newInitCommand(a),
		newAddCommand(a),
		newRmCommand(a),
		newListCommand(a),
		newReportCommand(a),
		newSaveCommand(a),
		newLoadCommand(a),
		newBackupCommand(a),
		newRestoreCommand(a),
		newSavesCommand(a),
		newDropCommand(a),
		newExportCommand(a),
		newImportCommand(a),
		newHistoryCommand(a),
	)

	return rootCmd
}

// Run executes the CLI with args. Failures are reported as a single line
// on out, which is also where command output goes. The result is the
// process exit code.
func Run(args []string, out io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(out, Describe(err))
		return 1
	}
	return 0
}

// Describe turns an error into the one-line diagnostic shown to the user.
func Describe(err error) string {
	var during string
	switch {
	case errors.Is(err, errs.ErrStorageUnavailable):
		during = " while attempting to find the storage directory"
	case errors.Is(err, errs.ErrDuplicateName):
		during = " while adding to the ledger"
	case errors.Is(err, errs.ErrNotFound):
		during = " while attempting to open the ledger"
	case errors.Is(err, errs.ErrDecode):
		during = " while attempting to load from the data file"
	case errors.Is(err, errs.ErrEncode):
		during = " while attempting to save to the data file"
	case errors.Is(err, errs.ErrIO):
		during = " while attempting to access the data file"
	case errors.Is(err, errs.ErrInvalidName), errors.Is(err, errs.ErrReservedName):
		during = " with the snapshot name"
	case errors.Is(err, money.ErrParse), errors.Is(err, errs.ErrInvalid):
		during = " in the input"
	}
	msg := strings.ReplaceAll(err.Error(), "\n", "; ")
	return fmt.Sprintf("error: an error occurred%s: %s", during, msg)
}

// app is the state shared by every subcommand, filled in before RunE.
type app struct {
	dirFlag string
	verbose bool

	root   string
	cfg    *config.Config
	logger *log.Logger
	store  *store.Store
}

func (a *app) setup(cmd *cobra.Command) error {
	// A .env file is optional.
	_ = godotenv.Load()

	root, err := config.ResolveRoot(a.dirFlag)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrStorageUnavailable, err)
	}
	a.root = root

	cfg, err := config.LoadOrDefault(root)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := log.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.Format = cfg.Log.Format
	levelName := cfg.Log.Level
	if env := os.Getenv(config.EnvLogLevel); env != "" {
		levelName = env
	}
	if logCfg.Level, err = log.ParseLevel(levelName); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalid, err)
	}
	if a.verbose {
		logCfg.Level = slog.LevelDebug
	}
	a.logger = log.New(logCfg).With(log.FieldCommand, cmd.Name())
	log.SetDefault(a.logger)

	a.store = store.New(root, a.logger)
	a.logger.Debug("storage resolved", log.FieldRoot, root)
	return nil
}

func (a *app) ledgerService() *ledger.Service {
	return ledger.NewService(a.store)
}
