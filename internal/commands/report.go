package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/log"
	"github.com/KyussCaesar/pfr/internal/report"
)

func newReportCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show every transaction in monthly terms with totals by category and account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Report.Format
			}
			format = strings.ToLower(format)
			if format != report.FormatText && format != report.FormatJSON {
				return fmt.Errorf("%w: unknown report format %q (want text or json)", errs.ErrInvalid, format)
			}

			l, err := a.store.LoadCurrent()
			if err != nil {
				return err
			}
			r := report.Generate(l)
			a.logger.WithComponent(log.ComponentReport).Debug("generated report",
				log.FieldCount, len(r.Rows), "total", r.Total.String())

			return report.Write(cmd.OutOrStdout(), r, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text or json (default from config.yaml)")

	return cmd
}
