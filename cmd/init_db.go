package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"lrqc/internal/bootstrap"
	"lrqc/internal/bootstrap/logging"
	"lrqc/internal/errs"
	"lrqc/internal/ports"
	qcuse "lrqc/internal/usecase/qc"
)

// initDbCmd creates the application schema. The warehouse schema is
// externally owned and never migrated from here.
var initDbCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize the QC application database schema",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *qcuse.Service, _ ports.WarehouseReader) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		logging.Info(ctx, "start init-db")

		if err := app.InitSchema(ctx); err != nil {
			logging.Error(ctx, "initialize schema failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "initialize schema")
		}

		logging.Info(ctx, "init-db finished", slog.String("database_dsn", app.Config.Database.DSN))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "database schema initialized: %s\n", app.Config.Database.DSN); err != nil {
			return errs.Wrap(err, "write init-db output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(initDbCmd)
}
