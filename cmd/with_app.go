package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"lrqc/internal/bootstrap"
	"lrqc/internal/bootstrap/logging"
	"lrqc/internal/errs"
	"lrqc/internal/infrastructure/persistence/sqlite/repository"
	"lrqc/internal/infrastructure/persistence/sqlite/uow"
	"lrqc/internal/infrastructure/warehouse"
	"lrqc/internal/ports"
	qcuse "lrqc/internal/usecase/qc"
)

// withApp bootstraps the application, wires repositories into the QC
// service and guarantees teardown after the command body returns.
func withApp(run func(cmd *cobra.Command, app *bootstrap.App, svc *qcuse.Service, reader ports.WarehouseReader) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithAttrs(
			cmd.Context(),
			slog.String("command", cmd.CommandPath()),
			slog.String("config_file", cfgFile),
		)

		app, err := bootstrap.New(ctx, cfgFile)
		if err != nil {
			logging.Error(ctx, "bootstrap application failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "bootstrap application")
		}
		defer func() {
			if err := app.Close(context.WithoutCancel(ctx)); err != nil {
				logging.Error(ctx, "application close failed", slog.Any("err", errs.Loggable(err)))
			}
		}()

		svc := qcuse.NewService(
			repository.NewEntityRepository(app.DB),
			repository.NewOutcomeRepository(app.DB),
			repository.NewAnnotationRepository(app.DB),
			uow.NewUnitOfWork(app.DB),
		)
		reader := warehouse.NewReader(app.Warehouse)

		if err := run(cmd, app, svc, reader); err != nil {
			return errs.Wrap(err, "run command")
		}
		return nil
	}
}
