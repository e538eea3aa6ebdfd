package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"lrqc/internal/bootstrap/config"
	"lrqc/internal/bootstrap/database"
	"lrqc/internal/bootstrap/logging"
	"lrqc/internal/errs"
	"lrqc/internal/infrastructure/persistence/sqlite/model"
)

type App struct {
	Config    config.Config
	DB        *gorm.DB
	Warehouse *sql.DB
}

func New(ctx context.Context, configFile string) (*App, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "loading application config", slog.String("config_file", configFile))

	cfg, err := config.Load(logCtx, configFile)
	if err != nil {
		return nil, errs.Wrap(err, "load config")
	}

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, errs.Wrap(err, "open database")
	}

	warehouse, err := database.OpenWarehouse(logCtx, cfg.Warehouse)
	if err != nil {
		return nil, errs.Wrap(err, "open warehouse")
	}

	logging.Info(logCtx, "application bootstrap completed",
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("warehouse_driver", cfg.Warehouse.Driver),
	)

	return &App{
		Config:    cfg,
		DB:        db,
		Warehouse: warehouse,
	}, nil
}

func (a *App) InitSchema(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "start schema migration")

	if err := a.DB.WithContext(ctx).AutoMigrate(
		&model.Entity{},
		&model.PacbioEnt{},
		&model.EntityPacbioEnt{},
		&model.QcOutcomeDict{},
		&model.QcOutcome{},
		&model.QcOutcomeHistory{},
		&model.Annotation{},
		&model.EntityAnnotation{},
	); err != nil {
		return errs.Wrap(err, "auto migrate schema")
	}

	logging.Info(logCtx, "schema migration completed")
	return nil
}

func (a *App) Close(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	sqlDB, err := a.DB.DB()
	if err != nil {
		return errs.Wrap(err, "get sql db")
	}
	if err := sqlDB.Close(); err != nil {
		return errs.Wrap(err, "close sql db")
	}

	if a.Warehouse != nil {
		if err := a.Warehouse.Close(); err != nil {
			return errs.Wrap(err, "close warehouse db")
		}
	}

	logging.Info(logging.WithAttrs(ctx, slog.String("component", "bootstrap.app")), "database connections closed")
	return nil
}
