package app

import (
	"context"
	"fmt"
	"log/slog"

	"mvpf.ccj.org/internal/appconf"
	"mvpf.ccj.org/internal/bridge"
	"mvpf.ccj.org/internal/dataset"
	"mvpf.ccj.org/internal/logging"
	"mvpf.ccj.org/internal/mvpf"
	"mvpf.ccj.org/internal/registry"
	"mvpf.ccj.org/rowdb"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware. Everything except the row store is read-only after New returns.
type Application struct {
	Config     appconf.Config
	Logger     *slog.Logger
	Dataset    *dataset.Dataset
	Registry   *registry.Registry
	Calculator *mvpf.Calculator
	RowDB      *rowdb.Client
}

// New loads the dataset and the alternatives, mirrors the rows into the row store
// and wires the calculator. Any failure here must stop the process from serving.
func New(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	ds, err := dataset.Load(ctx, cfg.DatasetSource, logger)
	if err != nil {
		return nil, err
	}

	reg := registry.Default()
	if cfg.AlternativesPath != "" {
		reg, err = registry.LoadFile(cfg.AlternativesPath)
		if err != nil {
			return nil, err
		}
	}

	runner := bridge.NewScriptRunner(bridge.Config{
		Interpreter: cfg.Script.Interpreter,
		Script:      cfg.Script.Path,
		Timeout:     cfg.Script.Timeout,
	}, logger)

	return NewWithComponents(ctx, cfg, logger, ds, reg, runner)
}

// NewWithComponents wires an Application from already loaded parts.
func NewWithComponents(ctx context.Context, cfg appconf.Config, logger *slog.Logger, ds *dataset.Dataset, reg *registry.Registry, runner bridge.Runner) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := rowdb.NewClient(ctx, rowdb.NewConfig(cfg.DBPath, cfg.Env, logger))
	if err != nil {
		return nil, fmt.Errorf("open row store: %w", err)
	}
	if err := db.ImportDataset(ctx, ds); err != nil {
		logging.SafeCloseWithLogging(db, logger, "row_store")
		return nil, fmt.Errorf("import dataset into row store: %w", err)
	}

	app := &Application{
		Config:     cfg,
		Logger:     logger,
		Dataset:    ds,
		Registry:   reg,
		Calculator: mvpf.NewCalculator(mvpf.NewResolver(reg), ds, runner, logger),
		RowDB:      db,
	}

	logging.LogOperation(logger, "application_ready",
		slog.String("dataset", ds.Source()),
		slog.Int("rows", ds.Len()),
		slog.Int("alternatives", reg.Len()),
		slog.String("env", cfg.Env.String()))

	return app, nil
}

// Close releases the row store.
func (app *Application) Close() error {
	if app.RowDB == nil {
		return nil
	}
	return app.RowDB.Close()
}
