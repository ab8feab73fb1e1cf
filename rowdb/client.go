// Package rowdb mirrors the loaded dataset into SQLite so rows can be listed and searched.
package rowdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"mvpf.ccj.org/internal/dataset"
	"mvpf.ccj.org/internal/logging"
)

// Client is the main entry point for the row store
type Client struct {
	config        Config
	DB            *sql.DB
	logger        *slog.Logger
	importRuntime time.Duration
}

// NewClient opens the database described by config and applies the schema.
func NewClient(ctx context.Context, config Config) (*Client, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := createDB(ctx, config)
	if err != nil {
		return nil, err
	}

	logger.Debug("row store ready", slog.String("db_path", config.DBPath), slog.String("component", "rowdb"))

	return &Client{
		config: config,
		DB:     db,
		logger: logger,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// ImportRuntime reports how long the last ImportDataset took.
func (c *Client) ImportRuntime() time.Duration {
	return c.importRuntime
}

// ImportDataset replaces the stored rows with the rows of ds in a single transaction.
func (c *Client) ImportDataset(ctx context.Context, ds *dataset.Dataset) (err error) {
	startTime := time.Now()
	defer func() {
		c.importRuntime = time.Since(startTime)
		if err == nil {
			logging.LogOperation(c.logger, "dataset_imported",
				slog.String("source", ds.Source()),
				slog.Int("rows", ds.Len()),
				slog.Duration("duration", c.importRuntime),
				slog.String("component", "rowdb"))
		}
	}()

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "import_dataset")

	if _, err := tx.ExecContext(ctx, "DELETE FROM dataset_rows"); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO dataset_rows (position, name, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer logging.SafeCloseWithLogging(stmt, c.logger, "import_dataset_statement")

	for i, row := range ds.Rows() {
		if _, err := stmt.ExecContext(ctx, i, row.Name, row.Value); err != nil {
			return fmt.Errorf("insert row %q: %w", row.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO imports (source, row_count, imported_at) VALUES (?, ?, ?)",
		ds.Source(), ds.Len(), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}
