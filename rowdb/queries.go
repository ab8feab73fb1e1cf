package rowdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mvpf.ccj.org/internal/dataset"
	"mvpf.ccj.org/internal/logging"
)

// ErrRowNotFound is returned by GetRow for names that are not stored.
var ErrRowNotFound = errors.New("row not found")

// ListParams filters ListRows. An empty Query matches every row; Limit <= 0 means no limit.
type ListParams struct {
	Query string
	Limit int
}

// ListRows returns stored rows in dataset order, optionally filtered by a
// case-insensitive substring of the name.
func (c *Client) ListRows(ctx context.Context, params ListParams) ([]dataset.Row, error) {
	var sb strings.Builder
	sb.WriteString("SELECT name, value FROM dataset_rows")

	var args []any
	if params.Query != "" {
		sb.WriteString(` WHERE name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(params.Query)+"%")
	}
	sb.WriteString(" ORDER BY position")
	if params.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, params.Limit)
	}

	rows, err := c.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "list_rows")

	result := []dataset.Row{}
	for rows.Next() {
		var row dataset.Row
		if err := rows.Scan(&row.Name, &row.Value); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}
	return result, nil
}

// GetRow fetches one row by exact name.
func (c *Client) GetRow(ctx context.Context, name string) (dataset.Row, error) {
	var row dataset.Row
	err := c.DB.QueryRowContext(ctx, "SELECT name, value FROM dataset_rows WHERE name = ?", name).
		Scan(&row.Name, &row.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return dataset.Row{}, ErrRowNotFound
	}
	if err != nil {
		return dataset.Row{}, fmt.Errorf("get row %q: %w", name, err)
	}
	return row, nil
}

// CountRows reports how many rows are stored.
func (c *Client) CountRows(ctx context.Context) (int, error) {
	var count int
	if err := c.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM dataset_rows").Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return count, nil
}

// ImportRecord is one entry from the import history.
type ImportRecord struct {
	Source     string
	RowCount   int
	ImportedAt string
}

// LastImport returns the most recent import, or ok=false if nothing was imported.
func (c *Client) LastImport(ctx context.Context) (ImportRecord, bool, error) {
	var rec ImportRecord
	err := c.DB.QueryRowContext(ctx,
		"SELECT source, row_count, imported_at FROM imports ORDER BY id DESC LIMIT 1").
		Scan(&rec.Source, &rec.RowCount, &rec.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ImportRecord{}, false, nil
	}
	if err != nil {
		return ImportRecord{}, false, fmt.Errorf("last import: %w", err)
	}
	return rec, true, nil
}

// TableCounts returns the number of rows in every user table.
func (c *Client) TableCounts(ctx context.Context) (map[string]int, error) {
	tables, err := c.tableNames(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %q", table)
		if err := c.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}

func (c *Client) tableNames(ctx context.Context) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("query table names: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "table_names")

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
