package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"mvpf.ccj.org/internal/logging"
	"mvpf.ccj.org/internal/utils"
)

const (
	nameColumn  = "name"
	valueColumn = "value"

	// DownloadTimeout bounds a remote dataset fetch, body included.
	DownloadTimeout = 30 * time.Second
)

var downloadClient = &http.Client{Timeout: DownloadTimeout}

// IsRemote reports whether source should be downloaded rather than read from disk.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads the dataset from a local CSV path or an http(s) URL.
func Load(ctx context.Context, source string, logger *slog.Logger) (*Dataset, error) {
	start := time.Now()

	var (
		r   io.ReadCloser
		err error
	)
	if IsRemote(source) {
		r, err = download(ctx, source)
	} else {
		r, err = os.Open(source)
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	defer logging.SafeCloseWithLogging(r, logger, "dataset_read")

	ds, err := Parse(r, source)
	if err != nil {
		return nil, err
	}

	logging.LogOperation(logger, "dataset_loaded",
		slog.String("source", source),
		slog.Int("rows", ds.Len()),
		slog.Duration("duration", time.Since(start)))
	return ds, nil
}

func download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading dataset: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("error downloading dataset: unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Parse reads CSV data with at least "name" and "value" columns. Other columns are ignored.
func Parse(r io.Reader, source string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Source: source, Err: ErrNoHeader}
	}
	if err != nil {
		return nil, &LoadError{Source: source, Line: 1, Err: err}
	}

	nameIdx, valueIdx := -1, -1
	for i, cell := range header {
		switch strings.ToLower(utils.NormalizeName(cell)) {
		case nameColumn:
			nameIdx = i
		case valueColumn:
			valueIdx = i
		}
	}
	var missing []string
	if nameIdx < 0 {
		missing = append(missing, nameColumn)
	}
	if valueIdx < 0 {
		missing = append(missing, valueColumn)
	}
	if len(missing) > 0 {
		return nil, &LoadError{Source: source, Line: 1, Err: fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))}
	}

	var rows []Row
	seen := make(map[string]int)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &LoadError{Source: source, Line: parseErr.Line, Err: parseErr.Err}
			}
			return nil, &LoadError{Source: source, Err: err}
		}
		line, _ := reader.FieldPos(0)
		if blankRecord(record) {
			continue
		}
		if nameIdx >= len(record) || valueIdx >= len(record) {
			return nil, &LoadError{Source: source, Line: line, Err: fmt.Errorf("expected at least %d fields, got %d", max(nameIdx, valueIdx)+1, len(record))}
		}

		name := utils.NormalizeName(record[nameIdx])
		if name == "" {
			return nil, &LoadError{Source: source, Line: line, Err: ErrEmptyName}
		}
		if first, dup := seen[name]; dup {
			return nil, &LoadError{Source: source, Line: line, Err: fmt.Errorf("%w (first seen on line %d)", duplicateNameError(name), first)}
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, &LoadError{Source: source, Line: line, Err: fmt.Errorf("invalid value %q for %s", record[valueIdx], name)}
		}

		seen[name] = line
		rows = append(rows, Row{Name: name, Value: value})
	}

	if len(rows) == 0 {
		return nil, &LoadError{Source: source, Err: ErrNoRows}
	}
	return New(source, rows)
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
