package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvpf.ccj.org/internal/appconf"
	"mvpf.ccj.org/internal/dataset"
)

func testConfig(t *testing.T) appconf.Config {
	t.Helper()
	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.DatasetSource = filepath.Join("..", "..", "testdata", "CCJ_MVPF.csv")
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewLoadsEverything(t *testing.T) {
	application, err := New(context.Background(), testConfig(t), quietLogger())
	require.NoError(t, err)
	defer func() { _ = application.Close() }()

	assert.Equal(t, 16, application.Dataset.Len())
	assert.Equal(t, 4, application.Registry.Len())

	count, err := application.RowDB.CountRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, application.Dataset.Len(), count)

	sel := application.Calculator.Resolver().Resolve(1, application.Dataset)
	assert.Equal(t, 170.0, sel.Aggregate)
}

func TestNewWithAlternativesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.AlternativesPath = filepath.Join("..", "..", "configs", "alternatives.yaml")

	application, err := New(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	defer func() { _ = application.Close() }()

	assert.Equal(t, []int{1, 2, 3, 4}, application.Registry.IDs())
}

func TestNewFailsOnMissingDataset(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatasetSource = filepath.Join(t.TempDir(), "missing.csv")

	application, err := New(context.Background(), cfg, quietLogger())
	assert.Nil(t, application)
	assert.ErrorIs(t, err, dataset.ErrLoad)
}

func TestNewFailsOnBadAlternatives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alternatives.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alternatives: []\n"), 0o600))

	cfg := testConfig(t)
	cfg.AlternativesPath = path

	application, err := New(context.Background(), cfg, quietLogger())
	assert.Nil(t, application)
	assert.Error(t, err)
}

func TestNewFailsOnInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBPath = "rows.sqlite"

	application, err := New(context.Background(), cfg, quietLogger())
	assert.Nil(t, application)
	assert.ErrorContains(t, err, "invalid configuration")
}
