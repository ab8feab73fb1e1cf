package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mvpf.ccj.org/internal/app"
	"mvpf.ccj.org/internal/appconf"
	"mvpf.ccj.org/internal/bridge"
	"mvpf.ccj.org/internal/dataset"
	"mvpf.ccj.org/internal/models"
	"mvpf.ccj.org/internal/registry"
)

// externalStub stands in for the statistical script and echoes its arguments.
var externalStub = bridge.RunnerFunc(func(_ context.Context, a bridge.Args) (string, error) {
	return "2.50 " + a.Scenario, nil
})

// createTestApi creates a RestAPI over the fixture dataset and the built-in alternatives.
func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithRunner(t, externalStub)
}

func createTestApiWithRunner(t *testing.T, runner bridge.Runner) *RestAPI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	ds, err := dataset.Load(ctx, filepath.Join("..", "..", "testdata", "CCJ_MVPF.csv"), logger)
	require.NoError(t, err)

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.ApiKeys = []string{"TEST"}

	application, err := app.NewWithComponents(ctx, cfg, logger, ds, registry.Default(), runner)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// serveAndDecodeRaw returns the body as a generic map for documents that are not envelopes.
func serveAndDecodeRaw(t *testing.T, api *RestAPI, endpoint string) (*http.Response, map[string]interface{}) {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry should be an object")
	return entry
}

func listOf(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "data.list should be an array")
	return list
}
