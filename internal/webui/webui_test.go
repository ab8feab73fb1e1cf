package webui

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvpf.ccj.org/internal/app"
	"mvpf.ccj.org/internal/appconf"
	"mvpf.ccj.org/internal/bridge"
	"mvpf.ccj.org/internal/dataset"
	"mvpf.ccj.org/internal/registry"
)

func createTestWebUI(t *testing.T, env appconf.Environment, runner bridge.Runner) *WebUI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	ds, err := dataset.Load(ctx, filepath.Join("..", "..", "testdata", "CCJ_MVPF.csv"), logger)
	require.NoError(t, err)

	cfg := appconf.Default()
	cfg.Env = env
	cfg.ApiKeys = []string{"TEST"}

	application, err := app.NewWithComponents(ctx, cfg, logger, ds, registry.Default(), runner)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	return NewWebUI(application)
}

func get(t *testing.T, webUI *WebUI, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := httprouter.New()
	webUI.SetWebUIRoutes(router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func TestDashboardInitialPage(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Test, nil)

	recorder := get(t, webUI, "/")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/html; charset=utf-8", recorder.Header().Get("Content-Type"))
	body := recorder.Body.String()
	assert.Contains(t, body, `<option value="1" selected>1. Pretrial release</option>`)
	assert.Contains(t, body, `<option value="NYC" selected>New York City</option>`)
	assert.Contains(t, body, `value="2010"`)
	assert.Contains(t, body, `name="valuation_year" value="2025"`)
	assert.Contains(t, body, "wtp_freedom")
	assert.NotContains(t, body, `id="result"`)
}

func TestDashboardLocalResult(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Test, nil)

	body := get(t, webUI, "/?alternative=1&scenario=NYC&year=2010").Body.String()

	assert.Contains(t, body, "MVPF: 170.00")
	assert.Contains(t, body, "Switch states: Option 1: false, Option 2: false, Option 3: false, scenario: NYC")
	assert.Contains(t, body, "Short-term detainee: wtp_freedom, lost_wages")
	assert.Contains(t, body, `class="bar selected"`)
	assert.Contains(t, body, `class="dim"`)
}

func TestDashboardValuationYear(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Test, nil)

	body := get(t, webUI, "/?alternative=1&valuation_year=2030").Body.String()
	assert.Contains(t, body, `name="valuation_year" value="2030"`)
	assert.Contains(t, body, "Values in 2030 dollars")

	body = get(t, webUI, "/?alternative=1&valuation_year=99").Body.String()
	assert.Contains(t, body, "year must be between 1900 and 2200")
	assert.NotContains(t, body, `id="result"`)
}

func TestDashboardShowsUnmatched(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Test, nil)

	body := get(t, webUI, "/?alternative=4").Body.String()

	assert.Contains(t, body, "Not in dataset: tax_revenue_gain")
}

func TestDashboardUnknownAlternative(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Test, nil)

	body := get(t, webUI, "/?alternative=9").Body.String()

	assert.Contains(t, body, "No such alternative: 9")
	assert.NotContains(t, body, `class="breakdown"`)
}

func TestDashboardExternalPath(t *testing.T) {
	runner := bridge.RunnerFunc(func(_ context.Context, a bridge.Args) (string, error) {
		return "", &bridge.ProcessError{Kind: bridge.MissingExecutable, Err: assert.AnError}
	})
	webUI := createTestWebUI(t, appconf.Test, runner)

	body := get(t, webUI, "/?alternative=2&scenario=MTL&option1=on").Body.String()

	assert.Contains(t, body, "Error running external script: missing executable")
	assert.Contains(t, body, "scenario: MTL")
	assert.Contains(t, body, `name="option1" checked`)
}

func TestDashboardInputErrors(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Test, nil)

	recorder := get(t, webUI, "/?alternative=abc&year=nope")

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "id: id must be an integer")
	assert.Contains(t, body, "year: ")
	assert.NotContains(t, body, `id="result"`)
}

func TestDashboardEscapesInput(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Test, nil)

	body := get(t, webUI, "/?alternative=1&year=%22%3E%3Cscript%3E").Body.String()

	assert.NotContains(t, body, "<script>")
}

func TestDebugIndexHandler(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Test, nil)

	tests := []struct {
		dataType string
		title    string
		contains string
	}{
		{dataType: "rows", title: "Dataset - Rows", contains: "wtp_freedom"},
		{dataType: "alternatives", title: "Registry - Alternatives", contains: "Bail reform"},
		{dataType: "config", title: "Configuration", contains: "DatasetSource"},
		{dataType: "imports", title: "Row store - Imports", contains: "dataset_rows"},
		{dataType: "", title: "Choose a data type", contains: "Please use one of the following"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			recorder := get(t, webUI, "/debug/?dataType="+tt.dataType)
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.title)
			assert.Contains(t, recorder.Body.String(), tt.contains)
		})
	}
}

func TestDebugAlternativesShowsFields(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Test, nil)
	body := get(t, webUI, "/debug/?dataType=alternatives").Body.String()

	assert.Contains(t, body, "ID: (int) 3")
	assert.Contains(t, body, "Label: (string) (len=11) &#34;Bail reform&#34;")
	assert.Contains(t, body, "Pretrial release")
}

func TestDebugConfigHidesAPIKeys(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Test, nil)
	body := get(t, webUI, "/debug/?dataType=config").Body.String()
	assert.NotContains(t, body, "TEST")
}

func TestDebugDisabledInProduction(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Production, nil)

	recorder := get(t, webUI, "/debug/?dataType=rows")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
