package webui

import (
	"bytes"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"mvpf.ccj.org/internal/logging"
	"mvpf.ccj.org/internal/models"
	"mvpf.ccj.org/internal/mvpf"
)

type alternativeOption struct {
	ID       int
	Label    string
	Selected bool
}

type scenarioOption struct {
	Code     string
	Name     string
	Selected bool
}

type dashboardPage struct {
	Alternatives  []alternativeOption
	Scenarios     []scenarioOption
	Year          string
	ValuationYear string
	Options       [3]bool
	Errors        []string
	Result        *models.CalculationModel
	Chart         chartData
}

// dashboardHandler renders the form and, once submitted, the three result panels.
// Input problems are shown on the page instead of failing the request.
func (webUI *WebUI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	submitted := query.Has("alternative")

	rawID := query.Get("alternative")
	if !submitted {
		if ids := webUI.Registry.IDs(); len(ids) > 0 {
			rawID = strconv.Itoa(ids[0])
		}
	}

	req, fieldErrors := mvpf.ParseRequest(query, rawID)

	page := dashboardPage{
		Year:          query.Get("year"),
		ValuationYear: query.Get("valuation_year"),
		Options:       req.Options,
	}
	if page.Year == "" {
		page.Year = strconv.Itoa(mvpf.DefaultYear)
	}
	if page.ValuationYear == "" {
		page.ValuationYear = strconv.Itoa(mvpf.DefaultValuationYear)
	}
	for _, alt := range webUI.Registry.Alternatives() {
		page.Alternatives = append(page.Alternatives, alternativeOption{ID: alt.ID, Label: alt.Label, Selected: alt.ID == req.AlternativeID})
	}
	for _, s := range mvpf.Scenarios() {
		page.Scenarios = append(page.Scenarios, scenarioOption{Code: s.Code, Name: s.Name, Selected: s.Code == req.Scenario})
	}

	var selected func(string) bool
	if len(fieldErrors) > 0 {
		page.Errors = flattenFieldErrors(fieldErrors)
	} else if submitted {
		res := webUI.Calculator.Calculate(r.Context(), req)
		model := models.NewCalculationModel(res)
		page.Result = &model
		selected = res.Selection.IsSelected
	}
	page.Chart = buildChart(webUI.Dataset.Rows(), selected)

	var buf bytes.Buffer
	if err := webUI.dashboard.Execute(&buf, page); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render dashboard", err,
			slog.String("component", "webui"))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func flattenFieldErrors(fieldErrors map[string][]string) []string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []string
	for _, field := range fields {
		for _, msg := range fieldErrors[field] {
			out = append(out, field+": "+msg)
		}
	}
	return out
}
