package restapi

import (
	"net/http"

	"mvpf.ccj.org/internal/models"
	"mvpf.ccj.org/internal/mvpf"
	"mvpf.ccj.org/internal/utils"
)

// mvpfHandler runs one calculation cycle. Unknown alternatives are a normal result with found=false.
func (api *RestAPI) mvpfHandler(w http.ResponseWriter, r *http.Request) {
	req, fieldErrors := mvpf.ParseRequest(r.URL.Query(), utils.ExtractIDFromParams(r))
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	res := api.Calculator.Calculate(r.Context(), req)

	references := models.NewEmptyReferences()
	references.AddRows(res.Selection.Matched...)
	if scenario, ok := mvpf.LookupScenario(req.Scenario); ok {
		references.Scenarios = append(references.Scenarios, models.NewScenarioModels([]mvpf.Scenario{scenario})...)
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewCalculationModel(res), references))
}
