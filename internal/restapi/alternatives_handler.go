package restapi

import (
	"net/http"

	"mvpf.ccj.org/internal/models"
	"mvpf.ccj.org/internal/utils"
)

func (api *RestAPI) alternativesHandler(w http.ResponseWriter, r *http.Request) {
	alternatives := api.Registry.Alternatives()

	list := make([]models.AlternativeModel, 0, len(alternatives))
	references := models.NewEmptyReferences()
	for _, alt := range alternatives {
		list = append(list, models.NewAlternativeModel(alt))
		references.AddRows(api.Calculator.Resolver().Resolve(alt.ID, api.Dataset).Matched...)
	}

	api.sendResponse(w, r, models.NewListResponse(list, references))
}

func (api *RestAPI) alternativeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseAlternativeID(utils.ExtractIDFromParams(r))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	alt, ok := api.Registry.Lookup(id)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	references := models.NewEmptyReferences()
	sel := api.Calculator.Resolver().Resolve(id, api.Dataset)
	references.AddRows(sel.Matched...)

	api.sendResponse(w, r, models.NewEntryResponse(models.NewAlternativeModel(alt), references))
}
