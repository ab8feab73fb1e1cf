package restapi

import (
	"net/http"

	"mvpf.ccj.org/internal/models"
	"mvpf.ccj.org/internal/mvpf"
)

func (api *RestAPI) scenariosHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(models.NewScenarioModels(mvpf.Scenarios()), models.NewEmptyReferences()))
}
