package restapi

import (
	"net/http"

	"mvpf.ccj.org/internal/models"
)

type healthStatus struct {
	Status       string `json:"status"`
	Rows         int    `json:"rows"`
	Alternatives int    `json:"alternatives"`
}

// healthHandler reports readiness. It needs no API key.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	count, err := api.RowDB.CountRows(r.Context())
	if err != nil {
		api.writeError(w, http.StatusServiceUnavailable, "row store unavailable")
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(healthStatus{
		Status:       "ok",
		Rows:         count,
		Alternatives: api.Registry.Len(),
	}))
}
