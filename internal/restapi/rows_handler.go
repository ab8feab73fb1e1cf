package restapi

import (
	"net/http"

	"mvpf.ccj.org/internal/models"
	"mvpf.ccj.org/internal/utils"
	"mvpf.ccj.org/rowdb"
)

const (
	defaultRowsLimit = 250
	maxRowsLimit     = 1000
)

func (api *RestAPI) rowsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fieldErrors := make(map[string][]string)

	q, err := utils.ValidateAndSanitizeQuery(query.Get("q"))
	if err != nil {
		fieldErrors["q"] = append(fieldErrors["q"], err.Error())
	}

	limit, fieldErrors := utils.ParseIntParam(query, "limit", defaultRowsLimit, fieldErrors)
	if _, bad := fieldErrors["limit"]; !bad && (limit < 1 || limit > maxRowsLimit) {
		fieldErrors["limit"] = append(fieldErrors["limit"], "limit must be between 1 and 1000")
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	// one extra row tells us whether the limit cut the list
	rows, err := api.RowDB.ListRows(r.Context(), rowdb.ListParams{Query: q, Limit: limit + 1})
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	limitExceeded := len(rows) > limit
	if limitExceeded {
		rows = rows[:limit]
	}

	api.sendResponse(w, r, models.NewListResponseWithLimit(models.NewRowModels(rows), models.NewEmptyReferences(), limitExceeded))
}
