package mvpf

import (
	"fmt"
	"net/url"
	"strings"

	"mvpf.ccj.org/internal/utils"
)

// ParseRequest reads the shell inputs from query (scenario, year, valuation_year and
// option1..option3) and the alternative id from rawID. Problems are reported per field.
func ParseRequest(query url.Values, rawID string) (Request, map[string][]string) {
	fieldErrors := make(map[string][]string)
	req := Request{Scenario: DefaultScenario}

	id, err := utils.ParseAlternativeID(rawID)
	if err != nil {
		fieldErrors["id"] = append(fieldErrors["id"], err.Error())
	}
	req.AlternativeID = id

	if raw := strings.TrimSpace(query.Get("scenario")); raw != "" {
		scenario, ok := LookupScenario(raw)
		if !ok {
			fieldErrors["scenario"] = append(fieldErrors["scenario"], fmt.Sprintf("unknown scenario %q", utils.SanitizeInput(raw)))
		}
		req.Scenario = scenario.Code
	}

	req.Year, fieldErrors = utils.ParseIntParam(query, "year", DefaultYear, fieldErrors)
	if _, bad := fieldErrors["year"]; !bad {
		if err := utils.ValidateYear(req.Year); err != nil {
			fieldErrors["year"] = append(fieldErrors["year"], err.Error())
		}
	}

	req.ValuationYear, fieldErrors = utils.ParseIntParam(query, "valuation_year", DefaultValuationYear, fieldErrors)
	if _, bad := fieldErrors["valuation_year"]; !bad {
		if err := utils.ValidateYear(req.ValuationYear); err != nil {
			fieldErrors["valuation_year"] = append(fieldErrors["valuation_year"], err.Error())
		}
	}

	for i := range req.Options {
		req.Options[i], fieldErrors = utils.ParseBoolParam(query, fmt.Sprintf("option%d", i+1), fieldErrors)
	}

	return req, fieldErrors
}
