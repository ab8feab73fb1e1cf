package mvpf

import "strings"

const (
	DefaultScenario      = "NYC"
	DefaultYear          = 2010
	DefaultValuationYear = 2025
)

// Scenario is a jurisdiction the external model can be run for.
type Scenario struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var scenarios = []Scenario{
	{Code: "NYC", Name: "New York City"},
	{Code: "MTL", Name: "Montr\u00e9al"},
	{Code: "SF", Name: "San Francisco"},
}

// Scenarios returns the known scenarios, default first.
func Scenarios() []Scenario {
	return append([]Scenario(nil), scenarios...)
}

// LookupScenario finds a scenario by code, ignoring case.
func LookupScenario(code string) (Scenario, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, s := range scenarios {
		if s.Code == code {
			return s, true
		}
	}
	return Scenario{}, false
}
