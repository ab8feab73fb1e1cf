package models

import (
	"mvpf.ccj.org/internal/mvpf"
)

// GroupBreakdownModel is the resolution of one row group.
type GroupBreakdownModel struct {
	Kind     string     `json:"kind"`
	Label    string     `json:"label"`
	Names    []string   `json:"names"`
	Matched  []RowModel `json:"matched"`
	Subtotal float64    `json:"subtotal"`
}

// CalculationModel is the API rendering of one calculation cycle.
type CalculationModel struct {
	RequestID     string                `json:"requestId"`
	AlternativeID int                   `json:"alternativeId"`
	Label         string                `json:"label,omitempty"`
	Found         bool                  `json:"found"`
	Scenario      string                `json:"scenario"`
	Year          int                   `json:"year"`
	ValuationYear int                   `json:"valuationYear"`
	Options       []bool                `json:"options"`
	Aggregate     float64               `json:"aggregate"`
	AggregateText string                `json:"aggregateText"`
	MVPFText      string                `json:"mvpfText"`
	OptionSummary string                `json:"optionSummary"`
	Breakdown     []GroupBreakdownModel `json:"breakdown"`
	BreakdownText string                `json:"breakdownText"`
	Unmatched     []string              `json:"unmatched"`
	External      bool                  `json:"external"`
	ExternalValue string                `json:"externalValue,omitempty"`
	ExternalError string                `json:"externalError,omitempty"`
	DurationMs    float64               `json:"durationMs"`
}

func NewCalculationModel(res mvpf.Result) CalculationModel {
	sel := res.Selection
	breakdown := make([]GroupBreakdownModel, 0, len(sel.Groups))
	for _, g := range sel.Groups {
		breakdown = append(breakdown, GroupBreakdownModel{
			Kind:     g.Kind.Key(),
			Label:    g.Kind.String(),
			Names:    append([]string{}, g.Names...),
			Matched:  NewRowModels(g.Matched),
			Subtotal: g.Subtotal,
		})
	}

	model := CalculationModel{
		RequestID:     res.RequestID,
		AlternativeID: sel.AlternativeID,
		Label:         sel.Label,
		Found:         sel.Found,
		Scenario:      res.Request.Scenario,
		Year:          res.Request.Year,
		ValuationYear: res.Request.ValuationYear,
		Options:       res.Request.Options[:],
		Aggregate:     sel.Aggregate,
		AggregateText: sel.FormatAggregate(),
		MVPFText:      res.MVPFText,
		OptionSummary: res.OptionSummary,
		Breakdown:     breakdown,
		BreakdownText: sel.BreakdownText(),
		Unmatched:     append([]string{}, sel.Unmatched...),
		External:      res.External,
		ExternalValue: res.ExternalValue,
		DurationMs:    float64(res.Duration.Microseconds()) / 1000,
	}
	if res.ExternalError != nil {
		model.ExternalError = res.ExternalError.Error()
	}
	return model
}
