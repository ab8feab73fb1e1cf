package models

import (
	"mvpf.ccj.org/internal/mvpf"
	"mvpf.ccj.org/internal/registry"
)

// RowGroupModel is one of the six row groups of an alternative.
type RowGroupModel struct {
	Kind  string   `json:"kind"`
	Label string   `json:"label"`
	Names []string `json:"names"`
}

// AlternativeModel is a policy alternative definition.
type AlternativeModel struct {
	ID     int             `json:"id"`
	Label  string          `json:"label"`
	Groups []RowGroupModel `json:"groups"`
}

// NewAlternativeModel lists every kind in fixed order; absent kinds have empty names.
func NewAlternativeModel(alt registry.Alternative) AlternativeModel {
	groups := make([]RowGroupModel, 0, len(registry.Kinds))
	for _, kind := range registry.Kinds {
		names := append([]string{}, alt.Names(kind)...)
		groups = append(groups, RowGroupModel{Kind: kind.Key(), Label: kind.String(), Names: names})
	}
	return AlternativeModel{ID: alt.ID, Label: alt.Label, Groups: groups}
}

// ScenarioModel is a jurisdiction the external model understands.
type ScenarioModel struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

func NewScenarioModels(scenarios []mvpf.Scenario) []ScenarioModel {
	out := make([]ScenarioModel, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, ScenarioModel{Code: s.Code, Name: s.Name, Default: s.Code == mvpf.DefaultScenario})
	}
	return out
}
