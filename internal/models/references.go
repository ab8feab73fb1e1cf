package models

import "mvpf.ccj.org/internal/dataset"

// ReferencesModel carries entities an entry or list points at.
type ReferencesModel struct {
	Rows      []RowModel      `json:"rows"`
	Scenarios []ScenarioModel `json:"scenarios"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Rows:      []RowModel{},
		Scenarios: []ScenarioModel{},
	}
}

// AddRows appends rows not already referenced.
func (r *ReferencesModel) AddRows(rows ...dataset.Row) {
	seen := make(map[string]bool, len(r.Rows))
	for _, existing := range r.Rows {
		seen[existing.Name] = true
	}
	for _, row := range rows {
		if seen[row.Name] {
			continue
		}
		seen[row.Name] = true
		r.Rows = append(r.Rows, NewRowModel(row))
	}
}
