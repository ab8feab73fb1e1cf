package models

import "mvpf.ccj.org/internal/dataset"

// RowModel is a dataset row as exposed by the API.
type RowModel struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func NewRowModel(row dataset.Row) RowModel {
	return RowModel{Name: row.Name, Value: row.Value}
}

func NewRowModels(rows []dataset.Row) []RowModel {
	out := make([]RowModel, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewRowModel(row))
	}
	return out
}
