// Package dataset loads the table of named cost/benefit rows the calculator sums over.
package dataset

// Row is one named numeric entry in the dataset.
type Row struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Dataset is an immutable, name-keyed set of rows. It keeps file order for charting.
type Dataset struct {
	source string
	rows   []Row
	index  map[string]int
}

// New builds a Dataset from rows. Names must be unique and non-empty.
func New(source string, rows []Row) (*Dataset, error) {
	ds := &Dataset{
		source: source,
		rows:   make([]Row, 0, len(rows)),
		index:  make(map[string]int, len(rows)),
	}
	for i, row := range rows {
		if row.Name == "" {
			return nil, &LoadError{Source: source, Line: i + 1, Err: ErrEmptyName}
		}
		if _, dup := ds.index[row.Name]; dup {
			return nil, &LoadError{Source: source, Line: i + 1, Err: duplicateNameError(row.Name)}
		}
		ds.index[row.Name] = len(ds.rows)
		ds.rows = append(ds.rows, row)
	}
	return ds, nil
}

// Lookup finds a row by exact name.
func (d *Dataset) Lookup(name string) (Row, bool) {
	if d == nil {
		return Row{}, false
	}
	i, ok := d.index[name]
	if !ok {
		return Row{}, false
	}
	return d.rows[i], true
}

// Rows returns a copy of all rows in file order.
func (d *Dataset) Rows() []Row {
	if d == nil {
		return nil
	}
	return append([]Row(nil), d.rows...)
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Source is the path or URL the dataset was read from.
func (d *Dataset) Source() string {
	if d == nil {
		return ""
	}
	return d.source
}
