package registry

import "fmt"

// RowGroupKind is one of the six fixed cost/benefit categories an alternative groups its rows into.
type RowGroupKind int

const (
	ShortTermDetainee RowGroupKind = iota
	LongTermDetainee
	ShortTermSociety
	LongTermSociety
	ShortTermGovernment
	LongTermGovernment
)

// Kinds lists every RowGroupKind in display and summation order.
var Kinds = [...]RowGroupKind{
	ShortTermDetainee,
	LongTermDetainee,
	ShortTermSociety,
	LongTermSociety,
	ShortTermGovernment,
	LongTermGovernment,
}

var kindKeys = [...]string{
	ShortTermDetainee:   "st_detainee",
	LongTermDetainee:    "lt_detainee",
	ShortTermSociety:    "st_society",
	LongTermSociety:     "lt_society",
	ShortTermGovernment: "st_government",
	LongTermGovernment:  "lt_government",
}

var kindLabels = [...]string{
	ShortTermDetainee:   "Short-term detainee",
	LongTermDetainee:    "Long-term detainee",
	ShortTermSociety:    "Short-term society",
	LongTermSociety:     "Long-term society",
	ShortTermGovernment: "Short-term government",
	LongTermGovernment:  "Long-term government",
}

func (k RowGroupKind) Valid() bool {
	return k >= ShortTermDetainee && k <= LongTermGovernment
}

// Key is the stable identifier used in configuration documents and JSON.
func (k RowGroupKind) Key() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindKeys[k]
}

func (k RowGroupKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("RowGroupKind(%d)", int(k))
	}
	return kindLabels[k]
}

// ParseRowGroupKind resolves a configuration key such as "st_detainee".
func ParseRowGroupKind(key string) (RowGroupKind, error) {
	for _, k := range Kinds {
		if kindKeys[k] == key {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown row group %q", key)
}
