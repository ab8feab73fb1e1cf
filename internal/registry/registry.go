// Package registry holds the fixed table of policy alternatives and the dataset rows each one draws on.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"mvpf.ccj.org/internal/utils"
)

// Groups maps each RowGroupKind to the ordered row names it references. Missing kinds are empty.
type Groups map[RowGroupKind][]string

// Alternative is one named policy scenario definition.
type Alternative struct {
	ID     int
	Label  string
	Groups Groups
}

// Names returns the row names of kind k in definition order.
func (a Alternative) Names(k RowGroupKind) []string {
	return a.Groups[k]
}

// References counts row references across all kinds, duplicates included.
func (a Alternative) References() int {
	n := 0
	for _, k := range Kinds {
		n += len(a.Groups[k])
	}
	return n
}

func (a Alternative) clone() Alternative {
	out := Alternative{ID: a.ID, Label: a.Label, Groups: make(Groups, len(a.Groups))}
	for k, names := range a.Groups {
		out.Groups[k] = append([]string(nil), names...)
	}
	return out
}

// Registry is an immutable lookup table of alternatives. Build one with a Builder.
type Registry struct {
	order []int
	byID  map[int]Alternative
}

// Lookup returns the alternative with the given id. The result is a copy.
func (r *Registry) Lookup(id int) (Alternative, bool) {
	if r == nil {
		return Alternative{}, false
	}
	alt, ok := r.byID[id]
	if !ok {
		return Alternative{}, false
	}
	return alt.clone(), true
}

// IDs returns alternative identifiers in definition order.
func (r *Registry) IDs() []int {
	if r == nil {
		return nil
	}
	return append([]int(nil), r.order...)
}

// Alternatives returns every definition in definition order.
func (r *Registry) Alternatives() []Alternative {
	if r == nil {
		return nil
	}
	out := make([]Alternative, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].clone())
	}
	return out
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Builder collects definitions at startup. Errors are accumulated and reported by Build.
type Builder struct {
	order []int
	byID  map[int]Alternative
	errs  []error
}

func NewBuilder() *Builder {
	return &Builder{byID: make(map[int]Alternative)}
}

// Define adds an alternative. Row names are trimmed and NFC-normalised; blank names are dropped.
func (b *Builder) Define(id int, label string, groups Groups) *Builder {
	if _, dup := b.byID[id]; dup {
		b.errs = append(b.errs, fmt.Errorf("alternative %d defined twice", id))
		return b
	}

	alt := Alternative{ID: id, Label: utils.NormalizeName(label), Groups: make(Groups, len(groups))}
	if alt.Label == "" {
		alt.Label = fmt.Sprintf("Alternative %d", id)
	}
	for k, names := range groups {
		if !k.Valid() {
			b.errs = append(b.errs, fmt.Errorf("alternative %d: %s is not a row group", id, k))
			continue
		}
		cleaned := make([]string, 0, len(names))
		for _, name := range names {
			name = utils.NormalizeName(name)
			if name == "" {
				continue
			}
			cleaned = append(cleaned, name)
		}
		alt.Groups[k] = cleaned
	}

	b.byID[id] = alt
	b.order = append(b.order, id)
	return b
}

// Build freezes the definitions into a Registry.
func (b *Builder) Build() (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if len(b.order) == 0 {
		return nil, errors.New("registry has no alternatives")
	}
	r := &Registry{
		order: append([]int(nil), b.order...),
		byID:  make(map[int]Alternative, len(b.byID)),
	}
	for id, alt := range b.byID {
		r.byID[id] = alt.clone()
	}
	return r, nil
}

// String renders an alternative's definition, one kind per line, in fixed order.
func (a Alternative) String() string {
	var sb strings.Builder
	for i, k := range Kinds {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(k.String())
		sb.WriteString(": ")
		sb.WriteString(strings.Join(a.Groups[k], ", "))
	}
	return sb.String()
}
