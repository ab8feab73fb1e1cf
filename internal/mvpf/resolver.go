// Package mvpf resolves policy alternatives against the dataset and runs the calculation cycle.
package mvpf

import (
	"fmt"
	"strings"

	"mvpf.ccj.org/internal/dataset"
	"mvpf.ccj.org/internal/registry"
)

// GroupBreakdown is the resolution of one row group of an alternative.
type GroupBreakdown struct {
	Kind registry.RowGroupKind
	// Names is the definition list, matched or not.
	Names    []string
	Matched  []dataset.Row
	Subtotal float64
}

// Selection is the outcome of resolving one alternative id.
type Selection struct {
	AlternativeID int
	Label         string
	Found         bool
	// Groups holds one entry per RowGroupKind in fixed order when Found.
	Groups    []GroupBreakdown
	Matched   []dataset.Row
	Unmatched []string
	Aggregate float64
}

// Resolver maps alternative ids to dataset rows through the registry.
type Resolver struct {
	registry *registry.Registry
}

func NewResolver(reg *registry.Registry) *Resolver {
	return &Resolver{registry: reg}
}

func (r *Resolver) Registry() *registry.Registry {
	return r.registry
}

// Resolve selects the rows referenced by alternative id and sums their values.
// References missing from ds are collected in Unmatched. An unknown id yields
// a Selection with Found false and a zero aggregate.
func (r *Resolver) Resolve(id int, ds *dataset.Dataset) Selection {
	sel := Selection{AlternativeID: id}

	alt, ok := r.registry.Lookup(id)
	if !ok {
		return sel
	}
	sel.Found = true
	sel.Label = alt.Label
	sel.Groups = make([]GroupBreakdown, 0, len(registry.Kinds))

	for _, kind := range registry.Kinds {
		group := GroupBreakdown{Kind: kind, Names: alt.Names(kind)}
		for _, name := range group.Names {
			row, found := ds.Lookup(name)
			if !found {
				sel.Unmatched = append(sel.Unmatched, name)
				continue
			}
			group.Matched = append(group.Matched, row)
			group.Subtotal += row.Value
			sel.Matched = append(sel.Matched, row)
			sel.Aggregate += row.Value
		}
		sel.Groups = append(sel.Groups, group)
	}

	return sel
}

// BreakdownText lists each group's definition in fixed order, one kind per line.
func (s Selection) BreakdownText() string {
	if !s.Found {
		return ""
	}
	var sb strings.Builder
	for i, g := range s.Groups {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %s", g.Kind, strings.Join(g.Names, ", "))
	}
	return sb.String()
}

// FormatAggregate renders the aggregate with two decimals.
func (s Selection) FormatAggregate() string {
	return fmt.Sprintf("%.2f", s.Aggregate)
}

// Message is the primary line shown for the selection.
func (s Selection) Message() string {
	if !s.Found {
		return fmt.Sprintf("No such alternative: %d", s.AlternativeID)
	}
	return "MVPF: " + s.FormatAggregate()
}

// IsSelected reports whether the named row contributed to the aggregate.
func (s Selection) IsSelected(name string) bool {
	for _, row := range s.Matched {
		if row.Name == name {
			return true
		}
	}
	return false
}
