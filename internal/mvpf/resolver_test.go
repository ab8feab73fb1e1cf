package mvpf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvpf.ccj.org/internal/dataset"
	"mvpf.ccj.org/internal/registry"
)

func exampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("test", []dataset.Row{
		{Name: "wtp_freedom", Value: 100},
		{Name: "lost_wages", Value: 50},
		{Name: "income_reduced", Value: 20},
		{Name: "crime_prev_measure", Value: 30},
		{Name: "wrongful_death_wtp_life", Value: 40},
		{Name: "ccj_funding_2018", Value: -60},
		{Name: "inc_conv_len", Value: -10},
	})
	require.NoError(t, err)
	return ds
}

func TestResolveAlternativeOne(t *testing.T) {
	resolver := NewResolver(registry.Default())

	sel := resolver.Resolve(1, exampleDataset(t))

	require.True(t, sel.Found)
	assert.Equal(t, "Pretrial release", sel.Label)
	assert.Equal(t, 170.0, sel.Aggregate)
	assert.Equal(t, "MVPF: 170.00", sel.Message())
	assert.Empty(t, sel.Unmatched)
	assert.Len(t, sel.Matched, 7)
}

func TestResolveBreakdownMatchesDefinition(t *testing.T) {
	reg := registry.Default()
	resolver := NewResolver(reg)
	ds := exampleDataset(t)

	for _, id := range reg.IDs() {
		alt, ok := reg.Lookup(id)
		require.True(t, ok)

		sel := resolver.Resolve(id, ds)
		require.True(t, sel.Found)
		require.Len(t, sel.Groups, len(registry.Kinds))
		for i, g := range sel.Groups {
			assert.Equal(t, registry.Kinds[i], g.Kind)
			if diff := cmp.Diff(alt.Names(g.Kind), g.Names); diff != "" {
				t.Errorf("alternative %d %s mismatch (-want +got):\n%s", id, g.Kind, diff)
			}
		}
		assert.Equal(t, alt.String(), sel.BreakdownText())
	}
}

func TestResolveUnknownAlternative(t *testing.T) {
	resolver := NewResolver(registry.Default())

	sel := resolver.Resolve(99, exampleDataset(t))

	assert.False(t, sel.Found)
	assert.Equal(t, 0.0, sel.Aggregate)
	assert.Empty(t, sel.Groups)
	assert.Empty(t, sel.BreakdownText())
	assert.Equal(t, "No such alternative: 99", sel.Message())
	assert.Equal(t, "0.00", sel.FormatAggregate())
}

func TestResolveSkipsUnmatchedReferences(t *testing.T) {
	reg, err := registry.NewBuilder().
		Define(1, "partial", registry.Groups{registry.ShortTermSociety: {"a", "b", "c"}}).
		Build()
	require.NoError(t, err)
	ds, err := dataset.New("test", []dataset.Row{{Name: "a", Value: 10}, {Name: "b", Value: 5.5}})
	require.NoError(t, err)

	sel := NewResolver(reg).Resolve(1, ds)

	assert.Equal(t, 15.5, sel.Aggregate)
	assert.Equal(t, []string{"c"}, sel.Unmatched)
	assert.True(t, sel.IsSelected("a"))
	assert.False(t, sel.IsSelected("c"))
	assert.Equal(t, 15.5, sel.Groups[registry.ShortTermSociety].Subtotal)
}

func TestResolveEmptyGroup(t *testing.T) {
	reg, err := registry.NewBuilder().
		Define(1, "with empty", registry.Groups{
			registry.ShortTermDetainee: {"a"},
			registry.LongTermDetainee:  {},
			registry.LongTermSociety:   {"b"},
		}).
		Define(2, "without", registry.Groups{
			registry.ShortTermDetainee: {"a"},
			registry.LongTermSociety:   {"b"},
		}).
		Build()
	require.NoError(t, err)
	ds, err := dataset.New("test", []dataset.Row{{Name: "a", Value: 1.25}, {Name: "b", Value: 2}})
	require.NoError(t, err)
	resolver := NewResolver(reg)

	withEmpty := resolver.Resolve(1, ds)
	without := resolver.Resolve(2, ds)

	assert.Equal(t, 3.25, withEmpty.Aggregate)
	assert.Equal(t, without.Aggregate, withEmpty.Aggregate)
	assert.Empty(t, withEmpty.Groups[registry.LongTermDetainee].Matched)
	assert.Equal(t, 0.0, withEmpty.Groups[registry.LongTermDetainee].Subtotal)
}

func TestResolveDuplicateReferenceCountsTwice(t *testing.T) {
	reg, err := registry.NewBuilder().
		Define(1, "dup", registry.Groups{
			registry.ShortTermDetainee:   {"a"},
			registry.ShortTermGovernment: {"a"},
		}).
		Build()
	require.NoError(t, err)
	ds, err := dataset.New("test", []dataset.Row{{Name: "a", Value: 4}})
	require.NoError(t, err)

	sel := NewResolver(reg).Resolve(1, ds)
	assert.Equal(t, 8.0, sel.Aggregate)
	assert.Len(t, sel.Matched, 2)
}

func TestResolveIsDeterministic(t *testing.T) {
	resolver := NewResolver(registry.Default())
	ds := exampleDataset(t)

	for _, id := range []int{1, 2, 3, 4, 42} {
		first := resolver.Resolve(id, ds)
		second := resolver.Resolve(id, ds)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("resolve(%d) not deterministic (-first +second):\n%s", id, diff)
		}
	}
}

func TestResolveNilDataset(t *testing.T) {
	sel := NewResolver(registry.Default()).Resolve(1, nil)
	assert.True(t, sel.Found)
	assert.Equal(t, 0.0, sel.Aggregate)
	assert.Len(t, sel.Unmatched, 7)
}

func TestLookupScenario(t *testing.T) {
	s, ok := LookupScenario(" mtl ")
	require.True(t, ok)
	assert.Equal(t, "MTL", s.Code)

	_, ok = LookupScenario("LA")
	assert.False(t, ok)

	assert.Equal(t, DefaultScenario, Scenarios()[0].Code)
}
