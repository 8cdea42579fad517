package leadquery_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/leadquery"
)

var t0 = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func sample() []entity.Lead {
	return []entity.Lead{
		{ID: "lead-c", Name: "Carol", Email: "carol@acme.io", Company: "Acme", Source: "Website", Status: entity.StatusNew, CreatedAt: t0.Add(3 * time.Hour)},
		{ID: "lead-a", Name: "alice", Email: "alice@globex.com", Company: "Globex", Source: "Referral", Status: entity.StatusConverted, CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "lead-b", Name: "Bob", Email: "bob@initech.com", Company: "Initech", Source: "Website", Status: entity.StatusLost, CreatedAt: t0.Add(time.Hour)},
		{ID: "lead-d", Name: "Dan", Email: "dan@acme.io", Company: "Acme", Source: "Meta Ads", Status: entity.StatusNew, CreatedAt: t0},
	}
}

func ids(leads []entity.Lead) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.ID
	}
	return out
}

// TestAllFiltersReturnEverything - source and status "all" keep the full set
func TestAllFiltersReturnEverything(t *testing.T) {
	leads := sample()
	f := leadquery.Filter{Source: leadquery.All, Status: leadquery.All}

	assert.ElementsMatch(t, ids(leads), ids(f.Apply(leads)))
	assert.Len(t, leadquery.Filter{}.Apply(leads), len(leads))
}

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name   string
		filter leadquery.Filter
		want   []string
	}{
		{"search name case-insensitive", leadquery.Filter{Search: "ALI"}, []string{"lead-a"}},
		{"search email", leadquery.Filter{Search: "acme.io"}, []string{"lead-c", "lead-d"}},
		{"search company", leadquery.Filter{Search: "initech"}, []string{"lead-b"}},
		{"source", leadquery.Filter{Source: "Website"}, []string{"lead-c", "lead-b"}},
		{"status", leadquery.Filter{Status: "New"}, []string{"lead-c", "lead-d"}},
		{"status any case", leadquery.Filter{Status: "converted"}, []string{"lead-a"}},
		{"combined", leadquery.Filter{Search: "acme", Source: "Meta Ads", Status: "New"}, []string{"lead-d"}},
		{"no match", leadquery.Filter{Search: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Apply(sample())))
		})
	}
}

func TestSort(t *testing.T) {
	leads := sample()

	leadquery.Sort(leads, leadquery.SortByCreatedAt, leadquery.Asc)
	assert.Equal(t, []string{"lead-d", "lead-b", "lead-a", "lead-c"}, ids(leads))

	leadquery.Sort(leads, leadquery.SortByCreatedAt, leadquery.Desc)
	assert.Equal(t, []string{"lead-c", "lead-a", "lead-b", "lead-d"}, ids(leads))

	leadquery.Sort(leads, leadquery.SortByName, leadquery.Asc)
	assert.Equal(t, []string{"lead-b", "lead-c", "lead-d", "lead-a"}, ids(leads), "byte order puts lowercase last")
}

// TestSortTieBreakIsDeterministic - equal keys order by ID whatever the input order
func TestSortTieBreakIsDeterministic(t *testing.T) {
	a := []entity.Lead{
		{ID: "lead-2", Source: "Website"},
		{ID: "lead-1", Source: "Website"},
		{ID: "lead-3", Source: "Website"},
	}
	b := []entity.Lead{a[2], a[0], a[1]}

	leadquery.Sort(a, leadquery.SortBySource, leadquery.Asc)
	leadquery.Sort(b, leadquery.SortBySource, leadquery.Asc)
	assert.Equal(t, []string{"lead-1", "lead-2", "lead-3"}, ids(a))
	assert.Equal(t, ids(a), ids(b))

	leadquery.Sort(a, leadquery.SortBySource, leadquery.Desc)
	assert.Equal(t, []string{"lead-3", "lead-2", "lead-1"}, ids(a))
}

func TestParseSortDefaults(t *testing.T) {
	assert.Equal(t, leadquery.SortByCreatedAt, leadquery.ParseSortField(""))
	assert.Equal(t, leadquery.SortByCreatedAt, leadquery.ParseSortField("value"))
	assert.Equal(t, leadquery.SortByName, leadquery.ParseSortField("name"))
	assert.Equal(t, leadquery.Desc, leadquery.ParseSortOrder(""))
	assert.Equal(t, leadquery.Asc, leadquery.ParseSortOrder("ASC"))
}

func TestPaginate(t *testing.T) {
	var leads []entity.Lead
	for i := 0; i < 45; i++ {
		leads = append(leads, entity.Lead{ID: fmt.Sprintf("lead-%02d", i)})
	}

	assert.Equal(t, 3, leadquery.TotalPages(45))
	assert.Equal(t, 0, leadquery.TotalPages(0))
	assert.Equal(t, 1, leadquery.TotalPages(20))

	first := leadquery.Paginate(leads, 1)
	require.Len(t, first, 20)
	assert.Equal(t, "lead-00", first[0].ID)

	last := leadquery.Paginate(leads, 3)
	require.Len(t, last, 5)
	assert.Equal(t, "lead-40", last[0].ID)

	assert.Equal(t, first, leadquery.Paginate(leads, 0))
	assert.Empty(t, leadquery.Paginate(leads, 4))
}

func TestRun(t *testing.T) {
	page := leadquery.Run(sample(), leadquery.Query{
		Filter:    leadquery.Filter{Source: "Website"},
		SortField: leadquery.SortByName,
		SortOrder: leadquery.Asc,
	})

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, leadquery.PageSize, page.PageSize)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, []string{"lead-b", "lead-c"}, ids(page.Items))
}

func TestSources(t *testing.T) {
	assert.Equal(t, []string{"Website", "Referral", "Meta Ads"}, leadquery.Sources(sample()))
	assert.Empty(t, leadquery.Sources(nil))
}
