// Package leadquery filters, sorts and pages leads for the leads table.
package leadquery

import (
	"sort"
	"strings"

	"github.com/xavierca1/leadpulse/internal/entity"
)

// PageSize is the fixed number of leads per page.
const PageSize = 20

// All disables the source or status filter.
const All = "all"

type SortField string

const (
	SortByName      SortField = "name"
	SortBySource    SortField = "source"
	SortByCreatedAt SortField = "createdAt"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

type Filter struct {
	Search string
	Source string
	Status string
}

type Query struct {
	Filter
	SortField SortField
	SortOrder SortOrder
	Page      int
}

// Page is one slice of the filtered, sorted result.
type Page struct {
	Items      []entity.Lead `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
	// Total is the size of the unfiltered collection.
	Total int `json:"total"`
}

func ParseSortField(raw string) SortField {
	switch SortField(raw) {
	case SortByName, SortBySource:
		return SortField(raw)
	}
	return SortByCreatedAt
}

func ParseSortOrder(raw string) SortOrder {
	if strings.EqualFold(raw, string(Asc)) {
		return Asc
	}
	return Desc
}

func (f Filter) Match(l entity.Lead) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(l.Name), term) &&
			!strings.Contains(strings.ToLower(l.Email), term) &&
			!strings.Contains(strings.ToLower(l.Company), term) {
			return false
		}
	}
	if !isAll(f.Source) && l.Source != f.Source {
		return false
	}
	if !isAll(f.Status) && !strings.EqualFold(string(l.Status), f.Status) {
		return false
	}
	return true
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, All)
}

// Apply filters leads in their incoming order.
func (f Filter) Apply(leads []entity.Lead) []entity.Lead {
	out := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	return out
}

// Sort orders leads in place. Equal keys fall back to the lead ID in the
// same direction, so the result does not depend on the input order.
func Sort(leads []entity.Lead, field SortField, order SortOrder) {
	cmp := compareBy(field)
	sort.SliceStable(leads, func(i, j int) bool {
		c := cmp(leads[i], leads[j])
		if c == 0 {
			c = strings.Compare(leads[i].ID, leads[j].ID)
		}
		if order == Asc {
			return c < 0
		}
		return c > 0
	})
}

func compareBy(field SortField) func(a, b entity.Lead) int {
	switch field {
	case SortByName:
		return func(a, b entity.Lead) int { return strings.Compare(a.Name, b.Name) }
	case SortBySource:
		return func(a, b entity.Lead) int { return strings.Compare(a.Source, b.Source) }
	default:
		return func(a, b entity.Lead) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}

// TotalPages is ceil(total/PageSize).
func TotalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}

// Paginate returns page n (1-based). n below 1 is treated as 1; pages past
// the end are empty.
func Paginate(leads []entity.Lead, n int) []entity.Lead {
	if n < 1 {
		n = 1
	}
	start := (n - 1) * PageSize
	if start >= len(leads) {
		return []entity.Lead{}
	}
	end := start + PageSize
	if end > len(leads) {
		end = len(leads)
	}
	return leads[start:end]
}

// Matching returns every lead that passes the filter, sorted. Exports use
// it to work on the full result rather than one page.
func Matching(leads []entity.Lead, q Query) []entity.Lead {
	out := q.Filter.Apply(leads)
	Sort(out, q.SortField, q.SortOrder)
	return out
}

func Run(leads []entity.Lead, q Query) Page {
	matched := Matching(leads, q)
	page := q.Page
	if page < 1 {
		page = 1
	}
	return Page{
		Items:      Paginate(matched, page),
		Page:       page,
		PageSize:   PageSize,
		TotalItems: len(matched),
		TotalPages: TotalPages(len(matched)),
		Total:      len(leads),
	}
}

// Sources lists distinct sources in first-seen order.
func Sources(leads []entity.Lead) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, l := range leads {
		if !seen[l.Source] {
			seen[l.Source] = true
			out = append(out, l.Source)
		}
	}
	return out
}
