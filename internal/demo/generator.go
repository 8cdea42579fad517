// Package demo produces synthetic leads for demos and local development.
// Nothing in here is used to ingest real traffic.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/xavierca1/leadpulse/internal/entity"
)

const (
	// HistoryDays bounds how far back seeded leads are dated.
	HistoryDays = 30
	minValue    = 5000
	valueSpread = 50000
)

var companySuffixes = []string{"Corp", "Inc", "LLC", "Group", "Industries"}

type Generator struct {
	faker *gofakeit.Faker
	rnd   *rand.Rand
	now   func() time.Time
}

// NewGenerator seeds both the faker and the field picker. A zero seed picks
// a random one.
func NewGenerator(seed int64, now func() time.Time) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{
		faker: gofakeit.New(seed),
		rnd:   rand.New(rand.NewSource(seed)),
		now:   now,
	}
}

func (g *Generator) pick(options []string) string {
	return options[g.rnd.Intn(len(options))]
}

// Lead builds one plausible lead created at createdAt. Status and owner are
// random, so the result is not what a create request would produce.
func (g *Generator) Lead(createdAt time.Time) entity.Lead {
	first := g.faker.FirstName()
	last := g.faker.LastName()
	service := g.pick(entity.KnownServices)
	assignees := append(append([]string(nil), entity.TeamRoster...), entity.Unassigned)
	statuses := entity.Statuses()

	return entity.Lead{
		ID:         entity.NewLeadID(),
		Name:       first + " " + last,
		Email:      fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), g.faker.DomainName()),
		Phone:      g.faker.Phone(),
		Company:    last + " " + g.pick(companySuffixes),
		Service:    service,
		Source:     g.pick(entity.KnownSources),
		Campaign:   g.pick(entity.KnownCampaigns),
		Status:     statuses[g.rnd.Intn(len(statuses))],
		AssignedTo: g.pick(assignees),
		Notes:      "Interested in " + g.pick(entity.KnownServices) + ".",
		Value:      float64(g.rnd.Intn(valueSpread) + minValue),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

// History builds n leads spread over the last HistoryDays days, newest first.
func (g *Generator) History(n int) []entity.Lead {
	now := g.now()
	leads := make([]entity.Lead, 0, n)
	for i := 0; i < n; i++ {
		daysAgo := g.rnd.Intn(HistoryDays)
		leads = append(leads, g.Lead(now.AddDate(0, 0, -daysAgo)))
	}
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	return leads
}

// Inbound returns create fields for a fresh lead arriving now.
func (g *Generator) Inbound() entity.LeadFields {
	l := g.Lead(g.now())
	return entity.LeadFields{
		Name:     l.Name,
		Email:    l.Email,
		Phone:    l.Phone,
		Company:  l.Company,
		Service:  l.Service,
		Source:   l.Source,
		Campaign: l.Campaign,
		Notes:    l.Notes,
		Value:    l.Value,
	}
}

// Roll reports true with probability p.
func (g *Generator) Roll(p float64) bool {
	return g.rnd.Float64() < p
}

// Seed stores n historical leads. Leads are inserted oldest first so a
// prepending store ends up newest first.
func Seed(ctx context.Context, repo entity.LeadRepositoryInterface, g *Generator, n int) error {
	leads := g.History(n)
	for i := len(leads) - 1; i >= 0; i-- {
		lead := leads[i]
		if err := repo.Create(ctx, &lead); err != nil {
			return fmt.Errorf("seed lead %d: %w", len(leads)-i, err)
		}
	}
	return nil
}
