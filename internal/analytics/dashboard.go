package analytics

import (
	"sort"
	"time"

	"github.com/xavierca1/leadpulse/internal/entity"
)

const (
	seriesDays  = 7
	recentLeads = 5
)

type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type SeriesPoint struct {
	Date      string `json:"date"`
	Leads     int    `json:"leads"`
	Converted int    `json:"converted"`
}

// Dashboard is the landing page snapshot.
type Dashboard struct {
	Total          int           `json:"total"`
	Today          int           `json:"today"`
	Yesterday      int           `json:"yesterday"`
	TodayChange    string        `json:"today_change"`
	Week           int           `json:"week"`
	Converted      int           `json:"converted"`
	ConversionRate string        `json:"conversion_rate"`
	TotalValue     float64       `json:"total_value"`
	Sources        []Count       `json:"sources"`
	Statuses       []Count       `json:"statuses"`
	Series         []SeriesPoint `json:"series"`
	Recent         []entity.Lead `json:"recent"`
}

func BuildDashboard(leads []entity.Lead, now time.Time, loc *time.Location) Dashboard {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	today := dayKey(now, loc)
	yesterday := dayKey(now.AddDate(0, 0, -1), loc)
	weekAgo := now.AddDate(0, 0, -7)

	d := Dashboard{Total: len(leads)}
	perDay := make(map[string]*SeriesPoint)
	sources := make(map[string]int)
	statuses := make(map[string]int)

	for _, l := range leads {
		key := dayKey(l.CreatedAt, loc)
		switch key {
		case today:
			d.Today++
		case yesterday:
			d.Yesterday++
		}
		if !l.CreatedAt.Before(weekAgo) {
			d.Week++
		}
		if l.IsConverted() {
			d.Converted++
			d.TotalValue += l.Value
		}

		p, ok := perDay[key]
		if !ok {
			p = &SeriesPoint{}
			perDay[key] = p
		}
		p.Leads++
		if l.IsConverted() {
			p.Converted++
		}

		sources[l.Source]++
		statuses[string(l.Status)]++
	}

	if d.Yesterday > 0 {
		d.TodayChange = percent(float64(d.Today-d.Yesterday), float64(d.Yesterday))
	} else {
		d.TodayChange = "0.0"
	}
	d.ConversionRate = ConversionRate(d.Converted, d.Total)
	d.Sources = sortedCounts(sources)
	d.Statuses = statusCounts(statuses)

	for i := seriesDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		point := SeriesPoint{Date: day.Format("Jan 2")}
		if p, ok := perDay[dayKey(day, loc)]; ok {
			point.Leads = p.Leads
			point.Converted = p.Converted
		}
		d.Series = append(d.Series, point)
	}

	d.Recent = mostRecent(leads, recentLeads)
	return d
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, v := range m {
		out = append(out, Count{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func statusCounts(m map[string]int) []Count {
	out := []Count{}
	for _, s := range entity.Statuses() {
		if n := m[string(s)]; n > 0 {
			out = append(out, Count{Name: string(s), Value: n})
		}
	}
	return out
}

func mostRecent(leads []entity.Lead, n int) []entity.Lead {
	sorted := make([]entity.Lead, len(leads))
	copy(sorted, leads)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
