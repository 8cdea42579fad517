// Package analytics derives dashboard and report views from a set of leads.
// Every function is pure: same leads in, same view out.
package analytics

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/xavierca1/leadpulse/internal/entity"
)

// TrendDays is how many day buckets DailyTrend keeps.
const TrendDays = 14

// Group is the performance of one source, campaign or assignee.
type Group struct {
	Name           string  `json:"name"`
	Total          int     `json:"total"`
	Converted      int     `json:"converted"`
	Value          float64 `json:"value"`
	ConversionRate string  `json:"conversion_rate"`
}

type DayBucket struct {
	Date      string `json:"date"`
	New       int    `json:"new"`
	Contacted int    `json:"contacted"`
	Converted int    `json:"converted"`
}

type StatusCount struct {
	Status entity.LeadStatus `json:"name"`
	Count  int               `json:"value"`
}

type Summary struct {
	TotalLeads     int     `json:"total_leads"`
	Converted      int     `json:"converted"`
	ConversionRate string  `json:"conversion_rate"`
	TotalValue     float64 `json:"total_value"`
	AverageValue   float64 `json:"average_value"`
}

// ConversionRate renders converted/total as a percentage with one decimal.
// An empty group has a rate of "0.0".
func ConversionRate(converted, total int) string {
	return percent(float64(converted), float64(total))
}

// percent rounds halves away from zero (6.25 -> "6.3", -6.25 -> "-6.3").
func percent(part, whole float64) string {
	if whole == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(math.Round(part/whole*1000)/10, 'f', 1, 64)
}

// FilterByDateRange keeps leads created within [start, end]. A zero bound
// leaves that side open.
func FilterByDateRange(leads []entity.Lead, start, end time.Time) []entity.Lead {
	out := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		if !start.IsZero() && l.CreatedAt.Before(start) {
			continue
		}
		if !end.IsZero() && l.CreatedAt.After(end) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// BySource groups by lead source, largest first.
func BySource(leads []entity.Lead) []Group {
	groups := groupBy(leads, func(l entity.Lead) (string, bool) { return l.Source, true })
	sortGroups(groups, func(a, b Group) bool { return a.Total > b.Total })
	return groups
}

// ByCampaign groups by campaign, highest revenue first.
func ByCampaign(leads []entity.Lead) []Group {
	groups := groupBy(leads, func(l entity.Lead) (string, bool) { return l.Campaign, true })
	sortGroups(groups, func(a, b Group) bool { return a.Value > b.Value })
	return groups
}

// ByAssignee groups by owner. Unassigned leads are left out.
func ByAssignee(leads []entity.Lead) []Group {
	groups := groupBy(leads, func(l entity.Lead) (string, bool) {
		return l.AssignedTo, l.AssignedTo != entity.Unassigned
	})
	sortGroups(groups, func(a, b Group) bool { return a.Total > b.Total })
	return groups
}

func groupBy(leads []entity.Lead, key func(entity.Lead) (string, bool)) []Group {
	idx := make(map[string]int)
	groups := []Group{}

	for _, l := range leads {
		name, ok := key(l)
		if !ok {
			continue
		}
		i, seen := idx[name]
		if !seen {
			i = len(groups)
			idx[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Total++
		if l.IsConverted() {
			groups[i].Converted++
			groups[i].Value += l.Value
		}
	}

	for i := range groups {
		groups[i].ConversionRate = ConversionRate(groups[i].Converted, groups[i].Total)
	}
	return groups
}

// sortGroups orders by less and falls back to the group name.
func sortGroups(groups []Group, less func(a, b Group) bool) {
	sort.SliceStable(groups, func(i, j int) bool {
		if less(groups[i], groups[j]) {
			return true
		}
		if less(groups[j], groups[i]) {
			return false
		}
		return groups[i].Name < groups[j].Name
	})
}

// DailyTrend counts New, Contacted and Converted leads per calendar day in
// loc, oldest first, keeping the last TrendDays days that had leads.
func DailyTrend(leads []entity.Lead, loc *time.Location) []DayBucket {
	if loc == nil {
		loc = time.UTC
	}

	days := make(map[string]*DayBucket)
	for _, l := range leads {
		key := l.CreatedAt.In(loc).Format(time.DateOnly)
		b, ok := days[key]
		if !ok {
			b = &DayBucket{Date: key}
			days[key] = b
		}
		switch l.Status {
		case entity.StatusNew:
			b.New++
		case entity.StatusContacted:
			b.Contacted++
		case entity.StatusConverted:
			b.Converted++
		}
	}

	out := make([]DayBucket, 0, len(days))
	for _, b := range days {
		out = append(out, *b)
	}
	// ISO dates sort chronologically as strings.
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	if len(out) > TrendDays {
		out = out[len(out)-TrendDays:]
	}
	return out
}

// ByStatus counts leads per status in pipeline order, omitting empty ones.
func ByStatus(leads []entity.Lead) []StatusCount {
	counts := make(map[entity.LeadStatus]int)
	var unknown []entity.LeadStatus
	for _, l := range leads {
		if _, seen := counts[l.Status]; !seen && !l.Status.Valid() {
			unknown = append(unknown, l.Status)
		}
		counts[l.Status]++
	}

	out := []StatusCount{}
	for _, s := range append(entity.Statuses(), unknown...) {
		if n := counts[s]; n > 0 {
			out = append(out, StatusCount{Status: s, Count: n})
		}
	}
	return out
}

func Summarize(leads []entity.Lead) Summary {
	s := Summary{TotalLeads: len(leads)}
	for _, l := range leads {
		if l.IsConverted() {
			s.Converted++
			s.TotalValue += l.Value
		}
	}
	s.ConversionRate = ConversionRate(s.Converted, s.TotalLeads)
	if s.Converted > 0 {
		s.AverageValue = s.TotalValue / float64(s.Converted)
	}
	return s
}

// Report is the analytics page for one date range.
type Report struct {
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Summary   Summary       `json:"summary"`
	Sources   []Group       `json:"sources"`
	Campaigns []Group       `json:"campaigns"`
	Trend     []DayBucket   `json:"trend"`
	Funnel    []StatusCount `json:"funnel"`
	Team      []Group       `json:"team"`
}

func BuildReport(leads []entity.Lead, start, end time.Time, loc *time.Location) Report {
	inRange := FilterByDateRange(leads, start, end)
	return Report{
		Start:     start,
		End:       end,
		Summary:   Summarize(inRange),
		Sources:   BySource(inRange),
		Campaigns: ByCampaign(inRange),
		Trend:     DailyTrend(inRange, loc),
		Funnel:    ByStatus(inRange),
		Team:      ByAssignee(inRange),
	}
}
