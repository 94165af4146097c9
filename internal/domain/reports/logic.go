package reports

import (
	"sort"
	"strings"
	"time"

	"worktracker/internal/domain/worklog"
)

const (
	DefaultWindowDays = 30
	UnknownProject    = "Unknown"
	AllProjects       = "all"
	dayLayout         = "2006-01-02"
)

// Filter narrows the entries a report covers. Zero values disable a bound;
// both dates are inclusive.
type Filter struct {
	From      time.Time
	To        time.Time
	ProjectID string
}

type Stat struct {
	Hours   float64 `json:"hours"`
	Gross   float64 `json:"gross"`
	Net     float64 `json:"net"`
	Entries int     `json:"entries"`
}

type Summary struct {
	TotalHours      float64 `json:"totalHours"`
	TotalGross      float64 `json:"totalGross"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalNet        float64 `json:"totalNet"`
	EntriesCount    int     `json:"entriesCount"`
}

type DayPoint struct {
	Day string `json:"day"`
	Stat
}

type Report struct {
	Summary   Summary         `json:"summary"`
	ByProject map[string]Stat `json:"projectStats"`
	ByDay     map[string]Stat `json:"dailyStats"`
	From      string          `json:"from,omitempty"`
	To        string          `json:"to,omitempty"`
}

// LastNDays returns the window ending today and starting n days earlier.
func LastNDays(now time.Time, n int) Filter {
	if n <= 0 {
		n = DefaultWindowDays
	}
	today := day(now)
	return Filter{From: today.AddDate(0, 0, -n), To: today}
}

func (f Filter) Match(entry worklog.WorkEntry) bool {
	entryDay := day(entry.Date)
	if !f.From.IsZero() && entryDay.Before(day(f.From)) {
		return false
	}
	if !f.To.IsZero() && entryDay.After(day(f.To)) {
		return false
	}
	project := strings.TrimSpace(f.ProjectID)
	if project == "" || strings.EqualFold(project, AllProjects) {
		return true
	}
	return entry.ProjectID == project || entry.ProjectName == project
}

// Summarize aggregates the matching entries overall, per project and per day.
func Summarize(entries []worklog.WorkEntry, f Filter) Report {
	report := Report{
		ByProject: map[string]Stat{},
		ByDay:     map[string]Stat{},
	}
	if !f.From.IsZero() {
		report.From = f.From.Format(dayLayout)
	}
	if !f.To.IsZero() {
		report.To = f.To.Format(dayLayout)
	}

	for _, entry := range entries {
		if !f.Match(entry) {
			continue
		}
		b := entry.Breakdown
		report.Summary.TotalHours += b.TotalHours
		report.Summary.TotalGross += b.GrossEarnings
		report.Summary.TotalDeductions += b.TotalDeductions
		report.Summary.TotalNet += b.NetEarnings
		report.Summary.EntriesCount++

		name := entry.ProjectName
		if strings.TrimSpace(name) == "" {
			name = UnknownProject
		}
		report.ByProject[name] = report.ByProject[name].add(entry)

		key := entry.Date.Format(dayLayout)
		report.ByDay[key] = report.ByDay[key].add(entry)
	}
	return report
}

// DailySeries returns the per-day stats ordered by day.
func (r Report) DailySeries() []DayPoint {
	points := make([]DayPoint, 0, len(r.ByDay))
	for key, stat := range r.ByDay {
		points = append(points, DayPoint{Day: key, Stat: stat})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })
	return points
}

func (s Stat) add(entry worklog.WorkEntry) Stat {
	s.Hours += entry.Breakdown.TotalHours
	s.Gross += entry.Breakdown.GrossEarnings
	s.Net += entry.Breakdown.NetEarnings
	s.Entries++
	return s
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
