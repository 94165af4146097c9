package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/worklog"
)

func entry(t *testing.T, project string, date time.Time, start, end string) worklog.WorkEntry {
	t.Helper()
	e, err := worklog.NewEntry(nil, worklog.EntryInput{
		ProjectID:   "id-" + project,
		ProjectName: project,
		Date:        date,
		Description: "work",
		Session:     earnings.WorkSession{StartTime: start, EndTime: end, BaseHourlyRate: 20},
	})
	require.NoError(t, err)
	return e
}

func fixture(t *testing.T) []worklog.WorkEntry {
	d := func(day int) time.Time { return time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC) }
	return []worklog.WorkEntry{
		entry(t, "Alpha", d(1), "09:00", "17:00"),
		entry(t, "Alpha", d(2), "09:00", "13:00"),
		entry(t, "Beta", d(2), "13:00", "15:00"),
		entry(t, "Beta", d(20), "22:00", "02:00"),
	}
}

func TestSummarizeAll(t *testing.T) {
	report := Summarize(fixture(t), Filter{})

	assert.Equal(t, 4, report.Summary.EntriesCount)
	assert.Equal(t, 18.0, report.Summary.TotalHours)
	assert.InDelta(t, 360.0, report.Summary.TotalGross, 1e-9)
	assert.InDelta(t, 360*0.146, report.Summary.TotalDeductions, 1e-9)
	assert.InDelta(t, 360*0.854, report.Summary.TotalNet, 1e-9)

	assert.Equal(t, 12.0, report.ByProject["Alpha"].Hours)
	assert.Equal(t, 2, report.ByProject["Beta"].Entries)
	assert.Equal(t, 6.0, report.ByDay["2025-05-02"].Hours)
	assert.Empty(t, report.From)
}

func TestSummarizeFilters(t *testing.T) {
	report := Summarize(fixture(t), Filter{
		From: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 5, 19, 23, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, 2, report.Summary.EntriesCount)
	assert.Equal(t, "2025-05-02", report.From)

	report = Summarize(fixture(t), Filter{ProjectID: "id-Beta"})
	assert.Equal(t, 2, report.Summary.EntriesCount)
	assert.NotContains(t, report.ByProject, "Alpha")

	report = Summarize(fixture(t), Filter{ProjectID: "ALL"})
	assert.Equal(t, 4, report.Summary.EntriesCount)
}

func TestSummarizeUnknownProject(t *testing.T) {
	e := entry(t, "Alpha", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "09:00", "10:00")
	e.ProjectName = ""
	report := Summarize([]worklog.WorkEntry{e}, Filter{})
	assert.Equal(t, 1, report.ByProject[UnknownProject].Entries)
}

func TestDailySeriesIsOrdered(t *testing.T) {
	points := Summarize(fixture(t), Filter{}).DailySeries()
	require.Len(t, points, 3)
	assert.Equal(t, "2025-05-01", points[0].Day)
	assert.Equal(t, "2025-05-20", points[2].Day)
	assert.Equal(t, 2, points[1].Entries)
}

func TestLastNDays(t *testing.T) {
	now := time.Date(2025, 6, 30, 15, 4, 5, 0, time.UTC)
	f := LastNDays(now, 0)
	assert.Equal(t, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), f.From)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), f.To)
}
