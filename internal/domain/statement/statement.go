package statement

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"worktracker/internal/domain/reports"
	"worktracker/internal/domain/worklog"
)

var ErrNoEntries = errors.New("statement has no entries")

// Statement is an earnings statement covering a set of work entries.
type Statement struct {
	Title   string
	Owner   string
	From    time.Time
	To      time.Time
	Entries []worklog.WorkEntry
}

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Date", 24, "L"},
	{"Project", 40, "L"},
	{"Time", 26, "L"},
	{"Break", 16, "R"},
	{"Hours", 16, "R"},
	{"Rate", 22, "R"},
	{"Gross", 23, "R"},
	{"Net", 23, "R"},
}

// Included returns the entries inside the statement period, oldest first.
func (s Statement) Included() []worklog.WorkEntry {
	period := reports.Filter{From: s.From, To: s.To}
	entries := make([]worklog.WorkEntry, 0, len(s.Entries))
	for _, entry := range s.Entries {
		if period.Match(entry) {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries
}

// Render writes the statement as an A4 PDF. Entries outside From and To are
// left out of both the table and the totals.
func Render(w io.Writer, s Statement) error {
	entries := s.Included()
	if len(entries) == 0 {
		return ErrNoEntries
	}

	from, to := s.From, s.To
	if from.IsZero() {
		from = entries[0].Date
	}
	if to.IsZero() {
		to = entries[len(entries)-1].Date
	}
	title := strings.TrimSpace(s.Title)
	if title == "" {
		title = "Earnings Statement"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if owner := strings.TrimSpace(s.Owner); owner != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", owner))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s", worklog.FormatDate(from), worklog.FormatDate(to)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 232, 250)
	for _, col := range columns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, e := range entries {
		b := e.Breakdown
		cells := []string{
			e.Date.Format("2006-01-02"),
			truncate(e.ProjectName, 22),
			e.Session.StartTime + "-" + e.Session.EndTime,
			worklog.FormatBreak(e.Session.BreakMinutes),
			fmt.Sprintf("%.2f", b.TotalHours),
			worklog.FormatCurrency(b.EffectiveHourlyRate),
			worklog.FormatCurrency(b.GrossEarnings),
			worklog.FormatCurrency(b.NetEarnings),
		}
		for i, col := range columns {
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	totals := reports.Summarize(entries, reports.Filter{}).Summary
	var federal, provincial, cpp, ei float64
	for _, e := range entries {
		federal += e.Breakdown.FederalTax
		provincial += e.Breakdown.ProvincialTax
		cpp += e.Breakdown.CPPContribution
		ei += e.Breakdown.EIContribution
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
	lines := []struct {
		label  string
		amount string
	}{
		{"Total hours", fmt.Sprintf("%.2f", totals.TotalHours)},
		{"Gross earnings", worklog.FormatCurrency(totals.TotalGross)},
		{"Federal tax", worklog.FormatCurrency(federal)},
		{"Provincial tax", worklog.FormatCurrency(provincial)},
		{"CPP contribution", worklog.FormatCurrency(cpp)},
		{"EI contribution", worklog.FormatCurrency(ei)},
		{"Total deductions", worklog.FormatCurrency(totals.TotalDeductions)},
	}
	for _, line := range lines {
		pdf.CellFormat(60, 7, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, line.amount, "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Net earnings", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, worklog.FormatCurrency(totals.TotalNet), "T", 0, "R", false, 0, "")

	return pdf.Output(w)
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-3]) + "..."
}
