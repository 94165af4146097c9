package timesheet

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"worktracker/internal/domain/worklog"
)

const exportSheet = "Entries"

// ExportRow is one exported entry. The first six columns use headers the
// importer understands, so exports can be imported again.
type ExportRow struct {
	Date            string  `csv:"date"`
	StartTime       string  `csv:"start time"`
	EndTime         string  `csv:"end time"`
	BreakMinutes    int     `csv:"break minutes"`
	Description     string  `csv:"description"`
	Overtime        string  `csv:"overtime"`
	Project         string  `csv:"project"`
	TotalHours      float64 `csv:"total hours"`
	EffectiveRate   float64 `csv:"effective rate"`
	GrossEarnings   float64 `csv:"gross earnings"`
	FederalTax      float64 `csv:"federal tax"`
	ProvincialTax   float64 `csv:"provincial tax"`
	CPPContribution float64 `csv:"cpp"`
	EIContribution  float64 `csv:"ei"`
	TotalDeductions float64 `csv:"total deductions"`
	NetEarnings     float64 `csv:"net earnings"`
}

var exportHeaders = []string{
	"date", "start time", "end time", "break minutes", "description", "overtime", "project",
	"total hours", "effective rate", "gross earnings", "federal tax", "provincial tax",
	"cpp", "ei", "total deductions", "net earnings",
}

func NewExportRow(entry worklog.WorkEntry) ExportRow {
	overtime := ""
	if entry.Session.IsOvertime {
		overtime = strconv.FormatFloat(entry.Session.OvertimeMultiplier, 'f', -1, 64)
	}
	b := entry.Breakdown
	return ExportRow{
		Date:            entry.Date.Format("2006-01-02"),
		StartTime:       entry.Session.StartTime,
		EndTime:         entry.Session.EndTime,
		BreakMinutes:    entry.Session.BreakMinutes,
		Description:     entry.Description,
		Overtime:        overtime,
		Project:         entry.ProjectName,
		TotalHours:      worklog.Round2(b.TotalHours),
		EffectiveRate:   worklog.Round2(b.EffectiveHourlyRate),
		GrossEarnings:   worklog.Round2(b.GrossEarnings),
		FederalTax:      worklog.Round2(b.FederalTax),
		ProvincialTax:   worklog.Round2(b.ProvincialTax),
		CPPContribution: worklog.Round2(b.CPPContribution),
		EIContribution:  worklog.Round2(b.EIContribution),
		TotalDeductions: worklog.Round2(b.TotalDeductions),
		NetEarnings:     worklog.Round2(b.NetEarnings),
	}
}

func (r ExportRow) cells() []any {
	return []any{
		r.Date, r.StartTime, r.EndTime, r.BreakMinutes, r.Description, r.Overtime, r.Project,
		r.TotalHours, r.EffectiveRate, r.GrossEarnings, r.FederalTax, r.ProvincialTax,
		r.CPPContribution, r.EIContribution, r.TotalDeductions, r.NetEarnings,
	}
}

func exportRows(entries []worklog.WorkEntry) []ExportRow {
	rows := make([]ExportRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, NewExportRow(entry))
	}
	return rows
}

// Export writes the entries in the requested format.
func Export(w io.Writer, format Format, entries []worklog.WorkEntry) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatXLSX:
		return WriteXLSX(w, entries)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func WriteCSV(w io.Writer, entries []worklog.WorkEntry) error {
	return gocsv.Marshal(exportRows(entries), w)
}

func WriteXLSX(w io.Writer, entries []worklog.WorkEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	header := make([]any, len(exportHeaders))
	for i, name := range exportHeaders {
		header[i] = name
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, r := range exportRows(entries) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r.cells()
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}
