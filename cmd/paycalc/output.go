package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/reports"
	"worktracker/internal/domain/timesheet"
	"worktracker/internal/domain/worklog"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	netStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func printBreakdown(out io.Writer, session earnings.WorkSession, b earnings.Breakdown, model string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("Shift"), fmt.Sprintf("%s - %s (break %s)",
		session.StartTime, session.EndTime, worklog.FormatBreak(session.BreakMinutes)))
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("Pay"), worklog.OvertimeLabel(session.IsOvertime, earnings.NormalizeMultiplier(session.OvertimeMultiplier)))
	fmt.Fprintf(w, "Hours\t%.2f\n", b.TotalHours)
	fmt.Fprintf(w, "Rate\t%s/h\n", worklog.FormatCurrency(b.EffectiveHourlyRate))
	fmt.Fprintf(w, "Gross\t%s\n", worklog.FormatCurrency(b.GrossEarnings))
	fmt.Fprintf(w, "  Federal tax\t%s\n", worklog.FormatCurrency(b.FederalTax))
	fmt.Fprintf(w, "  Provincial tax\t%s\n", worklog.FormatCurrency(b.ProvincialTax))
	fmt.Fprintf(w, "  CPP\t%s\n", worklog.FormatCurrency(b.CPPContribution))
	fmt.Fprintf(w, "  EI\t%s\n", worklog.FormatCurrency(b.EIContribution))
	fmt.Fprintf(w, "Deductions\t%s %s\n", worklog.FormatCurrency(b.TotalDeductions), mutedStyle.Render("("+model+")"))
	fmt.Fprintf(w, "%s\t%s\n", netStyle.Render("Net"), netStyle.Render(worklog.FormatCurrency(b.NetEarnings)))
}

func printImportResult(out io.Writer, result timesheet.Result) {
	fmt.Fprintf(out, "%s %d imported, %d failed\n", headerStyle.Render("Timesheet:"), result.Imported, result.Failed)
	for _, rowErr := range result.Errors {
		fmt.Fprintf(out, "  %s %s\n", errorStyle.Render(fmt.Sprintf("row %d:", rowErr.Row)), rowErr.Message)
	}
}

func printReport(out io.Writer, report reports.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	s := report.Summary
	period := "all dates"
	if report.From != "" || report.To != "" {
		period = strings.TrimSpace(report.From + " .. " + report.To)
	}
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("Period"), period)
	fmt.Fprintf(w, "Entries\t%d\n", s.EntriesCount)
	fmt.Fprintf(w, "Hours\t%.2f\n", s.TotalHours)
	fmt.Fprintf(w, "Gross\t%s\n", worklog.FormatCurrency(s.TotalGross))
	fmt.Fprintf(w, "Deductions\t%s\n", worklog.FormatCurrency(s.TotalDeductions))
	fmt.Fprintf(w, "%s\t%s\n", netStyle.Render("Net"), netStyle.Render(worklog.FormatCurrency(s.TotalNet)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", headerStyle.Render("Day"), headerStyle.Render("Hours"), headerStyle.Render("Gross"), headerStyle.Render("Net"))
	for _, point := range report.DailySeries() {
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", point.Day, point.Hours,
			worklog.FormatCurrency(point.Gross), worklog.FormatCurrency(point.Net))
	}
}
