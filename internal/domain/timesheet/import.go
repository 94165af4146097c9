package timesheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/worklog"
)

type Importer struct {
	calc *earnings.Calculator
}

func NewImporter(calc *earnings.Calculator) *Importer {
	if calc == nil {
		calc = &earnings.Calculator{}
	}
	return &Importer{calc: calc}
}

// Import reads every row of the sheet into a work entry for the project.
// Bad rows are reported in the result; only an unreadable sheet fails the call.
func (i *Importer) Import(ctx context.Context, r io.Reader, format Format, project worklog.Project) (Result, error) {
	logger := zerolog.Ctx(ctx)
	if !(project.HourlyRate >= 0) {
		return Result{}, fmt.Errorf("%w: %v", earnings.ErrInvalidRate, project.HourlyRate)
	}

	var rows []row
	var err error
	switch format {
	case FormatCSV:
		rows, err = readCSV(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, ErrEmptySheet
	}

	index, err := headerIndex(rows[0].cells)
	if err != nil {
		return Result{}, err
	}

	result := Result{Entries: []worklog.WorkEntry{}, Errors: []RowError{}}
	for _, current := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if blank(current.cells) {
			continue
		}
		entry, err := i.buildEntry(index, current, project)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: current.number, Message: err.Error()})
			logger.Debug().Int("row", current.number).Err(err).Msg("timesheet row rejected")
			continue
		}
		result.Imported++
		result.Entries = append(result.Entries, entry)
	}

	logger.Info().
		Str("format", string(format)).
		Str("project", project.Name).
		Int("imported", result.Imported).
		Int("failed", result.Failed).
		Msg("timesheet imported")
	return result, nil
}

func (i *Importer) buildEntry(index map[string]int, current row, project worklog.Project) (worklog.WorkEntry, error) {
	get := func(key string) string {
		if idx, ok := index[key]; ok && idx < len(current.cells) {
			return strings.TrimSpace(current.cells[idx])
		}
		return ""
	}

	date, err := ParseDateCell(get(colDate))
	if err != nil {
		return worklog.WorkEntry{}, err
	}
	start, err := ParseClockCell(get(colStart))
	if err != nil {
		return worklog.WorkEntry{}, err
	}
	end, err := ParseClockCell(get(colEnd))
	if err != nil {
		return worklog.WorkEntry{}, err
	}
	breakMinutes, explicit, err := ParseBreakCell(get(colBreak))
	if err != nil {
		return worklog.WorkEntry{}, err
	}
	if !explicit {
		span, err := earnings.SpanMinutes(start, end)
		if err != nil {
			return worklog.WorkEntry{}, err
		}
		breakMinutes = InferBreak(span)
	}
	isOvertime, multiplier, err := ParseOvertimeCell(get(colOvertime))
	if err != nil {
		return worklog.WorkEntry{}, err
	}
	description := get(colDescription)
	if description == "" {
		description = DefaultDescription
	}

	return worklog.NewEntry(i.calc, worklog.EntryInput{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Date:        date,
		Description: description,
		Session: earnings.WorkSession{
			StartTime:          start,
			EndTime:            end,
			BreakMinutes:       breakMinutes,
			BaseHourlyRate:     project.HourlyRate,
			IsOvertime:         isOvertime,
			OvertimeMultiplier: multiplier,
		},
	})
}

func headerIndex(headers []string) (map[string]int, error) {
	lookup := map[string]string{}
	for column, aliases := range columnAliases {
		for _, alias := range aliases {
			lookup[alias] = column
		}
	}

	index := map[string]int{}
	for i, header := range headers {
		normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
		if column, ok := lookup[normalized]; ok {
			if _, seen := index[column]; !seen {
				index[column] = i
			}
		}
	}

	var missing []string
	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

func readCSV(r io.Reader) ([]row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, row{number: line, cells: record})
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([]row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	rows := make([]row, 0, len(raw))
	for i, cells := range raw {
		rows = append(rows, row{number: i + 1, cells: cells})
	}
	// Leading blank rows are not a header.
	for len(rows) > 0 && blank(rows[0].cells) {
		rows = rows[1:]
	}
	return rows, nil
}

func blank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
