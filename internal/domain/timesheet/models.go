package timesheet

import "worktracker/internal/domain/worklog"

// RowError reports why a spreadsheet row was not imported. Row is the
// 1-based row number as shown by a spreadsheet, the header being row 1.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type Result struct {
	Imported int                 `json:"imported"`
	Failed   int                 `json:"failed"`
	Entries  []worklog.WorkEntry `json:"entries"`
	Errors   []RowError          `json:"errors"`
}

type row struct {
	number int
	cells  []string
}
