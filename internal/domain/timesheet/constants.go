package timesheet

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"

	// Break inferred when a row has no break column.
	LongShiftThresholdMinutes = 10 * 60
	LongShiftBreakMinutes     = 60
	ShortShiftBreakMinutes    = 30

	DefaultDescription = "Imported entry"

	colDate        = "date"
	colStart       = "start"
	colEnd         = "end"
	colBreak       = "break"
	colDescription = "description"
	colOvertime    = "overtime"
)

// Accepted header spellings, compared after lower-casing and trimming.
var columnAliases = map[string][]string{
	colDate:        {"date", "day", "work date"},
	colStart:       {"start", "start time", "starttime", "start_time", "clock in", "in"},
	colEnd:         {"end", "end time", "endtime", "end_time", "clock out", "out"},
	colBreak:       {"break", "break minutes", "break time", "breaktime", "break_minutes", "break_time"},
	colDescription: {"description", "notes", "task"},
	colOvertime:    {"overtime", "overtime multiplier", "multiplier", "pay type", "paytype"},
}

var requiredColumns = []string{colDate, colStart, colEnd}
