package timesheet

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported timesheet format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrEmptySheet        = errors.New("timesheet has no rows")
	ErrInvalidCell       = errors.New("invalid cell value")
)
