package shared

import (
	"errors"
	"net/http"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/statement"
	"worktracker/internal/domain/timesheet"
	"worktracker/internal/domain/worklog"
	"worktracker/internal/requestctx"
	"worktracker/internal/transport/http/api"
)

var domainErrors = []struct {
	err    error
	status int
	code   string
}{
	{worklog.ErrInvalidEntry, http.StatusUnprocessableEntity, "invalid_entry"},
	{worklog.ErrInvalidProject, http.StatusUnprocessableEntity, "invalid_project"},
	{worklog.ErrUnknownPayType, http.StatusUnprocessableEntity, "unknown_pay_type"},
	{timesheet.ErrUnsupportedFormat, http.StatusUnsupportedMediaType, "unsupported_format"},
	{timesheet.ErrMissingColumn, http.StatusUnprocessableEntity, "missing_column"},
	{timesheet.ErrEmptySheet, http.StatusUnprocessableEntity, "empty_sheet"},
	{timesheet.ErrInvalidCell, http.StatusUnprocessableEntity, "invalid_cell"},
	{statement.ErrNoEntries, http.StatusUnprocessableEntity, "no_entries"},
}

// FailDomain maps a domain error onto a status and stable error code.
// Anything unrecognized is logged and reported as an internal error.
func FailDomain(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestctx.GetRequestID(r.Context())
	if code := earnings.Code(err); code != "" {
		api.Fail(w, http.StatusUnprocessableEntity, code, err.Error(), requestID)
		return
	}
	for _, known := range domainErrors {
		if errors.Is(err, known.err) {
			api.Fail(w, known.status, known.code, err.Error(), requestID)
			return
		}
	}
	requestctx.Logger(r.Context()).Error().Err(err).Msg("request failed")
	api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
}
