package timesheethandler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/timesheet"
	"worktracker/internal/domain/worklog"
	"worktracker/internal/platform/metrics"
	"worktracker/internal/transport/http/api"
	"worktracker/internal/transport/http/middleware"
	"worktracker/internal/transport/http/shared"
)

const multipartMemory = 8 << 20

type Handler struct {
	Calc     *earnings.Calculator
	Importer *timesheet.Importer
	Metrics  *metrics.Collector
}

func NewHandler(calc *earnings.Calculator, collector *metrics.Collector) *Handler {
	if calc == nil {
		calc = earnings.NewCalculator(nil)
	}
	return &Handler{Calc: calc, Importer: timesheet.NewImporter(calc), Metrics: collector}
}

type exportPayload struct {
	Entries []shared.EntryPayload `json:"entries" validate:"dive"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/timesheets", func(r chi.Router) {
		r.Post("/import", h.handleImport)
		r.Post("/export", h.handleExport)
		r.Get("/template", h.handleTemplate)
	})
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "upload too large", requestID)
			return
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "expected multipart form upload", requestID)
		return
	}
	defer r.MultipartForm.RemoveAll()

	validator := shared.NewValidator()
	file, header, err := r.FormFile("file")
	if err != nil {
		validator.Add("file", "is required")
	}
	projectName := strings.TrimSpace(r.FormValue("projectName"))
	projectID := strings.TrimSpace(r.FormValue("projectId"))
	if projectName == "" && projectID == "" {
		validator.Add("projectName", "projectName or projectId is required")
	}
	rate, rateErr := strconv.ParseFloat(strings.TrimSpace(r.FormValue("hourlyRate")), 64)
	if rateErr != nil {
		validator.Add("hourlyRate", "must be a number")
	}
	if validator.Reject(w, requestID) {
		return
	}
	defer file.Close()

	if projectName == "" {
		projectName = projectID
	}
	project := worklog.Project{ID: projectID, Name: projectName, HourlyRate: rate}.Normalize()
	if err := project.Validate(); err != nil {
		shared.FailDomain(w, r, err)
		return
	}

	format, err := timesheet.DetectFormat(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}
	ctx := zerolog.Ctx(r.Context()).With().Str("file", header.Filename).Logger().WithContext(r.Context())
	result, err := h.Importer.Import(ctx, file, format, project)
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordImport(result.Imported, result.Failed)
		h.Metrics.RecordCalculations(result.Imported)
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	format, err := timesheet.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}

	var payload exportPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	if validator.Reject(w, requestID) {
		return
	}
	entries, err := shared.BuildEntries(h.Calc, payload.Entries)
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}

	h.writeFile(w, r, format, entries)
}

// handleTemplate serves an empty sheet with the importable headers.
func (h *Handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	format, err := timesheet.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}
	h.writeFile(w, r, format, nil)
}

func (h *Handler) writeFile(w http.ResponseWriter, r *http.Request, format timesheet.Format, entries []worklog.WorkEntry) {
	var buf bytes.Buffer
	if err := timesheet.Export(&buf, format, entries); err != nil {
		shared.FailDomain(w, r, err)
		return
	}
	err := api.Attachment(w, format.ContentType(), "timesheet."+string(format), func(out io.Writer) error {
		_, err := buf.WriteTo(out)
		return err
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("timesheet download interrupted")
	}
}
