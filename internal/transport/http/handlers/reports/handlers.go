package reportshandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/reports"
	"worktracker/internal/transport/http/api"
	"worktracker/internal/transport/http/middleware"
	"worktracker/internal/transport/http/shared"
)

type Handler struct {
	Calc *earnings.Calculator
	Now  func() time.Time
}

func NewHandler(calc *earnings.Calculator) *Handler {
	if calc == nil {
		calc = earnings.NewCalculator(nil)
	}
	return &Handler{Calc: calc, Now: time.Now}
}

type summaryPayload struct {
	Entries   []shared.EntryPayload `json:"entries" validate:"dive"`
	From      string                `json:"from"`
	To        string                `json:"to"`
	ProjectID string                `json:"projectId"`
	// LastDays selects a window ending today when from and to are empty.
	LastDays int `json:"lastDays" validate:"gte=0,lte=3660"`
}

type summaryResponse struct {
	reports.Report
	Daily []reports.DayPoint `json:"daily"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/reports/summary", h.handleSummary)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload summaryPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	from, _ := validator.Date("from", payload.From)
	to, _ := validator.Date("to", payload.To)
	validator.DateOrder("from", from, "to", to)
	if validator.Reject(w, requestID) {
		return
	}

	entries, err := shared.BuildEntries(h.Calc, payload.Entries)
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}

	filter := reports.Filter{From: from, To: to, ProjectID: payload.ProjectID}
	if from.IsZero() && to.IsZero() && payload.LastDays > 0 {
		filter = reports.LastNDays(h.Now(), payload.LastDays)
		filter.ProjectID = payload.ProjectID
	}
	report := reports.Summarize(entries, filter)
	api.Success(w, summaryResponse{Report: report, Daily: report.DailySeries()}, requestID)
}
