package earningshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/worklog"
	"worktracker/internal/platform/metrics"
	"worktracker/internal/transport/http/api"
	"worktracker/internal/transport/http/middleware"
	"worktracker/internal/transport/http/shared"
)

type Handler struct {
	Calc    *earnings.Calculator
	Metrics *metrics.Collector
}

func NewHandler(calc *earnings.Calculator, collector *metrics.Collector) *Handler {
	if calc == nil {
		calc = earnings.NewCalculator(nil)
	}
	return &Handler{Calc: calc, Metrics: collector}
}

type breakdownResponse struct {
	earnings.Breakdown
	OvertimeLabel  string `json:"overtimeLabel"`
	BreakLabel     string `json:"breakLabel"`
	DeductionModel string `json:"deductionModel"`
}

// recalculatePayload carries a previously computed entry and the session that
// replaces its own. The entry's breakdown is ignored.
type recalculatePayload struct {
	Entry   worklog.WorkEntry     `json:"entry"`
	Session shared.SessionPayload `json:"session"`
}

type payTypeResponse struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/earnings/calculate", h.handleCalculate)
	r.Get("/earnings/pay-types", h.handlePayTypes)
	r.Post("/entries/preview", h.handlePreviewEntry)
	r.Post("/entries/recalculate", h.handleRecalculateEntry)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload shared.SessionPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	if validator.Reject(w, requestID) {
		return
	}

	session, err := payload.ToSession()
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}
	breakdown, err := h.Calc.Calculate(session)
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}
	h.recordCalculations(1)

	api.Success(w, breakdownResponse{
		Breakdown:      breakdown,
		OvertimeLabel:  worklog.OvertimeLabel(session.IsOvertime, earnings.NormalizeMultiplier(session.OvertimeMultiplier)),
		BreakLabel:     worklog.FormatBreak(session.BreakMinutes),
		DeductionModel: h.Calc.ModelName(),
	}, requestID)
}

func (h *Handler) handlePayTypes(w http.ResponseWriter, r *http.Request) {
	out := make([]payTypeResponse, 0, len(worklog.PayTypes))
	for _, name := range worklog.PayTypes {
		isOvertime, multiplier, err := worklog.ParsePayType(name)
		if err != nil {
			shared.FailDomain(w, r, err)
			return
		}
		out = append(out, payTypeResponse{
			Name:       name,
			Label:      worklog.OvertimeLabel(isOvertime, multiplier),
			Multiplier: multiplier,
		})
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePreviewEntry(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload shared.EntryPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	validator.Date("date", payload.Date)
	if validator.Reject(w, requestID) {
		return
	}

	input, err := payload.ToInput()
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}
	entry, err := worklog.NewEntry(h.Calc, input)
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}
	h.recordCalculations(1)
	api.Success(w, entry, requestID)
}

func (h *Handler) handleRecalculateEntry(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload recalculatePayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	validator.Required("entry.id", payload.Entry.ID, "is required")
	if validator.Reject(w, requestID) {
		return
	}

	session, err := payload.Session.ToSession()
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}
	entry, err := payload.Entry.Recalculate(h.Calc, session)
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}
	h.recordCalculations(1)
	api.Success(w, entry, requestID)
}

func (h *Handler) recordCalculations(n int) {
	if h.Metrics != nil {
		h.Metrics.RecordCalculations(n)
	}
}
