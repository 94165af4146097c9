package statementhandler

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/statement"
	"worktracker/internal/transport/http/api"
	"worktracker/internal/transport/http/middleware"
	"worktracker/internal/transport/http/shared"
)

type Handler struct {
	Calc *earnings.Calculator
}

func NewHandler(calc *earnings.Calculator) *Handler {
	if calc == nil {
		calc = earnings.NewCalculator(nil)
	}
	return &Handler{Calc: calc}
}

type statementPayload struct {
	Title   string                `json:"title" validate:"max=120"`
	Owner   string                `json:"owner" validate:"max=120"`
	From    string                `json:"from"`
	To      string                `json:"to"`
	Entries []shared.EntryPayload `json:"entries" validate:"min=1,max=1000,dive"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/statements", h.handleRender)
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload statementPayload
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

	var buf bytes.Buffer
	err = statement.Render(&buf, statement.Statement{
		Title:   payload.Title,
		Owner:   payload.Owner,
		From:    from,
		To:      to,
		Entries: entries,
	})
	if err != nil {
		shared.FailDomain(w, r, err)
		return
	}

	filename := "statement.pdf"
	if owner := strings.TrimSpace(payload.Owner); owner != "" {
		filename = "statement-" + strings.ToLower(strings.Join(strings.Fields(owner), "-")) + ".pdf"
	}
	err = api.Attachment(w, "application/pdf", filename, func(out io.Writer) error {
		_, err := buf.WriteTo(out)
		return err
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("statement download interrupted")
	}
}
