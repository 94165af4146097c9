package projecthandler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"worktracker/internal/domain/worklog"
	"worktracker/internal/transport/http/api"
	"worktracker/internal/transport/http/middleware"
	"worktracker/internal/transport/http/shared"
)

type Handler struct {
	Now func() time.Time
}

func NewHandler() *Handler {
	return &Handler{Now: time.Now}
}

type projectPayload struct {
	ID          string  `json:"id" validate:"max=100"`
	Name        string  `json:"name" validate:"notblank,max=100"`
	Description string  `json:"description" validate:"max=500"`
	HourlyRate  float64 `json:"hourlyRate" validate:"gt=0"`
	Client      string  `json:"client" validate:"max=100"`
	Status      string  `json:"status"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate"`
	Color       string  `json:"color"`
	// Complete closes the project as of now unless it already has an end date.
	Complete bool `json:"complete"`
}

type projectResponse struct {
	worklog.Project
	Duration string `json:"duration"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/projects/preview", h.handlePreview)
}

// handlePreview normalizes and validates a project and reports how long it
// has run. Nothing is stored.
func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload projectPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	validator.Enum("status", payload.Status, worklog.ProjectStatuses, "must be one of "+strings.Join(worklog.ProjectStatuses, ", "))
	start, _ := validator.Date("startDate", payload.StartDate)
	end, _ := validator.Date("endDate", payload.EndDate)
	validator.DateOrder("startDate", start, "endDate", end)
	if validator.Reject(w, requestID) {
		return
	}

	project := worklog.Project{
		ID:          strings.TrimSpace(payload.ID),
		Name:        payload.Name,
		Description: payload.Description,
		HourlyRate:  payload.HourlyRate,
		Client:      payload.Client,
		Status:      strings.ToLower(strings.TrimSpace(payload.Status)),
		StartDate:   start,
		Color:       strings.TrimSpace(payload.Color),
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if !end.IsZero() {
		project.EndDate = &end
	}
	project = project.Normalize()

	now := h.Now().UTC()
	if payload.Complete {
		project = project.Complete(now)
	}
	if err := project.Validate(); err != nil {
		shared.FailDomain(w, r, err)
		return
	}

	api.Success(w, projectResponse{Project: project, Duration: project.Duration(now)}, requestID)
}
