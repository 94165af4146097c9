package earningshandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/platform/metrics"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newRouter(calc *earnings.Calculator, collector *metrics.Collector) http.Handler {
	r := chi.NewRouter()
	NewHandler(calc, collector).RegisterRoutes(r)
	return r
}

func post(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestCalculateReturnsBreakdown(t *testing.T) {
	collector := metrics.New()
	rec, env := post(t, newRouter(nil, collector), "/earnings/calculate",
		`{"startTime":"09:00","endTime":"17:00","breakMinutes":60,"baseHourlyRate":25}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	var out map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.InDelta(t, 7.0, out["totalHours"], 1e-9)
	assert.InDelta(t, 175.0, out["grossEarnings"], 1e-9)
	assert.InDelta(t, 25.55, out["totalDeductions"], 1e-9)
	assert.InDelta(t, 149.45, out["netEarnings"], 1e-9)
	assert.Equal(t, "Regular", out["overtimeLabel"])
	assert.Equal(t, "1h 0m", out["breakLabel"])
	assert.Equal(t, "flat", out["deductionModel"])
	assert.EqualValues(t, 1, collector.Snapshot()["calculationsTotal"])
}

func TestCalculateOvernightOvertime(t *testing.T) {
	rec, env := post(t, newRouter(nil, nil), "/earnings/calculate",
		`{"startTime":"22:00","endTime":"06:00","breakMinutes":0,"baseHourlyRate":20,"payType":"overtime"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.InDelta(t, 8.0, out["totalHours"], 1e-9)
	assert.InDelta(t, 30.0, out["effectiveHourlyRate"], 1e-9)
	assert.InDelta(t, 240.0, out["grossEarnings"], 1e-9)
	assert.Equal(t, "Time & Half", out["overtimeLabel"])
}

func TestCalculateUsesConfiguredModel(t *testing.T) {
	rec, env := post(t, newRouter(earnings.NewCalculator(earnings.AnnualizedModel{}), nil), "/earnings/calculate",
		`{"startTime":"09:00","endTime":"17:00","breakMinutes":0,"baseHourlyRate":20}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "annualized", out["deductionModel"])
	assert.InDelta(t, 160*0.15, out["federalTax"], 1e-9)
}

func TestCalculateErrorCodes(t *testing.T) {
	cases := map[string]struct {
		body   string
		status int
		code   string
	}{
		"missing times": {`{"baseHourlyRate":20}`, http.StatusBadRequest, "validation_error"},
		"bad time":      {`{"startTime":"24:00","endTime":"17:00"}`, http.StatusUnprocessableEntity, "invalid_time_format"},
		"long break":    {`{"startTime":"09:00","endTime":"17:00","breakMinutes":481}`, http.StatusUnprocessableEntity, "invalid_break_time"},
		"multiplier":    {`{"startTime":"09:00","endTime":"17:00","isOvertime":true,"overtimeMultiplier":3.5}`, http.StatusUnprocessableEntity, "invalid_multiplier"},
		"negative rate": {`{"startTime":"09:00","endTime":"17:00","baseHourlyRate":-1}`, http.StatusUnprocessableEntity, "invalid_rate"},
		"pay type":      {`{"startTime":"09:00","endTime":"17:00","payType":"holiday"}`, http.StatusUnprocessableEntity, "unknown_pay_type"},
		"unknown field": {`{"startTime":"09:00","endTime":"17:00","tip":5}`, http.StatusBadRequest, "invalid_payload"},
		"not json":      {`hello`, http.StatusBadRequest, "invalid_payload"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec, env := post(t, newRouter(nil, nil), "/earnings/calculate", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestCalculateValidationDetails(t *testing.T) {
	_, env := post(t, newRouter(nil, nil), "/earnings/calculate", `{"endTime":"17:00"}`)
	require.NotNil(t, env.Error)
	fields, ok := env.Error.Details["fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "startTime", fields[0].(map[string]any)["field"])
}

func TestPreviewEntry(t *testing.T) {
	rec, env := post(t, newRouter(nil, nil), "/entries/preview", `{
		"projectName": "Warehouse",
		"date": "2025-03-14",
		"description": "restock",
		"session": {"startTime":"09:00","endTime":"13:30","breakMinutes":30,"baseHourlyRate":20}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		ID          string `json:"id"`
		ProjectName string `json:"projectName"`
		Date        string `json:"date"`
		Breakdown   struct {
			TotalHours    float64 `json:"totalHours"`
			GrossEarnings float64 `json:"grossEarnings"`
		} `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Warehouse", out.ProjectName)
	assert.Equal(t, "2025-03-14T00:00:00Z", out.Date)
	assert.InDelta(t, 4.0, out.Breakdown.TotalHours, 1e-9)
	assert.InDelta(t, 80.0, out.Breakdown.GrossEarnings, 1e-9)
}

func TestPreviewEntryValidation(t *testing.T) {
	rec, env := post(t, newRouter(nil, nil), "/entries/preview", `{
		"date": "14/03/2025",
		"description": " ",
		"session": {"startTime":"09:00","endTime":"10:00"}
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	fields := map[string]bool{}
	for _, issue := range env.Error.Details["fields"].([]any) {
		fields[issue.(map[string]any)["field"].(string)] = true
	}
	assert.True(t, fields["projectName"])
	assert.True(t, fields["description"])
	assert.True(t, fields["date"])
}

func TestPayTypes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/earnings/pay-types", nil)
	rec := httptest.NewRecorder()
	newRouter(nil, nil).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []payTypeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 4)
	assert.Equal(t, payTypeResponse{Name: "double", Label: "Double Time", Multiplier: 2}, env.Data[2])
}

func TestRecalculateEntryKeepsIdentity(t *testing.T) {
	h := newRouter(nil, nil)
	rec, env := post(t, h, "/entries/recalculate", `{
		"entry":{"id":"e-1","projectName":"Dock","date":"2025-05-05T00:00:00Z","description":"unload",
			"session":{"startTime":"09:00","endTime":"13:00","baseHourlyRate":20},
			"breakdown":{"totalHours":99,"grossEarnings":9999}},
		"session":{"startTime":"09:00","endTime":"17:00","breakMinutes":60,"baseHourlyRate":20,"payType":"overtime"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		ID        string               `json:"id"`
		Session   earnings.WorkSession `json:"session"`
		Breakdown earnings.Breakdown   `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "e-1", out.ID)
	assert.True(t, out.Session.IsOvertime)
	assert.InDelta(t, 7.0, out.Breakdown.TotalHours, 1e-9)
	assert.InDelta(t, 210.0, out.Breakdown.GrossEarnings, 1e-9)
}

func TestRecalculateEntryValidation(t *testing.T) {
	h := newRouter(nil, nil)
	rec, env := post(t, h, "/entries/recalculate", `{"entry":{},"session":{"startTime":"09:00"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.Contains(t, rec.Body.String(), `"field":"entry.id"`)
	assert.Contains(t, rec.Body.String(), `"field":"session.endTime"`)

	rec, env = post(t, h, "/entries/recalculate",
		`{"entry":{"id":"e-1"},"session":{"startTime":"09:00","endTime":"17:00","breakMinutes":600}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_break_time", env.Error.Code)
}
