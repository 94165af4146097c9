package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktracker/internal/platform/config"
)

func testConfig() config.Config {
	return config.Config{
		Addr:                "127.0.0.1:0",
		Environment:         "test",
		LogLevel:            "debug",
		DeductionModel:      "flat",
		MaxBodyBytes:        1 << 20,
		MaxUploadBytes:      4 << 20,
		RateLimitPerMinute:  100,
		ImportRatePerMinute: 2,
		MetricsEnabled:      true,
		ShutdownTimeout:     time.Second,
	}
}

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	app, err := New(cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.DeductionModel = "progressive"
	_, err := New(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var env struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.EqualValues(t, 1, env.Data["requestsTotal"])
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	ts := newTestServer(t, cfg)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCalculateThroughRouter(t *testing.T) {
	ts := newTestServer(t, testConfig())

	body := `{"startTime":"09:00","endTime":"17:00","breakMinutes":60,"baseHourlyRate":25}`
	resp, err := http.Post(ts.URL+"/api/v1/earnings/calculate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Success   bool           `json:"success"`
		RequestID string         `json:"requestId"`
		Data      map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Equal(t, resp.Header.Get("X-Request-ID"), env.RequestID)
	assert.InDelta(t, 149.45, env.Data["netEarnings"], 1e-9)
}

func TestAnnualizedModelFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.DeductionModel = "annualized"
	ts := newTestServer(t, cfg)

	body := `{"startTime":"09:00","endTime":"17:00","baseHourlyRate":30}`
	resp, err := http.Post(ts.URL+"/api/v1/earnings/calculate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "annualized", env.Data["deductionModel"])
	// 30 * 40 * 52 = 62400 falls in the upper federal bracket.
	assert.InDelta(t, 240*0.205, env.Data["federalTax"], 1e-9)
}

func TestBodyLimitApplies(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 1024
	ts := newTestServer(t, cfg)

	body := `{"startTime":"09:00","endTime":"17:00","pad":"` + strings.Repeat("x", 2048) + `"}`
	resp, err := http.Post(ts.URL+"/api/v1/earnings/calculate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestExpensiveRoutesHaveTighterLimit(t *testing.T) {
	ts := newTestServer(t, testConfig())

	statuses := []int{}
	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/api/v1/timesheets/template")
		require.NoError(t, err)
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)

		resp, err = http.Post(ts.URL+"/api/v1/statements", "application/json", bytes.NewBufferString(`{"entries":[]}`))
		require.NoError(t, err)
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, []int{200, 400, 200, 400, 200, 429}, statuses)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, testConfig())
	resp, err := http.Get(ts.URL + "/api/v1/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestRunShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	cfg := testConfig()
	cfg.Addr = addr
	app, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
