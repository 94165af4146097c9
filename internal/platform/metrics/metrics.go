package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process wide counters. All methods are safe for concurrent
// use.
type Collector struct {
	totalRequests   atomic.Uint64
	clientErrors    atomic.Uint64
	serverErrors    atomic.Uint64
	rateLimited     atomic.Uint64
	totalDurationMs atomic.Uint64
	calculations    atomic.Uint64
	importedRows    atomic.Uint64
	failedRows      atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.totalRequests.Add(1)
	switch {
	case status == 429:
		c.rateLimited.Add(1)
		c.clientErrors.Add(1)
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
	c.totalDurationMs.Add(uint64(max(duration.Milliseconds(), 0)))
}

// RecordCalculations counts earnings breakdowns computed on behalf of callers.
func (c *Collector) RecordCalculations(n int) {
	if n > 0 {
		c.calculations.Add(uint64(n))
	}
}

func (c *Collector) RecordImport(imported, failed int) {
	if imported > 0 {
		c.importedRows.Add(uint64(imported))
	}
	if failed > 0 {
		c.failedRows.Add(uint64(failed))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"clientErrorsTotal": c.clientErrors.Load(),
		"errorsTotal":       c.serverErrors.Load(),
		"rateLimitedTotal":  c.rateLimited.Load(),
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"calculationsTotal": c.calculations.Load(),
		"importedRowsTotal": c.importedRows.Load(),
		"failedRowsTotal":   c.failedRows.Load(),
	}
}
